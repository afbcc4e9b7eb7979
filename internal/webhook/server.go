// Package webhook is the inbound HTTP surface: backend callbacks that
// turn platform events into WhatsApp notifications, plus health and a
// small send API for internal tooling.
package webhook

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// SendText delivers one plain-text message to a phone number.
type SendText func(ctx context.Context, phone, body string) error

type Server struct {
	engine    *gin.Engine
	send      SendText
	connected func() bool
	startedAt time.Time
	log       zerolog.Logger
}

func NewServer(send SendText, connected func() bool, log zerolog.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	s := &Server{
		engine:    gin.New(),
		send:      send,
		connected: connected,
		startedAt: time.Now(),
		log:       log.With().Str("component", "webhook").Logger(),
	}
	s.engine.Use(gin.Recovery(), s.requestID)
	s.routes()
	return s
}

// requestID tags every callback with a correlation id so a platform
// retry can be matched against our logs.
func (s *Server) requestID(c *gin.Context) {
	id := c.GetHeader("X-Request-ID")
	if id == "" {
		id = uuid.NewString()
	}
	c.Header("X-Request-ID", id)
	s.log.Debug().Str("request_id", id).Str("path", c.Request.URL.Path).Msg("inbound request")
	c.Next()
}

func (s *Server) routes() {
	s.engine.GET("/health", s.health)
	s.engine.POST("/webhook/order-update", s.orderUpdate)
	s.engine.POST("/webhook/merchant-approved", s.merchantApproved)
	s.engine.POST("/api/send", s.apiSend)
}

func (s *Server) Run(port string) error {
	s.log.Info().Str("port", port).Msg("webhook server listening")
	return s.engine.Run(":" + port)
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"connected": s.connected(),
		"uptime":    time.Since(s.startedAt).Round(time.Second).String(),
	})
}

type orderUpdateRequest struct {
	OrderID       string `json:"orderId" binding:"required"`
	Status        string `json:"status" binding:"required"`
	CustomerPhone string `json:"customerPhone" binding:"required"`
}

func (s *Server) orderUpdate(c *gin.Context) {
	var req orderUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	body := fmt.Sprintf("📦 *Order Update*\n\nOrder #%s is now *%s*.", req.OrderID, req.Status)
	if err := s.send(c.Request.Context(), req.CustomerPhone, body); err != nil {
		s.log.Error().Err(err).Str("order", req.OrderID).Msg("order update notification failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "delivery failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "sent"})
}

type merchantApprovedRequest struct {
	MerchantPhone string `json:"merchantPhone" binding:"required"`
	BusinessName  string `json:"businessName" binding:"required"`
}

func (s *Server) merchantApproved(c *gin.Context) {
	var req merchantApprovedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	body := fmt.Sprintf("🎉 *Congratulations!*\n\n%s has been approved on the marketplace.\nType !merchant to see your tools.", req.BusinessName)
	if err := s.send(c.Request.Context(), req.MerchantPhone, body); err != nil {
		s.log.Error().Err(err).Str("merchant", req.MerchantPhone).Msg("merchant approval notification failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "delivery failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "sent"})
}

type sendRequest struct {
	Phone   string `json:"phone" binding:"required"`
	Message string `json:"message" binding:"required"`
}

func (s *Server) apiSend(c *gin.Context) {
	var req sendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.send(c.Request.Context(), req.Phone, req.Message); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "delivery failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "sent"})
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler { return s.engine }
