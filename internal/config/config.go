package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is the single explicit configuration object threaded through
// the bot. No package keeps ambient globals; everything reads from
// here.
type Config struct {
	// Prefixes are the characters recognized as command prefixes.
	Prefixes []string

	AdminPhones    []string
	MerchantPhones []string
	OwnerPhone     string
	BlockedPhones  []string

	APIBaseURL string
	APITimeout time.Duration

	HTTPPort string

	// PairPhone switches login from QR scan to a pairing code for the
	// given number. Empty means QR.
	PairPhone string

	DBPath string

	OpenAIKey string

	BotName      string
	SupportPhone string
	SupportEmail string

	SessionTTL time.Duration
	CartTTL    time.Duration

	// MessageRate/MessageBurst bound overall per-user throughput.
	MessageRate  float64
	MessageBurst int
	// CommandLimit per CommandWindow bounds each (user, command) pair.
	CommandLimit  int
	CommandWindow time.Duration

	RetryInterval time.Duration

	LogLevel string
}

func Load() (Config, error) {
	cfg := Config{
		Prefixes:       parseList(getenv("BOT_PREFIXES", "!")),
		AdminPhones:    parseList(os.Getenv("ADMIN_PHONES")),
		MerchantPhones: parseList(os.Getenv("MERCHANT_PHONES")),
		OwnerPhone:     os.Getenv("OWNER_PHONE"),
		BlockedPhones:  parseList(os.Getenv("BLOCKED_PHONES")),
		APIBaseURL:     getenv("API_BASE_URL", "http://localhost:5174"),
		APITimeout:     durationEnv("API_TIMEOUT", 10*time.Second),
		HTTPPort:       getenv("BOT_PORT", "3001"),
		PairPhone:      os.Getenv("PAIR_PHONE"),
		DBPath:         getenv("DB_PATH", "file:store.db?_pragma=foreign_keys(1)"),
		OpenAIKey:      os.Getenv("OPENAI_API_KEY"),
		BotName:        getenv("BOT_NAME", "Smart Bot"),
		SupportPhone:   os.Getenv("SUPPORT_PHONE"),
		SupportEmail:   getenv("SUPPORT_EMAIL", "support@smartbot.example"),
		SessionTTL:     durationEnv("SESSION_TTL", time.Hour),
		CartTTL:        durationEnv("CART_TTL", 2*time.Hour),
		MessageRate:    floatEnv("MESSAGE_RATE", 1),
		MessageBurst:   intEnv("MESSAGE_BURST", 5),
		CommandLimit:   intEnv("COMMAND_LIMIT", 10),
		CommandWindow:  durationEnv("COMMAND_WINDOW", time.Minute),
		RetryInterval:  durationEnv("RETRY_INTERVAL", 5*time.Second),
		LogLevel:       getenv("LOG_LEVEL", "info"),
	}

	if len(cfg.Prefixes) == 0 {
		return cfg, fmt.Errorf("config: BOT_PREFIXES must name at least one prefix")
	}
	if cfg.APIBaseURL == "" {
		return cfg, fmt.Errorf("config: API_BASE_URL is required")
	}
	return cfg, nil
}

// IsAdmin also grants the owner admin rights, matching how the
// original platform treated its operator.
func (c Config) IsAdmin(phone string) bool {
	return contains(c.AdminPhones, phone) || c.IsOwner(phone)
}

func (c Config) IsMerchant(phone string) bool {
	return contains(c.MerchantPhones, phone)
}

func (c Config) IsOwner(phone string) bool {
	return c.OwnerPhone != "" && c.OwnerPhone == phone
}

func (c Config) IsBlocked(phone string) bool {
	return contains(c.BlockedPhones, phone)
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// The typed env readers keep the documented default when the variable
// is unset or malformed. A zero from a typo would disable expiry or
// panic the retry ticker.
func durationEnv(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func intEnv(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func floatEnv(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f <= 0 {
		return fallback
	}
	return f
}
