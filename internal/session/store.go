// Package session keeps per-user conversation state and shopping carts
// in TTL caches. Everything here is in-memory; restart loss is
// acceptable for both tiers.
package session

import (
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/tnyamukapa/shopbot/internal/boterr"
)

// CartItem is one line of a cart. Quantity is always >= 1.
type CartItem struct {
	ProductID  string
	Name       string
	UnitPrice  float64
	Quantity   int
	MerchantID string
}

// Cart invariant: Total always equals the sum over items of
// UnitPrice*Quantity. Mutations go through the store, which recomputes
// Total before persisting.
type Cart struct {
	Items     []CartItem
	Total     float64
	UpdatedAt time.Time
}

func (c *Cart) recompute() {
	total := 0.0
	for _, item := range c.Items {
		total += item.UnitPrice * float64(item.Quantity)
	}
	c.Total = total
	c.UpdatedAt = time.Now()
}

func (c Cart) clone() Cart {
	out := c
	out.Items = make([]CartItem, len(c.Items))
	copy(out.Items, c.Items)
	return out
}

// Session is ephemeral conversation state, recreated lazily after TTL
// expiry.
type Session struct {
	LastIntent   string
	PendingStep  string
	RiddleAnswer string
	TriviaAnswer string
	CommandCount int
	LastSeen     time.Time
}

// Store owns the session and cart caches. Cart mutations for one user
// are serialized by a per-user lock so two rapid messages cannot lose
// an update.
type Store struct {
	sessions *gocache.Cache
	carts    *gocache.Cache
	locks    sync.Map // userID -> *sync.Mutex
}

func NewStore(sessionTTL, cartTTL time.Duration) *Store {
	return &Store{
		sessions: gocache.New(sessionTTL, sessionTTL),
		carts:    gocache.New(cartTTL, cartTTL),
	}
}

func (s *Store) lockFor(userID string) *sync.Mutex {
	mu, _ := s.locks.LoadOrStore(userID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// Session returns the user's session, creating an empty one on first
// access.
func (s *Store) Session(userID string) Session {
	if v, ok := s.sessions.Get(userID); ok {
		return v.(Session)
	}
	sess := Session{LastSeen: time.Now()}
	s.sessions.SetDefault(userID, sess)
	return sess
}

func (s *Store) PutSession(userID string, sess Session) {
	sess.LastSeen = time.Now()
	s.sessions.SetDefault(userID, sess)
}

// Cart returns a copy of the user's cart, creating an empty one on
// first access. Callers mutate the copy and persist via SetCart.
func (s *Store) Cart(userID string) Cart {
	mu := s.lockFor(userID)
	mu.Lock()
	defer mu.Unlock()
	return s.cartLocked(userID)
}

func (s *Store) cartLocked(userID string) Cart {
	if v, ok := s.carts.Get(userID); ok {
		return v.(Cart).clone()
	}
	cart := Cart{UpdatedAt: time.Now()}
	s.carts.SetDefault(userID, cart)
	return cart
}

// SetCart overwrites the stored cart. Total is recomputed as a
// postcondition regardless of what the caller left in it.
func (s *Store) SetCart(userID string, cart Cart) Cart {
	mu := s.lockFor(userID)
	mu.Lock()
	defer mu.Unlock()
	cart.recompute()
	s.carts.SetDefault(userID, cart.clone())
	return cart
}

func (s *Store) ClearCart(userID string) {
	mu := s.lockFor(userID)
	mu.Lock()
	defer mu.Unlock()
	s.carts.Delete(userID)
}

// AddItem merges by ProductID: an existing line gains quantity, a new
// product appends a line. The read-modify-write is atomic per user.
func (s *Store) AddItem(userID string, item CartItem) (Cart, error) {
	if item.Quantity < 1 {
		return Cart{}, boterr.New(boterr.InvalidQuantity, "Quantity must be a whole number of at least 1.")
	}

	mu := s.lockFor(userID)
	mu.Lock()
	defer mu.Unlock()

	cart := s.cartLocked(userID)
	merged := false
	for i := range cart.Items {
		if cart.Items[i].ProductID == item.ProductID {
			cart.Items[i].Quantity += item.Quantity
			merged = true
			break
		}
	}
	if !merged {
		cart.Items = append(cart.Items, item)
	}
	cart.recompute()
	s.carts.SetDefault(userID, cart.clone())
	return cart, nil
}

// RemoveItem deletes the line at index (zero-based). An index outside
// [0, len) leaves the cart untouched.
func (s *Store) RemoveItem(userID string, index int) (CartItem, Cart, error) {
	mu := s.lockFor(userID)
	mu.Lock()
	defer mu.Unlock()

	cart := s.cartLocked(userID)
	if index < 0 || index >= len(cart.Items) {
		return CartItem{}, Cart{}, boterr.Newf(boterr.OutOfRange, "No cart item at position %d.", index+1)
	}
	removed := cart.Items[index]
	cart.Items = append(cart.Items[:index], cart.Items[index+1:]...)
	cart.recompute()
	s.carts.SetDefault(userID, cart.clone())
	return removed, cart, nil
}

// Counts reports live session and cart entries, used by owner
// diagnostics.
func (s *Store) Counts() (sessions, carts int) {
	return s.sessions.ItemCount(), s.carts.ItemCount()
}
