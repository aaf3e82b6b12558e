package cart

import "sync"

// Store keeps one cart per logged-in staff member.
type Store struct {
	mu    sync.Mutex
	carts map[uint]*Cart
}

func NewStore() *Store {
	return &Store{carts: map[uint]*Cart{}}
}

// Get returns the staff member's cart, creating an empty one on first use.
func (s *Store) Get(userID uint) *Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.carts[userID]
	if !ok {
		c = New()
		s.carts[userID] = c
	}
	return c
}

// Drop forgets the cart, e.g. on logout.
func (s *Store) Drop(userID uint) {
	s.mu.Lock()
	delete(s.carts, userID)
	s.mu.Unlock()
}
