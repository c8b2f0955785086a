// session/manager.go
package session

import (
	"context"
	"log"
	"sync"

	"go-foodorder/cart"
	"go-foodorder/checkout"
	"go-foodorder/services"
)

// Session bundles everything scoped to one browser session: auth state,
// the cart engine, the token-bound service clients and the checkout flow.
type Session struct {
	ID       string
	State    *State
	Cart     *cart.Engine
	Checkout *checkout.Orchestrator
	Auth     *services.AuthService
	Users    *services.UserService
	Orders   *services.OrderService
	Payments *services.PaymentService
	Delivery *services.DeliveryService

	resolveMu sync.Mutex
}

// Resolve runs the one-time startup check before the first cart or auth
// operation: adopt a bearer token the client still holds (validating it
// against the auth service), and load the cart backend matching the
// outcome. Until this has run the session is in the loading phase and no
// handler may touch the cart, or a returning guest's persisted snapshot
// would be clobbered by writes to a never-loaded empty cart. Subsequent
// calls are no-ops.
func (s *Session) Resolve(ctx context.Context, bearerToken string) {
	s.resolveMu.Lock()
	defer s.resolveMu.Unlock()

	if !s.State.IsLoading() {
		return
	}

	if bearerToken != "" {
		s.State.SetAccessToken(bearerToken)
		if user, err := s.Auth.Validate(ctx); err == nil {
			s.State.Login(*user, s.State.AccessToken(), "")
			if err := s.Cart.SwitchBackend(ctx, true); err != nil {
				log.Printf("[session] loading remote cart failed: %v", err)
			}
		} else {
			log.Printf("[session] startup auth check rejected: %v", err)
			s.State.Logout()
		}
	}
	if !s.State.IsAuthenticated() {
		if err := s.Cart.LoadFromLocal(ctx); err != nil {
			log.Printf("[session] loading guest cart failed: %v", err)
		}
	}
	s.State.SetLoading(false)
}

// Factory builds a fully wired Session for a new session id. main.go
// provides it so all dependency injection happens in one place.
type Factory func(id string) *Session

// Manager tracks live sessions by id, creating them on first use.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	factory  Factory
}

// NewManager creates a Manager with the given session factory.
func NewManager(factory Factory) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		factory:  factory,
	}
}

// Get returns the session for an id, creating it when absent.
func (m *Manager) Get(id string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if sess, ok := m.sessions[id]; ok {
		return sess
	}
	sess := m.factory(id)
	m.sessions[id] = sess
	return sess
}

// Drop removes a session, e.g. after logout of a long-idle session.
func (m *Manager) Drop(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}
