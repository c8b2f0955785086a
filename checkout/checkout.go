// checkout/checkout.go
package checkout

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"

	"go-foodorder/models"
	"go-foodorder/services"
)

// State is the orchestrator's position in the checkout flow.
type State int

const (
	StateIdle State = iota
	StateAddressSelection
	StateSubmitting
	StateOrderCreated
	StatePaymentRedirect
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAddressSelection:
		return "address_selection"
	case StateSubmitting:
		return "submitting"
	case StateOrderCreated:
		return "order_created"
	case StatePaymentRedirect:
		return "payment_redirect"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// Cart is the slice of the cart engine checkout consumes.
type Cart interface {
	Cart() models.Cart
	ClearCart()
}

// Session reports who is checking out.
type Session interface {
	IsAuthenticated() bool
	User() *models.User
}

// Orders creates orders on the order service.
type Orders interface {
	CreateOrder(ctx context.Context, req services.CreateOrderRequest) (*models.Order, error)
}

// Payments opens payment sessions.
type Payments interface {
	InitiatePayment(ctx context.Context, orderID string) (*services.PaymentSession, error)
}

// Profile is the address book collaborator.
type Profile interface {
	GetAddresses(ctx context.Context) ([]models.Address, error)
	AddAddress(ctx context.Context, addr models.Address) (*models.Address, error)
}

// Restaurants resolves the delivery fee and open state at checkout time.
type Restaurants interface {
	GetRestaurant(ctx context.Context, restaurantID string) (*models.Restaurant, error)
}

// Mailer sends the order confirmation. Optional.
type Mailer interface {
	SendOrderConfirmation(toEmail string, order models.Order) error
}

// Orchestrator sequences address selection, order creation and the
// handoff to the external payment redirect. Submission is single-flight:
// a second PlaceOrder while one is running is rejected, not queued.
type Orchestrator struct {
	cart     Cart
	session  Session
	orders   Orders
	payments Payments
	profile  Profile
	catalog  Restaurants
	mail     Mailer

	inFlight atomic.Bool

	mu    sync.Mutex
	state State
}

// NewOrchestrator wires a checkout flow for one session. mail may be nil.
func NewOrchestrator(cart Cart, session Session, orders Orders, payments Payments, profile Profile, catalog Restaurants, mail Mailer) *Orchestrator {
	return &Orchestrator{
		cart:     cart,
		session:  session,
		orders:   orders,
		payments: payments,
		profile:  profile,
		catalog:  catalog,
		mail:     mail,
		state:    StateIdle,
	}
}

// State returns the current flow state.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

func (o *Orchestrator) setState(s State) {
	o.mu.Lock()
	o.state = s
	o.mu.Unlock()
}

// BeginResult is what the checkout page renders: the validated cart, the
// saved addresses with a pre-selected one, and restaurant-derived totals.
type BeginResult struct {
	Cart            models.Cart      `json:"cart"`
	Addresses       []models.Address `json:"addresses"`
	SelectedAddress *models.Address  `json:"selectedAddress,omitempty"`
	DeliveryFee     float64          `json:"deliveryFee"`
	Total           float64          `json:"total"`
	RestaurantOpen  bool             `json:"restaurantOpen"`
}

// Begin runs the checkout entry guards and resolves addresses and the
// delivery fee. Unauthenticated users get a LoginRequiredError carrying
// the return path; an empty or structurally corrupt cart blocks entry.
func (o *Orchestrator) Begin(ctx context.Context, returnTo string) (*BeginResult, error) {
	if !o.session.IsAuthenticated() {
		return nil, &LoginRequiredError{ReturnTo: returnTo}
	}

	c := o.cart.Cart()
	if len(c.Items) == 0 {
		return nil, ErrEmptyCart
	}
	for _, item := range c.Items {
		if item.ItemID == "" || item.RestaurantID == "" {
			return nil, ErrCorruptCart
		}
	}

	addresses, err := o.profile.GetAddresses(ctx)
	if err != nil {
		if errors.Is(err, services.ErrAuthExpired) {
			// The base client already logged the session out; there is
			// no session left to check out with.
			return nil, &LoginRequiredError{ReturnTo: returnTo}
		}
		// Manual entry still works without the address book.
		log.Printf("[checkout] loading addresses failed: %v", err)
		addresses = nil
	}

	result := &BeginResult{
		Cart:            c,
		Addresses:       addresses,
		SelectedAddress: ChooseAddress(addresses),
		RestaurantOpen:  true,
		Total:           c.Subtotal,
	}
	if restaurant, err := o.catalog.GetRestaurant(ctx, c.RestaurantID); err != nil {
		log.Printf("[checkout] loading restaurant %s failed: %v", c.RestaurantID, err)
	} else {
		result.DeliveryFee = restaurant.DeliveryFee
		result.Total = c.Subtotal + restaurant.DeliveryFee
		result.RestaurantOpen = restaurant.IsOpen
	}

	o.setState(StateAddressSelection)
	return result, nil
}

// PlaceOrderRequest carries the user's checkout choices.
type PlaceOrderRequest struct {
	Address      models.Address `json:"address"`
	SaveAddress  bool           `json:"saveAddress"`
	AddressLabel string         `json:"addressLabel,omitempty"`
}

// PlaceOrderResult is the successful outcome: the created order and the
// external payment URL the browser navigates to.
type PlaceOrderResult struct {
	Order       *models.Order `json:"order"`
	RedirectURL string        `json:"redirectUrl"`
}

// PlaceOrder validates the address and contact info, creates the order
// and initiates payment. Any failure releases the single-flight lock and
// returns the flow to a retryable state; no partial-order cleanup is
// attempted here, that is the order service's concern.
func (o *Orchestrator) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*PlaceOrderResult, error) {
	if !o.inFlight.CompareAndSwap(false, true) {
		return nil, ErrSubmissionInFlight
	}
	defer o.inFlight.Store(false)

	o.setState(StateSubmitting)

	if missing := MissingAddressFields(req.Address); len(missing) > 0 {
		o.setState(StateAddressSelection)
		return nil, &ValidationError{Missing: missing}
	}

	user := o.session.User()
	if user == nil {
		o.setState(StateAddressSelection)
		return nil, &LoginRequiredError{ReturnTo: "/checkout"}
	}
	if user.Phone == "" {
		// Hard precondition, checked before any network call.
		o.setState(StateAddressSelection)
		return nil, ErrPhoneRequired
	}

	c := o.cart.Cart()
	orderItems := orderableItems(c.Items)
	if len(orderItems) == 0 {
		o.setState(StateAddressSelection)
		return nil, ErrEmptyCart
	}

	if req.SaveAddress {
		addr := req.Address
		addr.Label = req.AddressLabel
		if _, err := o.profile.AddAddress(ctx, addr); err != nil {
			// Side-effect request only; the order still goes through.
			log.Printf("[checkout] saving new address failed: %v", err)
		}
	}

	order, err := o.orders.CreateOrder(ctx, services.CreateOrderRequest{
		RestaurantID:    c.RestaurantID,
		Items:           orderItems,
		DeliveryAddress: req.Address,
		CustomerName:    user.Name,
		CustomerPhone:   user.Phone,
	})
	if err != nil {
		o.setState(StateAddressSelection)
		return nil, fmt.Errorf("%w: %v", ErrOrderCreation, err)
	}
	o.setState(StateOrderCreated)
	log.Printf("[checkout] order %s created for restaurant %s", order.OrderID, c.RestaurantID)

	payment, err := o.payments.InitiatePayment(ctx, order.OrderID)
	if err != nil {
		o.setState(StateAddressSelection)
		return nil, fmt.Errorf("%w: %v", ErrPaymentInitiation, err)
	}
	o.setState(StatePaymentRedirect)

	if o.mail != nil && user.Email != "" {
		go func(email string, order models.Order) {
			if err := o.mail.SendOrderConfirmation(email, order); err != nil {
				log.Printf("[checkout] confirmation email to %s failed: %v", email, err)
			}
		}(user.Email, *order)
	}

	return &PlaceOrderResult{Order: order, RedirectURL: payment.RedirectURL}, nil
}

// Finish runs the post-success step: clear the cart (idempotent, safe
// when already empty) and return the flow to idle. The caller redirects
// to order history after a fixed delay.
func (o *Orchestrator) Finish() {
	o.cart.ClearCart()
	o.setState(StateIdle)
}

// orderableItems maps available cart lines to the order service shape.
// Unavailable lines never reach the order service.
func orderableItems(items []models.LineItem) []models.OrderItem {
	out := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		if !item.IsAvailable {
			continue
		}
		out = append(out, models.OrderItem{ID: item.ItemID, Quantity: item.Quantity, Price: item.Price})
	}
	return out
}
