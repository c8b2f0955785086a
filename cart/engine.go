// cart/engine.go
package cart

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"go-foodorder/models"
)

// Session reports the auth state that selects the cart backend.
type Session interface {
	IsAuthenticated() bool
}

// Catalog is the slice of the catalog service the engine needs to
// revalidate persisted carts against the live menu.
type Catalog interface {
	GetMenuItem(ctx context.Context, itemID string) (*models.MenuItem, error)
	GetRestaurantMenu(ctx context.Context, restaurantID string) ([]models.MenuItem, error)
}

// Engine owns the authoritative in-memory cart for one browser session
// and keeps it synchronized with whichever backend matches the session
// state: the guest snapshot store before login, the user service after.
// Mutations are optimistic: the in-memory cart changes first, then a
// persist is queued through a single in-flight slot.
type Engine struct {
	mu           sync.Mutex
	items        []models.LineItem
	restaurantID string
	subtotal     float64
	total        float64
	loadErr      error

	session Session
	local   Store
	remote  Store
	catalog Catalog
	persist *syncer
}

// NewEngine creates an engine with its collaborators injected. Nothing is
// loaded yet; callers drive the first load via Reload or SwitchBackend.
func NewEngine(session Session, local, remote Store, catalog Catalog) *Engine {
	return &Engine{
		session: session,
		local:   local,
		remote:  remote,
		catalog: catalog,
		persist: newSyncer(),
	}
}

// storeFor is the backend selection policy: remote once authenticated,
// guest snapshot otherwise.
func storeFor(authenticated bool, local, remote Store) Store {
	if authenticated {
		return remote
	}
	return local
}

// Cart returns a copy of the current cart with computed totals.
func (e *Engine) Cart() models.Cart {
	e.mu.Lock()
	defer e.mu.Unlock()

	items := make([]models.LineItem, len(e.items))
	copy(items, e.items)
	return models.Cart{
		Items:        items,
		RestaurantID: e.restaurantID,
		Subtotal:     e.subtotal,
		DeliveryFee:  0,
		Total:        e.total,
	}
}

// ItemQuantity returns the quantity of one line, zero when absent.
func (e *Engine) ItemQuantity(itemID string) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, item := range e.items {
		if item.ItemID == itemID {
			return item.Quantity
		}
	}
	return 0
}

// TotalItems returns the summed quantity across all lines.
func (e *Engine) TotalItems() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	n := 0
	for _, item := range e.items {
		n += item.Quantity
	}
	return n
}

// LastLoadError reports the most recent failed load, nil after a
// successful one. A failed load never clears a previously loaded cart.
func (e *Engine) LastLoadError() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.loadErr
}

// AddItem puts one unit of a menu item in the cart. Adding from a second
// restaurant is rejected with ErrRestaurantMismatch and leaves the cart
// untouched.
func (e *Engine) AddItem(item models.MenuItem) error {
	e.mu.Lock()
	if e.restaurantID != "" && e.restaurantID != item.RestaurantID {
		e.mu.Unlock()
		return ErrRestaurantMismatch
	}

	found := false
	for i := range e.items {
		if e.items[i].ItemID == item.ItemID {
			e.items[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		e.items = append(e.items, models.LineItem{
			ItemID:       item.ItemID,
			RestaurantID: item.RestaurantID,
			Name:         item.Name,
			Price:        item.Price,
			Quantity:     1,
			IsAvailable:  item.IsAvailable,
		})
		if e.restaurantID == "" {
			e.restaurantID = item.RestaurantID
		}
	}
	e.recompute()
	e.mu.Unlock()

	e.schedulePersist()
	return nil
}

// RemoveItem deletes a line. Removing the last line clears the
// restaurant constraint.
func (e *Engine) RemoveItem(itemID string) {
	e.mu.Lock()
	kept := e.items[:0]
	for _, item := range e.items {
		if item.ItemID != itemID {
			kept = append(kept, item)
		}
	}
	e.items = kept
	if len(e.items) == 0 {
		e.restaurantID = ""
	}
	e.recompute()
	e.mu.Unlock()

	e.schedulePersist()
}

// UpdateQuantity sets a line's quantity. Zero or negative is equivalent
// to RemoveItem.
func (e *Engine) UpdateQuantity(itemID string, quantity int) {
	if quantity <= 0 {
		e.RemoveItem(itemID)
		return
	}

	e.mu.Lock()
	for i := range e.items {
		if e.items[i].ItemID == itemID {
			e.items[i].Quantity = quantity
			break
		}
	}
	e.recompute()
	e.mu.Unlock()

	e.schedulePersist()
}

// ClearCart empties the cart. Idempotent; clearing an already empty cart
// persists an empty cart again without error.
func (e *Engine) ClearCart() {
	e.mu.Lock()
	e.reset()
	e.mu.Unlock()

	e.schedulePersist()
}

// SetRestaurant switches the cart to a restaurant. Items from a previous
// restaurant are discarded without confirmation; the number of discarded
// lines is returned so the caller can warn or prompt.
func (e *Engine) SetRestaurant(restaurantID string) int {
	e.mu.Lock()
	discarded := 0
	if e.restaurantID != "" && e.restaurantID != restaurantID {
		discarded = len(e.items)
		e.reset()
	}
	e.restaurantID = restaurantID
	e.mu.Unlock()

	if discarded > 0 {
		e.schedulePersist()
	}
	return discarded
}

// LoadFromRemote fetches the persisted id+quantity pairs from the user
// service, revalidates them against the live menu and replaces the
// in-memory cart. Items that no longer resolve are kept but marked
// unavailable. A fetch failure leaves the previous cart intact.
func (e *Engine) LoadFromRemote(ctx context.Context) error {
	lines, _, err := e.remote.Load(ctx)
	if err != nil {
		return e.failLoad(fmt.Errorf("loading remote cart: %w", err))
	}

	refs := make([]models.ItemRef, 0, len(lines))
	for _, line := range lines {
		refs = append(refs, models.ItemRef{ItemID: line.ItemID, Quantity: line.Quantity})
	}
	if len(refs) == 0 {
		e.mu.Lock()
		e.reset()
		e.loadErr = nil
		e.mu.Unlock()
		return nil
	}

	// The remote store has no restaurant id; recover it from the first
	// line that still resolves in the catalog.
	restaurantID := ""
	var menu []models.MenuItem
	for _, ref := range refs {
		entry, err := e.catalog.GetMenuItem(ctx, ref.ItemID)
		if err != nil {
			log.Printf("[cart] item %s did not resolve: %v", ref.ItemID, err)
			continue
		}
		restaurantID = entry.RestaurantID
		break
	}
	if restaurantID != "" {
		menu, err = e.catalog.GetRestaurantMenu(ctx, restaurantID)
		if err != nil {
			return e.failLoad(fmt.Errorf("loading menu for cart revalidation: %w", err))
		}
	}

	items := Resolve(refs, restaurantID, menu)
	e.replace(items, restaurantID)

	if n := unavailableCount(items); n > 0 {
		log.Printf("[cart] %d item(s) in cart are no longer available", n)
	}
	return nil
}

// LoadFromLocal restores the guest snapshot for this session.
func (e *Engine) LoadFromLocal(ctx context.Context) error {
	items, restaurantID, err := e.local.Load(ctx)
	if err != nil {
		return e.failLoad(err)
	}
	e.replace(items, restaurantID)
	return nil
}

// Reload loads from whichever backend the session state selects.
func (e *Engine) Reload(ctx context.Context) error {
	if e.session.IsAuthenticated() {
		return e.LoadFromRemote(ctx)
	}
	return e.LoadFromLocal(ctx)
}

// SwitchBackend reacts to an auth transition. Newly authenticated: the
// server cart is authoritative and replaces the in-memory one (merge
// first if the guest cart should survive, see MergeGuestCartIntoRemote).
// Newly unauthenticated: reset and fall back to the guest store.
func (e *Engine) SwitchBackend(ctx context.Context, authenticated bool) error {
	if authenticated {
		return e.LoadFromRemote(ctx)
	}
	e.mu.Lock()
	e.reset()
	e.loadErr = nil
	e.mu.Unlock()
	return nil
}

// MergeGuestCartIntoRemote uploads the guest cart to the user service.
// Called exactly once, right after a guest completes login or signup and
// before the backend switch, so an in-progress cart is not lost. An empty
// guest cart is never uploaded (it would clobber the server cart).
func (e *Engine) MergeGuestCartIntoRemote(ctx context.Context) error {
	e.mu.Lock()
	items := make([]models.LineItem, len(e.items))
	copy(items, e.items)
	restaurantID := e.restaurantID
	e.mu.Unlock()

	if len(items) == 0 {
		return nil
	}
	if err := e.remote.Save(ctx, items, restaurantID); err != nil {
		return fmt.Errorf("merging guest cart: %w", err)
	}
	return nil
}

// Flush blocks until all queued persists have run. Used by tests and by
// graceful shutdown.
func (e *Engine) Flush() {
	e.persist.wait()
}

// reset and recompute require e.mu held.

func (e *Engine) reset() {
	e.items = nil
	e.restaurantID = ""
	e.subtotal = 0
	e.total = 0
}

func (e *Engine) recompute() {
	e.subtotal = Subtotal(e.items)
	// Delivery fee is resolved at checkout from restaurant data, never
	// stored in the cart.
	e.total = e.subtotal
}

func (e *Engine) replace(items []models.LineItem, restaurantID string) {
	e.mu.Lock()
	e.items = items
	e.restaurantID = restaurantID
	e.recompute()
	e.loadErr = nil
	e.mu.Unlock()
}

func (e *Engine) failLoad(err error) error {
	e.mu.Lock()
	e.loadErr = err
	e.mu.Unlock()
	return err
}

// schedulePersist queues a write of the current lines to the backend the
// session selects at write time. Failures are logged and retried on the
// next mutation; the in-memory cart is never touched by a failed persist.
func (e *Engine) schedulePersist() {
	e.mu.Lock()
	items := make([]models.LineItem, len(e.items))
	copy(items, e.items)
	restaurantID := e.restaurantID
	e.mu.Unlock()

	e.persist.schedule(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		store := storeFor(e.session.IsAuthenticated(), e.local, e.remote)
		if err := store.Save(ctx, items, restaurantID); err != nil {
			log.Printf("[cart] persist failed, will retry on next change: %v", err)
		}
	})
}

func unavailableCount(items []models.LineItem) int {
	n := 0
	for _, item := range items {
		if !item.IsAvailable {
			n++
		}
	}
	return n
}
