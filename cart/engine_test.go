package cart

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-foodorder/models"
)

type fakeSession struct{ authenticated bool }

func (s *fakeSession) IsAuthenticated() bool { return s.authenticated }

// memStore is an in-memory Store with injectable failures.
type memStore struct {
	mu           sync.Mutex
	items        []models.LineItem
	restaurantID string
	saves        int
	loadErr      error
	saveErr      error
}

func (s *memStore) Load(ctx context.Context) ([]models.LineItem, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadErr != nil {
		return nil, "", s.loadErr
	}
	items := make([]models.LineItem, len(s.items))
	copy(items, s.items)
	return items, s.restaurantID, nil
}

func (s *memStore) Save(ctx context.Context, items []models.LineItem, restaurantID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.items = make([]models.LineItem, len(items))
	copy(s.items, items)
	s.restaurantID = restaurantID
	s.saves++
	return nil
}

func (s *memStore) Clear(ctx context.Context) error {
	return s.Save(ctx, nil, "")
}

func (s *memStore) saved() ([]models.LineItem, string, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]models.LineItem, len(s.items))
	copy(items, s.items)
	return items, s.restaurantID, s.saves
}

type fakeCatalog struct {
	menu    map[string]models.MenuItem
	menuErr error
}

func (c *fakeCatalog) GetMenuItem(ctx context.Context, itemID string) (*models.MenuItem, error) {
	if item, ok := c.menu[itemID]; ok {
		return &item, nil
	}
	return nil, errors.New("menu item not found")
}

func (c *fakeCatalog) GetRestaurantMenu(ctx context.Context, restaurantID string) ([]models.MenuItem, error) {
	if c.menuErr != nil {
		return nil, c.menuErr
	}
	var out []models.MenuItem
	for _, item := range c.menu {
		if item.RestaurantID == restaurantID {
			out = append(out, item)
		}
	}
	return out, nil
}

func pizzaCatalog() *fakeCatalog {
	return &fakeCatalog{menu: map[string]models.MenuItem{
		"m1": {ItemID: "m1", RestaurantID: "r1", Name: "Margherita", Price: 9.5, IsAvailable: true},
		"m2": {ItemID: "m2", RestaurantID: "r1", Name: "Calzone", Price: 11, IsAvailable: true},
		"s1": {ItemID: "s1", RestaurantID: "r2", Name: "Nigiri Set", Price: 18, IsAvailable: true},
	}}
}

func newTestEngine(authenticated bool) (*Engine, *memStore, *memStore, *fakeCatalog) {
	local := &memStore{}
	remote := &memStore{}
	catalog := pizzaCatalog()
	e := NewEngine(&fakeSession{authenticated: authenticated}, local, remote, catalog)
	return e, local, remote, catalog
}

func TestAddItemComputesTotals(t *testing.T) {
	e, _, _, catalog := newTestEngine(false)

	require.NoError(t, e.AddItem(catalog.menu["m1"]))
	require.NoError(t, e.AddItem(catalog.menu["m1"]))
	require.NoError(t, e.AddItem(catalog.menu["m2"]))
	e.Flush()

	c := e.Cart()
	assert.Len(t, c.Items, 2)
	assert.Equal(t, 2, e.ItemQuantity("m1"))
	assert.Equal(t, 3, e.TotalItems())
	assert.Equal(t, "r1", c.RestaurantID)
	assert.Equal(t, 30.0, c.Subtotal)
	assert.Equal(t, 30.0, c.Total)
}

func TestAddItemRejectsSecondRestaurant(t *testing.T) {
	e, _, _, catalog := newTestEngine(false)

	require.NoError(t, e.AddItem(catalog.menu["m1"]))
	err := e.AddItem(catalog.menu["s1"])
	e.Flush()

	assert.ErrorIs(t, err, ErrRestaurantMismatch)
	c := e.Cart()
	assert.Len(t, c.Items, 1)
	assert.Equal(t, "r1", c.RestaurantID)
}

func TestRemoveLastItemClearsRestaurant(t *testing.T) {
	e, _, _, catalog := newTestEngine(false)

	require.NoError(t, e.AddItem(catalog.menu["m1"]))
	e.RemoveItem("m1")
	e.Flush()

	c := e.Cart()
	assert.Empty(t, c.Items)
	assert.Equal(t, "", c.RestaurantID)

	// And a different restaurant is accepted again.
	assert.NoError(t, e.AddItem(catalog.menu["s1"]))
	e.Flush()
}

func TestUpdateQuantityZeroRemoves(t *testing.T) {
	e, _, _, catalog := newTestEngine(false)
	require.NoError(t, e.AddItem(catalog.menu["m1"]))
	require.NoError(t, e.AddItem(catalog.menu["m2"]))

	e.UpdateQuantity("m1", 0)
	e.Flush()
	assert.Equal(t, 0, e.ItemQuantity("m1"))
	assert.Len(t, e.Cart().Items, 1)

	e.UpdateQuantity("m2", -5)
	e.Flush()
	assert.Empty(t, e.Cart().Items)
	assert.Equal(t, "", e.Cart().RestaurantID)
}

func TestUpdateQuantitySetsExactValue(t *testing.T) {
	e, _, _, catalog := newTestEngine(false)
	require.NoError(t, e.AddItem(catalog.menu["m1"]))

	e.UpdateQuantity("m1", 4)
	e.Flush()

	assert.Equal(t, 4, e.ItemQuantity("m1"))
	assert.Equal(t, 38.0, e.Cart().Subtotal)
}

func TestClearCartIsIdempotent(t *testing.T) {
	e, local, _, catalog := newTestEngine(false)
	require.NoError(t, e.AddItem(catalog.menu["m1"]))

	e.ClearCart()
	e.ClearCart()
	e.Flush()

	assert.Empty(t, e.Cart().Items)
	items, restaurantID, _ := local.saved()
	assert.Empty(t, items)
	assert.Equal(t, "", restaurantID)
}

func TestSetRestaurantDiscardsOtherRestaurantItems(t *testing.T) {
	e, _, _, catalog := newTestEngine(false)
	require.NoError(t, e.AddItem(catalog.menu["m1"]))
	require.NoError(t, e.AddItem(catalog.menu["m2"]))

	discarded := e.SetRestaurant("r2")
	e.Flush()

	assert.Equal(t, 2, discarded)
	c := e.Cart()
	assert.Empty(t, c.Items)
	assert.Equal(t, "r2", c.RestaurantID)
}

func TestSetRestaurantSameRestaurantKeepsItems(t *testing.T) {
	e, local, _, catalog := newTestEngine(false)
	require.NoError(t, e.AddItem(catalog.menu["m1"]))
	e.Flush()
	_, _, savesBefore := local.saved()

	discarded := e.SetRestaurant("r1")
	e.Flush()

	assert.Equal(t, 0, discarded)
	assert.Len(t, e.Cart().Items, 1)
	_, _, savesAfter := local.saved()
	assert.Equal(t, savesBefore, savesAfter)
}

func TestPersistWritesToGuestStore(t *testing.T) {
	e, local, remote, catalog := newTestEngine(false)

	require.NoError(t, e.AddItem(catalog.menu["m1"]))
	e.Flush()

	items, restaurantID, _ := local.saved()
	require.Len(t, items, 1)
	assert.Equal(t, "m1", items[0].ItemID)
	assert.Equal(t, "r1", restaurantID)
	_, _, remoteSaves := remote.saved()
	assert.Zero(t, remoteSaves)
}

func TestPersistWritesToRemoteStoreWhenAuthenticated(t *testing.T) {
	e, local, remote, catalog := newTestEngine(true)

	require.NoError(t, e.AddItem(catalog.menu["m1"]))
	e.Flush()

	_, _, localSaves := local.saved()
	assert.Zero(t, localSaves)
	items, _, _ := remote.saved()
	require.Len(t, items, 1)
}

func TestPersistFailureKeepsInMemoryCart(t *testing.T) {
	e, local, _, catalog := newTestEngine(false)
	local.saveErr = errors.New("mongo down")

	require.NoError(t, e.AddItem(catalog.menu["m1"]))
	e.Flush()

	assert.Len(t, e.Cart().Items, 1)
}

func TestLoadFromLocalRestoresSnapshot(t *testing.T) {
	e, local, _, _ := newTestEngine(false)
	local.items = []models.LineItem{
		{ItemID: "m1", RestaurantID: "r1", Name: "Margherita", Price: 9.5, Quantity: 2, IsAvailable: true},
	}
	local.restaurantID = "r1"

	require.NoError(t, e.LoadFromLocal(context.Background()))

	c := e.Cart()
	assert.Len(t, c.Items, 1)
	assert.Equal(t, "r1", c.RestaurantID)
	assert.Equal(t, 19.0, c.Subtotal)
	assert.NoError(t, e.LastLoadError())
}

func TestLoadFromRemoteRevalidatesAgainstMenu(t *testing.T) {
	e, _, remote, _ := newTestEngine(true)
	remote.items = []models.LineItem{
		{ItemID: "m1", Quantity: 2},
		{ItemID: "gone", Quantity: 1},
	}

	require.NoError(t, e.LoadFromRemote(context.Background()))

	c := e.Cart()
	require.Len(t, c.Items, 2)
	assert.Equal(t, "r1", c.RestaurantID)
	assert.Equal(t, "Margherita", c.Items[0].Name)
	assert.True(t, c.Items[0].IsAvailable)
	assert.Equal(t, UnavailableName, c.Items[1].Name)
	assert.False(t, c.Items[1].IsAvailable)
	// The stale line never contributes to the subtotal.
	assert.Equal(t, 19.0, c.Subtotal)
}

func TestLoadFromRemoteEmptyCart(t *testing.T) {
	e, _, _, _ := newTestEngine(true)

	require.NoError(t, e.LoadFromRemote(context.Background()))

	assert.Empty(t, e.Cart().Items)
	assert.NoError(t, e.LastLoadError())
}

func TestLoadFailurePreservesPreviousCart(t *testing.T) {
	e, _, remote, catalog := newTestEngine(true)
	require.NoError(t, e.AddItem(catalog.menu["m1"]))
	e.Flush()

	remote.loadErr = errors.New("user service unreachable")
	err := e.LoadFromRemote(context.Background())

	assert.Error(t, err)
	assert.Len(t, e.Cart().Items, 1)
	assert.Error(t, e.LastLoadError())
}

func TestMenuFetchFailurePreservesPreviousCart(t *testing.T) {
	e, _, remote, catalog := newTestEngine(true)
	require.NoError(t, e.AddItem(catalog.menu["m1"]))
	e.Flush()

	remote.items = []models.LineItem{{ItemID: "m2", Quantity: 1}}
	catalog.menuErr = errors.New("catalog unreachable")
	err := e.LoadFromRemote(context.Background())

	assert.Error(t, err)
	assert.Equal(t, "m1", e.Cart().Items[0].ItemID)
}

func TestSuccessfulLoadClearsLoadError(t *testing.T) {
	e, _, remote, _ := newTestEngine(true)
	remote.loadErr = errors.New("transient")
	require.Error(t, e.LoadFromRemote(context.Background()))
	require.Error(t, e.LastLoadError())

	remote.loadErr = nil
	remote.items = []models.LineItem{{ItemID: "m1", Quantity: 1}}
	require.NoError(t, e.LoadFromRemote(context.Background()))

	assert.NoError(t, e.LastLoadError())
}

func TestMergeGuestCartIntoRemote(t *testing.T) {
	e, _, remote, catalog := newTestEngine(false)
	require.NoError(t, e.AddItem(catalog.menu["m1"]))
	require.NoError(t, e.AddItem(catalog.menu["m1"]))
	e.Flush()

	require.NoError(t, e.MergeGuestCartIntoRemote(context.Background()))

	items, restaurantID, _ := remote.saved()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, "r1", restaurantID)
}

func TestMergeSkipsEmptyGuestCart(t *testing.T) {
	e, _, remote, _ := newTestEngine(false)

	require.NoError(t, e.MergeGuestCartIntoRemote(context.Background()))

	_, _, saves := remote.saved()
	assert.Zero(t, saves, "an empty guest cart must not clobber the server cart")
}

func TestSwitchBackendToGuestResets(t *testing.T) {
	session := &fakeSession{authenticated: true}
	local := &memStore{}
	remote := &memStore{}
	catalog := pizzaCatalog()
	e := NewEngine(session, local, remote, catalog)
	require.NoError(t, e.AddItem(catalog.menu["m1"]))
	e.Flush()

	session.authenticated = false
	require.NoError(t, e.SwitchBackend(context.Background(), false))

	assert.Empty(t, e.Cart().Items)
}

func TestReloadFollowsSessionState(t *testing.T) {
	session := &fakeSession{authenticated: false}
	local := &memStore{
		items:        []models.LineItem{{ItemID: "m1", RestaurantID: "r1", Name: "Margherita", Price: 9.5, Quantity: 1, IsAvailable: true}},
		restaurantID: "r1",
	}
	remote := &memStore{items: []models.LineItem{{ItemID: "s1", Quantity: 1}}}
	e := NewEngine(session, local, remote, pizzaCatalog())

	require.NoError(t, e.Reload(context.Background()))
	assert.Equal(t, "m1", e.Cart().Items[0].ItemID)

	session.authenticated = true
	require.NoError(t, e.Reload(context.Background()))
	assert.Equal(t, "s1", e.Cart().Items[0].ItemID)
	assert.Equal(t, "r2", e.Cart().RestaurantID)
}
