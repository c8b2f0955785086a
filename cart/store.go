package cart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"go-foodorder/models"
	"go-foodorder/services"
)

// Store abstracts where a cart is persisted. Two implementations exist:
// LocalStore for guest sessions and RemoteStore for authenticated users.
// The engine selects between them from the session state.
type Store interface {
	// Load returns the persisted lines and restaurant id. The remote
	// store only persists ids and quantities, so its lines come back
	// with zero detail fields and must go through Resolve.
	Load(ctx context.Context) ([]models.LineItem, string, error)
	Save(ctx context.Context, items []models.LineItem, restaurantID string) error
	Clear(ctx context.Context) error
}

// LocalStore keeps guest cart snapshots in the storefront's own database,
// one document per browser session, in the same shape the browser client
// used: {items, restaurant_id}.
type LocalStore struct {
	collection *mongo.Collection
	sessionID  string
}

// NewLocalStore creates a LocalStore bound to one browser session
func NewLocalStore(client *mongo.Client, sessionID string) *LocalStore {
	collection := client.Database("foodorder").Collection("guest_carts")
	return &LocalStore{collection: collection, sessionID: sessionID}
}

func (s *LocalStore) Load(ctx context.Context) ([]models.LineItem, string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var snapshot models.CartSnapshot
	err := s.collection.FindOne(ctx, bson.M{"_id": s.sessionID}).Decode(&snapshot)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("loading guest cart: %w", err)
	}
	return snapshot.Items, snapshot.RestaurantID, nil
}

func (s *LocalStore) Save(ctx context.Context, items []models.LineItem, restaurantID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if items == nil {
		items = []models.LineItem{}
	}
	update := bson.M{"$set": bson.M{"items": items, "restaurant_id": restaurantID}}
	_, err := s.collection.UpdateOne(ctx, bson.M{"_id": s.sessionID}, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("saving guest cart: %w", err)
	}
	return nil
}

func (s *LocalStore) Clear(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := s.collection.DeleteOne(ctx, bson.M{"_id": s.sessionID}); err != nil {
		return fmt.Errorf("clearing guest cart: %w", err)
	}
	return nil
}

// RemoteStore persists the cart through the user service. Only item ids
// and quantities cross the wire; detail is revalidated on load.
type RemoteStore struct {
	users *services.UserService
}

// NewRemoteStore creates a RemoteStore backed by the user service
func NewRemoteStore(users *services.UserService) *RemoteStore {
	return &RemoteStore{users: users}
}

func (s *RemoteStore) Load(ctx context.Context) ([]models.LineItem, string, error) {
	refs, err := s.users.GetCart(ctx)
	if err != nil {
		return nil, "", err
	}
	items := make([]models.LineItem, 0, len(refs))
	for _, ref := range refs {
		items = append(items, models.LineItem{ItemID: ref.ItemID, Quantity: ref.Quantity})
	}
	return items, "", nil
}

func (s *RemoteStore) Save(ctx context.Context, items []models.LineItem, _ string) error {
	refs := make([]models.ItemRef, 0, len(items))
	for _, item := range items {
		refs = append(refs, models.ItemRef{ItemID: item.ItemID, Quantity: item.Quantity})
	}
	return s.users.UpdateCart(ctx, refs)
}

func (s *RemoteStore) Clear(ctx context.Context) error {
	return s.users.UpdateCart(ctx, nil)
}
