package cart

import "go-foodorder/models"

// UnavailableName is the display name given to cart lines whose menu
// entry no longer exists.
const UnavailableName = "Item no longer available"

// Resolve cross-checks persisted cart lines against a live menu. Found
// items copy name, price, availability and restaurant from the menu entry;
// the menu price is authoritative, never a cached one. Items missing from
// the menu are kept but marked unavailable with a zero price so user
// intent survives a menu change. Pure function, safe to call repeatedly.
func Resolve(refs []models.ItemRef, restaurantID string, menu []models.MenuItem) []models.LineItem {
	byID := make(map[string]models.MenuItem, len(menu))
	for _, entry := range menu {
		byID[entry.ItemID] = entry
	}

	items := make([]models.LineItem, 0, len(refs))
	for _, ref := range refs {
		entry, ok := byID[ref.ItemID]
		if !ok {
			items = append(items, models.LineItem{
				ItemID:       ref.ItemID,
				RestaurantID: restaurantID,
				Name:         UnavailableName,
				Price:        0,
				Quantity:     ref.Quantity,
				IsAvailable:  false,
			})
			continue
		}
		items = append(items, models.LineItem{
			ItemID:       ref.ItemID,
			RestaurantID: entry.RestaurantID,
			Name:         entry.Name,
			Price:        entry.Price,
			Quantity:     ref.Quantity,
			IsAvailable:  entry.IsAvailable,
		})
	}
	return items
}

// Subtotal sums price times quantity over available lines only.
// Unavailable lines never contribute.
func Subtotal(items []models.LineItem) float64 {
	var sum float64
	for _, item := range items {
		if item.IsAvailable {
			sum += item.Price * float64(item.Quantity)
		}
	}
	return sum
}
