package cart

import "errors"

// ErrRestaurantMismatch rejects an add from a different restaurant than
// the cart currently holds. The cart is left untouched; callers should
// prompt the user to clear it first.
var ErrRestaurantMismatch = errors.New("cart holds items from a different restaurant")
