// Package store contains the client-side cart and wishlist state.
package store

import "errors"

var ErrNoSession = errors.New("no user session")
var ErrInvalidProductID = errors.New("invalid product reference")
