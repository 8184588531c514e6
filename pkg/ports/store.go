package ports

import (
	"context"

	"github.com/aretw0/turing/pkg/domain"
)

// ListingStore persists enumeration results so repeated requests for the same
// machine and ceiling do not rerun the dovetailer.
type ListingStore interface {
	// Save persists the listing under key, replacing any previous value.
	Save(ctx context.Context, key string, listing *domain.Listing) error

	// Load retrieves the listing under key.
	// Returns domain.ErrListingNotFound if there is none.
	Load(ctx context.Context, key string) (*domain.Listing, error)

	// Delete removes the listing under key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// List returns the stored keys.
	List(ctx context.Context) ([]string, error)
}
