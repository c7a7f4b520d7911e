package token

import (
	"context"
	"errors"
	"fmt"

	"github.com/martonlederer/ao-tokens/quantity"
)

// ErrTokenNotFound is returned when a token's details cannot be resolved.
var ErrTokenNotFound = errors.New("token not found")

// DetailsService defines the interface for retrieving token details.
type DetailsService interface {
	// GetTokenDetails retrieves the token details for the given process ID.
	// If no details are found, it returns nil without an error.
	GetTokenDetails(ctx context.Context, processID string) (*Details, error)
}

// IsQuantityOf resolves the token with the given process ID and reports whether
// q is expressed in its denomination.
func IsQuantityOf(
	ctx context.Context,
	service DetailsService,
	processID string,
	q *quantity.Quantity,
) (bool, error) {
	details, err := service.GetTokenDetails(ctx, processID)
	if err != nil {
		return false, fmt.Errorf("resolve token '%s': %w", processID, err)
	}
	if details == nil {
		return false, fmt.Errorf("resolve token '%s': %w", processID, ErrTokenNotFound)
	}

	return quantity.IsQuantityOf(q, details), nil
}
