package domain

import (
	"context"
	"errors"
)

// ErrSettlementNotFound means the autocomplete API returned no entry for the
// requested name. It is a configuration-level failure, unlike a parse that
// finds no forecast table.
var ErrSettlementNotFound = errors.New("settlement not found")

// Resolver maps a settlement name to its met.hu identifiers.
type Resolver interface {
	Resolve(ctx context.Context, name string) (Settlement, error)
}

// Fetcher retrieves the raw forecast markup for a resolved settlement.
type Fetcher interface {
	Fetch(ctx context.Context, settlement Settlement) (string, error)
}
