package service

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrInvalidReorder = errors.New("invalid reorder request")

// applyOrder moves ids to the front in the given order and renumbers every item
// in current (the owner's list in its present order) so positions run 0..n-1.
// Items not named in ids keep their relative order after the named ones.
// Writes happen one at a time with no transaction: a failed write leaves the
// earlier positions in place and returns the error.
func applyOrder(ctx context.Context, ids, current []primitive.ObjectID, write func(ctx context.Context, id primitive.ObjectID, position int) error) error {
	owned := make(map[primitive.ObjectID]struct{}, len(current))
	for _, id := range current {
		owned[id] = struct{}{}
	}

	seen := make(map[primitive.ObjectID]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := owned[id]; !ok {
			return fmt.Errorf("%w: unknown id %s", ErrInvalidReorder, id.Hex())
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: duplicate id %s", ErrInvalidReorder, id.Hex())
		}
		seen[id] = struct{}{}
	}

	order := make([]primitive.ObjectID, 0, len(current))
	order = append(order, ids...)
	for _, id := range current {
		if _, listed := seen[id]; !listed {
			order = append(order, id)
		}
	}

	for i, id := range order {
		if err := write(ctx, id, i); err != nil {
			return fmt.Errorf("reorder stopped at index %d: %w", i, err)
		}
	}
	return nil
}
