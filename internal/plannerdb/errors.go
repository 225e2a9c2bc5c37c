// Copyright (c) Foster Meadows
// SPDX-License-Identifier: MIT

package plannerdb

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// The failure kinds callers branch on. Anything else coming out of the
// store is wrapped as ErrUnavailable; callers surface it and let the user
// re-trigger the action, there is no automatic retry on writes.
var (
	// ErrNotFound means no document exists for the key (or share token).
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists means a create would have overwritten an existing
	// document.
	ErrAlreadyExists = errors.New("already exists")

	// ErrConcurrentModification means an update lost a race: the document
	// was deleted or the transactional read-then-write could not be
	// serialized. The caller's view may be stale and should be reloaded.
	ErrConcurrentModification = errors.New("concurrent modification")

	// ErrUnavailable means the backend call failed or timed out.
	ErrUnavailable = errors.New("storage unavailable")

	// ErrInvalid means the request named a prep, array, or index that the
	// document does not have.
	ErrInvalid = errors.New("invalid argument")
)

// classify maps a Firestore client error onto the package taxonomy.
func classify(op string, err error) error {
	switch status.Code(err) {
	case codes.NotFound:
		return fmt.Errorf("plannerdb: %s: %w", op, ErrNotFound)
	case codes.AlreadyExists:
		return fmt.Errorf("plannerdb: %s: %w", op, ErrAlreadyExists)
	case codes.Aborted, codes.FailedPrecondition:
		return fmt.Errorf("plannerdb: %s: %w", op, ErrConcurrentModification)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("plannerdb: %s timed out: %w (%w)", op, ErrUnavailable, err)
	}
	return fmt.Errorf("plannerdb: %s: %w (%w)", op, ErrUnavailable, err)
}
