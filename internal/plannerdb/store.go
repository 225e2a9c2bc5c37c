// Copyright (c) Foster Meadows
// SPDX-License-Identifier: MIT

package plannerdb

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
)

// defaultOpTimeout bounds a single backend round trip. The browser app had
// no timeout of its own and hung until the SDK gave up.
const defaultOpTimeout = 15 * time.Second

// Store wraps the Firestore client with the repository operations for the
// planner's documents.
type Store struct {
	client    *firestore.Client
	opTimeout time.Duration
}

// NewStore returns a Store over the given Firestore client.
func NewStore(client *firestore.Client) *Store {
	return &Store{client: client, opTimeout: defaultOpTimeout}
}

// withTimeout bounds ctx by the per-operation timeout.
func (s *Store) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.opTimeout)
}

// teacherDoc is the teachers/{uid} profile document.
func (s *Store) teacherDoc(uid string) *firestore.DocumentRef {
	return s.client.Collection("teachers").Doc(uid)
}

// planDoc is the teachers/{uid}/dailyPlans/{dateKey} document.
func (s *Store) planDoc(uid, dateKey string) *firestore.DocumentRef {
	return s.teacherDoc(uid).Collection("dailyPlans").Doc(dateKey)
}
