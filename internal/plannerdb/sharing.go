// Copyright (c) Foster Meadows
// SPDX-License-Identifier: MIT

package plannerdb

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
)

// EnableSharing turns on the teacher's public plan feed and returns the
// share token. A token is minted on first enable and reused forever after,
// so disabling and re-enabling keeps the same share URL. Idempotent.
func (s *Store) EnableSharing(ctx context.Context, uid string) (string, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	ref := s.teacherDoc(uid)
	var token string
	err := s.client.RunTransaction(ctx, func(_ context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(ref)
		if err != nil {
			return err
		}
		var teacher Teacher
		if err := doc.DataTo(&teacher); err != nil {
			return fmt.Errorf("decoding teacher %s: %w", uid, err)
		}
		token = teacher.ShareToken
		if token == "" {
			token = uuid.NewString()
		}
		return tx.Update(ref, []firestore.Update{
			{Path: "shareToken", Value: token},
			{Path: "shareEnabled", Value: true},
		})
	})
	if err != nil {
		return "", classify("enable sharing", err)
	}
	return token, nil
}

// DisableSharing turns the public feed off. The token is kept.
func (s *Store) DisableSharing(ctx context.Context, uid string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	_, err := s.teacherDoc(uid).Update(ctx, []firestore.Update{
		{Path: "shareEnabled", Value: false},
	})
	if err != nil {
		return classify("disable sharing", err)
	}
	return nil
}

// ResolveShareToken finds the teacher a share token belongs to. A token
// whose owner has sharing disabled resolves exactly like an unknown token,
// so the public path cannot distinguish "off" from "never existed".
func (s *Store) ResolveShareToken(ctx context.Context, token string) (string, *Teacher, error) {
	if token == "" {
		return "", nil, fmt.Errorf("plannerdb: resolve share token: empty token: %w", ErrNotFound)
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	iter := s.client.Collection("teachers").
		Where("shareEnabled", "==", true).
		Where("shareToken", "==", token).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if errors.Is(err, iterator.Done) {
		return "", nil, fmt.Errorf("plannerdb: resolve share token: %w", ErrNotFound)
	}
	if err != nil {
		return "", nil, classify("resolve share token", err)
	}
	var teacher Teacher
	if err := doc.DataTo(&teacher); err != nil {
		return "", nil, fmt.Errorf("plannerdb: decoding teacher for share token: %w", err)
	}
	return doc.Ref.ID, &teacher, nil
}

// SharedPlans returns all of a teacher's dated plans, newest date first.
// Read-only feed for the public share page.
func (s *Store) SharedPlans(ctx context.Context, uid string) ([]Plan, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	iter := s.teacherDoc(uid).Collection("dailyPlans").
		OrderBy("dateKey", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	var plans []Plan
	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, classify("list shared plans", err)
		}
		var plan Plan
		if err := doc.DataTo(&plan); err != nil {
			return nil, fmt.Errorf("plannerdb: decoding shared plan %s: %w", doc.Ref.ID, err)
		}
		plan.Normalize()
		plans = append(plans, plan)
	}
	return plans, nil
}
