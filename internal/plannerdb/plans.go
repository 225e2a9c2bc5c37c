// Copyright (c) Foster Meadows
// SPDX-License-Identifier: MIT

package plannerdb

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// FieldUpdate names one document field to change, as a path of segments so
// values inside the preps map can be addressed without escaping.
type FieldUpdate struct {
	Path  []string
	Value any
}

// GetPlan reads the plan for (uid, dateKey). Pure read: a missing plan
// returns ErrNotFound and never creates anything.
func (s *Store) GetPlan(ctx context.Context, uid, dateKey string) (*Plan, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	doc, err := s.planDoc(uid, dateKey).Get(ctx)
	if err != nil {
		return nil, classify("get plan", err)
	}
	var plan Plan
	if err := doc.DataTo(&plan); err != nil {
		return nil, fmt.Errorf("plannerdb: decoding plan %s: %w", dateKey, err)
	}
	plan.Normalize()
	return &plan, nil
}

// CreatePlan writes a brand-new plan document with rev 1 and server
// timestamps. It never overwrites: an existing document for the key fails
// with ErrAlreadyExists and is left unchanged.
func (s *Store) CreatePlan(ctx context.Context, uid, dateKey string, plan Plan) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	plan.DateKey = dateKey
	plan.Rev = 1
	plan.Normalize()
	if _, err := s.planDoc(uid, dateKey).Create(ctx, plan); err != nil {
		return classify("create plan", err)
	}
	return nil
}

// UpdatePlan applies the given fields to an existing plan inside a
// transaction that re-reads the current rev and writes rev+1 together with
// a fresh updatedAt. Two writers racing from the same snapshot cannot both
// commit the same resulting rev; the loser's transaction is retried against
// the new state or fails. Callers only reach here after seeing the plan
// exist, so a document gone by commit time is a lost race, not a miss, and
// fails with ErrConcurrentModification.
func (s *Store) UpdatePlan(ctx context.Context, uid, dateKey string, fields []FieldUpdate) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	ref := s.planDoc(uid, dateKey)
	err := s.client.RunTransaction(ctx, func(_ context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(ref)
		if err != nil {
			return err
		}
		revRaw, err := doc.DataAt("rev")
		if err != nil {
			return fmt.Errorf("reading rev of plan %s: %w", dateKey, err)
		}
		cur, ok := revRaw.(int64)
		if !ok {
			return fmt.Errorf("plan %s has malformed rev %v, refusing to write", dateKey, revRaw)
		}

		updates := make([]firestore.Update, 0, len(fields)+2)
		for _, f := range fields {
			updates = append(updates, firestore.Update{FieldPath: firestore.FieldPath(f.Path), Value: f.Value})
		}
		updates = append(updates,
			firestore.Update{Path: "rev", Value: cur + 1},
			firestore.Update{Path: "updatedAt", Value: firestore.ServerTimestamp},
		)
		return tx.Update(ref, updates)
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("plannerdb: update plan: document deleted underneath update: %w", ErrConcurrentModification)
		}
		return classify("update plan", err)
	}
	return nil
}

// ToggleStepDone flips one checkbox inside preps[prepID].prepDone or
// preps[prepID].seqDone without the caller resending the rest of the
// document. It goes through the same transactional rev bump as UpdatePlan
// so a toggle can never be clobbered by, or clobber, a concurrent save.
func (s *Store) ToggleStepDone(ctx context.Context, uid, dateKey, prepID string, array DoneArrayName, index int) error {
	if !array.Valid() {
		return fmt.Errorf("plannerdb: toggle step done: unknown array %q: %w", array, ErrInvalid)
	}
	if index < 0 {
		return fmt.Errorf("plannerdb: toggle step done: negative index: %w", ErrInvalid)
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	ref := s.planDoc(uid, dateKey)
	err := s.client.RunTransaction(ctx, func(_ context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(ref)
		if err != nil {
			return err
		}
		var plan Plan
		if err := doc.DataTo(&plan); err != nil {
			return fmt.Errorf("decoding plan %s: %w", dateKey, err)
		}
		plan.Normalize()

		prep, ok := plan.Preps[prepID]
		if !ok {
			return fmt.Errorf("prep %q not in plan %s: %w", prepID, dateKey, ErrInvalid)
		}
		done := prep.PrepDone
		if array == SeqDone {
			done = prep.SeqDone
		}
		if index >= len(done) {
			return fmt.Errorf("index %d out of range for %s/%s: %w", index, prepID, array, ErrInvalid)
		}
		done[index] = !done[index]

		return tx.Update(ref, []firestore.Update{
			{FieldPath: firestore.FieldPath{"preps", prepID, string(array)}, Value: done},
			{Path: "rev", Value: plan.Rev + 1},
			{Path: "updatedAt", Value: firestore.ServerTimestamp},
		})
	})
	if err != nil {
		return classify("toggle step done", err)
	}
	return nil
}

// PlansForKeys fetches the plans for several date keys at once, as the
// week view does for Monday through Friday. Missing days map to nil.
func (s *Store) PlansForKeys(ctx context.Context, uid string, dateKeys []string) (map[string]*Plan, error) {
	plans := make([]*Plan, len(dateKeys))

	grp, gctx := errgroup.WithContext(ctx)
	for i, key := range dateKeys {
		grp.Go(func() error {
			plan, err := s.GetPlan(gctx, uid, key)
			if err != nil {
				if errors.Is(err, ErrNotFound) {
					return nil
				}
				return err
			}
			plans[i] = plan
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, err
	}

	byKey := make(map[string]*Plan, len(dateKeys))
	for i, key := range dateKeys {
		byKey[key] = plans[i]
	}
	return byKey, nil
}

// GetTeacher reads the teachers/{uid} profile document.
func (s *Store) GetTeacher(ctx context.Context, uid string) (*Teacher, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	doc, err := s.teacherDoc(uid).Get(ctx)
	if err != nil {
		return nil, classify("get teacher", err)
	}
	var teacher Teacher
	if err := doc.DataTo(&teacher); err != nil {
		return nil, fmt.Errorf("plannerdb: decoding teacher %s: %w", uid, err)
	}
	return &teacher, nil
}

// EnsureTeacher creates or refreshes the profile document with the auth
// provider's display name, keeping all other fields.
func (s *Store) EnsureTeacher(ctx context.Context, uid, displayName string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	_, err := s.teacherDoc(uid).Set(ctx, map[string]any{"displayName": displayName}, firestore.MergeAll)
	if err != nil {
		return classify("ensure teacher", err)
	}
	return nil
}

// SavePrepNames upserts the teacher-level prep slot list. Independent of
// any single day's plan.
func (s *Store) SavePrepNames(ctx context.Context, uid string, names []PrepName) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	_, err := s.teacherDoc(uid).Set(ctx, map[string]any{"prepNames": names}, firestore.MergeAll)
	if err != nil {
		return classify("save prep names", err)
	}
	return nil
}

// SaveStandardsPackage records which standards catalog the teacher uses.
func (s *Store) SaveStandardsPackage(ctx context.Context, uid, pkg string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	_, err := s.teacherDoc(uid).Set(ctx, map[string]any{"standardsPackage": pkg}, firestore.MergeAll)
	if err != nil {
		return classify("save standards package", err)
	}
	return nil
}
