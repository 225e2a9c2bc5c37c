// Copyright (c) Foster Meadows
// SPDX-License-Identifier: MIT

package plannerdb

import (
	"context"
	"fmt"
	"slices"

	"cloud.google.com/go/firestore"
)

// ContentEquals compares the editable fields of two preps, ignoring the
// checkbox arrays. Used to refuse a copy onto an identical target.
func (p PrepEntry) ContentEquals(o PrepEntry) bool {
	return p.Title == o.Title &&
		p.PerformanceGoal == o.PerformanceGoal &&
		p.Objective == o.Objective &&
		slices.Equal(p.Standards, o.Standards) &&
		slices.Equal(p.PrepSteps, o.PrepSteps) &&
		slices.Equal(p.SeqSteps, o.SeqSteps)
}

func moveIndex[T any](list []T, from, to int) []T {
	out := slices.Clone(list)
	v := out[from]
	out = slices.Delete(out, from, from+1)
	return slices.Insert(out, to, v)
}

// ReorderStep moves one step of a stored plan from one position to
// another, carrying its done flag along so the pair stays index-aligned.
// Runs through the same transactional rev bump as every other plan write.
func (s *Store) ReorderStep(ctx context.Context, uid, dateKey, prepID string, list string, from, to int) error {
	if list != "prepSteps" && list != "seqSteps" {
		return fmt.Errorf("plannerdb: reorder step: unknown list %q: %w", list, ErrInvalid)
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
		steps, done := prep.PrepSteps, prep.PrepDone
		doneName := PrepDone
		if list == "seqSteps" {
			steps, done = prep.SeqSteps, prep.SeqDone
			doneName = SeqDone
		}
		if from < 0 || from >= len(steps) || to < 0 || to >= len(steps) {
			return fmt.Errorf("reorder %d->%d out of range for %s/%s: %w", from, to, prepID, list, ErrInvalid)
		}
		if from == to {
			return nil
		}

		return tx.Update(ref, []firestore.Update{
			{FieldPath: firestore.FieldPath{"preps", prepID, list}, Value: moveIndex(steps, from, to)},
			{FieldPath: firestore.FieldPath{"preps", prepID, string(doneName)}, Value: moveIndex(done, from, to)},
			{Path: "rev", Value: plan.Rev + 1},
			{Path: "updatedAt", Value: firestore.ServerTimestamp},
		})
	})
	if err != nil {
		return classify("reorder step", err)
	}
	return nil
}

// CopyPrep duplicates one prep's content onto another slot of the same
// plan. The target's checkbox arrays restart all-false at the copied step
// lengths. Copying onto an identical target is rejected, mirroring the
// disabled paste button.
func (s *Store) CopyPrep(ctx context.Context, uid, dateKey, srcID, dstID string) error {
	if srcID == dstID {
		return fmt.Errorf("plannerdb: copy prep: source and target are the same slot: %w", ErrInvalid)
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

		src, ok := plan.Preps[srcID]
		if !ok {
			return fmt.Errorf("prep %q not in plan %s: %w", srcID, dateKey, ErrInvalid)
		}
		if dst, ok := plan.Preps[dstID]; ok && src.ContentEquals(dst) {
			return fmt.Errorf("prep %q already matches %q: %w", dstID, srcID, ErrInvalid)
		}

		copied := PrepEntry{
			Title:           src.Title,
			Standards:       slices.Clone(src.Standards),
			PerformanceGoal: src.PerformanceGoal,
			Objective:       src.Objective,
			PrepSteps:       slices.Clone(src.PrepSteps),
			SeqSteps:        slices.Clone(src.SeqSteps),
			PrepDone:        make([]bool, len(src.PrepSteps)),
			SeqDone:         make([]bool, len(src.SeqSteps)),
		}
		return tx.Update(ref, []firestore.Update{
			{FieldPath: firestore.FieldPath{"preps", dstID}, Value: copied},
			{Path: "rev", Value: plan.Rev + 1},
			{Path: "updatedAt", Value: firestore.ServerTimestamp},
		})
	})
	if err != nil {
		return classify("copy prep", err)
	}
	return nil
}
