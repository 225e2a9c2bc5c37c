// Copyright (c) Foster Meadows
// SPDX-License-Identifier: MIT

package plannerdb

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
)

func (s *Store) commentaryCol(uid string) *firestore.CollectionRef {
	return s.teacherDoc(uid).Collection("standardsCommentary")
}

// SaveStandardCommentary upserts the teacher's note on one standard, keyed
// by the standard's code. Saving empty text removes the note.
func (s *Store) SaveStandardCommentary(ctx context.Context, uid, code, text string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	ref := s.commentaryCol(uid).Doc(code)
	if text == "" {
		if _, err := ref.Delete(ctx); err != nil {
			return classify("clear standard commentary", err)
		}
		return nil
	}
	_, err := ref.Set(ctx, map[string]any{
		"text":      text,
		"updatedAt": firestore.ServerTimestamp,
	})
	if err != nil {
		return classify("save standard commentary", err)
	}
	return nil
}

// ListStandardsCommentary returns every standard the teacher has commented
// on, in code order (the document IDs).
func (s *Store) ListStandardsCommentary(ctx context.Context, uid string) ([]StandardCommentary, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	iter := s.commentaryCol(uid).Documents(ctx)
	defer iter.Stop()

	var notes []StandardCommentary
	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, classify("list standards commentary", err)
		}
		var note StandardCommentary
		if err := doc.DataTo(&note); err != nil {
			return nil, fmt.Errorf("plannerdb: decoding commentary %s: %w", doc.Ref.ID, err)
		}
		note.Code = doc.Ref.ID
		notes = append(notes, note)
	}
	return notes, nil
}
