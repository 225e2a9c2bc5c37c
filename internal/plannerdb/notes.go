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

func (s *Store) notesCol(uid string) *firestore.CollectionRef {
	return s.teacherDoc(uid).Collection("notes")
}

// AddNote stores a new note.
func (s *Store) AddNote(ctx context.Context, uid, text string) (string, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	doc := s.notesCol(uid).NewDoc()
	if _, err := doc.Create(ctx, Note{Text: text}); err != nil {
		return "", classify("add note", err)
	}
	return doc.ID, nil
}

// EditNote replaces a note's text.
func (s *Store) EditNote(ctx context.Context, uid, noteID, text string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	_, err := s.notesCol(uid).Doc(noteID).Update(ctx, []firestore.Update{
		{Path: "text", Value: text},
	})
	if err != nil {
		return classify("edit note", err)
	}
	return nil
}

// DeleteNote removes a note.
func (s *Store) DeleteNote(ctx context.Context, uid, noteID string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if _, err := s.notesCol(uid).Doc(noteID).Delete(ctx); err != nil {
		return classify("delete note", err)
	}
	return nil
}

// ListNotes returns the teacher's notes, newest first.
func (s *Store) ListNotes(ctx context.Context, uid string) ([]Note, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	iter := s.notesCol(uid).OrderBy("createdAt", firestore.Desc).Documents(ctx)
	defer iter.Stop()

	var notes []Note
	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, classify("list notes", err)
		}
		var note Note
		if err := doc.DataTo(&note); err != nil {
			return nil, fmt.Errorf("plannerdb: decoding note %s: %w", doc.Ref.ID, err)
		}
		note.ID = doc.Ref.ID
		notes = append(notes, note)
	}
	return notes, nil
}
