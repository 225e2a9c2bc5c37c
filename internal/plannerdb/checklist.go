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

func (s *Store) checklistCol(uid string) *firestore.CollectionRef {
	return s.teacherDoc(uid).Collection("checklist")
}

// AddChecklistItem appends a new unchecked item.
func (s *Store) AddChecklistItem(ctx context.Context, uid, text string) (string, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	doc := s.checklistCol(uid).NewDoc()
	if _, err := doc.Create(ctx, ChecklistItem{Text: text}); err != nil {
		return "", classify("add checklist item", err)
	}
	return doc.ID, nil
}

// SetChecklistDone checks or unchecks one item.
func (s *Store) SetChecklistDone(ctx context.Context, uid, itemID string, done bool) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	_, err := s.checklistCol(uid).Doc(itemID).Update(ctx, []firestore.Update{
		{Path: "done", Value: done},
	})
	if err != nil {
		return classify("set checklist done", err)
	}
	return nil
}

// EditChecklistItem replaces an item's text.
func (s *Store) EditChecklistItem(ctx context.Context, uid, itemID, text string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	_, err := s.checklistCol(uid).Doc(itemID).Update(ctx, []firestore.Update{
		{Path: "text", Value: text},
	})
	if err != nil {
		return classify("edit checklist item", err)
	}
	return nil
}

// DeleteChecklistItem removes one item.
func (s *Store) DeleteChecklistItem(ctx context.Context, uid, itemID string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if _, err := s.checklistCol(uid).Doc(itemID).Delete(ctx); err != nil {
		return classify("delete checklist item", err)
	}
	return nil
}

// ListChecklist returns all items, newest first.
func (s *Store) ListChecklist(ctx context.Context, uid string) ([]ChecklistItem, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	iter := s.checklistCol(uid).OrderBy("createdAt", firestore.Desc).Documents(ctx)
	defer iter.Stop()

	var items []ChecklistItem
	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, classify("list checklist", err)
		}
		var item ChecklistItem
		if err := doc.DataTo(&item); err != nil {
			return nil, fmt.Errorf("plannerdb: decoding checklist item %s: %w", doc.Ref.ID, err)
		}
		item.ID = doc.Ref.ID
		items = append(items, item)
	}
	return items, nil
}

// ClearDoneChecklist deletes every checked item, as the bulk clear button
// does.
func (s *Store) ClearDoneChecklist(ctx context.Context, uid string) (int, error) {
	items, err := s.ListChecklist(ctx, uid)
	if err != nil {
		return 0, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	cleared := 0
	for _, item := range items {
		if !item.Done {
			continue
		}
		if _, err := s.checklistCol(uid).Doc(item.ID).Delete(ctx); err != nil {
			return cleared, classify("clear checklist", err)
		}
		cleared++
	}
	return cleared, nil
}
