// Copyright (c) Foster Meadows
// SPDX-License-Identifier: MIT

package plannerdb

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
)

// behaviorLogsCol is the flat behaviorLogs collection, scoped per teacher
// by field.
func (s *Store) behaviorLogsCol() *firestore.CollectionRef {
	return s.client.Collection("behaviorLogs")
}

// AddBehaviorLog records a new behavior entry for the teacher in l.TeacherID.
func (s *Store) AddBehaviorLog(ctx context.Context, l BehaviorLog) (string, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	doc := s.behaviorLogsCol().NewDoc()
	if _, err := doc.Create(ctx, l); err != nil {
		return "", classify("add behavior log", err)
	}
	return doc.ID, nil
}

// ListBehaviorLogs returns the teacher's behavior entries, newest first,
// optionally narrowed to one student for the history view.
func (s *Store) ListBehaviorLogs(ctx context.Context, uid, studentName string) ([]BehaviorLog, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	query := s.behaviorLogsCol().Query.Where("teacherId", "==", uid)
	if studentName != "" {
		query = query.Where("studentName", "==", studentName)
	}
	query = query.OrderBy("createdAt", firestore.Desc)

	iter := query.Documents(ctx)
	defer iter.Stop()

	var logs []BehaviorLog
	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, classify("list behavior logs", err)
		}
		var l BehaviorLog
		if err := doc.DataTo(&l); err != nil {
			return nil, fmt.Errorf("plannerdb: decoding behavior log %s: %w", doc.Ref.ID, err)
		}
		l.ID = doc.Ref.ID
		logs = append(logs, l)
	}
	return logs, nil
}

// BehaviorStats aggregates the teacher's logs into the per-student hot
// list: most-logged students first, ties broken by most recent entry.
func (s *Store) BehaviorStats(ctx context.Context, uid string) ([]StudentBehaviorStat, error) {
	logs, err := s.ListBehaviorLogs(ctx, uid, "")
	if err != nil {
		return nil, err
	}

	byStudent := make(map[string]StudentBehaviorStat)
	for _, l := range logs {
		stat := byStudent[l.StudentName]
		stat.StudentName = l.StudentName
		stat.Count++
		if l.CreatedAt.After(stat.Latest) {
			stat.Latest = l.CreatedAt
		}
		byStudent[l.StudentName] = stat
	}

	stats := make([]StudentBehaviorStat, 0, len(byStudent))
	for _, stat := range byStudent {
		stats = append(stats, stat)
	}
	slices.SortFunc(stats, func(a, b StudentBehaviorStat) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return b.Latest.Compare(a.Latest)
	})
	return stats, nil
}

// DeleteBehaviorLog removes one entry after checking it belongs to uid. An
// entry owned by someone else behaves like a missing one.
func (s *Store) DeleteBehaviorLog(ctx context.Context, uid, logID string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	ref := s.behaviorLogsCol().Doc(logID)
	doc, err := ref.Get(ctx)
	if err != nil {
		return classify("get behavior log", err)
	}
	var l BehaviorLog
	if err := doc.DataTo(&l); err != nil {
		return fmt.Errorf("plannerdb: decoding behavior log %s: %w", logID, err)
	}
	if l.TeacherID != uid {
		return fmt.Errorf("plannerdb: behavior log %s: %w", logID, ErrNotFound)
	}
	if _, err := ref.Delete(ctx); err != nil {
		return classify("delete behavior log", err)
	}
	return nil
}
