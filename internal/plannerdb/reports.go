// Copyright (c) Foster Meadows
// SPDX-License-Identifier: MIT

package plannerdb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/cenkalti/backoff/v5"
	"google.golang.org/api/iterator"
)

// maxReteaches caps how many referrals a single student can accumulate.
// This is the one report rule the app actually enforces.
const maxReteaches = 6

// AddReportResult carries the nudge state back to the form: the third
// reteach for a student must prompt for parent contact. The prompt stays a
// soft UI rule, never a write-path constraint.
type AddReportResult struct {
	ID                string
	ExistingCount     int
	MustContactParent bool
}

// reportsCol is the flat reports collection, scoped per teacher by field.
func (s *Store) reportsCol() *firestore.CollectionRef {
	return s.client.Collection("reports")
}

// AddReport files a new behavior referral for the teacher in r.TeacherID.
func (s *Store) AddReport(ctx context.Context, r Report) (*AddReportResult, error) {
	existing, err := s.ListReports(ctx, r.TeacherID, ReportQuery{StudentName: r.StudentName})
	if err != nil {
		return nil, err
	}
	if len(existing) >= maxReteaches {
		return nil, fmt.Errorf("plannerdb: student %q already has %d reteaches: %w",
			r.StudentName, len(existing), ErrInvalid)
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	r.Timestamp = time.Now()
	doc := s.reportsCol().NewDoc()
	if _, err := doc.Create(ctx, r); err != nil {
		return nil, classify("add report", err)
	}
	return &AddReportResult{
		ID:                doc.ID,
		ExistingCount:     len(existing),
		MustContactParent: len(existing) == 2,
	}, nil
}

// ReportQuery filters ListReports. Zero values mean no filter.
type ReportQuery struct {
	StudentName string
	Served      *bool
	GradeLevels []string
	Limit       int
}

// ListReports returns the teacher's referrals, newest first.
func (s *Store) ListReports(ctx context.Context, uid string, q ReportQuery) ([]Report, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	query := s.reportsCol().Query.Where("teacherId", "==", uid)
	if q.StudentName != "" {
		query = query.Where("studentName", "==", q.StudentName)
	}
	if q.Served != nil {
		query = query.Where("served", "==", *q.Served)
	}
	if len(q.GradeLevels) > 0 {
		query = query.Where("gradeLevel", "in", q.GradeLevels)
	}
	query = query.OrderBy("timestamp", firestore.Desc)
	if q.Limit > 0 {
		query = query.Limit(q.Limit)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	var reports []Report
	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, classify("list reports", err)
		}
		var r Report
		if err := doc.DataTo(&r); err != nil {
			return nil, fmt.Errorf("plannerdb: decoding report %s: %w", doc.Ref.ID, err)
		}
		r.ID = doc.Ref.ID
		reports = append(reports, r)
	}
	return reports, nil
}

// getOwnedReport loads a report and verifies it belongs to uid.
func (s *Store) getOwnedReport(ctx context.Context, uid, reportID string) (*firestore.DocumentRef, *Report, error) {
	ref := s.reportsCol().Doc(reportID)
	doc, err := ref.Get(ctx)
	if err != nil {
		return nil, nil, classify("get report", err)
	}
	var r Report
	if err := doc.DataTo(&r); err != nil {
		return nil, nil, fmt.Errorf("plannerdb: decoding report %s: %w", reportID, err)
	}
	if r.TeacherID != uid {
		return nil, nil, fmt.Errorf("plannerdb: report %s: %w", reportID, ErrNotFound)
	}
	r.ID = doc.Ref.ID
	return ref, &r, nil
}

// AssignToday puts a referral on deck for the given date. A student already
// assigned for that date is rejected so nobody is pulled out twice in one
// day; this mirrors the app's client-side duplicate check and is not a
// server constraint.
func (s *Store) AssignToday(ctx context.Context, uid, reportID, dateKey string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	ref, r, err := s.getOwnedReport(ctx, uid, reportID)
	if err != nil {
		return err
	}

	assigned := s.reportsCol().Query.
		Where("teacherId", "==", uid).
		Where("assignedDate", "==", dateKey).
		Where("studentName", "==", r.StudentName).
		Limit(1).
		Documents(ctx)
	defer assigned.Stop()
	if _, err := assigned.Next(); !errors.Is(err, iterator.Done) {
		if err != nil {
			return classify("check assignment", err)
		}
		return fmt.Errorf("plannerdb: %s already assigned for %s: %w", r.StudentName, dateKey, ErrAlreadyExists)
	}

	if _, err := ref.Update(ctx, []firestore.Update{
		{Path: "assignedDate", Value: dateKey},
	}); err != nil {
		return classify("assign report", err)
	}
	return nil
}

// Unassign takes a referral off deck.
func (s *Store) Unassign(ctx context.Context, uid, reportID string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	ref, _, err := s.getOwnedReport(ctx, uid, reportID)
	if err != nil {
		return err
	}
	if _, err := ref.Update(ctx, []firestore.Update{
		{Path: "assignedDate", Value: firestore.Delete},
	}); err != nil {
		return classify("unassign report", err)
	}
	return nil
}

// MarkServed closes out a referral as served on the given date and takes
// it off deck.
func (s *Store) MarkServed(ctx context.Context, uid, reportID, dateKey string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	ref, _, err := s.getOwnedReport(ctx, uid, reportID)
	if err != nil {
		return err
	}
	if _, err := ref.Update(ctx, []firestore.Update{
		{Path: "served", Value: true},
		{Path: "servedDate", Value: dateKey},
		{Path: "assignedDate", Value: firestore.Delete},
	}); err != nil {
		return classify("mark report served", err)
	}
	return nil
}

// SetComment replaces the follow-up comment on a referral.
func (s *Store) SetComment(ctx context.Context, uid, reportID, comment string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	ref, _, err := s.getOwnedReport(ctx, uid, reportID)
	if err != nil {
		return err
	}
	if _, err := ref.Update(ctx, []firestore.Update{
		{Path: "comment", Value: comment},
	}); err != nil {
		return classify("set report comment", err)
	}
	return nil
}

// SetParentContact records contact home after the fact.
func (s *Store) SetParentContact(ctx context.Context, uid, reportID string, contacted bool, person, method, details string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	ref, _, err := s.getOwnedReport(ctx, uid, reportID)
	if err != nil {
		return err
	}
	if _, err := ref.Update(ctx, []firestore.Update{
		{Path: "parentContacted", Value: contacted},
		{Path: "contactPerson", Value: person},
		{Path: "contactMethod", Value: method},
		{Path: "contactDetails", Value: details},
	}); err != nil {
		return classify("set parent contact", err)
	}
	return nil
}

// DeleteReport hard-deletes a referral.
func (s *Store) DeleteReport(ctx context.Context, uid, reportID string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	ref, _, err := s.getOwnedReport(ctx, uid, reportID)
	if err != nil {
		return err
	}
	if _, err := ref.Delete(ctx); err != nil {
		return classify("delete report", err)
	}
	return nil
}

// WatchReports streams the teacher's referral list on every change until
// ctx is canceled or send fails. The Firestore listener is re-established
// with exponential backoff after transient errors; cancellation tears the
// listener down so nothing leaks into the next signed-in context.
func (s *Store) WatchReports(ctx context.Context, uid string, send func([]Report) error) error {
	query := s.reportsCol().Query.
		Where("teacherId", "==", uid).
		OrderBy("timestamp", firestore.Desc)

	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		snaps := query.Snapshots(ctx)
		defer snaps.Stop()
		for {
			snap, err := snaps.Next()
			if err != nil {
				if ctx.Err() != nil {
					return struct{}{}, backoff.Permanent(ctx.Err())
				}
				return struct{}{}, err
			}
			var reports []Report
			docs := snap.Documents
			for {
				doc, err := docs.Next()
				if errors.Is(err, iterator.Done) {
					break
				}
				if err != nil {
					return struct{}{}, err
				}
				var r Report
				if err := doc.DataTo(&r); err != nil {
					return struct{}{}, backoff.Permanent(fmt.Errorf("decoding report %s: %w", doc.Ref.ID, err))
				}
				r.ID = doc.Ref.ID
				reports = append(reports, r)
			}
			if err := send(reports); err != nil {
				return struct{}{}, backoff.Permanent(err)
			}
		}
	}, backoff.WithBackOff(backoff.NewExponentialBackOff()))
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("plannerdb: watching reports: %w", err)
	}
	return nil
}
