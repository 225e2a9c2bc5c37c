// Copyright (c) Foster Meadows
// SPDX-License-Identifier: MIT

package plannerdb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testReport(uid, student string) Report {
	return Report{
		StudentName:     student,
		Date:            "2024-09-03",
		GradeLevel:      "8",
		Location:        "Room 214",
		TeacherName:     "F. Meadows",
		ReferralDetails: "Refused redirection twice during group work.",
		TeacherID:       uid,
	}
}

func TestAddReportCountsAndNudge(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	uid := testUID(t)

	first, err := store.AddReport(ctx, testReport(uid, "Jordan P."))
	require.NoError(t, err)
	assert.Equal(t, 0, first.ExistingCount)
	assert.False(t, first.MustContactParent)

	second, err := store.AddReport(ctx, testReport(uid, "Jordan P."))
	require.NoError(t, err)
	assert.Equal(t, 1, second.ExistingCount)
	assert.False(t, second.MustContactParent)

	// The third referral for the same student trips the parent-contact
	// prompt.
	third, err := store.AddReport(ctx, testReport(uid, "Jordan P."))
	require.NoError(t, err)
	assert.Equal(t, 2, third.ExistingCount)
	assert.True(t, third.MustContactParent)

	// A different student starts from zero.
	other, err := store.AddReport(ctx, testReport(uid, "Sam K."))
	require.NoError(t, err)
	assert.Equal(t, 0, other.ExistingCount)
}

func TestAddReportCap(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	uid := testUID(t)

	for range maxReteaches {
		_, err := store.AddReport(ctx, testReport(uid, "Jordan P."))
		require.NoError(t, err)
	}

	_, err := store.AddReport(ctx, testReport(uid, "Jordan P."))
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestListReportsFilters(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	uid := testUID(t)

	a, err := store.AddReport(ctx, testReport(uid, "Jordan P."))
	require.NoError(t, err)
	_, err = store.AddReport(ctx, testReport(uid, "Sam K."))
	require.NoError(t, err)

	require.NoError(t, store.MarkServed(ctx, uid, a.ID, "2024-09-04"))

	byStudent, err := store.ListReports(ctx, uid, ReportQuery{StudentName: "Sam K."})
	require.NoError(t, err)
	require.Len(t, byStudent, 1)
	assert.Equal(t, "Sam K.", byStudent[0].StudentName)

	served := true
	byServed, err := store.ListReports(ctx, uid, ReportQuery{Served: &served})
	require.NoError(t, err)
	require.Len(t, byServed, 1)
	assert.Equal(t, "Jordan P.", byServed[0].StudentName)
	assert.Equal(t, "2024-09-04", byServed[0].ServedDate)

	// Another teacher sees nothing.
	other, err := store.ListReports(ctx, testUID(t), ReportQuery{})
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestAssignTodayDuplicateStudent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	uid := testUID(t)

	a, err := store.AddReport(ctx, testReport(uid, "Jordan P."))
	require.NoError(t, err)
	b, err := store.AddReport(ctx, testReport(uid, "Jordan P."))
	require.NoError(t, err)

	require.NoError(t, store.AssignToday(ctx, uid, a.ID, "2024-09-03"))

	// The same student cannot be pulled twice in one day, even via a
	// different referral.
	err = store.AssignToday(ctx, uid, b.ID, "2024-09-03")
	assert.ErrorIs(t, err, ErrAlreadyExists)

	// A different day is fine.
	require.NoError(t, store.AssignToday(ctx, uid, b.ID, "2024-09-04"))
}

func TestAssignAndUnassign(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	uid := testUID(t)

	a, err := store.AddReport(ctx, testReport(uid, "Jordan P."))
	require.NoError(t, err)

	require.NoError(t, store.AssignToday(ctx, uid, a.ID, "2024-09-03"))
	reports, err := store.ListReports(ctx, uid, ReportQuery{})
	require.NoError(t, err)
	assert.Equal(t, "2024-09-03", reports[0].AssignedDate)

	require.NoError(t, store.Unassign(ctx, uid, a.ID))
	reports, err = store.ListReports(ctx, uid, ReportQuery{})
	require.NoError(t, err)
	assert.Empty(t, reports[0].AssignedDate)
}

func TestMarkServedClearsAssignment(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	uid := testUID(t)

	a, err := store.AddReport(ctx, testReport(uid, "Jordan P."))
	require.NoError(t, err)
	require.NoError(t, store.AssignToday(ctx, uid, a.ID, "2024-09-03"))

	require.NoError(t, store.MarkServed(ctx, uid, a.ID, "2024-09-03"))

	reports, err := store.ListReports(ctx, uid, ReportQuery{})
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.True(t, reports[0].Served)
	assert.Equal(t, "2024-09-03", reports[0].ServedDate)
	assert.Empty(t, reports[0].AssignedDate)
}

func TestReportOwnership(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	owner := testUID(t)
	intruder := testUID(t)

	a, err := store.AddReport(ctx, testReport(owner, "Jordan P."))
	require.NoError(t, err)

	// Another teacher's ID behaves exactly like a missing report.
	assert.ErrorIs(t, store.MarkServed(ctx, intruder, a.ID, "2024-09-03"), ErrNotFound)
	assert.ErrorIs(t, store.SetComment(ctx, intruder, a.ID, "nope"), ErrNotFound)
	assert.ErrorIs(t, store.DeleteReport(ctx, intruder, a.ID), ErrNotFound)

	// And the owner still can.
	require.NoError(t, store.SetComment(ctx, owner, a.ID, "Spoke with Jordan after class."))
	require.NoError(t, store.SetParentContact(ctx, owner, a.ID, true, "Mrs. P.", "phone", "Left a voicemail."))

	reports, err := store.ListReports(ctx, owner, ReportQuery{})
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, "Spoke with Jordan after class.", reports[0].Comment)
	assert.True(t, reports[0].ParentContacted)
	assert.Equal(t, "Mrs. P.", reports[0].ContactPerson)

	require.NoError(t, store.DeleteReport(ctx, owner, a.ID))
	reports, err = store.ListReports(ctx, owner, ReportQuery{})
	require.NoError(t, err)
	assert.Empty(t, reports)
}
