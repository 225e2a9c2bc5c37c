// Copyright (c) Foster Meadows
// SPDX-License-Identifier: MIT

package plannerdb

import (
	"context"
	"os"
	"testing"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

// newTestStore connects to the Firestore emulator. Tests in this file are
// skipped unless FIRESTORE_EMULATOR_HOST is set, the same way the emulator
// is wired for local development.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set")
	}
	client, err := firestore.NewClient(context.Background(), "bespokebehaviors-test")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = client.Close()
	})
	return NewStore(client)
}

// testUID returns a fresh teacher ID so tests never see each other's data.
func testUID(t *testing.T) string {
	t.Helper()
	return "test-" + uuid.NewString()
}

func testPlan() Plan {
	return Plan{
		Date:     "September 3, 2024",
		Weekday:  "Tuesday",
		IsPublic: false,
		Preps: map[string]PrepEntry{
			"prep1": {
				Title:     "Intro to Theme",
				Objective: "We will identify theme in short fiction.",
				PrepSteps: []string{"Copies of story", "Exit tickets"},
				SeqSteps:  []string{"Do now", "Mini lesson", "Group work"},
				PrepDone:  []bool{false, false},
				SeqDone:   []bool{false, false, false},
			},
			"prep2": {
				Title:    "Theme, honors pacing",
				SeqSteps: []string{"Do now", "Seminar"},
				SeqDone:  []bool{false, false},
			},
		},
	}
}

func TestCreateAndGetPlan(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	uid := testUID(t)

	require.NoError(t, store.CreatePlan(ctx, uid, "2024-09-03", testPlan()))

	plan, err := store.GetPlan(ctx, uid, "2024-09-03")
	require.NoError(t, err)

	assert.Equal(t, "2024-09-03", plan.DateKey)
	assert.Equal(t, int64(1), plan.Rev)
	assert.False(t, plan.CreatedAt.IsZero())
	assert.False(t, plan.UpdatedAt.IsZero())
	assert.Equal(t, "Intro to Theme", plan.Preps["prep1"].Title)
	assert.Len(t, plan.Preps["prep1"].PrepDone, 2)
	assert.Len(t, plan.Preps["prep1"].SeqDone, 3)
}

func TestGetPlanNotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetPlan(context.Background(), testUID(t), "2024-09-03")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreatePlanAlreadyExists(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	uid := testUID(t)

	require.NoError(t, store.CreatePlan(ctx, uid, "2024-09-03", testPlan()))

	second := testPlan()
	p := second.Preps["prep1"]
	p.Title = "Overwrite attempt"
	second.Preps["prep1"] = p
	err := store.CreatePlan(ctx, uid, "2024-09-03", second)
	assert.ErrorIs(t, err, ErrAlreadyExists)

	// The losing create must not have touched the stored document.
	plan, err := store.GetPlan(ctx, uid, "2024-09-03")
	require.NoError(t, err)
	assert.Equal(t, "Intro to Theme", plan.Preps["prep1"].Title)
	assert.Equal(t, int64(1), plan.Rev)
}

func TestUpdatePlanBumpsRev(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	uid := testUID(t)

	require.NoError(t, store.CreatePlan(ctx, uid, "2024-09-03", testPlan()))

	err := store.UpdatePlan(ctx, uid, "2024-09-03", []FieldUpdate{
		{Path: []string{"preps", "prep1", "title"}, Value: "Theme, day two"},
	})
	require.NoError(t, err)

	plan, err := store.GetPlan(ctx, uid, "2024-09-03")
	require.NoError(t, err)
	assert.Equal(t, int64(2), plan.Rev)
	assert.Equal(t, "Theme, day two", plan.Preps["prep1"].Title)
	// Untouched preps survive a field-level update.
	assert.Equal(t, "Theme, honors pacing", plan.Preps["prep2"].Title)
}

func TestConcurrentUpdatesSerialize(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	uid := testUID(t)

	require.NoError(t, store.CreatePlan(ctx, uid, "2024-09-03", testPlan()))

	// Both writers start from the rev-1 snapshot. The transactions must
	// serialize: each successful update lands on its own rev, never two
	// commits of the same resulting rev.
	grp, gctx := errgroup.WithContext(ctx)
	titles := []string{"Writer A's title", "Writer B's title"}
	for _, title := range titles {
		grp.Go(func() error {
			return store.UpdatePlan(gctx, uid, "2024-09-03", []FieldUpdate{
				{Path: []string{"preps", "prep1", "title"}, Value: title},
			})
		})
	}
	require.NoError(t, grp.Wait())

	plan, err := store.GetPlan(ctx, uid, "2024-09-03")
	require.NoError(t, err)
	assert.Equal(t, int64(3), plan.Rev)
	assert.Contains(t, titles, plan.Preps["prep1"].Title)
}

func TestUpdatePlanMalformedRev(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	uid := testUID(t)

	// A document whose rev is not an integer must fail the update rather
	// than silently restarting the counter.
	_, err := store.planDoc(uid, "2024-09-03").Set(ctx, map[string]any{
		"dateKey": "2024-09-03",
		"rev":     "one",
	})
	require.NoError(t, err)

	err = store.UpdatePlan(ctx, uid, "2024-09-03", []FieldUpdate{
		{Path: []string{"isPublic"}, Value: true},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed rev")
}

func TestUpdatePlanDeletedUnderneath(t *testing.T) {
	store := newTestStore(t)

	// The plan is gone by the time the update runs: surfaced as a lost
	// race, not a miss, since updates only follow a successful read.
	err := store.UpdatePlan(context.Background(), testUID(t), "2024-09-03", []FieldUpdate{
		{Path: []string{"isPublic"}, Value: true},
	})
	assert.ErrorIs(t, err, ErrConcurrentModification)
}

func TestToggleStepDone(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	uid := testUID(t)

	require.NoError(t, store.CreatePlan(ctx, uid, "2024-09-03", testPlan()))

	require.NoError(t, store.ToggleStepDone(ctx, uid, "2024-09-03", "prep1", SeqDone, 1))

	plan, err := store.GetPlan(ctx, uid, "2024-09-03")
	require.NoError(t, err)
	assert.Equal(t, []bool{false, true, false}, plan.Preps["prep1"].SeqDone)
	// The sibling array and the other prep are untouched.
	assert.Equal(t, []bool{false, false}, plan.Preps["prep1"].PrepDone)
	assert.Equal(t, []bool{false, false}, plan.Preps["prep2"].SeqDone)
	assert.Equal(t, int64(2), plan.Rev)

	// Toggling again flips it back.
	require.NoError(t, store.ToggleStepDone(ctx, uid, "2024-09-03", "prep1", SeqDone, 1))
	plan, err = store.GetPlan(ctx, uid, "2024-09-03")
	require.NoError(t, err)
	assert.Equal(t, []bool{false, false, false}, plan.Preps["prep1"].SeqDone)
}

func TestToggleStepDoneBadTargets(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	uid := testUID(t)

	require.NoError(t, store.CreatePlan(ctx, uid, "2024-09-03", testPlan()))

	assert.ErrorIs(t, store.ToggleStepDone(ctx, uid, "2024-09-03", "prep1", "bogus", 0), ErrInvalid)
	assert.ErrorIs(t, store.ToggleStepDone(ctx, uid, "2024-09-03", "prep9", SeqDone, 0), ErrInvalid)
	assert.ErrorIs(t, store.ToggleStepDone(ctx, uid, "2024-09-03", "prep1", SeqDone, 99), ErrInvalid)
}

func TestPlansForKeys(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	uid := testUID(t)

	require.NoError(t, store.CreatePlan(ctx, uid, "2024-09-03", testPlan()))
	require.NoError(t, store.CreatePlan(ctx, uid, "2024-09-05", testPlan()))

	keys := []string{"2024-09-02", "2024-09-03", "2024-09-04", "2024-09-05", "2024-09-06"}
	plans, err := store.PlansForKeys(ctx, uid, keys)
	require.NoError(t, err)

	require.Len(t, plans, 5)
	assert.Nil(t, plans["2024-09-02"])
	assert.NotNil(t, plans["2024-09-03"])
	assert.Nil(t, plans["2024-09-04"])
	assert.NotNil(t, plans["2024-09-05"])
	assert.Nil(t, plans["2024-09-06"])
}

func TestEnsureTeacherKeepsFields(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	uid := testUID(t)

	require.NoError(t, store.EnsureTeacher(ctx, uid, "F. Meadows"))
	require.NoError(t, store.SavePrepNames(ctx, uid, []PrepName{{ID: "prep1", Name: "ELA 8"}}))
	require.NoError(t, store.SaveStandardsPackage(ctx, uid, "ela8"))

	// A later sign-in refreshes the display name without dropping settings.
	require.NoError(t, store.EnsureTeacher(ctx, uid, "Foster Meadows"))

	teacher, err := store.GetTeacher(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, "Foster Meadows", teacher.DisplayName)
	assert.Equal(t, []PrepName{{ID: "prep1", Name: "ELA 8"}}, teacher.PrepNames)
	assert.Equal(t, "ela8", teacher.StandardsPackage)
}

func TestSharingLifecycle(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	uid := testUID(t)

	require.NoError(t, store.EnsureTeacher(ctx, uid, "F. Meadows"))

	token, err := store.EnableSharing(ctx, uid)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	// Enabling again hands back the same token.
	again, err := store.EnableSharing(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, token, again)

	gotUID, teacher, err := store.ResolveShareToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, uid, gotUID)
	assert.Equal(t, "F. Meadows", teacher.DisplayName)

	// A disabled token resolves like one that never existed.
	require.NoError(t, store.DisableSharing(ctx, uid))
	_, _, err = store.ResolveShareToken(ctx, token)
	assert.ErrorIs(t, err, ErrNotFound)

	// Re-enabling restores the same URL.
	restored, err := store.EnableSharing(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, token, restored)
}

func TestResolveShareTokenUnknown(t *testing.T) {
	store := newTestStore(t)

	_, _, err := store.ResolveShareToken(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, ErrNotFound)

	_, _, err = store.ResolveShareToken(context.Background(), "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSharedPlansNewestFirst(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	uid := testUID(t)

	for _, key := range []string{"2024-09-03", "2024-09-05", "2024-09-04"} {
		require.NoError(t, store.CreatePlan(ctx, uid, key, testPlan()))
	}

	plans, err := store.SharedPlans(ctx, uid)
	require.NoError(t, err)
	require.Len(t, plans, 3)
	assert.Equal(t, "2024-09-05", plans[0].DateKey)
	assert.Equal(t, "2024-09-04", plans[1].DateKey)
	assert.Equal(t, "2024-09-03", plans[2].DateKey)
}

func TestChecklistLifecycle(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	uid := testUID(t)

	first, err := store.AddChecklistItem(ctx, uid, "Make copies")
	require.NoError(t, err)
	second, err := store.AddChecklistItem(ctx, uid, "Email front office")
	require.NoError(t, err)

	require.NoError(t, store.SetChecklistDone(ctx, uid, first, true))
	require.NoError(t, store.EditChecklistItem(ctx, uid, second, "Email the front office"))

	items, err := store.ListChecklist(ctx, uid)
	require.NoError(t, err)
	require.Len(t, items, 2)

	byID := map[string]ChecklistItem{}
	for _, item := range items {
		byID[item.ID] = item
	}
	assert.True(t, byID[first].Done)
	assert.Equal(t, "Email the front office", byID[second].Text)

	cleared, err := store.ClearDoneChecklist(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, 1, cleared)

	items, err = store.ListChecklist(ctx, uid)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, second, items[0].ID)
}

func TestNotesLifecycle(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	uid := testUID(t)

	id, err := store.AddNote(ctx, uid, "Seating chart needs a refresh")
	require.NoError(t, err)

	require.NoError(t, store.EditNote(ctx, uid, id, "Seating chart updated 9/3"))

	list, err := store.ListNotes(ctx, uid)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Seating chart updated 9/3", list[0].Text)

	require.NoError(t, store.DeleteNote(ctx, uid, id))
	list, err = store.ListNotes(ctx, uid)
	require.NoError(t, err)
	assert.Empty(t, list)
}
