// Copyright (c) Foster Meadows
// SPDX-License-Identifier: MIT

package plannerdb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBehaviorLog(uid, student string) BehaviorLog {
	return BehaviorLog{
		StudentName: student,
		Time:        "13:45",
		Context:     "Independent reading",
		Response:    "Quiet redirect at the desk",
		Details:     "Settled down after the second prompt.",
		TeacherID:   uid,
	}
}

func TestBehaviorLogAddAndList(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	uid := testUID(t)

	first, err := store.AddBehaviorLog(ctx, testBehaviorLog(uid, "Jordan P."))
	require.NoError(t, err)
	_, err = store.AddBehaviorLog(ctx, testBehaviorLog(uid, "Sam K."))
	require.NoError(t, err)
	second, err := store.AddBehaviorLog(ctx, testBehaviorLog(uid, "Jordan P."))
	require.NoError(t, err)

	// Per-student history, newest first.
	logs, err := store.ListBehaviorLogs(ctx, uid, "Jordan P.")
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, second, logs[0].ID)
	assert.Equal(t, first, logs[1].ID)
	assert.Equal(t, "13:45", logs[0].Time)

	// Unfiltered list has everything.
	all, err := store.ListBehaviorLogs(ctx, uid, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	// Another teacher sees nothing.
	other, err := store.ListBehaviorLogs(ctx, testUID(t), "")
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestBehaviorStatsOrdering(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	uid := testUID(t)

	// Sam logs once, Jordan twice; Jordan should lead on count.
	_, err := store.AddBehaviorLog(ctx, testBehaviorLog(uid, "Sam K."))
	require.NoError(t, err)
	_, err = store.AddBehaviorLog(ctx, testBehaviorLog(uid, "Jordan P."))
	require.NoError(t, err)
	_, err = store.AddBehaviorLog(ctx, testBehaviorLog(uid, "Jordan P."))
	require.NoError(t, err)

	stats, err := store.BehaviorStats(ctx, uid)
	require.NoError(t, err)
	require.Len(t, stats, 2)
	assert.Equal(t, "Jordan P.", stats[0].StudentName)
	assert.Equal(t, 2, stats[0].Count)
	assert.Equal(t, "Sam K.", stats[1].StudentName)
	assert.Equal(t, 1, stats[1].Count)
	assert.False(t, stats[0].Latest.IsZero())
}

func TestBehaviorLogDeleteOwnership(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	owner := testUID(t)

	id, err := store.AddBehaviorLog(ctx, testBehaviorLog(owner, "Jordan P."))
	require.NoError(t, err)

	// Someone else's ID behaves like a missing entry.
	assert.ErrorIs(t, store.DeleteBehaviorLog(ctx, testUID(t), id), ErrNotFound)

	require.NoError(t, store.DeleteBehaviorLog(ctx, owner, id))
	logs, err := store.ListBehaviorLogs(ctx, owner, "")
	require.NoError(t, err)
	assert.Empty(t, logs)
}

func TestStandardsCommentary(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	uid := testUID(t)

	require.NoError(t, store.SaveStandardCommentary(ctx, uid, "RL.8.2", "Theme work is landing with 3rd period."))
	require.NoError(t, store.SaveStandardCommentary(ctx, uid, "RL.8.1", "Needs a reteach on citing evidence."))

	notes, err := store.ListStandardsCommentary(ctx, uid)
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, "RL.8.1", notes[0].Code)
	assert.Equal(t, "RL.8.2", notes[1].Code)

	// Re-saving replaces the text.
	require.NoError(t, store.SaveStandardCommentary(ctx, uid, "RL.8.2", "Reassessed; solid now."))
	notes, err = store.ListStandardsCommentary(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, "Reassessed; solid now.", notes[1].Text)

	// Empty text clears the note.
	require.NoError(t, store.SaveStandardCommentary(ctx, uid, "RL.8.1", ""))
	notes, err = store.ListStandardsCommentary(ctx, uid)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "RL.8.2", notes[0].Code)
}
