// Copyright (c) Foster Meadows
// SPDX-License-Identifier: MIT

// Package plannerdb defines the documents stored in Firestore and the
// repositories that read and write them. The layout is one teachers/{uid}
// profile document per teacher, with dailyPlans, checklist, and notes
// subcollections, plus a flat reports collection keyed by report ID.
package plannerdb

import "time"

// PrepEntry is one lesson slot's content within a daily plan.
type PrepEntry struct {
	// Title is the lesson title.
	Title string `firestore:"title" json:"title"`

	// Standards are codes into the static standards catalog.
	Standards []string `firestore:"standards" json:"standards"`

	// PerformanceGoal is the end product or measurable outcome.
	PerformanceGoal string `firestore:"performanceGoal" json:"performanceGoal"`

	// Objective is the daily objective ("We will...").
	Objective string `firestore:"objective" json:"objective"`

	// PrepSteps are the materials/setup steps ("What do I need?").
	PrepSteps []string `firestore:"prepSteps" json:"prepSteps"`

	// SeqSteps are the planned lesson sequence steps.
	SeqSteps []string `firestore:"seqSteps" json:"seqSteps"`

	// PrepDone and SeqDone are checkbox states parallel to PrepSteps and
	// SeqSteps. They are kept at exactly the same length as their step
	// arrays on every read and write.
	PrepDone []bool `firestore:"prepDone" json:"prepDone"`
	SeqDone  []bool `firestore:"seqDone" json:"seqDone"`
}

// Plan is a teacher's lesson content for a single day. Plans are stored in
// the dailyPlans collection for a teacher, with the ID YYYY-MM-DD.
type Plan struct {
	// DateKey is the canonical YYYY-MM-DD key, duplicated into the document
	// so the share feed can order on it.
	DateKey string `firestore:"dateKey" json:"dateKey"`

	// Date and Weekday are display strings derived from DateKey at write
	// time, e.g. "September 3, 2024" and "Tuesday".
	Date    string `firestore:"date" json:"date"`
	Weekday string `firestore:"weekday" json:"weekday"`

	// IsPublic marks the plan visible through the share feed.
	IsPublic bool `firestore:"isPublic" json:"isPublic"`

	// Preps maps prep slot IDs such as "prep1" to their content.
	Preps map[string]PrepEntry `firestore:"preps" json:"preps"`

	// Rev counts successful updates. Every update bumps it by one inside a
	// transaction; it is the optimistic-concurrency token.
	Rev int64 `firestore:"rev" json:"rev"`

	// CreatedAt is set by the server when the plan is first written.
	CreatedAt time.Time `firestore:"createdAt,serverTimestamp" json:"createdAt"`

	// UpdatedAt is touched by the server on every write.
	UpdatedAt time.Time `firestore:"updatedAt,serverTimestamp" json:"updatedAt"`
}

// PrepName labels a prep slot, e.g. {prep1, "Honors ELA"}.
type PrepName struct {
	// ID is the slot identifier referenced by Plan.Preps.
	ID string `firestore:"id" json:"id"`

	// Name is the display name for the slot.
	Name string `firestore:"name" json:"name"`
}

// Teacher is the per-teacher profile document.
type Teacher struct {
	// DisplayName mirrors the auth provider's display name.
	DisplayName string `firestore:"displayName" json:"displayName"`

	// PrepNames defines which prep slots exist and their labels.
	PrepNames []PrepName `firestore:"prepNames" json:"prepNames"`

	// ShareToken is the opaque credential for the public plan feed. Once
	// minted it is kept even while sharing is disabled, so re-enabling
	// reuses the same URL.
	ShareToken string `firestore:"shareToken" json:"-"`

	// ShareEnabled gates the public feed.
	ShareEnabled bool `firestore:"shareEnabled" json:"shareEnabled"`

	// StandardsPackage selects which standards catalog the teacher uses.
	StandardsPackage string `firestore:"standardsPackage" json:"standardsPackage"`
}

// ChecklistItem is one entry on the teacher's running checklist.
type ChecklistItem struct {
	// ID is the document ID, filled in on read.
	ID string `firestore:"-" json:"id"`

	Text string `firestore:"text" json:"text"`
	Done bool   `firestore:"done" json:"done"`

	CreatedAt time.Time `firestore:"createdAt,serverTimestamp" json:"createdAt"`
}

// Note is a free-text teacher note.
type Note struct {
	// ID is the document ID, filled in on read.
	ID string `firestore:"-" json:"id"`

	Text string `firestore:"text" json:"text"`

	CreatedAt time.Time `firestore:"createdAt,serverTimestamp" json:"createdAt"`
}

// Report is a behavior referral. Reports live in a flat collection scoped
// to their teacher by the TeacherID field, independent of the plan
// subsystem.
type Report struct {
	// ID is the document ID, filled in on read.
	ID string `firestore:"-" json:"id"`

	StudentName     string `firestore:"studentName" json:"studentName"`
	Date            string `firestore:"date" json:"date"`
	GradeLevel      string `firestore:"gradeLevel" json:"gradeLevel"`
	Location        string `firestore:"location" json:"location"`
	TeacherName     string `firestore:"teacherName" json:"teacherName"`
	ReferralDetails string `firestore:"referralDetails" json:"referralDetails"`

	// Parent contact details, filled in when ParentContacted is set.
	ParentContacted bool   `firestore:"parentContacted" json:"parentContacted"`
	ContactPerson   string `firestore:"contactPerson" json:"contactPerson"`
	ContactMethod   string `firestore:"contactMethod" json:"contactMethod"`
	ContactDetails  string `firestore:"contactDetails" json:"contactDetails"`

	// AssignedDate is the YYYY-MM-DD the reteach is scheduled for, empty
	// when not on deck.
	AssignedDate string `firestore:"assignedDate" json:"assignedDate"`

	// Served marks the reteach completed, on ServedDate.
	Served     bool   `firestore:"served" json:"served"`
	ServedDate string `firestore:"servedDate" json:"servedDate"`

	Comment string `firestore:"comment" json:"comment"`

	// TeacherID is the owning teacher's auth subject ID.
	TeacherID string `firestore:"teacherId" json:"teacherId"`

	Timestamp time.Time `firestore:"timestamp" json:"timestamp"`
}

// BehaviorLog is one observed-behavior entry for a student. Logs live in a
// flat behaviorLogs collection scoped by TeacherID, like reports, and are
// lighter-weight: no referral workflow, just the running record behind the
// per-student history view.
type BehaviorLog struct {
	// ID is the document ID, filled in on read.
	ID string `firestore:"-" json:"id"`

	StudentName string `firestore:"studentName" json:"studentName"`

	// Time is the clock time the behavior happened, as entered ("13:45").
	Time string `firestore:"time" json:"time"`

	// Context is what was going on when the behavior occurred.
	Context string `firestore:"context" json:"context"`

	// Response is what the teacher did about it.
	Response string `firestore:"response" json:"response"`

	Details string `firestore:"details" json:"details"`

	// TeacherID is the owning teacher's auth subject ID.
	TeacherID string `firestore:"teacherId" json:"teacherId"`

	CreatedAt time.Time `firestore:"createdAt,serverTimestamp" json:"createdAt"`
}

// StudentBehaviorStat is one row of the behavior-log hot list: how often a
// student appears and when they last did.
type StudentBehaviorStat struct {
	StudentName string    `json:"studentName"`
	Count       int       `json:"count"`
	Latest      time.Time `json:"latest"`
}

// StandardCommentary is the teacher's running note on one standard, keyed
// by the standard's code in a per-teacher subcollection.
type StandardCommentary struct {
	// Code is the document ID, filled in on read.
	Code string `firestore:"-" json:"code"`

	Text string `firestore:"text" json:"text"`

	UpdatedAt time.Time `firestore:"updatedAt,serverTimestamp" json:"updatedAt"`
}

// DoneArrayName selects which checkbox array of a prep a toggle targets.
type DoneArrayName string

const (
	// PrepDone targets PrepEntry.PrepDone.
	PrepDone DoneArrayName = "prepDone"
	// SeqDone targets PrepEntry.SeqDone.
	SeqDone DoneArrayName = "seqDone"
)

// Valid reports whether n names a known done array.
func (n DoneArrayName) Valid() bool {
	return n == PrepDone || n == SeqDone
}

// Normalize forces the done arrays to the length of their step arrays,
// truncating extras and padding missing flags with false. Older documents
// written by earlier revisions of the app disagree on this, so every read
// and write path goes through here.
func (p *PrepEntry) Normalize() {
	p.PrepDone = normalizeDone(p.PrepDone, len(p.PrepSteps))
	p.SeqDone = normalizeDone(p.SeqDone, len(p.SeqSteps))
}

func normalizeDone(done []bool, n int) []bool {
	if len(done) == n {
		return done
	}
	out := make([]bool, n)
	copy(out, done)
	return out
}

// Normalize applies PrepEntry.Normalize to every prep in the plan.
func (p *Plan) Normalize() {
	for id, prep := range p.Preps {
		prep.Normalize()
		p.Preps[id] = prep
	}
}
