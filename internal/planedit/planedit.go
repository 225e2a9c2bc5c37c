// Copyright (c) Foster Meadows
// SPDX-License-Identifier: MIT

// Package planedit holds the edit-session logic for a daily plan: the
// buffered form a teacher types into, its validation, and construction of
// the payloads that go to the store. Everything here is pure so the rules
// around blank filtering, done-flag correspondence, and what a bulk save
// may touch are testable without a backend. In-place step mutations on a
// stored plan (reorder, prep copy) live in plannerdb, where they run
// through the transactional rev bump.
package planedit

import (
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/FosterMeadows/bespokebehaviors/internal/datekey"
	"github.com/FosterMeadows/bespokebehaviors/internal/plannerdb"
)

// DefaultPrepNames seeds teachers who have not named their slots yet.
var DefaultPrepNames = []plannerdb.PrepName{
	{ID: "prep1", Name: "Regular ELA"},
	{ID: "prep2", Name: "Honors ELA"},
}

// PrepForm is the buffered state of one prep slot while editing.
type PrepForm struct {
	Title           string   `json:"title"`
	Standards       []string `json:"standards"`
	PerformanceGoal string   `json:"performanceGoal"`
	Objective       string   `json:"objective"`
	PrepSteps       []string `json:"prepSteps"`
	SeqSteps        []string `json:"seqSteps"`
}

// Form is the buffered state of a whole day. Nothing in it is persisted
// until an explicit save; navigating to another date discards it.
type Form struct {
	Date     time.Time           `json:"-"`
	IsPublic bool                `json:"isPublic"`
	Preps    map[string]PrepForm `json:"preps"`
}

// NewForm returns the empty buffer for a date with no plan yet; the view
// goes straight into editing. Each prep starts with one blank step row.
func NewForm(date time.Time, prepNames []plannerdb.PrepName) Form {
	if len(prepNames) == 0 {
		prepNames = DefaultPrepNames
	}
	preps := make(map[string]PrepForm, len(prepNames))
	for _, pn := range prepNames {
		preps[pn.ID] = PrepForm{
			PrepSteps: []string{""},
			SeqSteps:  []string{""},
		}
	}
	return Form{Date: date, Preps: preps}
}

// FormFromPlan buffers an existing plan for editing. Preps the teacher has
// since added to their slot list appear as empty sections.
func FormFromPlan(date time.Time, plan *plannerdb.Plan, prepNames []plannerdb.PrepName) Form {
	form := NewForm(date, prepNames)
	form.IsPublic = plan.IsPublic
	for id, prep := range plan.Preps {
		pf := PrepForm{
			Title:           prep.Title,
			Standards:       slices.Clone(prep.Standards),
			PerformanceGoal: prep.PerformanceGoal,
			Objective:       prep.Objective,
			PrepSteps:       slices.Clone(prep.PrepSteps),
			SeqSteps:        slices.Clone(prep.SeqSteps),
		}
		if len(pf.PrepSteps) == 0 {
			pf.PrepSteps = []string{""}
		}
		if len(pf.SeqSteps) == 0 {
			pf.SeqSteps = []string{""}
		}
		form.Preps[id] = pf
	}
	return form
}

// hasContent reports whether the prep has anything worth saving.
func (p PrepForm) hasContent() bool {
	if strings.TrimSpace(p.Title) != "" || len(p.Standards) > 0 {
		return true
	}
	if strings.TrimSpace(p.PerformanceGoal) != "" || strings.TrimSpace(p.Objective) != "" {
		return true
	}
	for _, s := range p.PrepSteps {
		if strings.TrimSpace(s) != "" {
			return true
		}
	}
	for _, s := range p.SeqSteps {
		if strings.TrimSpace(s) != "" {
			return true
		}
	}
	return false
}

// Validate checks the buffered form. Field errors are keyed by field path
// so they render inline next to the offending input rather than as a
// generic failure banner.
func (f Form) Validate() map[string]string {
	errs := map[string]string{}
	filled := false
	for id, prep := range f.Preps {
		if !prep.hasContent() {
			continue
		}
		filled = true
		if strings.TrimSpace(prep.Title) == "" {
			errs["preps."+id+".title"] = "Lesson title is required."
		}
	}
	if !filled {
		errs["preps"] = "Add content to at least one prep before saving."
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// FilterBlankSteps removes blank entries from steps, dropping the paired
// done flags so index correspondence survives. Order is preserved.
func FilterBlankSteps(steps []string, done []bool) ([]string, []bool) {
	outSteps := make([]string, 0, len(steps))
	outDone := make([]bool, 0, len(steps))
	for i, s := range steps {
		if strings.TrimSpace(s) == "" {
			continue
		}
		outSteps = append(outSteps, s)
		if i < len(done) {
			outDone = append(outDone, done[i])
		} else {
			outDone = append(outDone, false)
		}
	}
	return outSteps, outDone
}

// CreatePayload builds the document for a first save of this date. Done
// arrays start all-false at the filtered step lengths.
func (f Form) CreatePayload() plannerdb.Plan {
	preps := make(map[string]plannerdb.PrepEntry, len(f.Preps))
	for id, prep := range f.Preps {
		if !prep.hasContent() {
			continue
		}
		prepSteps, _ := FilterBlankSteps(prep.PrepSteps, nil)
		seqSteps, _ := FilterBlankSteps(prep.SeqSteps, nil)
		preps[id] = plannerdb.PrepEntry{
			Title:           prep.Title,
			Standards:       prep.Standards,
			PerformanceGoal: prep.PerformanceGoal,
			Objective:       prep.Objective,
			PrepSteps:       prepSteps,
			SeqSteps:        seqSteps,
			PrepDone:        make([]bool, len(prepSteps)),
			SeqDone:         make([]bool, len(seqSteps)),
		}
	}
	return plannerdb.Plan{
		DateKey:  datekey.Key(f.Date),
		Date:     datekey.Pretty(f.Date),
		Weekday:  datekey.Weekday(f.Date),
		IsPublic: f.IsPublic,
		Preps:    preps,
	}
}

// UpdatePayload builds the field list for a bulk save of an existing plan.
// prepDone/seqDone are deliberately absent: a save in flight must not
// clobber a checkbox toggled concurrently through ToggleStepDone.
func (f Form) UpdatePayload() []plannerdb.FieldUpdate {
	fields := []plannerdb.FieldUpdate{
		{Path: []string{"dateKey"}, Value: datekey.Key(f.Date)},
		{Path: []string{"date"}, Value: datekey.Pretty(f.Date)},
		{Path: []string{"weekday"}, Value: datekey.Weekday(f.Date)},
		{Path: []string{"isPublic"}, Value: f.IsPublic},
	}
	for _, id := range slices.Sorted(maps.Keys(f.Preps)) {
		prep := f.Preps[id]
		prepSteps, _ := FilterBlankSteps(prep.PrepSteps, nil)
		seqSteps, _ := FilterBlankSteps(prep.SeqSteps, nil)
		base := []string{"preps", id}
		fields = append(fields,
			plannerdb.FieldUpdate{Path: append(slices.Clone(base), "title"), Value: prep.Title},
			plannerdb.FieldUpdate{Path: append(slices.Clone(base), "standards"), Value: prep.Standards},
			plannerdb.FieldUpdate{Path: append(slices.Clone(base), "performanceGoal"), Value: prep.PerformanceGoal},
			plannerdb.FieldUpdate{Path: append(slices.Clone(base), "objective"), Value: prep.Objective},
			plannerdb.FieldUpdate{Path: append(slices.Clone(base), "prepSteps"), Value: prepSteps},
			plannerdb.FieldUpdate{Path: append(slices.Clone(base), "seqSteps"), Value: seqSteps},
		)
	}
	return fields
}

// SnapWeekday steps t by one day in dir (+1 or -1) until it lands on a
// weekday, exactly like the prev/next navigation arrows. A weekday input
// with dir 0 is returned unchanged; a weekend input with dir 0 snaps
// forward.
func SnapWeekday(t time.Time, dir int) time.Time {
	if dir == 0 {
		if !datekey.IsWeekend(t) {
			return t
		}
		dir = 1
	} else {
		t = datekey.AddDays(t, dir)
	}
	for datekey.IsWeekend(t) {
		t = datekey.AddDays(t, dir)
	}
	return t
}
