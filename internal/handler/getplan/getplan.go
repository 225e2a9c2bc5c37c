// Copyright (c) Foster Meadows
// SPDX-License-Identifier: MIT

package getplan

import (
	"context"
	"errors"
	"time"

	"github.com/FosterMeadows/bespokebehaviors/internal/auth"
	"github.com/FosterMeadows/bespokebehaviors/internal/datekey"
	"github.com/FosterMeadows/bespokebehaviors/internal/httpapi"
	"github.com/FosterMeadows/bespokebehaviors/internal/planedit"
	"github.com/FosterMeadows/bespokebehaviors/internal/plannerdb"
)

func NewHandler(store *plannerdb.Store) *Handler {
	return &Handler{
		store: store,
	}
}

type Handler struct {
	store *plannerdb.Store
}

type Request struct {
	// Date is the MM.DD.YYYY link parameter. Empty means today.
	Date string `json:"date"`
}

type Response struct {
	DateKey string `json:"dateKey"`
	Date    string `json:"date"`
	Weekday string `json:"weekday"`

	// Param is the canonical MM.DD.YYYY for the resolved (possibly
	// weekend-snapped) date, for the client to sync back into the URL.
	Param string `json:"param"`

	// Plan is the stored document, nil when none exists for the date.
	Plan *plannerdb.Plan `json:"plan"`

	// Form seeds the edit buffer: the stored plan's content, or a fresh
	// buffer when there is no plan yet.
	Form planedit.Form `json:"form"`

	// Editing is true when there is no plan for the date; the view goes
	// straight into edit mode.
	Editing bool `json:"editing"`

	PrepNames []plannerdb.PrepName `json:"prepNames"`
}

// GetPlan loads the plan for the date in the navigation location. The date
// resolves to today when absent, and weekends snap forward to Monday.
func (h *Handler) GetPlan(ctx context.Context, req *Request) (*Response, error) {
	teacher, err := auth.TeacherFromContext(ctx)
	if err != nil {
		return nil, err
	}

	date := time.Now()
	if req.Date != "" {
		d, ok := datekey.ParseParam(req.Date)
		if !ok {
			return nil, httpapi.FieldErrors{"date": "Dates look like MM.DD.YYYY."}
		}
		date = d
	}
	date = planedit.SnapWeekday(date, 0)

	prepNames := planedit.DefaultPrepNames
	profile, err := h.store.GetTeacher(ctx, teacher.UID)
	if err == nil && len(profile.PrepNames) > 0 {
		prepNames = profile.PrepNames
	} else if err != nil && !errors.Is(err, plannerdb.ErrNotFound) {
		return nil, err
	}

	res := &Response{
		DateKey:   datekey.Key(date),
		Date:      datekey.Pretty(date),
		Weekday:   datekey.Weekday(date),
		Param:     datekey.Param(date),
		PrepNames: prepNames,
	}

	plan, err := h.store.GetPlan(ctx, teacher.UID, res.DateKey)
	switch {
	case errors.Is(err, plannerdb.ErrNotFound):
		res.Editing = true
		res.Form = planedit.NewForm(date, prepNames)
	case err != nil:
		return nil, err
	default:
		res.Plan = plan
		res.Form = planedit.FormFromPlan(date, plan, prepNames)
	}
	return res, nil
}
