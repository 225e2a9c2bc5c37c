// Copyright (c) Foster Meadows
// SPDX-License-Identifier: MIT

package saveplan

import (
	"context"
	"errors"

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
	// Date is the MM.DD.YYYY parameter of the date being edited.
	Date string `json:"date" validate:"required"`

	IsPublic bool `json:"isPublic"`

	// Preps is the full buffered form content, keyed by prep slot ID.
	Preps map[string]planedit.PrepForm `json:"preps" validate:"required"`
}

type Response struct {
	// Plan is the canonical document re-fetched after the write, so the
	// client reconciles its buffer against server truth including rev.
	Plan *plannerdb.Plan `json:"plan"`

	// Created is true when this save was the first for the date.
	Created bool `json:"created"`
}

// SavePlan persists the buffered form: create for a date with no plan yet,
// rev-bumped update otherwise. Blank steps are filtered out; checkbox
// arrays are never part of a bulk save so an in-flight save cannot clobber
// a concurrent toggle.
func (h *Handler) SavePlan(ctx context.Context, req *Request) (*Response, error) {
	teacher, err := auth.TeacherFromContext(ctx)
	if err != nil {
		return nil, err
	}

	date, ok := datekey.ParseParam(req.Date)
	if !ok {
		return nil, httpapi.FieldErrors{"date": "Dates look like MM.DD.YYYY."}
	}

	form := planedit.Form{Date: date, IsPublic: req.IsPublic, Preps: req.Preps}
	if errs := form.Validate(); errs != nil {
		return nil, httpapi.FieldErrors(errs)
	}

	dateKey := datekey.Key(date)
	created := false

	_, err = h.store.GetPlan(ctx, teacher.UID, dateKey)
	switch {
	case errors.Is(err, plannerdb.ErrNotFound):
		if err := h.store.CreatePlan(ctx, teacher.UID, dateKey, form.CreatePayload()); err != nil {
			return nil, err
		}
		created = true
	case err != nil:
		return nil, err
	default:
		if err := h.store.UpdatePlan(ctx, teacher.UID, dateKey, form.UpdatePayload()); err != nil {
			return nil, err
		}
	}

	plan, err := h.store.GetPlan(ctx, teacher.UID, dateKey)
	if err != nil {
		return nil, err
	}
	return &Response{Plan: plan, Created: created}, nil
}
