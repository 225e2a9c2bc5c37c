// Copyright (c) Foster Meadows
// SPDX-License-Identifier: MIT

package toggledone

import (
	"context"

	"github.com/FosterMeadows/bespokebehaviors/internal/auth"
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
	DateKey string `json:"dateKey" validate:"required"`
	PrepID  string `json:"prepId" validate:"required"`
	Array   string `json:"array" validate:"required,oneof=prepDone seqDone"`
	Index   int    `json:"index" validate:"gte=0"`
}

type Response struct {
	// Plan is the document after the flip, for reconciling the optimistic
	// local checkbox state.
	Plan *plannerdb.Plan `json:"plan"`
}

// ToggleDone flips one checkbox in a prep's done array without touching
// anything else in the document.
func (h *Handler) ToggleDone(ctx context.Context, req *Request) (*Response, error) {
	teacher, err := auth.TeacherFromContext(ctx)
	if err != nil {
		return nil, err
	}

	if err := h.store.ToggleStepDone(ctx, teacher.UID, req.DateKey, req.PrepID,
		plannerdb.DoneArrayName(req.Array), req.Index); err != nil {
		return nil, err
	}

	plan, err := h.store.GetPlan(ctx, teacher.UID, req.DateKey)
	if err != nil {
		return nil, err
	}
	return &Response{Plan: plan}, nil
}
