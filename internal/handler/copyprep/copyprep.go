// Copyright (c) Foster Meadows
// SPDX-License-Identifier: MIT

package copyprep

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
	From    string `json:"from" validate:"required"`
	To      string `json:"to" validate:"required"`
}

type Response struct {
	Plan *plannerdb.Plan `json:"plan"`
}

// CopyPrep duplicates one prep slot's content onto another within the same
// day. Copying onto an already-identical slot is rejected, matching the
// disabled paste button in the editor.
func (h *Handler) CopyPrep(ctx context.Context, req *Request) (*Response, error) {
	teacher, err := auth.TeacherFromContext(ctx)
	if err != nil {
		return nil, err
	}

	if err := h.store.CopyPrep(ctx, teacher.UID, req.DateKey, req.From, req.To); err != nil {
		return nil, err
	}

	plan, err := h.store.GetPlan(ctx, teacher.UID, req.DateKey)
	if err != nil {
		return nil, err
	}
	return &Response{Plan: plan}, nil
}
