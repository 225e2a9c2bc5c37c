// Copyright (c) Foster Meadows
// SPDX-License-Identifier: MIT

package reorderstep

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
	List    string `json:"list" validate:"required,oneof=prepSteps seqSteps"`
	From    int    `json:"from" validate:"gte=0"`
	To      int    `json:"to" validate:"gte=0"`
}

type Response struct {
	Plan *plannerdb.Plan `json:"plan"`
}

// ReorderStep moves a step within a stored plan. The step's done flag
// travels with it.
func (h *Handler) ReorderStep(ctx context.Context, req *Request) (*Response, error) {
	teacher, err := auth.TeacherFromContext(ctx)
	if err != nil {
		return nil, err
	}

	if err := h.store.ReorderStep(ctx, teacher.UID, req.DateKey, req.PrepID, req.List, req.From, req.To); err != nil {
		return nil, err
	}

	plan, err := h.store.GetPlan(ctx, teacher.UID, req.DateKey)
	if err != nil {
		return nil, err
	}
	return &Response{Plan: plan}, nil
}
