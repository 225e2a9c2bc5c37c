// Copyright (c) Foster Meadows
// SPDX-License-Identifier: MIT

// Package checklist exposes the teacher's running to-do list.
package checklist

import (
	"context"
	"strings"

	"github.com/FosterMeadows/bespokebehaviors/internal/auth"
	"github.com/FosterMeadows/bespokebehaviors/internal/httpapi"
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

type AddRequest struct {
	Text string `json:"text" validate:"required"`
}

type AddResponse struct {
	ID string `json:"id"`
}

func (h *Handler) Add(ctx context.Context, req *AddRequest) (*AddResponse, error) {
	teacher, err := auth.TeacherFromContext(ctx)
	if err != nil {
		return nil, err
	}

	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, httpapi.FieldErrors{"text": "Checklist items need text."}
	}

	id, err := h.store.AddChecklistItem(ctx, teacher.UID, text)
	if err != nil {
		return nil, err
	}
	return &AddResponse{ID: id}, nil
}

type SetDoneRequest struct {
	ID   string `json:"id" validate:"required"`
	Done bool   `json:"done"`
}

type SetDoneResponse struct{}

func (h *Handler) SetDone(ctx context.Context, req *SetDoneRequest) (*SetDoneResponse, error) {
	teacher, err := auth.TeacherFromContext(ctx)
	if err != nil {
		return nil, err
	}

	if err := h.store.SetChecklistDone(ctx, teacher.UID, req.ID, req.Done); err != nil {
		return nil, err
	}
	return &SetDoneResponse{}, nil
}

type EditRequest struct {
	ID   string `json:"id" validate:"required"`
	Text string `json:"text" validate:"required"`
}

type EditResponse struct{}

func (h *Handler) Edit(ctx context.Context, req *EditRequest) (*EditResponse, error) {
	teacher, err := auth.TeacherFromContext(ctx)
	if err != nil {
		return nil, err
	}

	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, httpapi.FieldErrors{"text": "Checklist items need text."}
	}

	if err := h.store.EditChecklistItem(ctx, teacher.UID, req.ID, text); err != nil {
		return nil, err
	}
	return &EditResponse{}, nil
}

type DeleteRequest struct {
	ID string `json:"id" validate:"required"`
}

type DeleteResponse struct{}

func (h *Handler) Delete(ctx context.Context, req *DeleteRequest) (*DeleteResponse, error) {
	teacher, err := auth.TeacherFromContext(ctx)
	if err != nil {
		return nil, err
	}

	if err := h.store.DeleteChecklistItem(ctx, teacher.UID, req.ID); err != nil {
		return nil, err
	}
	return &DeleteResponse{}, nil
}

type ListRequest struct{}

type ListResponse struct {
	Items []plannerdb.ChecklistItem `json:"items"`
}

func (h *Handler) List(ctx context.Context, _ *ListRequest) (*ListResponse, error) {
	teacher, err := auth.TeacherFromContext(ctx)
	if err != nil {
		return nil, err
	}

	items, err := h.store.ListChecklist(ctx, teacher.UID)
	if err != nil {
		return nil, err
	}
	return &ListResponse{Items: items}, nil
}

type ClearDoneRequest struct{}

type ClearDoneResponse struct {
	Cleared int `json:"cleared"`
}

// ClearDone deletes every checked item in one sweep.
func (h *Handler) ClearDone(ctx context.Context, _ *ClearDoneRequest) (*ClearDoneResponse, error) {
	teacher, err := auth.TeacherFromContext(ctx)
	if err != nil {
		return nil, err
	}

	cleared, err := h.store.ClearDoneChecklist(ctx, teacher.UID)
	if err != nil {
		return nil, err
	}
	return &ClearDoneResponse{Cleared: cleared}, nil
}
