// Copyright (c) Foster Meadows
// SPDX-License-Identifier: MIT

// Package notes exposes the teacher's free-text notes.
package notes

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
		return nil, httpapi.FieldErrors{"text": "Notes need text."}
	}

	id, err := h.store.AddNote(ctx, teacher.UID, text)
	if err != nil {
		return nil, err
	}
	return &AddResponse{ID: id}, nil
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
		return nil, httpapi.FieldErrors{"text": "Notes need text."}
	}

	if err := h.store.EditNote(ctx, teacher.UID, req.ID, text); err != nil {
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

	if err := h.store.DeleteNote(ctx, teacher.UID, req.ID); err != nil {
		return nil, err
	}
	return &DeleteResponse{}, nil
}

type ListRequest struct{}

type ListResponse struct {
	Notes []plannerdb.Note `json:"notes"`
}

func (h *Handler) List(ctx context.Context, _ *ListRequest) (*ListResponse, error) {
	teacher, err := auth.TeacherFromContext(ctx)
	if err != nil {
		return nil, err
	}

	list, err := h.store.ListNotes(ctx, teacher.UID)
	if err != nil {
		return nil, err
	}
	return &ListResponse{Notes: list}, nil
}
