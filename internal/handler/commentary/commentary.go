// Copyright (c) Foster Meadows
// SPDX-License-Identifier: MIT

// Package commentary exposes the per-standard notes a teacher keeps
// alongside the standards tracker.
package commentary

import (
	"context"
	"strings"

	"github.com/FosterMeadows/bespokebehaviors/internal/auth"
	"github.com/FosterMeadows/bespokebehaviors/internal/httpapi"
	"github.com/FosterMeadows/bespokebehaviors/internal/plannerdb"
	"github.com/FosterMeadows/bespokebehaviors/internal/standards"
)

func NewHandler(store *plannerdb.Store, catalogs map[string]*standards.Catalog) *Handler {
	return &Handler{
		store:    store,
		catalogs: catalogs,
	}
}

type Handler struct {
	store    *plannerdb.Store
	catalogs map[string]*standards.Catalog
}

type SaveRequest struct {
	// Code is the standard being commented on, e.g. "RL.8.2".
	Code string `json:"code" validate:"required"`

	// Text is the commentary. Empty clears the note.
	Text string `json:"text"`
}

type SaveResponse struct{}

// Save upserts the note on one standard. The code must exist in one of the
// bundled catalogs so typos don't accumulate orphaned notes.
func (h *Handler) Save(ctx context.Context, req *SaveRequest) (*SaveResponse, error) {
	teacher, err := auth.TeacherFromContext(ctx)
	if err != nil {
		return nil, err
	}

	known := false
	for _, cat := range h.catalogs {
		if _, ok := cat.Lookup(req.Code); ok {
			known = true
			break
		}
	}
	if !known {
		return nil, httpapi.FieldErrors{"code": "Unknown standard code."}
	}

	if err := h.store.SaveStandardCommentary(ctx, teacher.UID, req.Code, strings.TrimSpace(req.Text)); err != nil {
		return nil, err
	}
	return &SaveResponse{}, nil
}

type ListRequest struct{}

type ListResponse struct {
	Commentary []plannerdb.StandardCommentary `json:"commentary"`
}

// List returns every standard the teacher has a note on.
func (h *Handler) List(ctx context.Context, _ *ListRequest) (*ListResponse, error) {
	teacher, err := auth.TeacherFromContext(ctx)
	if err != nil {
		return nil, err
	}

	notes, err := h.store.ListStandardsCommentary(ctx, teacher.UID)
	if err != nil {
		return nil, err
	}
	return &ListResponse{Commentary: notes}, nil
}
