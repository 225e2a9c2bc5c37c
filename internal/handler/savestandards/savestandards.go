// Copyright (c) Foster Meadows
// SPDX-License-Identifier: MIT

package savestandards

import (
	"context"

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

type Request struct {
	// Package names one of the bundled standards catalogs.
	Package string `json:"package" validate:"required"`
}

type Response struct {
	Package string `json:"package"`
}

// SaveStandards records which standards catalog the editor's picker draws
// from. Unknown packages are rejected against the bundled catalog set.
func (h *Handler) SaveStandards(ctx context.Context, req *Request) (*Response, error) {
	teacher, err := auth.TeacherFromContext(ctx)
	if err != nil {
		return nil, err
	}

	if _, ok := h.catalogs[req.Package]; !ok {
		return nil, httpapi.FieldErrors{"package": "Unknown standards package."}
	}

	if err := h.store.SaveStandardsPackage(ctx, teacher.UID, req.Package); err != nil {
		return nil, err
	}
	return &Response{Package: req.Package}, nil
}
