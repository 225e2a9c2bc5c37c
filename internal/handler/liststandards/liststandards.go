// Copyright (c) Foster Meadows
// SPDX-License-Identifier: MIT

package liststandards

import (
	"context"
	"errors"

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
	// Package selects a catalog. Empty means the teacher's saved choice.
	Package string `json:"package"`
}

type Response struct {
	Package   string               `json:"package"`
	Standards []standards.Standard `json:"standards"`
}

// ListStandards returns the records of one catalog for the editor's
// standards picker.
func (h *Handler) ListStandards(ctx context.Context, req *Request) (*Response, error) {
	pkg := req.Package
	if pkg == "" {
		teacher, err := auth.TeacherFromContext(ctx)
		if err != nil {
			return nil, err
		}
		profile, err := h.store.GetTeacher(ctx, teacher.UID)
		switch {
		case errors.Is(err, plannerdb.ErrNotFound):
			pkg = standards.DefaultPackage
		case err != nil:
			return nil, err
		case profile.StandardsPackage != "":
			pkg = profile.StandardsPackage
		default:
			pkg = standards.DefaultPackage
		}
	}

	cat, ok := h.catalogs[pkg]
	if !ok {
		return nil, httpapi.FieldErrors{"package": "Unknown standards package."}
	}
	return &Response{Package: pkg, Standards: cat.All()}, nil
}
