// Copyright (c) Foster Meadows
// SPDX-License-Identifier: MIT

package saveprepnames

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

type Request struct {
	PrepNames []plannerdb.PrepName `json:"prepNames" validate:"required,min=1,dive"`
}

type Response struct {
	PrepNames []plannerdb.PrepName `json:"prepNames"`
}

// SavePrepNames stores the teacher's class-period labels. Labels apply to
// every day's plan view, past and future, since plans only store slot IDs.
func (h *Handler) SavePrepNames(ctx context.Context, req *Request) (*Response, error) {
	teacher, err := auth.TeacherFromContext(ctx)
	if err != nil {
		return nil, err
	}

	names := make([]plannerdb.PrepName, 0, len(req.PrepNames))
	seen := make(map[string]bool, len(req.PrepNames))
	for _, pn := range req.PrepNames {
		pn.ID = strings.TrimSpace(pn.ID)
		pn.Name = strings.TrimSpace(pn.Name)
		if pn.ID == "" || pn.Name == "" {
			return nil, httpapi.FieldErrors{"prepNames": "Every prep needs an ID and a name."}
		}
		if seen[pn.ID] {
			return nil, httpapi.FieldErrors{"prepNames": "Prep IDs must be unique."}
		}
		seen[pn.ID] = true
		names = append(names, pn)
	}

	if err := h.store.SavePrepNames(ctx, teacher.UID, names); err != nil {
		return nil, err
	}
	return &Response{PrepNames: names}, nil
}
