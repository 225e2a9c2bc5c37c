// Copyright (c) Foster Meadows
// SPDX-License-Identifier: MIT

// Package sharedplans serves the unauthenticated public plan feed. It is
// the one read path that runs without a signed-in teacher, so everything it
// returns is filtered to what the owner chose to publish.
package sharedplans

import (
	"net/http"

	"github.com/go-chi/chi/v5"

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

type Response struct {
	TeacherName string               `json:"teacherName"`
	PrepNames   []plannerdb.PrepName `json:"prepNames"`
	Plans       []plannerdb.Plan     `json:"plans"`
}

// ServeHTTP resolves the share token from the URL and returns the owner's
// published plans, newest first. A disabled or unknown token is a plain 404
// either way; the feed never reveals whether a teacher exists.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	token := chi.URLParam(r, "token")

	uid, teacher, err := h.store.ResolveShareToken(ctx, token)
	if err != nil {
		httpapi.WriteError(ctx, w, err)
		return
	}

	plans, err := h.store.SharedPlans(ctx, uid)
	if err != nil {
		httpapi.WriteError(ctx, w, err)
		return
	}

	// Only plans the teacher explicitly marked public appear in the feed.
	public := make([]plannerdb.Plan, 0, len(plans))
	for _, p := range plans {
		if p.IsPublic {
			public = append(public, p)
		}
	}

	prepNames := teacher.PrepNames
	if len(prepNames) == 0 {
		prepNames = planedit.DefaultPrepNames
	}

	httpapi.WriteJSON(ctx, w, http.StatusOK, &Response{
		TeacherName: teacher.DisplayName,
		PrepNames:   prepNames,
		Plans:       public,
	})
}
