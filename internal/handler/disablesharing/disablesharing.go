// Copyright (c) Foster Meadows
// SPDX-License-Identifier: MIT

package disablesharing

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

type Request struct{}

type Response struct {
	ShareEnabled bool `json:"shareEnabled"`
}

// DisableSharing switches the public feed off. The token is kept so a later
// re-enable hands back the same URL.
func (h *Handler) DisableSharing(ctx context.Context, _ *Request) (*Response, error) {
	teacher, err := auth.TeacherFromContext(ctx)
	if err != nil {
		return nil, err
	}

	if err := h.store.DisableSharing(ctx, teacher.UID); err != nil {
		return nil, err
	}
	return &Response{ShareEnabled: false}, nil
}
