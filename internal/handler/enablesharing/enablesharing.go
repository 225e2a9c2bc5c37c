// Copyright (c) Foster Meadows
// SPDX-License-Identifier: MIT

package enablesharing

import (
	"context"

	"github.com/FosterMeadows/bespokebehaviors/internal/auth"
	"github.com/FosterMeadows/bespokebehaviors/internal/plannerdb"
)

func NewHandler(store *plannerdb.Store, shareBaseURL string) *Handler {
	return &Handler{
		store:        store,
		shareBaseURL: shareBaseURL,
	}
}

type Handler struct {
	store        *plannerdb.Store
	shareBaseURL string
}

type Request struct{}

type Response struct {
	ShareURL string `json:"shareUrl"`
}

// EnableSharing turns on the public feed and returns its URL. A teacher who
// shared before gets the same link back; the token survives disables.
func (h *Handler) EnableSharing(ctx context.Context, _ *Request) (*Response, error) {
	teacher, err := auth.TeacherFromContext(ctx)
	if err != nil {
		return nil, err
	}

	token, err := h.store.EnableSharing(ctx, teacher.UID)
	if err != nil {
		return nil, err
	}
	return &Response{ShareURL: h.shareBaseURL + "/share/" + token}, nil
}
