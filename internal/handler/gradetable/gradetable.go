// Copyright (c) Foster Meadows
// SPDX-License-Identifier: MIT

package gradetable

import (
	"context"
	"errors"

	"github.com/FosterMeadows/bespokebehaviors/internal/gradescale"
	"github.com/FosterMeadows/bespokebehaviors/internal/httpapi"
)

func NewHandler() *Handler {
	return &Handler{}
}

// Handler is stateless; the table is pure arithmetic on the request.
type Handler struct{}

type Request struct {
	Total int `json:"total" validate:"required"`
}

type Response struct {
	Rows []gradescale.Row `json:"rows"`
}

// GradeTable computes the score-to-percentage scale for an assignment.
func (h *Handler) GradeTable(_ context.Context, req *Request) (*Response, error) {
	rows, err := gradescale.Generate(req.Total)
	if errors.Is(err, gradescale.ErrBadTotal) {
		return nil, httpapi.FieldErrors{"total": "Total must be a whole number between 1 and 1000."}
	}
	if err != nil {
		return nil, err
	}
	return &Response{Rows: rows}, nil
}
