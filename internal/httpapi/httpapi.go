// Copyright (c) Foster Meadows
// SPDX-License-Identifier: MIT

// Package httpapi adapts typed unary handlers onto the JSON-over-HTTP API:
// decode the request struct, validate it, execute, encode the response,
// and map repository failures onto status codes.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/FosterMeadows/bespokebehaviors/internal/auth"
	"github.com/FosterMeadows/bespokebehaviors/internal/plannerdb"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// FieldErrors carries per-field validation messages so the UI can render
// them inline next to the offending inputs instead of a generic banner.
type FieldErrors map[string]string

func (e FieldErrors) Error() string { return "validation failed" }

// errorBody is the JSON shape of every failed call.
type errorBody struct {
	Error  string            `json:"error"`
	Code   string            `json:"code"`
	Fields map[string]string `json:"fields,omitempty"`
}

// Unary wraps a typed execute func as an http.HandlerFunc taking a JSON
// body. Requests with no parameters may send an empty body.
func Unary[Req, Res any](execute func(ctx context.Context, req *Req) (*Res, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req Req
		if r.ContentLength != 0 {
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				WriteError(ctx, w, FieldErrors{"body": "malformed JSON"})
				return
			}
		}
		if err := validate.StructCtx(ctx, &req); err != nil {
			var verrs validator.ValidationErrors
			if errors.As(err, &verrs) {
				fields := FieldErrors{}
				for _, fe := range verrs {
					fields[fe.Field()] = "failed " + fe.Tag() + " validation"
				}
				WriteError(ctx, w, fields)
				return
			}
			WriteError(ctx, w, err)
			return
		}

		res, err := execute(ctx, &req)
		if err != nil {
			WriteError(ctx, w, err)
			return
		}
		WriteJSON(ctx, w, http.StatusOK, res)
	}
}

// WriteJSON encodes v as the response body.
func WriteJSON(ctx context.Context, w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.ErrorContext(ctx, "httpapi: encoding response", "error", err)
	}
}

// WriteError maps err onto the failure taxonomy and writes the JSON error
// body. Backend causes are logged here, at the operation boundary, so the
// client only sees the classification.
func WriteError(ctx context.Context, w http.ResponseWriter, err error) {
	var fields FieldErrors

	status := http.StatusInternalServerError
	code := "internal"
	msg := "Something went wrong."

	switch {
	case errors.As(err, &fields):
		status, code = http.StatusBadRequest, "validation"
		msg = "Some fields need attention."
	case errors.Is(err, plannerdb.ErrInvalid):
		status, code = http.StatusBadRequest, "invalid"
		msg = "The request referenced something that does not exist."
	case errors.Is(err, auth.ErrUnauthorized):
		status, code = http.StatusUnauthorized, "unauthorized"
		msg = "Sign in to do that."
	case errors.Is(err, plannerdb.ErrNotFound):
		status, code = http.StatusNotFound, "not_found"
		msg = "Not found."
	case errors.Is(err, plannerdb.ErrAlreadyExists):
		status, code = http.StatusConflict, "already_exists"
		msg = "That already exists."
	case errors.Is(err, plannerdb.ErrConcurrentModification):
		status, code = http.StatusConflict, "stale"
		msg = "This plan changed somewhere else. Reload before saving again."
	case errors.Is(err, plannerdb.ErrUnavailable):
		status, code = http.StatusServiceUnavailable, "unavailable"
		msg = "Couldn't reach storage. Try again."
	}

	if status >= http.StatusInternalServerError {
		slog.ErrorContext(ctx, "httpapi: request failed", "error", err)
	} else {
		slog.DebugContext(ctx, "httpapi: request rejected", "code", code, "error", err)
	}

	WriteJSON(ctx, w, status, errorBody{Error: msg, Code: code, Fields: fields})
}
