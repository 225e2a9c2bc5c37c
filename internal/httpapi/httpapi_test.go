// Copyright (c) Foster Meadows
// SPDX-License-Identifier: MIT

package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FosterMeadows/bespokebehaviors/internal/auth"
	"github.com/FosterMeadows/bespokebehaviors/internal/plannerdb"
)

type echoReq struct {
	Name string `json:"name" validate:"required"`
}

type echoRes struct {
	Greeting string `json:"greeting"`
}

func echoHandler(_ context.Context, req *echoReq) (*echoRes, error) {
	return &echoRes{Greeting: "hello " + req.Name}, nil
}

func do(t *testing.T, h http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func TestUnaryOK(t *testing.T) {
	rec := do(t, Unary(echoHandler), `{"name":"ms. frizzle"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var res echoRes
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "hello ms. frizzle", res.Greeting)
}

func TestUnaryMalformedBody(t *testing.T) {
	rec := do(t, Unary(echoHandler), `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUnaryValidation(t *testing.T) {
	rec := do(t, Unary(echoHandler), `{}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body struct {
		Code   string            `json:"code"`
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "validation", body.Code)
	assert.Contains(t, body.Fields, "Name")
}

func TestErrorMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{plannerdb.ErrNotFound, http.StatusNotFound, "not_found"},
		{plannerdb.ErrAlreadyExists, http.StatusConflict, "already_exists"},
		{plannerdb.ErrConcurrentModification, http.StatusConflict, "stale"},
		{plannerdb.ErrUnavailable, http.StatusServiceUnavailable, "unavailable"},
		{plannerdb.ErrInvalid, http.StatusBadRequest, "invalid"},
		{auth.ErrUnauthorized, http.StatusUnauthorized, "unauthorized"},
		{FieldErrors{"title": "required"}, http.StatusBadRequest, "validation"},
		{fmt.Errorf("boom"), http.StatusInternalServerError, "internal"},
	}
	for _, tc := range cases {
		h := Unary(func(context.Context, *struct{}) (*struct{}, error) {
			return nil, fmt.Errorf("op: %w", tc.err)
		})
		rec := do(t, h, "")
		assert.Equal(t, tc.status, rec.Code, "error %v", tc.err)

		var body struct {
			Code string `json:"code"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, tc.code, body.Code, "error %v", tc.err)
	}
}
