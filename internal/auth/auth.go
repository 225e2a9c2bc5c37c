// Copyright (c) Foster Meadows
// SPDX-License-Identifier: MIT

// Package auth extracts the signed-in teacher's identity from the verified
// Firebase token placed on the context by the auth middleware.
package auth

import (
	"context"
	"errors"

	"github.com/curioswitch/go-usegcp/middleware/firebaseauth"
)

// ErrUnauthorized means there is no signed-in identity for a teacher-only
// action.
var ErrUnauthorized = errors.New("auth: not signed in")

// Teacher is the identity the rest of the app consumes: an opaque subject
// ID and a display name.
type Teacher struct {
	UID         string
	DisplayName string
}

// TeacherFromContext returns the signed-in teacher, or ErrUnauthorized on
// a request that did not pass the auth middleware.
func TeacherFromContext(ctx context.Context) (Teacher, error) {
	tok := firebaseauth.TokenFromContext(ctx)
	if tok == nil || tok.UID == "" {
		return Teacher{}, ErrUnauthorized
	}
	name, _ := tok.Claims["name"].(string)
	return Teacher{UID: tok.UID, DisplayName: name}, nil
}
