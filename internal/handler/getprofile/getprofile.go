// Copyright (c) Foster Meadows
// SPDX-License-Identifier: MIT

package getprofile

import (
	"context"

	"github.com/FosterMeadows/bespokebehaviors/internal/auth"
	"github.com/FosterMeadows/bespokebehaviors/internal/planedit"
	"github.com/FosterMeadows/bespokebehaviors/internal/plannerdb"
	"github.com/FosterMeadows/bespokebehaviors/internal/standards"
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

// Request is empty; the profile is scoped by the signed-in teacher.
type Request struct{}

type Response struct {
	DisplayName string               `json:"displayName"`
	PrepNames   []plannerdb.PrepName `json:"prepNames"`

	StandardsPackage string `json:"standardsPackage"`

	ShareEnabled bool `json:"shareEnabled"`
	// ShareURL is the public feed address, present only while sharing is on.
	ShareURL string `json:"shareUrl,omitempty"`
}

// GetProfile returns the teacher's settings, creating the profile document
// on first sign-in so later writes have a parent to merge into.
func (h *Handler) GetProfile(ctx context.Context, _ *Request) (*Response, error) {
	teacher, err := auth.TeacherFromContext(ctx)
	if err != nil {
		return nil, err
	}

	if err := h.store.EnsureTeacher(ctx, teacher.UID, teacher.DisplayName); err != nil {
		return nil, err
	}
	profile, err := h.store.GetTeacher(ctx, teacher.UID)
	if err != nil {
		return nil, err
	}

	res := &Response{
		DisplayName:      profile.DisplayName,
		PrepNames:        profile.PrepNames,
		StandardsPackage: profile.StandardsPackage,
		ShareEnabled:     profile.ShareEnabled,
	}
	if len(res.PrepNames) == 0 {
		res.PrepNames = planedit.DefaultPrepNames
	}
	if res.StandardsPackage == "" {
		res.StandardsPackage = standards.DefaultPackage
	}
	if profile.ShareEnabled && profile.ShareToken != "" {
		res.ShareURL = h.shareBaseURL + "/share/" + profile.ShareToken
	}
	return res, nil
}
