// Copyright (c) Foster Meadows
// SPDX-License-Identifier: MIT

// Package behaviorlog exposes the lightweight behavior record: quick
// entries per student, the most-logged-students list, and per-student
// history. Separate from reports, which carry the referral workflow.
package behaviorlog

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

type AddRequest struct {
	StudentName string `json:"studentName" validate:"required"`

	// Time is the clock time the behavior happened, e.g. "13:45".
	Time     string `json:"time"`
	Context  string `json:"context"`
	Response string `json:"response"`
	Details  string `json:"details"`
}

type AddResponse struct {
	ID string `json:"id"`
}

// Add records a behavior entry for a student.
func (h *Handler) Add(ctx context.Context, req *AddRequest) (*AddResponse, error) {
	teacher, err := auth.TeacherFromContext(ctx)
	if err != nil {
		return nil, err
	}

	student := strings.TrimSpace(req.StudentName)
	if student == "" {
		return nil, httpapi.FieldErrors{"studentName": "Student name is required."}
	}

	id, err := h.store.AddBehaviorLog(ctx, plannerdb.BehaviorLog{
		StudentName: student,
		Time:        req.Time,
		Context:     req.Context,
		Response:    req.Response,
		Details:     req.Details,
		TeacherID:   teacher.UID,
	})
	if err != nil {
		return nil, err
	}
	return &AddResponse{ID: id}, nil
}

type ListRequest struct {
	// StudentName narrows the list to one student's history. Empty returns
	// everything.
	StudentName string `json:"studentName"`
}

type ListResponse struct {
	Logs []plannerdb.BehaviorLog `json:"logs"`
}

// List returns behavior entries, newest first.
func (h *Handler) List(ctx context.Context, req *ListRequest) (*ListResponse, error) {
	teacher, err := auth.TeacherFromContext(ctx)
	if err != nil {
		return nil, err
	}

	logs, err := h.store.ListBehaviorLogs(ctx, teacher.UID, strings.TrimSpace(req.StudentName))
	if err != nil {
		return nil, err
	}
	return &ListResponse{Logs: logs}, nil
}

type StudentsRequest struct{}

type StudentsResponse struct {
	Students []plannerdb.StudentBehaviorStat `json:"students"`
}

// Students returns the hot list: students ordered by how often they appear
// in the log, most recent entry breaking ties.
func (h *Handler) Students(ctx context.Context, _ *StudentsRequest) (*StudentsResponse, error) {
	teacher, err := auth.TeacherFromContext(ctx)
	if err != nil {
		return nil, err
	}

	stats, err := h.store.BehaviorStats(ctx, teacher.UID)
	if err != nil {
		return nil, err
	}
	return &StudentsResponse{Students: stats}, nil
}

type DeleteRequest struct {
	ID string `json:"id" validate:"required"`
}

type DeleteResponse struct{}

// Delete removes one behavior entry.
func (h *Handler) Delete(ctx context.Context, req *DeleteRequest) (*DeleteResponse, error) {
	teacher, err := auth.TeacherFromContext(ctx)
	if err != nil {
		return nil, err
	}

	if err := h.store.DeleteBehaviorLog(ctx, teacher.UID, req.ID); err != nil {
		return nil, err
	}
	return &DeleteResponse{}, nil
}
