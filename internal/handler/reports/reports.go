// Copyright (c) Foster Meadows
// SPDX-License-Identifier: MIT

// Package reports exposes the behavior-referral operations. Referrals are
// independent of the lesson planner: their own collection, their own rules,
// no coupling to daily plans beyond sharing the date key format.
package reports

import (
	"context"
	"strings"
	"time"

	"github.com/FosterMeadows/bespokebehaviors/internal/auth"
	"github.com/FosterMeadows/bespokebehaviors/internal/datekey"
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
	StudentName     string `json:"studentName" validate:"required"`
	Date            string `json:"date" validate:"required"`
	GradeLevel      string `json:"gradeLevel" validate:"required"`
	Location        string `json:"location" validate:"required"`
	ReferralDetails string `json:"referralDetails" validate:"required"`

	ParentContacted bool   `json:"parentContacted"`
	ContactPerson   string `json:"contactPerson"`
	ContactMethod   string `json:"contactMethod"`
	ContactDetails  string `json:"contactDetails"`
}

type AddResponse struct {
	ID string `json:"id"`

	// ExistingCount is how many referrals the student already had before
	// this one.
	ExistingCount int `json:"existingCount"`

	// MustContactParent tells the form to require the parent-contact fields
	// before it lets the teacher move on. Third referral triggers it.
	MustContactParent bool `json:"mustContactParent"`
}

// Add files a new behavior referral under the signed-in teacher's name.
func (h *Handler) Add(ctx context.Context, req *AddRequest) (*AddResponse, error) {
	teacher, err := auth.TeacherFromContext(ctx)
	if err != nil {
		return nil, err
	}

	student := strings.TrimSpace(req.StudentName)
	if student == "" {
		return nil, httpapi.FieldErrors{"studentName": "Student name is required."}
	}

	result, err := h.store.AddReport(ctx, plannerdb.Report{
		StudentName:     student,
		Date:            req.Date,
		GradeLevel:      req.GradeLevel,
		Location:        req.Location,
		TeacherName:     teacher.DisplayName,
		ReferralDetails: req.ReferralDetails,
		ParentContacted: req.ParentContacted,
		ContactPerson:   req.ContactPerson,
		ContactMethod:   req.ContactMethod,
		ContactDetails:  req.ContactDetails,
		TeacherID:       teacher.UID,
	})
	if err != nil {
		return nil, err
	}
	return &AddResponse{
		ID:                result.ID,
		ExistingCount:     result.ExistingCount,
		MustContactParent: result.MustContactParent,
	}, nil
}

type ListRequest struct {
	StudentName string   `json:"studentName"`
	Served      *bool    `json:"served"`
	GradeLevels []string `json:"gradeLevels"`
	Limit       int      `json:"limit" validate:"gte=0"`
}

type ListResponse struct {
	Reports []plannerdb.Report `json:"reports"`
}

// List returns the teacher's referrals, newest first, with optional
// student/served/grade filters.
func (h *Handler) List(ctx context.Context, req *ListRequest) (*ListResponse, error) {
	teacher, err := auth.TeacherFromContext(ctx)
	if err != nil {
		return nil, err
	}

	reports, err := h.store.ListReports(ctx, teacher.UID, plannerdb.ReportQuery{
		StudentName: req.StudentName,
		Served:      req.Served,
		GradeLevels: req.GradeLevels,
		Limit:       req.Limit,
	})
	if err != nil {
		return nil, err
	}
	return &ListResponse{Reports: reports}, nil
}

type AssignRequest struct {
	ID string `json:"id" validate:"required"`
}

type AssignResponse struct {
	AssignedDate string `json:"assignedDate"`
}

// AssignToday puts a referral on today's reteach deck. Assigning a student
// who is already on deck for today is rejected.
func (h *Handler) AssignToday(ctx context.Context, req *AssignRequest) (*AssignResponse, error) {
	teacher, err := auth.TeacherFromContext(ctx)
	if err != nil {
		return nil, err
	}

	today := datekey.Key(time.Now())
	if err := h.store.AssignToday(ctx, teacher.UID, req.ID, today); err != nil {
		return nil, err
	}
	return &AssignResponse{AssignedDate: today}, nil
}

type UnassignRequest struct {
	ID string `json:"id" validate:"required"`
}

type UnassignResponse struct{}

// Unassign takes a referral off the reteach deck.
func (h *Handler) Unassign(ctx context.Context, req *UnassignRequest) (*UnassignResponse, error) {
	teacher, err := auth.TeacherFromContext(ctx)
	if err != nil {
		return nil, err
	}

	if err := h.store.Unassign(ctx, teacher.UID, req.ID); err != nil {
		return nil, err
	}
	return &UnassignResponse{}, nil
}

type ServeRequest struct {
	ID string `json:"id" validate:"required"`
}

type ServeResponse struct {
	ServedDate string `json:"servedDate"`
}

// MarkServed closes out a referral as served today.
func (h *Handler) MarkServed(ctx context.Context, req *ServeRequest) (*ServeResponse, error) {
	teacher, err := auth.TeacherFromContext(ctx)
	if err != nil {
		return nil, err
	}

	today := datekey.Key(time.Now())
	if err := h.store.MarkServed(ctx, teacher.UID, req.ID, today); err != nil {
		return nil, err
	}
	return &ServeResponse{ServedDate: today}, nil
}

type CommentRequest struct {
	ID      string `json:"id" validate:"required"`
	Comment string `json:"comment"`
}

type CommentResponse struct{}

// SetComment replaces the follow-up comment on a referral. An empty comment
// clears it.
func (h *Handler) SetComment(ctx context.Context, req *CommentRequest) (*CommentResponse, error) {
	teacher, err := auth.TeacherFromContext(ctx)
	if err != nil {
		return nil, err
	}

	if err := h.store.SetComment(ctx, teacher.UID, req.ID, req.Comment); err != nil {
		return nil, err
	}
	return &CommentResponse{}, nil
}

type ContactRequest struct {
	ID             string `json:"id" validate:"required"`
	Contacted      bool   `json:"contacted"`
	ContactPerson  string `json:"contactPerson"`
	ContactMethod  string `json:"contactMethod"`
	ContactDetails string `json:"contactDetails"`
}

type ContactResponse struct{}

// SetParentContact records contact home after the referral was filed.
func (h *Handler) SetParentContact(ctx context.Context, req *ContactRequest) (*ContactResponse, error) {
	teacher, err := auth.TeacherFromContext(ctx)
	if err != nil {
		return nil, err
	}

	if err := h.store.SetParentContact(ctx, teacher.UID, req.ID,
		req.Contacted, req.ContactPerson, req.ContactMethod, req.ContactDetails); err != nil {
		return nil, err
	}
	return &ContactResponse{}, nil
}

type DeleteRequest struct {
	ID string `json:"id" validate:"required"`
}

type DeleteResponse struct{}

// Delete removes a referral outright.
func (h *Handler) Delete(ctx context.Context, req *DeleteRequest) (*DeleteResponse, error) {
	teacher, err := auth.TeacherFromContext(ctx)
	if err != nil {
		return nil, err
	}

	if err := h.store.DeleteReport(ctx, teacher.UID, req.ID); err != nil {
		return nil, err
	}
	return &DeleteResponse{}, nil
}
