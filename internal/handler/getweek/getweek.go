// Copyright (c) Foster Meadows
// SPDX-License-Identifier: MIT

package getweek

import (
	"context"
	"errors"
	"time"

	"github.com/FosterMeadows/bespokebehaviors/internal/auth"
	"github.com/FosterMeadows/bespokebehaviors/internal/datekey"
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

type Request struct {
	// Date anchors the week, MM.DD.YYYY. Empty means the current week.
	Date string `json:"date"`
}

// Day is one weekday column, Monday through Friday.
type Day struct {
	DateKey string          `json:"dateKey"`
	Date    string          `json:"date"`
	Weekday string          `json:"weekday"`
	Param   string          `json:"param"`
	IsToday bool            `json:"isToday"`
	Plan    *plannerdb.Plan `json:"plan"`
}

type Response struct {
	Days      []Day                `json:"days"`
	PrepNames []plannerdb.PrepName `json:"prepNames"`

	// PrevParam and NextParam anchor the adjacent weeks for navigation.
	PrevParam string `json:"prevParam"`
	NextParam string `json:"nextParam"`
}

// GetWeek loads Monday through Friday of the week containing the anchor
// date, fetching the five plans concurrently.
func (h *Handler) GetWeek(ctx context.Context, req *Request) (*Response, error) {
	teacher, err := auth.TeacherFromContext(ctx)
	if err != nil {
		return nil, err
	}

	anchor := time.Now()
	if req.Date != "" {
		d, ok := datekey.ParseParam(req.Date)
		if !ok {
			return nil, httpapi.FieldErrors{"date": "Dates look like MM.DD.YYYY."}
		}
		anchor = d
	}
	monday := datekey.MondayOf(anchor)

	days := make([]Day, 5)
	keys := make([]string, 5)
	now := time.Now()
	for i := range days {
		d := datekey.AddDays(monday, i)
		keys[i] = datekey.Key(d)
		days[i] = Day{
			DateKey: keys[i],
			Date:    datekey.Pretty(d),
			Weekday: datekey.Weekday(d),
			Param:   datekey.Param(d),
			IsToday: datekey.SameDay(d, now),
		}
	}

	plans, err := h.store.PlansForKeys(ctx, teacher.UID, keys)
	if err != nil {
		return nil, err
	}
	for i := range days {
		days[i].Plan = plans[keys[i]]
	}

	prepNames := planedit.DefaultPrepNames
	profile, err := h.store.GetTeacher(ctx, teacher.UID)
	if err == nil && len(profile.PrepNames) > 0 {
		prepNames = profile.PrepNames
	} else if err != nil && !errors.Is(err, plannerdb.ErrNotFound) {
		return nil, err
	}

	return &Response{
		Days:      days,
		PrepNames: prepNames,
		PrevParam: datekey.Param(datekey.AddDays(monday, -7)),
		NextParam: datekey.Param(datekey.AddDays(monday, 7)),
	}, nil
}
