// Copyright (c) Foster Meadows
// SPDX-License-Identifier: MIT

package reports

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/FosterMeadows/bespokebehaviors/internal/auth"
	"github.com/FosterMeadows/bespokebehaviors/internal/httpapi"
	"github.com/FosterMeadows/bespokebehaviors/internal/plannerdb"
)

// Watch streams the teacher's referral list as server-sent events, one
// "reports" event per change, until the client disconnects. The dashboard
// holds this open so edits from another tab show up without polling.
func (h *Handler) Watch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	teacher, err := auth.TeacherFromContext(ctx)
	if err != nil {
		httpapi.WriteError(ctx, w, err)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		httpapi.WriteError(ctx, w, fmt.Errorf("reports: response writer cannot stream"))
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	err = h.store.WatchReports(ctx, teacher.UID, func(reports []plannerdb.Report) error {
		data, err := json.Marshal(reports)
		if err != nil {
			return fmt.Errorf("encoding reports event: %w", err)
		}
		if _, err := fmt.Fprintf(w, "event: reports\ndata: %s\n\n", data); err != nil {
			return err
		}
		flusher.Flush()
		return nil
	})
	if err != nil {
		// The stream is already committed, so the error can only be logged.
		slog.ErrorContext(ctx, "reports: watch stream ended", "error", err)
	}
}
