// Copyright (c) Foster Meadows
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"strings"

	firebase "firebase.google.com/go/v4"
	"github.com/curioswitch/go-curiostack/server"
	"github.com/curioswitch/go-usegcp/middleware/firebaseauth"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/FosterMeadows/bespokebehaviors/internal/config"
	"github.com/FosterMeadows/bespokebehaviors/internal/handler/behaviorlog"
	"github.com/FosterMeadows/bespokebehaviors/internal/handler/checklist"
	"github.com/FosterMeadows/bespokebehaviors/internal/handler/commentary"
	"github.com/FosterMeadows/bespokebehaviors/internal/handler/copyprep"
	"github.com/FosterMeadows/bespokebehaviors/internal/handler/disablesharing"
	"github.com/FosterMeadows/bespokebehaviors/internal/handler/enablesharing"
	"github.com/FosterMeadows/bespokebehaviors/internal/handler/getplan"
	"github.com/FosterMeadows/bespokebehaviors/internal/handler/getprofile"
	"github.com/FosterMeadows/bespokebehaviors/internal/handler/getweek"
	"github.com/FosterMeadows/bespokebehaviors/internal/handler/gradetable"
	"github.com/FosterMeadows/bespokebehaviors/internal/handler/liststandards"
	"github.com/FosterMeadows/bespokebehaviors/internal/handler/notes"
	"github.com/FosterMeadows/bespokebehaviors/internal/handler/reorderstep"
	"github.com/FosterMeadows/bespokebehaviors/internal/handler/reports"
	"github.com/FosterMeadows/bespokebehaviors/internal/handler/saveplan"
	"github.com/FosterMeadows/bespokebehaviors/internal/handler/saveprepnames"
	"github.com/FosterMeadows/bespokebehaviors/internal/handler/savestandards"
	"github.com/FosterMeadows/bespokebehaviors/internal/handler/sharedplans"
	"github.com/FosterMeadows/bespokebehaviors/internal/handler/toggledone"
	"github.com/FosterMeadows/bespokebehaviors/internal/httpapi"
	"github.com/FosterMeadows/bespokebehaviors/internal/plannerdb"
	"github.com/FosterMeadows/bespokebehaviors/internal/standards"
)

//go:embed conf/*.yaml
var confFiles embed.FS

func main() {
	conf, _ := fs.Sub(confFiles, "conf")
	os.Exit(server.Main(&config.Config{}, conf, setupServer))
}

func setupServer(ctx context.Context, conf *config.Config, s *server.Server) error {
	mux := server.Mux(s)

	fbApp, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: conf.Google.Project})
	if err != nil {
		return fmt.Errorf("main: create firebase app: %w", err)
	}

	fbAuth, err := fbApp.Auth(ctx)
	if err != nil {
		return fmt.Errorf("main: create firebase auth client: %w", err)
	}

	fsClient, err := fbApp.Firestore(ctx)
	if err != nil {
		return fmt.Errorf("main: create firestore client: %w", err)
	}
	defer func() {
		if err := fsClient.Close(); err != nil {
			slog.ErrorContext(ctx, "main: close firestore client", "error", err)
		}
	}()

	catalogs, err := standards.Load()
	if err != nil {
		return fmt.Errorf("main: load standards catalogs: %w", err)
	}

	store := plannerdb.NewStore(fsClient)
	shareBase := conf.Sharing.BaseURL

	// Everything except the public share feed and internal health endpoints
	// requires a signed-in teacher.
	fbMW := firebaseauth.NewMiddleware(fbAuth)
	mux.Use(middleware.Maybe(fbMW, func(r *http.Request) bool {
		switch {
		case strings.HasPrefix(r.URL.Path, "/share/"):
			return false
		case strings.HasPrefix(r.URL.Path, "/internal/"):
			return false
		default:
			return true
		}
	}))

	mux.Get("/share/{token}", sharedplans.NewHandler(store).ServeHTTP)

	mux.Post("/api/plan/get", httpapi.Unary(getplan.NewHandler(store).GetPlan))
	mux.Post("/api/plan/save", httpapi.Unary(saveplan.NewHandler(store).SavePlan))
	mux.Post("/api/plan/toggle-done", httpapi.Unary(toggledone.NewHandler(store).ToggleDone))
	mux.Post("/api/plan/reorder-step", httpapi.Unary(reorderstep.NewHandler(store).ReorderStep))
	mux.Post("/api/plan/copy-prep", httpapi.Unary(copyprep.NewHandler(store).CopyPrep))
	mux.Post("/api/week/get", httpapi.Unary(getweek.NewHandler(store).GetWeek))

	mux.Post("/api/profile/get", httpapi.Unary(getprofile.NewHandler(store, shareBase).GetProfile))
	mux.Post("/api/profile/prep-names", httpapi.Unary(saveprepnames.NewHandler(store).SavePrepNames))
	mux.Post("/api/profile/standards", httpapi.Unary(savestandards.NewHandler(store, catalogs).SaveStandards))
	mux.Post("/api/profile/share/enable", httpapi.Unary(enablesharing.NewHandler(store, shareBase).EnableSharing))
	mux.Post("/api/profile/share/disable", httpapi.Unary(disablesharing.NewHandler(store).DisableSharing))

	mux.Post("/api/standards/list", httpapi.Unary(liststandards.NewHandler(store, catalogs).ListStandards))
	mux.Post("/api/grade-table", httpapi.Unary(gradetable.NewHandler().GradeTable))

	commentaryH := commentary.NewHandler(store, catalogs)
	mux.Post("/api/standards/commentary/save", httpapi.Unary(commentaryH.Save))
	mux.Post("/api/standards/commentary/list", httpapi.Unary(commentaryH.List))

	behaviorH := behaviorlog.NewHandler(store)
	mux.Post("/api/behavior-log/add", httpapi.Unary(behaviorH.Add))
	mux.Post("/api/behavior-log/list", httpapi.Unary(behaviorH.List))
	mux.Post("/api/behavior-log/students", httpapi.Unary(behaviorH.Students))
	mux.Post("/api/behavior-log/delete", httpapi.Unary(behaviorH.Delete))

	reportsH := reports.NewHandler(store)
	mux.Post("/api/reports/add", httpapi.Unary(reportsH.Add))
	mux.Post("/api/reports/list", httpapi.Unary(reportsH.List))
	mux.Post("/api/reports/assign-today", httpapi.Unary(reportsH.AssignToday))
	mux.Post("/api/reports/unassign", httpapi.Unary(reportsH.Unassign))
	mux.Post("/api/reports/serve", httpapi.Unary(reportsH.MarkServed))
	mux.Post("/api/reports/comment", httpapi.Unary(reportsH.SetComment))
	mux.Post("/api/reports/parent-contact", httpapi.Unary(reportsH.SetParentContact))
	mux.Post("/api/reports/delete", httpapi.Unary(reportsH.Delete))
	mux.Get("/api/reports/watch", reportsH.Watch)

	checklistH := checklist.NewHandler(store)
	mux.Post("/api/checklist/add", httpapi.Unary(checklistH.Add))
	mux.Post("/api/checklist/set-done", httpapi.Unary(checklistH.SetDone))
	mux.Post("/api/checklist/edit", httpapi.Unary(checklistH.Edit))
	mux.Post("/api/checklist/delete", httpapi.Unary(checklistH.Delete))
	mux.Post("/api/checklist/list", httpapi.Unary(checklistH.List))
	mux.Post("/api/checklist/clear-done", httpapi.Unary(checklistH.ClearDone))

	notesH := notes.NewHandler(store)
	mux.Post("/api/notes/add", httpapi.Unary(notesH.Add))
	mux.Post("/api/notes/edit", httpapi.Unary(notesH.Edit))
	mux.Post("/api/notes/delete", httpapi.Unary(notesH.Delete))
	mux.Post("/api/notes/list", httpapi.Unary(notesH.List))

	if err := server.Start(ctx, s); err != nil {
		return fmt.Errorf("main: starting server: %w", err)
	}
	return nil
}
