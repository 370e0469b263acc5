package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/AHx92/my-workout-tracker/internal/client/client"
	"github.com/AHx92/my-workout-tracker/internal/client/models"
	"github.com/AHx92/my-workout-tracker/internal/client/services"
)

// maxSuggestions bounds how many catalog exercises are listed in `add`.
const maxSuggestions = 15

func (a *App) Add(ctx context.Context) error {
	w, err := a.inputWorkout(ctx)
	if err != nil {
		return err
	}

	res, err := a.syncService.Save(ctx, w)
	if err != nil {
		return err
	}

	switch res {
	case services.SaveSynced:
		fmt.Fprintln(a.out, "Workout saved and synced.")
	case services.SaveOffline:
		fmt.Fprintln(a.out, "Workout saved offline, pending sync.")
	case services.SaveDeferred:
		fmt.Fprintln(a.out, "Workout saved locally, will sync later.")
	}
	return nil
}

func (a *App) inputWorkout(ctx context.Context) (models.Workout, error) {
	var w models.Workout

	name, err := GetSimpleText(a.reader, "Workout name", a.out)
	if err != nil {
		return w, fmt.Errorf("get name: %w", err)
	}
	if name == "" {
		return w, fmt.Errorf("%w: name is required", models.ErrInvalidWorkout)
	}
	w.Name = name

	today := time.Now().Format(models.DateLayout)
	date, err := GetSimpleText(a.reader, fmt.Sprintf("Date (YYYY-MM-DD, empty for %s)", today), a.out)
	if err != nil {
		return w, fmt.Errorf("get date: %w", err)
	}
	if date == "" {
		date = today
	}
	w.Date = date

	catalog := a.catalogService.Exercises(ctx)
	if len(catalog) > 0 {
		fmt.Fprintln(a.out, "Known exercises (enter a number to pick one):")
		for i, ex := range catalog {
			if i == maxSuggestions {
				fmt.Fprintf(a.out, "  ... and %d more\n", len(catalog)-maxSuggestions)
				break
			}
			fmt.Fprintf(a.out, "  %d. %s\n", i+1, ex)
		}
	}

	for {
		if err := ctx.Err(); err != nil {
			return w, err
		}

		exName, err := GetSimpleText(a.reader, "Exercise (empty line to finish)", a.out)
		if err != nil {
			return w, fmt.Errorf("get exercise: %w", err)
		}
		if exName == "" {
			break
		}
		if n, err := strconv.Atoi(exName); err == nil && n >= 1 && n <= len(catalog) {
			exName = catalog[n-1]
		}

		setsLine, err := GetSimpleText(a.reader, "Sets for "+exName+" (e.g. 8x60 8x60 12)", a.out)
		if err != nil {
			return w, fmt.Errorf("get sets: %w", err)
		}
		sets, err := models.ParseSets(strings.Fields(setsLine))
		if err != nil {
			return w, err
		}

		w.Exercises = append(w.Exercises, models.Exercise{Name: exName, Sets: sets})
	}

	notes, err := GetMultiline(a.reader, "Notes (optional)", a.out)
	if err != nil {
		return w, fmt.Errorf("get notes: %w", err)
	}
	w.Notes = notes

	return w, nil
}

func (a *App) List(ctx context.Context) error {
	recs, err := a.syncService.History(ctx)
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		fmt.Fprintln(a.out, "No workouts stored.")
		return nil
	}
	for _, r := range recs {
		fmt.Fprintln(a.out, formatRecord(r))
	}
	return nil
}

func (a *App) Pending(ctx context.Context) error {
	recs, err := a.syncService.Pending(ctx)
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		fmt.Fprintln(a.out, "Nothing pending.")
		return nil
	}
	for _, r := range recs {
		fmt.Fprintln(a.out, formatRecord(r))
	}
	fmt.Fprintf(a.out, "%d workout(s) pending.\n", len(recs))
	return nil
}

func formatRecord(r *models.Record) string {
	state := "pending"
	if r.Synced {
		state = "synced"
	}

	sets := 0
	for _, ex := range r.Payload.Exercises {
		sets += len(ex.Sets)
	}

	return fmt.Sprintf("#%d  %s  %-24s %d exercise(s), %d set(s)  [%s]",
		r.ID, r.Payload.Date, r.Payload.Name, len(r.Payload.Exercises), sets, state)
}

func (a *App) Sync(ctx context.Context) error {
	res, err := a.syncService.SyncNow(ctx)
	if err != nil {
		return err
	}
	if res.Skipped {
		fmt.Fprintln(a.out, "Offline: sync skipped.")
	}
	return nil
}

func (a *App) Status(ctx context.Context) error {
	mode := "offline"
	if a.monitor.IsOnline() {
		mode = "online"
	}
	fmt.Fprintf(a.out, "Connection: %s\n", mode)

	if a.degraded {
		fmt.Fprintln(a.out, "Local store: unavailable (workouts are not persisted)")
		return nil
	}

	pending, err := a.syncService.Pending(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Pending workouts: %d\n", len(pending))

	last, err := a.syncService.LastSyncAt(ctx)
	if err != nil {
		return err
	}
	if last.IsZero() {
		fmt.Fprintln(a.out, "Last sync: never")
	} else {
		fmt.Fprintf(a.out, "Last sync: %s\n", last.Local().Format(time.DateTime))
	}

	fmt.Fprintf(a.out, "Cached exercises: %d\n", len(a.catalogService.Exercises(ctx)))
	return nil
}

func (a *App) Exercises(ctx context.Context) error {
	refreshed, err := a.catalogService.Refresh(ctx)
	if err != nil {
		fmt.Fprintln(a.out, "Could not refresh the catalog, showing cached exercises.")
	} else if !refreshed {
		fmt.Fprintln(a.out, "Offline, showing cached exercises.")
	}

	items := a.catalogService.Exercises(ctx)
	if len(items) == 0 {
		fmt.Fprintln(a.out, "No exercises cached.")
		return nil
	}
	for _, name := range items {
		fmt.Fprintln(a.out, " -", name)
	}
	return nil
}

func (a *App) Access(ctx context.Context) error {
	st, err := a.accessService.Check(ctx)
	if errors.Is(err, client.ErrLocalDataNotAvailable) {
		fmt.Fprintln(a.out, "Access unknown: no cached answer and the backend cannot be asked.")
		return nil
	}
	if err != nil {
		return err
	}

	verdict := "not approved"
	if st.Approved {
		verdict = "approved"
	}
	email := st.Email
	if email == "" {
		email = "(anonymous)"
	}

	line := fmt.Sprintf("%s: %s", email, verdict)
	if st.Cached {
		line += fmt.Sprintf(" (cached %s)", st.CheckedAt.Local().Format(time.DateTime))
	}
	fmt.Fprintln(a.out, line)
	return nil
}

func (a *App) Token(ctx context.Context) error {
	token, err := GetHiddenText(a.out, "Bearer token (empty to clear)")
	if err != nil {
		return err
	}
	if err := a.accessService.SaveToken(ctx, token); err != nil {
		return err
	}
	if token == "" {
		fmt.Fprintln(a.out, "Token cleared.")
	} else {
		fmt.Fprintln(a.out, "Token saved.")
	}
	return nil
}
