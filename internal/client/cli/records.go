package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/daylog/internal/client/models"
	"github.com/dmitrijs2005/daylog/internal/common"
	"github.com/dmitrijs2005/daylog/internal/timex"
)

const shortIDLen = 8

var (
	errNoMatch   = errors.New("no record with this id")
	errAmbiguous = errors.New("id prefix matches several records")
)

// now is a test seam for the current time.
var now = time.Now

func shortID(id string) string {
	if len(id) > shortIDLen {
		return id[:shortIDLen]
	}
	return id
}

// resolveID finds the record whose client id starts with prefix.
func (a *App) resolveID(ctx context.Context, prefix string) (*models.Record, error) {
	recs, err := a.records.List(ctx)
	if err != nil {
		return nil, err
	}
	var found *models.Record
	for i := range recs {
		if !strings.HasPrefix(recs[i].ClientID, prefix) {
			continue
		}
		if found != nil {
			return nil, fmt.Errorf("%w: %s", errAmbiguous, prefix)
		}
		found = &recs[i]
	}
	if found == nil {
		return nil, fmt.Errorf("%w: %s", errNoMatch, prefix)
	}
	return found, nil
}

// inputFields prompts for every record field, offering cur as defaults.
func (a *App) inputFields(cur models.Fields) (models.Fields, error) {
	f := cur

	date, err := GetWithDefault(a.reader, "Date (YYYY-MM-DD)", cur.OccurredOn.String(), a.out)
	if err != nil {
		return f, err
	}
	if f.OccurredOn, err = timex.ParseDate(date); err != nil {
		return f, err
	}

	scale, err := GetWithDefault(a.reader,
		fmt.Sprintf("Scale (%d-%d)", common.MinScaleValue, common.MaxScaleValue),
		strconv.Itoa(cur.ScaleValue), a.out)
	if err != nil {
		return f, err
	}
	if f.ScaleValue, err = strconv.Atoi(scale); err != nil {
		return f, fmt.Errorf("scale: %w", err)
	}

	count, err := GetWithDefault(a.reader, "Count", strconv.Itoa(cur.Count), a.out)
	if err != nil {
		return f, err
	}
	if f.Count, err = strconv.Atoi(count); err != nil {
		return f, fmt.Errorf("count: %w", err)
	}

	defTime := ""
	if !cur.LoggedAt.IsZero() {
		defTime = cur.LoggedAt.Local().Format("15:04")
	}
	at, err := GetWithDefault(a.reader, "Time (HH:MM, empty for now)", defTime, a.out)
	if err != nil {
		return f, err
	}
	f.LoggedAt = time.Time{}
	if at != "" {
		clock, err := time.Parse("15:04", at)
		if err != nil {
			return f, fmt.Errorf("time: %w", err)
		}
		d := f.OccurredOn.Time()
		f.LoggedAt = time.Date(d.Year(), d.Month(), d.Day(), clock.Hour(), clock.Minute(), 0, 0, time.Local)
	}

	note, err := GetWithDefault(a.reader, "Note ('-' clears)", cur.Note, a.out)
	if err != nil {
		return f, err
	}
	if note == "-" {
		note = ""
	}
	f.Note = note

	return f, f.Validate()
}

// Add prompts for a new record and stores it.
func (a *App) Add(ctx context.Context) error {
	f, err := a.inputFields(models.Fields{OccurredOn: timex.DateOf(now()), Count: 1})
	if err != nil {
		return err
	}
	rec, err := a.records.Create(ctx, f)
	if err != nil {
		return err
	}
	a.printf("Added %s\n", formatRecord(*rec))
	return nil
}

// Edit prompts for new values of the record named by args[0].
func (a *App) Edit(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: edit <id>")
	}
	rec, err := a.resolveID(ctx, args[0])
	if err != nil {
		return err
	}
	f, err := a.inputFields(rec.Fields)
	if err != nil {
		return err
	}
	upd, err := a.records.Update(ctx, rec.ClientID, f)
	if err != nil {
		return err
	}
	a.printf("Updated %s\n", formatRecord(*upd))
	return nil
}

// Delete removes the record named by args[0].
func (a *App) Delete(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: delete <id>")
	}
	rec, err := a.resolveID(ctx, args[0])
	if err != nil {
		return err
	}
	if err := a.records.Delete(ctx, rec.ClientID); err != nil {
		return err
	}
	a.printf("Deleted %s\n", shortID(rec.ClientID))
	return nil
}

// List prints every local record.
func (a *App) List(ctx context.Context) error {
	recs, err := a.records.List(ctx)
	if err != nil {
		return err
	}
	a.printRecords(recs)
	return nil
}

// Day prints the records of args[0], or of today.
func (a *App) Day(ctx context.Context, args []string) error {
	date := timex.DateOf(now())
	if len(args) > 0 {
		var err error
		if date, err = timex.ParseDate(args[0]); err != nil {
			return err
		}
	}
	recs, err := a.records.ListByDate(ctx, date)
	if err != nil {
		return err
	}
	a.printf("%s\n", date)
	a.printRecords(recs)
	return nil
}

// Month prints a calendar of args[0] (YYYY-MM), or of the current month.
func (a *App) Month(ctx context.Context, args []string) error {
	month := timex.DateOf(now()).FirstOfMonth()
	if len(args) > 0 {
		t, err := time.Parse("2006-01", args[0])
		if err != nil {
			return fmt.Errorf("month must look like 2024-01: %w", err)
		}
		month = timex.DateOf(t)
	}
	byDay, err := a.records.ListMonth(ctx, month)
	if err != nil {
		return err
	}
	a.outMu.Lock()
	defer a.outMu.Unlock()
	renderMonth(a.out, month, byDay)
	return nil
}

// Pending prints the queued intents in replay order.
func (a *App) Pending(ctx context.Context) error {
	queue, err := a.records.Pending(ctx)
	if err != nil {
		return err
	}
	if len(queue) == 0 {
		a.printf("Nothing to synchronize\n")
		return nil
	}
	for _, in := range queue {
		a.printf("%-7s %s  queued %s\n", in.Kind, shortID(in.ClientID), in.EnqueuedAt.Local().Format(time.DateTime))
	}
	return nil
}

func (a *App) printRecords(recs []models.Record) {
	if len(recs) == 0 {
		a.printf("No records\n")
		return
	}
	for _, r := range recs {
		a.printf("%s\n", formatRecord(r))
	}
}

func formatRecord(r models.Record) string {
	state := "synced"
	if r.Pending() {
		state = "pending"
	}
	s := fmt.Sprintf("%s  %s  scale %d  count %d  %-7s", shortID(r.ClientID), r.OccurredOn, r.ScaleValue, r.Count, state)
	if r.Note != "" {
		s += "  " + strings.ReplaceAll(r.Note, "\n", " ")
	}
	return s
}
