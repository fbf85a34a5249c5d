// Package transfer converts records to and from the CSV and JSON exchange
// formats and ships export files to their destination.
package transfer

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/daylog/internal/client/models"
	"github.com/dmitrijs2005/daylog/internal/timex"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

var (
	ErrUnknownFormat = errors.New("unknown file format")
	ErrMalformed     = errors.New("malformed input")
)

// Header is the CSV header row, in column order.
var Header = []string{"date", "scale", "count", "note", "logged_at"}

// FormatOf picks the format from the file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("%w: %q (want .csv or .json)", ErrUnknownFormat, path)
}

// Row is one record in exchange form. LoggedAt is optional on import.
type Row struct {
	Date     timex.Date `json:"date"`
	Scale    int        `json:"scale"`
	Count    int        `json:"count"`
	Note     string     `json:"note,omitempty"`
	LoggedAt time.Time  `json:"logged_at,omitzero"`
}

func RowOf(r models.Record) Row {
	return Row{Date: r.OccurredOn, Scale: r.ScaleValue, Count: r.Count, Note: r.Note, LoggedAt: r.LoggedAt}
}

func (r Row) Fields() models.Fields {
	return models.Fields{OccurredOn: r.Date, LoggedAt: r.LoggedAt, ScaleValue: r.Scale, Count: r.Count, Note: r.Note}
}

// Encode writes rows in format f.
func Encode(w io.Writer, f Format, rows []Row) error {
	switch f {
	case FormatCSV:
		cw := csv.NewWriter(w)
		if err := cw.Write(Header); err != nil {
			return err
		}
		for _, r := range rows {
			logged := ""
			if !r.LoggedAt.IsZero() {
				logged = r.LoggedAt.UTC().Format(time.RFC3339Nano)
			}
			rec := []string{r.Date.String(), strconv.Itoa(r.Scale), strconv.Itoa(r.Count), r.Note, logged}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		cw.Flush()
		return cw.Error()
	case FormatJSON:
		if rows == nil {
			rows = []Row{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}

// Decode reads rows in format f. Field bounds are not checked here.
func Decode(r io.Reader, f Format) ([]Row, error) {
	switch f {
	case FormatCSV:
		return decodeCSV(r)
	case FormatJSON:
		var rows []Row
		if err := json.NewDecoder(r).Decode(&rows); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
		}
		return rows, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}

func decodeCSV(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{"date", "scale", "count"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", ErrMalformed, required)
		}
	}

	get := func(rec []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	var rows []Row
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return rows, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
		}

		var row Row
		if row.Date, err = timex.ParseDate(get(rec, "date")); err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrMalformed, line, err)
		}
		if row.Scale, err = strconv.Atoi(get(rec, "scale")); err != nil {
			return nil, fmt.Errorf("%w: line %d: scale: %w", ErrMalformed, line, err)
		}
		if row.Count, err = strconv.Atoi(get(rec, "count")); err != nil {
			return nil, fmt.Errorf("%w: line %d: count: %w", ErrMalformed, line, err)
		}
		row.Note = get(rec, "note")
		if s := get(rec, "logged_at"); s != "" {
			if row.LoggedAt, err = time.Parse(time.RFC3339Nano, s); err != nil {
				return nil, fmt.Errorf("%w: line %d: logged_at: %w", ErrMalformed, line, err)
			}
		}
		rows = append(rows, row)
	}
}
