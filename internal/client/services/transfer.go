package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/daylog/internal/client/models"
	"github.com/dmitrijs2005/daylog/internal/client/transfer"
	"github.com/dmitrijs2005/daylog/internal/logging"
)

// ImportSummary reports what an import did with each row.
type ImportSummary struct {
	Imported int
	// Skipped counts rows whose date already had a record.
	Skipped int
	// Invalid holds one message per row that failed validation.
	Invalid []string
}

// TransferService imports and exports records. Imported rows go through
// the RecordService, so they follow the same online and offline paths as
// records entered by hand.
type TransferService struct {
	records *RecordService
	logger  logging.Logger
}

func NewTransferService(records *RecordService, l logging.Logger) *TransferService {
	return &TransferService{records: records, logger: l.With("module", "transfer")}
}

// ImportFile imports the file at path; the format follows its extension.
func (s *TransferService) ImportFile(ctx context.Context, path string) (*ImportSummary, error) {
	format, err := transfer.FormatOf(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return s.Import(ctx, f, format)
}

// Import creates a record for every row whose date has no record yet.
// Invalid rows are reported and skipped; any other error stops the import,
// leaving the rows created so far in place.
func (s *TransferService) Import(ctx context.Context, r io.Reader, format transfer.Format) (*ImportSummary, error) {
	rows, err := transfer.Decode(r, format)
	if err != nil {
		return nil, err
	}

	sum := &ImportSummary{}
	for i, row := range rows {
		existing, err := s.records.ListByDate(ctx, row.Date)
		if err != nil {
			return sum, err
		}
		if len(existing) > 0 {
			sum.Skipped++
			continue
		}

		if _, err := s.records.Create(ctx, row.Fields()); err != nil {
			if errors.Is(err, models.ErrInvalidRecord) {
				sum.Invalid = append(sum.Invalid, fmt.Sprintf("row %d: %v", i+1, err))
				continue
			}
			return sum, fmt.Errorf("row %d: %w", i+1, err)
		}
		sum.Imported++
	}

	s.logger.Info(ctx, "import finished", "imported", sum.Imported, "skipped", sum.Skipped, "invalid", len(sum.Invalid))
	return sum, nil
}

// Export encodes every local record in the format of name and hands the
// result to sink. It returns the location and the number of records.
func (s *TransferService) Export(ctx context.Context, sink transfer.Sink, name string) (string, int, error) {
	format, err := transfer.FormatOf(name)
	if err != nil {
		return "", 0, err
	}

	recs, err := s.records.List(ctx)
	if err != nil {
		return "", 0, err
	}
	rows := make([]transfer.Row, 0, len(recs))
	for _, r := range recs {
		rows = append(rows, transfer.RowOf(r))
	}

	var buf bytes.Buffer
	if err := transfer.Encode(&buf, format, rows); err != nil {
		return "", 0, err
	}

	loc, err := sink.Put(ctx, name, buf.Bytes())
	if err != nil {
		return "", 0, err
	}
	s.logger.Info(ctx, "export finished", "records", len(rows), "location", loc)
	return loc, len(rows), nil
}
