package cli

import (
	"context"
	"errors"
	"path/filepath"

	"github.com/dmitrijs2005/daylog/internal/client/transfer"
)

// Import reads records from the CSV or JSON file args[0].
func (a *App) Import(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: import <file.csv|file.json>")
	}
	sum, err := a.transfer.ImportFile(ctx, args[0])
	if sum != nil {
		a.printf("Imported %d, skipped %d (date already logged), invalid %d\n", sum.Imported, sum.Skipped, len(sum.Invalid))
		for _, msg := range sum.Invalid {
			a.printf("  %s\n", msg)
		}
	}
	return err
}

// Export writes all local records to args[0]. With "s3" as the first
// argument the file is uploaded to the configured bucket instead.
//
//	export out.csv
//	export s3 daylog.json
func (a *App) Export(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: export [s3] <file.csv|file.json>")
	}

	var (
		sink transfer.Sink
		name string
	)
	if args[0] == "s3" {
		if len(args) < 2 {
			return errors.New("usage: export s3 <name.csv|name.json>")
		}
		s3sink, err := a.newS3Sink(ctx)
		if err != nil {
			return err
		}
		sink, name = s3sink, args[1]
	} else {
		sink, name = transfer.FileSink{Dir: filepath.Dir(args[0])}, filepath.Base(args[0])
	}

	loc, n, err := a.transfer.Export(ctx, sink, name)
	if err != nil {
		return err
	}
	a.printf("Exported %d record(s) to %s\n", n, loc)
	return nil
}
