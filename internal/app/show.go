package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"
	"time"
)

// Show prints the most recent sensor records, newest first.
func (a *App) Show(ctx context.Context, opts ShowOptions) error {
	store, closeStore, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	if store == nil {
		return errors.New("database not configured; cannot show records")
	}
	if closeStore != nil {
		defer closeStore()
	}

	limit := a.Config.ResolveRecentCount(opts.Limit)
	records, err := store.FetchRecent(ctx, limit)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Fprintln(os.Stdout, "no records found")
		return nil
	}

	writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "Time (UTC)\tTemp (°C)\tHumidity (%)\tRelay")

	for _, record := range records {
		fmt.Fprintf(
			writer,
			"%s\t%.1f\t%.1f\t%s\n",
			record.Timestamp.UTC().Format(time.RFC3339),
			record.Temperature,
			record.Humidity,
			record.RelayStatus,
		)
	}

	writer.Flush()

	total, err := store.CountRecords(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "%d of %d records\n", len(records), total)
	return nil
}
