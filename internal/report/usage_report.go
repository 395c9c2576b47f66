package report

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/telcoflow/backoffice/internal/store"
)

// UsageSource provides the per-customer usage averages.
type UsageSource interface {
	AverageUsage(ctx context.Context) ([]store.UsageAverage, error)
}

// WriteAverageUsage runs the usage-averages aggregation and writes the
// result as a headerless CSV: customer_id, avg call minutes, avg data
// usage, avg SMS count. One-shot reporting utility, not part of the
// pipeline's data path.
func WriteAverageUsage(ctx context.Context, src UsageSource, path string, logger *slog.Logger) error {
	averages, err := src.AverageUsage(ctx)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	for _, ua := range averages {
		record := []string{
			strconv.FormatInt(ua.CustomerID, 10),
			ua.AvgCallMinutes.String(),
			ua.AvgDataUsage.String(),
			ua.AvgSMSCount.String(),
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("writing report row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing report: %w", err)
	}

	logger.Info("usage report written", "path", path, "rows", len(averages))
	return nil
}
