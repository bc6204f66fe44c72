package formatter

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/younsl/rdsmaint/internal/models"
)

// PrintMaintenanceTable prints pending maintenance records in a
// kubectl style table. Records are printed in scan order.
func PrintMaintenanceTable(writer io.Writer, records []models.MaintenanceRecord, scanTime time.Time, scanDuration time.Duration) {
	if len(records) == 0 {
		fmt.Fprintln(writer, "No pending maintenance actions found.")
		return
	}

	w := tabwriter.NewWriter(writer, 0, 8, 2, ' ', 0)

	fmt.Fprintf(w, "Scan time: %s (completed in %.2f seconds)\n",
		scanTime.Format("2006-01-02 15:04:05"),
		scanDuration.Seconds())

	fmt.Fprintln(w, "INSTANCE ID\tREGION\tACTION\tWRITER\tAPPLY DATE\tDAYS\tPRIORITY\tDESCRIPTION")

	for _, record := range records {
		fmt.Fprintf(w, "%s\t%s\t%s\t%t\t%s (%s)\t%d\t%s\t%s\n",
			record.InstanceID,
			record.Region,
			record.Action,
			record.IsWriter,
			record.ApplyDate.Format("2006-01-02"),
			humanize.Time(record.ApplyDate),
			record.DaysUntilApply,
			record.Priority(),
			record.Description)
	}

	w.Flush()
}

// PrintMaintenanceSummary prints per-priority counts after the table.
func PrintMaintenanceSummary(writer io.Writer, records []models.MaintenanceRecord) {
	if len(records) == 0 {
		return
	}

	var high, medium int
	for _, record := range records {
		if record.Priority() == models.PriorityHigh {
			high++
		} else {
			medium++
		}
	}

	w := tabwriter.NewWriter(writer, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "\nSummary:")
	fmt.Fprintf(w, "Total pending actions:\t%d\n", len(records))
	fmt.Fprintf(w, "High priority (within %d days):\t%d\n", models.HighPriorityDays, high)
	fmt.Fprintf(w, "Medium priority:\t%d\n", medium)
	w.Flush()
}
