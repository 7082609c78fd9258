package app

import (
	"fmt"
	"io"
	"time"

	"github.com/pterm/pterm"

	"github.com/ayoisaiah/track/internal/report"
	"github.com/ayoisaiah/track/internal/tracker"
	"github.com/ayoisaiah/track/internal/ui"
)

const (
	noRecordsMsg = "No sessions found for the specified time range"
)

// printRecordsTable prints a record table to the command-line.
func printRecordsTable(w io.Writer, records []tracker.TimeRecord) error {
	tableBody := make([][]string, 0, len(records)+2)

	tableBody = append(tableBody, []string{"#", "START", "END", "DURATION"})

	var total time.Duration

	for i, rec := range records {
		total += rec.Duration()

		tableBody = append(tableBody, []string{
			fmt.Sprintf("%d", i+1),
			formatTime(rec.Start.Time()),
			formatTime(rec.End.Time()),
			ui.Cyan(report.FormatHMS(rec.Duration())),
		})
	}

	tableBody = append(tableBody, []string{
		"", "", "TOTAL", ui.Green(report.FormatHMS(total)),
	})

	return ui.PrintTable(tableBody, w)
}

// listRecords prints out a table of records.
func listRecords(w io.Writer, records []tracker.TimeRecord) error {
	if len(records) == 0 {
		pterm.Info.Println(noRecordsMsg)
		return nil
	}

	return printRecordsTable(w, records)
}
