package batch

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
)

// maxReportedFailures caps the failure rows RenderSummary prints.
const maxReportedFailures = 10

// RenderSummary writes a human-readable table report of a completed run
// to w.
func RenderSummary(w io.Writer, s Summary) {
	_, _ = bold.Fprintln(w, "BATCH SUMMARY")

	table := tablewriter.NewWriter(w)
	table.Header("Metric", "Value")
	_ = table.Append("Total items", strconv.Itoa(s.TotalItems))
	_ = table.Append("Succeeded", strconv.Itoa(s.SuccessCount))
	_ = table.Append("Failed", strconv.Itoa(s.FailedCount))
	_ = table.Append("Success rate", fmt.Sprintf("%.1f%%", s.SuccessRate))
	_ = table.Append("Duration", s.Duration.Round(time.Millisecond).String())
	if err := table.Render(); err != nil {
		_, _ = red.Fprintf(w, "render summary table: %v\n", err)
		return
	}

	if len(s.Failures) == 0 {
		return
	}

	_, _ = red.Fprintf(w, "failures (%d):\n", len(s.Failures))

	failures := tablewriter.NewWriter(w)
	failures.Header("Index", "Kind", "Item", "Error")
	shown := min(len(s.Failures), maxReportedFailures)
	for _, f := range s.Failures[:shown] {
		_ = failures.Append(strconv.Itoa(f.Index), f.Kind, f.ItemPreview, f.Err)
	}
	if err := failures.Render(); err != nil {
		_, _ = red.Fprintf(w, "render failure table: %v\n", err)
		return
	}

	if rest := len(s.Failures) - shown; rest > 0 {
		_, _ = fmt.Fprintf(w, "... and %d more\n", rest)
	}
}
