package tui

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/MKhiriev/go-tree-sync/models"
)

// RenderPlan renders what pulling one root would change.
func RenderPlan(p models.RootPlan) string {
	var b strings.Builder

	b.WriteString("\n  " + rootStyle.Render(p.Key) + ":\n")

	switch {
	case p.Err != nil:
		b.WriteString(indent + errorStyle.Render("Error: ") + humanizeError(p.Err) + "\n")
		return b.String()
	case !p.Served:
		b.WriteString(indent + "Not served by the origin.\n")
		return b.String()
	}

	b.WriteString(countLine("Unchanged", len(p.Diff.Unchanged), false))
	if n := len(p.Diff.New); n > 0 {
		b.WriteString(countLine("New", n, true))
	}
	if n := len(p.Diff.Changed); n > 0 {
		b.WriteString(countLine("Changed", n, true))
	}
	if n := len(p.Diff.Deleted); n > 0 {
		b.WriteString(countLine("Deleted", n, true))
	}

	if p.Plan.IsNoop() {
		b.WriteString(indent + okStyle.Render("Already up to date.") + "\n")
		return b.String()
	}

	fmt.Fprintf(&b, "%s%-11s%s (%s)\n", indent, "Download:", humanize.Bytes(p.Plan.DownloadSize), p.Plan.Mode)
	return b.String()
}

// RenderReport renders the outcome of one root. Outcomes already visible in
// the plan render as an empty string.
func RenderReport(r models.RootReport) string {
	switch r.Status {
	case models.StatusSynced:
		return fmt.Sprintf("%s%s %s (%s): %s extracted, %s deleted, %s received\n",
			indent, okStyle.Render("✓"), r.Key, r.Mode,
			plural(r.FilesExtracted, "file"), plural(r.FilesDeleted, "file"),
			humanize.Bytes(uint64(max(r.BytesTransferred, 0))))
	case models.StatusSkipped:
		return fmt.Sprintf("%sSkipped %s.\n", indent, r.Key)
	case models.StatusFailed:
		return fmt.Sprintf("%s%s %s: %s\n", indent, errorStyle.Render("✗"), r.Key, humanizeError(r.Err))
	default:
		return ""
	}
}

// RenderRun renders the closing line of a pull.
func RenderRun(report models.PullReport, dryRun bool) string {
	failed := 0
	for _, r := range report.Roots {
		if r.Status == models.StatusFailed {
			failed++
		}
	}

	switch {
	case failed > 0:
		return "\n" + errorStyle.Render(fmt.Sprintf("✗ Sync finished with %d failed %s.", failed, pluralNoun(failed, "root"))) + "\n"
	case dryRun:
		return "\nDry run: nothing was changed.\n"
	default:
		return "\n" + okStyle.Render("✓ Sync complete.") + "\n"
	}
}

func pluralNoun(n int, noun string) string {
	if n == 1 {
		return noun
	}
	return noun + "s"
}
