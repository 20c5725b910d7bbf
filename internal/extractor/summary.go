package extractor

import (
	"fmt"
	"strings"
)

// MaxListedFailures caps how many failures the summary spells out.
const MaxListedFailures = 5

func PendingLabel(count int) string {
	if count == 1 {
		return "1 file selected"
	}
	return fmt.Sprintf("%d files selected", count)
}

func ProgressLabel(index, total int, name string) string {
	return fmt.Sprintf("Extracting %d of %d: %s", index, total, name)
}

func CompletedLabel(r RunResult) string {
	if r.Cancelled {
		return fmt.Sprintf("Cancelled - %d file(s) extracted, %d skipped", r.Succeeded, r.Skipped)
	}
	return fmt.Sprintf("Completed - %d file(s) extracted successfully", r.Succeeded)
}

// Summarize renders the end-of-run message.
func Summarize(r RunResult) string {
	if len(r.Failures) == 0 && !r.Cancelled {
		return fmt.Sprintf("All %d zip files extracted successfully!", r.Succeeded)
	}

	var b strings.Builder
	switch {
	case r.Cancelled:
		b.WriteString("Extraction cancelled:\n\n")
	default:
		b.WriteString("Extraction completed with errors:\n\n")
	}
	fmt.Fprintf(&b, "Successfully extracted: %d\n", r.Succeeded)
	fmt.Fprintf(&b, "Failed: %d\n", len(r.Failures))
	if r.Cancelled {
		fmt.Fprintf(&b, "Skipped: %d\n", r.Skipped)
	}

	if len(r.Failures) > 0 {
		b.WriteString("\nFailed files:\n")
		b.WriteString(strings.Join(FailureLines(r.Failures), "\n"))
	}
	return strings.TrimRight(b.String(), "\n")
}

// FailureLines lists the first MaxListedFailures failures and an overflow
// line for the rest.
func FailureLines(failures []Failure) []string {
	lines := make([]string, 0, MaxListedFailures+1)
	for i, f := range failures {
		if i == MaxListedFailures {
			lines = append(lines, fmt.Sprintf("... and %d more", len(failures)-MaxListedFailures))
			break
		}
		lines = append(lines, fmt.Sprintf("%s: %s", f.Name, f.Message))
	}
	return lines
}
