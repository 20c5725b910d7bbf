package tui

import (
	"fmt"
	"io"

	"zipbatch/internal/extractor"
)

// Print consumes updates until the channel closes, writing one line per
// event. Used when stdout is not a terminal.
func Print(w io.Writer, updates <-chan extractor.Update) {
	for u := range updates {
		if line := plainLine(u); line != "" {
			fmt.Fprintln(w, line)
		}
	}
}

func plainLine(u extractor.Update) string {
	switch u.Kind {
	case extractor.UpdatePending:
		return extractor.PendingLabel(u.Pending)
	case extractor.UpdateProgress:
		return extractor.ProgressLabel(u.Index, u.Total, u.Name)
	case extractor.UpdateItemDone:
		if u.Outcome.OK() {
			return ""
		}
		return fmt.Sprintf("  failed: %s: %v", u.Name, u.Err)
	case extractor.UpdateNoArchives:
		return fmt.Sprintf("No zip files found in %s", u.Dir)
	case extractor.UpdatePrecondition:
		return u.Err.Error()
	case extractor.UpdateCompleted:
		return extractor.CompletedLabel(u.Result)
	default:
		return ""
	}
}
