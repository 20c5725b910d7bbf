package extractor

import (
	"errors"
	"time"
)

var (
	ErrNoPending      = errors.New("no zip files selected")
	ErrNoOutputRoot   = errors.New("no output directory selected")
	ErrRunInProgress  = errors.New("an extraction run is already in progress")
	ErrUnsafeEntry    = errors.New("entry path escapes the target directory")
	ErrNotArchive     = errors.New("not a zip archive")
	ErrCorruptArchive = errors.New("corrupt zip archive")
)

type Options struct {
	// SubfolderPerArchive extracts each archive into <root>/<stem>/ instead
	// of flat into the root.
	SubfolderPerArchive bool
	KeepModTimes        bool
}

// ItemOutcome is the result of one archive within a run.
type ItemOutcome struct {
	Index   int
	Path    string
	Name    string
	Target  string
	Entries int
	Bytes   int64
	Err     error
}

func (o ItemOutcome) OK() bool {
	return o.Err == nil
}

type Failure struct {
	Name    string
	Message string
}

// RunResult summarizes one run. Succeeded + len(Failures) + Skipped always
// equals the number of archives pending when the run started.
type RunResult struct {
	ID        string
	Succeeded int
	Failures  []Failure
	Skipped   int
	Cancelled bool
	Outcomes  []ItemOutcome
	Started   time.Time
	Finished  time.Time
}

func (r RunResult) Total() int {
	return r.Succeeded + len(r.Failures) + r.Skipped
}

func (r RunResult) Duration() time.Duration {
	return r.Finished.Sub(r.Started)
}

// Bytes is the uncompressed size written across all successful archives.
func (r RunResult) Bytes() int64 {
	var total int64
	for _, o := range r.Outcomes {
		if o.OK() {
			total += o.Bytes
		}
	}
	return total
}

type UpdateKind int

const (
	UpdatePending UpdateKind = iota
	UpdateProgress
	UpdateItemDone
	UpdateNoArchives
	UpdatePrecondition
	UpdateCompleted
)

// Update is a ProgressSink call carried across a channel.
type Update struct {
	Kind    UpdateKind
	Pending int
	Names   []string
	Index   int
	Total   int
	Name    string
	Dir     string
	Outcome ItemOutcome
	Err     error
	Result  RunResult
}
