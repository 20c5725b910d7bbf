package extractor

import "path/filepath"

// ProgressSink receives everything the extractor has to tell a front end.
// Implementations must not assume they are called on any particular
// goroutine; run events arrive from the worker.
type ProgressSink interface {
	PendingChanged(count int)
	Progress(index, total int, name string)
	ItemDone(outcome ItemOutcome)
	NoArchivesFound(dir string)
	PreconditionFailed(err error)
	Completed(result RunResult)
}

// PendingLister is an optional ProgressSink extension. Sinks that implement
// it receive the full pending list in place of PendingChanged.
type PendingLister interface {
	PendingListed(paths []string)
}

// ChannelSink forwards every call as an Update so the consumer handles all
// state changes on its own goroutine.
type ChannelSink struct {
	updates chan<- Update
}

func NewChannelSink(updates chan<- Update) *ChannelSink {
	return &ChannelSink{updates: updates}
}

func (s *ChannelSink) PendingChanged(count int) {
	s.send(Update{Kind: UpdatePending, Pending: count})
}

// PendingListed sends the count along with the archive basenames.
func (s *ChannelSink) PendingListed(paths []string) {
	names := make([]string, len(paths))
	for i, p := range paths {
		names[i] = filepath.Base(p)
	}
	s.send(Update{Kind: UpdatePending, Pending: len(paths), Names: names})
}

func (s *ChannelSink) Progress(index, total int, name string) {
	s.send(Update{Kind: UpdateProgress, Index: index, Total: total, Name: name})
}

func (s *ChannelSink) ItemDone(outcome ItemOutcome) {
	s.send(Update{Kind: UpdateItemDone, Index: outcome.Index, Name: outcome.Name, Outcome: outcome, Err: outcome.Err})
}

func (s *ChannelSink) NoArchivesFound(dir string) {
	s.send(Update{Kind: UpdateNoArchives, Dir: dir})
}

func (s *ChannelSink) PreconditionFailed(err error) {
	s.send(Update{Kind: UpdatePrecondition, Err: err})
}

func (s *ChannelSink) Completed(result RunResult) {
	s.send(Update{Kind: UpdateCompleted, Result: result, Total: result.Total()})
}

func (s *ChannelSink) send(u Update) {
	if s == nil || s.updates == nil {
		return
	}
	s.updates <- u
}

type NopSink struct{}

func (NopSink) PendingChanged(int)        {}
func (NopSink) Progress(int, int, string) {}
func (NopSink) ItemDone(ItemOutcome)      {}
func (NopSink) NoArchivesFound(string)    {}
func (NopSink) PreconditionFailed(error)  {}
func (NopSink) Completed(RunResult)       {}
