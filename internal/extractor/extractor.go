// Package extractor batch-extracts ZIP archives into an output root.
package extractor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
)

// BatchExtractor owns the pending archive list and the output root and runs
// extractions over them, one run at a time.
type BatchExtractor struct {
	mu         sync.Mutex
	pending    []string
	seen       map[string]struct{}
	outputRoot string

	running atomic.Bool
	sink    ProgressSink
	log     zerolog.Logger
}

func New(sink ProgressSink, log zerolog.Logger) *BatchExtractor {
	if sink == nil {
		sink = NopSink{}
	}
	return &BatchExtractor{
		seen: make(map[string]struct{}),
		sink: sink,
		log:  log,
	}
}

// AddPaths appends paths that are not already pending and returns how many
// were added.
func (b *BatchExtractor) AddPaths(paths []string) int {
	b.mu.Lock()
	added := 0
	for _, p := range paths {
		if _, ok := b.seen[p]; ok {
			continue
		}
		b.seen[p] = struct{}{}
		b.pending = append(b.pending, p)
		added++
	}
	snapshot := append([]string(nil), b.pending...)
	b.mu.Unlock()

	b.notifyPending(snapshot)
	return added
}

// AddDirectory scans dir for archives and adds them. An empty scan is
// reported to the sink and leaves the pending set alone.
func (b *BatchExtractor) AddDirectory(dir string) (int, error) {
	found, err := CollectDir(dir)
	if err != nil {
		return 0, err
	}
	if len(found) == 0 {
		b.sink.NoArchivesFound(dir)
		return 0, nil
	}
	return b.AddPaths(found), nil
}

func (b *BatchExtractor) Clear() error {
	if b.running.Load() {
		return ErrRunInProgress
	}

	b.mu.Lock()
	b.pending = nil
	b.seen = make(map[string]struct{})
	b.mu.Unlock()

	b.notifyPending(nil)
	return nil
}

func (b *BatchExtractor) notifyPending(paths []string) {
	if l, ok := b.sink.(PendingLister); ok {
		l.PendingListed(paths)
		return
	}
	b.sink.PendingChanged(len(paths))
}

func (b *BatchExtractor) SetOutputRoot(path string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.outputRoot = path
}

func (b *BatchExtractor) OutputRoot() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.outputRoot
}

// Pending returns a copy of the pending archives in insertion order.
func (b *BatchExtractor) Pending() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.pending...)
}

func (b *BatchExtractor) PendingCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.pending)
}

func (b *BatchExtractor) Running() bool {
	return b.running.Load()
}

// Start validates the run inputs and processes a snapshot of the pending
// set on a background goroutine. The returned channel yields exactly one
// result, after the sink has seen Completed.
func (b *BatchExtractor) Start(ctx context.Context, opts Options) (<-chan RunResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if !b.running.CompareAndSwap(false, true) {
		return nil, ErrRunInProgress
	}

	b.mu.Lock()
	paths := append([]string(nil), b.pending...)
	root := b.outputRoot
	b.mu.Unlock()

	if len(paths) == 0 {
		b.running.Store(false)
		b.sink.PreconditionFailed(ErrNoPending)
		return nil, ErrNoPending
	}
	if strings.TrimSpace(root) == "" {
		b.running.Store(false)
		b.sink.PreconditionFailed(ErrNoOutputRoot)
		return nil, ErrNoOutputRoot
	}

	done := make(chan RunResult, 1)
	go func() {
		defer close(done)
		result := b.process(ctx, paths, root, opts)
		b.sink.Completed(result)
		b.running.Store(false)
		done <- result
	}()
	return done, nil
}

// Run is Start followed by waiting for the result.
func (b *BatchExtractor) Run(ctx context.Context, opts Options) (RunResult, error) {
	done, err := b.Start(ctx, opts)
	if err != nil {
		return RunResult{}, err
	}
	return <-done, nil
}

func (b *BatchExtractor) process(ctx context.Context, paths []string, root string, opts Options) RunResult {
	result := RunResult{
		ID:       ulid.Make().String(),
		Started:  time.Now(),
		Outcomes: make([]ItemOutcome, 0, len(paths)),
	}
	log := b.log.With().Str("run", result.ID).Logger()
	log.Info().Int("archives", len(paths)).Str("output", root).
		Bool("subfolders", opts.SubfolderPerArchive).Msg("extraction started")

	total := len(paths)
	for i, path := range paths {
		if ctx.Err() != nil {
			result.Cancelled = true
			result.Skipped = total - i
			log.Warn().Int("skipped", result.Skipped).Msg("extraction cancelled")
			break
		}

		index := i + 1
		name := filepath.Base(path)
		b.sink.Progress(index, total, name)

		outcome := extractOne(path, root, opts)
		outcome.Index = index
		if outcome.OK() {
			result.Succeeded++
			for _, w := range outcome.warnings {
				log.Debug().Str("archive", name).Msg(w)
			}
		} else {
			result.Failures = append(result.Failures, Failure{Name: name, Message: outcome.Err.Error()})
			log.Warn().Err(outcome.Err).Str("archive", name).Msg("extraction failed")
		}
		result.Outcomes = append(result.Outcomes, outcome.ItemOutcome)
		b.sink.ItemDone(outcome.ItemOutcome)
	}

	result.Finished = time.Now()
	log.Info().Int("succeeded", result.Succeeded).Int("failed", len(result.Failures)).
		Dur("elapsed", result.Duration()).Msg("extraction finished")
	return result
}

type itemResult struct {
	ItemOutcome
	warnings []string
}

// extractArchive is swapped in tests.
var extractArchive = ExtractArchive

func extractOne(path, root string, opts Options) (res itemResult) {
	name := filepath.Base(path)
	res = itemResult{ItemOutcome: ItemOutcome{Path: path, Name: name}}
	defer func() {
		if r := recover(); r != nil {
			res.Err = fmt.Errorf("%s: panic during extraction: %v", name, r)
		}
	}()

	target := TargetDir(path, root, opts)
	res.Target = target

	if err := os.MkdirAll(target, 0o755); err != nil {
		res.Err = err
		return res
	}

	stats, err := extractArchive(path, target, opts)
	res.Entries = stats.Entries
	res.Bytes = stats.Bytes
	res.warnings = stats.Warnings
	res.Err = err
	return res
}

// TargetDir is root itself, or root/<archive name without extension> when
// each archive gets its own subfolder.
func TargetDir(path, root string, opts Options) string {
	if !opts.SubfolderPerArchive {
		return root
	}
	name := filepath.Base(path)
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	if stem == "" {
		stem = name
	}
	return filepath.Join(root, stem)
}
