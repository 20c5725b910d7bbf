package extractor

import (
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/require"
)

type entry struct {
	name    string
	body    string
	method  uint16
	nonUTF8 bool
	mtime   time.Time
	mode    os.FileMode
}

func file(name, body string) entry {
	return entry{name: name, body: body, method: zip.Deflate}
}

func readOnly(e entry) entry {
	e.mode = 0o444
	return e
}

func dir(name string) entry {
	return entry{name: name}
}

// createTestZip writes a zip archive with the given entries in order.
func createTestZip(t *testing.T, path string, entries ...entry) {
	t.Helper()

	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	zw.RegisterCompressor(zstd.ZipMethodWinZip, zstd.ZipCompressor())

	for _, e := range entries {
		hdr := &zip.FileHeader{Name: e.name, Method: e.method, NonUTF8: e.nonUTF8, Modified: e.mtime}
		if e.name[len(e.name)-1] == '/' {
			hdr.SetMode(os.ModeDir | 0o755)
		} else if e.mode != 0 {
			hdr.SetMode(e.mode)
		} else {
			hdr.SetMode(0o644)
		}
		w, err := zw.CreateHeader(hdr)
		require.NoError(t, err)
		if e.body != "" {
			_, err = io.WriteString(w, e.body)
			require.NoError(t, err)
		}
	}
	require.NoError(t, zw.Close())
}

func writeZip(t *testing.T, dirPath, name string, entries ...entry) string {
	t.Helper()
	path := filepath.Join(dirPath, name)
	createTestZip(t, path, entries...)
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

// recordingSink keeps every update in call order.
type recordingSink struct {
	mu      sync.Mutex
	updates []Update
}

func (s *recordingSink) add(u Update) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updates = append(s.updates, u)
}

func (s *recordingSink) PendingChanged(count int) {
	s.add(Update{Kind: UpdatePending, Pending: count})
}

func (s *recordingSink) Progress(index, total int, name string) {
	s.add(Update{Kind: UpdateProgress, Index: index, Total: total, Name: name})
}

func (s *recordingSink) ItemDone(outcome ItemOutcome) {
	s.add(Update{Kind: UpdateItemDone, Index: outcome.Index, Name: outcome.Name, Outcome: outcome, Err: outcome.Err})
}

func (s *recordingSink) NoArchivesFound(dir string) {
	s.add(Update{Kind: UpdateNoArchives, Dir: dir})
}

func (s *recordingSink) PreconditionFailed(err error) {
	s.add(Update{Kind: UpdatePrecondition, Err: err})
}

func (s *recordingSink) Completed(result RunResult) {
	s.add(Update{Kind: UpdateCompleted, Result: result})
}

func (s *recordingSink) kinds(kind UpdateKind) []Update {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Update
	for _, u := range s.updates {
		if u.Kind == kind {
			out = append(out, u)
		}
	}
	return out
}

func (s *recordingSink) all() []Update {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Update(nil), s.updates...)
}
