package extractor

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"
	"golang.org/x/text/encoding/charmap"

	"zipbatch/pkg/ziputil"
)

func init() {
	zip.RegisterDecompressor(zstd.ZipMethodWinZip, zstd.ZipDecompressor())
	zip.RegisterDecompressor(zstd.ZipMethodPKWare, zstd.ZipDecompressor())
}

// Stats describes what a single archive extraction wrote.
type Stats struct {
	Entries  int
	Bytes    int64
	Warnings []string
}

// ExtractArchive writes every entry of the ZIP archive at path under dest,
// keeping the archive's relative layout. dest must already exist.
func ExtractArchive(path, dest string, opts Options) (Stats, error) {
	var stats Stats

	rc, err := openArchive(path)
	if err != nil {
		return stats, err
	}
	defer rc.Close()

	for _, f := range rc.File {
		name := entryName(f)
		rel, err := localPath(name)
		if err != nil {
			return stats, fmt.Errorf("%q: %w", name, err)
		}
		if rel == "" {
			continue
		}
		target := filepath.Join(dest, rel)

		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return stats, err
			}
			stats.Entries++
			continue
		}

		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return stats, err
		}
		n, err := writeEntry(f, target)
		if err != nil {
			return stats, err
		}
		stats.Entries++
		stats.Bytes += n

		if opts.KeepModTimes && !f.Modified.IsZero() {
			if err := os.Chtimes(target, f.Modified, f.Modified); err != nil {
				stats.Warnings = append(stats.Warnings, err.Error())
			}
		}
	}

	return stats, nil
}

// Inspect reports entry count and total uncompressed size without writing.
func Inspect(path string) (Stats, error) {
	var stats Stats

	rc, err := openArchive(path)
	if err != nil {
		return stats, err
	}
	defer rc.Close()

	for _, f := range rc.File {
		stats.Entries++
		stats.Bytes += int64(f.UncompressedSize64)
		if _, err := localPath(entryName(f)); err != nil {
			stats.Warnings = append(stats.Warnings, fmt.Sprintf("%q: %v", entryName(f), err))
		}
	}
	return stats, nil
}

func openArchive(path string) (*zip.ReadCloser, error) {
	rc, err := zip.OpenReader(path)
	if err == nil {
		return rc, nil
	}
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
		return nil, err
	}

	kind, sniffErr := ziputil.SniffFile(path)
	if sniffErr == nil && kind.IsZip() {
		return nil, fmt.Errorf("%w: %v", ErrCorruptArchive, err)
	}
	return nil, fmt.Errorf("%w: %v", ErrNotArchive, err)
}

func writeEntry(f *zip.File, target string) (int64, error) {
	src, err := f.Open()
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %w", ErrCorruptArchive, f.Name, err)
	}
	defer src.Close()

	mode := f.Mode().Perm()
	if mode == 0 {
		mode = 0o644
	}

	// A read-only file left by an earlier archive or run cannot be
	// truncated, so replace it instead.
	if info, err := os.Lstat(target); err == nil && !info.IsDir() {
		if err := os.Remove(target); err != nil {
			return 0, err
		}
	}

	out, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return 0, err
	}

	n, err := io.Copy(out, src)
	if err != nil {
		_ = out.Close()
		if errors.Is(err, zip.ErrChecksum) || errors.Is(err, zip.ErrFormat) || errors.Is(err, io.ErrUnexpectedEOF) {
			return n, fmt.Errorf("%w: %s: %w", ErrCorruptArchive, f.Name, err)
		}
		return n, err
	}
	return n, out.Close()
}

// entryName decodes legacy code page 437 names; everything else is
// already UTF-8.
func entryName(f *zip.File) string {
	if !f.NonUTF8 {
		return f.Name
	}
	decoded, err := charmap.CodePage437.NewDecoder().String(f.Name)
	if err != nil {
		return f.Name
	}
	return decoded
}

// localPath turns an entry name into a relative path under the target.
// Leading slashes are dropped; anything that would land outside is
// rejected.
func localPath(name string) (string, error) {
	rel := strings.TrimLeft(name, "/")
	if rel == "" {
		return "", nil
	}
	rel = filepath.FromSlash(rel)
	if !filepath.IsLocal(rel) {
		return "", ErrUnsafeEntry
	}
	rel = filepath.Clean(rel)
	if rel == "." {
		return "", nil
	}
	return rel, nil
}
