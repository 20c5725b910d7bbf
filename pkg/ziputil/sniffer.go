package ziputil

import (
	"errors"
	"io"
	"os"
)

// Kind identifies which ZIP record a file starts with.
type Kind int

const (
	KindUnknown Kind = iota
	KindZip
	KindEmptyZip
	KindSpannedZip
)

func (k Kind) String() string {
	switch k {
	case KindZip:
		return "zip"
	case KindEmptyZip:
		return "empty zip"
	case KindSpannedZip:
		return "spanned zip"
	default:
		return "unknown"
	}
}

// IsZip reports whether k is any of the ZIP signatures.
func (k Kind) IsZip() bool {
	return k != KindUnknown
}

const headerLen = 4

var (
	localHeaderSig = []byte{0x50, 0x4b, 0x03, 0x04}
	endRecordSig   = []byte{0x50, 0x4b, 0x05, 0x06}
	spannedSig     = []byte{0x50, 0x4b, 0x07, 0x08}
)

// ErrShortHeader is returned when fewer than four bytes are available.
var ErrShortHeader = errors.New("header too short")

// DetectHeader inspects the first 4 bytes of a file for ZIP signatures.
func DetectHeader(header []byte) (Kind, error) {
	if len(header) < headerLen {
		return KindUnknown, ErrShortHeader
	}

	switch {
	case hasPrefix(header, localHeaderSig):
		return KindZip, nil
	case hasPrefix(header, endRecordSig):
		return KindEmptyZip, nil
	case hasPrefix(header, spannedSig):
		return KindSpannedZip, nil
	}

	return KindUnknown, nil
}

// SniffFile reads the first 4 bytes of a file to determine its type.
func SniffFile(path string) (Kind, error) {
	f, err := os.Open(path)
	if err != nil {
		return KindUnknown, err
	}
	defer f.Close()

	return SniffReader(f)
}

// SniffReader reads the first 4 bytes from r and determines its type.
func SniffReader(r io.Reader) (Kind, error) {
	header := make([]byte, headerLen)
	if _, err := io.ReadFull(r, header); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return KindUnknown, ErrShortHeader
		}
		return KindUnknown, err
	}

	return DetectHeader(header)
}

func hasPrefix(buf, prefix []byte) bool {
	if len(buf) < len(prefix) {
		return false
	}
	for i := range prefix {
		if buf[i] != prefix[i] {
			return false
		}
	}
	return true
}
