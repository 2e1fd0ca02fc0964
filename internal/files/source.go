package files

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// NewSourceReader decodes r as UTF-8, dropping a leading byte order mark.
// Exports saved by spreadsheet tools often carry one.
func NewSourceReader(r io.Reader) io.Reader {
	return transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
}

type sourceFile struct {
	io.Reader
	file *os.File
}

func (s *sourceFile) Close() error {
	return s.file.Close()
}

// OpenSource opens path for reading through NewSourceReader.
// The caller must close the result.
func OpenSource(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	return &sourceFile{Reader: NewSourceReader(f), file: f}, nil
}
