// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package checker

import (
	"bufio"
	"os"
)

// LineSource delivers URLs one line at a time: Scan advances to the next line,
// returning false at the end of the input or on a read error; Text returns the
// current line; Err returns the first non-EOF error encountered, if any.
// [bufio.Scanner] is a LineSource.
type LineSource interface {
	Scan() bool
	Text() string
	Err() error
}

var _ LineSource = (*bufio.Scanner)(nil)

// FileSource is a LineSource reading the lines of a file. The file is opened
// only when scanning the first line, so that failing to open it surfaces as a
// source error through Err in the same way as a later read fault. The file is
// closed as soon as scanning ends.
type FileSource struct {
	path    string
	f       *os.File
	scanner *bufio.Scanner
	err     error
	done    bool
}

var _ LineSource = (*FileSource)(nil)

// NewFileSource returns a LineSource for the lines of the file at the
// specified path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Scan advances to the next line, opening the file first if necessary.
func (s *FileSource) Scan() bool {
	if s.done {
		return false
	}
	if s.scanner == nil {
		f, err := os.Open(s.path)
		if err != nil {
			s.err = err
			s.done = true
			return false
		}
		s.f = f
		s.scanner = bufio.NewScanner(f)
	}
	if s.scanner.Scan() {
		return true
	}
	s.err = s.scanner.Err()
	s.done = true
	if err := s.f.Close(); err != nil && s.err == nil {
		s.err = err
	}
	return false
}

// Text returns the current line.
func (s *FileSource) Text() string {
	if s.scanner == nil {
		return ""
	}
	return s.scanner.Text()
}

// Err returns the first error encountered while opening, reading, or closing
// the file.
func (s *FileSource) Err() error { return s.err }
