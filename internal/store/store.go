// Package store persists the task collection as a plain UTF-8 todo.txt
// file, one task per line, with a sibling done.txt archive in the same
// directory.
//
// Access is whole-file read-modify-write with no locking and no atomic
// rename: a write fully replaces the file contents. An external write
// landing between a read and the following write is a lost-update risk the
// format accepts by design.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ArchiveName is the sibling file that receives archived completed tasks.
const ArchiveName = "done.txt"

// Store reads and writes one todo.txt file and its archive.
type Store struct {
	path        string
	archivePath string
}

// New returns a Store for the given todo.txt path. The archive lives next
// to it as done.txt.
func New(path string) *Store {
	return &Store{
		path:        path,
		archivePath: filepath.Join(filepath.Dir(path), ArchiveName),
	}
}

// Path returns the primary file path.
func (s *Store) Path() string { return s.path }

// ArchivePath returns the sibling archive file path.
func (s *Store) ArchivePath() string { return s.archivePath }

// Read returns the task lines of the primary file, trimmed, with blank
// lines dropped. A missing file reads as an empty collection; the file is
// created lazily on first write.
func (s *Store) Read() ([]string, error) {
	return readLines(s.path)
}

// ReadArchive returns the task lines of the archive file, trimmed, with
// blank lines dropped. A missing archive reads as empty.
func (s *Store) ReadArchive() ([]string, error) {
	return readLines(s.archivePath)
}

func readLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var lines []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines, nil
}

// Write replaces the primary file with the given lines.
func (s *Store) Write(lines []string) error {
	if err := os.WriteFile(s.path, []byte(strings.Join(lines, "\n")), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.path, err)
	}
	return nil
}

// Append adds one line to the end of the primary file, inserting a
// separating line break only when the file already has content.
func (s *Store) Append(line string) error {
	info, err := os.Stat(s.path)
	empty := err != nil || info.Size() == 0
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat %s: %w", s.path, err)
	}

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", s.path, err)
	}
	defer f.Close()

	if !empty {
		line = "\n" + line
	}
	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("failed to append to %s: %w", s.path, err)
	}
	return nil
}

// AppendArchive appends completed lines verbatim to the archive file,
// creating it if absent.
func (s *Store) AppendArchive(lines []string) error {
	if len(lines) == 0 {
		return nil
	}
	f, err := os.OpenFile(s.archivePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", s.archivePath, err)
	}
	defer f.Close()

	if _, err := f.WriteString(strings.Join(lines, "\n") + "\n"); err != nil {
		return fmt.Errorf("failed to append to %s: %w", s.archivePath, err)
	}
	return nil
}

// ModTime returns the primary file's modification timestamp. A missing file
// reports the zero time without error so the watcher treats creation as a
// change.
func (s *Store) ModTime() (time.Time, error) {
	info, err := os.Stat(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return time.Time{}, nil
		}
		return time.Time{}, fmt.Errorf("failed to stat %s: %w", s.path, err)
	}
	return info.ModTime(), nil
}
