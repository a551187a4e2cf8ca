package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/log"
)

var (
	ErrParse = errors.New("invalid data file")
	timeNow  = func() time.Time { return time.Now().UTC() }
)

const emptyList = "[]"

// ParseError reports a data file that is not a JSON array of tasks.
// It satisfies errors.Is(err, ErrParse).
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	if e == nil {
		return ErrParse.Error()
	}
	return fmt.Sprintf("%s: %s: %v", ErrParse, e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// Task is one to-do entry. Field names on disk are fixed.
type Task struct {
	Title     string `json:"item"`
	Note      string `json:"note"`
	Completed bool   `json:"completed"`
}

// Store reads and writes the task list kept in a single JSON file.
type Store struct {
	Path string
	log  *log.Logger
}

func New(path string, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Store{Path: path, log: logger}
}

// Init makes sure the data file exists and holds at least an empty array.
func (s *Store) Init() error {
	b, err := os.ReadFile(s.Path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("read %s: %w", s.Path, err)
		}
		s.log.Debug("creating data file", "path", s.Path)
		return s.Erase()
	}
	if len(bytes.TrimSpace(b)) == 0 {
		s.log.Debug("normalizing empty data file", "path", s.Path)
		return s.Erase()
	}
	return nil
}

func (s *Store) Load() ([]Task, error) {
	b, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.Path, err)
	}
	if len(bytes.TrimSpace(b)) == 0 {
		b = []byte(emptyList)
	}
	tasks, err := decodeTasks(b)
	if err != nil {
		return nil, &ParseError{Path: s.Path, Err: err}
	}
	s.log.Debug("loaded tasks", "path", s.Path, "count", len(tasks))
	return tasks, nil
}

// Save replaces the data file with tasks.
func (s *Store) Save(tasks []Task) error {
	b, err := encodeTasks(tasks)
	if err != nil {
		return err
	}
	if err := atomicWriteFile(s.Path, b, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", s.Path, err)
	}
	s.log.Debug("saved tasks", "path", s.Path, "count", len(tasks))
	return nil
}

// Erase overwrites the data file with an empty list without reading it.
func (s *Store) Erase() error {
	if err := atomicWriteFile(s.Path, []byte(emptyList), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", s.Path, err)
	}
	return nil
}

func decodeTasks(b []byte) ([]Task, error) {
	doc, err := parseTaskList(b)
	if err != nil {
		return nil, err
	}
	// Keys are read from the validated document, so only exact field
	// names count; unknown keys that differ in case are ignored.
	items := doc.([]any)
	tasks := make([]Task, 0, len(items))
	for _, item := range items {
		fields := item.(map[string]any)
		tasks = append(tasks, Task{
			Title:     fields["item"].(string),
			Note:      fields["note"].(string),
			Completed: fields["completed"].(bool),
		})
	}
	return tasks, nil
}

func encodeTasks(tasks []Task) ([]byte, error) {
	if tasks == nil {
		tasks = []Task{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(tasks); err != nil {
		return nil, err
	}
	return unescapeLineSeparators(bytes.TrimRight(buf.Bytes(), "\n")), nil
}

// unescapeLineSeparators turns the \u2028 and \u2029 escapes that
// encoding/json always emits back into the literal characters.
func unescapeLineSeparators(b []byte) []byte {
	if !bytes.Contains(b, []byte(`\u202`)) {
		return b
	}
	out := make([]byte, 0, len(b))
	for i := 0; i < len(b); i++ {
		if b[i] != '\\' || i+1 == len(b) {
			out = append(out, b[i])
			continue
		}
		switch string(b[i+1 : min(i+6, len(b))]) {
		case "u2028":
			out = utf8.AppendRune(out, '\u2028')
			i += 5
			continue
		case "u2029":
			out = utf8.AppendRune(out, '\u2029')
			i += 5
			continue
		}
		// Any other escape is copied whole so an escaped backslash is
		// never mistaken for the start of a new escape.
		out = append(out, b[i], b[i+1])
		i++
	}
	return out
}

// Append adds a new incomplete task at the end of the list.
func Append(tasks []Task, title, note string) []Task {
	return append(tasks, Task{Title: title, Note: note})
}

// Toggle flips the completed flag of tasks[i] and returns the previous value.
func Toggle(tasks []Task, i int) bool {
	was := tasks[i].Completed
	tasks[i].Completed = !was
	return was
}

func Remove(tasks []Task, i int) []Task {
	return append(tasks[:i:i], tasks[i+1:]...)
}

// Retitle replaces the title of tasks[i] when title is non-blank and
// different. It reports whether anything changed.
func Retitle(tasks []Task, i int, title string) bool {
	title = strings.TrimSpace(title)
	if title == "" || title == tasks[i].Title {
		return false
	}
	tasks[i].Title = title
	return true
}

func Renote(tasks []Task, i int, note string) {
	tasks[i].Note = note
}

func atomicWriteFile(path string, data []byte, perm fs.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp := filepath.Join(dir, fmt.Sprintf(".tmp-%d", timeNow().UnixNano()))
	if err := os.WriteFile(tmp, data, perm); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	// Rename is atomic on same filesystem.
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}
