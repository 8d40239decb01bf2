// Package locale provides language-keyed UI strings with built-in fallbacks.
package locale

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tickrun/internal/config"
)

// Keys that always resolve.
const (
	KeyVersion = "version_label"
	KeyStart   = "start_label"
	KeyEnd     = "end_label"
)

var fallbacks = map[string]string{
	KeyVersion: "Versión actual:",
	KeyStart:   "--- Start ---",
	KeyEnd:     "--- Fin Ejecución ---",
}

// FileName returns the locale file name for lang.
func FileName(lang string) string {
	return "strings_" + lang + ".txt"
}

// Table is a key to localized string lookup.
type Table struct {
	lang    string
	entries map[string]string
	logger  *log.Logger
}

// New creates a table holding only the fallback strings.
func New(logger *log.Logger) *Table {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	t := &Table{entries: make(map[string]string), logger: logger}
	t.fillFallbacks()
	return t
}

// Load replaces the table with strings_<lang>.txt from dir. A missing or
// unreadable file leaves only the fallbacks.
func (t *Table) Load(dir, lang string) {
	t.lang = lang
	t.entries = make(map[string]string)

	path := filepath.Join(dir, FileName(lang))
	f, err := os.Open(path)
	switch {
	case err == nil:
		entries, readErr := config.ParseLines(f)
		f.Close()
		if readErr != nil {
			t.logger.Warn("locale read interrupted", "path", path, "error", readErr)
		}
		for _, e := range entries {
			t.entries[e.Key] = e.Value
		}
	case errors.Is(err, fs.ErrNotExist):
		t.logger.Debug("no locale file, using fallbacks", "lang", lang)
	default:
		t.logger.Warn("cannot open locale file", "path", path, "error", err)
	}

	t.fillFallbacks()
}

func (t *Table) fillFallbacks() {
	for k, v := range fallbacks {
		if _, ok := t.entries[k]; !ok {
			t.entries[k] = v
		}
	}
}

// Get returns the string for key, or key itself when there is none.
func (t *Table) Get(key string) string {
	if v, ok := t.entries[key]; ok {
		return v
	}
	return key
}

// Lang returns the language of the last Load.
func (t *Table) Lang() string {
	return t.lang
}

// Len returns the number of keys, fallbacks included.
func (t *Table) Len() int {
	return len(t.entries)
}
