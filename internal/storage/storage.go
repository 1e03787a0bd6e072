// Package storage persists the task collection and user settings to a local
// sqlite database laid out as a key-value table. Reads degrade to empty or
// default values; the in-memory state stays authoritative when a write
// fails.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"taskdeck/internal/task"
)

// Fixed keys in the kv table.
const (
	KeyTasks      = "tasks"
	KeySettings   = "settings"
	KeyTheme      = "theme"
	KeyHasVisited = "hasVisited"
)

// ErrPersistence tags storage read/write failures so callers can surface
// them as non-fatal notifications.
var ErrPersistence = errors.New("persistence failure")

// Gateway is the durable key-value store backing the application.
type Gateway struct {
	db *sqlx.DB
}

// Open opens (creating if needed) the database at dbPath and ensures the kv
// schema exists.
func Open(dbPath string) (*Gateway, error) {
	if dbPath == "" {
		return nil, errors.New("db path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, err
	}
	db, err := sqlx.Open("sqlite", sqliteDSN(dbPath))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	g := &Gateway{db: db}
	if err := g.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return g, nil
}

func (g *Gateway) Close() error {
	if g.db == nil {
		return nil
	}
	return g.db.Close()
}

func (g *Gateway) ensureSchema() error {
	const ddl = `
CREATE TABLE IF NOT EXISTS kv (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL
);`
	_, err := g.db.Exec(ddl)
	return err
}

// LoadTasks reads the task collection. A missing key or a payload that no
// longer parses yields an empty collection, never an error the caller must
// handle; losing a corrupt blob beats refusing to start.
func (g *Gateway) LoadTasks() []task.Task {
	raw, ok := g.get(KeyTasks)
	if !ok {
		return nil
	}
	var tasks []task.Task
	if err := json.Unmarshal([]byte(raw), &tasks); err != nil {
		return nil
	}
	return tasks
}

// SaveTasks overwrites the persisted task collection.
func (g *Gateway) SaveTasks(tasks []task.Task) error {
	data, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("%w: encode tasks: %v", ErrPersistence, err)
	}
	return g.set(KeyTasks, string(data))
}

// LoadSettings reads the settings record, substituting defaults for a
// missing key, a malformed payload, or individual out-of-range fields.
func (g *Gateway) LoadSettings() Settings {
	s := DefaultSettings()
	raw, ok := g.get(KeySettings)
	if !ok {
		return s
	}
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return DefaultSettings()
	}
	s.normalize()
	return s
}

// SaveSettings overwrites the persisted settings record.
func (g *Gateway) SaveSettings(s Settings) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("%w: encode settings: %v", ErrPersistence, err)
	}
	return g.set(KeySettings, string(data))
}

// Theme reads the independently-stored theme key, defaulting to light.
// Stored apart from Settings so a front end can paint before the full
// settings blob is decoded.
func (g *Gateway) Theme() string {
	raw, ok := g.get(KeyTheme)
	if !ok || (raw != ThemeLight && raw != ThemeDark) {
		return ThemeLight
	}
	return raw
}

// SaveTheme overwrites the theme key.
func (g *Gateway) SaveTheme(theme string) error {
	if theme != ThemeDark {
		theme = ThemeLight
	}
	return g.set(KeyTheme, theme)
}

// HasVisited reports whether the first-run flag has been set.
func (g *Gateway) HasVisited() bool {
	_, ok := g.get(KeyHasVisited)
	return ok
}

// MarkVisited sets the first-run flag.
func (g *Gateway) MarkVisited() error {
	return g.set(KeyHasVisited, "1")
}

func (g *Gateway) get(key string) (string, bool) {
	var value string
	err := g.db.Get(&value, `SELECT value FROM kv WHERE key = ?;`, key)
	if err != nil {
		return "", false
	}
	return value, true
}

func (g *Gateway) set(key, value string) error {
	_, err := g.db.Exec(
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value;`,
		key, value)
	if err != nil {
		return fmt.Errorf("%w: write %s: %v", ErrPersistence, key, err)
	}
	return nil
}

// delete is only used by tests to simulate missing keys.
func (g *Gateway) delete(key string) error {
	_, err := g.db.Exec(`DELETE FROM kv WHERE key = ?;`, key)
	return err
}

func sqliteDSN(path string) string {
	if strings.HasPrefix(path, "file:") {
		return path
	}
	abs, err := filepath.Abs(path)
	if err == nil {
		path = abs
	}
	u := url.URL{
		Scheme: "file",
		Path:   path,
	}
	q := u.Query()
	q.Set("mode", "rwc")
	q.Set("_pragma", "busy_timeout(5000)")
	u.RawQuery = q.Encode()
	return u.String()
}
