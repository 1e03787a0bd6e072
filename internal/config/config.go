// Package config loads the TOML configuration file, creating it with
// defaults on first run.
package config

import (
	"errors"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	DefaultConfigFileName = "config.toml"
	DefaultDBName         = "taskdeck.db"
	appDirName            = "taskdeck"
)

type Keymap struct {
	Quit         string `toml:"quit"`
	Add          string `toml:"add"`
	Up           string `toml:"up"`
	Down         string `toml:"down"`
	Toggle       string `toml:"toggle"`
	Delete       string `toml:"delete"`
	Edit         string `toml:"edit"`
	Confirm      string `toml:"confirm"`
	Cancel       string `toml:"cancel"`
	Undo         string `toml:"undo"`
	Redo         string `toml:"redo"`
	Search       string `toml:"search"`
	CycleFilter  string `toml:"cycle_filter"`
	CycleSort    string `toml:"cycle_sort"`
	CycleCat     string `toml:"cycle_category"`
	ClearDone    string `toml:"clear_done"`
	ClearAll     string `toml:"clear_all"`
	ToggleTheme  string `toml:"toggle_theme"`
	ToggleView   string `toml:"toggle_view"`
	ExportReport string `toml:"export_report"`
}

type Config struct {
	DBPath           string `toml:"db_path"`
	DefaultFilter    string `toml:"default_filter"`
	DefaultSort      string `toml:"default_sort"`
	AutoSaveInterval int    `toml:"auto_save_interval_seconds"`
	SearchDebounceMS int    `toml:"search_debounce_ms"`
	ExportPath       string `toml:"export_path"`
	Keys             Keymap `toml:"keys"`
}

// ResolveConfigPath returns the config file location under the user config
// dir, falling back to the working directory when it cannot be resolved.
func ResolveConfigPath() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return DefaultConfigFileName
	}
	return filepath.Join(base, appDirName, DefaultConfigFileName)
}

// LoadOrCreate reads the config at path, writing a default one first if the
// file does not exist yet.
func LoadOrCreate(path string) (Config, error) {
	cfg := defaultConfig()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	cfg.fillDefaults()
	return cfg, nil
}

func (c *Config) fillDefaults() {
	if c.DBPath == "" {
		c.DBPath = defaultDBPath()
	}
	if c.DefaultFilter == "" {
		c.DefaultFilter = "all"
	}
	if c.DefaultSort == "" {
		c.DefaultSort = "newest"
	}
	if c.AutoSaveInterval <= 0 {
		c.AutoSaveInterval = 30
	}
	if c.SearchDebounceMS <= 0 {
		c.SearchDebounceMS = 300
	}
	if c.ExportPath == "" {
		c.ExportPath = "tasks-export.txt"
	}
}

func write(path string, cfg Config) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultDBPath() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return DefaultDBName
	}
	return filepath.Join(base, appDirName, DefaultDBName)
}

func defaultConfig() Config {
	return Config{
		DBPath:           defaultDBPath(),
		DefaultFilter:    "all",
		DefaultSort:      "newest",
		AutoSaveInterval: 30,
		SearchDebounceMS: 300,
		ExportPath:       "tasks-export.txt",
		Keys: Keymap{
			Quit:         "q",
			Add:          "a",
			Up:           "k",
			Down:         "j",
			Toggle:       " ",
			Delete:       "d",
			Edit:         "e",
			Confirm:      "enter",
			Cancel:       "esc",
			Undo:         "u",
			Redo:         "r",
			Search:       "/",
			CycleFilter:  "f",
			CycleSort:    "s",
			CycleCat:     "c",
			ClearDone:    "X",
			ClearAll:     "Z",
			ToggleTheme:  "t",
			ToggleView:   "v",
			ExportReport: "x",
		},
	}
}
