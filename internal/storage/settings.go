package storage

// Theme values.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// View modes.
const (
	ViewList = "list"
	ViewGrid = "grid"
)

// Settings is the small user-preferences record persisted alongside tasks.
// Loaded once at startup, written back on every mutation.
type Settings struct {
	Theme         string `json:"theme"`
	AutoSave      bool   `json:"autoSave"`
	Notifications bool   `json:"notifications"`
	SoundEffects  bool   `json:"soundEffects"`
	ViewMode      string `json:"viewMode"`
}

// DefaultSettings returns the out-of-the-box preferences.
func DefaultSettings() Settings {
	return Settings{
		Theme:         ThemeLight,
		AutoSave:      true,
		Notifications: true,
		SoundEffects:  false,
		ViewMode:      ViewList,
	}
}

// normalize substitutes defaults for fields a stored blob left malformed.
func (s *Settings) normalize() {
	if s.Theme != ThemeLight && s.Theme != ThemeDark {
		s.Theme = ThemeLight
	}
	if s.ViewMode != ViewList && s.ViewMode != ViewGrid {
		s.ViewMode = ViewList
	}
}
