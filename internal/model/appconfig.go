package model

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Defaults applied to new projects
	DefaultAlgorithm   Algorithm `json:"default_algorithm"`
	DefaultKerfWidth   float64   `json:"default_kerf_width"`
	DefaultSheetWidth  float64   `json:"default_sheet_width"`
	DefaultSheetHeight float64   `json:"default_sheet_height"`
	DefaultThickness   float64   `json:"default_thickness"`

	// Application preferences
	Currency         string   `json:"currency"`
	AutoSaveInterval int      `json:"auto_save_interval"` // minutes, 0 = disabled
	RecentProjects   []string `json:"recent_projects"`
}

// DefaultAppConfig returns an AppConfig matching DefaultSettings().
func DefaultAppConfig() AppConfig {
	defaults := DefaultSettings()
	return AppConfig{
		DefaultAlgorithm:   defaults.Algorithm,
		DefaultKerfWidth:   defaults.KerfWidth,
		DefaultSheetWidth:  defaults.SheetWidth,
		DefaultSheetHeight: defaults.SheetHeight,
		DefaultThickness:   defaults.Thickness,
		Currency:           "$",
		AutoSaveInterval:   0,
		RecentProjects:     []string{},
	}
}

// ApplyToSettings copies the config defaults into a CutSettings value.
// Used when creating a new project so it inherits the saved defaults.
func (c AppConfig) ApplyToSettings(s *CutSettings) {
	s.Algorithm = c.DefaultAlgorithm
	s.KerfWidth = c.DefaultKerfWidth
	s.SheetWidth = c.DefaultSheetWidth
	s.SheetHeight = c.DefaultSheetHeight
	s.Thickness = c.DefaultThickness
}

// AddRecentProject prepends path to the recent list, dropping duplicates
// and keeping at most max entries.
func (c *AppConfig) AddRecentProject(path string, max int) {
	recent := []string{path}
	for _, p := range c.RecentProjects {
		if p != path && len(recent) < max {
			recent = append(recent, p)
		}
	}
	c.RecentProjects = recent
}
