package model

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Packing defaults
	DefaultAlgorithm Algorithm   `json:"default_algorithm"`
	Algorithms       []Algorithm `json:"algorithms"`      // Strategies run by a comparison, in order
	DefaultPadding   float64     `json:"default_padding"` // Used when the input carries no sheet header (DXF)
	DefaultWidth     float64     `json:"default_width"`
	DefaultHeight    float64     `json:"default_height"`

	// Output preferences
	OutputDir    string   `json:"output_dir"`
	WritePNG     bool     `json:"write_png"`
	WritePDF     bool     `json:"write_pdf"`
	WriteLabels  bool     `json:"write_labels"`
	WriteExcel   bool     `json:"write_excel"`
	PNGScale     float64  `json:"png_scale"`    // Pixels per sheet unit
	ShowPadding  bool     `json:"show_padding"` // Draw padded outlines in renderings
	LogLevel     string   `json:"log_level"`    // "debug", "info", "warn", "error"
	RecentInputs []string `json:"recent_inputs"`
}

// maxRecentInputs caps the recent input list.
const maxRecentInputs = 10

// DefaultAppConfig returns an AppConfig populated with sensible defaults
// matching the values from DefaultSettings().
func DefaultAppConfig() AppConfig {
	defaults := DefaultSettings()
	return AppConfig{
		DefaultAlgorithm: defaults.Algorithm,
		Algorithms:       append([]Algorithm(nil), Algorithms...),
		DefaultPadding:   0,
		DefaultWidth:     1000,
		DefaultHeight:    1000,
		OutputDir:        ".",
		WritePNG:         true,
		WritePDF:         false,
		WriteLabels:      false,
		WriteExcel:       false,
		PNGScale:         1.0,
		ShowPadding:      true,
		LogLevel:         "info",
		RecentInputs:     []string{},
	}
}

// ApplyToSettings copies the default values from AppConfig into a PackSettings struct.
func (c AppConfig) ApplyToSettings(s *PackSettings) {
	if c.DefaultAlgorithm != "" {
		s.Algorithm = c.DefaultAlgorithm
	}
}

// DefaultSheet returns the sheet used when an input file carries no sheet header.
func (c AppConfig) DefaultSheet() Sheet {
	return Sheet{Width: c.DefaultWidth, Height: c.DefaultHeight, Padding: c.DefaultPadding}
}

// AddRecentInput moves path to the front of the recent list, dropping duplicates
// and keeping at most ten entries.
func (c *AppConfig) AddRecentInput(path string) {
	recent := []string{path}
	for _, p := range c.RecentInputs {
		if p != path {
			recent = append(recent, p)
		}
	}
	if len(recent) > maxRecentInputs {
		recent = recent[:maxRecentInputs]
	}
	c.RecentInputs = recent
}
