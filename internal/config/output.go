package config

// OutputConfig holds settings related to output formatting.
type OutputConfig struct {
	// JSONFormat writes machine-readable reports instead of text
	JSONFormat bool

	// Color renders the board with ANSI colours
	Color bool

	// ShowBoard prints the board diagram with text reports
	ShowBoard bool

	// Coordinates labels ranks and files around the board
	Coordinates bool
}

// NewOutputConfig creates an OutputConfig with default values.
func NewOutputConfig() *OutputConfig {
	return &OutputConfig{
		ShowBoard:   true,
		Coordinates: true,
	}
}
