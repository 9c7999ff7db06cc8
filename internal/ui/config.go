package ui

// Config contains window/input/audio related settings.
type Config struct {
	Title string // window title
	Scale int    // integer upscaling factor
	Sound bool   // drive the buzzer through the audio device
	// Later: fullscreen, key remapping, palette selection.
}

// Defaults fills missing fields with reasonable defaults.
func (c *Config) Defaults() {
	if c.Title == "" {
		c.Title = "chipo"
	}
	if c.Scale <= 0 {
		c.Scale = 10
	}
}
