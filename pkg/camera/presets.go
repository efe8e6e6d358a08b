package camera

// Preset names for common configurations
const (
	PresetDefault  = "default"
	Preset720p     = "720p"
	Preset1080p    = "1080p"
	Preset4K       = "4k"
	PresetNight    = "night"
	PresetBright   = "bright"
	PresetAction   = "action"
	PresetPortrait = "portrait"
)

// Presets returns all available preset configurations.
func Presets() map[string]Config {
	return map[string]Config{
		PresetDefault:  DefaultConfig(),
		Preset720p:     HD720Config(),
		Preset1080p:    HD1080Config(),
		Preset4K:       UHD4KConfig(),
		PresetNight:    NightModeConfig(),
		PresetBright:   BrightModeConfig(),
		PresetAction:   ActionConfig(),
		PresetPortrait: PortraitConfig(),
	}
}

// PresetNames returns the list of available preset names.
func PresetNames() []string {
	return []string{
		PresetDefault,
		Preset720p,
		Preset1080p,
		Preset4K,
		PresetNight,
		PresetBright,
		PresetAction,
		PresetPortrait,
	}
}

// GetPreset returns a preset config by name, or nil if not found.
func GetPreset(name string) *Config {
	presets := Presets()
	if cfg, ok := presets[name]; ok {
		return &cfg
	}
	return nil
}

// HD720Config returns 720p HD configuration.
// Good balance of quality and analysis throughput.
func HD720Config() Config {
	cfg := DefaultConfig()
	cfg.Width = 1280
	cfg.Height = 720
	return cfg
}

// HD1080Config returns 1080p Full HD configuration.
// Best for detection accuracy.
func HD1080Config() Config {
	cfg := DefaultConfig()
	cfg.Width = 1920
	cfg.Height = 1080
	return cfg
}

// UHD4KConfig returns 4K UHD configuration.
// Maximum quality, higher CPU usage.
func UHD4KConfig() Config {
	cfg := DefaultConfig()
	cfg.Width = 3840
	cfg.Height = 2160
	cfg.Framerate = 15 // Lower framerate for 4K
	return cfg
}

// NightModeConfig returns configuration optimized for low light.
// Raises sensitivity and biases exposure toward the shadows.
func NightModeConfig() Config {
	cfg := DefaultConfig()
	cfg.Width = 1280 // Lower res for faster processing in low light
	cfg.Height = 720
	cfg.ConstraintMode = "shadows"
	cfg.ExposureValue = 1.0 // +1 stop brighter
	cfg.ISO = 1600
	cfg.ShutterSpeed = 1.0 / 30.0
	return cfg
}

// BrightModeConfig returns configuration optimized for bright scenes.
// Prevents overexposure in highlights.
func BrightModeConfig() Config {
	cfg := DefaultConfig()
	cfg.ConstraintMode = "highlight"
	cfg.ExposureValue = -0.5 // Slightly darker to preserve highlights
	return cfg
}

// ActionConfig returns configuration for fast-moving subjects.
func ActionConfig() Config {
	cfg := DefaultConfig()
	cfg.Framerate = 60
	cfg.ShutterSpeed = 1.0 / 1000.0
	cfg.ISO = 800
	return cfg
}

// PortraitConfig returns configuration for face-first shooting.
func PortraitConfig() Config {
	cfg := DefaultConfig()
	cfg.AfMode = "continuous"
	cfg.ExposureValue = 0.3 // Slight lift for skin tones
	return cfg
}
