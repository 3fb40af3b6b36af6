package themepatch

import "strings"

// Config is the persisted application configuration.
type Config struct {
	General    General                     `toml:"general" yaml:"general" json:"general"`
	Extensions map[string]ExtensionSetting `toml:"extensions" yaml:"extensions" json:"extensions"`
}

// General holds path settings.
type General struct {
	ThemesPath string `toml:"themes_path" yaml:"themes_path" json:"themes_path"`
	SavePrefix string `toml:"save_prefix" yaml:"save_prefix" json:"save_prefix"`
}

// ExtensionSetting controls colour parsing for one file extension.
// Color is the "#rrggbb" accent used for the extension in file lists.
type ExtensionSetting struct {
	Enabled bool   `toml:"enabled" yaml:"enabled" json:"enabled"`
	Color   string `toml:"color" yaml:"color" json:"color"`
}

// Default configuration values.
const (
	DefaultThemesPath = "~/.config/omarchy/themes"
	DefaultSavePrefix = "new-"
)

// DefaultConfig returns the configuration used when none is stored.
func DefaultConfig() *Config {
	return &Config{
		General: General{
			ThemesPath: DefaultThemesPath,
			SavePrefix: DefaultSavePrefix,
		},
		Extensions: map[string]ExtensionSetting{
			".css":   {Enabled: true, Color: "#2646dc"},
			".toml":  {Enabled: true, Color: "#ff9f43"},
			".theme": {Enabled: true, Color: "#5f27cd"},
			".conf":  {Enabled: true, Color: "#1dd1a1"},
			".lua":   {Enabled: true, Color: "#22a6b3"},
			".json":  {Enabled: true, Color: "#f4b426"},
			".yaml":  {Enabled: true, Color: "#4ecdcd"},
			".ini":   {Enabled: true, Color: "#ff9ff3"},
		},
	}
}

// ExtensionKey returns the extensions map key for a file name, e.g. ".css".
func ExtensionKey(name string) string {
	return "." + Extension(name)
}

// ExtensionEnabled reports whether colour parsing is enabled for the file.
// Extensions missing from the configuration are disabled.
func (c *Config) ExtensionEnabled(name string) bool {
	s, ok := c.Extensions[ExtensionKey(name)]
	return ok && s.Enabled
}

// ExtensionColor returns the accent colour for the file's extension,
// falling back to the default palette.
func (c *Config) ExtensionColor(name string) RGBA {
	if s, ok := c.Extensions[ExtensionKey(name)]; ok && s.Color != "" {
		return ColorFromHex(s.Color)
	}
	return DefaultExtensionColor(name)
}

// SetExtension enables or disables an extension, keeping its colour or
// assigning a default one.
func (c *Config) SetExtension(ext string, enabled bool) {
	ext = "." + strings.ToLower(strings.TrimPrefix(ext, "."))
	if c.Extensions == nil {
		c.Extensions = make(map[string]ExtensionSetting)
	}
	s, ok := c.Extensions[ext]
	if !ok {
		s.Color = ColorToHex(DefaultExtensionColor(ext))
	}
	s.Enabled = enabled
	c.Extensions[ext] = s
}
