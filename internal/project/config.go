package project

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
)

// ErrInvalidConfig wraps every validation failure returned by Load.
var ErrInvalidConfig = errors.New("invalid configuration")

// CheckConfig is the [check] section.
type CheckConfig struct {
	Macro          string   `toml:"macro"`
	Extensions     []string `toml:"extensions"`
	WarnUnused     bool     `toml:"warn_unused"`
	ReportRebind   bool     `toml:"report_rebind"`
	MaxDiagnostics int      `toml:"max_diagnostics"`
	Jobs           int      `toml:"jobs"`
}

// CacheConfig is the [cache] section.
type CacheConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

// Config is the decoded pipebind.toml.
type Config struct {
	Check CheckConfig `toml:"check"`
	Cache CacheConfig `toml:"cache"`

	// Path of the file the config was loaded from; empty for defaults.
	Path string `toml:"-"`
}

// Defaults returns the configuration used when no pipebind.toml exists.
func Defaults() Config {
	return Config{
		Check: CheckConfig{
			Macro:          "assign_to",
			Extensions:     []string{".ex", ".exs"},
			WarnUnused:     true,
			ReportRebind:   false,
			MaxDiagnostics: 100,
			Jobs:           0,
		},
	}
}

// Load decodes path on top of Defaults. Unknown keys and bad values are
// reported as ErrInvalidConfig.
func Load(path string) (Config, error) {
	cfg := Defaults()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return Config{}, fmt.Errorf("%s: %w: unknown keys %s", path, ErrInvalidConfig, strings.Join(keys, ", "))
	}
	// extensions = [] выключил бы обход каталогов целиком
	if meta.IsDefined("check", "extensions") && len(cfg.Check.Extensions) == 0 {
		return Config{}, fmt.Errorf("%s: %w: [check].extensions must not be empty", path, ErrInvalidConfig)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	cfg.Path = path
	return cfg, nil
}

// LoadOrDefault finds pipebind.toml above startDir and loads it.
// Without a config file it returns Defaults.
func LoadOrDefault(startDir string) (Config, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Defaults(), nil
	}
	return Load(path)
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Check.Macro) == "" {
		return fmt.Errorf("%w: [check].macro must not be empty", ErrInvalidConfig)
	}
	if c.Check.MaxDiagnostics < 0 {
		return fmt.Errorf("%w: [check].max_diagnostics must be >= 0", ErrInvalidConfig)
	}
	if c.Check.Jobs < 0 {
		return fmt.Errorf("%w: [check].jobs must be >= 0", ErrInvalidConfig)
	}
	for _, ext := range c.Check.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("%w: extension %q must start with '.'", ErrInvalidConfig, ext)
		}
	}
	return nil
}

// Encode writes c as TOML.
func (c *Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// Fingerprint hashes the settings that change checking results.
// Cache and job settings are excluded.
func (c *Config) Fingerprint() Digest {
	var b strings.Builder
	fmt.Fprintf(&b, "macro=%s\n", c.Check.Macro)
	fmt.Fprintf(&b, "warn_unused=%t\n", c.Check.WarnUnused)
	fmt.Fprintf(&b, "report_rebind=%t\n", c.Check.ReportRebind)
	fmt.Fprintf(&b, "max_diagnostics=%d\n", c.Check.MaxDiagnostics)
	return Sum([]byte(b.String()))
}
