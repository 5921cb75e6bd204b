// Package config loads the reconciliation run configuration from YAML or TOML.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Environment variables that override file values
const (
	EnvXrayURL     = "THIRDPARTY_XRAY_URL"
	EnvXrayToken   = "THIRDPARTY_XRAY_TOKEN"
	EnvRegistryURL = "THIRDPARTY_REGISTRY_URL"
	EnvLogLevel    = "THIRDPARTY_LOG_LEVEL"
)

// Lookup backend names
const (
	BackendDepsDev = "depsdev"
	BackendXray    = "xray"
)

// Config describes one reconciliation run
type Config struct {
	// Dependencies lists manifest files or directories
	Dependencies []string `yaml:"dependencies" toml:"dependencies" validate:"required,min=1,dive,required"`
	// Overrides lists override files, later ones win
	Overrides []string `yaml:"overrides" toml:"overrides" validate:"dive,required"`
	// MissingFile is the missing-license file read and rewritten by each run
	MissingFile string `yaml:"missingFile" toml:"missingFile"`
	// LicenseDatabases lists shared files in the missing-license format
	LicenseDatabases []string `yaml:"licenseDatabases" toml:"licenseDatabases" validate:"dive,required"`
	// Merges holds inline "main|alias|..." lines
	Merges     []string `yaml:"merges" toml:"merges"`
	MergeFiles []string `yaml:"mergeFiles" toml:"mergeFiles" validate:"dive,required"`

	Registry RegistryConfig `yaml:"registry" toml:"registry"`
	Lookup   LookupConfig   `yaml:"lookup" toml:"lookup"`
	Report   ReportConfig   `yaml:"report" toml:"report"`
	Log      LogConfig      `yaml:"log" toml:"log"`

	MetricsFile string `yaml:"metricsFile" toml:"metricsFile"`
	// FailOnUnknown makes a run with artifacts still under Unknown fail
	FailOnUnknown bool `yaml:"failOnUnknown" toml:"failOnUnknown"`
}

// RegistryConfig locates the remote license registry and how its files are trusted
type RegistryConfig struct {
	URL string `yaml:"url" toml:"url" validate:"omitempty,url"`
	// Digests pins locations to SHA-256 digests
	Digests map[string]string `yaml:"digests" toml:"digests"`
	// KeyFiles and KeysURL provide OpenPGP keys; when set every remote file needs a valid .asc signature
	KeyFiles []string `yaml:"keyFiles" toml:"keyFiles" validate:"dive,required"`
	KeysURL  string   `yaml:"keysUrl" toml:"keysUrl" validate:"omitempty,url"`
}

// SignaturesRequired reports whether remote files must be signed
func (r RegistryConfig) SignaturesRequired() bool {
	return len(r.KeyFiles) > 0 || r.KeysURL != ""
}

// LookupConfig enables remote license lookup backends, queried in order
type LookupConfig struct {
	Backends       []string      `yaml:"backends" toml:"backends" validate:"dive,oneof=depsdev xray"`
	TimeoutSeconds int           `yaml:"timeoutSeconds" toml:"timeoutSeconds" validate:"gte=0"`
	DepsDev        DepsDevConfig `yaml:"depsdev" toml:"depsdev"`
	Xray           XrayConfig    `yaml:"xray" toml:"xray"`
}

// DepsDevConfig configures the deps.dev backend
type DepsDevConfig struct {
	URL string `yaml:"url" toml:"url" validate:"omitempty,url"`
}

// XrayConfig configures the JFrog Xray backend
type XrayConfig struct {
	URL   string `yaml:"url" toml:"url"`
	Token string `yaml:"token" toml:"token"`
}

// ReportConfig configures the license report
type ReportConfig struct {
	Path   string `yaml:"path" toml:"path"`
	Format string `yaml:"format" toml:"format" validate:"omitempty,oneof=yaml json"`
}

// LogConfig configures logging
type LogConfig struct {
	Level  string `yaml:"level" toml:"level" validate:"omitempty,oneof=debug info warn error"`
	Format string `yaml:"format" toml:"format" validate:"omitempty,oneof=json console"`
}

// Uses reports whether a lookup backend is enabled
func (l LookupConfig) Uses(backend string) bool {
	for _, b := range l.Backends {
		if b == backend {
			return true
		}
	}
	return false
}

// Load reads a .yml/.yaml or .toml file, applies defaults and environment overrides,
// resolves local paths against the file's directory and validates the result
func Load(path string) (*Config, error) {
	//nolint:gosec // G304: path is the config file given on the command line
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yml", ".yaml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse TOML config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", ext)
	}

	cfg.applyDefaults()
	cfg.applyEnv(os.Getenv)
	cfg.resolvePaths(filepath.Dir(path))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Lookup.TimeoutSeconds == 0 {
		c.Lookup.TimeoutSeconds = 30
	}
	if c.Report.Format == "" {
		c.Report.Format = "yaml"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "console"
	}
}

func (c *Config) applyEnv(getenv func(string) string) {
	if v := getenv(EnvXrayURL); v != "" {
		c.Lookup.Xray.URL = v
	}
	if v := getenv(EnvXrayToken); v != "" {
		c.Lookup.Xray.Token = v
	}
	if v := getenv(EnvRegistryURL); v != "" {
		c.Registry.URL = v
	}
	if v := getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
}

func (c *Config) resolvePaths(base string) {
	resolve := func(p string) string {
		if p == "" || filepath.IsAbs(p) || isRemote(p) {
			return p
		}
		return filepath.Join(base, p)
	}
	resolveAll := func(ps []string) {
		for i := range ps {
			ps[i] = resolve(ps[i])
		}
	}

	resolveAll(c.Dependencies)
	resolveAll(c.Overrides)
	resolveAll(c.LicenseDatabases)
	resolveAll(c.MergeFiles)
	resolveAll(c.Registry.KeyFiles)
	c.MissingFile = resolve(c.MissingFile)
	c.Report.Path = resolve(c.Report.Path)
	c.MetricsFile = resolve(c.MetricsFile)

	if len(c.Registry.Digests) > 0 {
		digests := make(map[string]string, len(c.Registry.Digests))
		for location, digest := range c.Registry.Digests {
			digests[resolve(location)] = digest
		}
		c.Registry.Digests = digests
	}
}

func isRemote(location string) bool {
	return strings.HasPrefix(location, "registry:") ||
		strings.HasPrefix(location, "http://") ||
		strings.HasPrefix(location, "https://")
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

func validateStruct(s any) error {
	if err := getValidator().Struct(s); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Validate checks the backend names and the Xray credentials when Xray is enabled
func (l LookupConfig) Validate() error {
	if err := validateStruct(l); err != nil {
		return err
	}
	if l.Uses(BackendXray) {
		if err := getValidator().Var(l.Xray.URL, "required,url"); err != nil {
			return fmt.Errorf("invalid config: xray lookup needs a valid url (%s)", EnvXrayURL)
		}
		if strings.TrimSpace(l.Xray.Token) == "" {
			return fmt.Errorf("invalid config: xray lookup needs an access token (%s)", EnvXrayToken)
		}
	}
	return nil
}

// Validate checks field constraints and cross-field rules
func (c *Config) Validate() error {
	if err := validateStruct(c); err != nil {
		return err
	}
	if err := c.Lookup.Validate(); err != nil {
		return err
	}

	for _, location := range c.allLocations() {
		if strings.HasPrefix(location, "registry:") && c.Registry.URL == "" {
			return fmt.Errorf("invalid config: %s needs registry.url", location)
		}
	}
	return nil
}

func (c *Config) allLocations() []string {
	var out []string
	out = append(out, c.Overrides...)
	out = append(out, c.LicenseDatabases...)
	out = append(out, c.MergeFiles...)
	return out
}
