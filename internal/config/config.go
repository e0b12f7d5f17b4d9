package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/alnah/go-typograf/internal/fileutil"
	"github.com/alnah/go-typograf/internal/remote"
	"github.com/alnah/go-typograf/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidConfig   = errors.New("invalid config")
)

// AppDirName is the directory searched under the user config dir.
const AppDirName = "go-typograf"

// Config holds all configuration for text processing.
type Config struct {
	Quotes     QuotesConfig     `yaml:"quotes"`
	Output     OutputConfig     `yaml:"output"`
	Breaks     BreaksConfig     `yaml:"breaks"`
	Paragraphs ParagraphsConfig `yaml:"paragraphs"`
	Service    ServiceConfig    `yaml:"service"`
	Batch      BatchConfig      `yaml:"batch"`
}

// QuotesConfig selects quote styles per nesting level.
type QuotesConfig struct {
	Primary   string `yaml:"primary"   validate:"omitempty,oneof=french german english-double programmer english-single"`
	Secondary string `yaml:"secondary" validate:"omitempty,oneof=french german english-double programmer english-single"`
}

// OutputConfig defines how results are rendered and delivered.
type OutputConfig struct {
	Format     string `yaml:"format"     validate:"omitempty,oneof=named numeric unicode"`
	Preview    bool   `yaml:"preview"`
	Copy       bool   `yaml:"copy"`                         // copy single results to the clipboard
	DefaultDir string `yaml:"defaultDir" validate:"max=4096"` // batch output directory (empty = next to source)
}

// BreaksConfig defines line break handling.
type BreaksConfig struct {
	Enabled bool   `yaml:"enabled"`
	Tag     string `yaml:"tag" validate:"max=100"` // empty = "<br />"
}

// ParagraphsConfig defines paragraph handling.
type ParagraphsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Open    string `yaml:"open"  validate:"max=100"` // empty = "<p>"
	Close   string `yaml:"close" validate:"max=100"` // empty = "</p>"
}

// ServiceConfig defines how the remote service is called.
type ServiceConfig struct {
	Endpoint  string        `yaml:"endpoint"  validate:"omitempty,url,max=2048"`
	Timeout   time.Duration `yaml:"timeout"   validate:"gte=0"`
	Retries   int           `yaml:"retries"   validate:"gte=0,lte=10"`
	RateLimit float64       `yaml:"rateLimit" validate:"gte=0"` // requests per second, 0 = unlimited
	MaxNobr   int           `yaml:"maxNobr"   validate:"gte=0"`
}

// BatchConfig defines directory processing.
type BatchConfig struct {
	Workers   int `yaml:"workers"   validate:"gte=0,lte=64"` // 0 = auto
	CacheSize int `yaml:"cacheSize" validate:"gte=0"`        // 0 = no result cache
}

var validate = newValidator()

// newValidator reports fields by their YAML names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks enums, ranges and field lengths.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	fe := verrs[0]
	field := fieldPath(fe.Namespace())
	switch {
	case fe.Tag() == "max" && fe.Kind() == reflect.String:
		value, _ := fe.Value().(string)
		return fmt.Errorf("%w: %s (%d chars, max %s)", ErrFieldTooLong, field, len(value), fe.Param())
	case fe.Tag() == "oneof":
		return fmt.Errorf("%w: %s: invalid value %q (must be one of %s)", ErrInvalidConfig, field, fe.Value(), fe.Param())
	case fe.Param() != "":
		return fmt.Errorf("%w: %s: must satisfy %s=%s, got %v", ErrInvalidConfig, field, fe.Tag(), fe.Param(), fe.Value())
	default:
		return fmt.Errorf("%w: %s: must be a valid %s", ErrInvalidConfig, field, fe.Tag())
	}
}

// fieldPath drops the root type name from a validator namespace.
func fieldPath(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		return rest
	}
	return namespace
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Quotes: QuotesConfig{Primary: "french", Secondary: "german"},
		Output: OutputConfig{Format: "named"},
		Breaks: BreaksConfig{Enabled: false, Tag: "<br />"},
		Paragraphs: ParagraphsConfig{
			Enabled: false,
			Open:    "<p>",
			Close:   "</p>",
		},
		Service: ServiceConfig{
			Endpoint: remote.DefaultEndpoint,
			Timeout:  remote.DefaultTimeout,
		},
		Batch: BatchConfig{CacheSize: 256},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Fields absent from the file keep their DefaultConfig values.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SearchPaths lists the files tried for a config name, in order:
// current directory, then the user config directory, .yaml before .yml.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, AppDirName, name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing file among SearchPaths(name).
func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}
