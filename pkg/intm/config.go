package intm

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// DefaultDocumentPart is the package member holding the document body.
const DefaultDocumentPart = "word/document.xml"

// Config contains all configuration options for a Converter
type Config struct {
	// LogLevel controls the verbosity of logging (debug, info, warn, error, off)
	LogLevel string `yaml:"log_level" validate:"oneof=debug info warn error off"`
	// IgnoredStyles lists paragraph styles that never produce a style marker
	IgnoredStyles []string `yaml:"ignored_styles" validate:"dive,required"`
	// DocumentPart is the package member converted
	DocumentPart string `yaml:"document_part" validate:"required"`
	// MaxPackageSize rejects larger packages. 0 disables the check.
	MaxPackageSize int64 `yaml:"max_package_size" validate:"gte=0"`
	// Concurrency bounds parallel conversions in a batch
	Concurrency int `yaml:"concurrency" validate:"gte=1"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		LogLevel:       "info",
		IgnoredStyles:  append([]string(nil), DefaultIgnoredStyles...),
		DocumentPart:   DefaultDocumentPart,
		MaxPackageSize: 0,
		Concurrency:    1,
	}
}

// ConfigFromEnvironment creates a configuration from environment variables
func ConfigFromEnvironment() *Config {
	config := DefaultConfig()
	applyEnvironment(config)
	return config
}

// LoadConfigFile reads a YAML configuration file over the defaults
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return config, nil
}

// LoadConfig builds the effective configuration: defaults, then the YAML
// file named by INTM_CONFIG, then environment overrides. The result is
// validated.
func LoadConfig() (*Config, error) {
	config := DefaultConfig()
	if path := os.Getenv("INTM_CONFIG"); path != "" {
		fileConfig, err := LoadConfigFile(path)
		if err != nil {
			return nil, err
		}
		config = fileConfig
	}
	applyEnvironment(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func applyEnvironment(config *Config) {
	// INTM_LOG_LEVEL
	if val := os.Getenv("INTM_LOG_LEVEL"); val != "" {
		config.LogLevel = strings.ToLower(strings.TrimSpace(val))
	}

	// INTM_IGNORED_STYLES
	if val, ok := os.LookupEnv("INTM_IGNORED_STYLES"); ok {
		config.IgnoredStyles = splitList(val)
	}

	// INTM_DOCUMENT_PART
	if val := os.Getenv("INTM_DOCUMENT_PART"); val != "" {
		config.DocumentPart = val
	}

	// INTM_MAX_PACKAGE_SIZE
	if val := os.Getenv("INTM_MAX_PACKAGE_SIZE"); val != "" {
		if size, err := strconv.ParseInt(val, 10, 64); err == nil {
			config.MaxPackageSize = size
		}
	}

	// INTM_CONCURRENCY
	if val := os.Getenv("INTM_CONCURRENCY"); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			config.Concurrency = n
		}
	}
}

// NewConfigWithDefaults creates a new configuration with defaults applied to unset fields
func NewConfigWithDefaults(overrides *Config) *Config {
	defaults := DefaultConfig()

	if overrides == nil {
		return defaults
	}

	config := *overrides
	config.IgnoredStyles = append([]string(nil), overrides.IgnoredStyles...)

	if config.LogLevel == "" {
		config.LogLevel = defaults.LogLevel
	}

	if overrides.IgnoredStyles == nil {
		config.IgnoredStyles = defaults.IgnoredStyles
	}

	if config.DocumentPart == "" {
		config.DocumentPart = defaults.DocumentPart
	}

	if config.Concurrency == 0 {
		config.Concurrency = defaults.Concurrency
	}

	return &config
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	return validateStruct(c)
}

func validateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	verr := &ValidationError{}
	for _, fe := range fieldErrs {
		verr.Issues = append(verr.Issues, ValidationIssue{
			Field:   fe.Field(),
			Message: issueMessage(fe),
		})
	}
	return verr
}

func issueMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return fmt.Sprintf("must be one of [%s], got '%v'", fe.Param(), fe.Value())
	case "gte":
		return fmt.Sprintf("must be >= %s, got %v", fe.Param(), fe.Value())
	case "gt":
		return fmt.Sprintf("must be > %s, got %v", fe.Param(), fe.Value())
	default:
		return fmt.Sprintf("failed '%s' check", fe.Tag())
	}
}

// splitList parses a comma separated list, dropping empty entries
func splitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
