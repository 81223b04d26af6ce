package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/specialistvlad/hrggo/internal/hrgerr"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	LogLevel    string `mapstructure:"log-level" validate:"oneof=debug info warn error"`
	LogFormat   string `mapstructure:"log-format" validate:"oneof=text json"`
	ArchivePath string `mapstructure:"archive" validate:"required"`
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		LogLevel:    "info",
		LogFormat:   "text",
		ArchivePath: "hrg.db",
	}
}

var validate = validator.New()

// NewConfig normalizes and validates cfg.
func NewConfig(cfg Config) (*Config, error) {
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)

	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return nil, err
		}
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			rule := strings.TrimSpace(fe.Tag() + " " + fe.Param())
			msgs = append(msgs, fmt.Sprintf("%s: %q does not satisfy %s", fe.Field(), fe.Value(), rule))
		}
		return nil, hrgerr.New(hrgerr.InvalidArgument, "invalid configuration:\n- %s", strings.Join(msgs, "\n- "))
	}
	return &cfg, nil
}
