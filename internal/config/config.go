package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/csg33k/leave-panel/internal/leaveform"
)

type Config struct {
	Port     string     `env:"PORT" envDefault:"8080"`
	LogLevel slog.Level `env:"LOG_LEVEL" envDefault:"info"`
	HRAPI    struct {
		BaseURL   string        `env:"BASE_URL,required"`
		Timeout   time.Duration `env:"TIMEOUT" envDefault:"10s"`
		LeavePath string        `env:"LEAVE_PATH" envDefault:"/add_leave/{id}"`
	} `envPrefix:"HR_API_"`
	LeaveFormInitial   string        `env:"LEAVE_FORM_INITIAL" envDefault:"hidden"`
	CORSAllowedOrigins []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
	VCardOrg           string        `env:"VCARD_ORG" envDefault:"Authors, Inc."`
	ExportConcurrency  int           `env:"EXPORT_CONCURRENCY" envDefault:"4"`
	ShutdownTimeout    time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Load reads the configuration from the environment. Call godotenv.Load
// first to pick up a local .env file.
func Load() (*Config, error) {
	return parse(env.Options{})
}

func parse(opts env.Options) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		aggErr := env.AggregateError{}
		if errors.As(err, &aggErr) && len(aggErr.Errors) > 0 {
			// first error only, keeps the startup log readable
			return nil, aggErr.Errors[0]
		}
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values env tags cannot express.
func (c *Config) Validate() error {
	u, err := url.Parse(c.HRAPI.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("HR_API_BASE_URL %q must be an absolute URL", c.HRAPI.BaseURL)
	}
	if !strings.Contains(c.HRAPI.LeavePath, "{id}") {
		return fmt.Errorf("HR_API_LEAVE_PATH %q must contain {id}", c.HRAPI.LeavePath)
	}
	if _, err := leaveform.ParseInitial(c.LeaveFormInitial); err != nil {
		return err
	}
	if c.ExportConcurrency < 1 {
		return fmt.Errorf("EXPORT_CONCURRENCY must be at least 1, got %d", c.ExportConcurrency)
	}
	if c.HRAPI.Timeout <= 0 {
		return fmt.Errorf("HR_API_TIMEOUT must be positive, got %s", c.HRAPI.Timeout)
	}
	return nil
}

// InitialFormState is the parsed LEAVE_FORM_INITIAL.
func (c *Config) InitialFormState() leaveform.State {
	s, _ := leaveform.ParseInitial(c.LeaveFormInitial)
	return s
}

// Addr is the listen address.
func (c *Config) Addr() string {
	return ":" + c.Port
}
