// Package config assembles runtime configuration from defaults, an optional
// config file, an optional .env file and the process environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix prefixes every environment variable read by Load.
	EnvPrefix      = "NEXADEV_WEB_"
	defaultEnvFile = ".env"
	defaultPort    = "8080"
)

// defaults lists every setting with its default. Env names are derived from the
// key: server.port -> NEXADEV_WEB_SERVER_PORT.
var defaults = map[string]any{
	"server.port":                 defaultPort,
	"server.env":                  "dev",
	"server.dev":                  false,
	"server.read_timeout":         15 * time.Second,
	"server.write_timeout":        15 * time.Second,
	"server.idle_timeout":         60 * time.Second,
	"server.session_signing_key":  "",
	"paths.templates":             "templates",
	"paths.public":                "public",
	"paths.locales":               "",
	"paths.content":               "content/site.yaml",
	"emailjs.base_url":            "https://api.emailjs.com",
	"emailjs.service_id":          "",
	"emailjs.template_id":         "",
	"emailjs.public_key":          "",
	"emailjs.private_key":         "",
	"emailjs.timeout":             10 * time.Second,
	"contact.desk_ttl":            30 * time.Minute,
	"site.url":                    "",
	"analytics.ga_measurement_id": "",
	"analytics.gtm_container_id":  "",
	"analytics.segment_write_key": "",
	"analytics.debug":             false,
	"log.level":                   "info",
}

// Config captures runtime configuration organised by concern.
type Config struct {
	Server    ServerConfig
	Paths     PathsConfig
	EmailJS   EmailJSConfig
	Contact   ContactConfig
	Site      SiteConfig
	Analytics AnalyticsConfig
	Log       LogConfig
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port              string
	Env               string
	Dev               bool
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	SessionSigningKey string
}

// Addr returns the listen address for Port.
func (s ServerConfig) Addr() string { return ":" + s.Port }

// Prod reports whether the server runs in production.
func (s ServerConfig) Prod() bool { return strings.EqualFold(s.Env, "prod") }

// PathsConfig locates on-disk resources. An empty Locales uses the
// translation tables compiled into the binary.
type PathsConfig struct {
	Templates string
	Public    string
	Locales   string
	Content   string
}

// EmailJSConfig identifies the transactional email account.
type EmailJSConfig struct {
	BaseURL    string
	ServiceID  string
	TemplateID string
	PublicKey  string
	PrivateKey string
	Timeout    time.Duration
}

// Configured reports whether any identifying field is set.
func (e EmailJSConfig) Configured() bool {
	return e.ServiceID != "" || e.TemplateID != "" || e.PublicKey != ""
}

// ContactConfig tunes the contact form registry.
type ContactConfig struct {
	DeskTTL time.Duration
}

// SiteConfig holds public site metadata.
type SiteConfig struct {
	URL string
}

// AnalyticsConfig holds client instrumentation identifiers.
type AnalyticsConfig struct {
	GA4MeasurementID string
	GTMContainerID   string
	SegmentWriteKey  string
	Debug            bool
}

// LogConfig configures the logger.
type LogConfig struct {
	Level string
}

// ValidationError lists the settings that failed validation.
type ValidationError struct {
	Problems map[string]string
}

func (e *ValidationError) Error() string {
	fields := e.Fields()
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+e.Problems[f])
	}
	return "config: invalid configuration: " + strings.Join(parts, "; ")
}

// Fields returns the offending setting names, sorted.
func (e *ValidationError) Fields() []string {
	out := make([]string, 0, len(e.Problems))
	for k := range e.Problems {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Option customises Load behaviour.
type Option func(*loaderOptions)

type loaderOptions struct {
	envFile      string
	configFile   string
	envMap       map[string]string
	useSystemEnv bool
}

// WithEnvFile overrides the .env path; an empty path disables it.
func WithEnvFile(path string) Option {
	return func(o *loaderOptions) { o.envFile = path }
}

// WithConfigFile merges a YAML, TOML or JSON config file under the env.
func WithConfigFile(path string) Option {
	return func(o *loaderOptions) { o.configFile = path }
}

// WithEnvMap injects explicit environment values. They take precedence over
// the process environment and the .env file.
func WithEnvMap(values map[string]string) Option {
	return func(o *loaderOptions) { o.envMap = values }
}

// WithoutSystemEnv ignores the process environment.
func WithoutSystemEnv() Option {
	return func(o *loaderOptions) { o.useSystemEnv = false }
}

// Load resolves the configuration. Precedence, lowest first: defaults,
// config file, .env, process environment, WithEnvMap.
func Load(opts ...Option) (Config, error) {
	options := loaderOptions{envFile: defaultEnvFile, useSystemEnv: true}
	for _, opt := range opts {
		opt(&options)
	}

	env, err := environment(options)
	if err != nil {
		return Config{}, err
	}

	v := viper.New()
	for k, d := range defaults {
		v.SetDefault(k, d)
	}

	configFile := options.configFile
	if configFile == "" {
		configFile = env[EnvPrefix+"CONFIG"]
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", configFile, err)
		}
	}

	for k := range defaults {
		if val, ok := env[envName(k)]; ok {
			v.Set(k, val)
		}
	}
	// Platform conventions: PORT (Cloud Run) and LOG_LEVEL.
	if _, ok := env[envName("server.port")]; !ok && env["PORT"] != "" {
		v.Set("server.port", env["PORT"])
	}
	if _, ok := env[envName("log.level")]; !ok && env["LOG_LEVEL"] != "" {
		v.Set("log.level", env["LOG_LEVEL"])
	}

	cfg := Config{
		Server: ServerConfig{
			Port:              strings.TrimPrefix(strings.TrimSpace(v.GetString("server.port")), ":"),
			Env:               strings.ToLower(strings.TrimSpace(v.GetString("server.env"))),
			Dev:               v.GetBool("server.dev"),
			ReadTimeout:       v.GetDuration("server.read_timeout"),
			WriteTimeout:      v.GetDuration("server.write_timeout"),
			IdleTimeout:       v.GetDuration("server.idle_timeout"),
			SessionSigningKey: v.GetString("server.session_signing_key"),
		},
		Paths: PathsConfig{
			Templates: v.GetString("paths.templates"),
			Public:    v.GetString("paths.public"),
			Locales:   v.GetString("paths.locales"),
			Content:   v.GetString("paths.content"),
		},
		EmailJS: EmailJSConfig{
			BaseURL:    strings.TrimSpace(v.GetString("emailjs.base_url")),
			ServiceID:  strings.TrimSpace(v.GetString("emailjs.service_id")),
			TemplateID: strings.TrimSpace(v.GetString("emailjs.template_id")),
			PublicKey:  strings.TrimSpace(v.GetString("emailjs.public_key")),
			PrivateKey: strings.TrimSpace(v.GetString("emailjs.private_key")),
			Timeout:    v.GetDuration("emailjs.timeout"),
		},
		Contact: ContactConfig{DeskTTL: v.GetDuration("contact.desk_ttl")},
		Site:    SiteConfig{URL: strings.TrimRight(strings.TrimSpace(v.GetString("site.url")), "/")},
		Analytics: AnalyticsConfig{
			GA4MeasurementID: v.GetString("analytics.ga_measurement_id"),
			GTMContainerID:   v.GetString("analytics.gtm_container_id"),
			SegmentWriteKey:  v.GetString("analytics.segment_write_key"),
			Debug:            v.GetBool("analytics.debug"),
		},
		Log: LogConfig{Level: v.GetString("log.level")},
	}
	if cfg.Server.Port == "" {
		cfg.Server.Port = defaultPort
	}
	return cfg, nil
}

// Validate checks cross-field rules.
func (c Config) Validate() error {
	problems := map[string]string{}
	if c.EmailJS.Configured() {
		for name, val := range map[string]string{
			"emailjs.service_id":  c.EmailJS.ServiceID,
			"emailjs.template_id": c.EmailJS.TemplateID,
			"emailjs.public_key":  c.EmailJS.PublicKey,
		} {
			if val == "" {
				problems[name] = "required when any EmailJS setting is present"
			}
		}
	}
	if c.Server.Prod() && c.Server.SessionSigningKey == "" {
		problems["server.session_signing_key"] = "required in prod"
	}
	if c.Server.Prod() && c.Server.Dev {
		problems["server.dev"] = "dev mode cannot be enabled in prod"
	}
	for name, d := range map[string]time.Duration{
		"server.read_timeout":  c.Server.ReadTimeout,
		"server.write_timeout": c.Server.WriteTimeout,
		"emailjs.timeout":      c.EmailJS.Timeout,
	} {
		if d <= 0 {
			problems[name] = "must be positive"
		}
	}
	if len(problems) == 0 {
		return nil
	}
	return &ValidationError{Problems: problems}
}

func envName(key string) string {
	return EnvPrefix + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

func environment(o loaderOptions) (map[string]string, error) {
	values := map[string]string{}
	if o.envFile != "" {
		dot, err := godotenv.Read(o.envFile)
		switch {
		case err == nil:
			for k, v := range dot {
				values[k] = v
			}
		case errors.Is(err, fs.ErrNotExist):
		default:
			return nil, fmt.Errorf("config: read %s: %w", o.envFile, err)
		}
	}
	if o.useSystemEnv {
		for _, entry := range os.Environ() {
			k, v, ok := strings.Cut(entry, "=")
			if !ok || strings.TrimSpace(k) == "" {
				continue
			}
			values[k] = v
		}
	}
	for k, v := range o.envMap {
		values[k] = v
	}
	return values, nil
}
