package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadWithDefaults(t *testing.T) {
	cfg, err := Load(WithEnvMap(nil), WithoutSystemEnv(), WithEnvFile(""))
	require.NoError(t, err)

	require.Equal(t, "8080", cfg.Server.Port)
	require.Equal(t, ":8080", cfg.Server.Addr())
	require.Equal(t, "dev", cfg.Server.Env)
	require.False(t, cfg.Server.Prod())
	require.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	require.Equal(t, "templates", cfg.Paths.Templates)
	require.Equal(t, "content/site.yaml", cfg.Paths.Content)
	require.Empty(t, cfg.Paths.Locales)
	require.Equal(t, "https://api.emailjs.com", cfg.EmailJS.BaseURL)
	require.Equal(t, 10*time.Second, cfg.EmailJS.Timeout)
	require.False(t, cfg.EmailJS.Configured())
	require.Equal(t, 30*time.Minute, cfg.Contact.DeskTTL)
	require.Equal(t, "info", cfg.Log.Level)
	require.NoError(t, cfg.Validate())
}

func TestLoadEnvOverrides(t *testing.T) {
	env := map[string]string{
		"NEXADEV_WEB_SERVER_PORT":         "9090",
		"NEXADEV_WEB_SERVER_DEV":          "true",
		"NEXADEV_WEB_EMAILJS_SERVICE_ID":  "service_x",
		"NEXADEV_WEB_EMAILJS_TEMPLATE_ID": "template_y",
		"NEXADEV_WEB_EMAILJS_PUBLIC_KEY":  "pub",
		"NEXADEV_WEB_EMAILJS_TIMEOUT":     "3s",
		"NEXADEV_WEB_SITE_URL":            "https://nexadev.example/",
		"LOG_LEVEL":                       "debug",
	}
	cfg, err := Load(WithEnvMap(env), WithoutSystemEnv(), WithEnvFile(""))
	require.NoError(t, err)

	require.Equal(t, "9090", cfg.Server.Port)
	require.True(t, cfg.Server.Dev)
	require.Equal(t, "service_x", cfg.EmailJS.ServiceID)
	require.Equal(t, 3*time.Second, cfg.EmailJS.Timeout)
	require.Equal(t, "https://nexadev.example", cfg.Site.URL)
	require.Equal(t, "debug", cfg.Log.Level)
	require.NoError(t, cfg.Validate())
}

func TestLoadPortFallback(t *testing.T) {
	cfg, err := Load(WithEnvMap(map[string]string{"PORT": "7000"}), WithoutSystemEnv(), WithEnvFile(""))
	require.NoError(t, err)
	require.Equal(t, "7000", cfg.Server.Port)

	cfg, err = Load(WithEnvMap(map[string]string{"PORT": "7000", "NEXADEV_WEB_SERVER_PORT": "7001"}), WithoutSystemEnv(), WithEnvFile(""))
	require.NoError(t, err)
	require.Equal(t, "7001", cfg.Server.Port)
}

func TestLoadPrecedence(t *testing.T) {
	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "web.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("server:\n  port: \"6000\"\n  env: staging\nlog:\n  level: warn\n"), 0o600))
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("NEXADEV_WEB_SERVER_ENV=qa\nNEXADEV_WEB_LOG_LEVEL=error\n"), 0o600))

	cfg, err := Load(WithConfigFile(cfgFile), WithEnvFile(envFile), WithoutSystemEnv(),
		WithEnvMap(map[string]string{"NEXADEV_WEB_LOG_LEVEL": "debug"}))
	require.NoError(t, err)
	require.Equal(t, "6000", cfg.Server.Port, "file beats defaults")
	require.Equal(t, "qa", cfg.Server.Env, ".env beats file")
	require.Equal(t, "debug", cfg.Log.Level, "explicit map beats .env")
}

func TestLoadConfigFileFromEnv(t *testing.T) {
	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "web.toml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("[paths]\ntemplates = \"/srv/templates\"\n"), 0o600))

	cfg, err := Load(WithEnvMap(map[string]string{"NEXADEV_WEB_CONFIG": cfgFile}), WithoutSystemEnv(), WithEnvFile(""))
	require.NoError(t, err)
	require.Equal(t, "/srv/templates", cfg.Paths.Templates)

	_, err = Load(WithConfigFile(filepath.Join(dir, "missing.yaml")), WithoutSystemEnv(), WithEnvFile(""))
	require.Error(t, err)
}

func TestMissingEnvFileIsIgnored(t *testing.T) {
	_, err := Load(WithEnvFile(filepath.Join(t.TempDir(), "nope.env")), WithoutSystemEnv())
	require.NoError(t, err)
}

func TestValidateRejectsPartialEmailJS(t *testing.T) {
	cfg, err := Load(WithEnvMap(map[string]string{
		"NEXADEV_WEB_EMAILJS_SERVICE_ID": "service_x",
	}), WithoutSystemEnv(), WithEnvFile(""))
	require.NoError(t, err)

	err = cfg.Validate()
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	require.Equal(t, []string{"emailjs.public_key", "emailjs.template_id"}, verr.Fields())
}

func TestValidateProd(t *testing.T) {
	cfg, err := Load(WithEnvMap(map[string]string{
		"NEXADEV_WEB_SERVER_ENV": "PROD",
		"NEXADEV_WEB_SERVER_DEV": "1",
	}), WithoutSystemEnv(), WithEnvFile(""))
	require.NoError(t, err)
	require.True(t, cfg.Server.Prod())

	var verr *ValidationError
	require.ErrorAs(t, cfg.Validate(), &verr)
	require.Equal(t, []string{"server.dev", "server.session_signing_key"}, verr.Fields())
}
