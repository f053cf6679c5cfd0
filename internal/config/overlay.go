// config/overlay.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const (
	EnvConfigPath = "JOBDIGEST_CONFIG"
	EnvOutputPath = "JOBDIGEST_OUTPUT"

	EnvAPIKey   = "GOOGLE_API_KEY"
	EnvEngineID = "GOOGLE_CSE_ID"

	EnvRecipient  = "RECIPIENT_EMAIL"
	EnvSMTPUser   = "SMTP_USER"
	EnvSMTPPass   = "SMTP_PASS"
	EnvSMTPServer = "SMTP_SERVER"
	EnvSMTPPort   = "SMTP_PORT"

	EnvLogLevel  = "LOG_LEVEL"
	EnvLogFormat = "LOG_FORMAT"
	EnvLogFile   = "LOG_FILE"
)

// OverlayEnv copies every non-empty variable onto cfg. Env always wins over
// the YAML file.
func OverlayEnv(cfg *Config) error {
	set := func(dst *string, name string) {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			*dst = v
		}
	}

	set(&cfg.App.OutputPath, EnvOutputPath)
	set(&cfg.Search.APIKey, EnvAPIKey)
	set(&cfg.Search.EngineID, EnvEngineID)
	set(&cfg.Mail.Recipient, EnvRecipient)
	set(&cfg.Mail.Username, EnvSMTPUser)
	set(&cfg.Mail.Host, EnvSMTPServer)
	set(&cfg.Log.Level, EnvLogLevel)
	set(&cfg.Log.Format, EnvLogFormat)
	set(&cfg.Log.File, EnvLogFile)

	// passwords may legitimately start or end with spaces
	if v := os.Getenv(EnvSMTPPass); v != "" {
		cfg.Mail.Password = v
	}

	if v := strings.TrimSpace(os.Getenv(EnvSMTPPort)); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvSMTPPort, v, err)
		}
		cfg.Mail.Port = port
	}
	return nil
}

// PathFromEnv returns the YAML config path, defaulting to config.yml.
func PathFromEnv() string {
	if p := strings.TrimSpace(os.Getenv(EnvConfigPath)); p != "" {
		return p
	}
	return "config.yml"
}
