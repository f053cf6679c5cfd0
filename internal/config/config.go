// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"jobdigest/internal/secrets"

	"gopkg.in/yaml.v3"
)

// ErrMissingRequired is returned by Load when a required setting is unset.
var ErrMissingRequired = errors.New("missing required environment variables")

// RequiredEnv lists the variables a run cannot start without, in the order
// they are reported.
var RequiredEnv = []string{
	EnvAPIKey,
	EnvEngineID,
	EnvRecipient,
	EnvSMTPUser,
	EnvSMTPPass,
}

type Config struct {
	App struct {
		OutputPath            string `yaml:"output_path"`
		SearchDeadlineSeconds int    `yaml:"search_deadline_seconds"` // all queries together
	} `yaml:"app"`

	Search struct {
		Endpoint       string   `yaml:"endpoint"`
		APIKey         string   `yaml:"-"`
		EngineID       string   `yaml:"engine_id"`
		Region         string   `yaml:"region"`
		TimeoutSeconds int      `yaml:"timeout_seconds"`
		Queries        []string `yaml:"queries"`
	} `yaml:"search"`

	Mail struct {
		Host      string `yaml:"host"`
		Port      int    `yaml:"port"`
		Username  string `yaml:"username"`
		Password  string `yaml:"-"` // env or keychain only
		Recipient string `yaml:"recipient"`
	} `yaml:"mail"`

	Report struct {
		TopN    int    `yaml:"top_n"`
		Heading string `yaml:"heading"`
	} `yaml:"report"`

	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"` // console, json
		File   string `yaml:"file"`
	} `yaml:"log"`
}

func Default() Config {
	var cfg Config
	cfg.App.OutputPath = "daily_jobs_google.csv"
	cfg.App.SearchDeadlineSeconds = 600

	cfg.Search.Endpoint = "https://www.googleapis.com/customsearch/v1"
	cfg.Search.Region = "in"
	cfg.Search.TimeoutSeconds = 15
	cfg.Search.Queries = []string{
		`("entry-level" OR junior OR fresher) (cloud OR devops OR aws) jobs Chennai`,
		`("cloud engineer" OR "devops engineer") (jobs OR hiring) ("Bengaluru" OR "Chennai" OR "Hyderabad")`,
		`("entry-level" OR junior) ("Cloud Engineer" OR "SRE")`,
	}

	cfg.Mail.Host = "smtp.gmail.com"
	cfg.Mail.Port = 587

	cfg.Report.TopN = 10
	cfg.Report.Heading = "Daily Jobs Report — Entry-level Cloud/DevOps (AWS)"

	cfg.Log.Level = "info"
	cfg.Log.Format = "console"
	return cfg
}

// Load layers defaults, the optional YAML file at path and the environment,
// then resolves the SMTP password from the keychain when the env leaves it
// empty. Warnings are returned even when err is nil.
func Load(path string) (Config, Validation, error) {
	cfg := Default()

	if err := loadFile(path, &cfg); err != nil {
		return cfg, Validation{}, err
	}
	if err := OverlayEnv(&cfg); err != nil {
		return cfg, Validation{}, err
	}

	if cfg.Mail.Password == "" && cfg.Mail.Username != "" {
		if pw, err := secrets.GetSMTPPassword(cfg.Mail.Username, cfg.Mail.Host); err == nil {
			cfg.Mail.Password = pw
		}
	}

	if missing := cfg.MissingRequired(); len(missing) > 0 {
		return cfg, Validation{}, fmt.Errorf("%w: %s (unset: %s)",
			ErrMissingRequired, strings.Join(RequiredEnv, ", "), strings.Join(missing, ", "))
	}

	out, res := NormalizeAndValidate(cfg)
	if !res.OK() {
		return out, res, errors.New("config validation failed:\n- " + joinLines(res.Errors))
	}
	return out, res, nil
}

// MissingRequired returns the env names of required settings that are empty.
func (c Config) MissingRequired() []string {
	var missing []string
	check := func(name, v string) {
		if strings.TrimSpace(v) == "" {
			missing = append(missing, name)
		}
	}
	check(EnvAPIKey, c.Search.APIKey)
	check(EnvEngineID, c.Search.EngineID)
	check(EnvRecipient, c.Mail.Recipient)
	check(EnvSMTPUser, c.Mail.Username)
	check(EnvSMTPPass, c.Mail.Password)
	return missing
}

func loadFile(path string, cfg *Config) error {
	if path == "" {
		return nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func joinLines(lines []string) string {
	out := ""
	for i, s := range lines {
		if i > 0 {
			out += "\n- "
		}
		out += s
	}
	return out
}
