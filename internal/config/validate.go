package config

import (
	"fmt"
	"net/mail"
	"net/url"
	"strings"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate returns a normalized copy of cfg and the problems found.
// Required credentials are checked separately by MissingRequired.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	var out = cfg
	var res Validation

	// Queries keep their order; only blanks and exact repeats are dropped.
	trimList := func(xs []string) []string {
		seen := map[string]bool{}
		var ys []string
		for _, x := range xs {
			x = strings.TrimSpace(x)
			if x == "" || seen[x] {
				continue
			}
			seen[x] = true
			ys = append(ys, x)
		}
		return ys
	}

	out.Search.Queries = trimList(out.Search.Queries)
	out.Search.Region = strings.ToLower(strings.TrimSpace(out.Search.Region))
	out.Mail.Host = strings.TrimSpace(out.Mail.Host)
	out.Log.Level = strings.ToLower(strings.TrimSpace(out.Log.Level))
	out.Log.Format = strings.ToLower(strings.TrimSpace(out.Log.Format))

	// ---- search ----
	if len(out.Search.Queries) == 0 {
		res.addErr("search.queries must have at least 1 query")
	}
	if u, err := url.Parse(out.Search.Endpoint); err != nil || u.Scheme == "" || u.Host == "" {
		res.addErr("search.endpoint must be an absolute URL, got %q", out.Search.Endpoint)
	}
	if out.Search.TimeoutSeconds <= 0 {
		res.addErr("search.timeout_seconds must be > 0")
	}
	if len(out.Search.Queries) > 20 {
		res.addWarn("search.queries has %d entries; every query costs one API call per run.", len(out.Search.Queries))
	}

	// ---- mail ----
	if out.Mail.Host == "" {
		res.addErr("mail.host is required")
	}
	if out.Mail.Port <= 0 || out.Mail.Port > 65535 {
		res.addErr("mail.port must be 1..65535")
	}
	if out.Mail.Recipient != "" {
		if _, err := mail.ParseAddressList(out.Mail.Recipient); err != nil {
			res.addErr("%s is not a valid address or comma-separated address list: %q", EnvRecipient, out.Mail.Recipient)
		}
	}
	if out.Mail.Username != "" && !strings.Contains(out.Mail.Username, "@") {
		res.addWarn("%s %q is not an email address; it is also used as the From header.", EnvSMTPUser, out.Mail.Username)
	}

	// ---- app / report ----
	if strings.TrimSpace(out.App.OutputPath) == "" {
		res.addErr("app.output_path is required")
	}
	if out.App.SearchDeadlineSeconds <= 0 {
		res.addErr("app.search_deadline_seconds must be > 0")
	}
	if out.Report.TopN <= 0 {
		res.addErr("report.top_n must be > 0")
	}

	// ---- log ----
	switch out.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		res.addErr("log.level must be one of debug, info, warn, error")
	}
	if out.Log.Format != "console" && out.Log.Format != "json" {
		res.addErr("log.format must be console or json")
	}

	return out, res
}
