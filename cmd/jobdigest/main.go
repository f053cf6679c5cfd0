package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"jobdigest/internal/config"
	"jobdigest/internal/logging"
	"jobdigest/internal/poll"
	"jobdigest/internal/report"
	"jobdigest/internal/scrape/google"
	"jobdigest/internal/secrets"

	"go.uber.org/zap"
)

const usage = `usage: jobdigest [flags] [run | set-password | delete-password]

  run              search, write the CSV and email the report (default)
  set-password     read the SMTP password from stdin and store it in the OS keychain
  delete-password  remove the stored SMTP password

flags:
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("jobdigest", flag.ContinueOnError)
	fs.SetOutput(stderr)
	envFile := fs.String("env-file", ".env", "dotenv file loaded before reading the environment")
	cfgPath := fs.String("config", "", "YAML config file (default $JOBDIGEST_CONFIG or config.yml)")
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if err := config.LoadDotEnv(*envFile); err != nil {
		fmt.Fprintf(stderr, "load %s: %v\n", *envFile, err)
		return 1
	}
	if *cfgPath == "" {
		*cfgPath = config.PathFromEnv()
	}

	switch cmd := fs.Arg(0); cmd {
	case "", "run":
		return runReport(*cfgPath, stdout, stderr)
	case "set-password", "delete-password":
		return managePassword(cmd, stdin, stdout, stderr)
	default:
		fmt.Fprintf(stderr, "unknown command %q\n", cmd)
		fs.Usage()
		return 2
	}
}

func runReport(cfgPath string, stdout, stderr io.Writer) int {
	cfg, vr, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(stderr, "jobdigest: %v\n", err)
		return 1
	}

	log, err := logging.New(logging.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		File:   cfg.Log.File,
	})
	if err != nil {
		fmt.Fprintf(stderr, "jobdigest: %v\n", err)
		return 1
	}
	defer func() { _ = log.Sync() }()

	for _, w := range vr.Warnings {
		log.Warn("config warning", zap.String("warning", w))
	}

	mailer, err := report.NewMailer(report.MailConfig{
		Host:     cfg.Mail.Host,
		Port:     cfg.Mail.Port,
		Username: cfg.Mail.Username,
		Password: cfg.Mail.Password,
		To:       cfg.Mail.Recipient,
	})
	if err != nil {
		fmt.Fprintf(stderr, "jobdigest: %v\n", err)
		return 1
	}

	client := google.New(google.Config{
		Endpoint: cfg.Search.Endpoint,
		APIKey:   cfg.Search.APIKey,
		EngineID: cfg.Search.EngineID,
		Region:   cfg.Search.Region,
		Timeout:  time.Duration(cfg.Search.TimeoutSeconds) * time.Second,
	})

	rep := report.New(mailer, report.Options{
		OutputPath: cfg.App.OutputPath,
		Heading:    cfg.Report.Heading,
		TopN:       cfg.Report.TopN,
	}, log)

	ctx := context.Background()
	searchDeadline := time.Duration(cfg.App.SearchDeadlineSeconds) * time.Second

	log.Info("starting run", zap.Int("queries", len(cfg.Search.Queries)), zap.String("output", cfg.App.OutputPath))
	sent, err := poll.RunOnce(ctx, client, cfg.Search.Queries, rep, searchDeadline, log)
	if err != nil {
		log.Error("run failed", zap.Error(err))
		fmt.Fprintf(stderr, "jobdigest: %v\n", err)
		return 1
	}

	if sent == 0 {
		fmt.Fprintln(stdout, "No results; notice sent.")
	} else {
		fmt.Fprintln(stdout, "Report sent.")
	}
	return 0
}

// managePassword works on a partial config: only SMTP_USER (and SMTP_SERVER)
// are needed to name the keychain entry.
func managePassword(cmd string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg := config.Default()
	if err := config.OverlayEnv(&cfg); err != nil {
		fmt.Fprintf(stderr, "jobdigest: %v\n", err)
		return 1
	}
	acct := secrets.SMTPKeyringAccount(cfg.Mail.Username, cfg.Mail.Host)
	if acct == "" {
		fmt.Fprintf(stderr, "jobdigest: %s must be set to name the keychain entry\n", config.EnvSMTPUser)
		return 1
	}

	if cmd == "delete-password" {
		if err := secrets.DeleteSMTPPassword(cfg.Mail.Username, cfg.Mail.Host); err != nil {
			fmt.Fprintf(stderr, "jobdigest: delete password: %v\n", err)
			return 1
		}
		fmt.Fprintf(stdout, "Deleted SMTP password for %s.\n", acct)
		return 0
	}

	line, err := bufio.NewReader(stdin).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		fmt.Fprintf(stderr, "jobdigest: read password: %v\n", err)
		return 1
	}
	if err := secrets.SetSMTPPassword(cfg.Mail.Username, cfg.Mail.Host, strings.TrimRight(line, "\r\n")); err != nil {
		fmt.Fprintf(stderr, "jobdigest: store password: %v\n", err)
		return 1
	}
	fmt.Fprintf(stdout, "Stored SMTP password for %s.\n", acct)
	return 0
}
