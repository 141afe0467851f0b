// Package config provides CLI configuration and application logic for binder.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/mazrean/binder/internal/bindcheck"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// ErrBindingErrors is returned by check when error diagnostics were found.
var ErrBindingErrors = errors.New("binding errors found")

// CLI is the root command configuration with subcommands.
type CLI struct {
	LogLevel string           `kong:"short='l',help='Log level',enum='debug,info,warn,error',default='info',env='BINDER_LOG_LEVEL'"`
	Dir      string           `kong:"short='C',help='Directory to resolve package patterns from',type='existingdir',default='.'"`
	Check    CheckCmd         `kong:"cmd,default='withargs',help='Check binding declarations (default)'"`
	List     ListCmd          `kong:"cmd,help='List binding declarations'"`
	Version  kong.VersionFlag `kong:"short='v',help='Show version and exit.'"`

	stdout io.Writer `kong:"-"`
}

// CheckCmd is the default command for checking binding declarations.
type CheckCmd struct {
	Format   string   `kong:"short='f',help='Output format',enum='text,json',default='text'"`
	Patterns []string `kong:"arg,optional,help='Go package patterns to check',default='./...'"`
}

// Run executes the check command.
func (c *CheckCmd) Run(cli *CLI) error {
	setupLogger(cli.LogLevel)

	slog.Info("Checking binding declarations", "patterns", c.Patterns)

	report, err := bindcheck.NewChecker(cli.Dir).Check(c.Patterns...)
	if err != nil {
		return err
	}

	if err := bindcheck.WriteDiagnostics(cli.output(), report, bindcheck.Format(c.Format)); err != nil {
		return err
	}

	if report.HasErrors() {
		return ErrBindingErrors
	}

	slog.Info("Binding check completed", "declarations", len(report.Declarations), "diagnostics", len(report.Diagnostics))

	return nil
}

// ListCmd is the command for listing binding declarations.
type ListCmd struct {
	Format   string   `kong:"short='f',help='Output format',enum='text,json',default='text'"`
	Patterns []string `kong:"arg,optional,help='Go package patterns to list',default='./...'"`
}

// Run executes the list command.
func (c *ListCmd) Run(cli *CLI) error {
	setupLogger(cli.LogLevel)

	slog.Debug("Listing binding declarations", "patterns", c.Patterns)

	report, err := bindcheck.NewChecker(cli.Dir).Check(c.Patterns...)
	if err != nil {
		return err
	}

	return bindcheck.WriteDeclarations(cli.output(), report, bindcheck.Format(c.Format))
}

func (cli *CLI) output() io.Writer {
	if cli.stdout == nil {
		return os.Stdout
	}

	return cli.stdout
}

func Run() error {
	var cli CLI
	kongCtx := kong.Parse(&cli, options()...)

	return kongCtx.Run(&cli)
}

func options() []kong.Option {
	return []kong.Option{
		kong.Name("binder"),
		kong.Description("Checks and lists service binding declarations"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": fmt.Sprintf("%s (%s) released on %s", version, commit, date),
		},
	}
}

func setupLogger(level string) {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(level),
	})
	logger := slog.New(handler)
	slog.SetDefault(logger)
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
