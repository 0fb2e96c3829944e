package cmd

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"github.com/TimelordUK/mgrep/internal/config"
	"github.com/TimelordUK/mgrep/internal/dispatch"
	"github.com/TimelordUK/mgrep/internal/logger"
)

// Version is injected at build time via -ldflags
var Version = "dev"

type rootFlags struct {
	ignoreCase  bool
	lineNumbers bool
	highlight   bool
	allText     bool
	jobs        int
	configPath  string
	logLevel    string
}

// NewRootCommand creates and returns the mgrep command
func NewRootCommand() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "mgrep <query> <file>...",
		Short: "Search files for lines matching a pattern",
		Long: `mgrep prints the lines of each file that match a regular expression.

Files are searched concurrently and each file's results are printed as one
block as soon as that file is done, so blocks may appear in any order.
Defaults for every flag can be set in ` + config.GetConfigPath() + `.`,
		Version: Version,
		Args:    cobra.MinimumNArgs(1),
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, flags, args[0], args[1:])
		},
	}

	f := cmd.Flags()
	f.BoolVarP(&flags.ignoreCase, "ignore-case", "i", false, "Case insensitive search")
	f.BoolVarP(&flags.lineNumbers, "line-numbers", "l", false, "Prefix each line with its line number")
	f.BoolVarP(&flags.highlight, "highlight", "m", false, "Highlight matched text")
	f.BoolVarP(&flags.allText, "all-text", "a", false, "Print every line, highlighting matches")
	f.IntVarP(&flags.jobs, "jobs", "j", 0, "Maximum files searched at once (0 = all at once)")
	f.StringVar(&flags.configPath, "config", "", "Config file (default "+config.GetConfigPath()+")")
	f.StringVar(&flags.logLevel, "log-level", "", "Diagnostics on stderr: trace, debug, info, warn, error")

	return cmd
}

func runSearch(cmd *cobra.Command, flags *rootFlags, pattern string, paths []string) error {
	cfg, err := loadConfig(flags.configPath)
	if err != nil {
		return err
	}

	opts := resolveOptions(cmd, flags, cfg, pattern)
	if opts.MaxWorkers < 0 {
		return fmt.Errorf("--jobs must not be negative, got %d", opts.MaxWorkers)
	}

	level := cfg.Log.Level
	if cmd.Flags().Changed("log-level") {
		level = flags.logLevel
	}
	if !logger.ValidLevel(level) {
		return fmt.Errorf("unknown log level %q", level)
	}
	log := logger.NewConsoleLogger(cmd.ErrOrStderr(), level)

	runCfg, err := config.NewRunConfig(opts)
	if err != nil {
		return err
	}
	log.Debugf("pattern %q compiled as %q", pattern, runCfg.Matcher().String())

	d := dispatch.New(runCfg, cmd.OutOrStdout(), cmd.ErrOrStderr(), dispatch.WithLogger(log))
	summary, err := d.Run(paths)
	if err != nil {
		return err
	}

	log.Infof("searched %d files: %d with output, %d lines", summary.Files, summary.Matched, summary.Lines)

	var failures *multierror.Error
	if errors.As(summary.Failures, &failures) {
		log.Warnf("%d of %d files could not be searched", len(failures.Errors), summary.Files)
	}
	return nil
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load()
}

// resolveOptions starts from the config file and applies flags that were
// given on the command line
func resolveOptions(cmd *cobra.Command, flags *rootFlags, cfg *config.Config, pattern string) config.Options {
	opts := cfg.Options(pattern)
	changed := cmd.Flags().Changed

	if changed("ignore-case") {
		opts.IgnoreCase = flags.ignoreCase
	}
	if changed("line-numbers") {
		opts.LineNumbers = flags.lineNumbers
	}
	if changed("highlight") {
		opts.Highlight = flags.highlight
	}
	if changed("all-text") {
		opts.AllText = flags.allText
	}
	if changed("jobs") {
		opts.MaxWorkers = flags.jobs
	}
	return opts
}
