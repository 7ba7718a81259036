package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"beanfmt/internal/config"
	"beanfmt/internal/diag"
	"beanfmt/internal/diagfmt"
	"beanfmt/internal/driver"
	"beanfmt/internal/format"
	"beanfmt/internal/observ"
	"beanfmt/internal/source"
)

func addFormatFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.BoolP("stdin-mode", "s", false, "read a ledger from stdin and write the result to stdout")
	flags.Bool("check", false, "report files that would change, write nothing")
	flags.Bool("stdout", false, "print formatted files instead of rewriting them")
	flags.Bool("backup", true, "copy each file before rewriting it")
	flags.Bool("no-backup", false, "do not write backups")
	flags.String("backup-suffix", config.Default().BackupSuffix, "suffix for backup files")
	flags.String("config", "", "config file (default: .beanfmt.toml or .beanfmt.yaml found upwards)")
	flags.String("env-file", "", "dotenv file loaded before reading BEANFMT_* variables")
	flags.Int("indent", config.Default().IndentWidth, "indent width for postings and metadata")
	flags.Int("padding", config.Default().Padding, "minimum spaces between a label and its amount")
	flags.IntP("jobs", "j", 0, "files formatted in parallel (0: GOMAXPROCS)")
	flags.Bool("cache", false, "skip files already known to be formatted")
	flags.Bool("clear-cache", false, "drop every cached result before formatting")
	flags.String("ui", "auto", "progress UI (auto|on|off)")
	cmd.MarkFlagsMutuallyExclusive("check", "stdout")
	cmd.MarkFlagsMutuallyExclusive("backup", "no-backup")
}

// resolveConfig applies defaults, the config file, the environment and then
// the flags the user actually set.
func resolveConfig(cmd *cobra.Command) (config.Config, error) {
	flags := cmd.Flags()
	configPath, err := flags.GetString("config")
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to get config flag: %w", err)
	}
	envFile, err := flags.GetString("env-file")
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to get env-file flag: %w", err)
	}
	cfg, err := config.Load(config.LoadOptions{ConfigPath: configPath, EnvFile: envFile})
	if err != nil {
		return config.Config{}, err
	}

	if flags.Changed("indent") {
		if cfg.IndentWidth, err = flags.GetInt("indent"); err != nil {
			return config.Config{}, err
		}
	}
	if flags.Changed("padding") {
		if cfg.Padding, err = flags.GetInt("padding"); err != nil {
			return config.Config{}, err
		}
	}
	if flags.Changed("backup-suffix") {
		if cfg.BackupSuffix, err = flags.GetString("backup-suffix"); err != nil {
			return config.Config{}, err
		}
	}
	if flags.Changed("backup") {
		if cfg.Backup, err = flags.GetBool("backup"); err != nil {
			return config.Config{}, err
		}
	}
	if noBackup, _ := flags.GetBool("no-backup"); noBackup {
		cfg.Backup = false
	}
	if flags.Changed("jobs") {
		if cfg.Jobs, err = flags.GetInt("jobs"); err != nil {
			return config.Config{}, err
		}
		if cfg.Jobs == 0 {
			cfg.Jobs = config.Default().Jobs
		}
	}
	if flags.Changed("cache") {
		if cfg.Cache, err = flags.GetBool("cache"); err != nil {
			return config.Config{}, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func runFormat(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	stdinMode, _ := flags.GetBool("stdin-mode")
	if len(args) == 1 && args[0] == "-" {
		stdinMode = true
		args = nil
	}
	if stdinMode && len(args) > 0 {
		return errors.New("stdin mode takes no file arguments")
	}
	if !stdinMode && len(args) == 0 {
		return errors.New("no input files (use - or --stdin-mode to read stdin)")
	}

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer cleanup()
	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer stopProfiling()

	check, _ := flags.GetBool("check")
	toStdout, _ := flags.GetBool("stdout")
	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	showTimings, _ := cmd.Root().PersistentFlags().GetBool("timings")
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	colorFlag, _ := cmd.Root().PersistentFlags().GetString("color")
	colorMode, err := readColorMode(colorFlag)
	if err != nil {
		return err
	}
	uiFlag, _ := flags.GetString("ui")
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}

	var timer *observ.Timer
	if showTimings {
		timer = observ.NewTimer()
	}
	opts := driver.Options{
		Format: format.Options{
			IndentWidth: cfg.IndentWidth,
			Padding:     cfg.Padding,
		},
		Check:          check,
		Stdout:         toStdout,
		Backup:         cfg.Backup,
		BackupSuffix:   cfg.BackupSuffix,
		Jobs:           cfg.Jobs,
		MaxDiagnostics: maxDiagnostics,
		Timer:          timer,
	}
	if clearCache, _ := flags.GetBool("clear-cache"); clearCache {
		cache, err := driver.OpenCache("beanfmt")
		if err == nil {
			err = cache.DropAll()
		}
		if err != nil {
			return fmt.Errorf("clear cache: %w", err)
		}
	}
	if cfg.Cache && !check {
		cache, err := driver.OpenCache("beanfmt")
		if err != nil {
			if !quiet {
				fmt.Fprintf(cmd.ErrOrStderr(), "beanfmt: cache disabled: %v\n", err)
			}
		} else {
			opts.Cache = cache
		}
	}

	diagFlag, _ := cmd.Root().PersistentFlags().GetString("diagnostics")
	diagKind, err := readDiagFormat(diagFlag)
	if err != nil {
		return err
	}

	rep := &reporter{
		out:    cmd.OutOrStdout(),
		err:    cmd.ErrOrStderr(),
		color:  resolveMode(colorMode, os.Stderr),
		quiet:  quiet,
		check:  check,
		format: diagKind,
		max:    maxDiagnostics,
	}

	var results []driver.FileResult
	if stdinMode {
		res := driver.FormatStdin(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), opts)
		results = []driver.FileResult{res}
		// stdout занят результатом
		rep.quiet = true
	} else {
		files, err := driver.CollectFiles(cmd.Context(), args)
		if err != nil {
			return err
		}
		if !toStdout && !quiet && len(files) > 1 && shouldUseTUI(mode) {
			results, err = runFormatWithUI(cmd.Context(), "beanfmt", files, opts)
		} else {
			results, err = driver.FormatPaths(cmd.Context(), files, opts)
		}
		if err != nil {
			return err
		}
	}

	failed := rep.report(results)
	if timer != nil {
		fmt.Fprint(cmd.ErrOrStderr(), timer.Summary())
	}
	if failed {
		return errReported
	}
	return nil
}

// reporter prints per-file outcomes.
type reporter struct {
	out    io.Writer
	err    io.Writer
	color  bool
	quiet  bool
	check  bool
	format diagFormat
	max    int
	json   diagfmt.Report
}

// report returns true when the run must exit non-zero: a file failed, or
// --check found a file that is not canonical.
func (r *reporter) report(results []driver.FileResult) bool {
	failed := false
	for _, res := range results {
		switch {
		case res.Err != nil:
			failed = true
			r.printError(res)
		case res.Formatted != nil:
			_, _ = r.out.Write(res.Formatted)
		case r.check && res.Changed:
			failed = true
			fmt.Fprintf(r.out, "%s: not formatted\n", res.Path)
		case res.Changed && !r.quiet:
			if res.Backup != "" {
				fmt.Fprintf(r.out, "reformatted %s (backup %s)\n", res.Path, res.Backup)
			} else {
				fmt.Fprintf(r.out, "reformatted %s\n", res.Path)
			}
		}
	}
	if r.format == diagJSON && r.json.Count > 0 {
		_ = r.json.Encode(r.err)
	}
	return failed
}

func (r *reporter) printError(res driver.FileResult) {
	if res.Diagnostics == nil || res.Diagnostics.Len() == 0 {
		fmt.Fprintf(r.err, "beanfmt: %v\n", res.Err)
		return
	}
	printDiagnostics(r.err, res.Diagnostics, res.FileSet, r.format, r.color, r.max, &r.json)
}

type diagFormat string

const (
	diagPretty diagFormat = "pretty"
	diagShort  diagFormat = "short"
	diagJSON   diagFormat = "json"
)

func readDiagFormat(value string) (diagFormat, error) {
	switch f := diagFormat(strings.ToLower(strings.TrimSpace(value))); f {
	case diagPretty, diagShort, diagJSON:
		return f, nil
	case "":
		return diagPretty, nil
	default:
		return "", fmt.Errorf("invalid --diagnostics value %q (expected pretty|short|json)", value)
	}
}

// printDiagnostics renders bag in the chosen format. JSON diagnostics are
// collected into report and written once by the caller.
func printDiagnostics(w io.Writer, bag *diag.Bag, fs *source.FileSet, kind diagFormat, useColor bool, maxItems int, report *diagfmt.Report) {
	switch kind {
	case diagJSON:
		report.Add(bag, fs, diagfmt.JSONOpts{Max: maxItems, IncludeNotes: true})
	case diagShort:
		fmt.Fprintln(w, diag.FormatShortDiagnostics(bag.Items(), fs, true))
	default:
		diagfmt.Pretty(w, bag, fs, diagfmt.PrettyOpts{
			Color:     useColor,
			Context:   1,
			ShowNotes: true,
		})
	}
}
