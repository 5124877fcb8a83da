package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/giygas/medcalc/calculators"
	"github.com/giygas/medcalc/config"
	"github.com/giygas/medcalc/logging"
	"github.com/giygas/medcalc/metrics"
)

// app carries what every subcommand needs once the root command has
// loaded configuration.
type app struct {
	cfg      *config.Config
	registry *calculators.Registry

	envFile     string
	format      string
	logLevel    string
	metricsFile string
	verbose     bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the command line and returns the process exit code.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a := &app{}
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)

	if a.cfg != nil {
		if path := a.metricsPath(); path != "" {
			if werr := metrics.WriteTextfile(path); werr != nil {
				logging.Error("Failed to write metrics file", "path", path, "error", werr)
				err = errors.Join(err, werr)
			}
		}
		if cerr := logging.Close(); cerr != nil {
			fmt.Fprintf(stderr, "closing log file: %v\n", cerr)
		}
	}

	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "medcalc",
		Short:         "Clinical calculators with step-by-step explanations",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.envFile, "env-file", "", "Load environment variables from this file instead of ./.env")
	flags.StringVar(&a.format, "format", "", "Output format: text or json (default from OUTPUT_FORMAT)")
	flags.StringVar(&a.logLevel, "log-level", "", "Console log level: debug, info, warn or error")
	flags.StringVar(&a.metricsFile, "metrics-file", "", "Write Prometheus metrics to this file on exit")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "Log at info level even in the test environment")

	root.AddCommand(listCmd(a))
	root.AddCommand(computeCmd(a))
	root.AddCommand(convertCmd(a))
	root.AddCommand(batchCmd(a))
	root.AddCommand(selfcheckCmd(a))
	return root
}

// setup loads configuration, applies flag overrides and starts logging.
// Flags win over the environment.
func (a *app) setup(cmd *cobra.Command) error {
	var files []string
	if a.envFile != "" {
		files = append(files, a.envFile)
	}
	if err := config.LoadDotEnv(files...); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if a.format != "" {
		format := strings.ToLower(a.format)
		if err := config.ValidateOutputFormat(format); err != nil {
			return fmt.Errorf("invalid --format: %w", err)
		}
		cfg.OutputFormat = format
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	a.cfg = cfg

	logging.InitLogger(logging.Options{
		Env:            cfg.Env,
		Level:          cfg.LogLevel,
		Verbose:        a.verbose,
		Dir:            cfg.LogDir,
		RetentionWeeks: cfg.LogRetentionWeeks,
		MaxFileSize:    cfg.MaxLogFileSize,
		Console:        cmd.ErrOrStderr(),
	})
	logging.Debug("Configuration loaded", "env", cfg.Env.String(), "format", cfg.OutputFormat, "command", cmd.Name())

	a.registry = calculators.NewRegistry()
	return nil
}

func (a *app) metricsPath() string {
	if a.metricsFile != "" {
		return a.metricsFile
	}
	return a.cfg.MetricsFile
}

func (a *app) jsonOutput() bool {
	return a.cfg.OutputFormat == config.FormatJSON
}
