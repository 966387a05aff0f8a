package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"printsize/config"
	"printsize/imageprocessor"
	"printsize/logging"
	"printsize/printsize"
	"printsize/quality"
	"printsize/resample"
	"printsize/signalhandler"
)

const (
	exitOK                = 0
	exitFileNotFound      = 1
	exitUnsupportedFormat = 2
	exitInvalidParameter  = 3
	exitFailure           = 4
)

// errInvalidParameter marks bad flag values and bad configuration
var errInvalidParameter = errors.New("invalid parameter")

// commandError wraps failures returned by a command's own code, as opposed to
// errors cobra raises while parsing the command line
type commandError struct {
	err error
}

func (e *commandError) Error() string { return e.err.Error() }
func (e *commandError) Unwrap() error { return e.err }

// app carries the settings shared by every subcommand
type app struct {
	cfg     config.Config
	debug   bool
	logFile string
	backend string
}

func (a *app) loadOptions() imageprocessor.LoadOptions {
	return imageprocessor.LoadOptions{Exiftool: a.cfg.Exiftool}
}

func (a *app) resampler() (quality.Resampler, error) {
	return resample.Lookup(a.cfg.Backend)
}

func main() {
	signalhandler.SetupHandler()
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	defer logging.CloseLogger()

	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.Execute()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		var ce *commandError
		if !errors.As(err, &ce) {
			fmt.Fprintf(stderr, "Run '%s --help' for usage.\n", cmd.CommandPath())
		}
	}
	return exitCode(err)
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "printsize",
		Short:         "Inspect, resize and compare images for print",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: runE(func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		}),
	}

	root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug mode (logs detailed information)")
	root.PersistentFlags().StringVar(&a.logFile, "logfile", "", "Log file path (default: printsize.log)")
	root.PersistentFlags().StringVar(&a.backend, "backend", "", fmt.Sprintf("Lanczos backend (%v)", resample.Names()))
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", errInvalidParameter, err)
	})

	root.AddCommand(
		newConvertCmd(a),
		newResizeCmd(a),
		newCompareCmd(a),
		newInfoCmd(a),
	)
	return root
}

// setup merges the environment configuration with the global flags
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("%w: %w", errInvalidParameter, err)
	}

	flags := cmd.Flags()
	if flags.Changed("debug") {
		cfg.Debug = a.debug
	}
	if flags.Changed("logfile") {
		cfg.LogFile = a.logFile
	}
	if flags.Changed("backend") {
		cfg.Backend = a.backend
	}
	if _, err := resample.Lookup(cfg.Backend); err != nil {
		return err
	}
	a.cfg = cfg

	if cfg.Debug {
		if err := logging.SetupLogger(cfg.LogFile); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: Failed to setup logging: %v\n", err)
		} else {
			fmt.Fprintf(cmd.ErrOrStderr(), "Debug mode enabled. Logging to: %s\n", cfg.LogFile)
			logging.DebugLog("Configuration: %+v", cfg)
		}
	}
	return nil
}

func runE(fn func(cmd *cobra.Command, args []string) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := fn(cmd, args); err != nil {
			logging.LogError("%s: %v", cmd.Name(), err)
			return &commandError{err: err}
		}
		return nil
	}
}

// exitCode maps an error from Execute to the process exit status
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, imageprocessor.ErrFileNotFound):
		return exitFileNotFound
	case errors.Is(err, imageprocessor.ErrUnsupportedFormat),
		errors.Is(err, quality.ErrUnsupportedColorMode):
		return exitUnsupportedFormat
	case errors.Is(err, printsize.ErrInvalidDPI),
		errors.Is(err, printsize.ErrInvalidDimension),
		errors.Is(err, imageprocessor.ErrInvalidQuality),
		errors.Is(err, resample.ErrUnknownBackend),
		errors.Is(err, errInvalidParameter):
		return exitInvalidParameter
	}

	var ce *commandError
	if !errors.As(err, &ce) {
		// unknown commands, missing required flags, wrong argument counts
		return exitInvalidParameter
	}
	return exitFailure
}
