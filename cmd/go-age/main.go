package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"fyne.io/fyne/v2/app"
	"github.com/spf13/cobra"
	"github.com/tartampluch/go-age/internal/config"
	"github.com/tartampluch/go-age/internal/engine"
	"github.com/tartampluch/go-age/internal/ui"
)

// main is the application entry point.
// It delegates execution to runMain to ensure that deferred function calls
// (like closing log files) are executed before the process terminates.
// os.Exit() does not run defers, so we must return an integer code first.
func main() {
	os.Exit(runMain(os.Args[1:]))
}

// runMain manages the application lifecycle and exit codes.
func runMain(args []string) int {
	// Create a root context that cancels on SIGINT (Ctrl+C) or SIGTERM.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	opts := &rootOptions{}
	defer func() {
		if opts.logCloser != nil {
			_ = opts.logCloser.Close() // Best effort close
		}
	}()

	root := newRootCmd(opts)
	root.SetArgs(args)

	if err := root.ExecuteContext(ctx); err != nil {
		slog.Error(config.ErrAppFailed,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyError, err,
		)
		return config.ExitCodeError
	}

	if !opts.version {
		slog.Info(config.MsgAppStop, config.LogKeyComponent, config.CompMain)
	}
	return config.ExitCodeSuccess
}

type rootOptions struct {
	version   bool
	debug     bool
	logCloser io.Closer
}

// newRootCmd builds the command tree. Without a subcommand it starts the desktop app.
func newRootCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           config.CLIName,
		Short:         config.CmdRootShort,
		Long:          config.CmdRootLong,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if opts.version {
				return
			}
			// Keep stdout clean for encoded reports.
			console := io.Writer(os.Stdout)
			if cmd.Name() != config.CLIName {
				console = cmd.ErrOrStderr()
			}
			opts.logCloser = setupLogging(opts.debug, console)
			logStartupInfo()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.version {
				printVersion(cmd.OutOrStdout())
				return nil
			}
			return runGUI(cmd.Context())
		},
	}

	cmd.Flags().BoolVar(&opts.version, config.FlagVersion, false, config.FlagDescVersion)
	cmd.PersistentFlags().BoolVar(&opts.debug, config.FlagDebug, false, config.FlagDescDebug)
	cmd.AddCommand(newReportCmd(engine.RealClock{}))

	return cmd
}

// runGUI initializes the Fyne application, wires dependencies, and starts the UI loop.
func runGUI(ctx context.Context) error {
	a := app.NewWithID(config.AppID)

	// Record the version for potential migration logic in future updates.
	a.Preferences().SetString(config.PrefLastRun, config.Version)

	gui, err := ui.NewAgeApp(a, ctx, engine.NewCardDAVFetcher())
	if err != nil {
		return err
	}

	// Lifecycle Bridge:
	// Watch for context cancellation to quit the UI gracefully.
	go func() {
		<-ctx.Done()
		slog.Info(config.MsgCtxCancel, config.LogKeyComponent, config.CompMain)
		a.Quit()
	}()

	// Blocks until the app quits.
	gui.Run()
	return nil
}

// printVersion outputs the build information.
func printVersion(w io.Writer) {
	_, _ = fmt.Fprintf(w, config.MsgVersionOutput,
		config.AppName,
		config.Version,
		runtime.GOOS,
		runtime.GOARCH,
	)
}

// logStartupInfo logs environment details useful for debugging.
func logStartupInfo() {
	slog.Info(config.MsgAppStarting,
		config.LogKeyComponent, config.CompMain,
		slog.Group(config.LogKeyBuild,
			slog.String(config.LogKeyApp, config.AppName),
			slog.String(config.LogKeyVersion, config.Version),
			slog.String(config.LogKeyCommit, config.Commit),
			slog.String(config.LogKeyBuilt, config.Date),
			slog.String(config.LogKeyGoVer, runtime.Version()),
		),
		slog.Group(config.LogKeyEnv,
			slog.String(config.LogKeyOS, runtime.GOOS),
			slog.String(config.LogKeyArch, runtime.GOARCH),
			slog.Int(config.LogKeyPID, os.Getpid()),
		),
	)
}

// setupLogging configures the default slog logger on console plus the cache log file.
func setupLogging(debugMode bool, console io.Writer) io.Closer {
	writers := []io.Writer{console}
	var logFile *os.File

	if logPath, err := getLogFilePath(); err == nil {
		// O_TRUNC resets logs on restart to prevent indefinite growth.
		f, err := os.OpenFile(logPath, os.O_TRUNC|os.O_CREATE|os.O_WRONLY, config.FilePermUserRW)
		if err == nil {
			writers = append(writers, f)
			logFile = f
		} else {
			fmt.Fprintf(os.Stderr, config.MsgLogWarning, config.ErrLogFile, logPath, err)
		}
	}

	level := slog.LevelInfo
	if debugMode {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: debugMode,
	}

	logger := slog.New(slog.NewJSONHandler(io.MultiWriter(writers...), opts))
	slog.SetDefault(logger)

	if logFile == nil {
		return nil
	}
	return logFile
}

// getLogFilePath determines the platform-specific cache directory for logs.
func getLogFilePath() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCacheDir, err)
	}

	appDir := filepath.Join(cacheDir, config.AppID)

	// Ensure the directory exists with restricted permissions (700).
	if err := os.MkdirAll(appDir, config.DirPermUserRWX); err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCreateDir, err)
	}

	return filepath.Join(appDir, config.LogFileName), nil
}
