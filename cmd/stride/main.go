package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/fang"
	charmLog "github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/stride-tracker/stride/internal/adapters/server"
	"github.com/stride-tracker/stride/internal/adapters/storage/sqlite"
	"github.com/stride-tracker/stride/internal/app"
	"github.com/stride-tracker/stride/internal/config"
	"github.com/stride-tracker/stride/internal/platform"
	"github.com/stride-tracker/stride/internal/tui"
)

// version stores a package-level helper value.
var version = "dev"

// program represents program data used by this package.
type program interface {
	Run() (tea.Model, error)
}

// programFactory stores a package-level helper value.
var programFactory = func(m tea.Model) program {
	return tea.NewProgram(m)
}

// main handles main.
func main() {
	if err := fang.Execute(context.Background(), newRootCmd(os.Stdout, os.Stderr), fang.WithVersion(version)); err != nil {
		os.Exit(1)
	}
}

// rootOptions holds persistent flag values shared across subcommands.
type rootOptions struct {
	configPath string
	dbPath     string
	appName    string
	devMode    bool
	ownerID    string
}

// newRootCmd builds the stride command tree.
func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	if stdout == nil {
		stdout = io.Discard
	}
	if stderr == nil {
		stderr = io.Discard
	}

	opts := &rootOptions{appName: "stride"}
	if envApp := strings.TrimSpace(os.Getenv("STRIDE_APP_NAME")); envApp != "" {
		opts.appName = envApp
	}
	defaultDevMode := version == "dev"
	if envDev, ok := parseBoolEnv("STRIDE_DEV_MODE"); ok {
		defaultDevMode = envDev
	}
	opts.devMode = defaultDevMode

	root := &cobra.Command{
		Use:           "stride",
		Short:         "Terminal tracker for a 90-day development plan",
		Long:          "stride tracks tasks, checklists, team, learning, and progress across a 90-day development plan from the terminal.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runTUI(opts, stderr)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "path to config TOML")
	flags.StringVar(&opts.dbPath, "db", "", "path to sqlite database")
	flags.StringVar(&opts.appName, "app", opts.appName, "application name for config/data path resolution")
	flags.BoolVar(&opts.devMode, "dev", opts.devMode, "use dev mode paths (<app>-dev)")
	flags.StringVar(&opts.ownerID, "owner", "", "owner id (defaults to ui.owner_id from config)")

	root.AddCommand(
		newTUICmd(opts, stderr),
		newServeCmd(opts, stderr),
		newExportCmd(opts, stdout, stderr),
		newImportCmd(opts, stderr),
		newAdvanceCmd(opts, stdout, stderr),
		newDayCmd(opts, stdout, stderr),
		newPathsCmd(opts, stdout),
	)
	return root
}

// newTUICmd launches the interactive terminal view (the default command).
func newTUICmd(opts *rootOptions, stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Launch the interactive tracker",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runTUI(opts, stderr)
		},
	}
}

// newServeCmd exposes the HTTP API and MCP endpoint.
func newServeCmd(opts *rootOptions, stderr io.Writer) *cobra.Command {
	var bind string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API and MCP endpoint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := newRuntime(opts, stderr, true)
			if err != nil {
				return err
			}
			defer rt.close()

			serveCfg := server.Config{
				HTTPBind:      rt.cfg.Server.Bind,
				APIEndpoint:   rt.cfg.Server.APIEndpoint,
				MCPEndpoint:   rt.cfg.Server.MCPEndpoint,
				ServerName:    opts.appName,
				ServerVersion: version,
			}
			if strings.TrimSpace(bind) != "" {
				serveCfg.HTTPBind = bind
			}
			rt.logger.Info("starting server", "bind", serveCfg.HTTPBind, "api", serveCfg.APIEndpoint, "mcp", serveCfg.MCPEndpoint)
			if err := server.Run(cmd.Context(), serveCfg, rt.svc); err != nil {
				rt.logger.Error("server terminated", "err", err)
				return fmt.Errorf("run server: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&bind, "bind", "", "listen address (overrides server.bind from config)")
	return cmd
}

// newExportCmd writes the owner's full snapshot as JSON.
func newExportCmd(opts *rootOptions, stdout, stderr io.Writer) *cobra.Command {
	var outPath string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the owner's data as a JSON snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := newRuntime(opts, stderr, false)
			if err != nil {
				return err
			}
			defer rt.close()

			snap, err := rt.svc.ExportSnapshot(cmd.Context(), rt.ownerID)
			if err != nil {
				return fmt.Errorf("export snapshot: %w", err)
			}
			encoded, err := json.MarshalIndent(snap, "", "  ")
			if err != nil {
				return fmt.Errorf("encode snapshot json: %w", err)
			}
			encoded = append(encoded, '\n')

			if outPath == "-" {
				if _, err := stdout.Write(encoded); err != nil {
					return fmt.Errorf("write snapshot to stdout: %w", err)
				}
				return nil
			}
			if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
				return fmt.Errorf("create export output dir: %w", err)
			}
			if err := os.WriteFile(outPath, encoded, 0o644); err != nil {
				return fmt.Errorf("write export file: %w", err)
			}
			rt.logger.Info("snapshot exported", "owner", rt.ownerID, "path", outPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&outPath, "out", "-", "output file path ('-' for stdout)")
	return cmd
}

// newImportCmd replaces the owner's data from a JSON snapshot.
func newImportCmd(opts *rootOptions, stderr io.Writer) *cobra.Command {
	var inPath string
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import a JSON snapshot, replacing the owner's data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(inPath) == "" {
				return fmt.Errorf("--in is required")
			}
			content, err := os.ReadFile(inPath)
			if err != nil {
				return fmt.Errorf("read import file: %w", err)
			}
			var snap app.Snapshot
			if err := json.Unmarshal(content, &snap); err != nil {
				return fmt.Errorf("decode snapshot json: %w", err)
			}

			rt, err := newRuntime(opts, stderr, false)
			if err != nil {
				return err
			}
			defer rt.close()

			if err := rt.svc.ImportSnapshot(cmd.Context(), rt.ownerID, snap); err != nil {
				return fmt.Errorf("import snapshot: %w", err)
			}
			rt.logger.Info("snapshot imported", "owner", rt.ownerID, "path", inPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&inPath, "in", "", "input snapshot JSON file")
	return cmd
}

// newAdvanceCmd moves the progress pointer to a given day.
func newAdvanceCmd(opts *rootOptions, stdout, stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "advance <day>",
		Short: "Advance the plan to the given day (1-90)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("parse day %q: %w", args[0], err)
			}
			rt, err := newRuntime(opts, stderr, false)
			if err != nil {
				return err
			}
			defer rt.close()

			current, err := rt.svc.AdvanceProgress(cmd.Context(), rt.ownerID, day)
			if err != nil {
				return fmt.Errorf("advance progress: %w", err)
			}
			_, _ = fmt.Fprintf(stdout, "current day: %d\n", current)
			return nil
		},
	}
}

// newDayCmd prints the derived current day.
func newDayCmd(opts *rootOptions, stdout, stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "day",
		Short: "Print the current plan day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := newRuntime(opts, stderr, false)
			if err != nil {
				return err
			}
			defer rt.close()

			day, err := rt.svc.CurrentDay(cmd.Context(), rt.ownerID)
			if err != nil {
				return fmt.Errorf("current day: %w", err)
			}
			_, _ = fmt.Fprintf(stdout, "current day: %d\n", day)
			return nil
		},
	}
}

// newPathsCmd prints the resolved config and data locations.
func newPathsCmd(opts *rootOptions, stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "paths",
		Short: "Print resolved config and data paths",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			paths, err := resolvePaths(opts)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(stdout, "app: %s\n", opts.appName)
			_, _ = fmt.Fprintf(stdout, "dev_mode: %t\n", opts.devMode)
			_, _ = fmt.Fprintf(stdout, "config: %s\n", resolveConfigPath(opts, paths))
			_, _ = fmt.Fprintf(stdout, "data_dir: %s\n", paths.DataDir)
			_, _ = fmt.Fprintf(stdout, "db: %s\n", resolveDBPath(opts, paths))
			return nil
		},
	}
}

// runTUI wires the service into the bubbletea program loop.
func runTUI(opts *rootOptions, stderr io.Writer) error {
	rt, err := newRuntime(opts, stderr, false)
	if err != nil {
		return err
	}
	defer rt.close()

	m := tui.NewModel(
		rt.svc,
		tui.WithOwnerID(rt.ownerID),
		tui.WithActivityLimit(rt.cfg.UI.ActivityLimit),
		tui.WithShowDescriptions(rt.cfg.UI.ShowDescriptions),
	)
	rt.logger.Info("starting tui program loop", "owner", rt.ownerID)
	if _, err := programFactory(m).Run(); err != nil {
		rt.logger.Error("tui program terminated with error", "err", err)
		return fmt.Errorf("run tui program: %w", err)
	}
	return nil
}

// runtime bundles the shared command dependencies built from flags and config.
type runtime struct {
	cfg     config.Config
	logger  *charmLog.Logger
	repo    *sqlite.Repository
	svc     *app.Service
	ownerID string

	closeLog func() error
}

// close releases the runtime's repository and log sinks.
func (r *runtime) close() {
	if r == nil {
		return
	}
	if r.repo != nil {
		if err := r.repo.Close(); err != nil {
			r.logger.Warn("sqlite close failed", "err", err)
		}
	}
	if r.closeLog != nil {
		_ = r.closeLog()
	}
}

// newRuntime resolves paths and config, then opens the repository and service.
// consoleLogs keeps the console sink active; the TUI and one-shot commands
// mute it unless a log file is configured.
func newRuntime(opts *rootOptions, stderr io.Writer, consoleLogs bool) (*runtime, error) {
	paths, err := resolvePaths(opts)
	if err != nil {
		return nil, err
	}
	configPath := resolveConfigPath(opts, paths)
	dbPath := resolveDBPath(opts, paths)

	defaultCfg := config.Default(dbPath)
	cfg, err := config.Load(configPath, defaultCfg)
	if err != nil {
		return nil, fmt.Errorf("load config %q: %w", configPath, err)
	}
	if strings.TrimSpace(opts.dbPath) != "" {
		cfg.Database.Path = opts.dbPath
	}

	logger, closeLog, err := newRuntimeLogger(stderr, opts.appName, cfg.Logging, consoleLogs)
	if err != nil {
		return nil, fmt.Errorf("configure runtime logger: %w", err)
	}

	logger.Info("configuration loaded", "config_path", configPath, "db_path", cfg.Database.Path, "log_level", cfg.Logging.Level)
	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		_ = closeLog()
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	repo, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		logger.Error("sqlite open failed", "db_path", cfg.Database.Path, "err", err)
		_ = closeLog()
		return nil, fmt.Errorf("open sqlite repository: %w", err)
	}
	logger.Debug("sqlite repository ready", "db_path", cfg.Database.Path)

	ownerID := strings.TrimSpace(opts.ownerID)
	if ownerID == "" {
		ownerID = cfg.UI.OwnerID
	}

	return &runtime{
		cfg:      cfg,
		logger:   logger,
		repo:     repo,
		svc:      app.NewService(repo, uuid.NewString, nil, logger),
		ownerID:  ownerID,
		closeLog: closeLog,
	}, nil
}

// resolvePaths resolves platform config/data locations for the active app name.
func resolvePaths(opts *rootOptions) (platform.Paths, error) {
	paths, err := platform.DefaultPathsWithOptions(platform.Options{
		AppName: opts.appName,
		DevMode: opts.devMode,
	})
	if err != nil {
		return platform.Paths{}, fmt.Errorf("resolve platform paths: %w", err)
	}
	return paths, nil
}

// resolveConfigPath applies flag and env overrides over the platform default.
func resolveConfigPath(opts *rootOptions, paths platform.Paths) string {
	if v := strings.TrimSpace(opts.configPath); v != "" {
		return v
	}
	if v := strings.TrimSpace(os.Getenv("STRIDE_CONFIG")); v != "" {
		return v
	}
	return paths.ConfigPath
}

// resolveDBPath applies flag and env overrides over the platform default.
func resolveDBPath(opts *rootOptions, paths platform.Paths) string {
	if v := strings.TrimSpace(opts.dbPath); v != "" {
		return v
	}
	if v := strings.TrimSpace(os.Getenv("STRIDE_DB_PATH")); v != "" {
		return v
	}
	return paths.DBPath
}

// newRuntimeLogger configures the runtime log sink from CLI/config state.
// A configured log file wins; otherwise logs go to stderr when consoleLogs is
// set and are discarded when it is not, keeping TUI rendering clean.
func newRuntimeLogger(stderr io.Writer, appName string, cfg config.LoggingConfig, consoleLogs bool) (*charmLog.Logger, func() error, error) {
	levelName := strings.TrimSpace(cfg.Level)
	if levelName == "" {
		levelName = "info"
	}
	level, err := charmLog.ParseLevel(levelName)
	if err != nil {
		return nil, nil, fmt.Errorf("parse logging level %q: %w", cfg.Level, err)
	}
	if stderr == nil {
		stderr = io.Discard
	}

	noClose := func() error { return nil }

	if filePath := strings.TrimSpace(cfg.File); filePath != "" {
		if err := os.MkdirAll(filepath.Dir(filePath), 0o755); err != nil {
			return nil, nil, fmt.Errorf("create log dir: %w", err)
		}
		logFile, err := os.OpenFile(filePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		// Keep file output parseable and unstyled.
		fileLogger := charmLog.NewWithOptions(logFile, charmLog.Options{
			Level:           level,
			Prefix:          appName,
			ReportTimestamp: true,
			TimeFormat:      time.RFC3339,
			Formatter:       charmLog.LogfmtFormatter,
		})
		return fileLogger, logFile.Close, nil
	}

	sink := io.Writer(io.Discard)
	if consoleLogs {
		sink = stderr
	}
	consoleLogger := charmLog.NewWithOptions(sink, charmLog.Options{
		Level:           level,
		Prefix:          appName,
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Formatter:       charmLog.TextFormatter,
	})
	return consoleLogger, noClose, nil
}

// parseBoolEnv reads a boolean environment value, reporting whether it was set.
func parseBoolEnv(name string) (bool, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return false, false
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return value, true
}
