// Package app provides the dependency injection container for the application.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/runoshun/todo/internal/domain"
	"github.com/runoshun/todo/internal/infra/config"
	"github.com/runoshun/todo/internal/infra/crypto"
	"github.com/runoshun/todo/internal/infra/executor"
	"github.com/runoshun/todo/internal/infra/gitstore"
	"github.com/runoshun/todo/internal/infra/jsonstore"
	"github.com/runoshun/todo/internal/infra/keys"
	"github.com/runoshun/todo/internal/infra/logging"
	"github.com/runoshun/todo/internal/infra/notify"
	"github.com/runoshun/todo/internal/infra/sqlitestore"
	"github.com/runoshun/todo/internal/taskstore"
	"github.com/runoshun/todo/internal/usecase"
)

// Config holds the application paths.
type Config struct {
	Stdout     io.Writer // Destination of the terminal notifier (default os.Stdout)
	ConfigPath string    // Path to config.toml (empty = default location)
	DataDir    string    // Directory holding the snapshot, logs and prefs
}

// newConfig fills unset paths with their defaults.
func newConfig(cfg Config) Config {
	if cfg.DataDir == "" {
		cfg.DataDir = domain.DefaultDataDir()
	}
	if cfg.Stdout == nil {
		cfg.Stdout = os.Stdout
	}
	return cfg
}

// Container provides dependency injection for the application.
// It holds all port implementations and provides factory methods for use cases.
type Container struct {
	// Ports (interfaces bound to implementations)
	Persist       domain.SnapshotStore
	Inspector     domain.SnapshotInspector
	Notifier      domain.Notifier
	Clock         domain.Clock
	Executor      domain.CommandExecutor
	Editor        domain.Editor
	ConfigLoader  domain.ConfigLoader
	ConfigManager domain.ConfigManager
	Prefs         domain.PrefsStore
	FileLogger    domain.Logger

	// Pointer fields
	Store     *taskstore.Store
	AppConfig *domain.Config
	Logger    *slog.Logger

	closers []io.Closer

	// Configuration
	Config Config
}

// New creates a Container from the configuration file and the data directory.
// Variables from the env file next to the config file are applied first.
// The task collection is not loaded; call Load before using the store.
func New(cfg Config) (*Container, error) {
	configLoader := config.NewLoader(cfg.ConfigPath)
	if err := config.LoadEnvFile(config.EnvPath(configLoader.Path())); err != nil {
		return nil, err
	}
	cfg = newConfig(cfg)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	appConfig, err := configLoader.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	fileLogger := logging.New(cfg.DataDir, logging.ParseLevel(appConfig.Log.Level))
	closers := []io.Closer{fileLogger}

	persist, closer, err := openSnapshotStore(appConfig.Store, cfg.DataDir)
	if err != nil {
		return nil, errors.Join(err, closeAll(closers))
	}
	if closer != nil {
		closers = append(closers, closer)
	}

	if appConfig.Store.Encrypt {
		persist, err = sealSnapshotStore(persist, appConfig.Store, cfg.DataDir, logger)
		if err != nil {
			return nil, errors.Join(err, closeAll(closers))
		}
	}

	execClient := executor.NewClient()
	notifier, err := notify.Build(appConfig.Notify, notify.Deps{
		Out:    cfg.Stdout,
		Exec:   execClient,
		Logger: fileLogger,
	})
	if err != nil {
		return nil, errors.Join(err, closeAll(closers))
	}

	c := NewWithDeps(cfg, appConfig, persist, notifier, domain.RealClock{}, fileLogger, logger)
	c.Executor = execClient
	c.Editor = executor.NewEditor(execClient)
	c.ConfigLoader = configLoader
	c.ConfigManager = config.NewManager(configLoader.Path())
	c.closers = closers
	return c, nil
}

// NewWithDeps creates a new Container with custom dependencies for testing.
func NewWithDeps(
	cfg Config,
	appConfig *domain.Config,
	persist domain.SnapshotStore,
	notifier domain.Notifier,
	clock domain.Clock,
	fileLogger domain.Logger,
	logger *slog.Logger,
) *Container {
	cfg = newConfig(cfg)
	if appConfig == nil {
		appConfig = domain.NewDefaultConfig()
	}
	if fileLogger == nil {
		fileLogger = domain.NopLogger{}
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	inspector, _ := persist.(domain.SnapshotInspector)
	store := taskstore.New(taskstore.Deps{
		Persist:  persist,
		Notifier: notifier,
		Clock:    clock,
		Logger:   fileLogger,
	}, taskstore.OptionsFromConfig(appConfig))

	return &Container{
		Persist:    persist,
		Inspector:  inspector,
		Notifier:   notifier,
		Clock:      clock,
		Prefs:      config.NewPrefsFile(domain.PrefsPath(cfg.DataDir)),
		FileLogger: fileLogger,
		Store:      store,
		AppConfig:  appConfig,
		Logger:     logger,
		Config:     cfg,
	}
}

// openSnapshotStore opens the configured persistence backend.
// The returned closer is nil for backends without resources to release.
func openSnapshotStore(sc domain.StoreConfig, dataDir string) (domain.SnapshotStore, io.Closer, error) {
	path := sc.Location(dataDir)
	switch sc.Backend {
	case domain.BackendJSON:
		return jsonstore.New(path), nil, nil
	case domain.BackendSQLite:
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			return nil, nil, fmt.Errorf("create data directory: %w", err)
		}
		s, err := sqlitestore.New(path)
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil
	case domain.BackendGit:
		s, err := gitstore.Open(path, sc.GitRef)
		if err != nil {
			return nil, nil, err
		}
		return s, nil, nil
	default:
		return nil, nil, fmt.Errorf("%w: store backend %q", domain.ErrUnknownBackend, sc.Backend)
	}
}

// sealSnapshotStore wraps persist with AES-256-GCM sealing.
// A keyring that cannot be opened leaves the environment as the only key source.
func sealSnapshotStore(persist domain.SnapshotStore, sc domain.StoreConfig, dataDir string, logger *slog.Logger) (domain.SnapshotStore, error) {
	ring, err := keys.OpenKeyring(dataDir)
	if err != nil {
		logger.Warn("keyring unavailable", "error", err)
	}
	enc, created, err := keys.NewProvider(ring, sc.KeyName).Encryptor()
	if err != nil {
		return nil, fmt.Errorf("encryption key: %w", err)
	}
	if created {
		logger.Info("generated snapshot encryption key", "key_name", sc.KeyName)
	}
	return crypto.NewSealedStore(persist, enc), nil
}

// Load reads the task collection from the persistence backend.
func (c *Container) Load(ctx context.Context) error {
	return c.Store.Load(ctx)
}

// Close releases the log file and any open database.
func (c *Container) Close() error {
	err := closeAll(c.closers)
	c.closers = nil
	return err
}

func closeAll(closers []io.Closer) error {
	var errs []error
	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// UseCase factory methods

// NewTaskUseCase returns a new NewTask use case.
func (c *Container) NewTaskUseCase() *usecase.NewTask {
	return usecase.NewNewTask(c.Store, c.Clock)
}

// EditTaskUseCase returns a new EditTask use case.
func (c *Container) EditTaskUseCase() *usecase.EditTask {
	return usecase.NewEditTask(c.Store, c.Clock)
}

// EditTaskInEditorUseCase returns a new EditTaskInEditor use case.
func (c *Container) EditTaskInEditorUseCase() *usecase.EditTaskInEditor {
	return usecase.NewEditTaskInEditor(c.Store, c.Editor, c.Clock)
}

// ToggleTaskUseCase returns a new ToggleTask use case.
func (c *Container) ToggleTaskUseCase() *usecase.ToggleTask {
	return usecase.NewToggleTask(c.Store)
}

// DeleteTaskUseCase returns a new DeleteTask use case.
func (c *Container) DeleteTaskUseCase() *usecase.DeleteTask {
	return usecase.NewDeleteTask(c.Store)
}

// ListTasksUseCase returns a new ListTasks use case.
func (c *Container) ListTasksUseCase() *usecase.ListTasks {
	return usecase.NewListTasks(c.Store, c.Clock)
}

// ShowTaskUseCase returns a new ShowTask use case.
func (c *Container) ShowTaskUseCase() *usecase.ShowTask {
	return usecase.NewShowTask(c.Store, c.Clock)
}

// CheckRemindersUseCase returns a new CheckReminders use case.
func (c *Container) CheckRemindersUseCase() *usecase.CheckReminders {
	return usecase.NewCheckReminders(c.Store, c.Clock)
}

// ShowStatsUseCase returns a new ShowStats use case.
func (c *Container) ShowStatsUseCase() *usecase.ShowStats {
	return usecase.NewShowStats(c.Store, c.Clock)
}

// ExportTasksUseCase returns a new ExportTasks use case.
func (c *Container) ExportTasksUseCase() *usecase.ExportTasks {
	return usecase.NewExportTasks(c.Store)
}

// ImportTasksUseCase returns a new ImportTasks use case.
func (c *Container) ImportTasksUseCase() *usecase.ImportTasks {
	return usecase.NewImportTasks(c.Store)
}

// ShowConfigUseCase returns a new ShowConfig use case.
func (c *Container) ShowConfigUseCase() *usecase.ShowConfig {
	return usecase.NewShowConfig(c.ConfigManager, c.AppConfig)
}

// InitConfigUseCase returns a new InitConfig use case.
func (c *Container) InitConfigUseCase() *usecase.InitConfig {
	return usecase.NewInitConfig(c.ConfigManager)
}

// ShowLogsUseCase returns a new ShowLogs use case.
func (c *Container) ShowLogsUseCase() *usecase.ShowLogs {
	return usecase.NewShowLogs(c.Store, c.Config.DataDir)
}

// ShowStoreUseCase returns a new ShowStore use case.
func (c *Container) ShowStoreUseCase() *usecase.ShowStore {
	return usecase.NewShowStore(c.Inspector, c.AppConfig.Store, c.Config.DataDir)
}
