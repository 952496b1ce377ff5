package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/cabinet"
	"github.com/fwojciec/cabinet/filing"
	"github.com/fwojciec/cabinet/fs"
	cabslog "github.com/fwojciec/cabinet/slog"
	"github.com/fwojciec/cabinet/sqlite"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	FilingService cabinet.FilingService
	ConfigService cabinet.ConfigService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("cabinet"),
		kong.Description("A content-addressed filing cabinet for local files."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'cabinet --help' to see available commands")
	}

	switch args[0] {
	case "help", "--help", "-h":
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		fmt.Fprintf(stderr, "error: %s\n", err)
		return err
	}

	if dir := filepath.Dir(m.DBPath); dir != "" {
		_ = os.MkdirAll(dir, 0755)
	}
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set CABINET_DB to use a different database path\n")
		fmt.Fprintf(stderr, "error: failed to open database at %q: %s\n", m.DBPath, err)
		return err
	}
	defer m.Close()

	config := sqlite.NewConfigService(m.DB)
	if err := config.Seed(ctx, cabinet.DefaultConfig()); err != nil {
		fmt.Fprintf(stderr, "error: %s\n", cabinet.ErrorMessage(err))
		return err
	}

	svc := &filing.Service{
		Files:        sqlite.NewFileService(m.DB),
		Incarnations: sqlite.NewIncarnationService(m.DB),
		Config:       config,
		FS:           fs.NewFileSystem(),
		Recorder:     sqlite.NewCheckinRecorder(m.DB),
		Writer:       fs.NewCheckoutWriter(cli.Checkout.Force),
	}

	m.ConfigService = config
	m.FilingService = svc
	if cli.Verbose {
		logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
		m.ConfigService = cabslog.NewLoggingConfigService(config, logger)
		m.FilingService = cabslog.NewLoggingFilingService(svc, logger)
	}

	deps.Filing = m.FilingService
	deps.Config = m.ConfigService

	return kongCtx.Run(deps)
}

func defaultDBPath() string {
	if path := os.Getenv("CABINET_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "cabinet.db"
	}
	return filepath.Join(home, ".cabinet", "cabinet.db")
}
