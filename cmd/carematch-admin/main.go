// Command carematch-admin inspects the route table and the persisted browser
// state of the carematch web front.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/target/carematch-ui/config"
	"github.com/target/carematch-ui/internal/bootstrap"
	"github.com/target/carematch-ui/internal/ports"
)

// adminApp carries what every command needs. Storage is opened on first use so
// route commands work without a reachable backend.
type adminApp struct {
	cfg     config.AppConfig
	logger  *slog.Logger
	storage *bootstrap.Storage
}

func (a *adminApp) clientState(ctx context.Context, clientID string) (ports.ClientState, error) {
	if a.storage == nil {
		s, err := bootstrap.OpenStorage(ctx, bootstrap.StorageDeps{
			Storage: a.cfg.Storage,
			Redis:   a.cfg.Redis,
			Logger:  a.logger,
		})
		if err != nil {
			return ports.ClientState{}, err
		}
		a.storage = s
	}
	state, err := a.storage.ClientStates.Open(clientID)
	if err != nil {
		return ports.ClientState{}, fmt.Errorf("open client %q: %w", clientID, err)
	}
	return state, nil
}

func (a *adminApp) close() error {
	return a.storage.Close()
}

func main() {
	logger := bootstrap.InitLogger("warn")

	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		logger.ErrorContext(context.Background(), "load config", "error", err)
		os.Exit(1) //nolint:forbidigo // CLI must signal configuration load failure to shell scripts
	}
	if cfg.IsDev {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: bootstrap.ParseLogLevel(cfg.LogLevel)}))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	app := &adminApp{cfg: cfg, logger: logger}
	code := execute(ctx, app, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	if cerr := app.close(); cerr != nil {
		logger.Error("close storage", "error", cerr)
	}
	os.Exit(code) //nolint:forbidigo // CLI exit status
}

func execute(ctx context.Context, app *adminApp, args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(app)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.ExecuteContext(ctx); err != nil {
		_ = writef(stderr, "error: %v\n", err)
		return 1
	}
	return 0
}
