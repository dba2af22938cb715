package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	httpctx "github.com/okazarin/taskboard/internal/api/http/context"
	"github.com/okazarin/taskboard/internal/api/http/router"
	"github.com/okazarin/taskboard/internal/config"
	"github.com/okazarin/taskboard/internal/hash"
	"github.com/okazarin/taskboard/internal/logger"
	"github.com/okazarin/taskboard/internal/model"
	"github.com/okazarin/taskboard/internal/repository/file"
	"github.com/okazarin/taskboard/internal/repository/sqlite"
	"github.com/okazarin/taskboard/internal/server"
	"github.com/okazarin/taskboard/internal/service"
	"github.com/okazarin/taskboard/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	// Local development convenience; deployments provide the environment
	// directly and have no .env file.
	_ = godotenv.Load()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	userStore, taskStore, closeStores, err := buildStores(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer closeStores()

	tokenManager := token.NewJWT(cfg.JWT.Secret, cfg.JWT.TokenTTL)
	hasher := hash.NewBcrypt(cfg.Auth.BcryptCost)

	authService := service.NewAuth(userStore, hasher, tokenManager, logger)
	taskService := service.NewTask(taskStore, logger)
	ctxMgr := httpctx.NewManager()

	r := router.New(authService, taskService, tokenManager, ctxMgr, cfg.CORS.AllowedOrigins, logger)
	httpServer := server.NewHTTPServer(r.Handler(), fmt.Sprintf(":%s", cfg.HTTP.Port))

	var sl model.SecurityLayer

	if cfg.HTTP.EnableHTTPS {
		sl = server.NewTLSListener(cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address())
		err := s.Start(sl)
		if err != nil {
			logger.Error("failed to start server", "error", err)
		}
	}(httpServer)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", httpServer.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

// buildStores constructs the user and task stores for the configured
// storage driver.
func buildStores(ctx context.Context, cfg *config.Config) (model.UserStore, model.TaskStore, func(), error) {
	switch cfg.Storage.Driver {
	case "file":
		return file.NewUserRepository(cfg.Storage.DataDir), file.NewTaskRepository(cfg.Storage.DataDir), func() {}, nil
	case "sqlite":
		store, err := sqlite.Open(ctx, cfg.Storage.SQLitePath)
		if err != nil {
			return nil, nil, nil, err
		}
		return sqlite.NewUserRepository(store), sqlite.NewTaskRepository(store), func() { _ = store.Close() }, nil
	default:
		return nil, nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
