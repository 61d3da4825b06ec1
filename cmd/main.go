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

	"github.com/sessiond/sessiond/internal/api/http/handler"
	"github.com/sessiond/sessiond/internal/api/http/httpctx"
	"github.com/sessiond/sessiond/internal/api/http/router"
	"github.com/sessiond/sessiond/internal/config"
	"github.com/sessiond/sessiond/internal/logger"
	"github.com/sessiond/sessiond/internal/model"
	"github.com/sessiond/sessiond/internal/password"
	"github.com/sessiond/sessiond/internal/repository/memory"
	"github.com/sessiond/sessiond/internal/repository/postgres"
	"github.com/sessiond/sessiond/internal/server"
	"github.com/sessiond/sessiond/internal/service"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	var (
		userStore    model.UserStore
		sessionStore model.SessionStore
		pinger       handler.Pinger
	)

	if cfg.Database.DSN != "" {
		db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
		if err != nil {
			logger.Fatal("failed to initialize storage", "error", err)
		}
		defer db.Close()

		userStore = postgres.NewUserRepository(db)
		sessionStore = postgres.NewSessionRepository(db)
		pinger = db
	} else {
		logger.Info("no database DSN configured, using in-memory stores")
		memUsers := memory.NewUserStore()
		userStore = memUsers
		sessionStore = memory.NewSessionStore()
		pinger = memUsers
	}

	hasher := password.NewArgon2Hasher(password.Params{
		Time:   cfg.Argon.Time,
		MemKiB: cfg.Argon.MemKiB,
		Par:    cfg.Argon.Par,
	})

	sessionManager := service.NewSessionManager(sessionStore, logger, cfg.Session.TTL, cfg.Session.Sliding)
	authService := service.NewAuth(userStore, sessionManager, hasher, logger)
	ctxMgr := httpctx.NewManager()

	cookie := handler.CookieConfig{
		Name:   cfg.HTTP.CookieName,
		Secure: cfg.HTTP.EnableHTTPS,
		TTL:    cfg.Session.TTL,
	}

	r := router.New(authService, sessionManager, ctxMgr, pinger, cookie, logger)
	httpServer := server.NewHTTPServer(r.Register(), fmt.Sprintf(":%s", cfg.HTTP.Port))

	var sl model.SecurityLayer
	if cfg.HTTP.EnableHTTPS {
		sl = server.NewTLSListener(cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		sessionManager.RunSweeper(ctx, cfg.Session.SweepInterval)
	}()

	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address())
		if err := s.Start(sl); err != nil {
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

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
