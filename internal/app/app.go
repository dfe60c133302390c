package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lawfirm-cms/internal/cache"
	"lawfirm-cms/internal/config"
	"lawfirm-cms/internal/database"
	"lawfirm-cms/internal/handler"
	"lawfirm-cms/internal/middleware"
	"lawfirm-cms/internal/observability"
	"lawfirm-cms/internal/repository"
	"lawfirm-cms/internal/router"
	"lawfirm-cms/internal/service"
	"lawfirm-cms/internal/storage"
)

// App owns the wired components and their shutdown order.
type App struct {
	cfg     *config.Config
	server  *http.Server
	cleanup []func()

	cancelJanitor context.CancelFunc
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{cfg: cfg}

	flushSentry, err := observability.InitSentry(cfg.SentryDSN, cfg.Environment)
	if err != nil {
		return nil, fmt.Errorf("init sentry: %w", err)
	}
	a.cleanup = append(a.cleanup, flushSentry)

	db, err := database.New(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		a.runCleanup()
		return nil, err
	}
	a.cleanup = append(a.cleanup, db.Close)

	if err := db.EnsureSchema(ctx); err != nil {
		a.runCleanup()
		return nil, err
	}

	c := cache.New(cfg.CacheDefaultTTL)
	janitorCtx, cancelJanitor := context.WithCancel(context.Background())
	a.cancelJanitor = cancelJanitor
	go c.StartJanitor(janitorCtx, cfg.CacheSweepInterval)

	files, err := storage.New(cfg.UploadRoot)
	if err != nil {
		a.runCleanup()
		return nil, err
	}

	userRepo := repository.NewUserRepository(db.Pool)
	blogRepo := repository.NewBlogRepository(db.Pool)
	areaRepo := repository.NewPracticeAreaRepository(db.Pool)
	teamRepo := repository.NewTeamRepository(db.Pool)
	pageRepo := repository.NewPageRepository(db.Pool)
	subscriberRepo := repository.NewSubscriberRepository(db.Pool)
	inquiryRepo := repository.NewInquiryRepository(db.Pool)
	auditRepo := repository.NewAuditRepository(db.Pool)

	auditSvc := service.NewAuditService(auditRepo)

	authSvc, err := service.NewAuthService(userRepo, c, cfg.JWTSecret, cfg.JWTTTL, cfg.LoginMaxAttempts, cfg.LockoutWindow)
	if err != nil {
		a.runCleanup()
		return nil, err
	}

	blogSvc := service.NewBlogService(blogRepo, c, auditSvc)
	areaSvc := service.NewPracticeAreaService(areaRepo, c, auditSvc)
	teamSvc := service.NewTeamService(teamRepo, c, auditSvc)
	pageSvc := service.NewPageService(pageRepo, c, auditSvc)
	subscriberSvc := service.NewSubscriberService(subscriberRepo, auditSvc)
	inquirySvc := service.NewInquiryService(inquiryRepo, auditSvc)
	uploadSvc := service.NewUploadService(files, cfg.MaxUploadSize, auditSvc)

	authMW := middleware.NewAuthMiddleware(authSvc)

	routes := router.New(router.Handlers{
		Health:        handler.NewHealthHandler(db, c),
		Auth:          handler.NewAuthHandler(authSvc),
		Blogs:         handler.NewBlogHandler(blogSvc),
		PracticeAreas: handler.NewPracticeAreaHandler(areaSvc),
		Team:          handler.NewTeamHandler(teamSvc),
		Pages:         handler.NewPageHandler(pageSvc),
		Subscribers:   handler.NewSubscriberHandler(subscriberSvc),
		Inquiries:     handler.NewInquiryHandler(inquirySvc),
		Uploads:       handler.NewUploadHandler(uploadSvc, cfg.MaxUploadSize),
		Audit:         handler.NewAuditHandler(auditSvc),
	}, authMW, router.Options{
		CORSOrigins:      cfg.CORSOrigins,
		RateLimitRPM:     cfg.RateLimitRPM,
		AuthRateLimitRPM: cfg.AuthRateLimitRPM,
		RequestTimeout:   cfg.RequestTimeout,
		UploadDir:        files.RootAbs(),
	})

	a.server = &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           routes,
		ReadHeaderTimeout: cfg.ServerReadHeaderTimeout,
		WriteTimeout:      cfg.ServerWriteTimeout,
		IdleTimeout:       cfg.ServerIdleTimeout,
	}

	return a, nil
}

// Run serves until SIGINT/SIGTERM, then drains in-flight requests.
func (a *App) Run() error {
	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", a.server.Addr, "environment", a.cfg.Environment)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		a.Shutdown()
		return err
	case sig := <-stop:
		slog.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	err := a.server.Shutdown(ctx)
	a.Shutdown()
	return err
}

// Shutdown releases resources in reverse construction order.
func (a *App) Shutdown() {
	if a.cancelJanitor != nil {
		a.cancelJanitor()
		a.cancelJanitor = nil
	}
	a.runCleanup()
}

func (a *App) runCleanup() {
	for i := len(a.cleanup) - 1; i >= 0; i-- {
		a.cleanup[i]()
	}
	a.cleanup = nil
}
