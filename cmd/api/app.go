package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	_ "github.com/hugohenrick/erp-condominio/docs"
	"github.com/hugohenrick/erp-condominio/internal/adapter/api/controller"
	"github.com/hugohenrick/erp-condominio/internal/adapter/api/route"
	"github.com/hugohenrick/erp-condominio/internal/app"
	"github.com/hugohenrick/erp-condominio/internal/config"
	"github.com/hugohenrick/erp-condominio/internal/worker"
	"github.com/hugohenrick/erp-condominio/pkg/auth"
	"github.com/hugohenrick/erp-condominio/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

// App representa a aplicação e suas dependências
type App struct {
	cfg     *config.Config
	log     logger.Logger
	router  *gin.Engine
	server  *http.Server
	repos   *app.Repositories
	aging   *worker.AgingWorker
	release func()
}

// NewApp cria uma nova instância do aplicativo
func NewApp(cfg *config.Config, log logger.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Configurar armazenamento
	repos, err := app.OpenRepositories(ctx, cfg, true, log)
	if err != nil {
		return nil, err
	}

	keys, release, err := app.OpenIdempotency(ctx, cfg, log)
	if err != nil {
		repos.Close()
		return nil, err
	}

	tokens, err := auth.NewJWTService(cfg.JWT.SecretKey, cfg.JWT.Expiration)
	if err != nil {
		release()
		repos.Close()
		return nil, err
	}

	services := app.NewServices(cfg.Ledger, repos, keys, tokens, log)

	// Configurar router com modo correto
	gin.SetMode(cfg.Server.GinMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(logger.GinMiddleware(log))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", controller.IdempotencyKeyHeader},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	route.Setup(router, cfg.Server.BasePath, controllers(cfg, services, tokens, log), auth.JWTAuthMiddleware(tokens, repos.Users))

	return &App{
		cfg:    cfg,
		log:    log,
		router: router,
		server: &http.Server{
			Addr:         ":" + cfg.Server.Port,
			Handler:      router,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
			IdleTimeout:  cfg.Server.IdleTimeout,
		},
		repos:   repos,
		aging:   worker.NewAgingWorker(services.Aging, cfg.Ledger.AgingInterval, log),
		release: release,
	}, nil
}

func controllers(cfg *config.Config, s *app.Services, tokens *auth.JWTService, log logger.Logger) route.Controllers {
	location := cfg.Ledger.Location
	blocks := controller.NewBlockController(s.Blocks, log)
	return route.Controllers{
		Auth:         controller.NewAuthController(s.Users, tokens.Expiration(), log),
		User:         controller.NewUserController(s.Users, log),
		Association:  controller.NewAssociationController(s.Associations, log),
		Block:        blocks,
		Apartment:    controller.NewApartmentController(s.Apartments, log),
		Expense:      controller.NewExpenseController(s.Expenses, s.Aging, location, log),
		Payment:      controller.NewPaymentController(s.Payments, log),
		Meter:        controller.NewMeterController(s.Meters, location, log),
		Announcement: controller.NewAnnouncementController(s.Announcements, log),
		Repair:       controller.NewRepairController(s.Repairs, log),
		Dashboard:    controller.NewDashboardController(s.Dashboard, s.Reports, log),
	}
}

// Start inicia o servidor e a rotina de vencimentos e bloqueia até receber
// SIGINT ou SIGTERM
func (a *App) Start() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.aging.Start()

	serverErr := make(chan error, 1)
	go func() {
		a.log.Info("servidor iniciado", "addr", a.server.Addr, "storage", a.cfg.Storage)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	var runErr error
	select {
	case <-ctx.Done():
		a.log.Info("sinal de encerramento recebido")
	case runErr = <-serverErr:
	}

	return errors.Join(runErr, a.shutdown())
}

func (a *App) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err := a.server.Shutdown(ctx)
	a.aging.Shutdown()
	a.release()
	a.repos.Close()
	a.log.Info("servidor encerrado")
	return err
}
