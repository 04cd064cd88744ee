package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"example.com/branch-cart/app/internal/config"
	dombranch "example.com/branch-cart/app/internal/domain/branch"
	domproduct "example.com/branch-cart/app/internal/domain/product"
	"example.com/branch-cart/app/internal/infra/messaging"
	"example.com/branch-cart/app/internal/infra/persistence/memory"
	"example.com/branch-cart/app/internal/infra/persistence/mysql"
	"example.com/branch-cart/app/internal/infra/persistence/postgres"
	"example.com/branch-cart/app/internal/infra/security"
	httpapi "example.com/branch-cart/app/internal/interface/http"
	branchuc "example.com/branch-cart/app/internal/usecase/branch"
	productuc "example.com/branch-cart/app/internal/usecase/product"
	sessionuc "example.com/branch-cart/app/internal/usecase/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	products, branches, err := loadCatalog(ctx, cfg)
	if err != nil {
		logger.Fatal("load catalog", zap.String("source", cfg.CatalogSource), zap.Error(err))
	}
	productRepo, err := memory.NewProductRepository(products)
	if err != nil {
		logger.Fatal("product catalog", zap.Error(err))
	}
	branchRepo, err := memory.NewBranchRepository(branches)
	if err != nil {
		logger.Fatal("branch directory", zap.Error(err))
	}
	logger.Info("catalog loaded",
		zap.String("source", cfg.CatalogSource),
		zap.Int("products", len(products)),
		zap.Int("branches", len(branches)),
	)

	sessions := sessionuc.NewManager(sessionuc.Config{
		TTL:            cfg.SessionTTL,
		RememberBranch: cfg.RememberBranch,
		Logger:         logger,
		NewOutbox: func(l *zap.Logger) sessionuc.Outbox {
			return messaging.NewClientDispatcher(cfg.MessagingLinkBase, l)
		},
	})

	api := httpapi.NewAPI(httpapi.Dependencies{
		ProductService: productuc.NewService(productRepo),
		BranchService:  branchuc.NewService(branchRepo),
		Sessions:       sessions,
		TokenService:   security.NewSessionTokenService(cfg.SessionSecret, cfg.SessionTTL),
		Logger:         logger,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           api.Router(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown", zap.Error(err))
		}
	}()

	logger.Info("listening", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("serve", zap.Error(err))
	}
	logger.Info("stopped")
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// loadCatalog reads products and branches once; they stay read-only afterwards.
func loadCatalog(ctx context.Context, cfg config.Config) ([]domproduct.Product, []dombranch.Branch, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	switch cfg.CatalogSource {
	case config.CatalogMySQL:
		db, err := mysql.Open(ctx, cfg.MySQLDSN)
		if err != nil {
			return nil, nil, err
		}
		defer db.Close()
		loader := mysql.NewCatalogLoader(db)
		products, err := loader.LoadProducts(ctx)
		if err != nil {
			return nil, nil, err
		}
		branches, err := loader.LoadBranches(ctx)
		if err != nil {
			return nil, nil, err
		}
		return products, branches, nil

	case config.CatalogPostgres:
		conn, err := postgres.Connect(ctx, cfg.PGDSN)
		if err != nil {
			return nil, nil, err
		}
		defer conn.Close(context.Background())
		loader := postgres.NewCatalogLoader(conn)
		products, err := loader.LoadProducts(ctx)
		if err != nil {
			return nil, nil, err
		}
		branches, err := loader.LoadBranches(ctx)
		if err != nil {
			return nil, nil, err
		}
		return products, branches, nil

	case config.CatalogEmbedded:
		products, err := memory.BundledProducts()
		if err != nil {
			return nil, nil, err
		}
		branches, err := memory.BundledBranches()
		if err != nil {
			return nil, nil, err
		}
		return products, branches, nil
	}
	return nil, nil, fmt.Errorf("unknown catalog source %q", cfg.CatalogSource)
}
