package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-inventory-ledger/internal/core/auth"
	"go-inventory-ledger/internal/core/cache"
	"go-inventory-ledger/internal/core/config"
	"go-inventory-ledger/internal/core/database"
	"go-inventory-ledger/internal/core/logger"
	"go-inventory-ledger/internal/domain"
	"go-inventory-ledger/internal/repo"
	"go-inventory-ledger/internal/service"
	"go-inventory-ledger/internal/transport/http/router"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	log, cleanup := logger.New(logger.Options{
		Level:      cfg.Log.Level,
		JSON:       cfg.Log.JSON,
		Filename:   cfg.Log.Filename,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
		Compress:   cfg.Log.Compress,
	})
	defer cleanup()

	// 数据库（失败直接 Fatal）
	db := mustOpenDB(cfg, log)
	log.Info("database connected", zap.String("driver", cfg.DB.Driver))

	if cfg.DB.AutoMigrate {
		if err := db.AutoMigrate(&domain.User{}, &domain.SaleRecord{}, &domain.PurchaseRecord{}); err != nil {
			log.Fatal("automigrate failed", zap.Error(err))
		}
		log.Info("automigrate done")
	}

	jwter := &auth.JWTer{
		Secret: []byte(cfg.JWT.Secret),
		Issuer: cfg.JWT.Issuer,
		TTL:    time.Duration(cfg.JWT.AccessTokenTTLMin) * time.Minute,
	}

	// 报表缓存（可选）
	var reportCache *cache.Cache
	if cfg.Redis.Enable {
		reportCache = cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		pingCtx, pingCancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := reportCache.RDB.Ping(pingCtx).Err(); err != nil {
			pingCancel()
			log.Fatal("redis connect failed", zap.Error(err))
		}
		pingCancel()
		log.Info("redis connected", zap.String("addr", cfg.Redis.Addr))
	}

	userRepo := repo.NewUserRepo(db)
	saleRepo := repo.NewSaleRepo(db)
	purchaseRepo := repo.NewPurchaseRepo(db)

	deps := router.Deps{
		Auth:   service.NewAuthService(userRepo, jwter),
		Admin:  service.NewAdminService(userRepo),
		Ledger: service.NewLedgerService(saleRepo, purchaseRepo, reportCache, time.Duration(cfg.Redis.ReportTTLSec)*time.Second),
		Users:  userRepo,
		JWT:    jwter,
	}
	r := router.NewAPIEngine(log, deps)

	addr := fmt.Sprintf("%s:%d", cfg.App.HTTP.Host, cfg.App.HTTP.Port)
	srv := &http.Server{
		Addr:           addr,
		Handler:        r,
		ReadTimeout:    time.Duration(cfg.App.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout:   time.Duration(cfg.App.HTTP.WriteTimeoutSec) * time.Second,
		IdleTimeout:    time.Duration(cfg.App.HTTP.IdleTimeoutSec) * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	log.Info("inventory api starting",
		zap.String("addr", addr),
		zap.String("health", "/health"),
		zap.String("metrics", "/metrics"),
	)

	// 异步启动
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("inventory api start FAILED", zap.Error(err))
		}
	}()
	log.Info("inventory api started SUCCESS")

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	log.Info("inventory api stopped gracefully")
}

func mustOpenDB(cfg *config.Config, l *zap.Logger) *gorm.DB {
	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
	})
	if err != nil {
		l.Fatal("db open", zap.Error(err))
	}
	return db
}
