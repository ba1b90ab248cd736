package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"go-inventory-ledger/internal/core/auth"
	"go-inventory-ledger/internal/domain"
	"go-inventory-ledger/internal/service"
	mdw "go-inventory-ledger/internal/transport/http/middleware"
)

// Deps 引擎依赖显式注入，不走包级全局
type Deps struct {
	Auth   *service.AuthService
	Admin  *service.AdminService
	Ledger *service.LedgerService
	Users  domain.UserRepository
	JWT    *auth.JWTer
}

func NewAPIEngine(l *zap.Logger, d Deps) *gin.Engine {
	r := gin.New()

	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(1<<20),
		mdw.Timeout(10*time.Second),
		ginzap.RecoveryWithZap(l, true),
		mdw.Metrics(),
		mdw.AccessLog(l),
		cors.Default(),
	)

	// 健康检查 + 指标
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	root := r.Group("")
	MountAll(root,
		newAuthModule(l, d),
		newInventoryModule(l, d),
	)

	return r
}
