package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-inventory-ledger/internal/domain"
	httpez "go-inventory-ledger/internal/transport/http/ez"
	mdw "go-inventory-ledger/internal/transport/http/middleware"
	resp "go-inventory-ledger/internal/transport/http/response"
)

type inventoryModule struct {
	log *zap.Logger
	d   Deps
}

func newInventoryModule(l *zap.Logger, d Deps) *inventoryModule {
	return &inventoryModule{log: l, d: d}
}

func (m *inventoryModule) MountAPI(g *gin.RouterGroup) {
	ig := g.Group("/inventory")

	// 录入与查报表的角色集不同，同一路径按方法分组挂守卫
	writeSales := ig.Group("")
	writeSales.Use(mdw.AuthJWT(m.log, m.d.JWT, m.d.Users, domain.RoleSalesman, domain.RoleAdmin))
	ezWS := httpez.New(writeSales, m.log)

	writePurchases := ig.Group("")
	writePurchases.Use(mdw.AuthJWT(m.log, m.d.JWT, m.d.Users, domain.RolePurchaseMan, domain.RoleAdmin))
	ezWP := httpez.New(writePurchases, m.log)

	reports := ig.Group("")
	reports.Use(mdw.AuthJWT(m.log, m.d.JWT, m.d.Users, domain.RoleManager, domain.RoleAdmin))
	ezR := httpez.New(reports, m.log)

	type saleIn struct {
		ProductName string  `json:"productName" binding:"required"`
		Quantity    int     `json:"quantity"    binding:"required,gt=0"`
		Price       float64 `json:"price"       binding:"required,gt=0"`
	}
	httpez.RegisterAction(ezWS, httpez.Action[saleIn, resp.Msg]{
		Method: http.MethodPost,
		Path:   "/sales",
		Binder: httpez.BindJSON,
		Handler: func(c *gin.Context, in *saleIn) (resp.Msg, error) {
			actor, ok := mdw.ActorFrom(c)
			if !ok {
				return resp.Msg{}, domain.ErrUnauthenticated
			}
			if err := m.d.Ledger.RecordSale(c.Request.Context(), actor, in.ProductName, in.Quantity, in.Price); err != nil {
				return resp.Msg{}, err
			}
			return resp.Msg{Message: "Sale recorded."}, nil
		},
	})

	httpez.RegisterAction(ezR, httpez.Action[struct{}, []domain.SaleRecord]{
		Method: http.MethodGet,
		Path:   "/sales",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) ([]domain.SaleRecord, error) {
			actor, _ := mdw.ActorFrom(c)
			return m.d.Ledger.Sales(c.Request.Context(), actor)
		},
	})

	type purchaseIn struct {
		ProductName string  `json:"productName" binding:"required"`
		Quantity    int     `json:"quantity"    binding:"required,gt=0"`
		Cost        float64 `json:"cost"        binding:"required,gt=0"`
	}
	httpez.RegisterAction(ezWP, httpez.Action[purchaseIn, resp.Msg]{
		Method: http.MethodPost,
		Path:   "/purchases",
		Binder: httpez.BindJSON,
		Handler: func(c *gin.Context, in *purchaseIn) (resp.Msg, error) {
			actor, ok := mdw.ActorFrom(c)
			if !ok {
				return resp.Msg{}, domain.ErrUnauthenticated
			}
			if err := m.d.Ledger.RecordPurchase(c.Request.Context(), actor, in.ProductName, in.Quantity, in.Cost); err != nil {
				return resp.Msg{}, err
			}
			return resp.Msg{Message: "Purchase recorded."}, nil
		},
	})

	httpez.RegisterAction(ezR, httpez.Action[struct{}, []domain.PurchaseRecord]{
		Method: http.MethodGet,
		Path:   "/purchases",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) ([]domain.PurchaseRecord, error) {
			actor, _ := mdw.ActorFrom(c)
			return m.d.Ledger.Purchases(c.Request.Context(), actor)
		},
	})
}
