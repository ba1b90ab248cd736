package service

import (
	"context"
	"strings"
	"time"

	"go-inventory-ledger/internal/core/cache"
	"go-inventory-ledger/internal/domain"
	"go-inventory-ledger/pkg/utils"
)

const (
	keySalesReport     = "reports:sales"
	keyPurchasesReport = "reports:purchases"
)

// LedgerService 只追加台账：录入一次成型，没有更新/删除路径。
// cache 可为 nil（测试、未配 redis 时直连库）。
type LedgerService struct {
	sales     domain.SaleRepository
	purchases domain.PurchaseRepository
	cache     *cache.Cache
	cacheTTL  time.Duration
}

func NewLedgerService(sales domain.SaleRepository, purchases domain.PurchaseRepository, c *cache.Cache, ttl time.Duration) *LedgerService {
	return &LedgerService{sales: sales, purchases: purchases, cache: c, cacheTTL: ttl}
}

func roleAllowed(role string, allowed ...string) bool {
	for _, a := range allowed {
		if role == a {
			return true
		}
	}
	return false
}

// RecordSale 录入销售；归属记到发起人头上，时间取服务端当前时刻
func (s *LedgerService) RecordSale(ctx context.Context, actor domain.Actor, productName string, quantity int, price float64) error {
	if !roleAllowed(actor.Role, domain.RoleSalesman, domain.RoleAdmin) {
		return domain.ErrForbidden
	}
	if strings.TrimSpace(productName) == "" || quantity <= 0 || price <= 0 {
		return domain.ErrInvalidInput
	}
	rec := &domain.SaleRecord{
		ID:          utils.NewID(),
		ProductName: strings.TrimSpace(productName),
		Quantity:    quantity,
		Price:       price,
		OccurredAt:  time.Now(),
		SalesmanID:  actor.ID,
	}
	if err := s.sales.Create(rec); err != nil {
		return err
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, keySalesReport)
	}
	return nil
}

func (s *LedgerService) RecordPurchase(ctx context.Context, actor domain.Actor, productName string, quantity int, cost float64) error {
	if !roleAllowed(actor.Role, domain.RolePurchaseMan, domain.RoleAdmin) {
		return domain.ErrForbidden
	}
	if strings.TrimSpace(productName) == "" || quantity <= 0 || cost <= 0 {
		return domain.ErrInvalidInput
	}
	rec := &domain.PurchaseRecord{
		ID:            utils.NewID(),
		ProductName:   strings.TrimSpace(productName),
		Quantity:      quantity,
		Cost:          cost,
		OccurredAt:    time.Now(),
		PurchaseManID: actor.ID,
	}
	if err := s.purchases.Create(rec); err != nil {
		return err
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, keyPurchasesReport)
	}
	return nil
}

// Sales 报表，最近在前；有 redis 时短 TTL 缓存并 singleflight 回源
func (s *LedgerService) Sales(ctx context.Context, actor domain.Actor) ([]domain.SaleRecord, error) {
	if !roleAllowed(actor.Role, domain.RoleManager, domain.RoleAdmin) {
		return nil, domain.ErrForbidden
	}
	if s.cache == nil {
		return s.sales.List()
	}
	out, err := cache.GetOrLoadJSON(s.cache, ctx, keySalesReport, s.cacheTTL,
		func(ctx context.Context) ([]domain.SaleRecord, error) { return s.sales.List() })
	if err != nil {
		// 缓存链路出问题直接回源，报表可用性优先
		return s.sales.List()
	}
	return out, nil
}

func (s *LedgerService) Purchases(ctx context.Context, actor domain.Actor) ([]domain.PurchaseRecord, error) {
	if !roleAllowed(actor.Role, domain.RoleManager, domain.RoleAdmin) {
		return nil, domain.ErrForbidden
	}
	if s.cache == nil {
		return s.purchases.List()
	}
	out, err := cache.GetOrLoadJSON(s.cache, ctx, keyPurchasesReport, s.cacheTTL,
		func(ctx context.Context) ([]domain.PurchaseRecord, error) { return s.purchases.List() })
	if err != nil {
		return s.purchases.List()
	}
	return out, nil
}
