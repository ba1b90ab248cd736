package main

import (
	"os"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-inventory-ledger/internal/core/config"
	"go-inventory-ledger/internal/core/database"
	"go-inventory-ledger/internal/core/logger"
	"go-inventory-ledger/internal/domain"
	"go-inventory-ledger/internal/repo"
	"go-inventory-ledger/pkg/utils"
)

// 演示数据重置：清空三张表再灌入固定账号与样例台账。
// 全部演示账号口令 password123；pending@company.com 留在待审批状态。
func main() {
	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	log, cleanup := logger.New(logger.Options{Level: cfg.Log.Level, JSON: cfg.Log.JSON})
	defer cleanup()

	db := mustOpenDB(cfg, log)
	if err := db.AutoMigrate(&domain.User{}, &domain.SaleRecord{}, &domain.PurchaseRecord{}); err != nil {
		log.Fatal("automigrate failed", zap.Error(err))
	}

	users := repo.NewUserRepo(db)
	sales := repo.NewSaleRepo(db)
	purchases := repo.NewPurchaseRepo(db)

	// 先清后灌
	for name, fn := range map[string]func() error{
		"users": users.DeleteAll, "sales": sales.DeleteAll, "purchases": purchases.DeleteAll,
	} {
		if err := fn(); err != nil {
			log.Fatal("reset failed", zap.String("table", name), zap.Error(err))
		}
	}
	log.Info("existing data cleared")

	hash := utils.HashPassword("password123")
	seedUsers := []domain.User{
		{ID: utils.NewID(), Name: "Admin User", Email: "admin@company.com", PasswordHash: hash, Role: domain.RoleAdmin, Status: domain.StatusActive},
		{ID: utils.NewID(), Name: "Manager User", Email: "manager@company.com", PasswordHash: hash, Role: domain.RoleManager, Status: domain.StatusActive},
		{ID: utils.NewID(), Name: "Sales Person", Email: "sales@company.com", PasswordHash: hash, Role: domain.RoleSalesman, Status: domain.StatusActive},
		{ID: utils.NewID(), Name: "Purchase Manager", Email: "purchase@company.com", PasswordHash: hash, Role: domain.RolePurchaseMan, Status: domain.StatusActive},
		{ID: utils.NewID(), Name: "Pending User", Email: "pending@company.com", PasswordHash: hash, Role: domain.RoleSalesman, Status: domain.StatusPending},
	}
	var salesmanID, purchaserID string
	for i := range seedUsers {
		if err := users.Create(&seedUsers[i]); err != nil {
			log.Fatal("seed user failed", zap.String("email", seedUsers[i].Email), zap.Error(err))
		}
		switch seedUsers[i].Email {
		case "sales@company.com":
			salesmanID = seedUsers[i].ID
		case "purchase@company.com":
			purchaserID = seedUsers[i].ID
		}
		log.Info("seed user created", zap.String("email", seedUsers[i].Email), zap.String("status", seedUsers[i].Status))
	}

	day := func(s string) time.Time {
		t, _ := time.Parse("2006-01-02", s)
		return t
	}

	seedSales := []domain.SaleRecord{
		{ID: utils.NewID(), ProductName: "Laptop", Quantity: 5, Price: 999.99, OccurredAt: day("2024-01-15"), SalesmanID: salesmanID},
		{ID: utils.NewID(), ProductName: "Mouse", Quantity: 20, Price: 25.50, OccurredAt: day("2024-01-20"), SalesmanID: salesmanID},
		{ID: utils.NewID(), ProductName: "Keyboard", Quantity: 15, Price: 45.00, OccurredAt: day("2024-01-25"), SalesmanID: salesmanID},
	}
	if err := sales.CreateBatch(seedSales); err != nil {
		log.Fatal("seed sales failed", zap.Error(err))
	}

	seedPurchases := []domain.PurchaseRecord{
		{ID: utils.NewID(), ProductName: "Laptop", Quantity: 10, Cost: 750.00, OccurredAt: day("2024-01-10"), PurchaseManID: purchaserID},
		{ID: utils.NewID(), ProductName: "Mouse", Quantity: 50, Cost: 15.00, OccurredAt: day("2024-01-12"), PurchaseManID: purchaserID},
		{ID: utils.NewID(), ProductName: "Keyboard", Quantity: 30, Cost: 30.00, OccurredAt: day("2024-01-14"), PurchaseManID: purchaserID},
	}
	if err := purchases.CreateBatch(seedPurchases); err != nil {
		log.Fatal("seed purchases failed", zap.Error(err))
	}

	log.Info("seed done",
		zap.Int("users", len(seedUsers)),
		zap.Int("sales", len(seedSales)),
		zap.Int("purchases", len(seedPurchases)),
	)
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
