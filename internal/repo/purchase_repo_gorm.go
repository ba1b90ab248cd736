package repo

import (
	"gorm.io/gorm"

	"go-inventory-ledger/internal/domain"
)

type PurchaseRepo struct{ db *gorm.DB }

func NewPurchaseRepo(db *gorm.DB) *PurchaseRepo { return &PurchaseRepo{db: db} }

func (r *PurchaseRepo) Create(p *domain.PurchaseRecord) error { return r.db.Create(p).Error }

func (r *PurchaseRepo) List() ([]domain.PurchaseRecord, error) {
	out := make([]domain.PurchaseRecord, 0)
	err := r.db.Order("occurred_at desc").Find(&out).Error
	return out, err
}

func (r *PurchaseRepo) CreateBatch(ps []domain.PurchaseRecord) error {
	if len(ps) == 0 {
		return nil
	}
	return r.db.Create(&ps).Error
}

func (r *PurchaseRepo) DeleteAll() error {
	return r.db.Where("1 = 1").Delete(&domain.PurchaseRecord{}).Error
}
