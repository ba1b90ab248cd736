package repo

import (
	"gorm.io/gorm"

	"go-inventory-ledger/internal/domain"
)

type SaleRepo struct{ db *gorm.DB }

func NewSaleRepo(db *gorm.DB) *SaleRepo { return &SaleRepo{db: db} }

func (r *SaleRepo) Create(s *domain.SaleRecord) error { return r.db.Create(s).Error }

// List 报表消费方默认最近在前，排序是契约
func (r *SaleRepo) List() ([]domain.SaleRecord, error) {
	out := make([]domain.SaleRecord, 0)
	err := r.db.Order("occurred_at desc").Find(&out).Error
	return out, err
}

func (r *SaleRepo) CreateBatch(ss []domain.SaleRecord) error {
	if len(ss) == 0 {
		return nil
	}
	return r.db.Create(&ss).Error
}

func (r *SaleRepo) DeleteAll() error {
	return r.db.Where("1 = 1").Delete(&domain.SaleRecord{}).Error
}
