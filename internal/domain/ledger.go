package domain

import "time"

// SaleRecord / PurchaseRecord 均为只追加台账，建表后没有更新与删除路径
// （DeleteAll 仅供种子重置）。JSON 字段名沿用前端约定的驼峰。

type SaleRecord struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	ProductName string    `gorm:"size:128;not null" json:"productName"`
	Quantity    int       `gorm:"not null" json:"quantity"`
	Price       float64   `gorm:"not null" json:"price"`
	OccurredAt  time.Time `gorm:"index;not null" json:"date"`
	SalesmanID  string    `gorm:"size:36;index;not null" json:"salesmanId"`
}

func (SaleRecord) TableName() string { return "sales" }

type PurchaseRecord struct {
	ID            string    `gorm:"primaryKey;size:36" json:"id"`
	ProductName   string    `gorm:"size:128;not null" json:"productName"`
	Quantity      int       `gorm:"not null" json:"quantity"`
	Cost          float64   `gorm:"not null" json:"cost"`
	OccurredAt    time.Time `gorm:"index;not null" json:"date"`
	PurchaseManID string    `gorm:"size:36;index;not null" json:"purchaseManId"`
}

func (PurchaseRecord) TableName() string { return "purchases" }

type SaleRepository interface {
	Create(s *SaleRecord) error
	// List 按发生时间倒序（最近在前），属于对外契约
	List() ([]SaleRecord, error)
	CreateBatch(ss []SaleRecord) error
	DeleteAll() error
}

type PurchaseRepository interface {
	Create(p *PurchaseRecord) error
	List() ([]PurchaseRecord, error)
	CreateBatch(ps []PurchaseRecord) error
	DeleteAll() error
}
