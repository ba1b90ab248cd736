package repo

import (
	"errors"

	"gorm.io/gorm"

	"go-inventory-ledger/internal/domain"
)

type UserRepo struct{ db *gorm.DB }

func NewUserRepo(db *gorm.DB) *UserRepo { return &UserRepo{db: db} }

func (r *UserRepo) Create(u *domain.User) error { return r.db.Create(u).Error }

func (r *UserRepo) FindByID(id string) (*domain.User, error) {
	var u domain.User
	err := r.db.First(&u, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &u, err
}

func (r *UserRepo) FindByEmail(email string) (*domain.User, error) {
	var u domain.User
	err := r.db.First(&u, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &u, err
}

func (r *UserRepo) ListByStatus(status string) ([]domain.User, error) {
	users := make([]domain.User, 0)
	err := r.db.Where("status = ?", status).Order("created_at asc").Find(&users).Error
	return users, err
}

func (r *UserRepo) ListAll() ([]domain.User, error) {
	users := make([]domain.User, 0)
	err := r.db.Order("created_at asc").Find(&users).Error
	return users, err
}

// UpdateByID 一次 UPDATE 落库；并发审批同一用户时后写覆盖。
// RowsAffected 在 mysql 默认 DSN 下是 changed rows，调用方不能拿它判定行存在
func (r *UserRepo) UpdateByID(id string, upd domain.UserUpdate) (bool, error) {
	fields := map[string]any{"status": upd.Status}
	if upd.Role != "" {
		fields["role"] = upd.Role
	}
	res := r.db.Model(&domain.User{}).Where("id = ?", id).Updates(fields)
	return res.RowsAffected > 0, res.Error
}

func (r *UserRepo) DeleteAll() error {
	return r.db.Where("1 = 1").Delete(&domain.User{}).Error
}
