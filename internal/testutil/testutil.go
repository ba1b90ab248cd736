package testutil

import (
	"fmt"
	"sort"
	"sync"

	"go-inventory-ledger/internal/domain"
)

// 内存版仓储，测试里顶替 gorm 实现；行为对齐各自的契约
// （邮箱唯一、列表按发生时间倒序）。

type MemUserRepo struct {
	mu    sync.Mutex
	users map[string]domain.User
}

func NewMemUserRepo() *MemUserRepo {
	return &MemUserRepo{users: map[string]domain.User{}}
}

func (r *MemUserRepo) Create(u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ex := range r.users {
		if ex.Email == u.Email {
			return fmt.Errorf("duplicate key on users.email")
		}
	}
	r.users[u.ID] = *u
	return nil
}

func (r *MemUserRepo) FindByID(id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		cp := u
		return &cp, nil
	}
	return nil, nil
}

func (r *MemUserRepo) FindByEmail(email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *MemUserRepo) ListByStatus(status string) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.User, 0)
	for _, u := range r.users {
		if u.Status == status {
			out = append(out, u)
		}
	}
	sortUsers(out)
	return out, nil
}

func (r *MemUserRepo) ListAll() ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	sortUsers(out)
	return out, nil
}

// UpdateByID 对齐 mysql 默认的 changed-rows 口径：值没变时同样返回 false。
func (r *MemUserRepo) UpdateByID(id string, upd domain.UserUpdate) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return false, nil
	}
	changed := u.Status != upd.Status
	u.Status = upd.Status
	if upd.Role != "" && u.Role != upd.Role {
		u.Role = upd.Role
		changed = true
	}
	r.users[id] = u
	return changed, nil
}

func (r *MemUserRepo) DeleteAll() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users = map[string]domain.User{}
	return nil
}

func sortUsers(us []domain.User) {
	sort.SliceStable(us, func(i, j int) bool {
		if us[i].CreatedAt.Equal(us[j].CreatedAt) {
			return us[i].ID < us[j].ID
		}
		return us[i].CreatedAt.Before(us[j].CreatedAt)
	})
}

type MemSaleRepo struct {
	mu      sync.Mutex
	records []domain.SaleRecord
}

func NewMemSaleRepo() *MemSaleRepo { return &MemSaleRepo{} }

func (r *MemSaleRepo) Create(s *domain.SaleRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, *s)
	return nil
}

func (r *MemSaleRepo) List() ([]domain.SaleRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.SaleRecord, len(r.records))
	copy(out, r.records)
	sort.SliceStable(out, func(i, j int) bool { return out[i].OccurredAt.After(out[j].OccurredAt) })
	return out, nil
}

func (r *MemSaleRepo) CreateBatch(ss []domain.SaleRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, ss...)
	return nil
}

func (r *MemSaleRepo) DeleteAll() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = nil
	return nil
}

type MemPurchaseRepo struct {
	mu      sync.Mutex
	records []domain.PurchaseRecord
}

func NewMemPurchaseRepo() *MemPurchaseRepo { return &MemPurchaseRepo{} }

func (r *MemPurchaseRepo) Create(p *domain.PurchaseRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, *p)
	return nil
}

func (r *MemPurchaseRepo) List() ([]domain.PurchaseRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.PurchaseRecord, len(r.records))
	copy(out, r.records)
	sort.SliceStable(out, func(i, j int) bool { return out[i].OccurredAt.After(out[j].OccurredAt) })
	return out, nil
}

func (r *MemPurchaseRepo) CreateBatch(ps []domain.PurchaseRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, ps...)
	return nil
}

func (r *MemPurchaseRepo) DeleteAll() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = nil
	return nil
}
