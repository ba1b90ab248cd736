package service

import (
	"context"
	"time"

	"go-inventory-ledger/internal/domain"
)

type AdminService struct {
	users domain.UserRepository
}

func NewAdminService(users domain.UserRepository) *AdminService {
	return &AdminService{users: users}
}

// UserRow 对外的用户视图，密码散列在这里被彻底剥掉
type UserRow struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

func toRows(us []domain.User) []UserRow {
	out := make([]UserRow, 0, len(us))
	for _, u := range us {
		out = append(out, UserRow{
			ID: u.ID, Name: u.Name, Email: u.Email,
			Role: u.Role, Status: u.Status, CreatedAt: u.CreatedAt,
		})
	}
	return out
}

func (s *AdminService) PendingUsers(ctx context.Context) ([]UserRow, error) {
	us, err := s.users.ListByStatus(domain.StatusPending)
	if err != nil {
		return nil, err
	}
	return toRows(us), nil
}

// Approve 转正 + 可选改派角色；这是 signup 之后唯一能动 status/role 的入口。
// 同一用户被两个管理员并发审批时后写覆盖（单条 UPDATE，不做 pending 条件锁，
// 因为该接口同时承担已转正用户的角色改派）。
func (s *AdminService) Approve(ctx context.Context, userID, newRole string) error {
	if userID == "" {
		return domain.ErrInvalidInput
	}
	if newRole != "" && !domain.ValidRole(newRole) {
		return domain.ErrInvalidInput
	}
	ok, err := s.users.UpdateByID(userID, domain.UserUpdate{
		Status: domain.StatusActive,
		Role:   newRole,
	})
	if err != nil {
		return err
	}
	if !ok {
		// mysql 默认报 changed rows 而非 matched rows：重复审批、同角色改派
		// 时值没变也会得 0，回查一次区分“用户不存在”和“已是目标状态”
		u, err := s.users.FindByID(userID)
		if err != nil {
			return err
		}
		if u == nil {
			return domain.ErrNotFound
		}
	}
	return nil
}

func (s *AdminService) ListUsers(ctx context.Context) ([]UserRow, error) {
	us, err := s.users.ListAll()
	if err != nil {
		return nil, err
	}
	return toRows(us), nil
}
