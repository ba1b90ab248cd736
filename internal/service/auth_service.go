package service

import (
	"context"
	"strings"

	"go-inventory-ledger/internal/core/auth"
	"go-inventory-ledger/internal/domain"
	"go-inventory-ledger/pkg/utils"
)

type AuthService struct {
	users domain.UserRepository
	jwter *auth.JWTer
}

func NewAuthService(users domain.UserRepository, jwter *auth.JWTer) *AuthService {
	return &AuthService{users: users, jwter: jwter}
}

// Signup 自助注册，落库即 pending，等管理员审批
func (s *AuthService) Signup(ctx context.Context, name, email, password, role string) error {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" || password == "" || role == "" {
		return domain.ErrInvalidInput
	}
	if !domain.ValidRole(role) {
		return domain.ErrInvalidInput
	}

	existing, err := s.users.FindByEmail(email)
	if err != nil {
		return err
	}
	if existing != nil {
		return domain.ErrDuplicateEmail
	}

	u := &domain.User{
		ID:           utils.NewID(),
		Name:         name,
		Email:        email,
		PasswordHash: utils.HashPassword(password),
		Role:         role,
		Status:       domain.StatusPending,
	}
	if err := s.users.Create(u); err != nil {
		// 并发注册撞唯一索引，口径同查到重复
		if isDupKey(err) {
			return domain.ErrDuplicateEmail
		}
		return err
	}
	return nil
}

// Login 仅 active 用户可登录，成功签发带 {id, role} 的 JWT
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	u, err := s.users.FindByEmail(strings.TrimSpace(email))
	if err != nil {
		return "", err
	}
	if u == nil {
		return "", domain.ErrInvalidCredentials
	}
	if u.Status != domain.StatusActive {
		return "", domain.ErrNotActive
	}
	if !utils.CheckPassword(password, u.PasswordHash) {
		return "", domain.ErrInvalidCredentials
	}
	return s.jwter.Issue(u.ID, u.Role)
}

type Profile struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (s *AuthService) Profile(ctx context.Context, uid string) (*Profile, error) {
	u, err := s.users.FindByID(uid)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrNotFound
	}
	return &Profile{Name: u.Name, Email: u.Email, Role: u.Role}, nil
}

func isDupKey(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique violation") ||
		strings.Contains(msg, "duplicate key")
}
