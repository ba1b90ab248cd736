package domain

import "time"

// 角色与状态取值固定，数据库内按字符串存
const (
	RoleAdmin       = "Admin"
	RoleManager     = "Manager"
	RoleSalesman    = "Salesman"
	RolePurchaseMan = "PurchaseMan"

	StatusPending = "pending"
	StatusActive  = "active"
)

// ValidRole 校验注册/改派时传入的角色
func ValidRole(r string) bool {
	switch r {
	case RoleAdmin, RoleManager, RoleSalesman, RolePurchaseMan:
		return true
	}
	return false
}

type User struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	Name         string    `gorm:"size:64;not null" json:"name"`
	Email        string    `gorm:"uniqueIndex;size:191;not null" json:"email"`
	PasswordHash string    `gorm:"size:100;not null" json:"-"`
	Role         string    `gorm:"size:16;not null" json:"role"`
	Status       string    `gorm:"size:16;not null;default:pending" json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (User) TableName() string { return "users" }

// Actor 鉴权通过后注入请求上下文的调用者身份
type Actor struct {
	ID   string
	Role string
}

// UserUpdate 审批时允许改动的字段；Role 为空表示保持原角色
type UserUpdate struct {
	Status string
	Role   string
}

type UserRepository interface {
	Create(u *User) error
	FindByID(id string) (*User, error)
	FindByEmail(email string) (*User, error)
	ListByStatus(status string) ([]User, error)
	ListAll() ([]User, error)
	// UpdateByID 单条 UPDATE，返回是否有行被改动；
	// mysql 驱动默认统计 changed rows 而非 matched rows，值没变时也是 false
	UpdateByID(id string, upd UserUpdate) (bool, error)
	// DeleteAll 仅供种子数据重置使用
	DeleteAll() error
}
