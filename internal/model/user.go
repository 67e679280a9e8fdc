package model

import "time"

// 系统角色
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User 店铺用户账号
type User struct {
	// uuid 字符串主键，注册时生成
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Email    string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Username string `gorm:"size:100;not null" json:"username"`
	Password string `gorm:"size:255;not null" json:"-"` // bcrypt 哈希
	Role     string `gorm:"size:20;default:'user'" json:"role"`
}

func (User) TableName() string {
	return "users"
}
