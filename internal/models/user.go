package models

import (
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

type Category string

const (
	CategoryDriver    Category = "driver"
	CategoryPassenger Category = "passenger"
)

// ParseCategory normalises a signup category.
func ParseCategory(s string) (Category, bool) {
	switch Category(strings.ToLower(strings.TrimSpace(s))) {
	case CategoryDriver:
		return CategoryDriver, true
	case CategoryPassenger:
		return CategoryPassenger, true
	}
	return "", false
}

// User is a login account. The username doubles as the primary key.
type User struct {
	Username     string    `gorm:"column:username;primaryKey;size:64" json:"username"`
	Password     string    `gorm:"-" json:"-"` // plaintext, only set before HashPassword
	PasswordHash string    `gorm:"column:password_hash;not null" json:"-"`
	Category     Category  `gorm:"column:category;not null;size:16" json:"category"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName specifies the table name
func (User) TableName() string {
	return "users"
}

func (u *User) HashPassword() error {
	if u.Password == "" {
		return nil
	}
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	u.Password = ""
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
}
