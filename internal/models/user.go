package models

import (
	"time"
)

type UserRole string

const (
	RoleStudent UserRole = "student"
	RoleParent  UserRole = "parent"
)

// Language codes the client can render. Kept in sync with the UI bundles.
const (
	LanguageEnglish = "en"
	LanguageHindi   = "hi"
	LanguageSpanish = "es"
)

func IsSupportedLanguage(code string) bool {
	switch code {
	case LanguageEnglish, LanguageHindi, LanguageSpanish:
		return true
	}
	return false
}

type User struct {
	ID       uint     `json:"id" gorm:"primaryKey"`
	Name     string   `json:"name" gorm:"not null;size:100"`
	Email    string   `json:"email" gorm:"uniqueIndex;not null;size:255"`
	Password string   `json:"-" gorm:"not null;size:255"` // bcrypt hash, never serialized
	Role     UserRole `json:"role" gorm:"not null;size:20"`
	Language string   `json:"language" gorm:"not null;size:5;default:en"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}

func (User) TableName() string {
	return "users"
}

// PublicUser is the identity shape embedded in auth responses and session claims.
type PublicUser struct {
	ID       uint     `json:"id"`
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Role     UserRole `json:"role"`
	Language string   `json:"language,omitempty"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:       u.ID,
		Name:     u.Name,
		Email:    u.Email,
		Role:     u.Role,
		Language: u.Language,
	}
}
