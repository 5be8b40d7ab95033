package models

import (
	"time"
)

// LinkedAccount grants a parent read access to a student's journal-free
// aggregates. It is a capability edge, not ownership: journal content stays
// with the student. Uniqueness on (parent_id, student_id) makes re-linking a
// conflict rather than a duplicate.
type LinkedAccount struct {
	ID        uint `json:"id" gorm:"primaryKey"`
	ParentID  uint `json:"parent_id" gorm:"not null;uniqueIndex:idx_link_pair;index:idx_link_parent"`
	StudentID uint `json:"student_id" gorm:"not null;uniqueIndex:idx_link_pair"`

	CreatedAt time.Time `json:"created_at"`
}

func (LinkedAccount) TableName() string {
	return "linked_accounts"
}

// LinkedStudent is the contact-card view a parent gets of a linked student.
type LinkedStudent struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
