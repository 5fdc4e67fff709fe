package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Task represents a to-do item belonging to exactly one user. OwnerID is set
// once at creation from the authenticated caller and never reassigned.
type Task struct {
	ID          uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	OwnerID     uuid.UUID `json:"owner_id" gorm:"type:char(36);not null;index"`
	Title       string    `json:"title" gorm:"size:255;not null"`
	Description string    `json:"description" gorm:"size:2048;not null"`
	Category    string    `json:"category" gorm:"size:255;not null;index"`
	Completed   bool      `json:"completed" gorm:"default:false"`
	DueDate     time.Time `json:"due_date" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at"`
}

// BeforeCreate sets UUID before creating the record.
func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
