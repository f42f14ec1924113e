package explorers

import (
	"time"

	"github.com/google/uuid"
)

// Explorer is the customer-side identity record. Authentication and
// session management live outside this service; requests reference an
// explorer through JWT claims.
type Explorer struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null;size:255"`
	FirstName string    `json:"first_name" gorm:"size:100"`
	LastName  string    `json:"last_name" gorm:"size:100"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName sets the table name for Explorer
func (Explorer) TableName() string {
	return "explorers"
}

// FullName returns the explorer's display name
func (e *Explorer) FullName() string {
	if e.FirstName == "" && e.LastName == "" {
		return e.Email
	}
	return e.FirstName + " " + e.LastName
}
