package configuration

import (
	"time"

	"github.com/google/uuid"

	"github.com/HarmonyGroup/harmony-bookme-sub002/internal/vendors"
)

// CommissionRates maps vendor categories to commission percentages.
type CommissionRates map[vendors.Category]float64

// Configuration is one version of the platform commission table. Exactly
// one row is active at any time; activation always happens through
// Repository.Activate so the deactivate/activate pair commits together.
type Configuration struct {
	ID        uuid.UUID       `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Label     string          `json:"label" gorm:"size:100"`
	Rates     CommissionRates `json:"rates" gorm:"serializer:json;not null"`
	Active    bool            `json:"active" gorm:"default:false;index"`
	CreatedAt time.Time       `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time       `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName sets the table name for Configuration
func (Configuration) TableName() string {
	return "configurations"
}

// RateFor returns the category rate and whether one is configured.
func (c *Configuration) RateFor(category vendors.Category) (float64, bool) {
	if c == nil || c.Rates == nil {
		return 0, false
	}
	rate, ok := c.Rates[category]
	return rate, ok
}
