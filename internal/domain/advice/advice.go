package advice

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

func ParsePriority(raw string, def Priority) Priority {
	switch p := Priority(raw); p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return p
	}
	return def
}

const (
	CategoryElectricity   = "electricity"
	CategoryWater         = "water"
	CategoryGas           = "gas"
	CategoryGeneral       = "general"
	CategoryEnvironmental = "environmental"
)

// Source records which generator produced an advisory row.
type Source string

const (
	SourceAI        Source = "ai"
	SourceHeuristic Source = "heuristic"
)

type Recommendation struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	UserID           uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	Title            string          `gorm:"type:text;not null" json:"title"`
	Description      string          `gorm:"type:text;not null" json:"description"`
	Category         string          `gorm:"not null" json:"category"`
	PotentialSavings decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"potential_savings"`
	SavingsEstimate  string          `gorm:"column:savings_estimate" json:"savings_estimate,omitempty"`
	Priority         Priority        `gorm:"not null;default:medium" json:"priority"`
	Source           Source          `gorm:"not null;default:heuristic" json:"source"`
	IsRead           bool            `gorm:"not null;default:false;index" json:"is_read"`
	Metadata         datatypes.JSON  `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt        time.Time       `gorm:"not null;autoCreateTime;index" json:"created_at"`
}

func (Recommendation) TableName() string { return "recommendation" }

func (r *Recommendation) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

type CO2Insight struct {
	ID               uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID           uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Title            string         `gorm:"type:text;not null" json:"title"`
	Description      string         `gorm:"type:text;not null" json:"description"`
	Category         string         `gorm:"not null" json:"category"`
	PotentialSavings *string        `gorm:"type:text" json:"potential_savings"`
	Priority         Priority       `gorm:"not null;default:medium" json:"priority"`
	IsRead           bool           `gorm:"not null;default:false;index" json:"is_read"`
	Metadata         datatypes.JSON `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt        time.Time      `gorm:"not null;autoCreateTime;index" json:"created_at"`
}

func (CO2Insight) TableName() string { return "co2_insight" }

func (i *CO2Insight) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
