package consumption

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Prediction is an append-only forecast record; regenerating never
// overwrites earlier rows.
type Prediction struct {
	ID              uuid.UUID           `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          uuid.UUID           `gorm:"type:uuid;not null;index" json:"user_id"`
	Resource        Resource            `gorm:"not null;column:type" json:"type"`
	PredictedAmount decimal.Decimal     `gorm:"type:decimal(10,2);not null" json:"predicted_amount"`
	Confidence      decimal.Decimal     `gorm:"type:decimal(5,4);not null" json:"confidence"`
	PredictionDate  time.Time           `gorm:"not null;index" json:"prediction_date"`
	ActualAmount    decimal.NullDecimal `gorm:"type:decimal(10,2)" json:"actual_amount"`
	CreatedAt       time.Time           `gorm:"not null;autoCreateTime" json:"created_at"`
}

func (Prediction) TableName() string { return "prediction" }

func (p *Prediction) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
