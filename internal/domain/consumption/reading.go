package consumption

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Reading is one submitted meter reading. (UserID, NaturalKey) is unique:
// a second submission for the same period updates the first.
type Reading struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_reading_natural_key,priority:1" json:"user_id"`
	Electricity    decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"electricity"`
	Water          decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"water"`
	Gas            decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"gas"`
	Month          int             `gorm:"not null;column:month" json:"month"`
	Year           int             `gorm:"not null;column:year" json:"year"`
	WeekNumber     *int            `gorm:"column:week_number" json:"week_number,omitempty"`
	IsAdvancedMode bool            `gorm:"not null;default:false;column:is_advanced_mode" json:"is_advanced_mode"`
	NaturalKey     string          `gorm:"not null;column:natural_key;uniqueIndex:idx_reading_natural_key,priority:2" json:"-"`
	ReadingDate    time.Time       `gorm:"not null;index;column:reading_date" json:"reading_date"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (Reading) TableName() string { return "consumption_reading" }

func (r *Reading) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

func (r *Reading) BeforeSave(tx *gorm.DB) error {
	r.NaturalKey = NaturalKey(r.Year, r.Month, r.WeekNumber)
	return nil
}

// NaturalKey renders the period identity of a reading: "2024-01" for a
// monthly reading, "2024-01-w2" for a weekly one.
func NaturalKey(year, month int, week *int) string {
	if week != nil {
		return fmt.Sprintf("%04d-%02d-w%d", year, month, *week)
	}
	return fmt.Sprintf("%04d-%02d", year, month)
}

// Amount returns the quantity recorded for res as a float.
func (r *Reading) Amount(res Resource) float64 {
	var d decimal.Decimal
	switch res {
	case Electricity:
		d = r.Electricity
	case Water:
		d = r.Water
	case Gas:
		d = r.Gas
	}
	f, _ := d.Float64()
	return f
}
