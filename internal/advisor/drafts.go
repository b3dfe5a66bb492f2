package advisor

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"github.com/yungbote/ecotrack-backend/internal/domain/advice"
)

// RecommendationDraft is a recommendation before it is owned and persisted.
type RecommendationDraft struct {
	Title            string
	Description      string
	Category         string
	Priority         advice.Priority
	PotentialSavings float64
	// SavingsText keeps the model's raw estimate, e.g. "15-25".
	SavingsText string
	Source      advice.Source
}

func (d RecommendationDraft) Model(userID uuid.UUID, metadata datatypes.JSON) *advice.Recommendation {
	return &advice.Recommendation{
		UserID:           userID,
		Title:            d.Title,
		Description:      d.Description,
		Category:         d.Category,
		PotentialSavings: decimal.NewFromFloat(d.PotentialSavings).Round(2),
		SavingsEstimate:  d.SavingsText,
		Priority:         d.Priority,
		Source:           d.Source,
		Metadata:         metadata,
	}
}

type InsightDraft struct {
	Title            string
	Description      string
	Category         string
	Priority         advice.Priority
	PotentialSavings *string
}

func (d InsightDraft) Model(userID uuid.UUID, metadata datatypes.JSON) *advice.CO2Insight {
	return &advice.CO2Insight{
		UserID:           userID,
		Title:            d.Title,
		Description:      d.Description,
		Category:         d.Category,
		PotentialSavings: d.PotentialSavings,
		Priority:         d.Priority,
		Metadata:         metadata,
	}
}
