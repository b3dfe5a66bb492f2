package domain

import (
	"github.com/yungbote/ecotrack-backend/internal/domain/advice"
	"github.com/yungbote/ecotrack-backend/internal/domain/consumption"
	"github.com/yungbote/ecotrack-backend/internal/domain/user"
)

type (
	User     = user.User
	UserRole = user.Role

	Resource           = consumption.Resource
	ConsumptionReading = consumption.Reading
	Prediction         = consumption.Prediction

	Recommendation = advice.Recommendation
	CO2Insight     = advice.CO2Insight
	Priority       = advice.Priority
	AdviceSource   = advice.Source
)

const (
	RoleIndividual = user.RoleIndividual
	RoleCompany    = user.RoleCompany
	RoleStudent    = user.RoleStudent

	Electricity = consumption.Electricity
	Water       = consumption.Water
	Gas         = consumption.Gas

	PriorityHigh   = advice.PriorityHigh
	PriorityMedium = advice.PriorityMedium
	PriorityLow    = advice.PriorityLow

	SourceAI        = advice.SourceAI
	SourceHeuristic = advice.SourceHeuristic
)

// Models lists every persisted entity in migration order.
func Models() []any {
	return []any{
		&User{},
		&ConsumptionReading{},
		&Prediction{},
		&Recommendation{},
		&CO2Insight{},
	}
}
