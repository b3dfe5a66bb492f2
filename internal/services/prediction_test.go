package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/ecotrack-backend/internal/domain/consumption"
	"github.com/yungbote/ecotrack-backend/internal/forecast"
	pkgerrors "github.com/yungbote/ecotrack-backend/internal/pkg/errors"
)

func TestPredictionGenerate(t *testing.T) {
	e := newEnv(t)
	userID := e.seedUser(t, "predict@example.com")
	e.seedReading(t, userID, 2023, 12, 110, 10, 50)
	for i, amount := range []float64{120, 130, 140, 150, 160} {
		e.seedReading(t, userID, 2024, i+1, amount, 10, 50)
	}

	now := time.Date(2024, 5, 20, 9, 0, 0, 0, time.UTC)
	svc := e.predictionService(now)

	pred, err := svc.Generate(e.ctx, userID, consumption.Electricity)
	require.NoError(t, err)
	require.NotNil(t, pred)
	assert.Equal(t, "150", pred.PredictedAmount.String())
	conf, _ := pred.Confidence.Float64()
	assert.GreaterOrEqual(t, conf, forecast.MinConfidence)
	assert.LessOrEqual(t, conf, forecast.MaxConfidence)
	assert.True(t, pred.PredictionDate.Equal(now.Add(forecast.Horizon)))

	// Predictions are append-only.
	_, err = svc.Generate(e.ctx, userID, consumption.Electricity)
	require.NoError(t, err)
	list, err := svc.List(e.ctx, userID, 0)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestPredictionGenerateInsufficientData(t *testing.T) {
	e := newEnv(t)
	userID := e.seedUser(t, "thin@example.com")
	e.seedReading(t, userID, 2024, 1, 100, 10, 50)
	e.seedReading(t, userID, 2024, 2, 100, 10, 50)

	pred, err := e.predictionService(time.Now()).Generate(e.ctx, userID, consumption.Gas)
	require.NoError(t, err)
	assert.Nil(t, pred)

	list, err := e.predictionService(time.Now()).List(e.ctx, userID, 0)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestPredictionGenerateUnknownResource(t *testing.T) {
	e := newEnv(t)
	userID := e.seedUser(t, "steam@example.com")

	_, err := e.predictionService(time.Now()).Generate(e.ctx, userID, consumption.Resource("steam"))
	assert.ErrorIs(t, err, pkgerrors.ErrInvalidArgument)
}
