package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/ecotrack-backend/internal/platform/logger"
)

func newTestClient(t *testing.T, h http.HandlerFunc, apiKey string) Provider {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(logger.Nop(), Config{APIKey: apiKey, BaseURL: srv.URL})
}

func TestCurrentLive(t *testing.T) {
	var gotQuery string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/data/2.5/weather", r.URL.Path)
		gotQuery = r.URL.Query().Get("q")
		assert.Equal(t, "metric", r.URL.Query().Get("units"))
		assert.Equal(t, "k", r.URL.Query().Get("appid"))
		_, _ = w.Write([]byte(`{"name":"Nur-Sultan","main":{"temp":-12.6,"humidity":80},"weather":[{"main":"Snow","description":"light snow"}],"wind":{"speed":4.2}}`))
	}, "k")

	rep, err := c.Current(context.Background(), "Astana")
	require.NoError(t, err)
	assert.Equal(t, "Nur-Sultan,KZ", gotQuery)
	assert.Equal(t, SourceLive, rep.Source)
	assert.Equal(t, -13.0, rep.Temperature)
	assert.Equal(t, "light snow", rep.Description)
	assert.Equal(t, "Astana", rep.Location)
	assert.Equal(t, Impact(-12.6), rep.Impact)
}

func TestCurrentFallsBackOnUpstreamError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}, "bad")

	rep, err := c.Current(context.Background(), "shymkent")
	require.NoError(t, err)
	assert.Equal(t, SourceFallback, rep.Source)
	assert.Equal(t, 32.0, rep.Temperature)
	assert.Equal(t, "Hot", rep.Description)
}

func TestCurrentWithoutKeyNeverCalls(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("unexpected upstream call to %s", r.URL.Path)
	}, "")

	rep, err := c.Current(context.Background(), "almaty")
	require.NoError(t, err)
	assert.Equal(t, 28.0, rep.Temperature)
	assert.Equal(t, "Almaty", rep.Location)
}

func TestUnknownRegionUsesDefault(t *testing.T) {
	rep := Fallback("Kyzylorda")
	assert.Equal(t, 25.0, rep.Temperature)
	assert.Equal(t, "Kyzylorda", rep.Location)
	assert.Equal(t, "Comfortable summer weather. Energy consumption is normal.", rep.Impact)
}

func TestForecast(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/data/2.5/forecast", r.URL.Path)
		assert.Equal(t, "56", r.URL.Query().Get("cnt"))
		_, _ = w.Write([]byte(`{"list":[
			{"dt":1700000000,"main":{"temp":10.4,"humidity":50},"weather":[{"description":"clear sky"}]},
			{"dt":1700010800,"main":{"temp":11.6,"humidity":55},"weather":[]}
		]}`))
	}, "k")

	pts, err := c.Forecast(context.Background(), "almaty", 7)
	require.NoError(t, err)
	require.Len(t, pts, 2)
	assert.Equal(t, 10.0, pts[0].Temperature)
	assert.Equal(t, 12.0, pts[1].Temperature)
	assert.Equal(t, "clear sky", pts[0].Description)
}

func TestForecastErrorIsEmpty(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}, "k")

	pts, err := c.Forecast(context.Background(), "almaty", 3)
	require.NoError(t, err)
	assert.Empty(t, pts)
}

func TestImpactBands(t *testing.T) {
	assert.Contains(t, Impact(-1), "Very cold")
	assert.Contains(t, Impact(5), "Cold weather")
	assert.Contains(t, Impact(31), "Hot weather")
	assert.Contains(t, Impact(26), "Warm weather")
	assert.Contains(t, Impact(30), "Warm weather")
	assert.Contains(t, Impact(18), "Moderate")
}

func TestRegionsSorted(t *testing.T) {
	got := Regions()
	assert.Len(t, got, 8)
	assert.Equal(t, "aktobe", got[0])
	assert.Equal(t, "ust-kamenogorsk", got[len(got)-1])
}
