package openweather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weatherbot/config"
	"weatherbot/manager"
	"weatherbot/observability"
)

const (
	testKey = "test-key"

	vijayanagarBody = `{
		"coord": {"lon": 77.5, "lat": 12.9},
		"weather": [{"id": 800, "main": "Clear", "description": "clear sky"}],
		"main": {"temp": 300.0, "humidity": 40},
		"visibility": 6000,
		"name": "Vijayanagar",
		"cod": 200
	}`
)

func testClient(baseURL string, timeout time.Duration) *weatherApi {
	cfg := &config.Config{}
	cfg.Weather.APIKey = testKey
	cfg.Weather.BaseURL = baseURL
	cfg.Weather.Timeout = timeout
	return New(cfg, observability.NewMetricsForTesting())
}

func stub(t *testing.T, status int, body string, check func(r *http.Request)) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			check(r)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestByPostalCode_Success(t *testing.T) {
	srv := stub(t, http.StatusOK, vijayanagarBody, func(r *http.Request) {
		assert.Equal(t, "/data/2.5/weather", r.URL.Path)
		assert.Equal(t, "560006,in", r.URL.Query().Get("zip"))
		assert.Equal(t, testKey, r.URL.Query().Get("appid"))
	})

	current, err := testClient(srv.URL, 5*time.Second).ByPostalCode(context.Background(), "560006", "in")
	require.NoError(t, err)

	assert.Equal(t, manager.Current{
		Name:        "Vijayanagar",
		Coordinates: manager.Coordinates{Latitude: 12.9, Longitude: 77.5},
		Climate:     "Clear",
		TempKelvin:  300.0,
		Humidity:    40,
		Visibility:  6000,
	}, current)
}

func TestByCoordinates_Success(t *testing.T) {
	srv := stub(t, http.StatusOK, vijayanagarBody, func(r *http.Request) {
		assert.Equal(t, "12.9", r.URL.Query().Get("lat"))
		assert.Equal(t, "77.5", r.URL.Query().Get("lon"))
		assert.Empty(t, r.URL.Query().Get("zip"))
	})

	current, err := testClient(srv.URL, 5*time.Second).ByCoordinates(context.Background(), manager.Coordinates{Latitude: 12.9, Longitude: 77.5})
	require.NoError(t, err)
	assert.Equal(t, "Clear", current.Climate)
}

func TestByPostalCode_NotFound(t *testing.T) {
	srv := stub(t, http.StatusNotFound, `{"cod":"404","message":"city not found"}`, nil)

	_, err := testClient(srv.URL, 5*time.Second).ByPostalCode(context.Background(), "000000", "in")
	require.ErrorIs(t, err, manager.ErrNotFound)
}

func TestByPostalCode_NotFoundNumericCod(t *testing.T) {
	srv := stub(t, http.StatusOK, `{"cod":404,"message":"city not found"}`, nil)

	_, err := testClient(srv.URL, 5*time.Second).ByPostalCode(context.Background(), "000000", "in")
	require.ErrorIs(t, err, manager.ErrNotFound)
}

func TestByPostalCode_ServerError(t *testing.T) {
	srv := stub(t, http.StatusInternalServerError, `{"cod":"500","message":"internal error"}`, nil)

	_, err := testClient(srv.URL, 5*time.Second).ByPostalCode(context.Background(), "560006", "in")
	require.Error(t, err)
	assert.NotErrorIs(t, err, manager.ErrNotFound)

	var perr *manager.ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, http.StatusInternalServerError, perr.StatusCode)
	assert.Equal(t, providerName, perr.Provider)
}

func TestByPostalCode_Unauthorized(t *testing.T) {
	srv := stub(t, http.StatusUnauthorized, `{"cod":401,"message":"Invalid API key."}`, nil)

	_, err := testClient(srv.URL, 5*time.Second).ByPostalCode(context.Background(), "560006", "in")
	var perr *manager.ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, http.StatusUnauthorized, perr.StatusCode)
}

func TestByPostalCode_NonJSONError(t *testing.T) {
	srv := stub(t, http.StatusBadGateway, `<html>bad gateway</html>`, nil)

	_, err := testClient(srv.URL, 5*time.Second).ByPostalCode(context.Background(), "560006", "in")
	var perr *manager.ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Contains(t, err.Error(), "bad gateway")
}

func TestByPostalCode_MissingFields(t *testing.T) {
	srv := stub(t, http.StatusOK, `{"name":"Somewhere","cod":200,"weather":[]}`, nil)

	_, err := testClient(srv.URL, 5*time.Second).ByPostalCode(context.Background(), "560006", "in")
	var perr *manager.ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Contains(t, err.Error(), "coord")
	assert.Contains(t, err.Error(), "weather")
	assert.Contains(t, err.Error(), "main")
	assert.Contains(t, err.Error(), "visibility")
}

func TestByPostalCode_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(vijayanagarBody))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL, 50*time.Millisecond).ByPostalCode(context.Background(), "560006", "in")
	var perr *manager.ProviderError
	require.ErrorAs(t, err, &perr)
}
