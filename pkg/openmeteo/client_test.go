package openmeteo_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	// Packages
	meteo "github.com/mutablelogic/go-meteo"
	openmeteo "github.com/mutablelogic/go-meteo/pkg/openmeteo"
	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"
)

///////////////////////////////////////////////////////////////////////////////
// TEST SET-UP

// stub is an open-meteo server which answers from fixed handlers and counts
// requests per path
type stub struct {
	*httptest.Server
	geocoding func(w http.ResponseWriter, r *http.Request)
	forecast  func(w http.ResponseWriter, r *http.Request)
	hits      map[string]*atomic.Int32
}

func newStub(t *testing.T) *stub {
	t.Helper()
	s := &stub{
		hits: map[string]*atomic.Int32{
			"/v1/search":   new(atomic.Int32),
			"/v1/forecast": new(atomic.Int32),
		},
	}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if counter, exists := s.hits[r.URL.Path]; exists {
			counter.Add(1)
		}
		switch r.URL.Path {
		case "/v1/search":
			s.geocoding(w, r)
		case "/v1/forecast":
			s.forecast(w, r)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(s.Close)
	return s
}

func (s *stub) client(t *testing.T, opts ...openmeteo.Opt) *openmeteo.Client {
	t.Helper()
	opts = append([]openmeteo.Opt{
		openmeteo.WithGeocodingEndpoint(s.URL + "/v1"),
		openmeteo.WithForecastEndpoint(s.URL + "/v1"),
		openmeteo.WithRetry(5, time.Millisecond),
	}, opts...)
	client, err := openmeteo.New(opts...)
	require.NoError(t, err)
	return client
}

func (s *stub) count(path string) int32 {
	return s.hits[path].Load()
}

func respond(status int, body string) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}
}

const (
	parisResults   = `{"results":[{"name":"Paris","latitude":48.8566,"longitude":2.3522,"country":"France"}]}`
	parisForecast  = `{"current_weather":{"temperature":21.5,"windspeed":12.0,"weathercode":3,"time":"2025-06-01T12:00"},"hourly":{"time":["2025-06-01T00:00","2025-06-01T01:00"],"relative_humidity_2m":[55.0,60.0]}}`
	noCurrentBlock = `{"hourly":{"time":["2025-06-01T00:00"],"relative_humidity_2m":[55.0]}}`
)

///////////////////////////////////////////////////////////////////////////////
// OPTIONS

func Test_New_001(t *testing.T) {
	assert := assert.New(t)

	client, err := openmeteo.New()
	assert.NoError(err)
	assert.NotNil(client)

	_, err = openmeteo.New(openmeteo.WithRetry(1, 0))
	assert.ErrorIs(err, meteo.ErrBadParameter)
	_, err = openmeteo.New(openmeteo.WithCacheTTL(-time.Second))
	assert.ErrorIs(err, meteo.ErrBadParameter)
	_, err = openmeteo.New(openmeteo.WithGeocodingEndpoint(""))
	assert.ErrorIs(err, meteo.ErrBadParameter)
	_, err = openmeteo.New(openmeteo.WithLogger(nil))
	assert.ErrorIs(err, meteo.ErrBadParameter)
}

///////////////////////////////////////////////////////////////////////////////
// GEOCODING

func Test_Resolve_001(t *testing.T) {
	assert := assert.New(t)
	s := newStub(t)
	s.geocoding = func(w http.ResponseWriter, r *http.Request) {
		assert.Equal("Paris", r.URL.Query().Get("name"))
		assert.Equal("1", r.URL.Query().Get("count"))
		respond(http.StatusOK, parisResults)(w, r)
	}

	location, err := s.client(t).Resolve(context.Background(), "Paris")
	assert.NoError(err)
	assert.Equal(openmeteo.Location{City: "Paris", Latitude: 48.8566, Longitude: 2.3522}, location)
}

func Test_Resolve_002(t *testing.T) {
	assert := assert.New(t)
	s := newStub(t)
	s.geocoding = respond(http.StatusOK, `{"generationtime_ms":0.5}`)

	_, err := s.client(t).Resolve(context.Background(), "Nonexistentville12345")
	assert.ErrorIs(err, meteo.ErrNotFound)
	assert.ErrorContains(err, "Nonexistentville12345")

	// An empty result list is also not found
	s.geocoding = respond(http.StatusOK, `{"results":[]}`)
	_, err = s.client(t).Resolve(context.Background(), "Nonexistentville12345")
	assert.ErrorIs(err, meteo.ErrNotFound)
}

func Test_Resolve_003(t *testing.T) {
	assert := assert.New(t)
	s := newStub(t)

	_, err := s.client(t).Resolve(context.Background(), "")
	assert.ErrorIs(err, meteo.ErrBadParameter)
	assert.Equal(int32(0), s.count("/v1/search"))
}

func Test_Resolve_004(t *testing.T) {
	assert := assert.New(t)
	s := newStub(t)
	s.geocoding = respond(http.StatusOK, parisResults)

	// Geocoding is never cached
	client := s.client(t)
	for range 2 {
		_, err := client.Resolve(context.Background(), "Paris")
		assert.NoError(err)
	}
	assert.Equal(int32(2), s.count("/v1/search"))
}

///////////////////////////////////////////////////////////////////////////////
// FORECAST

var paris = openmeteo.Location{City: "Paris", Latitude: 48.8566, Longitude: 2.3522}

func Test_Current_001(t *testing.T) {
	assert := assert.New(t)
	s := newStub(t)
	s.forecast = func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal("48.8566", q.Get("latitude"))
		assert.Equal("2.3522", q.Get("longitude"))
		assert.Equal("true", q.Get("current_weather"))
		assert.Equal("relative_humidity_2m", q.Get("hourly"))
		respond(http.StatusOK, parisForecast)(w, r)
	}

	weather, err := s.client(t).Current(context.Background(), paris)
	assert.NoError(err)
	assert.Equal(openmeteo.CurrentWeather{
		Temperature: 21.5,
		WindSpeed:   12.0,
		Humidity:    55.0,
		Conditions:  "Overcast",
	}, weather)
}

func Test_Current_002(t *testing.T) {
	assert := assert.New(t)
	s := newStub(t)
	s.forecast = respond(http.StatusOK, parisForecast)

	client := s.client(t)
	first, err := client.Current(context.Background(), paris)
	assert.NoError(err)
	second, err := client.Current(context.Background(), paris)
	assert.NoError(err)
	assert.Equal(first, second)
	assert.Equal(int32(1), s.count("/v1/forecast"))

	// Different coordinates are a different request
	_, err = client.Current(context.Background(), openmeteo.Location{City: "Lyon", Latitude: 45.75, Longitude: 4.85})
	assert.NoError(err)
	assert.Equal(int32(2), s.count("/v1/forecast"))
}

func Test_Current_003(t *testing.T) {
	assert := assert.New(t)
	s := newStub(t)
	s.forecast = respond(http.StatusOK, parisForecast)

	// Caching disabled
	client := s.client(t, openmeteo.WithCacheTTL(0))
	for range 2 {
		_, err := client.Current(context.Background(), paris)
		assert.NoError(err)
	}
	assert.Equal(int32(2), s.count("/v1/forecast"))
}

func Test_Current_004(t *testing.T) {
	assert := assert.New(t)
	s := newStub(t)
	s.forecast = respond(http.StatusOK, noCurrentBlock)

	_, err := s.client(t).Current(context.Background(), paris)
	assert.ErrorIs(err, meteo.ErrUpstream)

	s.forecast = respond(http.StatusOK, `{"current_weather":{"temperature":1,"windspeed":2,"weathercode":0},"hourly":{"relative_humidity_2m":[]}}`)
	_, err = s.client(t).Current(context.Background(), paris)
	assert.ErrorIs(err, meteo.ErrUpstream)
}

func Test_Current_005(t *testing.T) {
	assert := assert.New(t)
	s := newStub(t)
	s.forecast = respond(http.StatusServiceUnavailable, `{"error":true,"reason":"unavailable"}`)

	_, err := s.client(t).Current(context.Background(), paris)
	assert.ErrorIs(err, meteo.ErrTransport)
	assert.Equal(int32(6), s.count("/v1/forecast"))
}

func Test_Current_006(t *testing.T) {
	assert := assert.New(t)
	s := newStub(t)
	s.forecast = respond(http.StatusBadRequest, `{"error":true,"reason":"Latitude must be in range of -90 to 90°"}`)

	_, err := s.client(t).Current(context.Background(), openmeteo.Location{City: "Nowhere", Latitude: 200})
	assert.ErrorIs(err, meteo.ErrUpstream)
	assert.Equal(int32(1), s.count("/v1/forecast"))
}

func Test_Current_007(t *testing.T) {
	assert := assert.New(t)
	s := newStub(t)

	// Fail twice, then succeed
	var attempts atomic.Int32
	s.forecast = func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) <= 2 {
			respond(http.StatusTooManyRequests, `{}`)(w, r)
			return
		}
		respond(http.StatusOK, parisForecast)(w, r)
	}

	weather, err := s.client(t).Current(context.Background(), paris)
	assert.NoError(err)
	assert.Equal("Overcast", weather.Conditions)
	assert.Equal(int32(3), s.count("/v1/forecast"))
}

func Test_Current_008(t *testing.T) {
	assert := assert.New(t)
	s := newStub(t)
	s.forecast = respond(http.StatusServiceUnavailable, `{}`)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := s.client(t).Current(ctx, paris)
	assert.ErrorIs(err, context.Canceled)
	assert.NotErrorIs(err, meteo.ErrTransport)
}
