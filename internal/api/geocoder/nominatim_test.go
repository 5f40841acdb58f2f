package geocoder

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestGeocodeMatch(t *testing.T) {
	var gotQuery, gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte(`[{"lat":"18.5204","lon":"73.8567","display_name":"Pune, Maharashtra, India"}]`))
	}))
	defer srv.Close()

	c := NewNominatimClient(srv.URL, "test-agent/1.0", zap.NewNop())
	coords := c.Geocode(context.Background(), "Pune, Maharashtra, India")

	require.NotNil(t, coords)
	assert.InDelta(t, 18.5204, coords.Lat, 1e-9)
	assert.InDelta(t, 73.8567, coords.Lng, 1e-9)
	assert.Equal(t, "Pune, Maharashtra, India", gotQuery)
	assert.Equal(t, "test-agent/1.0", gotUA)
}

func TestGeocodeNoMatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewNominatimClient(srv.URL, "test-agent/1.0", zap.NewNop())
	assert.Nil(t, c.Geocode(context.Background(), "nowhere at all"))
	// 无结果不进缓存
	assert.Equal(t, 0, c.CacheSize())
}

func TestGeocodeServerErrorReturnsNil(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewNominatimClient(srv.URL, "test-agent/1.0", zap.NewNop())
	assert.Nil(t, c.Geocode(context.Background(), "Pune"))
}

func TestGeocodeBadCoordinateReturnsNil(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"lat":"not-a-number","lon":"73.8567"}]`))
	}))
	defer srv.Close()

	c := NewNominatimClient(srv.URL, "test-agent/1.0", zap.NewNop())
	assert.Nil(t, c.Geocode(context.Background(), "Pune"))
}

func TestGeocodeCaching(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Write([]byte(`[{"lat":"18.5","lon":"73.8"}]`))
	}))
	defer srv.Close()

	c := NewNominatimClient(srv.URL, "test-agent/1.0", zap.NewNop())

	first := c.Geocode(context.Background(), "Pune")
	second := c.Geocode(context.Background(), "Pune")

	require.NotNil(t, first)
	require.NotNil(t, second)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.Equal(t, 1, c.CacheSize())

	c.ClearCache()
	assert.Equal(t, 0, c.CacheSize())
}
