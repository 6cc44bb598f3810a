package geo_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripintel/tripintel/internal/domain"
	"github.com/tripintel/tripintel/internal/geo"
)

func TestNominatimGeocoder_ResolvePlace_OK(t *testing.T) {
	var gotQuery, gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		gotUA = r.Header.Get("User-Agent")
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		w.Write([]byte(`[{"lat": "48.8566101", "lon": "2.3514992"}]`))
	}))
	defer srv.Close()

	g := geo.NewNominatimGeocoder(srv.URL)
	coord, err := g.ResolvePlace(context.Background(), "Paris")

	require.NoError(t, err)
	assert.Equal(t, "Paris", gotQuery)
	assert.NotEmpty(t, gotUA, "Nominatim requires an identifying User-Agent")
	assert.InDelta(t, 48.8566101, coord.Lat, 1e-9)
	assert.InDelta(t, 2.3514992, coord.Lon, 1e-9)
}

func TestNominatimGeocoder_ResolvePlace_NoMatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	g := geo.NewNominatimGeocoder(srv.URL)
	_, err := g.ResolvePlace(context.Background(), "Nowhere That Exists")

	assert.ErrorIs(t, err, domain.ErrPlaceNotFound)
}

func TestNominatimGeocoder_ResolvePlace_ProviderErrorIsNotFound(t *testing.T) {
	// A provider that keeps failing yields the recoverable not-found outcome,
	// never a crash or a distinct fatal error.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	g := geo.NewNominatimGeocoder(srv.URL)
	_, err := g.ResolvePlace(context.Background(), "Paris")

	assert.ErrorIs(t, err, domain.ErrPlaceNotFound)
}

func TestNominatimGeocoder_ResolvePlace_EmptyName(t *testing.T) {
	g := geo.NewNominatimGeocoder("http://127.0.0.1:0")
	_, err := g.ResolvePlace(context.Background(), "   ")

	assert.ErrorIs(t, err, domain.ErrValidation)
}
