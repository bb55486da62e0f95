package geolocation

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"googlemaps.github.io/maps"

	"postos/internal/geo"
)

type countingLocator struct {
	coord geo.Coordinate
	err   error
	calls int
}

func (c *countingLocator) CurrentCoordinate(context.Context) (geo.Coordinate, error) {
	c.calls++
	return c.coord, c.err
}

func TestStaticLocator(t *testing.T) {
	got, err := StaticLocator{Coordinate: geo.Coordinate{Lat: -23.5, Lon: -46.6}}.CurrentCoordinate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, geo.Coordinate{Lat: -23.5, Lon: -46.6}, got)

	_, err = StaticLocator{Coordinate: geo.Coordinate{Lat: 123, Lon: 0}}.CurrentCoordinate(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestFallback(t *testing.T) {
	secondary := &countingLocator{coord: geo.Coordinate{Lat: 1, Lon: 2}}

	got, err := Fallback(Unsupported, secondary).CurrentCoordinate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, geo.Coordinate{Lat: 1, Lon: 2}, got)
	assert.Equal(t, 1, secondary.calls)

	denied := &countingLocator{err: ErrUnavailable}
	_, err = Fallback(denied, secondary).CurrentCoordinate(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, 1, secondary.calls)
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, "Geolocalização não suportada pelo navegador", UserMessage(ErrUnsupported))
	assert.Equal(t, "Erro ao obter localização", UserMessage(ErrUnavailable))
}

func TestNewGoogleLocatorWithoutKey(t *testing.T) {
	loc, err := NewGoogleLocator("")
	require.NoError(t, err)
	_, err = loc.CurrentCoordinate(context.Background())
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestGoogleLocator(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    geo.Coordinate
		wantErr bool
	}{
		{
			name: "located",
			body: `{"location": {"lat": -23.5505, "lng": -46.6333}, "accuracy": 1200}`,
			want: geo.Coordinate{Lat: -23.5505, Lon: -46.6333},
		},
		{
			name:    "api error",
			body:    `{"error": {"code": 403, "message": "API key invalid", "errors": [{"reason": "keyInvalid"}]}}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/geolocation/v1/geolocate", r.URL.Path)
				assert.Equal(t, "test-key", r.URL.Query().Get("key"))
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			loc, err := NewGoogleLocator("test-key", maps.WithBaseURL(srv.URL))
			require.NoError(t, err)

			got, err := loc.CurrentCoordinate(context.Background())
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnavailable)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGoogleGeocoder(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    geo.Coordinate
		wantErr error
	}{
		{
			name: "found",
			body: `{"status":"OK","results":[{"geometry":{"location":{"lat":-23.5614,"lng":-46.6559}}}]}`,
			want: geo.Coordinate{Lat: -23.5614, Lon: -46.6559},
		},
		{name: "zero results", body: `{"status":"ZERO_RESULTS","results":[]}`, wantErr: ErrAddressNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/maps/api/geocode/json", r.URL.Path)
				assert.Equal(t, "Av. Paulista, 1000", r.URL.Query().Get("address"))
				assert.Equal(t, "br", r.URL.Query().Get("region"))
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			g, err := NewGoogleGeocoder("test-key", maps.WithBaseURL(srv.URL))
			require.NoError(t, err)

			got, err := g.Geocode(context.Background(), "Av. Paulista, 1000")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewGoogleGeocoderWithoutKey(t *testing.T) {
	g, err := NewGoogleGeocoder("")
	require.NoError(t, err)
	assert.Nil(t, g)
}
