package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"postos/internal/geo"
	"postos/pkg/httpclient"
)

func newTestService(t *testing.T, geometry string, handler http.HandlerFunc) *Service {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewRoutesService(httpclient.New(httpclient.Options{BaseURL: srv.URL, Timeout: 5 * time.Second}), geometry)
}

func TestService_RouteConvertsToLatitudeFirst(t *testing.T) {
	svc := newTestService(t, GeometryGeoJSON, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/route/v1/driving/-46.6,-23.5;-46.5,-23.6", r.URL.Path)
		assert.Equal(t, "geojson", r.URL.Query().Get("geometries"))
		_, _ = w.Write([]byte(`{
			"code": "Ok",
			"routes": [{
				"distance": 15321.4,
				"duration": 1201.2,
				"geometry": {"type": "LineString", "coordinates": [[-46.6,-23.5],[-46.55,-23.55],[-46.5,-23.6]]}
			}]
		}`))
	})

	got, err := svc.Route(context.Background(), geo.Coordinate{Lat: -23.5, Lon: -46.6}, geo.Coordinate{Lat: -23.6, Lon: -46.5})
	require.NoError(t, err)
	assert.Equal(t, []geo.Coordinate{
		{Lat: -23.5, Lon: -46.6},
		{Lat: -23.55, Lon: -46.55},
		{Lat: -23.6, Lon: -46.5},
	}, got)
}

func TestService_RouteEdgeCases(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		wantEmpty bool
		wantErr   bool
	}{
		{name: "no routes", status: http.StatusOK, body: `{"code":"Ok","routes":[]}`, wantEmpty: true},
		{name: "empty geometry", status: http.StatusOK, body: `{"code":"Ok","routes":[{"geometry":{"type":"LineString","coordinates":[]}}]}`, wantEmpty: true},
		{name: "no route found", status: http.StatusBadRequest, body: `{"code":"NoRoute","message":"Impossible route"}`, wantErr: true},
		{name: "malformed json", status: http.StatusOK, body: `<html>`, wantErr: true},
		{name: "short pair", status: http.StatusOK, body: `{"code":"Ok","routes":[{"geometry":{"coordinates":[[-46.6]]}}]}`, wantErr: true},
		{name: "gateway error", status: http.StatusBadGateway, body: `bad gateway`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(t, GeometryGeoJSON, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			got, err := svc.Route(context.Background(), geo.Coordinate{Lat: 1, Lon: 2}, geo.Coordinate{Lat: 3, Lon: 4})
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.wantEmpty {
				assert.Empty(t, got)
			}
		})
	}
}

func TestService_RoutePolylineGeometry(t *testing.T) {
	svc := newTestService(t, GeometryPolyline, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "polyline", r.URL.Query().Get("geometries"))
		_, _ = w.Write([]byte(`{"code":"Ok","routes":[{"geometry":"_p~iF~ps|U_ulLnnqC_mqNvxq` + "`" + `@"}]}`))
	})

	got, err := svc.Route(context.Background(), geo.Coordinate{}, geo.Coordinate{})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.InDelta(t, 38.5, got[0].Lat, 1e-9)
	assert.InDelta(t, -120.2, got[0].Lon, 1e-9)
	assert.InDelta(t, 43.252, got[2].Lat, 1e-9)
	assert.InDelta(t, -126.453, got[2].Lon, 1e-9)
}

func TestService_RoutePolylineNotAString(t *testing.T) {
	svc := newTestService(t, GeometryPolyline, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"code":"Ok","routes":[{"geometry":{"type":"LineString","coordinates":[]}}]}`))
	})

	_, err := svc.Route(context.Background(), geo.Coordinate{}, geo.Coordinate{})
	assert.ErrorIs(t, err, ErrMalformedRoute)
}

func TestNewRoutesServiceDefaultsToGeoJSON(t *testing.T) {
	svc := NewRoutesService(httpclient.New(httpclient.Options{}), "")
	assert.Equal(t, GeometryGeoJSON, svc.geometry)
}
