package routes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	neturl "net/url"

	"googlemaps.github.io/maps"

	"postos/internal/geo"
	"postos/pkg/httpclient"
	"postos/pkg/metrics"
)

var ErrMalformedRoute = errors.New("resposta de rota malformada")

type InterfaceService interface {
	Route(ctx context.Context, from, to geo.Coordinate) ([]geo.Coordinate, error)
}

// Service fetches driving paths from an OSRM server. The public demo server has no SLA and no auth.
type Service struct {
	client   httpclient.Interface
	geometry string
}

func NewRoutesService(client httpclient.Interface, geometry string) *Service {
	if geometry != GeometryPolyline {
		geometry = GeometryGeoJSON
	}
	return &Service{client: client, geometry: geometry}
}

// Route returns the driving path latitude-first. OSRM answers longitude-first; an answer without routes
// yields an empty path and no error.
func (s *Service) Route(ctx context.Context, from, to geo.Coordinate) (points []geo.Coordinate, err error) {
	defer func() {
		metrics.RouteRequests.WithLabelValues(metrics.Outcome(err)).Inc()
	}()

	path := "/route/v1/driving/" + from.LonLat() + ";" + to.LonLat() +
		"?" + neturl.Values{"geometries": {s.geometry}}.Encode()

	resp, err := s.client.Get(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("erro na requisição OSRM: %w", err)
	}

	var osrmResp OSRMResponse
	if err := json.Unmarshal(resp.Body, &osrmResp); err != nil {
		if statusErr := resp.Err(); statusErr != nil {
			return nil, fmt.Errorf("OSRM retornou erro: %w", statusErr)
		}
		return nil, fmt.Errorf("%w: %v", ErrMalformedRoute, err)
	}
	if osrmResp.Code != "Ok" {
		return nil, fmt.Errorf("OSRM retornou %q: %s", osrmResp.Code, osrmResp.Message)
	}
	if len(osrmResp.Routes) == 0 {
		return []geo.Coordinate{}, nil
	}

	return s.decodeGeometry(osrmResp.Routes[0].Geometry)
}

func (s *Service) decodeGeometry(raw json.RawMessage) ([]geo.Coordinate, error) {
	if s.geometry == GeometryPolyline {
		var encoded string
		if err := json.Unmarshal(raw, &encoded); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedRoute, err)
		}
		return decodePolyline(encoded)
	}

	var line GeoJSONLineString
	if err := json.Unmarshal(raw, &line); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedRoute, err)
	}

	points := make([]geo.Coordinate, 0, len(line.Coordinates))
	for _, pair := range line.Coordinates {
		c, err := geo.FromLonLat(pair)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedRoute, err)
		}
		points = append(points, c)
	}
	return points, nil
}

// decodePolyline decodes a precision-5 encoded polyline, which is already latitude-first.
func decodePolyline(encoded string) ([]geo.Coordinate, error) {
	path, err := maps.DecodePolyline(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedRoute, err)
	}
	points := make([]geo.Coordinate, 0, len(path))
	for _, p := range path {
		points = append(points, geo.Coordinate{Lat: p.Lat, Lon: p.Lng})
	}
	return points, nil
}
