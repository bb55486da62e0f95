package geolocation

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"googlemaps.github.io/maps"

	"postos/internal/geo"
)

// GoogleLocator asks the Google Maps Geolocation API, falling back to IP-based location.
type GoogleLocator struct {
	client *maps.Client
}

// NewGoogleLocator returns Unsupported when no API key is configured.
func NewGoogleLocator(apiKey string, opts ...maps.ClientOption) (Locator, error) {
	if apiKey == "" {
		return Unsupported, nil
	}
	client, err := maps.NewClient(append([]maps.ClientOption{maps.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("criar cliente google maps: %w", err)
	}
	return &GoogleLocator{client: client}, nil
}

func (g *GoogleLocator) CurrentCoordinate(ctx context.Context) (geo.Coordinate, error) {
	result, err := g.client.Geolocate(ctx, &maps.GeolocationRequest{ConsiderIP: true})
	if err != nil {
		log.Warn().Err(err).Msg("Erro ao consultar geolocalização do Google")
		return geo.Coordinate{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	c := geo.Coordinate{Lat: result.Location.Lat, Lon: result.Location.Lng}
	if !c.Valid() {
		return geo.Coordinate{}, ErrUnavailable
	}
	log.Debug().Float64("lat", c.Lat).Float64("lon", c.Lon).Float64("accuracy", result.Accuracy).Msg("Localização obtida pelo Google")
	return c, nil
}

var ErrAddressNotFound = errors.New("endereço não encontrado")

// Geocoder turns a street address into a coordinate.
type Geocoder interface {
	Geocode(ctx context.Context, endereco string) (geo.Coordinate, error)
}

type GoogleGeocoder struct {
	client *maps.Client
}

// NewGoogleGeocoder returns nil and no error when no API key is configured.
func NewGoogleGeocoder(apiKey string, opts ...maps.ClientOption) (*GoogleGeocoder, error) {
	if apiKey == "" {
		return nil, nil
	}
	client, err := maps.NewClient(append([]maps.ClientOption{maps.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("criar cliente google maps: %w", err)
	}
	return &GoogleGeocoder{client: client}, nil
}

func (g *GoogleGeocoder) Geocode(ctx context.Context, endereco string) (geo.Coordinate, error) {
	results, err := g.client.Geocode(ctx, &maps.GeocodingRequest{
		Address:  endereco,
		Region:   "br",
		Language: "pt-BR",
	})
	if err != nil {
		return geo.Coordinate{}, fmt.Errorf("geocodificar %q: %w", endereco, err)
	}
	if len(results) == 0 {
		return geo.Coordinate{}, ErrAddressNotFound
	}

	loc := results[0].Geometry.Location
	return geo.Coordinate{Lat: loc.Lat, Lon: loc.Lng}, nil
}
