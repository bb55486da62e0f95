package posto

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"postos/internal/geo"
)

type InterfaceService interface {
	LoadAll(ctx context.Context) ([]Posto, error)
	LoadTopN(ctx context.Context, fuel FuelType) ([]Posto, error)
	SuggestNearest(ctx context.Context, coord geo.Coordinate, fuel FuelType) (Posto, error)
}

// Service implements the station store operations. Failures are logged and returned; nothing is retried
// and nothing is cached, the caller decides whether prior state survives.
type Service struct {
	InterfaceRepository InterfaceRepository
}

func NewPostosService(InterfaceRepository InterfaceRepository) *Service {
	return &Service{InterfaceRepository}
}

func (s *Service) LoadAll(ctx context.Context) ([]Posto, error) {
	postos, err := s.InterfaceRepository.ListPostos(ctx)
	if err != nil {
		logFailure(err, "loadAll").Msg("Erro ao buscar postos")
		return nil, err
	}
	return postos, nil
}

// LoadTopN returns the ranking as sent by the API; the size limit is the API's contract.
func (s *Service) LoadTopN(ctx context.Context, fuel FuelType) ([]Posto, error) {
	postos, err := s.InterfaceRepository.Top10(ctx, fuel)
	if err != nil {
		logFailure(err, "loadTopN").Str("tipo", string(fuel)).Msg("Erro ao buscar ranking")
		return nil, err
	}
	return postos, nil
}

func (s *Service) SuggestNearest(ctx context.Context, coord geo.Coordinate, fuel FuelType) (Posto, error) {
	p, err := s.InterfaceRepository.Sugerir(ctx, coord, fuel)
	if err != nil {
		logFailure(err, "suggestNearest").
			Float64("lat", coord.Lat).
			Float64("lon", coord.Lon).
			Str("tipo", string(fuel)).
			Msg("Erro ao sugerir posto")
		return Posto{}, err
	}
	return p, nil
}

func logFailure(err error, op string) *zerolog.Event {
	if errors.Is(err, context.Canceled) {
		return log.Debug().Err(err).Str("op", op)
	}
	return log.Error().Err(err).Str("op", op)
}
