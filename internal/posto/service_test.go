package posto

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"postos/internal/geo"
)

type fakeRepository struct {
	postos []Posto
	posto  Posto
	err    error
	calls  int
}

func (f *fakeRepository) ListPostos(context.Context) ([]Posto, error) {
	f.calls++
	return f.postos, f.err
}

func (f *fakeRepository) Top10(context.Context, FuelType) ([]Posto, error) {
	f.calls++
	return f.postos, f.err
}

func (f *fakeRepository) Sugerir(context.Context, geo.Coordinate, FuelType) (Posto, error) {
	f.calls++
	return f.posto, f.err
}

func TestService_SuggestNearestKeepsCoordinates(t *testing.T) {
	want := Posto{ID: 3, Nome: "Shell", Latitude: -23.6, Longitude: -46.5}
	repo := &fakeRepository{posto: want}
	svc := NewPostosService(repo)

	got, err := svc.SuggestNearest(context.Background(), geo.Coordinate{Lat: -23.5, Lon: -46.6}, Gasolina)
	require.NoError(t, err)
	assert.Equal(t, want.Coordinate(), got.Coordinate())
}

func TestService_FailuresAreReturnedWithoutRetry(t *testing.T) {
	boom := errors.New("connection refused")
	repo := &fakeRepository{err: boom}
	svc := NewPostosService(repo)

	_, err := svc.LoadAll(context.Background())
	assert.ErrorIs(t, err, boom)
	_, err = svc.LoadTopN(context.Background(), Diesel)
	assert.ErrorIs(t, err, boom)
	_, err = svc.SuggestNearest(context.Background(), geo.Coordinate{}, Etanol)
	assert.ErrorIs(t, err, boom)

	assert.Equal(t, 3, repo.calls)
}

func TestService_LoadTopNDoesNotTrim(t *testing.T) {
	repo := &fakeRepository{postos: make([]Posto, 12)}
	svc := NewPostosService(repo)

	got, err := svc.LoadTopN(context.Background(), Gasolina)
	require.NoError(t, err)
	assert.Len(t, got, 12)
}
