package posto

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"postos/internal/geo"
)

type FuelType string

const (
	Gasolina FuelType = "gasolina"
	Etanol   FuelType = "etanol"
	Diesel   FuelType = "diesel"
)

var ErrInvalidFuelType = errors.New("tipo de combustível inválido")

// ParseFuelType accepts gasolina, etanol or diesel. An empty value selects gasolina.
func ParseFuelType(s string) (FuelType, error) {
	switch FuelType(strings.ToLower(strings.TrimSpace(s))) {
	case "", Gasolina:
		return Gasolina, nil
	case Etanol:
		return Etanol, nil
	case Diesel:
		return Diesel, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidFuelType, s)
}

func (f FuelType) Label() string {
	switch f {
	case Etanol:
		return "Etanol"
	case Diesel:
		return "Diesel"
	default:
		return "Gasolina"
	}
}

type Posto struct {
	ID            int64     `json:"id"`
	Nome          string    `json:"nome"`
	Endereco      string    `json:"endereco"`
	Latitude      float64   `json:"latitude"`
	Longitude     float64   `json:"longitude"`
	PrecoGasolina *float64  `json:"preco_gasolina"`
	PrecoEtanol   *float64  `json:"preco_etanol"`
	PrecoDiesel   *float64  `json:"preco_diesel"`
	Imagem        *string   `json:"imagem,omitempty"`
	AtualizadoEm  Timestamp `json:"atualizado_em"`
}

func (p Posto) Coordinate() geo.Coordinate {
	return geo.Coordinate{Lat: p.Latitude, Lon: p.Longitude}
}

// Price returns the price for the given fuel; ok is false when the station does not sell it.
func (p Posto) Price(f FuelType) (price float64, ok bool) {
	var v *float64
	switch f {
	case Etanol:
		v = p.PrecoEtanol
	case Diesel:
		v = p.PrecoDiesel
	default:
		v = p.PrecoGasolina
	}
	if v == nil {
		return 0, false
	}
	return *v, true
}

// Timestamp accepts the naive isoformat emitted by the station API as well as RFC 3339.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}
	s := strings.Trim(string(data), `"`)
	if s == "" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("atualizado_em inválido: %q", s)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + t.UTC().Format(time.RFC3339) + `"`), nil
}

// Input carries the fields of a station being created.
type Input struct {
	Nome          string   `json:"nome"`
	Endereco      string   `json:"endereco"`
	Latitude      float64  `json:"latitude"`
	Longitude     float64  `json:"longitude"`
	PrecoGasolina *float64 `json:"preco_gasolina"`
	PrecoEtanol   *float64 `json:"preco_etanol"`
	PrecoDiesel   *float64 `json:"preco_diesel"`
	Imagem        string   `json:"imagem,omitempty"`
}

// Update carries a partial update; nil fields keep the stored value.
type Update struct {
	Nome          *string  `json:"nome,omitempty"`
	Endereco      *string  `json:"endereco,omitempty"`
	Latitude      *float64 `json:"latitude,omitempty"`
	Longitude     *float64 `json:"longitude,omitempty"`
	PrecoGasolina *float64 `json:"preco_gasolina,omitempty"`
	PrecoEtanol   *float64 `json:"preco_etanol,omitempty"`
	PrecoDiesel   *float64 `json:"preco_diesel,omitempty"`
}

type Image struct {
	Filename    string
	ContentType string
	Data        []byte
}

type mutationResponse struct {
	Success bool  `json:"success"`
	Posto   Posto `json:"posto"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type loginRequest struct {
	Usuario string `json:"usuario"`
	Senha   string `json:"senha"`
}
