package admin

import (
	"postos/internal/posto"
)

// PostoForm is the station registration form as submitted by the panel.
type PostoForm struct {
	Nome          string   `validate:"required,max=120"`
	Endereco      string   `validate:"required,max=255"`
	Latitude      *float64 `validate:"omitempty,gte=-90,lte=90"`
	Longitude     *float64 `validate:"omitempty,gte=-180,lte=180"`
	PrecoGasolina *float64 `validate:"omitempty,gt=0"`
	PrecoEtanol   *float64 `validate:"omitempty,gt=0"`
	PrecoDiesel   *float64 `validate:"omitempty,gt=0"`
	Imagem        *posto.Image
}

type UpdatePostoRequest struct {
	Nome          *string  `json:"nome" validate:"omitempty,min=1,max=120"`
	Endereco      *string  `json:"endereco" validate:"omitempty,min=1,max=255"`
	Latitude      *float64 `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude     *float64 `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
	PrecoGasolina *float64 `json:"preco_gasolina" validate:"omitempty,gt=0"`
	PrecoEtanol   *float64 `json:"preco_etanol" validate:"omitempty,gt=0"`
	PrecoDiesel   *float64 `json:"preco_diesel" validate:"omitempty,gt=0"`
}

func (r UpdatePostoRequest) toUpdate() posto.Update {
	return posto.Update{
		Nome:          r.Nome,
		Endereco:      r.Endereco,
		Latitude:      r.Latitude,
		Longitude:     r.Longitude,
		PrecoGasolina: r.PrecoGasolina,
		PrecoEtanol:   r.PrecoEtanol,
		PrecoDiesel:   r.PrecoDiesel,
	}
}

type PostoResponse struct {
	Success bool        `json:"success"`
	Posto   posto.Posto `json:"posto"`
}
