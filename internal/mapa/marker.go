package mapa

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"postos/internal/geo"
	"postos/internal/posto"
)

const (
	MarkerViewer = "viewer"
	MarkerPosto  = "posto"
)

// Marker identifies the map marker whose popup is opened, with the popup text.
type Marker struct {
	Kind     string         `json:"kind"`
	ID       int64          `json:"id,omitempty"`
	Position geo.Coordinate `json:"position"`
	Content  string         `json:"content"`
}

var printer = message.NewPrinter(language.BrazilianPortuguese)

func viewerMarker(c geo.Coordinate) Marker {
	return Marker{Kind: MarkerViewer, Position: c, Content: "Você está aqui"}
}

func postoMarker(p posto.Posto, fuel posto.FuelType, viewer *geo.Coordinate) Marker {
	lines := []string{p.Nome, p.Endereco}
	if price, ok := p.Price(fuel); ok {
		lines = append(lines, fuel.Label()+": "+FormatPrice(price))
	}
	if viewer != nil {
		lines = append(lines, printer.Sprintf("%.1f km de você", geo.Haversine(*viewer, p.Coordinate())))
	}
	return Marker{Kind: MarkerPosto, ID: p.ID, Position: p.Coordinate(), Content: strings.Join(lines, "\n")}
}

// FormatPrice renders a price the way the page shows it, e.g. "5,899 R$".
func FormatPrice(v float64) string {
	return printer.Sprintf("%.3f R$", v)
}
