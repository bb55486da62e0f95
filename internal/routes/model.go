package routes

import "encoding/json"

const (
	GeometryGeoJSON  = "geojson"
	GeometryPolyline = "polyline"
)

type OSRMResponse struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Routes  []OSRMRoute `json:"routes"`
}

type OSRMRoute struct {
	Distance float64         `json:"distance"`
	Duration float64         `json:"duration"`
	Geometry json.RawMessage `json:"geometry"`
}

type GeoJSONLineString struct {
	Type        string      `json:"type"`
	Coordinates [][]float64 `json:"coordinates"`
}
