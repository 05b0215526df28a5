package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	GeoTypeLandmark   = "landmark"
	GeoTypeTerrain    = "terrain"
	GeoTypeHistorical = "historical"
	GeoTypeCultural   = "cultural"
	GeoTypeClimate    = "climate"
	GeoTypeEconomic   = "economic"
	GeoTypePolitical  = "political"
)

var GeoPointTypes = []string{
	GeoTypeLandmark, GeoTypeTerrain, GeoTypeHistorical,
	GeoTypeCultural, GeoTypeClimate, GeoTypeEconomic, GeoTypePolitical,
}

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type GeoPoint struct {
	ID          uuid.UUID   `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Coordinates Coordinates `json:"coordinates"`
	Type        string      `json:"type"`
	Tags        []string    `json:"tags"`
	LessonID    *uuid.UUID  `json:"lesson_id,omitempty"`
	Facts       []string    `json:"facts"`
	MediaKeys   []string    `json:"media_keys"`
	IsActive    bool        `json:"is_active"`
	CreatedBy   uuid.UUID   `json:"created_by"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

type GeoPointFilter struct {
	Type   string
	Tag    string
	Limit  int
	Offset int
}
