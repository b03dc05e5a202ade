package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// RoomType classifies a room on a floor plan.
type RoomType string

const (
	RoomLiving    RoomType = "living"
	RoomBedroom   RoomType = "bedroom"
	RoomKitchen   RoomType = "kitchen"
	RoomBathroom  RoomType = "bathroom"
	RoomOffice    RoomType = "office"
	RoomHallway   RoomType = "hallway"
	RoomStorage   RoomType = "storage"
	RoomTechnical RoomType = "technical"
	RoomOther     RoomType = "other"
)

// IsValid reports whether t is a known room type.
func (t RoomType) IsValid() bool {
	switch t {
	case RoomLiving, RoomBedroom, RoomKitchen, RoomBathroom, RoomOffice,
		RoomHallway, RoomStorage, RoomTechnical, RoomOther:
		return true
	}
	return false
}

// Point is a vertex of a room boundary polygon in floor-plan pixel
// coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Room is an area on a floor plan delimited by a boundary polygon.
type Room struct {
	ID                  uuid.UUID `json:"id"`
	FloorPlanID         uuid.UUID `json:"floor_plan_id"`
	Name                string    `json:"name"`
	BoundaryCoordinates string    `json:"boundary_coordinates"`
	RoomType            RoomType  `json:"room_type"`
	AreaSqm             *float64  `json:"area_sqm,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// Boundary decodes the serialized boundary polygon.
func (r *Room) Boundary() ([]Point, error) {
	if r.BoundaryCoordinates == "" {
		return nil, nil
	}
	var pts []Point
	if err := json.Unmarshal([]byte(r.BoundaryCoordinates), &pts); err != nil {
		return nil, err
	}
	return pts, nil
}

// Renderable reports whether the boundary decodes to at least three points,
// the minimum for the viewer to draw a polygon.
func (r *Room) Renderable() bool {
	pts, err := r.Boundary()
	return err == nil && len(pts) >= 3
}

// EncodeBoundary serializes a polygon for storage in BoundaryCoordinates.
func EncodeBoundary(pts []Point) (string, error) {
	b, err := json.Marshal(pts)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
