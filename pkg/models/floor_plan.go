package models

import (
	"time"

	"github.com/google/uuid"
)

// FloorPlan is an image of one building level with a pixel-to-meter scale.
// Tasks and room boundaries are positioned in the image's local coordinate
// space.
type FloorPlan struct {
	ID                  uuid.UUID `json:"id"`
	ProjectID           uuid.UUID `json:"project_id"`
	Name                string    `json:"name"`
	ImageURL            string    `json:"image_url"`
	ImageWidth          int       `json:"image_width"`
	ImageHeight         int       `json:"image_height"`
	ScalePixelsPerMeter float64   `json:"scale_pixels_per_meter"`
	FloorLevel          int       `json:"floor_level"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}
