package domain

import (
	"errors"
	"time"
)

// PropertyType classifies a listing.
type PropertyType string

const (
	PropertyResidential PropertyType = "RESIDENTIAL"
	PropertyCondo       PropertyType = "CONDO"
)

var ErrHomeNotFound = errors.New("home not found")

// Image is a photo attached to a listing.
type Image struct {
	URL string `json:"url" bson:"url"`
}

// Home is a property listing owned by a realtor.
type Home struct {
	ID           string       `json:"id" bson:"_id,omitempty"`
	Address      string       `json:"address" bson:"address"`
	City         string       `json:"city" bson:"city"`
	Price        float64      `json:"price" bson:"price"`
	LandSizeSqm  float64      `json:"land_size_sqm" bson:"land_size_sqm"`
	Bedrooms     int          `json:"bedrooms" bson:"bedrooms"`
	Bathrooms    int          `json:"bathrooms" bson:"bathrooms"`
	PropertyType PropertyType `json:"property_type" bson:"property_type"`
	Images       []Image      `json:"images" bson:"images"`
	RealtorID    int64        `json:"realtor_id" bson:"realtor_id"`
	CreatedAt    time.Time    `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at" bson:"updated_at"`
}
