package handler

import "time"

type createHomeRequest struct {
	Address      string   `json:"address"       validate:"required"`
	City         string   `json:"city"          validate:"required"`
	Price        float64  `json:"price"         validate:"required,gt=0"`
	LandSizeSqm  float64  `json:"land_size_sqm" validate:"required,gt=0"`
	Bedrooms     int      `json:"bedrooms"      validate:"required,gt=0"`
	Bathrooms    int      `json:"bathrooms"     validate:"required,gt=0"`
	PropertyType string   `json:"property_type" validate:"required,oneof=RESIDENTIAL CONDO"`
	ImageURLs    []string `json:"image_urls"    validate:"omitempty,dive,url"`
}

type updateHomeRequest struct {
	Address      *string  `json:"address,omitempty"`
	City         *string  `json:"city,omitempty"`
	Price        *float64 `json:"price,omitempty"         validate:"omitempty,gt=0"`
	LandSizeSqm  *float64 `json:"land_size_sqm,omitempty" validate:"omitempty,gt=0"`
	Bedrooms     *int     `json:"bedrooms,omitempty"      validate:"omitempty,gt=0"`
	Bathrooms    *int     `json:"bathrooms,omitempty"     validate:"omitempty,gt=0"`
	PropertyType *string  `json:"property_type,omitempty" validate:"omitempty,oneof=RESIDENTIAL CONDO"`
}

type homeResponse struct {
	ID           string    `json:"id"`
	Address      string    `json:"address"`
	City         string    `json:"city"`
	Price        float64   `json:"price"`
	LandSizeSqm  float64   `json:"land_size_sqm"`
	Bedrooms     int       `json:"bedrooms"`
	Bathrooms    int       `json:"bathrooms"`
	PropertyType string    `json:"property_type"`
	ImageURLs    []string  `json:"image_urls"`
	RealtorID    int64     `json:"realtor_id"`
	CreatedAt    time.Time `json:"created_at"`
}

type createInquiryRequest struct {
	Message string `json:"message" validate:"required,min=1"`
}

type inquiryResponse struct {
	ID        string    `json:"id"`
	HomeID    string    `json:"home_id"`
	BuyerID   int64     `json:"buyer_id"`
	Message   string    `json:"message"`
	Notified  bool      `json:"notified"`
	CreatedAt time.Time `json:"created_at"`
}
