package domain

import (
	"errors"
	"time"
)

var ErrInquiryNotFound = errors.New("inquiry not found")

// Inquiry is a message sent by a buyer to the realtor of a listing.
type Inquiry struct {
	ID         string    `json:"id" bson:"_id,omitempty"`
	HomeID     string    `json:"home_id" bson:"home_id"`
	BuyerID    int64     `json:"buyer_id" bson:"buyer_id"`
	RealtorID  int64     `json:"realtor_id" bson:"realtor_id"`
	Message    string    `json:"message" bson:"message"`
	Notified   bool      `json:"notified" bson:"notified"`
	NotifiedAt time.Time `json:"notified_at,omitempty" bson:"notified_at,omitempty"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
}
