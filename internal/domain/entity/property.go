package entity

import (
	"time"
)

const (
	PropertyStatusPending  = "pending"
	PropertyStatusApproved = "approved"
	PropertyStatusRejected = "rejected"
)

const (
	PurposeRent = "rent"
	PurposeSale = "sale"
)

// PropertyTypes is the closed set of listing categories.
var PropertyTypes = []string{"Appartement", "Maison", "Villa", "Studio", "Terrain", "Autre"}

type Property struct {
	ID          string  `json:"id" firestore:"id"`
	Title       string  `json:"title" firestore:"title"`
	Description string  `json:"description" firestore:"description"`
	Price       float64 `json:"price" firestore:"price"`
	OldPrice    float64 `json:"old_price,omitempty" firestore:"oldPrice,omitempty"`
	Surface     float64 `json:"surface" firestore:"surface"`
	Rooms       int     `json:"rooms" firestore:"rooms"`
	Type        string  `json:"type" firestore:"type"`
	Purpose     string  `json:"purpose" firestore:"purpose"` // "rent" or "sale"
	Status      string  `json:"status" firestore:"status"`   // pending -> approved|rejected
	Location    string  `json:"location" firestore:"location"`
	Latitude    float64 `json:"latitude,omitempty" firestore:"latitude,omitempty"`
	Longitude   float64 `json:"longitude,omitempty" firestore:"longitude,omitempty"`

	Images []string `json:"images" firestore:"images"`

	OwnerID string `json:"owner_id" firestore:"ownerId"`
	// LegacyOwnerID carries the "userId" field written by the old mobile
	// client. Read paths must honor both; new writes only set ownerId.
	LegacyOwnerID string `json:"-" firestore:"userId,omitempty"`
	OwnerName     string `json:"owner_name,omitempty" firestore:"ownerName,omitempty"`
	OwnerPhone    string `json:"owner_phone,omitempty" firestore:"ownerPhone,omitempty"`

	IsPromo bool `json:"is_promo" firestore:"isPromo"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

// OwnedBy reports whether the given user created this listing, checking the
// current ownership field and the legacy one.
func (p *Property) OwnedBy(userID string) bool {
	return p.OwnerID == userID || p.LegacyOwnerID == userID
}

func ValidPropertyType(t string) bool {
	for _, pt := range PropertyTypes {
		if pt == t {
			return true
		}
	}
	return false
}
