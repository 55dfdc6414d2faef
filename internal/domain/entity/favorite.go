package entity

import "time"

// Favorite lives in the users/{uid}/favorites subcollection, keyed by the
// property id.
type Favorite struct {
	PropertyID string    `json:"property_id" firestore:"propertyId"`
	AddedAt    time.Time `json:"added_at" firestore:"addedAt"`
}
