package entity

import "time"

// PlaceholderParticipantName is the fallback the mobile client writes when a
// participant's profile could not be resolved. Enrichment treats it the same
// as a missing name and replaces it once the profile is available.
const PlaceholderParticipantName = "Utilisateur"

type Chat struct {
	ID               string            `json:"id" firestore:"id"`
	Participants     []string          `json:"participants" firestore:"participants"` // always two entries
	ParticipantNames map[string]string `json:"participant_names" firestore:"participantNames"`
	PropertyID       string            `json:"property_id" firestore:"propertyId"`
	PropertyTitle    string            `json:"property_title" firestore:"propertyTitle"`
	LastMessage      string            `json:"last_message" firestore:"lastMessage"`
	LastMessageTime  time.Time         `json:"last_message_time" firestore:"lastMessageTime"`
	UnreadCount      map[string]int    `json:"unread_count" firestore:"unreadCount"`
	CreatedAt        time.Time         `json:"created_at" firestore:"createdAt"`
}

// OtherParticipant returns the participant that is not the given user, or ""
// when the user is not part of the chat.
func (c *Chat) OtherParticipant(userID string) string {
	for _, p := range c.Participants {
		if p != userID {
			return p
		}
	}
	return ""
}

func (c *Chat) HasParticipant(userID string) bool {
	for _, p := range c.Participants {
		if p == userID {
			return true
		}
	}
	return false
}
