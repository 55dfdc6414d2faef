package entity

import "time"

type Message struct {
	ID         string    `json:"id" firestore:"id"`
	ChatID     string    `json:"chat_id" firestore:"chatId"`
	SenderID   string    `json:"sender_id" firestore:"senderId"`
	SenderName string    `json:"sender_name" firestore:"senderName"`
	Text       string    `json:"text" firestore:"text"`
	CreatedAt  time.Time `json:"created_at" firestore:"createdAt"`
	// Read is persisted for each message but read state is tracked on the
	// chat's unreadCount map; nothing flips this flag today.
	Read bool `json:"read" firestore:"read"`
}
