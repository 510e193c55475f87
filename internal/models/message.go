package models

import "time"

// Message represents a single posted message. The owning user is embedded in
// the representation but owned by the store; the owner reference is fixed at
// creation time.
type Message struct {
	ID   int64     `json:"id"`
	Text string    `json:"text"`
	Date time.Time `json:"date"`
	User *User     `json:"user"`
}
