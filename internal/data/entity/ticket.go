package entity

import "time"

type TicketStatus string

const (
	TicketOpen   TicketStatus = "open"
	TicketClosed TicketStatus = "closed"
)

type Ticket struct {
	Base        `bson:",inline"`
	User        string       `json:"user" bson:"user"`
	Subject     string       `json:"subject" bson:"subject"`
	Description string       `json:"description" bson:"description"`
	Status      TicketStatus `json:"status" bson:"status"`
}

// RevokedToken blocks a signed token id until it would have expired anyway.
type RevokedToken struct {
	Base      `bson:",inline"`
	User      string    `json:"user" bson:"user"`
	ExpiresAt time.Time `json:"expiresAt" bson:"expiresAt"`
}
