package domain

import "time"

// Notification is a reminder message handed off to a notification sink.
// Delivery to the owner (SMS, WhatsApp, ...) is owned by whatever consumes
// the sink; the drafting system only produces the message.
type Notification struct {
	Message string    `json:"message"`
	FiredAt time.Time `json:"firedAt"`
}
