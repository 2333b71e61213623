package domain

import "time"

// ClientInfo identifies the person the appointment is for
type ClientInfo struct {
	Name  string
	Email string
	Phone string
}

// CalendarEvent is the reservation written to the external calendar
type CalendarEvent struct {
	BookingID   string
	Start       time.Time
	End         time.Time
	Summary     string
	Description string
	Client      ClientInfo
}

// Booking is a committed reservation. The external calendar event is its only durable record.
type Booking struct {
	ID              string
	EventID         string
	StoreID         string
	CalendarID      string
	Start           time.Time
	End             time.Time
	DurationMinutes int
	ServiceName     string
	Client          ClientInfo
	Notes           *string
	CreatedAt       time.Time
}
