package entity

import "time"

type Reservation struct {
	ID            uint64
	UserID        uint64
	TicketCount   int
	TransportID   uint64
	DestinationID uint64
	PlaceID       uint64
	Status        string
	CreatedAt     time.Time
}

// ReservationDetail is a reservation joined against the lookup tables,
// carrying display names instead of ids.
type ReservationDetail struct {
	ID          uint64
	TicketCount int
	Transport   string
	Destination string
	Place       string
	Status      string
	CreatedAt   time.Time
}

type TransportOption struct {
	ID   uint64
	Name string
}

type Destination struct {
	ID   uint64
	Name string
}

type Place struct {
	ID            uint64
	DestinationID uint64
	Name          string
}
