package dto

import "github.com/tourcolombia/booking/app/entity"

type LoginResult struct {
	User        *entity.User
	AccessToken string
	ExpiresIn   int64
}

type ResetRequestResult struct {
	Token string
}

type ReservationOptions struct {
	Transports   []entity.TransportOption
	Destinations []entity.Destination
}
