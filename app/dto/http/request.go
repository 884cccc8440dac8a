package http

type RegisterRequest struct {
	Name       string `json:"name"`
	Surname    string `json:"surname"`
	NationalID string `json:"nationalId"`
	Email      string `json:"email"`
	Password   string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UpdateProfileRequest struct {
	Name       string `json:"name"`
	Surname    string `json:"surname"`
	NationalID string `json:"nationalId"`
	Email      string `json:"email"`
}

type ResetRequestRequest struct {
	Email string `json:"email"`
}

type ResetConfirmRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

type CreateReservationRequest struct {
	UserID        uint64 `json:"userId"`
	TicketCount   int    `json:"ticketCount"`
	TransportID   uint64 `json:"transportId"`
	DestinationID uint64 `json:"destinationId"`
	PlaceID       uint64 `json:"placeId"`
}
