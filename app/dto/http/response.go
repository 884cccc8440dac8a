package http

import "time"

// Response is the envelope every endpoint answers with. Data rides along on
// success, Error on failures that carry detail beyond the message.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func OK(message string, data any) Response {
	return Response{Success: true, Message: message, Data: data}
}

func Fail(message string) Response {
	return Response{Success: false, Message: message}
}

type UserData struct {
	UserID  uint64 `json:"userId"`
	Name    string `json:"name"`
	Surname string `json:"surname"`
	Email   string `json:"email"`
}

type LoginData struct {
	UserID      uint64 `json:"userId"`
	Name        string `json:"name"`
	Surname     string `json:"surname"`
	NationalID  string `json:"nationalId"`
	Email       string `json:"email"`
	AccessToken string `json:"accessToken"`
	ExpiresIn   int64  `json:"expiresIn"`
}

type ProfileData struct {
	UserID     uint64    `json:"userId"`
	Name       string    `json:"name"`
	Surname    string    `json:"surname"`
	NationalID string    `json:"nationalId"`
	Email      string    `json:"email"`
	CreatedAt  time.Time `json:"createdAt"`
}

type UpdatedProfileData struct {
	UserID     uint64 `json:"userId"`
	Name       string `json:"name"`
	Surname    string `json:"surname"`
	NationalID string `json:"nationalId"`
	Email      string `json:"email"`
}

type ResetRequestData struct {
	ResetToken string `json:"resetToken,omitempty"`
}

type ReservationData struct {
	ReservationID uint64 `json:"reservationId"`
}

type OptionData struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

type OptionsData struct {
	Transports   []OptionData `json:"transports"`
	Destinations []OptionData `json:"destinations"`
}

type ReservationRow struct {
	ReservationID uint64    `json:"reservationId"`
	TicketCount   int       `json:"ticketCount"`
	Transport     string    `json:"transport"`
	Destination   string    `json:"destination"`
	Place         string    `json:"place"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
}

type HealthData struct {
	Timestamp time.Time `json:"timestamp"`
}
