package service

import (
	"context"
	"errors"
	"time"

	"github.com/tourcolombia/booking/app/dto"
	"github.com/tourcolombia/booking/app/entity"
	"github.com/tourcolombia/booking/app/repository"
)

var (
	ErrReservationNotFound = errors.New("reservation not found")
	ErrUnknownPlace        = errors.New("place does not exist")
	ErrPlaceMismatch       = errors.New("place does not belong to the given destination")
)

// StatusConfirmed is the default status of a freshly created reservation.
const StatusConfirmed = "confirmed"

type ReservationService struct {
	reservationRepo *repository.ReservationRepository
	optionRepo      *repository.OptionRepository
}

func NewReservationService(
	reservationRepo *repository.ReservationRepository,
	optionRepo *repository.OptionRepository,
) *ReservationService {
	return &ReservationService{
		reservationRepo: reservationRepo,
		optionRepo:      optionRepo,
	}
}

// Create books tickets for a user. The place is checked against the given
// destination; transport and destination ids are left to the store's foreign
// keys.
func (s *ReservationService) Create(ctx context.Context, userID uint64, ticketCount int, transportID, destinationID, placeID uint64) (*entity.Reservation, error) {
	place, err := s.optionRepo.FindPlace(ctx, placeID)
	if err != nil {
		return nil, err
	}
	if place == nil {
		return nil, ErrUnknownPlace
	}
	if place.DestinationID != destinationID {
		return nil, ErrPlaceMismatch
	}

	reservation := &entity.Reservation{
		UserID:        userID,
		TicketCount:   ticketCount,
		TransportID:   transportID,
		DestinationID: destinationID,
		PlaceID:       placeID,
		Status:        StatusConfirmed,
		CreatedAt:     time.Now(),
	}

	if err := s.reservationRepo.Create(ctx, reservation); err != nil {
		return nil, err
	}
	return reservation, nil
}

func (s *ReservationService) ListOptions(ctx context.Context) (*dto.ReservationOptions, error) {
	transports, err := s.optionRepo.ListTransports(ctx)
	if err != nil {
		return nil, err
	}

	destinations, err := s.optionRepo.ListDestinations(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.ReservationOptions{
		Transports:   transports,
		Destinations: destinations,
	}, nil
}

func (s *ReservationService) ListPlaces(ctx context.Context, destinationID uint64) ([]entity.Place, error) {
	return s.optionRepo.ListPlacesByDestination(ctx, destinationID)
}

func (s *ReservationService) ListForUser(ctx context.Context, userID uint64) ([]entity.ReservationDetail, error) {
	return s.reservationRepo.ListByUser(ctx, userID)
}

func (s *ReservationService) Cancel(ctx context.Context, id uint64) error {
	reservation, err := s.reservationRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if reservation == nil {
		return ErrReservationNotFound
	}

	return s.reservationRepo.Delete(ctx, id)
}
