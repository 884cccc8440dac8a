package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/tourcolombia/booking/app/entity"
	"github.com/tourcolombia/booking/app/repository"

	"github.com/DATA-DOG/go-sqlmock"
)

const (
	insertReservationQuery       = `(?s)INSERT INTO reservations \(user_id, ticket_count, transport_id, destination_id, place_id, status, created_at\)\s+VALUES \(\?, \?, \?, \?, \?, \?, \?\)`
	findReservationByIDQuery     = `(?s)SELECT id, user_id, ticket_count, transport_id, destination_id, place_id, status, created_at\s+FROM reservations WHERE id = \?`
	listReservationsByUserQuery  = `(?s)SELECT r.id, r.ticket_count, t.name, d.name, p.name, r.status, r.created_at\s+FROM reservations r.*WHERE r.user_id = \?\s+ORDER BY r.created_at DESC`
	deleteReservationQuery       = `(?s)DELETE FROM reservations WHERE id = \?`
	deleteReservationsByUser     = `(?s)DELETE FROM reservations WHERE user_id = \?`
	listTransportsQuery          = `(?s)SELECT id, name FROM transport_options ORDER BY id`
	listDestinationsQuery        = `(?s)SELECT id, name FROM destinations ORDER BY id`
	listPlacesByDestinationQuery = `(?s)SELECT id, destination_id, name FROM places WHERE destination_id = \? ORDER BY id`
	findPlaceQuery               = `(?s)SELECT id, destination_id, name FROM places WHERE id = \?`
)

var reservationColumns = []string{
	"id",
	"user_id",
	"ticket_count",
	"transport_id",
	"destination_id",
	"place_id",
	"status",
	"created_at",
}

var reservationDetailColumns = []string{
	"id",
	"ticket_count",
	"transport",
	"destination",
	"place",
	"status",
	"created_at",
}

func TestReservationRepository_Create(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	repo := repository.NewReservationRepository(db)
	now := time.Now()
	reservation := &entity.Reservation{
		UserID:        1,
		TicketCount:   2,
		TransportID:   1,
		DestinationID: 2,
		PlaceID:       4,
		Status:        "confirmed",
		CreatedAt:     now,
	}

	mock.ExpectExec(insertReservationQuery).
		WithArgs(
			reservation.UserID,
			reservation.TicketCount,
			reservation.TransportID,
			reservation.DestinationID,
			reservation.PlaceID,
			reservation.Status,
			reservation.CreatedAt,
		).
		WillReturnResult(sqlmock.NewResult(9, 1))

	if err := repo.Create(context.Background(), reservation); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if reservation.ID != 9 {
		t.Fatalf("expected ID 9, got %d", reservation.ID)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestReservationRepository_ListByUser(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	repo := repository.NewReservationRepository(db)
	newer := time.Now()
	older := newer.Add(-24 * time.Hour)

	mock.ExpectQuery(listReservationsByUserQuery).
		WithArgs(uint64(1)).
		WillReturnRows(sqlmock.NewRows(reservationDetailColumns).
			AddRow(uint64(9), 2, "Bus", "Cartagena", "Playa Blanca", "confirmed", newer).
			AddRow(uint64(5), 1, "Flight", "Medellín", "Guatapé", "confirmed", older))

	details, err := repo.ListByUser(context.Background(), 1)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(details) != 2 {
		t.Fatalf("expected 2 reservations, got %d", len(details))
	}
	if details[0].ID != 9 || details[0].Transport != "Bus" || details[0].Place != "Playa Blanca" {
		t.Fatalf("unexpected first row: %+v", details[0])
	}
	if !details[0].CreatedAt.After(details[1].CreatedAt) {
		t.Fatalf("expected newest first ordering")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestReservationRepository_FindByID_NoRows(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	repo := repository.NewReservationRepository(db)

	mock.ExpectQuery(findReservationByIDQuery).
		WithArgs(uint64(42)).
		WillReturnRows(sqlmock.NewRows(reservationColumns))

	reservation, err := repo.FindByID(context.Background(), 42)
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if reservation != nil {
		t.Fatalf("expected nil reservation, got %+v", reservation)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestReservationRepository_Delete(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	repo := repository.NewReservationRepository(db)

	mock.ExpectExec(deleteReservationQuery).
		WithArgs(uint64(9)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(context.Background(), 9); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestReservationRepository_DeleteByUserID(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	repo := repository.NewReservationRepository(db)

	mock.ExpectExec(deleteReservationsByUser).
		WithArgs(uint64(1)).
		WillReturnResult(sqlmock.NewResult(0, 3))

	if err := repo.DeleteByUserID(context.Background(), 1); err != nil {
		t.Fatalf("delete by user failed: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestOptionRepository_ListTransportsAndDestinations(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	repo := repository.NewOptionRepository(db)

	mock.ExpectQuery(listTransportsQuery).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow(uint64(1), "Bus").
			AddRow(uint64(2), "Flight"))

	transports, err := repo.ListTransports(context.Background())
	if err != nil {
		t.Fatalf("list transports failed: %v", err)
	}
	if len(transports) != 2 || transports[0].Name != "Bus" {
		t.Fatalf("unexpected transports: %+v", transports)
	}

	mock.ExpectQuery(listDestinationsQuery).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow(uint64(1), "Cartagena"))

	destinations, err := repo.ListDestinations(context.Background())
	if err != nil {
		t.Fatalf("list destinations failed: %v", err)
	}
	if len(destinations) != 1 || destinations[0].Name != "Cartagena" {
		t.Fatalf("unexpected destinations: %+v", destinations)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestOptionRepository_ListPlacesByDestination(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	repo := repository.NewOptionRepository(db)

	mock.ExpectQuery(listPlacesByDestinationQuery).
		WithArgs(uint64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "destination_id", "name"}).
			AddRow(uint64(1), uint64(1), "Ciudad Amurallada").
			AddRow(uint64(2), uint64(1), "Playa Blanca"))

	places, err := repo.ListPlacesByDestination(context.Background(), 1)
	if err != nil {
		t.Fatalf("list places failed: %v", err)
	}
	if len(places) != 2 || places[1].Name != "Playa Blanca" {
		t.Fatalf("unexpected places: %+v", places)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestOptionRepository_FindPlace_NoRows(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	repo := repository.NewOptionRepository(db)

	mock.ExpectQuery(findPlaceQuery).
		WithArgs(uint64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "destination_id", "name"}))

	place, err := repo.FindPlace(context.Background(), 99)
	if err != nil {
		t.Fatalf("find place failed: %v", err)
	}
	if place != nil {
		t.Fatalf("expected nil place, got %+v", place)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
