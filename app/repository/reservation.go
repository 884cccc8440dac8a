package repository

import (
	"context"
	"database/sql"

	"github.com/tourcolombia/booking/app/entity"
)

type ReservationRepository struct {
	db querier
}

func NewReservationRepository(db *sql.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

func (r *ReservationRepository) WithTx(tx *sql.Tx) *ReservationRepository {
	return &ReservationRepository{db: tx}
}

func (r *ReservationRepository) Create(ctx context.Context, reservation *entity.Reservation) error {
	query := `
		INSERT INTO reservations (user_id, ticket_count, transport_id, destination_id, place_id, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	result, err := r.db.ExecContext(ctx, query,
		reservation.UserID,
		reservation.TicketCount,
		reservation.TransportID,
		reservation.DestinationID,
		reservation.PlaceID,
		reservation.Status,
		reservation.CreatedAt,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	reservation.ID = uint64(id)
	return nil
}

func (r *ReservationRepository) FindByID(ctx context.Context, id uint64) (*entity.Reservation, error) {
	query := `
		SELECT id, user_id, ticket_count, transport_id, destination_id, place_id, status, created_at
		FROM reservations WHERE id = ?
	`
	reservation := &entity.Reservation{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&reservation.ID,
		&reservation.UserID,
		&reservation.TicketCount,
		&reservation.TransportID,
		&reservation.DestinationID,
		&reservation.PlaceID,
		&reservation.Status,
		&reservation.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return reservation, nil
}

func (r *ReservationRepository) ListByUser(ctx context.Context, userID uint64) ([]entity.ReservationDetail, error) {
	query := `
		SELECT r.id, r.ticket_count, t.name, d.name, p.name, r.status, r.created_at
		FROM reservations r
		INNER JOIN transport_options t ON r.transport_id = t.id
		INNER JOIN destinations d ON r.destination_id = d.id
		INNER JOIN places p ON r.place_id = p.id
		WHERE r.user_id = ?
		ORDER BY r.created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	details := []entity.ReservationDetail{}
	for rows.Next() {
		var d entity.ReservationDetail
		if err := rows.Scan(
			&d.ID,
			&d.TicketCount,
			&d.Transport,
			&d.Destination,
			&d.Place,
			&d.Status,
			&d.CreatedAt,
		); err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	return details, rows.Err()
}

func (r *ReservationRepository) Delete(ctx context.Context, id uint64) error {
	query := `DELETE FROM reservations WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *ReservationRepository) DeleteByUserID(ctx context.Context, userID uint64) error {
	query := `DELETE FROM reservations WHERE user_id = ?`
	_, err := r.db.ExecContext(ctx, query, userID)
	return err
}
