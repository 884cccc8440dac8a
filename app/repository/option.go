package repository

import (
	"context"
	"database/sql"

	"github.com/tourcolombia/booking/app/entity"
)

// OptionRepository reads the static lookup tables backing the reservation form.
type OptionRepository struct {
	db querier
}

func NewOptionRepository(db *sql.DB) *OptionRepository {
	return &OptionRepository{db: db}
}

func (r *OptionRepository) ListTransports(ctx context.Context) ([]entity.TransportOption, error) {
	query := `SELECT id, name FROM transport_options ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	transports := []entity.TransportOption{}
	for rows.Next() {
		var t entity.TransportOption
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, err
		}
		transports = append(transports, t)
	}
	return transports, rows.Err()
}

func (r *OptionRepository) ListDestinations(ctx context.Context) ([]entity.Destination, error) {
	query := `SELECT id, name FROM destinations ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	destinations := []entity.Destination{}
	for rows.Next() {
		var d entity.Destination
		if err := rows.Scan(&d.ID, &d.Name); err != nil {
			return nil, err
		}
		destinations = append(destinations, d)
	}
	return destinations, rows.Err()
}

func (r *OptionRepository) ListPlacesByDestination(ctx context.Context, destinationID uint64) ([]entity.Place, error) {
	query := `SELECT id, destination_id, name FROM places WHERE destination_id = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, destinationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	places := []entity.Place{}
	for rows.Next() {
		var p entity.Place
		if err := rows.Scan(&p.ID, &p.DestinationID, &p.Name); err != nil {
			return nil, err
		}
		places = append(places, p)
	}
	return places, rows.Err()
}

func (r *OptionRepository) FindPlace(ctx context.Context, id uint64) (*entity.Place, error) {
	query := `SELECT id, destination_id, name FROM places WHERE id = ?`
	p := &entity.Place{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.DestinationID, &p.Name)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}
