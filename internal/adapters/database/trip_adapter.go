package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/voyara/backend/internal/domain/entities"
	"github.com/voyara/backend/internal/domain/repositories"
	"github.com/voyara/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/voyara/backend/pkg/errors"
)

// TripAdapter implements the TripRepository interface
type TripAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewTripAdapter creates a new trip adapter
func NewTripAdapter(client *postgres.Client) repositories.TripRepository {
	return &TripAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

var tripColumns = []interface{}{
	"id", "user_id", "name", "description", "start_date", "end_date",
	"cover_photo", "budget", "status", "created_at", "updated_at",
}

// Create creates a new trip
func (a *TripAdapter) Create(ctx context.Context, trip *entities.Trip) error {
	record := goqu.Record{
		"id":          trip.ID,
		"user_id":     trip.OwnerID,
		"name":        trip.Name,
		"description": sql.NullString{String: trip.Description, Valid: trip.Description != ""},
		"start_date":  trip.StartDate,
		"end_date":    trip.EndDate,
		"cover_photo": sql.NullString{String: trip.CoverPhoto, Valid: trip.CoverPhoto != ""},
		"budget":      trip.Budget,
		"status":      string(trip.Status),
		"created_at":  trip.CreatedAt,
		"updated_at":  trip.UpdatedAt,
	}

	query, args, err := a.db.Insert("trips").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	_, err = a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to create trip", err)
	}

	return nil
}

// GetByID retrieves a trip by ID
func (a *TripAdapter) GetByID(ctx context.Context, id string) (*entities.Trip, error) {
	query, args, err := a.db.Select(tripColumns...).
		From("trips").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	trip, err := scanTrip(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("trip with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get trip", err)
	}

	return trip, nil
}

// ListByOwner retrieves all trips belonging to a user, newest first
func (a *TripAdapter) ListByOwner(ctx context.Context, ownerID string, filter repositories.TripFilter) ([]*entities.Trip, error) {
	ds := a.db.Select(tripColumns...).
		From("trips").
		Where(goqu.Ex{"user_id": ownerID})

	if filter.Status != "" {
		ds = ds.Where(goqu.Ex{"status": string(filter.Status)})
	}

	query, args, err := ds.Order(goqu.I("created_at").Desc()).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list trips", err)
	}
	defer rows.Close()

	trips := []*entities.Trip{}
	for rows.Next() {
		trip, err := scanTrip(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan trip", err)
		}
		trips = append(trips, trip)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating trips", err)
	}

	return trips, nil
}

// Update updates a trip
func (a *TripAdapter) Update(ctx context.Context, trip *entities.Trip) error {
	trip.UpdatedAt = time.Now().UTC()

	record := goqu.Record{
		"name":        trip.Name,
		"description": sql.NullString{String: trip.Description, Valid: trip.Description != ""},
		"start_date":  trip.StartDate,
		"end_date":    trip.EndDate,
		"cover_photo": sql.NullString{String: trip.CoverPhoto, Valid: trip.CoverPhoto != ""},
		"budget":      trip.Budget,
		"status":      string(trip.Status),
		"updated_at":  trip.UpdatedAt,
	}

	query, args, err := a.db.Update("trips").
		Set(record).
		Where(goqu.Ex{"id": trip.ID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update trip", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("trip with id %s not found", trip.ID))
	}

	return nil
}

// Delete deletes a trip. Associated trip_destinations rows are removed by
// the store's cascade.
func (a *TripAdapter) Delete(ctx context.Context, id string) error {
	query, args, err := a.db.Delete("trips").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build delete query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to delete trip", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("trip with id %s not found", id))
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTrip(row rowScanner) (*entities.Trip, error) {
	trip := &entities.Trip{}
	var description, coverPhoto sql.NullString
	var budget sql.NullFloat64
	var startDate, endDate time.Time
	var status string

	err := row.Scan(
		&trip.ID,
		&trip.OwnerID,
		&trip.Name,
		&description,
		&startDate,
		&endDate,
		&coverPhoto,
		&budget,
		&status,
		&trip.CreatedAt,
		&trip.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	trip.Description = description.String
	trip.CoverPhoto = coverPhoto.String
	trip.StartDate = startDate.Format(entities.TripDateLayout)
	trip.EndDate = endDate.Format(entities.TripDateLayout)
	trip.Status = entities.TripStatus(status)
	if budget.Valid {
		trip.Budget = &budget.Float64
	}

	return trip, nil
}
