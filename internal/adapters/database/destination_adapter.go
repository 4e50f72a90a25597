package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/voyara/backend/internal/domain/entities"
	"github.com/voyara/backend/internal/domain/repositories"
	"github.com/voyara/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/voyara/backend/pkg/errors"
)

// DestinationAdapter implements the DestinationRepository interface
type DestinationAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewDestinationAdapter creates a new destination adapter
func NewDestinationAdapter(client *postgres.Client) repositories.DestinationRepository {
	return &DestinationAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

var destinationColumns = []interface{}{
	"id", "name", "country", "description", "image",
	"latitude", "longitude", "rating", "created_at", "updated_at",
}

// GetByID retrieves a destination by ID
func (a *DestinationAdapter) GetByID(ctx context.Context, id string) (*entities.Destination, error) {
	query, args, err := a.db.Select(destinationColumns...).
		From("destinations").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	destination, err := scanDestination(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("destination with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get destination", err)
	}

	return destination, nil
}

// List retrieves destinations with optional country and substring filters,
// best rated first
func (a *DestinationAdapter) List(ctx context.Context, filter repositories.DestinationFilter) ([]*entities.Destination, error) {
	ds := a.db.Select(destinationColumns...).From("destinations")

	if filter.Country != "" {
		ds = ds.Where(goqu.I("country").ILike(filter.Country))
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		ds = ds.Where(goqu.Or(
			goqu.I("name").ILike(pattern),
			goqu.I("country").ILike(pattern),
			goqu.I("description").ILike(pattern),
		))
	}

	ds = ds.Order(goqu.I("rating").Desc().NullsLast(), goqu.I("name").Asc())

	if filter.Limit > 0 {
		ds = ds.Limit(uint(filter.Limit))
	}
	if filter.Offset > 0 {
		ds = ds.Offset(uint(filter.Offset))
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list destinations", err)
	}
	defer rows.Close()

	destinations := []*entities.Destination{}
	for rows.Next() {
		destination, err := scanDestination(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan destination", err)
		}
		destinations = append(destinations, destination)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating destinations", err)
	}

	return destinations, nil
}

// Upsert inserts a destination or refreshes an existing row. Used by the
// seed process and the indexer, never by API handlers.
func (a *DestinationAdapter) Upsert(ctx context.Context, destination *entities.Destination) error {
	record := goqu.Record{
		"id":          destination.ID,
		"name":        destination.Name,
		"country":     destination.Country,
		"description": sql.NullString{String: destination.Description, Valid: destination.Description != ""},
		"image":       sql.NullString{String: destination.Image, Valid: destination.Image != ""},
		"latitude":    destination.Latitude,
		"longitude":   destination.Longitude,
		"rating":      destination.Rating,
		"created_at":  destination.CreatedAt,
		"updated_at":  destination.UpdatedAt,
	}

	query, args, err := a.db.Insert("destinations").
		Rows(record).
		OnConflict(goqu.DoUpdate("id", goqu.Record{
			"name":        destination.Name,
			"country":     destination.Country,
			"description": sql.NullString{String: destination.Description, Valid: destination.Description != ""},
			"image":       sql.NullString{String: destination.Image, Valid: destination.Image != ""},
			"latitude":    destination.Latitude,
			"longitude":   destination.Longitude,
			"rating":      destination.Rating,
			"updated_at":  destination.UpdatedAt,
		})).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build upsert query", err)
	}

	_, err = a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to upsert destination", err)
	}

	return nil
}

func scanDestination(row rowScanner) (*entities.Destination, error) {
	destination := &entities.Destination{}
	var description, image sql.NullString
	var latitude, longitude, rating sql.NullFloat64

	err := row.Scan(
		&destination.ID,
		&destination.Name,
		&destination.Country,
		&description,
		&image,
		&latitude,
		&longitude,
		&rating,
		&destination.CreatedAt,
		&destination.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	destination.Description = description.String
	destination.Image = image.String
	if latitude.Valid {
		destination.Latitude = &latitude.Float64
	}
	if longitude.Valid {
		destination.Longitude = &longitude.Float64
	}
	if rating.Valid {
		destination.Rating = &rating.Float64
	}

	return destination, nil
}
