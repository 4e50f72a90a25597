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

// TripDestinationAdapter implements the TripDestinationRepository interface
type TripDestinationAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewTripDestinationAdapter creates a new trip destination adapter
func NewTripDestinationAdapter(client *postgres.Client) repositories.TripDestinationRepository {
	return &TripDestinationAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create links a destination into a trip's itinerary
func (a *TripDestinationAdapter) Create(ctx context.Context, td *entities.TripDestination) error {
	record := goqu.Record{
		"id":             td.ID,
		"trip_id":        td.TripID,
		"destination_id": td.DestinationID,
		"visit_order":    td.VisitOrder,
		"notes":          sql.NullString{String: td.Notes, Valid: td.Notes != ""},
		"arrival_date":   td.ArrivalDate,
		"departure_date": td.DepartureDate,
		"created_at":     td.CreatedAt,
	}

	query, args, err := a.db.Insert("trip_destinations").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	_, err = a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to create trip destination", err)
	}

	return nil
}

// ListByTrip retrieves a trip's itinerary entries with their destinations,
// ordered by visit order then insertion time
func (a *TripDestinationAdapter) ListByTrip(ctx context.Context, tripID string) ([]*entities.TripDestination, error) {
	query, args, err := a.db.Select(
		goqu.I("td.id"), goqu.I("td.trip_id"), goqu.I("td.destination_id"),
		goqu.I("td.visit_order"), goqu.I("td.notes"),
		goqu.I("td.arrival_date"), goqu.I("td.departure_date"), goqu.I("td.created_at"),
		goqu.I("d.id"), goqu.I("d.name"), goqu.I("d.country"), goqu.I("d.description"),
		goqu.I("d.image"), goqu.I("d.latitude"), goqu.I("d.longitude"), goqu.I("d.rating"),
		goqu.I("d.created_at"), goqu.I("d.updated_at"),
	).
		From(goqu.T("trip_destinations").As("td")).
		Join(goqu.T("destinations").As("d"), goqu.On(goqu.Ex{"td.destination_id": goqu.I("d.id")})).
		Where(goqu.Ex{"td.trip_id": tripID}).
		Order(goqu.I("td.visit_order").Asc().NullsLast(), goqu.I("td.created_at").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list trip destinations", err)
	}
	defer rows.Close()

	items := []*entities.TripDestination{}
	for rows.Next() {
		td := &entities.TripDestination{}
		destination := &entities.Destination{}
		var notes, dDescription, dImage sql.NullString
		var visitOrder sql.NullInt64
		var arrival, departure sql.NullTime
		var latitude, longitude, rating sql.NullFloat64

		err := rows.Scan(
			&td.ID,
			&td.TripID,
			&td.DestinationID,
			&visitOrder,
			&notes,
			&arrival,
			&departure,
			&td.CreatedAt,
			&destination.ID,
			&destination.Name,
			&destination.Country,
			&dDescription,
			&dImage,
			&latitude,
			&longitude,
			&rating,
			&destination.CreatedAt,
			&destination.UpdatedAt,
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan trip destination", err)
		}

		td.Notes = notes.String
		if visitOrder.Valid {
			order := int(visitOrder.Int64)
			td.VisitOrder = &order
		}
		if arrival.Valid {
			date := arrival.Time.Format(entities.TripDateLayout)
			td.ArrivalDate = &date
		}
		if departure.Valid {
			date := departure.Time.Format(entities.TripDateLayout)
			td.DepartureDate = &date
		}

		destination.Description = dDescription.String
		destination.Image = dImage.String
		if latitude.Valid {
			destination.Latitude = &latitude.Float64
		}
		if longitude.Valid {
			destination.Longitude = &longitude.Float64
		}
		if rating.Valid {
			destination.Rating = &rating.Float64
		}
		td.Destination = destination

		items = append(items, td)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating trip destinations", err)
	}

	return items, nil
}

// DeleteByTripAndDestination removes every itinerary entry for a
// destination within a trip
func (a *TripDestinationAdapter) DeleteByTripAndDestination(ctx context.Context, tripID, destinationID string) error {
	query, args, err := a.db.Delete("trip_destinations").
		Where(goqu.Ex{"trip_id": tripID, "destination_id": destinationID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build delete query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to delete trip destination", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(
			fmt.Sprintf("destination %s is not part of trip %s", destinationID, tripID))
	}

	return nil
}
