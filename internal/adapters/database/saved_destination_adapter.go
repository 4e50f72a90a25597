package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"
	"github.com/voyara/backend/internal/domain/entities"
	"github.com/voyara/backend/internal/domain/repositories"
	"github.com/voyara/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/voyara/backend/pkg/errors"
)

const pqUniqueViolation = "23505"

// SavedDestinationAdapter implements the SavedDestinationRepository interface
type SavedDestinationAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewSavedDestinationAdapter creates a new saved destination adapter
func NewSavedDestinationAdapter(client *postgres.Client) repositories.SavedDestinationRepository {
	return &SavedDestinationAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create saves a destination for a user. A unique constraint on
// (user_id, destination_id) makes double saves a conflict rather than a
// duplicate row, even under concurrent requests.
func (a *SavedDestinationAdapter) Create(ctx context.Context, saved *entities.SavedDestination) error {
	record := goqu.Record{
		"id":             saved.ID,
		"user_id":        saved.UserID,
		"destination_id": saved.DestinationID,
		"notes":          sql.NullString{String: saved.Notes, Valid: saved.Notes != ""},
		"saved_at":       saved.SavedAt,
	}

	query, args, err := a.db.Insert("saved_destinations").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	_, err = a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pqUniqueViolation {
			return apperrors.NewConflictError(apperrors.CodeAlreadySaved, "destination already saved")
		}
		return apperrors.NewInternalError("failed to save destination", err)
	}

	return nil
}

// Exists checks whether a user has already saved a destination
func (a *SavedDestinationAdapter) Exists(ctx context.Context, userID, destinationID string) (bool, error) {
	query, args, err := a.db.Select(goqu.L("1")).
		From("saved_destinations").
		Where(goqu.Ex{"user_id": userID, "destination_id": destinationID}).
		ToSQL()
	if err != nil {
		return false, apperrors.NewInternalError("failed to build query", err)
	}

	var one int
	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, apperrors.NewInternalError("failed to check saved destination", err)
	}

	return true, nil
}

// ListByUser retrieves a user's saved destinations with the destination
// rows joined in, most recently saved first
func (a *SavedDestinationAdapter) ListByUser(ctx context.Context, userID string) ([]*entities.SavedDestination, error) {
	query, args, err := a.db.Select(
		goqu.I("s.id"), goqu.I("s.user_id"), goqu.I("s.destination_id"),
		goqu.I("s.notes"), goqu.I("s.saved_at"),
		goqu.I("d.id"), goqu.I("d.name"), goqu.I("d.country"), goqu.I("d.description"),
		goqu.I("d.image"), goqu.I("d.latitude"), goqu.I("d.longitude"), goqu.I("d.rating"),
		goqu.I("d.created_at"), goqu.I("d.updated_at"),
	).
		From(goqu.T("saved_destinations").As("s")).
		Join(goqu.T("destinations").As("d"), goqu.On(goqu.Ex{"s.destination_id": goqu.I("d.id")})).
		Where(goqu.Ex{"s.user_id": userID}).
		Order(goqu.I("s.saved_at").Desc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list saved destinations", err)
	}
	defer rows.Close()

	items := []*entities.SavedDestination{}
	for rows.Next() {
		saved := &entities.SavedDestination{}
		destination := &entities.Destination{}
		var notes, dDescription, dImage sql.NullString
		var latitude, longitude, rating sql.NullFloat64

		err := rows.Scan(
			&saved.ID,
			&saved.UserID,
			&saved.DestinationID,
			&notes,
			&saved.SavedAt,
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
			return nil, apperrors.NewInternalError("failed to scan saved destination", err)
		}

		saved.Notes = notes.String
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
		saved.Destination = destination

		items = append(items, saved)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating saved destinations", err)
	}

	return items, nil
}

// DeleteByUserAndDestination removes a user's save of a destination.
// Deleting a save that does not exist is not an error; the operation is
// idempotent.
func (a *SavedDestinationAdapter) DeleteByUserAndDestination(ctx context.Context, userID, destinationID string) error {
	query, args, err := a.db.Delete("saved_destinations").
		Where(goqu.Ex{"user_id": userID, "destination_id": destinationID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build delete query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to unsave destination", err)
	}

	return nil
}
