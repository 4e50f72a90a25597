package search

import (
	"context"
	"fmt"

	"github.com/typesense/typesense-go/v2/typesense/api"
	"github.com/typesense/typesense-go/v2/typesense/api/pointer"
	"github.com/voyara/backend/internal/domain/entities"
	"github.com/voyara/backend/internal/domain/repositories"
	tsclient "github.com/voyara/backend/internal/infrastructure/clients/typesense"
)

const collectionName = "destinations"

// TypesenseAdapter implements destination search using Typesense
type TypesenseAdapter struct {
	client *tsclient.Client
}

// Ensure TypesenseAdapter implements DestinationSearchRepository
var _ repositories.DestinationSearchRepository = (*TypesenseAdapter)(nil)

// NewTypesenseAdapter creates a new Typesense adapter
func NewTypesenseAdapter(client *tsclient.Client) *TypesenseAdapter {
	return &TypesenseAdapter{client: client}
}

// InitSchema ensures the collection exists
func (a *TypesenseAdapter) InitSchema(ctx context.Context) error {
	_, err := a.client.Client().Collection(collectionName).Retrieve(ctx)
	if err == nil {
		return nil // Collection exists
	}

	schema := &api.CollectionSchema{
		Name: collectionName,
		Fields: []api.Field{
			{Name: "id", Type: "string"},
			{Name: "name", Type: "string"},
			{Name: "country", Type: "string", Facet: pointer.True()},
			{Name: "description", Type: "string", Optional: pointer.True()},
			{Name: "rating", Type: "float"},
			{Name: "created_at", Type: "int64"},
		},
		DefaultSortingField: pointer.String("rating"),
	}

	_, err = a.client.Client().Collections().Create(ctx, schema)
	if err != nil {
		return fmt.Errorf("failed to create typesense collection: %w", err)
	}

	return nil
}

// Index indexes a destination
func (a *TypesenseAdapter) Index(ctx context.Context, destination *entities.Destination) error {
	rating := 0.0
	if destination.Rating != nil {
		rating = *destination.Rating
	}

	document := map[string]interface{}{
		"id":          destination.ID,
		"name":        destination.Name,
		"country":     destination.Country,
		"description": destination.Description,
		"rating":      rating,
		"created_at":  destination.CreatedAt.Unix(),
	}

	_, err := a.client.Client().Collection(collectionName).Documents().Upsert(ctx, document)
	if err != nil {
		return fmt.Errorf("failed to index destination: %w", err)
	}

	return nil
}

// Delete removes a destination from the index
func (a *TypesenseAdapter) Delete(ctx context.Context, id string) error {
	_, err := a.client.Client().Collection(collectionName).Document(id).Delete(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete destination from index: %w", err)
	}
	return nil
}

// Search searches destinations by free text, best rated first
func (a *TypesenseAdapter) Search(ctx context.Context, query, country string, limit int) ([]*entities.Destination, error) {
	if limit <= 0 {
		limit = 20
	}

	searchParams := &api.SearchCollectionParams{
		Q:       pointer.String(query),
		QueryBy: pointer.String("name,country,description"),
		SortBy:  pointer.String("_text_match:desc,rating:desc"),
		PerPage: pointer.Int(limit),
	}
	if country != "" {
		searchParams.FilterBy = pointer.String(fmt.Sprintf("country:=%s", country))
	}

	result, err := a.client.Client().Collection(collectionName).Documents().Search(ctx, searchParams)
	if err != nil {
		return nil, fmt.Errorf("failed to search destinations: %w", err)
	}

	destinations := []*entities.Destination{}
	if result.Hits == nil {
		return destinations, nil
	}

	for _, hit := range *result.Hits {
		doc := *hit.Document

		// Typesense returns map[string]interface{}, cast safely. The search
		// result only carries indexed fields; callers needing the full row
		// read it from the record store by id.
		destination := &entities.Destination{
			ID:      doc["id"].(string),
			Name:    doc["name"].(string),
			Country: doc["country"].(string),
		}
		if val, ok := doc["description"].(string); ok {
			destination.Description = val
		}
		if val, ok := doc["rating"].(float64); ok && val > 0 {
			destination.Rating = &val
		}

		destinations = append(destinations, destination)
	}

	return destinations, nil
}
