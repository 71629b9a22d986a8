package taxonomy

import (
	"context"

	"github.com/MichalMitros/catalog-seeder/internal/platform/models"
	"github.com/MichalMitros/catalog-seeder/internal/slug"
	"github.com/MichalMitros/catalog-seeder/internal/vendure"
)

// CollectionAPI is Admin API collection operations.
type CollectionAPI interface {
	FindCollectionsByName(ctx context.Context, name string) ([]vendure.Collection, error)
	Collections(ctx context.Context) ([]vendure.Collection, error)
	CreateCollection(ctx context.Context, input vendure.CreateCollectionInput) (*vendure.Collection, error)
	SetCollectionFacetValues(ctx context.Context, collectionID string, facetValueIDs []string) error
}

// FacetAPI is Admin API facet operations.
type FacetAPI interface {
	Facets(ctx context.Context) ([]vendure.Facet, error)
	CreateFacet(ctx context.Context, input vendure.CreateFacetInput) (*vendure.Facet, error)
	CreateFacetValues(ctx context.Context, input []vendure.CreateFacetValueInput) ([]vendure.FacetValue, error)
}

// CollectionLookup resolves collection node to existing collection or creates it.
type CollectionLookup interface {
	// Resolve returns id of collection described by node under parentID, created reports whether it was created.
	Resolve(ctx context.Context, node models.CollectionNode, parentID *string) (id string, created bool, err error)
}

// collectionSlug returns declared slug of node or slug derived from its name.
func collectionSlug(node models.CollectionNode) string {
	if node.Slug != "" {
		return node.Slug
	}
	return slug.Slugify(node.Name)
}

func createCollection(
	ctx context.Context,
	api CollectionAPI,
	languageCode string,
	node models.CollectionNode,
	parentID *string,
) (*vendure.Collection, error) {
	return api.CreateCollection(ctx, vendure.CreateCollectionInput{
		ParentID: parentID,
		Translations: []vendure.Translation{{
			LanguageCode: languageCode,
			Name:         node.Name,
			Slug:         collectionSlug(node),
			Description:  node.Description,
		}},
	})
}
