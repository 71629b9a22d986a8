package taxonomy

import (
	"context"
	"fmt"
	"strings"

	"github.com/MichalMitros/catalog-seeder/internal/platform/models"
)

// CollectionResolver resolves collections by querying Admin API for every node.
type CollectionResolver struct {
	api          CollectionAPI
	languageCode string
}

// NewCollectionResolver returns new CollectionResolver.
func NewCollectionResolver(api CollectionAPI, languageCode string) *CollectionResolver {
	return &CollectionResolver{
		api:          api,
		languageCode: languageCode,
	}
}

// Resolve finds collection which name equals node name ignoring case, or creates it.
// Name contains filter of Admin API may return other collections, so result is matched exactly.
func (r *CollectionResolver) Resolve(
	ctx context.Context,
	node models.CollectionNode,
	parentID *string,
) (string, bool, error) {
	candidates, err := r.api.FindCollectionsByName(ctx, node.Name)
	if err != nil {
		return "", false, fmt.Errorf("can't find collection %q: %w", node.Name, err)
	}

	for _, c := range candidates {
		if strings.EqualFold(c.Name, node.Name) {
			return c.ID, false, nil
		}
	}

	created, err := createCollection(ctx, r.api, r.languageCode, node, parentID)
	if err != nil {
		return "", false, fmt.Errorf("can't create collection %q: %w", node.Name, err)
	}

	return created.ID, true, nil
}

// CollectionIndex resolves collections by slug using map loaded once from Admin API.
type CollectionIndex struct {
	api          CollectionAPI
	languageCode string
	ids          map[string]string
}

// NewCollectionIndex loads all collections and returns new CollectionIndex.
func NewCollectionIndex(ctx context.Context, api CollectionAPI, languageCode string) (*CollectionIndex, error) {
	collections, err := api.Collections(ctx)
	if err != nil {
		return nil, fmt.Errorf("can't load collections: %w", err)
	}

	ids := make(map[string]string, len(collections))
	for _, c := range collections {
		ids[c.Slug] = c.ID
	}

	return &CollectionIndex{
		api:          api,
		languageCode: languageCode,
		ids:          ids,
	}, nil
}

// Resolve returns id of collection with node slug, or creates it.
func (i *CollectionIndex) Resolve(
	ctx context.Context,
	node models.CollectionNode,
	parentID *string,
) (string, bool, error) {
	key := collectionSlug(node)
	if id, ok := i.ids[key]; ok {
		return id, false, nil
	}

	created, err := createCollection(ctx, i.api, i.languageCode, node, parentID)
	if err != nil {
		return "", false, fmt.Errorf("can't create collection %q: %w", node.Name, err)
	}

	// backend may have changed slug to keep it unique
	i.ids[key] = created.ID
	i.ids[created.Slug] = created.ID

	return created.ID, true, nil
}

// Len returns number of indexed slugs.
func (i *CollectionIndex) Len() int {
	return len(i.ids)
}
