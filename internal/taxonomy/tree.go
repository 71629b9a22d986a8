package taxonomy

import (
	"context"
	"fmt"

	"github.com/MichalMitros/catalog-seeder/internal/platform/models"
	"github.com/rs/zerolog"
)

// FacetValueLookup returns facet value ids by code.
type FacetValueLookup interface {
	Lookup(code string) (string, bool)
}

// BuildResult holds numbers of created and already existing collections.
type BuildResult struct {
	Created  int
	Existing int
}

// TreeBuilder creates collections tree.
type TreeBuilder struct {
	lookup CollectionLookup
	api    CollectionAPI
	values FacetValueLookup
	logger *zerolog.Logger
}

// NewTreeBuilder returns new TreeBuilder.
func NewTreeBuilder(
	lookup CollectionLookup,
	api CollectionAPI,
	values FacetValueLookup,
	logger *zerolog.Logger,
) *TreeBuilder {
	return &TreeBuilder{
		lookup: lookup,
		api:    api,
		values: values,
		logger: logger,
	}
}

// Build resolves or creates collections depth first, every node before its children.
// Root collections have no parent. Facet value filters are set only on created collections.
func (b *TreeBuilder) Build(ctx context.Context, roots []models.CollectionNode) (BuildResult, error) {
	var result BuildResult
	for _, root := range roots {
		if err := b.build(ctx, root, nil, &result); err != nil {
			return result, err
		}
	}

	return result, nil
}

func (b *TreeBuilder) build(
	ctx context.Context,
	node models.CollectionNode,
	parentID *string,
	result *BuildResult,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	id, created, err := b.lookup.Resolve(ctx, node, parentID)
	if err != nil {
		return fmt.Errorf("can't resolve collection: %w", err)
	}

	if created {
		result.Created++
		b.logger.Debug().
			Str("collection", node.Name).
			Str("id", id).
			Msg("collection created")

		if err = b.setFacetValues(ctx, id, node); err != nil {
			return err
		}
	} else {
		result.Existing++
	}

	for _, child := range node.Children {
		if err = b.build(ctx, child, &id, result); err != nil {
			return err
		}
	}

	return nil
}

func (b *TreeBuilder) setFacetValues(ctx context.Context, id string, node models.CollectionNode) error {
	if len(node.FacetValueCodes) == 0 {
		return nil
	}

	ids := make([]string, 0, len(node.FacetValueCodes))
	for _, code := range node.FacetValueCodes {
		valueID, ok := b.values.Lookup(code)
		if !ok {
			b.logger.Warn().
				Str("collection", node.Name).
				Str("code", code).
				Msg("unknown facet value code")
			continue
		}
		ids = append(ids, valueID)
	}

	if len(ids) == 0 {
		return nil
	}

	if err := b.api.SetCollectionFacetValues(ctx, id, ids); err != nil {
		return fmt.Errorf("can't set facet values of collection %q: %w", node.Name, err)
	}

	return nil
}
