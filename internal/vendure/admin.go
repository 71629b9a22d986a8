package vendure

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/MichalMitros/catalog-seeder/internal/graphql"
)

const (
	// pageSize is number of items requested per page of bulk list queries.
	pageSize = 100

	assetFilePath = "variables.input.0.file"
)

// Executor executes GraphQL operations.
type Executor interface {
	Execute(ctx context.Context, query string, variables map[string]any, out any) error
	Upload(ctx context.Context, query string, variables map[string]any, filePath string, file graphql.File, out any) error
}

// AdminAPI is typed client of Admin API operations used for seeding catalog.
type AdminAPI struct {
	executor Executor
}

// NewAdminAPI returns new AdminAPI.
func NewAdminAPI(executor Executor) *AdminAPI {
	return &AdminAPI{executor: executor}
}

// Login authenticates session. Session token is captured by executor from response header.
// It returns *LoginError when credentials are rejected.
func (a *AdminAPI) Login(ctx context.Context, username, password string) error {
	var resp struct {
		Login errorResult `json:"login"`
	}

	err := a.executor.Execute(ctx, loginMutation, map[string]any{
		"username": username,
		"password": password,
	}, &resp)
	if err != nil {
		return fmt.Errorf("can't execute login: %w", err)
	}

	if resp.Login.ErrorCode != "" {
		return &LoginError{Code: resp.Login.ErrorCode, Message: resp.Login.Message}
	}

	return nil
}

// FindCollectionsByName returns collections which name contains provided name.
func (a *AdminAPI) FindCollectionsByName(ctx context.Context, name string) ([]Collection, error) {
	var resp struct {
		Collections struct {
			Items []Collection `json:"items"`
		} `json:"collections"`
	}

	err := a.executor.Execute(ctx, collectionsQuery, map[string]any{
		"options": listOptions{
			Take:   pageSize,
			Filter: map[string]any{"name": map[string]string{"contains": name}},
		},
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("can't query collections: %w", err)
	}

	return resp.Collections.Items, nil
}

// Collections returns all collections.
func (a *AdminAPI) Collections(ctx context.Context) ([]Collection, error) {
	return paginate(ctx, a.executor, collectionsQuery, "collections", func(page json.RawMessage) ([]Collection, int, error) {
		var list struct {
			Items      []Collection `json:"items"`
			TotalItems int          `json:"totalItems"`
		}
		err := json.Unmarshal(page, &list)
		return list.Items, list.TotalItems, err
	})
}

// CreateCollection creates collection.
func (a *AdminAPI) CreateCollection(ctx context.Context, input CreateCollectionInput) (*Collection, error) {
	if input.Filters == nil {
		input.Filters = []ConfigurableOperation{}
	}

	var resp struct {
		CreateCollection *Collection `json:"createCollection"`
	}
	if err := a.executor.Execute(ctx, createCollectionMutation, map[string]any{"input": input}, &resp); err != nil {
		return nil, fmt.Errorf("can't create collection: %w", err)
	}

	if resp.CreateCollection == nil {
		return nil, fmt.Errorf("can't create collection: %w", ErrEmptyResult)
	}

	return resp.CreateCollection, nil
}

// SetCollectionFacetValues sets facet-value-filter of collection, so it contains products with any of provided facet values.
func (a *AdminAPI) SetCollectionFacetValues(ctx context.Context, collectionID string, facetValueIDs []string) error {
	ids, err := json.Marshal(facetValueIDs)
	if err != nil {
		return fmt.Errorf("can't marshal facet value ids: %w", err)
	}

	input := UpdateCollectionInput{
		ID: collectionID,
		Filters: []ConfigurableOperation{{
			Code: "facet-value-filter",
			Arguments: []ConfigurableOperationArgument{
				{Name: "facetValueIds", Value: string(ids)},
				{Name: "containsAny", Value: "true"},
			},
		}},
	}

	if err = a.executor.Execute(ctx, updateCollectionMutation, map[string]any{"input": input}, nil); err != nil {
		return fmt.Errorf("can't update collection: %w", err)
	}

	return nil
}

// Facets returns all facets with their values.
func (a *AdminAPI) Facets(ctx context.Context) ([]Facet, error) {
	return paginate(ctx, a.executor, facetsQuery, "facets", func(page json.RawMessage) ([]Facet, int, error) {
		var list struct {
			Items      []Facet `json:"items"`
			TotalItems int     `json:"totalItems"`
		}
		err := json.Unmarshal(page, &list)
		return list.Items, list.TotalItems, err
	})
}

// CreateFacet creates facet.
func (a *AdminAPI) CreateFacet(ctx context.Context, input CreateFacetInput) (*Facet, error) {
	var resp struct {
		CreateFacet *Facet `json:"createFacet"`
	}
	if err := a.executor.Execute(ctx, createFacetMutation, map[string]any{"input": input}, &resp); err != nil {
		return nil, fmt.Errorf("can't create facet: %w", err)
	}

	if resp.CreateFacet == nil {
		return nil, fmt.Errorf("can't create facet: %w", ErrEmptyResult)
	}

	return resp.CreateFacet, nil
}

// CreateFacetValues creates facet values.
func (a *AdminAPI) CreateFacetValues(ctx context.Context, input []CreateFacetValueInput) ([]FacetValue, error) {
	var resp struct {
		CreateFacetValues []FacetValue `json:"createFacetValues"`
	}
	if err := a.executor.Execute(ctx, createFacetValuesMutation, map[string]any{"input": input}, &resp); err != nil {
		return nil, fmt.Errorf("can't create facet values: %w", err)
	}

	if len(resp.CreateFacetValues) != len(input) {
		return nil, fmt.Errorf("can't create facet values: %w", ErrEmptyResult)
	}

	return resp.CreateFacetValues, nil
}

// Products returns all products.
func (a *AdminAPI) Products(ctx context.Context) ([]Product, error) {
	return paginate(ctx, a.executor, productsQuery, "products", func(page json.RawMessage) ([]Product, int, error) {
		var list struct {
			Items      []Product `json:"items"`
			TotalItems int       `json:"totalItems"`
		}
		err := json.Unmarshal(page, &list)
		return list.Items, list.TotalItems, err
	})
}

// CreateProduct creates product.
func (a *AdminAPI) CreateProduct(ctx context.Context, input CreateProductInput) (*Product, error) {
	if input.FacetValueIDs == nil {
		input.FacetValueIDs = []string{}
	}

	var resp struct {
		CreateProduct *Product `json:"createProduct"`
	}
	if err := a.executor.Execute(ctx, createProductMutation, map[string]any{"input": input}, &resp); err != nil {
		return nil, fmt.Errorf("can't create product: %w", err)
	}

	if resp.CreateProduct == nil {
		return nil, fmt.Errorf("can't create product: %w", ErrEmptyResult)
	}

	return resp.CreateProduct, nil
}

// CreateProductVariant creates single product variant.
func (a *AdminAPI) CreateProductVariant(ctx context.Context, input CreateProductVariantInput) (*ProductVariant, error) {
	var resp struct {
		CreateProductVariants []*ProductVariant `json:"createProductVariants"`
	}
	err := a.executor.Execute(ctx, createProductVariantsMutation, map[string]any{
		"input": []CreateProductVariantInput{input},
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("can't create product variant: %w", err)
	}

	if len(resp.CreateProductVariants) == 0 || resp.CreateProductVariants[0] == nil {
		return nil, fmt.Errorf("can't create product variant: %w", ErrEmptyResult)
	}

	return resp.CreateProductVariants[0], nil
}

// UpdateProductAssets sets product's featured asset and assets.
func (a *AdminAPI) UpdateProductAssets(ctx context.Context, input UpdateProductAssetsInput) error {
	if err := a.executor.Execute(ctx, updateProductMutation, map[string]any{"input": input}, nil); err != nil {
		return fmt.Errorf("can't update product: %w", err)
	}

	return nil
}

// CreateAsset uploads file as new asset.
// It returns ErrMimeType when backend rejects file type.
func (a *AdminAPI) CreateAsset(ctx context.Context, file graphql.File) (*Asset, error) {
	var resp struct {
		CreateAssets []struct {
			errorResult
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"createAssets"`
	}

	err := a.executor.Upload(ctx, createAssetsMutation, map[string]any{
		"input": []map[string]any{{"file": nil}},
	}, assetFilePath, file, &resp)
	if err != nil {
		return nil, fmt.Errorf("can't upload asset: %w", err)
	}

	if len(resp.CreateAssets) == 0 {
		return nil, fmt.Errorf("can't upload asset: %w", ErrEmptyResult)
	}

	result := resp.CreateAssets[0]
	if result.ErrorCode != "" || result.Typename == "MimeTypeError" {
		return nil, fmt.Errorf("%w: %s", ErrMimeType, result.Message)
	}

	if result.ID == "" {
		return nil, fmt.Errorf("can't upload asset: %w", ErrEmptyResult)
	}

	return &Asset{ID: result.ID, Name: result.Name}, nil
}

// paginate requests pages of list query until all items are fetched.
func paginate[T any](
	ctx context.Context,
	executor Executor,
	query string,
	field string,
	decode func(json.RawMessage) ([]T, int, error),
) ([]T, error) {
	var all []T

	for skip := 0; ; skip += pageSize {
		var resp map[string]json.RawMessage
		err := executor.Execute(ctx, query, map[string]any{
			"options": listOptions{Skip: skip, Take: pageSize},
		}, &resp)
		if err != nil {
			return nil, fmt.Errorf("can't query %s: %w", field, err)
		}

		items, total, err := decode(resp[field])
		if err != nil {
			return nil, fmt.Errorf("can't decode %s: %w", field, err)
		}

		all = append(all, items...)
		if len(items) == 0 || len(all) >= total {
			return all, nil
		}
	}
}
