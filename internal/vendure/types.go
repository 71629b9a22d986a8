package vendure

// Collection is Admin API collection.
type Collection struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Slug     string  `json:"slug"`
	ParentID *string `json:"parentId,omitempty"`
}

// FacetValue is Admin API facet value.
type FacetValue struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

// Facet is Admin API facet with its values.
type Facet struct {
	ID     string       `json:"id"`
	Name   string       `json:"name"`
	Code   string       `json:"code"`
	Values []FacetValue `json:"values"`
}

// Product is Admin API product summary.
type Product struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// ProductVariant is Admin API product variant.
type ProductVariant struct {
	ID          string `json:"id"`
	SKU         string `json:"sku"`
	Price       int64  `json:"price"`
	StockOnHand int    `json:"stockOnHand"`
}

// Asset is Admin API asset.
type Asset struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Translation is translated name, slug and description of catalog entity.
type Translation struct {
	LanguageCode string `json:"languageCode"`
	Name         string `json:"name"`
	Slug         string `json:"slug,omitempty"`
	Description  string `json:"description,omitempty"`
}

// ConfigurableOperationArgument is argument of configurable operation, value is JSON encoded.
type ConfigurableOperationArgument struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// ConfigurableOperation is configurable operation input, e.g. collection filter.
type ConfigurableOperation struct {
	Code      string                          `json:"code"`
	Arguments []ConfigurableOperationArgument `json:"arguments"`
}

// CreateCollectionInput is input of createCollection mutation.
type CreateCollectionInput struct {
	ParentID     *string                 `json:"parentId,omitempty"`
	Filters      []ConfigurableOperation `json:"filters"`
	Translations []Translation           `json:"translations"`
}

// UpdateCollectionInput is input of updateCollection mutation.
type UpdateCollectionInput struct {
	ID      string                  `json:"id"`
	Filters []ConfigurableOperation `json:"filters"`
}

// CreateFacetInput is input of createFacet mutation.
type CreateFacetInput struct {
	Code         string        `json:"code"`
	IsPrivate    bool          `json:"isPrivate"`
	Translations []Translation `json:"translations"`
}

// CreateFacetValueInput is input of createFacetValues mutation.
type CreateFacetValueInput struct {
	FacetID      string        `json:"facetId"`
	Code         string        `json:"code"`
	Translations []Translation `json:"translations"`
}

// CreateProductInput is input of createProduct mutation.
type CreateProductInput struct {
	FacetValueIDs []string       `json:"facetValueIds"`
	Translations  []Translation  `json:"translations"`
	CustomFields  map[string]any `json:"customFields,omitempty"`
}

// CreateProductVariantInput is input of createProductVariants mutation.
type CreateProductVariantInput struct {
	ProductID    string        `json:"productId"`
	SKU          string        `json:"sku"`
	Price        int64         `json:"price"`
	StockOnHand  int           `json:"stockOnHand"`
	Translations []Translation `json:"translations"`
}

// UpdateProductAssetsInput is input of updateProduct mutation setting product assets.
type UpdateProductAssetsInput struct {
	ID              string   `json:"id"`
	FeaturedAssetID string   `json:"featuredAssetId"`
	AssetIDs        []string `json:"assetIds"`
}

// errorResult is error variant of result unions.
type errorResult struct {
	Typename  string `json:"__typename"`
	ErrorCode string `json:"errorCode,omitempty"`
	Message   string `json:"message,omitempty"`
}

type listOptions struct {
	Skip   int            `json:"skip"`
	Take   int            `json:"take"`
	Filter map[string]any `json:"filter,omitempty"`
}
