package models

import "time"

// CollectionNode is collection definition with its subcollections.
type CollectionNode struct {
	Name            string           `json:"name"`
	Slug            string           `json:"slug,omitempty"`
	Description     string           `json:"description,omitempty"`
	FacetValueCodes []string         `json:"facetValueCodes,omitempty"`
	Children        []CollectionNode `json:"children,omitempty"`
}

// FacetValueDefinition is facet value definition.
type FacetValueDefinition struct {
	Name string `json:"name"`
	Code string `json:"code,omitempty"`
}

// FacetDefinition is facet definition with its values.
type FacetDefinition struct {
	Name   string                 `json:"name"`
	Code   string                 `json:"code,omitempty"`
	Values []FacetValueDefinition `json:"values,omitempty"`
}

// Taxonomy holds collections tree and facets which have to exist before products are seeded.
type Taxonomy struct {
	Collections []CollectionNode  `json:"collections,omitempty"`
	Facets      []FacetDefinition `json:"facets,omitempty"`
}

// ProductDefinition is definition of product with its single variant.
type ProductDefinition struct {
	SKU             string         `json:"sku"`
	Name            string         `json:"name"`
	Description     string         `json:"description,omitempty"`
	Price           *float64       `json:"price,omitempty"`
	Stock           int            `json:"stock,omitempty"`
	Brand           string         `json:"brand,omitempty"`
	Category        string         `json:"category,omitempty"`
	FacetValueCodes []string       `json:"facetValueCodes,omitempty"`
	ImageURLs       []string       `json:"imageUrls,omitempty"`
	CustomFields    map[string]any `json:"customFields,omitempty"`
}

// ParsingResult contains product definition with decoding error if there is any.
// Row is 1-based position of definition in source.
type ParsingResult struct {
	Row     int
	Product ProductDefinition
	Error   error
}

// ItemStatus is outcome status of single product seeding.
type ItemStatus string

const (
	// ItemCreated means product and its variant were created.
	ItemCreated ItemStatus = "created"
	// ItemSkipped means product with the same slug already existed.
	ItemSkipped ItemStatus = "skipped"
	// ItemFailed means product couldn't be decoded or created.
	ItemFailed ItemStatus = "failed"
)

// ItemOutcome is result of seeding single product definition.
type ItemOutcome struct {
	Row       int
	SKU       string
	Name      string
	Slug      string
	Status    ItemStatus
	ProductID *string
	VariantID *string
	AssetIDs  []string
	Error     *string
}

// Run is seeding run model.
type Run struct {
	ID              int
	Source          string
	CreatedAt       time.Time
	FinishedAt      *time.Time
	IsSuccess       *bool
	StatusMessage   *string
	CreatedProducts *int32
	SkippedProducts *int32
	FailedProducts  *int32
}
