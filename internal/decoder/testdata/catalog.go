package testdata

import (
	"github.com/MichalMitros/catalog-seeder/internal/platform/models"
	"github.com/samber/lo"
)

// Taxonomy is taxonomy of catalog.json.
var Taxonomy = &models.Taxonomy{
	Collections: []models.CollectionNode{
		{
			Name:        "Climatización",
			Slug:        "climatizacion",
			Description: "Equipos de climatización",
			Children: []models.CollectionNode{
				{Name: "Aire Acondicionado", Slug: "aire-acondicionado"},
				{Name: "Split", FacetValueCodes: []string{"tipo:split"}},
			},
		},
	},
	Facets: []models.FacetDefinition{
		{Name: "Tipo", Code: "tipo", Values: []models.FacetValueDefinition{{Name: "Split", Code: "split"}}},
	},
}

// Products are products of catalog.json decoded without errors.
var Products = map[int]models.ProductDefinition{
	1: {
		SKU:             "SPL-12",
		Name:            "Split Pared 12000 BTU",
		Description:     "Equipo split inverter",
		Price:           lo.ToPtr(549.99),
		Stock:           4,
		Brand:           "Daikin",
		Category:        "Split",
		FacetValueCodes: []string{"tipo:split"},
		ImageURLs:       []string{"https://img.example.com/spl-12.jpg"},
		CustomFields:    map[string]any{"potencia": "12000 BTU"},
	},
	4: {SKU: "FLT-3", Name: "Filtro"},
}
