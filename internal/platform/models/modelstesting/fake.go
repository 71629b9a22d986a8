package modelstesting

import (
	"math/rand"

	"github.com/MichalMitros/catalog-seeder/internal/platform/models"
	"github.com/go-faker/faker/v4"
	"github.com/samber/lo"
)

// FakeProduct returns models.ProductDefinition with fake data without images.
func FakeProduct(ops ...func(p *models.ProductDefinition)) models.ProductDefinition {
	product := models.ProductDefinition{
		SKU:         faker.UUIDDigit()[:8],
		Name:        faker.Word() + " " + faker.Word(),
		Description: faker.Sentence(),
		Price:       lo.ToPtr(float64(rand.Intn(100000)) / 100),
		Stock:       rand.Intn(50),
		CustomFields: map[string]any{
			"potencia": faker.Word(),
		},
	}

	for _, op := range ops {
		op(&product)
	}

	return product
}

// FakeProducts returns n fake product definitions.
func FakeProducts(n int, ops ...func(p *models.ProductDefinition)) []models.ProductDefinition {
	products := make([]models.ProductDefinition, 0, n)
	for range n {
		products = append(products, FakeProduct(ops...))
	}

	return products
}

// FakeCollectionTree returns collection tree with provided depth and number of children per node.
func FakeCollectionTree(depth, children int) []models.CollectionNode {
	if depth == 0 {
		return nil
	}

	nodes := make([]models.CollectionNode, 0, children)
	for range children {
		nodes = append(nodes, models.CollectionNode{
			Name:        faker.Word() + " " + faker.UUIDDigit()[:6],
			Description: faker.Sentence(),
			Children:    FakeCollectionTree(depth-1, children),
		})
	}

	return nodes
}
