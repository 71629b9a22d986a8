package slug_test

import (
	"strings"
	"testing"

	"github.com/MichalMitros/catalog-seeder/internal/slug"
	"github.com/go-faker/faker/v4"
	"github.com/stretchr/testify/assert"
)

func TestUnitSlugify(t *testing.T) {
	tests := map[string]struct {
		input string
		want  string
	}{
		"simple words":         {input: "Split Pared", want: "split-pared"},
		"tilde n":              {input: "Año Nuevo", want: "ano-nuevo"},
		"accented vowels":      {input: "Climatización Aire Acondicionado", want: "climatizacion-aire-acondicionado"},
		"diaeresis":            {input: "Pingüino", want: "pinguino"},
		"punctuation runs":     {input: "  Equipos -- / Industriales!! ", want: "equipos-industriales"},
		"digits kept":          {input: "Inverter 12000 BTU", want: "inverter-12000-btu"},
		"only symbols":         {input: "¡¿?!", want: ""},
		"empty":                {input: "", want: ""},
		"upper accented":       {input: "ÁRBOL ÉLITE", want: "arbol-elite"},
		"non latin dropped":    {input: "Gas R-410A ™", want: "gas-r-410a"},
		"leading digits clean": {input: "-1-", want: "1"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, slug.Slugify(tt.input), "should return correct slug")
		})
	}
}

func TestUnitSlugifyProperties(t *testing.T) {
	inputs := []string{"Año Nuevo", "--a--b--", "Compresor   Rotativo", "ñÑ çÇ", "x"}
	for range 50 {
		inputs = append(inputs, faker.Sentence(), faker.Name(), faker.Word()+" / "+faker.Word())
	}

	for _, input := range inputs {
		got := slug.Slugify(input)

		assert.Equalf(t, got, slug.Slugify(got), "slugify should be idempotent for %q", input)
		assert.Falsef(t, strings.HasPrefix(got, "-"), "slug of %q shouldn't start with hyphen", input)
		assert.Falsef(t, strings.HasSuffix(got, "-"), "slug of %q shouldn't end with hyphen", input)
		assert.NotContainsf(t, got, "--", "slug of %q shouldn't contain consecutive hyphens", input)
	}
}

func TestUnitProduct(t *testing.T) {
	tests := map[string]struct {
		name string
		sku  string
		want string
	}{
		"name and sku":   {name: "Compresor Rotativo", sku: "CMP-001", want: "compresor-rotativo-cmp-001"},
		"accented name":  {name: "Válvula de Expansión", sku: "V12", want: "valvula-de-expansion-v12"},
		"missing sku":    {name: "Termostato", sku: "", want: "termostato"},
		"missing name":   {name: "", sku: "AB9", want: "ab9"},
		"name collision": {name: "Termostato", sku: "T-2", want: "termostato-t-2"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, slug.Product(tt.name, tt.sku), "should return correct product slug")
		})
	}
}
