package taxonomy

import (
	"context"
	"fmt"
	"strings"

	"github.com/MichalMitros/catalog-seeder/internal/platform/models"
	"github.com/MichalMitros/catalog-seeder/internal/slug"
	"github.com/MichalMitros/catalog-seeder/internal/vendure"
	"github.com/samber/lo"
)

// FacetIndex resolves facets and facet values using facets loaded once from Admin API.
// Created facets and values are added to index.
type FacetIndex struct {
	api          FacetAPI
	languageCode string
	facets       []*vendure.Facet
	codes        map[string]string
}

// NewFacetIndex loads all facets and returns new FacetIndex.
func NewFacetIndex(ctx context.Context, api FacetAPI, languageCode string) (*FacetIndex, error) {
	facets, err := api.Facets(ctx)
	if err != nil {
		return nil, fmt.Errorf("can't load facets: %w", err)
	}

	idx := &FacetIndex{
		api:          api,
		languageCode: languageCode,
		facets:       make([]*vendure.Facet, 0, len(facets)),
		codes:        make(map[string]string),
	}

	for ix := range facets {
		facet := facets[ix]
		idx.facets = append(idx.facets, &facet)
		for _, v := range facet.Values {
			idx.index(&facet, v)
		}
	}

	return idx, nil
}

// Lookup returns id of facet value with provided code.
// Code can be qualified with facet code, e.g. "marca:daikin".
func (i *FacetIndex) Lookup(code string) (string, bool) {
	id, ok := i.codes[code]
	return id, ok
}

// ValueID returns id of value of facet with provided names, facet and value are created when they don't exist.
// Value name is matched ignoring case.
func (i *FacetIndex) ValueID(ctx context.Context, facetName, valueName string) (string, error) {
	facet, err := i.facet(ctx, facetName, "")
	if err != nil {
		return "", err
	}

	if value, ok := findValue(facet, valueName); ok {
		return value.ID, nil
	}

	created, err := i.createValues(ctx, facet, []models.FacetValueDefinition{{Name: valueName}})
	if err != nil {
		return "", err
	}

	return created[0].ID, nil
}

// Ensure creates facet and its values declared by definition when they don't exist.
func (i *FacetIndex) Ensure(ctx context.Context, def models.FacetDefinition) error {
	facet, err := i.facet(ctx, def.Name, def.Code)
	if err != nil {
		return err
	}

	missing := lo.Filter(def.Values, func(v models.FacetValueDefinition, _ int) bool {
		_, ok := findValue(facet, v.Name)
		return !ok
	})
	if len(missing) == 0 {
		return nil
	}

	_, err = i.createValues(ctx, facet, missing)
	return err
}

func (i *FacetIndex) facet(ctx context.Context, name, code string) (*vendure.Facet, error) {
	for _, f := range i.facets {
		if f.Name == name {
			return f, nil
		}
	}

	if code == "" {
		code = slug.Slugify(name)
	}

	created, err := i.api.CreateFacet(ctx, vendure.CreateFacetInput{
		Code:         code,
		Translations: []vendure.Translation{{LanguageCode: i.languageCode, Name: name}},
	})
	if err != nil {
		return nil, fmt.Errorf("can't create facet %q: %w", name, err)
	}

	i.facets = append(i.facets, created)

	return created, nil
}

func (i *FacetIndex) createValues(
	ctx context.Context,
	facet *vendure.Facet,
	defs []models.FacetValueDefinition,
) ([]vendure.FacetValue, error) {
	input := lo.Map(defs, func(v models.FacetValueDefinition, _ int) vendure.CreateFacetValueInput {
		code := v.Code
		if code == "" {
			code = slug.Slugify(v.Name)
		}
		return vendure.CreateFacetValueInput{
			FacetID:      facet.ID,
			Code:         code,
			Translations: []vendure.Translation{{LanguageCode: i.languageCode, Name: v.Name}},
		}
	})

	created, err := i.api.CreateFacetValues(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("can't create values of facet %q: %w", facet.Name, err)
	}

	for _, v := range created {
		facet.Values = append(facet.Values, v)
		i.index(facet, v)
	}

	return created, nil
}

// index adds value under its plain and facet qualified code, plain code keeps first value.
func (i *FacetIndex) index(facet *vendure.Facet, value vendure.FacetValue) {
	if _, ok := i.codes[value.Code]; !ok {
		i.codes[value.Code] = value.ID
	}
	i.codes[facet.Code+":"+value.Code] = value.ID
}

func findValue(facet *vendure.Facet, name string) (vendure.FacetValue, bool) {
	return lo.Find(facet.Values, func(v vendure.FacetValue) bool {
		return strings.EqualFold(v.Name, name)
	})
}
