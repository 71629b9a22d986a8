package storage

import (
	"strings"

	"github.com/MichalMitros/catalog-seeder/internal/platform/models"

	pgmodels "github.com/MichalMitros/catalog-seeder/internal/platform/storage/gen/postgres/public/model"
)

//go:generate jet -dsn=${DATABASE_URL} -schema=public -path=./gen

func toDBRun(run *models.Run) *pgmodels.SeedRun {
	return &pgmodels.SeedRun{
		ID:              int32(run.ID),
		Source:          run.Source,
		CreatedAt:       run.CreatedAt,
		FinishedAt:      run.FinishedAt,
		Success:         run.IsSuccess,
		StatusMessage:   run.StatusMessage,
		CreatedProducts: run.CreatedProducts,
		SkippedProducts: run.SkippedProducts,
		FailedProducts:  run.FailedProducts,
	}
}

func toRun(run *pgmodels.SeedRun) *models.Run {
	return &models.Run{
		ID:              int(run.ID),
		Source:          run.Source,
		CreatedAt:       run.CreatedAt,
		FinishedAt:      run.FinishedAt,
		IsSuccess:       run.Success,
		StatusMessage:   run.StatusMessage,
		CreatedProducts: run.CreatedProducts,
		SkippedProducts: run.SkippedProducts,
		FailedProducts:  run.FailedProducts,
	}
}

func toDBItem(runID int, item models.ItemOutcome) *pgmodels.SeedItem {
	return &pgmodels.SeedItem{
		RunID:     int32(runID),
		Row:       int32(item.Row),
		Sku:       item.SKU,
		Name:      item.Name,
		Slug:      item.Slug,
		Status:    string(item.Status),
		ProductID: item.ProductID,
		VariantID: item.VariantID,
		AssetIds:  strings.Join(item.AssetIDs, "\n"),
		Error:     item.Error,
	}
}

// ToItem converts stored item into models.ItemOutcome.
func ToItem(item *pgmodels.SeedItem) models.ItemOutcome {
	outcome := models.ItemOutcome{
		Row:       int(item.Row),
		SKU:       item.Sku,
		Name:      item.Name,
		Slug:      item.Slug,
		Status:    models.ItemStatus(item.Status),
		ProductID: item.ProductID,
		VariantID: item.VariantID,
		Error:     item.Error,
	}
	if item.AssetIds != "" {
		outcome.AssetIDs = strings.Split(item.AssetIds, "\n")
	}

	return outcome
}
