package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"maintenance-service/internal/models"
)

// UpsertPart sets the unit price for a part id.
func (e *Engine) UpsertPart(ctx context.Context, p models.SparePart) (models.SparePart, error) {
	if p.PartID == "" {
		return models.SparePart{}, invalidf("partId", "must not be empty")
	}
	if p.UnitPrice < 0 {
		return models.SparePart{}, invalidf("unitPrice", "must be non-negative")
	}
	if err := e.parts.UpsertPart(ctx, p); err != nil {
		return models.SparePart{}, fmt.Errorf("upsert part %s: %w", p.PartID, err)
	}
	return p, nil
}

// ListParts returns the price catalog sorted by part id.
func (e *Engine) ListParts(ctx context.Context) ([]models.SparePart, error) {
	parts, err := e.parts.ListParts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list parts: %w", err)
	}
	sort.Slice(parts, func(i, j int) bool { return parts[i].PartID < parts[j].PartID })
	return parts, nil
}

// SeedPartsFromFile loads a JSON object of partId -> unitPrice into the part
// store. Called once at boot when PARTS_CATALOG_FILE is configured.
func (e *Engine) SeedPartsFromFile(ctx context.Context, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read parts catalog %s: %w", path, err)
	}
	prices := make(map[string]float64)
	if err := json.Unmarshal(raw, &prices); err != nil {
		return fmt.Errorf("parse parts catalog %s: %w", path, err)
	}
	for id, price := range prices {
		if _, err := e.UpsertPart(ctx, models.SparePart{PartID: id, UnitPrice: price}); err != nil {
			return err
		}
	}
	e.logger.Infof("Seeded %d part prices from %s", len(prices), path)
	return nil
}
