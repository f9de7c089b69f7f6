package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/rickgao/niche-research/internal/model"
)

// Seed replaces the stored catalog with c in a single transaction.
// Product names are stored as given and used as the per-search suffix.
func Seed(ctx context.Context, db DB, c model.Catalog) error {
	if err := c.Validate(); err != nil {
		return fmt.Errorf("seed: %w", err)
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin seed: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `TRUNCATE products, companies, market_trends, investment_alerts`); err != nil {
		return fmt.Errorf("truncate catalog: %w", err)
	}

	batch := buildSeedBatch(c)
	results := tx.SendBatch(ctx, batch)
	for i := 0; i < batch.Len(); i++ {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return fmt.Errorf("seed statement %d: %w", i, err)
		}
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("close seed batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit seed: %w", err)
	}
	return nil
}

// buildSeedBatch queues one INSERT per record. Companies come first so
// product foreign keys resolve.
func buildSeedBatch(c model.Catalog) *pgx.Batch {
	batch := &pgx.Batch{}

	for _, co := range c.Companies {
		batch.Queue(`INSERT INTO companies (id, name, description, founded_year, revenue, employees)
			VALUES ($1, $2, $3, $4, $5::numeric, $6)`,
			co.ID, co.Name, co.Description, co.FoundedYear, co.Revenue.String(), co.Employees)
	}
	for i, p := range c.Products {
		batch.Queue(`INSERT INTO products (id, position, name_suffix, price, rating, market_share, growth_trend, company_id)
			VALUES ($1, $2, $3, $4::numeric, $5, $6, $7, $8)`,
			p.ID, i, p.Name, p.Price.String(),
			nullableFloat(p.Rating), nullableFloat(p.MarketShare), nullableFloat(p.GrowthTrend), p.CompanyID)
	}
	for i, t := range c.Trends {
		batch.Queue(`INSERT INTO market_trends (position, period, growth_rate, sector) VALUES ($1, $2, $3, $4)`,
			i, t.Date, t.GrowthRate, t.Sector)
	}
	for i, a := range c.Alerts {
		batch.Queue(`INSERT INTO investment_alerts (position, title, description, potential_impact) VALUES ($1, $2, $3, $4)`,
			i, a.Title, a.Description, a.PotentialImpact)
	}

	return batch
}
