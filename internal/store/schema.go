package store

import (
	"context"
	"fmt"
)

// schema is applied by Migrate. Statements are idempotent.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS companies (
		id           TEXT PRIMARY KEY,
		name         TEXT NOT NULL,
		description  TEXT NOT NULL DEFAULT '',
		founded_year INTEGER NOT NULL,
		revenue      NUMERIC(20, 2) NOT NULL CHECK (revenue >= 0),
		employees    INTEGER NOT NULL CHECK (employees >= 0)
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id           TEXT PRIMARY KEY,
		position     INTEGER NOT NULL,
		name_suffix  TEXT NOT NULL,
		price        NUMERIC(12, 2) NOT NULL CHECK (price >= 0),
		rating       DOUBLE PRECISION,
		market_share DOUBLE PRECISION,
		growth_trend DOUBLE PRECISION,
		company_id   TEXT NOT NULL REFERENCES companies (id)
	)`,
	`CREATE INDEX IF NOT EXISTS products_company_id_idx ON products (company_id)`,
	`CREATE TABLE IF NOT EXISTS market_trends (
		position    INTEGER PRIMARY KEY,
		period      TEXT NOT NULL,
		growth_rate DOUBLE PRECISION NOT NULL,
		sector      TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS investment_alerts (
		position         INTEGER PRIMARY KEY,
		title            TEXT NOT NULL,
		description      TEXT NOT NULL,
		potential_impact TEXT NOT NULL
	)`,
}

// Migrate creates the catalog tables if they do not exist.
func Migrate(ctx context.Context, db DB) error {
	for i, stmt := range schema {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema statement %d: %w", i, err)
		}
	}
	return nil
}
