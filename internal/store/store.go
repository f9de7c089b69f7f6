package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/rickgao/niche-research/internal/model"
	"github.com/rickgao/niche-research/internal/provider"
)

// DB is the subset of *pgxpool.Pool the store uses.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Store serves the catalog from PostgreSQL.
type Store struct {
	db     DB
	logger *slog.Logger
}

// New creates a Store and verifies the stored catalog's references.
func New(ctx context.Context, db DB, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{db: db, logger: logger}

	if err := s.Verify(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

const selectProducts = `
	SELECT id, name_suffix, price::text, rating, market_share, growth_trend, company_id
	FROM products`

// FetchProducts returns every product, named after searchTerm.
func (s *Store) FetchProducts(ctx context.Context, searchTerm string) ([]model.Product, error) {
	products, err := s.queryProducts(ctx, selectProducts+` ORDER BY position, id`)
	if err != nil {
		return nil, fmt.Errorf("fetch products: %w", err)
	}
	for i := range products {
		products[i].Name = provider.ProductName(searchTerm, products[i].Name)
	}
	return products, nil
}

// FetchCompany returns a company by ID.
func (s *Store) FetchCompany(ctx context.Context, companyID string) (model.Company, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, name, description, founded_year, revenue::text, employees
		FROM companies WHERE id = $1`, companyID)

	c, err := scanCompany(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Company{}, fmt.Errorf("company %q: %w", companyID, provider.ErrNotFound)
	}
	if err != nil {
		return model.Company{}, fmt.Errorf("fetch company %s: %w", companyID, err)
	}
	return c, nil
}

// FetchCompanyProducts returns the products made by companyID.
func (s *Store) FetchCompanyProducts(ctx context.Context, companyID string) ([]model.Product, error) {
	products, err := s.queryProducts(ctx, selectProducts+` WHERE company_id = $1 ORDER BY position, id`, companyID)
	if err != nil {
		return nil, fmt.Errorf("fetch company products %s: %w", companyID, err)
	}
	return products, nil
}

// FetchMarketTrends returns the trend series in stored order.
func (s *Store) FetchMarketTrends(ctx context.Context) ([]model.MarketTrend, error) {
	rows, err := s.db.Query(ctx, `SELECT period, growth_rate, sector FROM market_trends ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("fetch trends: %w", err)
	}
	trends, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.MarketTrend, error) {
		var t model.MarketTrend
		err := row.Scan(&t.Date, &t.GrowthRate, &t.Sector)
		return t, err
	})
	if err != nil {
		return nil, fmt.Errorf("fetch trends: %w", err)
	}
	return trends, nil
}

// FetchInvestmentAlerts returns the alerts in stored order.
func (s *Store) FetchInvestmentAlerts(ctx context.Context) ([]model.InvestmentAlert, error) {
	rows, err := s.db.Query(ctx, `SELECT title, description, potential_impact FROM investment_alerts ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("fetch alerts: %w", err)
	}
	alerts, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.InvestmentAlert, error) {
		var a model.InvestmentAlert
		err := row.Scan(&a.Title, &a.Description, &a.PotentialImpact)
		return a, err
	})
	if err != nil {
		return nil, fmt.Errorf("fetch alerts: %w", err)
	}
	return alerts, nil
}

// LoadCatalog reads the whole catalog. Product names hold the stored suffix.
func (s *Store) LoadCatalog(ctx context.Context) (model.Catalog, error) {
	var c model.Catalog
	var err error

	if c.Products, err = s.queryProducts(ctx, selectProducts+` ORDER BY position, id`); err != nil {
		return c, fmt.Errorf("load products: %w", err)
	}

	rows, err := s.db.Query(ctx, `
		SELECT id, name, description, founded_year, revenue::text, employees
		FROM companies ORDER BY id`)
	if err != nil {
		return c, fmt.Errorf("load companies: %w", err)
	}
	c.Companies, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Company, error) {
		return scanCompany(row)
	})
	if err != nil {
		return c, fmt.Errorf("load companies: %w", err)
	}

	if c.Trends, err = s.FetchMarketTrends(ctx); err != nil {
		return c, err
	}
	if c.Alerts, err = s.FetchInvestmentAlerts(ctx); err != nil {
		return c, err
	}
	return c, nil
}

// Verify loads the catalog and checks product → company references.
func (s *Store) Verify(ctx context.Context) error {
	c, err := s.LoadCatalog(ctx)
	if err != nil {
		return err
	}
	if err := c.Validate(); err != nil {
		return fmt.Errorf("verify catalog: %w", err)
	}
	s.logger.Info("catalog verified",
		"products", len(c.Products),
		"companies", len(c.Companies),
		"trends", len(c.Trends),
		"alerts", len(c.Alerts),
	)
	return nil
}

func (s *Store) queryProducts(ctx context.Context, sql string, args ...any) ([]model.Product, error) {
	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Product, error) {
		return scanProduct(row)
	})
}

func scanProduct(row pgx.Row) (model.Product, error) {
	var (
		p                         model.Product
		price                     string
		rating, share, growthRate *float64
	)
	if err := row.Scan(&p.ID, &p.Name, &price, &rating, &share, &growthRate, &p.CompanyID); err != nil {
		return p, err
	}

	var err error
	if p.Price, err = decimal.NewFromString(price); err != nil {
		return p, fmt.Errorf("product %s price %q: %w", p.ID, price, err)
	}
	p.Rating = floatOrNaN(rating)
	p.MarketShare = floatOrNaN(share)
	p.GrowthTrend = floatOrNaN(growthRate)
	return p, nil
}

func scanCompany(row pgx.Row) (model.Company, error) {
	var (
		c       model.Company
		revenue string
	)
	if err := row.Scan(&c.ID, &c.Name, &c.Description, &c.FoundedYear, &revenue, &c.Employees); err != nil {
		return c, err
	}

	var err error
	if c.Revenue, err = decimal.NewFromString(revenue); err != nil {
		return c, fmt.Errorf("company %s revenue %q: %w", c.ID, revenue, err)
	}
	return c, nil
}

// floatOrNaN maps SQL NULL to NaN, the model's "not reported" value.
func floatOrNaN(f *float64) float64 {
	if f == nil {
		return math.NaN()
	}
	return *f
}

// nullableFloat maps NaN to SQL NULL.
func nullableFloat(f float64) *float64 {
	if math.IsNaN(f) {
		return nil
	}
	return &f
}

var _ provider.Provider = (*Store)(nil)
