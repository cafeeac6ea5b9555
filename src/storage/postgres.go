package storage

import (
	"database/sql"
	"fmt"
	"time"

	"wacc-calculator/src/logger"
	"wacc-calculator/src/models"

	_ "github.com/lib/pq"
)

// -----------------------------------------------------------------------------

type PostgresDB struct {
	Config *models.MConfig
	DB     *sql.DB
	Logger *logger.Logger
}

// -----------------------------------------------------------------------------

func NewPostgresDB(cfg *models.MConfig, log *logger.Logger) (*PostgresDB, error) {
	return &PostgresDB{
		Config: cfg,
		Logger: log,
	}, nil
}

// -----------------------------------------------------------------------------

func (d *PostgresDB) Initialize() error {
	dsn := d.Config.Storage.DBConnectionString
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return err
	}

	if err := db.Ping(); err != nil {
		return err
	}

	d.DB = db

	if err := d.createTables(); err != nil {
		return err
	}

	d.Logger.Info("PostgresDB initialized successfully")
	return nil
}

// -----------------------------------------------------------------------------

func (d *PostgresDB) createTables() error {
	query := `
		CREATE TABLE IF NOT EXISTS calculations (
			id BIGSERIAL PRIMARY KEY,
			symbol TEXT NOT NULL,
			market_cap DOUBLE PRECISION,
			total_debt DOUBLE PRECISION,
			beta DOUBLE PRECISION,
			risk_free_rate DOUBLE PRECISION,
			market_risk_premium DOUBLE PRECISION,
			cost_of_debt DOUBLE PRECISION,
			tax_rate DOUBLE PRECISION,
			equity_weight DOUBLE PRECISION,
			debt_weight DOUBLE PRECISION,
			cost_of_equity DOUBLE PRECISION,
			after_tax_cost_of_debt DOUBLE PRECISION,
			wacc DOUBLE PRECISION,
			created_at TIMESTAMPTZ DEFAULT NOW()
		);
	`
	if _, err := d.DB.Exec(query); err != nil {
		return fmt.Errorf("failed to create calculations: %w", err)
	}

	query = `CREATE INDEX IF NOT EXISTS idx_calculations_symbol ON calculations (symbol, created_at);`
	if _, err := d.DB.Exec(query); err != nil {
		return fmt.Errorf("failed to create calculations index: %w", err)
	}

	return nil
}

// -----------------------------------------------------------------------------

func (d *PostgresDB) SaveCalculation(rec models.MCalculationRecord) error {
	query := `
		INSERT INTO calculations (
			symbol, market_cap, total_debt, beta,
			risk_free_rate, market_risk_premium, cost_of_debt, tax_rate,
			equity_weight, debt_weight, cost_of_equity, after_tax_cost_of_debt, wacc,
			created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := d.DB.Exec(query,
		rec.Symbol, rec.MarketCap, rec.TotalDebt, rec.Beta,
		rec.RiskFreeRate, rec.MarketRiskPremium, rec.CostOfDebt, rec.TaxRate,
		rec.EquityWeight, rec.DebtWeight, rec.CostOfEquity, rec.AfterTaxCostOfDebt, rec.Wacc,
		createdAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save calculation: %w", err)
	}

	return nil
}

// -----------------------------------------------------------------------------

func (d *PostgresDB) RecentCalculations(limit int) ([]models.MCalculationRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT id, symbol, market_cap, total_debt, beta,
			risk_free_rate, market_risk_premium, cost_of_debt, tax_rate,
			equity_weight, debt_weight, cost_of_equity, after_tax_cost_of_debt, wacc,
			created_at
		FROM calculations
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`

	rows, err := d.DB.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query calculations: %w", err)
	}
	defer rows.Close()

	var records []models.MCalculationRecord
	for rows.Next() {
		var rec models.MCalculationRecord
		if err := rows.Scan(
			&rec.ID, &rec.Symbol, &rec.MarketCap, &rec.TotalDebt, &rec.Beta,
			&rec.RiskFreeRate, &rec.MarketRiskPremium, &rec.CostOfDebt, &rec.TaxRate,
			&rec.EquityWeight, &rec.DebtWeight, &rec.CostOfEquity, &rec.AfterTaxCostOfDebt, &rec.Wacc,
			&rec.CreatedAt,
		); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

// -----------------------------------------------------------------------------

func (d *PostgresDB) CleanupOldData() error {
	retentionDays := d.Config.Storage.RetentionDays
	if retentionDays <= 0 {
		return nil
	}

	cutoff := time.Now().UTC().AddDate(0, 0, -retentionDays)
	result, err := d.DB.Exec("DELETE FROM calculations WHERE created_at < $1", cutoff)
	if err != nil {
		return fmt.Errorf("failed to cleanup calculations: %w", err)
	}

	if deleted, err := result.RowsAffected(); err == nil && deleted > 0 {
		d.Logger.Info("Cleaned up %d calculations older than %d days", deleted, retentionDays)
	}

	return nil
}

// -----------------------------------------------------------------------------

func (d *PostgresDB) Close() error {
	if d.DB == nil {
		return nil
	}
	return d.DB.Close()
}
