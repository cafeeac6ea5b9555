package storage

import (
	"database/sql"
	"fmt"
	"time"

	"wacc-calculator/src/logger"
	"wacc-calculator/src/models"

	_ "modernc.org/sqlite"
)

// -----------------------------------------------------------------------------

type SQLiteDB struct {
	Config *models.MConfig
	DB     *sql.DB
	Logger *logger.Logger
}

// -----------------------------------------------------------------------------

func NewSQLiteDB(cfg *models.MConfig, log *logger.Logger) (*SQLiteDB, error) {
	return &SQLiteDB{
		Config: cfg,
		Logger: log,
	}, nil
}

// -----------------------------------------------------------------------------

func (d *SQLiteDB) Initialize() error {
	dsn := d.Config.Storage.DBPath

	// Open DB
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return err
	}

	if err := db.Ping(); err != nil {
		return err
	}

	d.DB = db

	// PRAGMA optimizations
	if _, err := db.Exec("PRAGMA journal_mode = WAL;"); err != nil {
		d.Logger.Warning("Failed to set WAL mode: %v", err)
	}
	if _, err := db.Exec("PRAGMA synchronous = NORMAL;"); err != nil {
		d.Logger.Warning("Failed to set synchronous mode: %v", err)
	}

	return d.createTables()
}

// -----------------------------------------------------------------------------

func (d *SQLiteDB) createTables() error {
	// SQLite types: INTEGER for int64, REAL for float64, TEXT for string
	query := `
		CREATE TABLE IF NOT EXISTS calculations (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			symbol TEXT NOT NULL,
			market_cap REAL,
			total_debt REAL,
			beta REAL,
			risk_free_rate REAL,
			market_risk_premium REAL,
			cost_of_debt REAL,
			tax_rate REAL,
			equity_weight REAL,
			debt_weight REAL,
			cost_of_equity REAL,
			after_tax_cost_of_debt REAL,
			wacc REAL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
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

func (d *SQLiteDB) SaveCalculation(rec models.MCalculationRecord) error {
	query := `
		INSERT INTO calculations (
			symbol, market_cap, total_debt, beta,
			risk_free_rate, market_risk_premium, cost_of_debt, tax_rate,
			equity_weight, debt_weight, cost_of_equity, after_tax_cost_of_debt, wacc,
			created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
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

func (d *SQLiteDB) RecentCalculations(limit int) ([]models.MCalculationRecord, error) {
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
		LIMIT ?
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

func (d *SQLiteDB) CleanupOldData() error {
	retentionDays := d.Config.Storage.RetentionDays
	if retentionDays <= 0 {
		return nil
	}

	cutoff := time.Now().UTC().AddDate(0, 0, -retentionDays)
	result, err := d.DB.Exec("DELETE FROM calculations WHERE created_at < ?", cutoff)
	if err != nil {
		return fmt.Errorf("failed to cleanup calculations: %w", err)
	}

	if deleted, err := result.RowsAffected(); err == nil && deleted > 0 {
		d.Logger.Info("Cleaned up %d calculations older than %d days", deleted, retentionDays)
	}

	return nil
}

// -----------------------------------------------------------------------------

func (d *SQLiteDB) Close() error {
	if d.DB == nil {
		return nil
	}
	return d.DB.Close()
}
