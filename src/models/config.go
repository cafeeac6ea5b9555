package models

// MConfig Structure
type MConfig struct {
	Name        string              `yaml:"name"`
	Host        string              `yaml:"host"`
	Port        int                 `yaml:"port"`
	LogLevel    string              `yaml:"log_level"`
	Storage     MStorageConfig      `yaml:"storage"`
	Network     MNetworkConfig      `yaml:"network"`
	DataSource  MDataSourceConfig   `yaml:"data_source"`
	Cache       MCacheConfig        `yaml:"cache"`
	Assumptions MAssumptionDefaults `yaml:"assumptions"`
}

type MStorageConfig struct {
	DBType             string `yaml:"db_type"`
	DBPath             string `yaml:"db_path"`
	DBConnectionString string `yaml:"db_connection_string"`
	RetentionDays      int    `yaml:"retention_days"`
}

type MNetworkConfig struct {
	Enabled        bool     `yaml:"enabled"`
	Proxies        []string `yaml:"proxies"`
	RequestTimeout int      `yaml:"timeout"`
	MaxRetries     int      `yaml:"retries"`
	UserAgent      string   `yaml:"user_agent"`
}

type MDataSourceConfig struct {
	Name        string `yaml:"name"`
	BaseURL     string `yaml:"base_url"`
	HistoryDays int    `yaml:"history_days"`
}

type MCacheConfig struct {
	TTLSeconds int `yaml:"ttl_seconds"`
}

// MAssumptionDefaults pre-fills the input form. Values are percentages.
type MAssumptionDefaults struct {
	RiskFreeRatePct      float64 `yaml:"risk_free_rate_pct"`
	MarketRiskPremiumPct float64 `yaml:"market_risk_premium_pct"`
	CostOfDebtPct        float64 `yaml:"cost_of_debt_pct"`
	TaxRatePct           float64 `yaml:"tax_rate_pct"`
}
