package server

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"wacc-calculator/src/analysis"
	"wacc-calculator/src/helpers"
	"wacc-calculator/src/interfaces"
	"wacc-calculator/src/logger"
	"wacc-calculator/src/models"
	"wacc-calculator/src/utils"

	"github.com/gin-gonic/gin"
)

// -----------------------------------------------------------------------------
// WaccServer
// -----------------------------------------------------------------------------

// MetricsProvider resolves ticker metrics and reports whether the record came
// from the cache. The metrics cache satisfies this.
type MetricsProvider interface {
	Name() string
	Lookup(symbol string) (models.MTickerMetrics, bool)
}

type WaccServer struct {
	Config  *models.MConfig
	Logger  *logger.Logger
	Metrics MetricsProvider
	Facade  *analysis.WaccFacade
	DB      interfaces.IDatabase
	Errors  *helpers.ErrorHandler
	engine  *gin.Engine

	// WebSocket clients
	clients    map[*Client]struct{}
	broadcast  chan models.MCalculationEvent
	register   chan *Client
	unregister chan *Client

	// Most recent calculation, sent to clients on connect
	latestEvent models.MCalculationEvent
	stateMutex  sync.RWMutex
}

// -----------------------------------------------------------------------------
// Constructor
// -----------------------------------------------------------------------------

func NewWaccServer(cfg *models.MConfig, log *logger.Logger, metrics MetricsProvider, facade *analysis.WaccFacade, db interfaces.IDatabase) *WaccServer {
	// Set Gin mode
	if cfg.LogLevel != "DEBUG" {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &WaccServer{
		Config:  cfg,
		Logger:  log,
		Metrics: metrics,
		Facade:  facade,
		DB:      db,
		Errors:  helpers.NewErrorHandler(),
		engine:  gin.Default(),
		clients: make(map[*Client]struct{}),
		// Buffered channel so a burst of submissions never blocks the handler
		broadcast:   make(chan models.MCalculationEvent, 64),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		latestEvent: models.MCalculationEvent{Type: "INITIAL"},
	}

	// Add CORS Middleware
	s.engine.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if strings.HasPrefix(origin, "http://127.0.0.1:") || strings.HasPrefix(origin, "http://localhost:") {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	s.setupRoutes()
	return s
}

// -----------------------------------------------------------------------------
// Route Setup
// -----------------------------------------------------------------------------

func (s *WaccServer) setupRoutes() {
	// Input form
	s.engine.GET("/", s.getForm)

	// REST API endpoints
	s.engine.POST("/api/wacc", s.postWacc)
	s.engine.GET("/api/history", s.getHistory)
	s.engine.GET("/api/config", s.getConfig)
	s.engine.GET("/api/health", s.getHealth)

	// WebSocket endpoint
	s.engine.GET("/ws", s.handleWebSocket)
}

// -----------------------------------------------------------------------------
// Server Lifecycle
// -----------------------------------------------------------------------------

func (s *WaccServer) Start() error {
	addr := fmt.Sprintf("%s:%d", s.Config.Host, s.Config.Port)
	s.Logger.Info("Starting server on %s", addr)

	go s.handleWebsockets()

	return s.engine.Run(addr)
}

// -----------------------------------------------------------------------------

func (s *WaccServer) Stop() error {
	// Clean shutdown
	close(s.broadcast)
	close(s.register)
	close(s.unregister)
	return nil
}

// -----------------------------------------------------------------------------

// Engine exposes the router for tests.
func (s *WaccServer) Engine() *gin.Engine {
	return s.engine
}

// -----------------------------------------------------------------------------
// Route Handlers
// -----------------------------------------------------------------------------

// postWacc runs one fetch+compute cycle for a form submission.
func (s *WaccServer) postWacc(c *gin.Context) {
	var req models.MWaccRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid request: %v", err)})
		return
	}

	symbol := strings.ToUpper(strings.TrimSpace(req.Ticker))
	if symbol == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please enter a ticker symbol."})
		return
	}

	startFetch := time.Now()
	metrics, cacheHit := s.Metrics.Lookup(symbol)
	fetchSeconds := time.Since(startFetch).Seconds()

	assumptions := analysis.Assumptions{
		RiskFreeRate:      req.RiskFreeRatePct / 100,
		MarketRiskPremium: req.MarketRiskPremiumPct / 100,
		CostOfDebt:        req.CostOfDebtPct / 100,
		TaxRate:           req.TaxRatePct / 100,
		ManualMarketCap:   req.ManualMarketCap,
	}

	inputs, result, err := s.Facade.Compute(metrics, assumptions)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": err.Error(),
			"tips":  "Avoid rapid repeat requests, or provide the market cap manually.",
		})
		return
	}

	event := models.MCalculationEvent{
		Type:       "RESULT",
		Symbol:     symbol,
		Inputs:     inputs,
		Result:     result,
		RawMetrics: metrics,
		Metrics: models.MFetchMetrics{
			FetchSeconds: fetchSeconds,
			CacheHit:     cacheHit,
			MarketOpen:   utils.IsMarketOpen(symbol),
		},
		Timestamp: time.Now().Unix(),
	}

	s.persistCalculation(symbol, inputs, result)
	s.Broadcast(event)

	c.JSON(http.StatusOK, models.MWaccResponse{
		Message:    fmt.Sprintf("WACC for %s: %.2f%%", symbol, result.Wacc*100),
		Symbol:     symbol,
		Inputs:     inputs,
		Result:     result,
		RawMetrics: metrics,
		Metrics:    event.Metrics,
	})
}

// -----------------------------------------------------------------------------

// persistCalculation appends the computation to the history store.
// Storage failures are logged, never surfaced to the form.
func (s *WaccServer) persistCalculation(symbol string, inputs models.MWaccInputs, result models.MWaccResult) {
	if s.DB == nil {
		return
	}

	rec := models.MCalculationRecord{
		Symbol:             symbol,
		MarketCap:          inputs.EquityValue,
		TotalDebt:          inputs.TotalDebt,
		Beta:               inputs.Beta,
		RiskFreeRate:       inputs.RiskFreeRate,
		MarketRiskPremium:  inputs.MarketRiskPremium,
		CostOfDebt:         inputs.CostOfDebt,
		TaxRate:            inputs.TaxRate,
		EquityWeight:       result.EquityWeight,
		DebtWeight:         result.DebtWeight,
		CostOfEquity:       result.CostOfEquity,
		AfterTaxCostOfDebt: result.AfterTaxCostOfDebt,
		Wacc:               result.Wacc,
		CreatedAt:          time.Now().UTC(),
	}

	if err := s.DB.SaveCalculation(rec); err != nil {
		s.Errors.Handle(err, fmt.Sprintf("save calculation for %s", symbol))
		return
	}

	if err := s.DB.CleanupOldData(); err != nil {
		s.Logger.Warning("History cleanup failed: %v", err)
	}
}

// -----------------------------------------------------------------------------

func (s *WaccServer) getHistory(c *gin.Context) {
	if s.DB == nil {
		c.JSON(http.StatusOK, gin.H{"calculations": []models.MCalculationRecord{}})
		return
	}

	limit := 20
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	records, err := s.DB.RecentCalculations(limit)
	if err != nil {
		s.Errors.Handle(err, "load history")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load history"})
		return
	}
	if records == nil {
		records = []models.MCalculationRecord{}
	}

	c.JSON(http.StatusOK, gin.H{"calculations": records})
}

// -----------------------------------------------------------------------------

func (s *WaccServer) getConfig(c *gin.Context) {
	// Form defaults and cache policy
	c.JSON(http.StatusOK, gin.H{
		"assumptions":       s.Config.Assumptions,
		"cache_ttl_seconds": s.Config.Cache.TTLSeconds,
		"data_source":       s.Metrics.Name(),
	})
}

// -----------------------------------------------------------------------------

func (s *WaccServer) getHealth(c *gin.Context) {
	s.stateMutex.RLock()
	connections := len(s.clients)
	timestamp := s.latestEvent.Timestamp
	s.stateMutex.RUnlock()

	c.JSON(http.StatusOK, gin.H{
		"status":             "ok",
		"connections":        connections,
		"latest_calculation": timestamp,
		"storage_errors":     s.Errors.ErrorCount(),
	})
}
