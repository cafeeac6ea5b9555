package network

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"wacc-calculator/src/helpers"
	"wacc-calculator/src/interfaces"
	"wacc-calculator/src/logger"
	"wacc-calculator/src/models"
)

type NetworkManager struct {
	Config       *models.MConfig
	ProxyManager interfaces.IProxyManager
	Client       *http.Client
	Logger       *logger.Logger
}

// -----------------------------------------------------------------------------

func NewNetworkManager(cfg *models.MConfig, log *logger.Logger) *NetworkManager {
	var proxies []string
	if cfg.Network.Enabled {
		proxies = cfg.Network.Proxies
	}

	nm := &NetworkManager{
		Config:       cfg,
		ProxyManager: helpers.NewProxyManager(proxies),
		Logger:       log,
	}
	nm.Client = nm.createClient()
	return nm
}

// -----------------------------------------------------------------------------

func (nm *NetworkManager) createClient() *http.Client {
	transport := &http.Transport{}

	if nm.ProxyManager.HasProxies() {
		proxyStr, err := nm.ProxyManager.GetCurrentProxy()
		if err == nil && proxyStr != "" {
			proxyURL, err := url.Parse(proxyStr)
			if err == nil {
				transport.Proxy = http.ProxyURL(proxyURL)
			}
		}
	}

	return &http.Client{
		Transport: transport,
		Timeout:   time.Duration(nm.Config.Network.RequestTimeout) * time.Second,
	}
}

// -----------------------------------------------------------------------------

func (nm *NetworkManager) rotateProxy() {
	if !nm.ProxyManager.HasProxies() {
		return
	}

	nm.ProxyManager.RotateProxy()
	nm.Client = nm.createClient()
}

// -----------------------------------------------------------------------------

// Get performs a GET request with proxy rotation. The attempt count is
// Network.MaxRetries+1; retries default to 0, so one throttled or failed
// call simply surfaces as an error and the caller degrades to missing fields.
func (nm *NetworkManager) Get(urlStr string, params map[string]string) ([]byte, error) {
	reqUrl, err := url.Parse(urlStr)
	if err != nil {
		return nil, err
	}

	q := reqUrl.Query()
	for k, v := range params {
		q.Add(k, v)
	}
	reqUrl.RawQuery = q.Encode()

	finalUrl := reqUrl.String()

	maxRetries := nm.Config.Network.MaxRetries
	var lastErr error

	for i := 0; i <= maxRetries; i++ {
		if i > 0 {
			time.Sleep(time.Duration(i*i) * time.Second)
			nm.rotateProxy()
		}

		req, err := http.NewRequest("GET", finalUrl, nil)
		if err != nil {
			return nil, err
		}

		userAgent := nm.Config.Network.UserAgent
		if userAgent == "" {
			userAgent = nm.ProxyManager.GetUserAgent()
		}
		req.Header.Set("User-Agent", userAgent)
		req.Header.Set("Accept", "application/json")

		resp, err := nm.Client.Do(req)
		if err != nil {
			lastErr = err
			nm.Logger.Info("Request failed (attempt %d/%d): %v", i+1, maxRetries+1, err)
			continue
		}

		if resp.StatusCode == 429 || resp.StatusCode == 403 {
			resp.Body.Close()
			lastErr = fmt.Errorf("blocked (status %d)", resp.StatusCode)
			nm.Logger.Info("Request blocked (%d). Rotating proxy.", resp.StatusCode)
			continue
		}

		if resp.StatusCode != 200 {
			resp.Body.Close()
			lastErr = fmt.Errorf("bad status: %d", resp.StatusCode)
			nm.Logger.Info("Bad status %d", resp.StatusCode)
			continue
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = err
			continue
		}

		return body, nil
	}

	return nil, &helpers.NetworkError{WaccCalculatorError: helpers.WaccCalculatorError{
		Message: fmt.Sprintf("GET %s failed after %d attempt(s)", reqUrl.Host, maxRetries+1),
		Cause:   lastErr,
	}}
}
