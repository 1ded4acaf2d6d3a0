package airalo

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	domainErrors "github.com/encryptSIM/backend/internal/domain/errors"
	"github.com/encryptSIM/backend/internal/domain/model"
)

// Provider exposes the operations the service needs from the eSIM vendor.
type Provider interface {
	PlaceOrder(ctx context.Context, spec model.ProductSpec) (*model.SimArtifact, error)
	PlaceTopup(ctx context.Context, spec model.ProductSpec) (*model.SimArtifact, error)
	PackagePlans(ctx context.Context, packageType, country string) (json.RawMessage, error)
	SIMTopups(ctx context.Context, iccid string) (json.RawMessage, error)
	DataUsage(ctx context.Context, iccid string) (json.RawMessage, error)
}

// Client talks to the Airalo partner API with client-credentials auth.
type Client struct {
	rest         *resty.Client
	clientID     string
	clientSecret string
	logger       *slog.Logger

	mu          sync.Mutex
	token       string
	tokenExpiry time.Time
}

// NewClient constructs the vendor client with a default timeout.
func NewClient(baseURL, clientID, clientSecret string, logger *slog.Logger) *Client {
	rest := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(30 * time.Second).
		SetHeader("Accept", "application/json")
	return &Client{rest: rest, clientID: clientID, clientSecret: clientSecret, logger: logger}
}

type tokenResponse struct {
	Data struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	} `json:"data"`
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

func (c *Client) accessToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && time.Now().Before(c.tokenExpiry) {
		return c.token, nil
	}

	var parsed tokenResponse
	resp, err := c.rest.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"client_id":     c.clientID,
			"client_secret": c.clientSecret,
			"grant_type":    "client_credentials",
		}).
		SetResult(&parsed).
		Post("/v2/token")
	if err != nil {
		return "", fmt.Errorf("%w: token: %s", domainErrors.ErrProviderFailure, err)
	}
	if resp.IsError() {
		c.logger.Error("airalo token request failed", slog.Int("status", resp.StatusCode()), slog.String("body", resp.String()))
		return "", fmt.Errorf("%w: token: %s", domainErrors.ErrProviderFailure, resp.Status())
	}

	token := parsed.Data.AccessToken
	expiresIn := parsed.Data.ExpiresIn
	if token == "" {
		token = parsed.AccessToken
		expiresIn = parsed.ExpiresIn
	}
	if token == "" {
		return "", fmt.Errorf("%w: token response carried no access token", domainErrors.ErrProviderFailure)
	}
	if expiresIn <= 0 {
		expiresIn = 3600
	}

	c.token = token
	// Refresh a minute before the vendor expires us.
	c.tokenExpiry = time.Now().Add(time.Duration(expiresIn-60) * time.Second)
	return c.token, nil
}

type orderResponse struct {
	Data struct {
		Sims []struct {
			ICCID                string `json:"iccid"`
			QRCode               string `json:"qrcode"`
			QRCodeURL            string `json:"qrcode_url"`
			AppleInstallationURL string `json:"direct_apple_installation_url"`
		} `json:"sims"`
	} `json:"data"`
}

// PlaceOrder provisions a fresh eSIM for the given package and returns the
// installation artifact.
func (c *Client) PlaceOrder(ctx context.Context, spec model.ProductSpec) (*model.SimArtifact, error) {
	token, err := c.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	var parsed orderResponse
	resp, err := c.rest.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetFormData(map[string]string{
			"package_id": spec.PackageID,
			"quantity":   strconv.Itoa(spec.Quantity),
		}).
		SetResult(&parsed).
		Post("/v2/orders")
	if err != nil {
		return nil, fmt.Errorf("%w: place order: %s", domainErrors.ErrProviderFailure, err)
	}
	if resp.IsError() {
		c.logger.Error("airalo order failed", slog.String("package", spec.PackageID), slog.Int("status", resp.StatusCode()), slog.String("body", resp.String()))
		return nil, fmt.Errorf("%w: place order: %s", domainErrors.ErrProviderFailure, resp.Status())
	}
	if len(parsed.Data.Sims) == 0 {
		return nil, fmt.Errorf("%w: order response carried no sims", domainErrors.ErrProviderFailure)
	}

	sim := parsed.Data.Sims[0]
	return &model.SimArtifact{
		ICCID:                sim.ICCID,
		QRCode:               sim.QRCode,
		QRCodeURL:            sim.QRCodeURL,
		AppleInstallationURL: sim.AppleInstallationURL,
		PackageID:            spec.PackageID,
		CreatedAtMs:          time.Now().UnixMilli(),
	}, nil
}

// PlaceTopup applies a data top-up to an existing sim.
func (c *Client) PlaceTopup(ctx context.Context, spec model.ProductSpec) (*model.SimArtifact, error) {
	token, err := c.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := c.rest.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetFormData(map[string]string{
			"package_id": spec.PackageID,
			"iccid":      spec.ICCID,
		}).
		Post("/v2/orders/topups")
	if err != nil {
		return nil, fmt.Errorf("%w: place topup: %s", domainErrors.ErrProviderFailure, err)
	}
	if resp.IsError() {
		c.logger.Error("airalo topup failed", slog.String("iccid", spec.ICCID), slog.Int("status", resp.StatusCode()), slog.String("body", resp.String()))
		return nil, fmt.Errorf("%w: place topup: %s", domainErrors.ErrProviderFailure, resp.Status())
	}

	return &model.SimArtifact{
		ICCID:       spec.ICCID,
		PackageID:   spec.PackageID,
		CreatedAtMs: time.Now().UnixMilli(),
	}, nil
}

type dataResponse struct {
	Data json.RawMessage `json:"data"`
}

// PackagePlans returns the raw catalog for the given type and optional country.
func (c *Client) PackagePlans(ctx context.Context, packageType, country string) (json.RawMessage, error) {
	params := map[string]string{"filter[type]": packageType}
	if country != "" {
		params["filter[country]"] = country
	}
	return c.getData(ctx, "/v2/packages", params)
}

// SIMTopups lists top-up packages available for a sim.
func (c *Client) SIMTopups(ctx context.Context, iccid string) (json.RawMessage, error) {
	return c.getData(ctx, "/v2/sims/"+iccid+"/topups", nil)
}

// DataUsage returns the vendor's usage report for a sim.
func (c *Client) DataUsage(ctx context.Context, iccid string) (json.RawMessage, error) {
	return c.getData(ctx, "/v2/sims/"+iccid+"/usage", nil)
}

func (c *Client) getData(ctx context.Context, path string, params map[string]string) (json.RawMessage, error) {
	token, err := c.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	var parsed dataResponse
	req := c.rest.R().SetContext(ctx).SetAuthToken(token).SetResult(&parsed)
	if len(params) > 0 {
		req.SetQueryParams(params)
	}
	resp, err := req.Get(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %s", domainErrors.ErrProviderFailure, path, err)
	}
	if resp.IsError() {
		c.logger.Error("airalo request failed", slog.String("path", path), slog.Int("status", resp.StatusCode()), slog.String("body", resp.String()))
		return nil, fmt.Errorf("%w: %s: %s", domainErrors.ErrProviderFailure, path, resp.Status())
	}
	return parsed.Data, nil
}
