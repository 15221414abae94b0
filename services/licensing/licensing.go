package licensing

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"bcal/config"
	"bcal/models"
	"bcal/utils"

	"go.uber.org/zap"
)

// Verdict is the licensing server's answer for one organization.
type Verdict struct {
	Valid     bool       `json:"valid"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	Reason    string     `json:"reason,omitempty"`
}

// Client validates license keys against the central licensing server. When
// the server is unreachable the last stored expiry decides, so a licensing
// outage does not lock tenants out.
type Client struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// NewClient builds the licensing client from application configuration.
func NewClient() *Client {
	return &Client{
		BaseURL:    config.AppConfig.LicensingServerURL,
		APIKey:     config.AppConfig.LicensingAPIKey,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Validate checks the organization's license. Organizations without a key
// run on their subscription plan alone and are always considered licensed.
func (c *Client) Validate(ctx context.Context, org *models.Organization) (*Verdict, error) {
	if org.LicenseKey == "" {
		return &Verdict{Valid: true}, nil
	}
	if c.BaseURL == "" {
		return c.localVerdict(org), nil
	}

	url := fmt.Sprintf("%s/api/v1/licenses/%s/validate", c.BaseURL, org.LicenseKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		utils.GetLogger().Warn("licensing server unreachable, using stored expiry",
			zap.String("org_id", org.ID), zap.Error(err))
		return c.localVerdict(org), nil
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return &Verdict{Valid: false, Reason: "license not found"}, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("licensing server returned status %d", resp.StatusCode)
	}

	var v Verdict
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		return nil, fmt.Errorf("failed to decode licensing response: %w", err)
	}
	return &v, nil
}

// localVerdict falls back to the expiry stored on the organization.
func (c *Client) localVerdict(org *models.Organization) *Verdict {
	if org.LicenseExpiresAt == nil {
		return &Verdict{Valid: true}
	}
	if org.LicenseExpiresAt.After(time.Now()) {
		return &Verdict{Valid: true, ExpiresAt: org.LicenseExpiresAt}
	}
	return &Verdict{Valid: false, ExpiresAt: org.LicenseExpiresAt, Reason: "license expired"}
}
