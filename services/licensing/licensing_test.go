package licensing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bcal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateWithoutKeyAlwaysLicensed(t *testing.T) {
	c := &Client{HTTPClient: http.DefaultClient}
	v, err := c.Validate(context.Background(), &models.Organization{ID: "org-1"})
	require.NoError(t, err)
	assert.True(t, v.Valid)
}

func TestValidateAgainstServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/licenses/key-123/validate", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"valid": true}`))
	}))
	defer srv.Close()

	c := &Client{BaseURL: srv.URL, APIKey: "secret", HTTPClient: srv.Client()}
	v, err := c.Validate(context.Background(), &models.Organization{ID: "org-1", LicenseKey: "key-123"})
	require.NoError(t, err)
	assert.True(t, v.Valid)
}

func TestValidateUnknownLicense(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := &Client{BaseURL: srv.URL, HTTPClient: srv.Client()}
	v, err := c.Validate(context.Background(), &models.Organization{ID: "org-1", LicenseKey: "missing"})
	require.NoError(t, err)
	assert.False(t, v.Valid)
}

func TestValidateFallsBackToStoredExpiry(t *testing.T) {
	// Point at a closed server to force the unreachable path.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	future := time.Now().Add(24 * time.Hour)
	past := time.Now().Add(-24 * time.Hour)

	c := &Client{BaseURL: srv.URL, HTTPClient: &http.Client{Timeout: time.Second}}

	v, err := c.Validate(context.Background(), &models.Organization{ID: "org-1", LicenseKey: "k", LicenseExpiresAt: &future})
	require.NoError(t, err)
	assert.True(t, v.Valid)

	v, err = c.Validate(context.Background(), &models.Organization{ID: "org-1", LicenseKey: "k", LicenseExpiresAt: &past})
	require.NoError(t, err)
	assert.False(t, v.Valid)
}
