package user

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"bcal/config"
	"bcal/models"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for any failed authentication attempt.
// The cause (unknown user, wrong password, upstream rejection) is never
// disclosed to the caller.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthProvider verifies a user's credentials. The local provider checks the
// stored bcrypt hash; the hosted providers delegate to an external identity
// service and never see a password hash.
type AuthProvider interface {
	// Authenticate checks the password for the given user record.
	Authenticate(u *models.User, password string) error
	// Name identifies the provider in logs and audit entries.
	Name() string
}

// NewAuthProvider selects the provider from application configuration.
func NewAuthProvider() (AuthProvider, error) {
	switch config.AppConfig.AuthProvider {
	case "", "local":
		return &LocalAuthProvider{}, nil
	case "auth0":
		return &Auth0Provider{
			IssuerURL:    config.AppConfig.AuthIssuerURL,
			ClientID:     config.AppConfig.AuthClientID,
			ClientSecret: config.AppConfig.AuthClientSecret,
			HTTPClient:   &http.Client{Timeout: 10 * time.Second},
		}, nil
	case "sso":
		return &SSOProvider{
			IssuerURL:  config.AppConfig.AuthIssuerURL,
			HTTPClient: &http.Client{Timeout: 10 * time.Second},
		}, nil
	default:
		return nil, fmt.Errorf("unknown auth provider %q", config.AppConfig.AuthProvider)
	}
}

// LocalAuthProvider checks passwords against the stored bcrypt hash.
type LocalAuthProvider struct{}

func (p *LocalAuthProvider) Name() string { return "local" }

func (p *LocalAuthProvider) Authenticate(u *models.User, password string) error {
	if u.PasswordHash == "" {
		return ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// Auth0Provider validates credentials against an Auth0 tenant using the
// resource-owner password grant.
type Auth0Provider struct {
	IssuerURL    string
	ClientID     string
	ClientSecret string
	HTTPClient   *http.Client
}

func (p *Auth0Provider) Name() string { return "auth0" }

func (p *Auth0Provider) Authenticate(u *models.User, password string) error {
	payload, err := json.Marshal(map[string]string{
		"grant_type":    "password",
		"username":      u.Email,
		"password":      password,
		"client_id":     p.ClientID,
		"client_secret": p.ClientSecret,
	})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.IssuerURL+"/oauth/token", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("auth0 request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ErrInvalidCredentials
	}
	return nil
}

// SSOProvider validates credentials against a generic OIDC-compatible
// identity endpoint.
type SSOProvider struct {
	IssuerURL  string
	HTTPClient *http.Client
}

func (p *SSOProvider) Name() string { return "sso" }

func (p *SSOProvider) Authenticate(u *models.User, password string) error {
	payload, err := json.Marshal(map[string]string{
		"email":    u.Email,
		"password": password,
	})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.IssuerURL+"/session/verify", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("sso request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ErrInvalidCredentials
	}
	return nil
}
