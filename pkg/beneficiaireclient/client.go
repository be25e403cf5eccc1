/**
 * @description
 * This package provides a client for communicating with the
 * beneficiaire-service. It is the seam through which the virement-service
 * validates and enriches transfers, and the MCP relay lists beneficiaries.
 *
 * The client keeps the two failure modes apart: a beneficiary that does not
 * exist surfaces as ErrBeneficiaireNotFound, while transport failures and
 * unexpected statuses surface as ErrServiceUnavailable, so callers can
 * answer 400 vs 503 instead of conflating them.
 */
package beneficiaireclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

var (
	// ErrBeneficiaireNotFound means the remote service answered and the
	// beneficiary is absent.
	ErrBeneficiaireNotFound = errors.New("beneficiaire not found")
	// ErrServiceUnavailable means the remote call itself failed; nothing can
	// be said about the beneficiary.
	ErrServiceUnavailable = errors.New("beneficiaire service unavailable")
)

// Beneficiaire is the subset of beneficiary fields the callers consume.
type Beneficiaire struct {
	ID     int64  `json:"id"`
	Nom    string `json:"nom"`
	Prenom string `json:"prenom"`
	Rib    string `json:"rib"`
	Type   string `json:"type"`
}

// Client is a client for the beneficiaire service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new beneficiaire service client. The timeout bounds
// every call; it comes from configuration rather than being left unbounded.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Exists checks whether the beneficiary with the given id exists.
func (c *Client) Exists(ctx context.Context, id int64) (bool, error) {
	url := fmt.Sprintf("%s/beneficiaires/%d/exists", c.baseURL, id)

	resp, err := c.get(ctx, url)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("%w: existence check returned status %d", ErrServiceUnavailable, resp.StatusCode)
	}

	var exists bool
	if err := json.NewDecoder(resp.Body).Decode(&exists); err != nil {
		return false, fmt.Errorf("%w: decoding existence response: %v", ErrServiceUnavailable, err)
	}
	return exists, nil
}

// GetByID fetches the beneficiary with the given id.
func (c *Client) GetByID(ctx context.Context, id int64) (*Beneficiaire, error) {
	return c.fetch(ctx, fmt.Sprintf("%s/beneficiaires/%d", c.baseURL, id))
}

// GetByRib fetches the beneficiary owning the given RIB.
func (c *Client) GetByRib(ctx context.Context, rib string) (*Beneficiaire, error) {
	return c.fetch(ctx, fmt.Sprintf("%s/beneficiaires/rib/%s", c.baseURL, rib))
}

// ListAll fetches every beneficiary.
func (c *Client) ListAll(ctx context.Context) ([]Beneficiaire, error) {
	url := c.baseURL + "/beneficiaires"

	resp, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: list returned status %d", ErrServiceUnavailable, resp.StatusCode)
	}

	var beneficiaires []Beneficiaire
	if err := json.NewDecoder(resp.Body).Decode(&beneficiaires); err != nil {
		return nil, fmt.Errorf("%w: decoding list response: %v", ErrServiceUnavailable, err)
	}
	return beneficiaires, nil
}

func (c *Client) fetch(ctx context.Context, url string) (*Beneficiaire, error) {
	resp, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrBeneficiaireNotFound
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: beneficiaire fetch returned status %d", ErrServiceUnavailable, resp.StatusCode)
	}

	var b Beneficiaire
	if err := json.NewDecoder(resp.Body).Decode(&b); err != nil {
		return nil, fmt.Errorf("%w: decoding beneficiaire response: %v", ErrServiceUnavailable, err)
	}
	return &b, nil
}

func (c *Client) get(ctx context.Context, url string) (*http.Response, error) {
	if c.baseURL == "" {
		return nil, fmt.Errorf("%w: base URL is not configured", ErrServiceUnavailable)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	return resp, nil
}
