/**
 * @description
 * Client for communicating with the virement-service. Used by the MCP relay
 * to list a beneficiary's transfers.
 */
package virementclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Virement mirrors the virement-service response shape.
type Virement struct {
	ID             int64           `json:"id"`
	BeneficiaireID int64           `json:"beneficiaireId"`
	RibSource      string          `json:"ribSource"`
	Montant        decimal.Decimal `json:"montant"`
	Description    string          `json:"description,omitempty"`
	DateVirement   time.Time       `json:"dateVirement"`
	Type           string          `json:"type"`
	Statut         string          `json:"statut"`
}

// Client is a client for the virement service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new virement service client.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// ListByBeneficiaire fetches the transfers referencing one beneficiary.
func (c *Client) ListByBeneficiaire(ctx context.Context, beneficiaireID int64) ([]Virement, error) {
	if c.baseURL == "" {
		return nil, fmt.Errorf("virement service base URL is not configured")
	}
	url := fmt.Sprintf("%s/virements/beneficiaire/%d", c.baseURL, beneficiaireID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request to virement service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("virement service returned error status %d", resp.StatusCode)
	}

	var virements []Virement
	if err := json.NewDecoder(resp.Body).Decode(&virements); err != nil {
		return nil, fmt.Errorf("failed to decode virement list: %w", err)
	}
	return virements, nil
}
