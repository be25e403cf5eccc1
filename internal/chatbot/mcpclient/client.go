/**
 * @description
 * Client for the MCP relay. MCP failures degrade the chatbot's answers;
 * they are never surfaced as server errors to the chat caller.
 */
package mcpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Beneficiaire is the shape the agent consumes from the relay.
type Beneficiaire struct {
	ID     int64  `json:"id"`
	Nom    string `json:"nom"`
	Prenom string `json:"prenom"`
	Rib    string `json:"rib"`
	Type   string `json:"type"`
}

// Virement is the shape the agent consumes from the relay.
type Virement struct {
	ID           int64  `json:"id"`
	RibSource    string `json:"ribSource"`
	Montant      string `json:"montant"`
	Statut       string `json:"statut"`
	Type         string `json:"type"`
	DateVirement string `json:"dateVirement"`
}

// Client is a client for the MCP relay.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new MCP relay client.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// Beneficiaries fetches every beneficiary through the relay.
func (c *Client) Beneficiaries(ctx context.Context) ([]Beneficiaire, error) {
	var beneficiaires []Beneficiaire
	if err := c.getJSON(ctx, c.baseURL+"/beneficiaries", &beneficiaires); err != nil {
		return nil, err
	}
	return beneficiaires, nil
}

// VirementsOf fetches the named beneficiary's transfers through the relay.
func (c *Client) VirementsOf(ctx context.Context, name string) ([]Virement, error) {
	var virements []Virement
	endpoint := fmt.Sprintf("%s/virements?beneficiary=%s", c.baseURL, url.QueryEscape(name))
	if err := c.getJSON(ctx, endpoint, &virements); err != nil {
		return nil, err
	}
	return virements, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach mcp server: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("mcp server returned status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode mcp response: %w", err)
	}
	return nil
}
