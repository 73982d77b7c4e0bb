package vtex

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultProfileBaseURL = "https://profilesystem.vtex.com.br"
	defaultAPIBaseURL     = "http://api.vtex.com"
	defaultStoreBaseURL   = "http://{accountName}.vtexcommercestable.com.br"

	// Master Data document endpoints require this media type.
	acceptMasterData = "application/vnd.vtex.ds.v10+json"

	requestTimeout = 30 * time.Second
)

// Config holds the fixed credentials for one store account. The struct is
// copied into the client at construction and never mutated afterwards.
type Config struct {
	Account     string
	AppKey      string
	AppToken    string
	Environment string

	// Base URL overrides, used by tests. Empty values fall back to the
	// platform defaults. StoreBaseURL may contain the {accountName}
	// placeholder.
	ProfileBaseURL string
	APIBaseURL     string
	StoreBaseURL   string
}

// Client performs authenticated calls against the platform's profile,
// Master Data and gift-card APIs. Safe for concurrent use.
type Client struct {
	cfg        Config
	logger     *log.Logger
	httpClient *http.Client
}

// NewClient builds a Client from the given account credentials.
func NewClient(cfg Config, logger *log.Logger) *Client {
	if cfg.ProfileBaseURL == "" {
		cfg.ProfileBaseURL = defaultProfileBaseURL
	}
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = defaultAPIBaseURL
	}
	if cfg.StoreBaseURL == "" {
		cfg.StoreBaseURL = defaultStoreBaseURL
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Client{
		cfg:    cfg,
		logger: logger,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

// VerifyAccount looks up a profile by its surrogate key (email) and returns
// the profile identifier. A failed call or missing profile yields an error.
func (c *Client) VerifyAccount(ctx context.Context, email string) (string, error) {
	query := url.Values{
		"surrogateKey": {email},
		"an":           {c.cfg.Account},
	}
	var out struct {
		ProfileID string `json:"profileId"`
	}
	err := c.do(ctx, http.MethodGet, c.cfg.ProfileBaseURL+"/api/profile-system/pvt/profiles/sk-", query, nil, "", &out)
	if err != nil {
		return "", err
	}
	return out.ProfileID, nil
}

// Search runs a generic Master Data entity search with a field projection
// and a filter expression such as "email=someone@example.com".
func (c *Client) Search(ctx context.Context, acronym, fields, where string) ([]map[string]interface{}, error) {
	query := url.Values{
		"_fields": {fields},
		"_where":  {where},
	}
	var out []map[string]interface{}
	err := c.do(ctx, http.MethodGet, c.cfg.APIBaseURL+"/{accountName}/dataentities/"+acronym+"/search", query, nil, "", &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CreateAccount posts a new CL document. The account name, entity id and
// default cluster are stamped on the payload here so callers only supply
// the personal fields.
func (c *Client) CreateAccount(ctx context.Context, acct NewAccount) (*Document, error) {
	acct.AccountName = c.cfg.Account
	acct.DataEntityID = "CL"
	acct.BCluster = "M"

	var doc Document
	err := c.do(ctx, http.MethodPost, c.cfg.APIBaseURL+"/{accountName}/dataentities/CL/documents", nil, acct, acceptMasterData, &doc)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// CreateAddress posts a new AD document for the given profile.
func (c *Client) CreateAddress(ctx context.Context, addr NewAddress) (*Document, error) {
	var doc Document
	err := c.do(ctx, http.MethodPost, c.cfg.APIBaseURL+"/{accountName}/dataentities/AD/documents", nil, addr, acceptMasterData, &doc)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// SaveAccount patches an existing CL document. The store host answers with
// an empty body on success.
func (c *Client) SaveAccount(ctx context.Context, upd AccountUpdate) error {
	return c.do(ctx, http.MethodPatch, c.cfg.StoreBaseURL+"/api/dataentities/CL/documents", nil, upd, acceptMasterData, nil)
}

// GiftCardCreate creates a gift card on the store's gift-card system.
func (c *Client) GiftCardCreate(ctx context.Context, req GiftCardRequest) (*GiftCard, error) {
	var card GiftCard
	err := c.do(ctx, http.MethodPost, c.cfg.StoreBaseURL+"/api/gift-card-system/pvt/giftCards", nil, req, acceptMasterData, &card)
	if err != nil {
		return nil, err
	}
	return &card, nil
}

// GiftCardAddPoints applies a credit transaction to an existing gift card.
func (c *Client) GiftCardAddPoints(ctx context.Context, giftCardID string, credit GiftCardCredit) (map[string]interface{}, error) {
	var out map[string]interface{}
	err := c.do(ctx, http.MethodPost, c.cfg.StoreBaseURL+"/api/gift-card-system/pvt/giftCards/"+giftCardID+"/credit", nil, credit, acceptMasterData, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// do executes a single authenticated request. Every call carries the
// app-key/app-token pair; {accountName} in the URL is replaced with the
// configured account slug. Non-2xx statuses come back as *APIError with the
// response body captured for the log line.
func (c *Client) do(ctx context.Context, method, rawURL string, query url.Values, body interface{}, accept string, out interface{}) error {
	rawURL = strings.ReplaceAll(rawURL, "{accountName}", c.cfg.Account)
	if len(query) > 0 {
		rawURL += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("vtex: marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return fmt.Errorf("vtex: build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	req.Header.Set("x-vtex-api-appKey", c.cfg.AppKey)
	req.Header.Set("x-vtex-api-appToken", c.cfg.AppToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Printf("vtex: %s %s: %v", method, rawURL, err)
		return fmt.Errorf("vtex: send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		respBody, _ := io.ReadAll(resp.Body)
		apiErr := &APIError{StatusCode: resp.StatusCode, Body: string(respBody)}
		c.logger.Printf("vtex: %s %s: %v", method, rawURL, apiErr)
		return apiErr
	}

	if out == nil {
		return nil
	}
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("vtex: read response body: %w", err)
	}
	if len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		c.logger.Printf("vtex: %s %s: decode: %v", method, rawURL, err)
		return fmt.Errorf("vtex: decode response: %w", err)
	}
	return nil
}
