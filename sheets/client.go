package sheets

import (
	"bytes"
	"context"
	"crypto/rsa"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	defaultBaseURL = "https://sheets.googleapis.com"
	tokenScope     = "https://www.googleapis.com/auth/spreadsheets https://www.googleapis.com/auth/drive.file"

	// readRange covers every column the service writes.
	readRange = "A1:Z9999"
)

// serviceAccountKey is the subset of a Google service-account JSON key the
// client needs.
type serviceAccountKey struct {
	ClientEmail string `json:"client_email"`
	PrivateKey  string `json:"private_key"`
	TokenURI    string `json:"token_uri"`
}

// Client talks to the Google Sheets values API for a single spreadsheet.
// Access tokens are minted from the service-account key with a signed RS256
// assertion and cached until shortly before expiry.
type Client struct {
	// BaseURL may be overridden in tests.
	BaseURL string

	spreadsheetID string
	key           serviceAccountKey
	privateKey    *rsa.PrivateKey
	httpClient    *http.Client

	mu       sync.Mutex
	token    string
	tokenExp time.Time
}

// NewClient builds a sheets client from raw service-account key JSON.
func NewClient(keyJSON []byte, spreadsheetID string) (*Client, error) {
	if spreadsheetID == "" {
		return nil, fmt.Errorf("spreadsheet id is not set")
	}
	var key serviceAccountKey
	if err := json.Unmarshal(keyJSON, &key); err != nil {
		return nil, fmt.Errorf("failed to parse service account key: %w", err)
	}
	pk, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(key.PrivateKey))
	if err != nil {
		return nil, fmt.Errorf("failed to parse service account private key: %w", err)
	}
	return &Client{
		BaseURL:       defaultBaseURL,
		spreadsheetID: spreadsheetID,
		key:           key,
		privateKey:    pk,
		httpClient:    &http.Client{Timeout: 30 * time.Second},
	}, nil
}

// accessToken returns a cached access token, minting a fresh one when the
// cached token is within a minute of expiry.
func (c *Client) accessToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && time.Until(c.tokenExp) > time.Minute {
		return c.token, nil
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"iss":   c.key.ClientEmail,
		"scope": tokenScope,
		"aud":   c.key.TokenURI,
		"iat":   now.Unix(),
		"exp":   now.Add(time.Hour).Unix(),
	}
	assertion, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(c.privateKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token assertion: %w", err)
	}

	form := url.Values{
		"grant_type": {"urn:ietf:params:oauth:grant-type:jwt-bearer"},
		"assertion":  {assertion},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.key.TokenURI, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("token exchange failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("token exchange returned %d: %s", resp.StatusCode, body)
	}

	var tr struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}

	c.token = tr.AccessToken
	c.tokenExp = now.Add(time.Duration(tr.ExpiresIn) * time.Second)
	return c.token, nil
}

// AppendRow appends one row of values to the spreadsheet.
func (c *Client) AppendRow(ctx context.Context, row []interface{}) error {
	token, err := c.accessToken(ctx)
	if err != nil {
		return err
	}

	body, err := json.Marshal(map[string]interface{}{"values": [][]interface{}{row}})
	if err != nil {
		return err
	}

	endpoint := fmt.Sprintf("%s/v4/spreadsheets/%s/values/A1:append?valueInputOption=RAW&insertDataOption=INSERT_ROWS",
		c.BaseURL, c.spreadsheetID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("append row failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("append row returned %d: %s", resp.StatusCode, respBody)
	}
	return nil
}

// ReadRows fetches every data row from the spreadsheet as header->value
// maps. The first row is the header; short rows pad missing cells with "".
func (c *Client) ReadRows(ctx context.Context) ([]map[string]string, error) {
	token, err := c.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/v4/spreadsheets/%s/values/%s", c.BaseURL, c.spreadsheetID, readRange)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("read rows failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("read rows returned %d: %s", resp.StatusCode, respBody)
	}

	var vr struct {
		Values [][]string `json:"values"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&vr); err != nil {
		return nil, fmt.Errorf("failed to decode values response: %w", err)
	}
	if len(vr.Values) < 2 {
		return []map[string]string{}, nil
	}

	headers := vr.Values[0]
	rows := make([]map[string]string, 0, len(vr.Values)-1)
	for _, raw := range vr.Values[1:] {
		row := make(map[string]string, len(headers))
		for i, h := range headers {
			if i < len(raw) {
				row[h] = raw[i]
			} else {
				row[h] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
