package tiktok

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
)

const (
	DefaultBaseURL = "https://open.tiktokapis.com/v2"
	DefaultAuthURL = "https://www.tiktok.com/v2/auth/authorize/"
)

// ErrInvalidToken means the platform rejected the access token
var ErrInvalidToken = errors.New("invalid access token")

// Client talks to the TikTok Open API
type Client struct {
	baseURL    string
	authURL    string
	httpClient *http.Client
}

func NewClient(baseURL, authURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if authURL == "" {
		authURL = DefaultAuthURL
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		authURL:    authURL,
		httpClient: &http.Client{},
	}
}

// UserInfo is the profile returned for a valid token
type UserInfo struct {
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	LogID   string `json:"log_id"`
}

func (e *apiError) ok() bool {
	return e == nil || e.Code == "" || e.Code == "ok"
}

type userInfoResponse struct {
	Data struct {
		User UserInfo `json:"user"`
	} `json:"data"`
	Error *apiError `json:"error"`
}

// ValidateToken fetches the user profile for token. Any non-success answer is ErrInvalidToken.
func (c *Client) ValidateToken(ctx context.Context, token string) (*UserInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/user/info/?fields=display_name,avatar_url", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call TikTok API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Printf("TikTok user info error (status %d): %s", resp.StatusCode, string(body))
		return nil, fmt.Errorf("%w: status %d", ErrInvalidToken, resp.StatusCode)
	}

	var apiResp userInfoResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if !apiResp.Error.ok() {
		return nil, fmt.Errorf("%w: %s - %s", ErrInvalidToken, apiResp.Error.Code, apiResp.Error.Message)
	}

	return &apiResp.Data.User, nil
}
