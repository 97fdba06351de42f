package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/dmravi/erpcli/internal/client/models"
	"github.com/dmravi/erpcli/internal/common"
)

// Endpoint paths on the login contract.
const (
	accountsPath = "/api/Login/GetUserAccounts"
	loginPath    = "/api/Login/AuthenticateUser"
	authUserPath = "/api/Login/GetAuthUser"
)

// HTTPClient talks JSON over HTTP to the ERP backend. The backend base URL
// starts at the compiled-in default and is switched to the selected
// account's WebAPI once the primary login succeeds.
type HTTPClient struct {
	http     *http.Client
	deviceID string
	limiter  *rate.Limiter

	mu      sync.RWMutex
	backend string
}

// NewHTTPClient builds a client pointed at baseURL. rps/burst configure the
// outbound request throttle.
func NewHTTPClient(baseURL string, timeout time.Duration, deviceID string, rps float64, burst int) *HTTPClient {
	return &HTTPClient{
		http:     &http.Client{Timeout: timeout},
		deviceID: deviceID,
		limiter:  rate.NewLimiter(rate.Limit(rps), burst),
		backend:  strings.TrimRight(baseURL, "/"),
	}
}

func (c *HTTPClient) SetBackend(base string) {
	c.mu.Lock()
	c.backend = strings.TrimRight(base, "/")
	c.mu.Unlock()
}

func (c *HTTPClient) Backend() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.backend
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

// doJSON issues one request and decodes the JSON body into out. Transport
// failures, non-2xx statuses, and undecodable bodies all map to
// ErrUnavailable; the caller only distinguishes "server said no" from
// "could not ask".
func (c *HTTPClient) doJSON(ctx context.Context, method, path string, query url.Values, header http.Header, body, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	u := c.Backend() + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(common.DeviceIDHeaderName, c.deviceID)
	for k, vals := range header {
		for _, v := range vals {
			req.Header.Set(k, v)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: unexpected status %d", ErrUnavailable, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decoding response: %v", ErrUnavailable, err)
	}
	return nil
}

func (c *HTTPClient) ResolveAccounts(ctx context.Context, username string) ([]models.Account, error) {
	query := url.Values{"username": {username}}

	var resp accountsResponse
	if err := c.doJSON(ctx, http.MethodGet, accountsPath, query, nil, nil, &resp); err != nil {
		return nil, err
	}

	if !resp.Success || len(resp.Data) == 0 {
		msg := resp.Message
		if msg == "" {
			msg = genericRejection
		}
		return nil, &RejectedError{Message: msg}
	}

	accounts := make([]models.Account, 0, len(resp.Data))
	for _, p := range resp.Data {
		accounts = append(accounts, models.Account{
			GlobalUserID: string(p.GlobalUserID),
			GlobalID:     string(p.GlobalID),
			LocalID:      string(p.LocalID),
			CompanyName:  string(p.CompanyName),
			WebAPI:       string(p.WebAPI),
		})
	}
	return accounts, nil
}

func (c *HTTPClient) Login(ctx context.Context, acc models.Account, username, encryptedPassword string) (string, error) {
	body := loginRequest{
		GlobalUserID: acc.GlobalUserID,
		Username:     username,
		Password:     encryptedPassword,
		CompanyName:  acc.CompanyName,
		GlobalID:     acc.GlobalID,
		LocalID:      acc.LocalID,
		WebAPI:       acc.WebAPI,
	}

	var resp loginResponse
	if err := c.doJSON(ctx, http.MethodPost, loginPath, nil, nil, body, &resp); err != nil {
		return "", err
	}

	if !resp.Success {
		msg := resp.Message
		if msg == "" {
			msg = genericRejection
		}
		return "", &RejectedError{Message: msg}
	}

	id := string(resp.Data.AuthenticateID)
	if id == "" {
		return "", fmt.Errorf("%w: login response carries no authenticate id", ErrUnavailable)
	}
	return id, nil
}

func (c *HTTPClient) FetchAuthUser(ctx context.Context, authenticateID string) (*models.AuthUser, error) {
	header := http.Header{}
	// Raw value, not "Bearer <id>"; the backend matches on the bare id.
	header.Set(common.AuthHeaderName, authenticateID)

	var resp authUserResponse
	if err := c.doJSON(ctx, http.MethodGet, authUserPath, nil, header, nil, &resp); err != nil {
		return nil, err
	}

	if !resp.Success {
		msg := resp.Message
		if msg == "" {
			msg = genericRejection
		}
		return nil, &RejectedError{Message: msg}
	}

	u := resp.User
	return &models.AuthUser{
		AuthenticateID: string(u.AuthenticateID),
		UserID:         string(u.UserID),
		CompanyID:      string(u.CompanyID),
		CompanyName:    string(u.CompanyName),
		UserName:       string(u.UserName),
		Name:           string(u.Name),
		UserType:       string(u.UserType),
		UserTypeID:     string(u.UserTypeID),
		BranchID:       string(u.BranchID),
		BranchName:     string(u.BranchName),
	}, nil
}
