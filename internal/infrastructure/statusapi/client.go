package statusapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/Uguee/accessvc/domain"
)

// Client talks to the hosted record store. Lookups are point queries
// by numeric ID returning at most one row; writes are JSON RPCs. Every
// request carries the bearer credential and the service key header.
// The client never substitutes a permissive default: transport
// problems, credential rejections and undecodable bodies each surface
// as their own error class, and only a 404 means absence.
type Client struct {
	baseURL    string
	bearer     string
	serviceKey string
	httpClient *http.Client
}

// NewClient creates a record store client
func NewClient(baseURL, bearer, serviceKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		bearer:     bearer,
		serviceKey: serviceKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type documentRow struct {
	UserID      uint      `json:"numericId"`
	SubmittedAt time.Time `json:"submittedAt"`
}

type registrationRow struct {
	UserID            uint      `json:"numericId"`
	InstitutionID     uint      `json:"institutionId"`
	Status            string    `json:"status"`
	InstitutionalRole string    `json:"institutionalRole"`
	CreatedAt         time.Time `json:"createdAt"`
}

type driverValidationRow struct {
	UserID        uint      `json:"numericId"`
	InstitutionID uint      `json:"institutionId"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
}

type rpcRequest struct {
	NumericID         uint   `json:"numericId"`
	InstitutionID     uint   `json:"institutionId,omitempty"`
	InstitutionalRole string `json:"institutionalRole,omitempty"`
	Status            string `json:"status,omitempty"`
}

type rpcResponse struct {
	Success bool   `json:"success"`
	Status  string `json:"status,omitempty"`
	Error   string `json:"error,omitempty"`
}

// FetchDocuments implements domain.StatusStore
func (c *Client) FetchDocuments(ctx context.Context, userID uint) (bool, error) {
	var row documentRow
	found, err := c.pointLookup(ctx, "/records/documents", userID, &row)
	if err != nil {
		return false, err
	}
	return found, nil
}

// FetchInstitutionRegistration implements domain.StatusStore
func (c *Client) FetchInstitutionRegistration(ctx context.Context, userID uint) (*domain.InstitutionRegistration, error) {
	var row registrationRow
	found, err := c.pointLookup(ctx, "/records/institution-registration", userID, &row)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &domain.InstitutionRegistration{
		UserID:            row.UserID,
		InstitutionID:     row.InstitutionID,
		Status:            domain.RegistrationStatus(row.Status),
		InstitutionalRole: row.InstitutionalRole,
		CreatedAt:         row.CreatedAt,
	}, nil
}

// FetchDriverValidation implements domain.StatusStore
func (c *Client) FetchDriverValidation(ctx context.Context, userID uint) (*domain.DriverValidation, error) {
	var row driverValidationRow
	found, err := c.pointLookup(ctx, "/records/driver-validation", userID, &row)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &domain.DriverValidation{
		UserID:        row.UserID,
		InstitutionID: row.InstitutionID,
		Status:        domain.DriverStatus(row.Status),
		CreatedAt:     row.CreatedAt,
	}, nil
}

// CreateDocuments implements domain.StatusWriter
func (c *Client) CreateDocuments(ctx context.Context, userID uint) error {
	return c.rpc(ctx, "/rpc/submit-documents", rpcRequest{NumericID: userID})
}

// CreateRegistration implements domain.StatusWriter
func (c *Client) CreateRegistration(ctx context.Context, reg *domain.InstitutionRegistration) error {
	return c.rpc(ctx, "/rpc/apply-institution", rpcRequest{
		NumericID:         reg.UserID,
		InstitutionID:     reg.InstitutionID,
		InstitutionalRole: reg.InstitutionalRole,
	})
}

// UpdateRegistrationStatus implements domain.StatusWriter
func (c *Client) UpdateRegistrationStatus(ctx context.Context, userID uint, status domain.RegistrationStatus) error {
	return c.rpc(ctx, "/rpc/review-registration", rpcRequest{
		NumericID: userID,
		Status:    string(status),
	})
}

// CreateDriverValidation implements domain.StatusWriter
func (c *Client) CreateDriverValidation(ctx context.Context, dv *domain.DriverValidation) error {
	return c.rpc(ctx, "/rpc/apply-driver", rpcRequest{
		NumericID:     dv.UserID,
		InstitutionID: dv.InstitutionID,
	})
}

// UpdateDriverStatus implements domain.StatusWriter
func (c *Client) UpdateDriverStatus(ctx context.Context, userID uint, status domain.DriverStatus) error {
	return c.rpc(ctx, "/rpc/review-driver", rpcRequest{
		NumericID: userID,
		Status:    string(status),
	})
}

// pointLookup performs one query-by-foreign-key round trip. It reports
// whether a row was found; a 404 is expected absence, not an error.
func (c *Client) pointLookup(ctx context.Context, path string, userID uint, out interface{}) (bool, error) {
	u := c.baseURL + path + "?numericId=" + url.QueryEscape(strconv.FormatUint(uint64(userID), 10))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return false, fmt.Errorf("%w: %v", domain.ErrNetworkFailure, err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("%w: %v", domain.ErrNetworkFailure, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return false, fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
		}
		return true, nil
	case http.StatusNotFound:
		return false, nil
	case http.StatusUnauthorized, http.StatusForbidden:
		return false, fmt.Errorf("%w: store returned %d", domain.ErrAuthFailure, resp.StatusCode)
	default:
		return false, fmt.Errorf("%w: store returned %d", domain.ErrNetworkFailure, resp.StatusCode)
	}
}

// rpc performs one HTTP POST remote procedure call.
func (c *Client) rpc(ctx context.Context, path string, body rpcRequest) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode rpc body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrNetworkFailure, err)
	}
	c.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrNetworkFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return fmt.Errorf("%w: store returned %d", domain.ErrAuthFailure, resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: store returned %d", domain.ErrNetworkFailure, resp.StatusCode)
	}

	var out rpcResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}
	if !out.Success {
		return fmt.Errorf("rpc %s rejected: %s", path, out.Error)
	}
	return nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.bearer)
	req.Header.Set("X-Service-Key", c.serviceKey)
}

// Compile-time interface compliance verification
var (
	_ domain.StatusStore  = (*Client)(nil)
	_ domain.StatusWriter = (*Client)(nil)
)
