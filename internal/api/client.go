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

	"github.com/google/uuid"
	"go.uber.org/zap"

	"rhystmorgan/abook/internal/models"
)

const (
	ContactsPath    = "/api/contacts"
	RequestIDHeader = "X-Request-ID"
)

// Client talks to the contacts collection endpoint. Each call is a single
// round trip: no retries, no backoff and, unless the caller's context says
// otherwise, no deadline.
type Client struct {
	httpClient *http.Client
	baseURL    string
	log        *zap.Logger
}

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		log:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) FetchAll(ctx context.Context) ([]models.Contact, error) {
	var contacts []models.Contact
	if err := c.doRequest(ctx, http.MethodGet, ContactsPath, nil, &contacts); err != nil {
		return nil, fmt.Errorf("fetch contacts: %w", err)
	}
	if contacts == nil {
		contacts = []models.Contact{}
	}
	return contacts, nil
}

// Create posts the contact without its id. The server's echo, if any, is
// returned; a nil contact with a nil error means the server sent no
// decodable body.
func (c *Client) Create(ctx context.Context, contact models.Contact) (*models.Contact, error) {
	var created *models.Contact
	if err := c.doRequest(ctx, http.MethodPost, ContactsPath, contact.WithoutID(), &created); err != nil {
		return nil, fmt.Errorf("create contact: %w", err)
	}
	return created, nil
}

func (c *Client) Update(ctx context.Context, id models.ContactID, contact models.Contact) (*models.Contact, error) {
	contact = contact.Clone()
	contact.ID = id

	var updated *models.Contact
	if err := c.doRequest(ctx, http.MethodPut, contactPath(id), contact, &updated); err != nil {
		return nil, fmt.Errorf("update contact %s: %w", id, err)
	}
	return updated, nil
}

func (c *Client) Delete(ctx context.Context, id models.ContactID) error {
	if err := c.doRequest(ctx, http.MethodDelete, contactPath(id), nil, nil); err != nil {
		return fmt.Errorf("delete contact %s: %w", id, err)
	}
	return nil
}

func contactPath(id models.ContactID) string {
	return ContactsPath + "/" + url.PathEscape(id.String())
}

func (c *Client) doRequest(ctx context.Context, method, path string, body, result interface{}) error {
	requestID := uuid.NewString()
	log := c.log.With(
		zap.String("method", method),
		zap.String("path", path),
		zap.String("request_id", requestID),
	)

	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return NewError(ErrEncode, "failed to marshal request body", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return NewError(ErrEncode, "failed to create request", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	log.Debug("sending request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn("request failed", zap.Error(err))
		return ClassifyError(err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return NewConnectionError("failed to read response body", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Warn("request rejected", zap.Int("status", resp.StatusCode))
		return NewStatusError(method, path, resp.StatusCode, string(respBody))
	}

	log.Debug("request completed", zap.Int("status", resp.StatusCode))

	if result != nil && len(bytes.TrimSpace(respBody)) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			// Writes succeed on status alone; only reads need the body.
			if method != http.MethodGet {
				log.Debug("ignoring undecodable response body", zap.Error(err))
				return nil
			}
			return NewError(ErrDecode, "failed to decode response", err)
		}
	}

	return nil
}
