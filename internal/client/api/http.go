package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"syscall"
	"time"

	"github.com/notesphere/cli/internal/client/models"
	"github.com/notesphere/cli/internal/common"
	"github.com/notesphere/cli/internal/logging"
)

// HTTPClient is the concrete Client talking JSON (and multipart for
// uploads) to the backend. A bearer token from the TokenSource is attached
// to every request that has one, whether or not the endpoint requires it:
// the server personalizes some anonymous-capable responses for
// authenticated callers.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	log     logging.Logger
}

func NewHTTPClient(baseURL string, timeout time.Duration, tokens TokenSource, log logging.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
		log:     log,
	}
}

// authorize attaches the bearer token if one is available. When the call
// requires authentication and no valid token exists, it fails without
// touching the network.
func (c *HTTPClient) authorize(req *http.Request, required bool) error {
	var token string
	if c.tokens != nil {
		token = c.tokens.CurrentToken()
	}
	if token == "" {
		if required {
			return common.ErrUnauthenticated
		}
		return nil
	}
	req.Header.Set(common.AuthHeaderName, common.BearerPrefix+token)
	return nil
}

// doJSON runs one JSON round-trip. body may be nil; out may be nil for
// calls whose payload the caller ignores.
func (c *HTTPClient) doJSON(ctx context.Context, method, path string, body any, requireAuth bool, out any) error {
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if err := c.authorize(req, requireAuth); err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return classifyTransport(err)
	}
	defer resp.Body.Close()

	return decodeResponse(resp, out)
}

// decodeResponse classifies non-2xx statuses and unmarshals the payload.
func decodeResponse(resp *http.Response, out any) error {
	if resp.StatusCode >= 500 {
		return &ServerError{Code: resp.StatusCode, Message: readServerMessage(resp.Body)}
	}
	if resp.StatusCode >= 400 {
		return &ClientError{Code: resp.StatusCode, Message: readServerMessage(resp.Body)}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// readServerMessage extracts the "message" field from an error body, if the
// server provided one.
func readServerMessage(r io.Reader) string {
	var envelope models.StatusResponse
	b, err := io.ReadAll(io.LimitReader(r, 64*1024))
	if err != nil {
		return ""
	}
	if err := json.Unmarshal(b, &envelope); err != nil {
		return ""
	}
	return envelope.Message
}

// classifyTransport wraps a transport failure, marking timeouts and
// unreachable hosts as transient. Connection refused is deliberately not
// transient: the host answered, the service is down.
func classifyTransport(err error) *NetworkError {
	transient := false

	var nerr net.Error
	var dnsErr *net.DNSError
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		transient = true
	case errors.As(err, &nerr) && nerr.Timeout():
		transient = true
	case errors.As(err, &dnsErr):
		transient = dnsErr.IsTimeout || dnsErr.IsTemporary
	case errors.Is(err, syscall.EHOSTUNREACH), errors.Is(err, syscall.ENETUNREACH):
		transient = true
	}

	return &NetworkError{Cause: err, Transient: transient}
}

func (c *HTTPClient) Register(ctx context.Context, req models.RegisterRequest) (string, error) {
	var resp models.RegisterResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/users/register", req, false, &resp); err != nil {
		return "", err
	}
	if !resp.Success {
		return "", &ClientError{Code: http.StatusOK, Message: resp.Message}
	}
	return resp.Message, nil
}

func (c *HTTPClient) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	var resp models.LoginResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/users/login", req, false, &resp); err != nil {
		return nil, err
	}
	if !resp.Success || resp.Token == "" {
		msg := resp.Message
		if msg == "" {
			msg = "login failed"
		}
		return nil, &ClientError{Code: http.StatusOK, Message: msg}
	}
	return &resp, nil
}

func (c *HTTPClient) ListNotes(ctx context.Context) ([]models.Note, error) {
	var resp models.NotesResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/notes", nil, false, &resp); err != nil {
		return nil, err
	}
	return resp.Notes, nil
}

func (c *HTTPClient) SearchNotes(ctx context.Context, query string) ([]models.Note, error) {
	var resp models.NotesResponse
	path := "/api/notes/search?q=" + url.QueryEscape(query)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, false, &resp); err != nil {
		return nil, err
	}
	return resp.Notes, nil
}

func (c *HTTPClient) ListOwnNotes(ctx context.Context) ([]models.Note, error) {
	var resp models.NotesResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/users/notes", nil, true, &resp); err != nil {
		return nil, err
	}
	return resp.Notes, nil
}

func (c *HTTPClient) GetNote(ctx context.Context, id string) (*models.NoteDetails, error) {
	var resp models.NoteDetailsResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/notes/"+url.PathEscape(id), nil, false, &resp); err != nil {
		return nil, err
	}
	return &models.NoteDetails{
		Note:         resp.Note,
		DownloadURLs: resp.DownloadURLs,
		ViewURLs:     resp.ViewURLs,
	}, nil
}

func (c *HTTPClient) StarNote(ctx context.Context, id string) (*models.Note, error) {
	var resp models.StarResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/notes/star/"+url.PathEscape(id), nil, true, &resp); err != nil {
		return nil, err
	}
	if resp.Note == nil {
		msg := resp.Message
		if msg == "" {
			msg = "star failed"
		}
		return nil, &ClientError{Code: http.StatusOK, Message: msg}
	}
	return resp.Note, nil
}

func (c *HTTPClient) DeleteNote(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/notes/"+url.PathEscape(id), nil, true, nil)
}

func (c *HTTPClient) GetProfile(ctx context.Context, id string) (*models.User, error) {
	var resp models.ProfileResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/users/profile/"+url.PathEscape(id), nil, false, &resp); err != nil {
		return nil, err
	}
	if resp.User == nil {
		msg := resp.Message
		if msg == "" {
			msg = "profile not found"
		}
		return nil, &ClientError{Code: http.StatusOK, Message: msg}
	}
	return resp.User, nil
}

func (c *HTTPClient) UpdateProfile(ctx context.Context, req models.UpdateProfileRequest) (*models.User, error) {
	var resp models.ProfileResponse
	if err := c.doJSON(ctx, http.MethodPut, "/api/users/profile", req, true, &resp); err != nil {
		return nil, err
	}
	if resp.User == nil {
		msg := resp.Message
		if msg == "" {
			msg = "profile update failed"
		}
		return nil, &ClientError{Code: http.StatusOK, Message: msg}
	}
	return resp.User, nil
}

// DownloadFile streams an attachment from a signed URL into w. The URL may
// be absolute (signed storage link) or server-relative.
func (c *HTTPClient) DownloadFile(ctx context.Context, fileURL string, w io.Writer) error {
	if !strings.HasPrefix(fileURL, "http") {
		fileURL = c.baseURL + fileURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if err := c.authorize(req, true); err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return classifyTransport(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decodeResponse(resp, nil)
	}
	if _, err := io.Copy(w, resp.Body); err != nil {
		return &NetworkError{Cause: err}
	}
	return nil
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}
