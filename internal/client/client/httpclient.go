package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/rentadmin/internal/client/models"
	"github.com/dmitrijs2005/rentadmin/internal/netx"
)

// AdminPasswordHeader carries the shared admin credential on every request.
const AdminPasswordHeader = "x-admin-password"

const (
	photosField  = "photos"
	maxBodyBytes = 10 << 20
)

// HTTPClient talks to the JSON admin API.
type HTTPClient struct {
	baseURL  string
	password string
	http     *http.Client
}

var _ Client = (*HTTPClient)(nil)

// NewAdminClient returns a client for baseURL (e.g. "https://host/api")
// sending password as the admin credential.
func NewAdminClient(baseURL, password string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL:  strings.TrimRight(baseURL, "/"),
		password: password,
		http:     &http.Client{Timeout: timeout},
	}
}

// response is the status envelope returned by mutating endpoints.
type response struct {
	Success *bool             `json:"success"`
	ID      models.ID         `json:"id"`
	Images  *models.ImageList `json:"images"`
	Message string            `json:"message"`
	Error   string            `json:"error"`
}

func (r response) rejected() bool { return r.Success != nil && !*r.Success }

func (r response) message() string {
	if r.Message != "" {
		return r.Message
	}
	return r.Error
}

func (c *HTTPClient) endpoint(kind models.Kind, parts ...string) string {
	var b strings.Builder
	b.WriteString(c.baseURL)
	b.WriteString("/admin/")
	b.WriteString(string(kind))
	for _, p := range parts {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(p))
	}
	return b.String()
}

// do performs the request and returns the body of a 2xx answer. Non-2xx
// answers are mapped to TransportError or RejectionError.
func (c *HTTPClient) do(ctx context.Context, op, method, target string, body io.Reader, contentType string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set(AdminPasswordHeader, c.password)
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Op: op, Err: fmt.Errorf("%w: %w", ErrUnavailable, err)}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &TransportError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("%w: read body: %w", ErrUnavailable, err)}
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return data, nil
	}
	return nil, mapStatus(op, resp.StatusCode, data)
}

func mapStatus(op string, code int, data []byte) error {
	switch {
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return &TransportError{Op: op, StatusCode: code, Err: ErrUnauthorized}
	case code >= 500:
		return &TransportError{Op: op, StatusCode: code, Err: ErrUnavailable}
	}

	var r response
	if err := json.Unmarshal(data, &r); err == nil && r.message() != "" {
		return &RejectionError{Op: op, StatusCode: code, Message: r.message()}
	}
	return &RejectionError{Op: op, StatusCode: code, Message: http.StatusText(code)}
}

// mutate sends a request to an endpoint answering with the status envelope.
func (c *HTTPClient) mutate(ctx context.Context, op, method, target string, body io.Reader, contentType string) (response, error) {
	data, err := c.do(ctx, op, method, target, body, contentType)
	if err != nil {
		return response{}, err
	}

	var r response
	if len(bytes.TrimSpace(data)) > 0 {
		if err := json.Unmarshal(data, &r); err != nil {
			return response{}, fmt.Errorf("%s: %w: %w", op, ErrMalformedResponse, err)
		}
	}
	if r.rejected() {
		return response{}, &RejectionError{Op: op, Message: r.message()}
	}
	return r, nil
}

func jsonBody(op string, payload any) (io.Reader, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%s: encode: %w", op, err)
	}
	return bytes.NewReader(b), nil
}

func (c *HTTPClient) List(ctx context.Context, kind models.Kind) ([]json.RawMessage, error) {
	op := "list " + string(kind)

	data, err := c.do(ctx, op, http.MethodGet, c.endpoint(kind), nil, "")
	if err != nil {
		return nil, err
	}
	return decodeList(op, kind, data)
}

func (c *HTTPClient) Get(ctx context.Context, kind models.Kind, id string) (json.RawMessage, error) {
	op := "get " + kind.Singular()

	data, err := c.do(ctx, op, http.MethodGet, c.endpoint(kind, id), nil, "")
	if err != nil {
		return nil, err
	}
	return decodeOne(op, kind, data)
}

func (c *HTTPClient) Create(ctx context.Context, kind models.Kind, payload any) (string, error) {
	op := "create " + kind.Singular()

	body, err := jsonBody(op, payload)
	if err != nil {
		return "", err
	}
	r, err := c.mutate(ctx, op, http.MethodPost, c.endpoint(kind), body, "application/json")
	if err != nil {
		return "", err
	}
	if r.ID == "" {
		return "", fmt.Errorf("%s: %w: no id", op, ErrMalformedResponse)
	}
	return string(r.ID), nil
}

func (c *HTTPClient) Update(ctx context.Context, kind models.Kind, id string, payload any) error {
	op := "update " + kind.Singular()

	body, err := jsonBody(op, payload)
	if err != nil {
		return err
	}
	_, err = c.mutate(ctx, op, http.MethodPut, c.endpoint(kind, id), body, "application/json")
	return err
}

func (c *HTTPClient) Delete(ctx context.Context, kind models.Kind, id string) error {
	op := "delete " + kind.Singular()
	_, err := c.mutate(ctx, op, http.MethodDelete, c.endpoint(kind, id), nil, "")
	return err
}

func (c *HTTPClient) AttachImages(ctx context.Context, kind models.Kind, id string, files []Upload) ([]string, error) {
	op := "attach images"

	parts := make([]netx.Part, len(files))
	for i, f := range files {
		parts[i] = netx.Part{Name: f.Name, Content: f.Content}
	}
	body, contentType, err := netx.MultipartFiles(photosField, parts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	r, err := c.mutate(ctx, op, http.MethodPost, c.endpoint(kind, id, "images"), body, contentType)
	if err != nil {
		return nil, err
	}
	return imagesOf(op, r)
}

func (c *HTTPClient) DetachImage(ctx context.Context, kind models.Kind, id string, ref string) ([]string, error) {
	op := "detach image"

	body, err := jsonBody(op, map[string]string{"imageUrl": ref})
	if err != nil {
		return nil, err
	}
	r, err := c.mutate(ctx, op, http.MethodDelete, c.endpoint(kind, id, "images"), body, "application/json")
	if err != nil {
		return nil, err
	}
	return imagesOf(op, r)
}

func imagesOf(op string, r response) ([]string, error) {
	if r.Images == nil {
		return nil, fmt.Errorf("%s: %w: no images", op, ErrMalformedResponse)
	}
	return append([]string{}, (*r.Images)...), nil
}

// decodeList accepts a bare array or an object holding the array under
// "data" or the kind name.
func decodeList(op string, kind models.Kind, data []byte) ([]json.RawMessage, error) {
	data = bytes.TrimSpace(data)

	var list []json.RawMessage
	if len(data) > 0 && data[0] == '[' {
		if err := json.Unmarshal(data, &list); err != nil {
			return nil, fmt.Errorf("%s: %w: %w", op, ErrMalformedResponse, err)
		}
		return list, nil
	}

	obj, err := decodeObject(op, data)
	if err != nil {
		return nil, err
	}
	for _, key := range []string{"data", string(kind)} {
		raw, ok := obj[key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, &list); err != nil {
			return nil, fmt.Errorf("%s: %w: %q: %w", op, ErrMalformedResponse, key, err)
		}
		return list, nil
	}
	return nil, fmt.Errorf("%s: %w: no list", op, ErrMalformedResponse)
}

// decodeOne accepts a bare object or one wrapped under "data" or the
// singular kind name.
func decodeOne(op string, kind models.Kind, data []byte) (json.RawMessage, error) {
	data = bytes.TrimSpace(data)

	obj, err := decodeObject(op, data)
	if err != nil {
		return nil, err
	}
	for _, key := range []string{"data", kind.Singular()} {
		if raw, ok := obj[key]; ok && isObject(raw) {
			return raw, nil
		}
	}
	return json.RawMessage(data), nil
}

func decodeObject(op string, data []byte) (map[string]json.RawMessage, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, ErrMalformedResponse, err)
	}

	var success bool
	if raw, ok := obj["success"]; ok && json.Unmarshal(raw, &success) == nil && !success {
		var msg string
		for _, key := range []string{"message", "error"} {
			if raw, ok := obj[key]; ok && json.Unmarshal(raw, &msg) == nil && msg != "" {
				break
			}
		}
		return nil, &RejectionError{Op: op, Message: msg}
	}
	return obj, nil
}

func isObject(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '{'
}
