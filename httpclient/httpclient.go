// Package httpclient is a minimal request helper shared by the provider
// adapters. It returns result values instead of errors: network and decode
// failures surface as a 500 response with a message, so callers only ever
// branch on Status.
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

// Response is the uniform envelope for every call. Status mirrors the HTTP
// status code, or 500 when the request never completed. Body is the raw
// response payload; callers decode it themselves in a single parse step.
type Response struct {
	Body    []byte
	Status  int
	Message string
}

// OK reports whether the call completed with HTTP 200.
func (r *Response) OK() bool {
	return r.Status == http.StatusOK
}

// Client wraps an http.Client with the envelope contract.
type Client struct {
	client *http.Client
}

// New creates a client with the given request timeout.
func New(timeout time.Duration) *Client {
	return &Client{
		client: &http.Client{Timeout: timeout},
	}
}

// Get performs a GET request with optional headers.
func (c *Client) Get(ctx context.Context, url string, headers map[string]string) *Response {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return failure("failed to create request: " + err.Error())
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return c.do(req)
}

// PostJSON marshals body as JSON and performs a POST request.
func (c *Client) PostJSON(ctx context.Context, url string, body interface{}, headers map[string]string) *Response {
	data, err := json.Marshal(body)
	if err != nil {
		return failure("failed to marshal request: " + err.Error())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(data))
	if err != nil {
		return failure("failed to create request: " + err.Error())
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return c.do(req)
}

// PostMultipart performs a POST with a multipart form body: one file part
// plus plain fields.
func (c *Client) PostMultipart(ctx context.Context, url, fileField, fileName string, file []byte, fields map[string]string) *Response {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile(fileField, fileName)
	if err != nil {
		return failure("failed to create form file: " + err.Error())
	}
	if _, err := part.Write(file); err != nil {
		return failure("failed to write form file: " + err.Error())
	}
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return failure("failed to write form field: " + err.Error())
		}
	}
	if err := w.Close(); err != nil {
		return failure("failed to finalize form: " + err.Error())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return failure("failed to create request: " + err.Error())
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	return c.do(req)
}

func (c *Client) do(req *http.Request) *Response {
	resp, err := c.client.Do(req)
	if err != nil {
		return failure("failed to send request: " + err.Error())
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return failure("failed to read response body: " + err.Error())
	}

	out := &Response{Body: body, Status: resp.StatusCode}
	if resp.StatusCode != http.StatusOK {
		out.Message = string(body)
	}
	return out
}

func failure(msg string) *Response {
	return &Response{Status: http.StatusInternalServerError, Message: msg}
}
