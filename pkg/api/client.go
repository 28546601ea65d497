package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"geotodo/pkg/task"
)

type todosResponse struct {
	Success bool        `json:"success"`
	Data    []task.Task `json:"data"`
	Count   int         `json:"count"`
}

type uploadResponse struct {
	Success bool `json:"success"`
	Data    struct {
		URL         string `json:"url"`
		Key         string `json:"key"`
		Size        int64  `json:"size"`
		ContentType string `json:"contentType"`
	} `json:"data"`
}

// Client is the token-bound half of the remote contract. One is constructed
// per authenticated session and holds no other state.
type Client struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
}

func NewClient(baseURL, token string) *Client {
	return &Client{BaseURL: baseURL, Token: token, HTTP: http.DefaultClient}
}

// GetAll fetches the session's full task list. The server filters by owner;
// the result is trusted wholesale.
func (c *Client) GetAll(ctx context.Context) ([]task.Task, error) {
	resp, err := c.do(ctx, http.MethodGet, "/todos", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var decoded todosResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("todos response decode failed: %w", err)
	}
	return decoded.Data, nil
}

func (c *Client) Create(ctx context.Context, t task.Task) error {
	body, err := json.Marshal(t)
	if err != nil {
		return err
	}
	resp, err := c.do(ctx, http.MethodPost, "/todos", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	// The created representation in the body is discarded; the caller
	// refetches the list instead.
	return checkStatus(resp)
}

func (c *Client) Update(ctx context.Context, t task.Task) error {
	body, err := json.Marshal(t)
	if err != nil {
		return err
	}
	resp, err := c.do(ctx, http.MethodPut, "/todos/"+t.ID, bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return checkStatus(resp)
}

func (c *Client) Delete(ctx context.Context, taskID string) error {
	resp, err := c.do(ctx, http.MethodDelete, "/todos/"+taskID, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return checkStatus(resp)
}

// UploadImage exchanges a locally-captured image for a durable URL.
func (c *Client) UploadImage(ctx context.Context, name, contentType string, data []byte) (string, error) {
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	part, err := form.CreateFormFile("image", name)
	if err != nil {
		return "", err
	}
	if _, err := part.Write(data); err != nil {
		return "", err
	}
	if err := form.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/images", &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.Token)
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("image upload failed: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return "", err
	}

	var decoded uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("upload response decode failed: %w", err)
	}
	if decoded.Data.URL == "" {
		return "", fmt.Errorf("upload response carried no url")
	}
	return decoded.Data.URL, nil
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.Token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	return resp, nil
}

func checkStatus(resp *http.Response) error {
	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return task.ErrUnauthorized
	case resp.StatusCode >= 400:
		return fmt.Errorf("request failed: status %d", resp.StatusCode)
	}
	return nil
}
