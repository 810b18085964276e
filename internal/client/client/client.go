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
)

// Client talks to one watchlist server.
type Client struct {
	baseURL string
	scheme  string
	token   string
	http    *http.Client
}

// New returns a client for baseURL. A nil hc uses http.DefaultClient.
func New(baseURL, scheme string, hc *http.Client) *Client {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		scheme:  scheme,
		http:    hc,
	}
}

// SetToken sets the session token sent with list requests.
func (c *Client) SetToken(token string) {
	c.token = token
}

type credentials struct {
	UserName  string `json:"userName"`
	Password  string `json:"password"`
	Password2 string `json:"password2,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
	Token   string `json:"token,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Register creates an account and returns the server's confirmation.
func (c *Client) Register(ctx context.Context, userName, password, confirm string) (string, error) {
	var out messageResponse
	err := c.do(ctx, http.MethodPost, "/api/user/register", credentials{userName, password, confirm}, false, &out)
	if err != nil {
		return "", err
	}
	return out.Message, nil
}

// Login exchanges credentials for a session token and keeps it on c.
func (c *Client) Login(ctx context.Context, userName, password string) (string, error) {
	var out messageResponse
	if err := c.do(ctx, http.MethodPost, "/api/user/login", credentials{UserName: userName, Password: password}, false, &out); err != nil {
		return "", err
	}
	if out.Token == "" {
		return "", fmt.Errorf("login response has no token")
	}
	c.token = out.Token
	return out.Token, nil
}

// GetList returns the named list ("favourites" or "history").
func (c *Client) GetList(ctx context.Context, list string) ([]string, error) {
	var items []string
	err := c.do(ctx, http.MethodGet, "/api/user/"+url.PathEscape(list), nil, true, &items)
	return items, err
}

// AddItem puts itemID on the list and returns the updated list.
func (c *Client) AddItem(ctx context.Context, list, itemID string) ([]string, error) {
	var items []string
	err := c.do(ctx, http.MethodPut, itemPath(list, itemID), nil, true, &items)
	return items, err
}

// RemoveItem takes itemID off the list and returns the updated list.
func (c *Client) RemoveItem(ctx context.Context, list, itemID string) ([]string, error) {
	var items []string
	err := c.do(ctx, http.MethodDelete, itemPath(list, itemID), nil, true, &items)
	return items, err
}

func itemPath(list, itemID string) string {
	return "/api/user/" + url.PathEscape(list) + "/" + url.PathEscape(itemID)
}

func (c *Client) do(ctx context.Context, method, path string, body any, authorized bool, out any) error {
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
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authorized {
		req.Header.Set("Authorization", c.scheme+" "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var msg messageResponse
		_ = json.Unmarshal(data, &msg)
		text := msg.Message
		if text == "" {
			text = msg.Error
		}
		if text == "" {
			text = http.StatusText(resp.StatusCode)
		}
		return &APIError{StatusCode: resp.StatusCode, Message: text}
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
