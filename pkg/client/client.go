// Package client is a Go client for the inventory service HTTP API.
package client

import (
	"context"
	"fmt"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/erazemk/inventorypro/internal/model"
	"github.com/erazemk/inventorypro/internal/report"
)

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("inventorypro api error: code=%d, message=%s", e.StatusCode, e.Message)
}

type errorBody struct {
	Error string `json:"error"`
}

// Client talks to an inventory server. It is safe for concurrent use once
// the token is set.
type Client struct {
	http *resty.Client
}

// New builds a client for the server at baseURL.
func New(baseURL string) *Client {
	restyClient := resty.New()
	restyClient.
		SetBaseURL(strings.TrimSuffix(baseURL, "/")).
		SetHeader("Accept", "application/json").
		SetTimeout(15 * time.Second)
	return &Client{http: restyClient}
}

// SetToken sets the bearer token sent with every request.
func (c *Client) SetToken(token string) {
	c.http.SetAuthToken(token)
}

// LoginResult is a successful login.
type LoginResult struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

func (c *Client) request(ctx context.Context) *resty.Request {
	return c.http.R().SetContext(ctx).SetError(new(errorBody))
}

func check(resp *resty.Response, action string) error {
	if resp.StatusCode() < http.StatusBadRequest {
		return nil
	}
	message := strings.TrimSpace(resp.Status())
	if body, ok := resp.Error().(*errorBody); ok && body.Error != "" {
		message = body.Error
	}
	return fmt.Errorf("%s: %w", action, &APIError{StatusCode: resp.StatusCode(), Message: message})
}

// Login exchanges credentials for a token. The token is also set on c.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	result := new(LoginResult)
	resp, err := c.request(ctx).
		SetBody(map[string]string{"email": email, "password": password}).
		SetResult(result).
		Post("/api/auth/login")
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if err := check(resp, "login"); err != nil {
		return nil, err
	}
	c.SetToken(result.Token)
	return result, nil
}

// Register creates an account. It does not log in.
func (c *Client) Register(ctx context.Context, reg model.Registration) (*model.User, error) {
	user := new(model.User)
	resp, err := c.request(ctx).SetBody(reg).SetResult(user).Post("/api/auth/register")
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	if err := check(resp, "register"); err != nil {
		return nil, err
	}
	return user, nil
}

// Logout revokes the current token.
func (c *Client) Logout(ctx context.Context) error {
	resp, err := c.request(ctx).Post("/api/auth/logout")
	if err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return check(resp, "logout")
}

// Me returns the identity of the current token.
func (c *Client) Me(ctx context.Context) (*model.User, error) {
	user := new(model.User)
	resp, err := c.request(ctx).SetResult(user).Get("/api/auth/me")
	if err != nil {
		return nil, fmt.Errorf("fetching identity: %w", err)
	}
	if err := check(resp, "fetching identity"); err != nil {
		return nil, err
	}
	return user, nil
}

// Download is a file sent by the server.
type Download struct {
	FileName string
	Data     []byte
}

// Export downloads a CSV export of resource ("inventory", "warehouses" or
// "transfers"), narrowed by the given list filters.
func (c *Client) Export(ctx context.Context, resource string, filters map[string]string) (*Download, error) {
	resp, err := c.request(ctx).
		SetQueryParams(filters).
		Get("/api/" + resource + "/export")
	if err != nil {
		return nil, fmt.Errorf("exporting %s: %w", resource, err)
	}
	if err := check(resp, "exporting "+resource); err != nil {
		return nil, err
	}
	return download(resp, resource+"-export.csv"), nil
}

// ReportOptions narrows a report.
type ReportOptions struct {
	Warehouse string
	Category  string
}

func (o ReportOptions) params() map[string]string {
	params := map[string]string{}
	if o.Warehouse != "" {
		params["warehouse"] = o.Warehouse
	}
	if o.Category != "" {
		params["category"] = o.Category
	}
	return params
}

// Report fetches a generated report.
func (c *Client) Report(ctx context.Context, t report.Type, opts ReportOptions) (*report.Report, error) {
	result := new(report.Report)
	resp, err := c.request(ctx).
		SetPathParam("type", string(t)).
		SetQueryParams(opts.params()).
		SetResult(result).
		Get("/api/reports/{type}")
	if err != nil {
		return nil, fmt.Errorf("fetching report: %w", err)
	}
	if err := check(resp, "fetching report"); err != nil {
		return nil, err
	}
	return result, nil
}

// ReportCSV downloads a generated report as CSV.
func (c *Client) ReportCSV(ctx context.Context, t report.Type, opts ReportOptions) (*Download, error) {
	resp, err := c.request(ctx).
		SetPathParam("type", string(t)).
		SetQueryParams(opts.params()).
		SetQueryParam("format", "csv").
		Get("/api/reports/{type}")
	if err != nil {
		return nil, fmt.Errorf("downloading report: %w", err)
	}
	if err := check(resp, "downloading report"); err != nil {
		return nil, err
	}
	return download(resp, string(t)+"-report.csv"), nil
}

// download takes the file name from Content-Disposition, falling back to
// fallback.
func download(resp *resty.Response, fallback string) *Download {
	name := fallback
	if _, params, err := mime.ParseMediaType(resp.Header().Get("Content-Disposition")); err == nil && params["filename"] != "" {
		name = params["filename"]
	}
	return &Download{FileName: name, Data: resp.Body()}
}
