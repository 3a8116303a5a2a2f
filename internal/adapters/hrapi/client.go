// Package hrapi talks to the HR backend that owns employee records and leave
// requests. The panel only reads employees and forwards leave submissions.
package hrapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/csg33k/leave-panel/internal/domain"
)

// DefaultLeavePath is the leave-creation endpoint; {id} is the employee id.
const DefaultLeavePath = "/add_leave/{id}"

// maxBody caps how much of a backend response is read.
const maxBody = 1 << 20

// HTTPCommand executes a request. *http.Client satisfies it.
type HTTPCommand interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client is the HR backend client.
type Client struct {
	base      *url.URL
	leavePath string
	http      HTTPCommand
}

type Option func(*Client)

// WithHTTPClient replaces the default *http.Client.
func WithHTTPClient(c HTTPCommand) Option {
	return func(cl *Client) {
		cl.http = c
	}
}

// WithLeavePath overrides DefaultLeavePath.
func WithLeavePath(p string) Option {
	return func(cl *Client) {
		if p != "" {
			cl.leavePath = p
		}
	}
}

// WithTimeout sets the timeout of the default *http.Client. It has no effect
// when combined with WithHTTPClient.
func WithTimeout(d time.Duration) Option {
	return func(cl *Client) {
		if hc, ok := cl.http.(*http.Client); ok && hc == defaultHTTPClient {
			cl.http = &http.Client{Timeout: d}
		}
	}
}

var defaultHTTPClient = &http.Client{Timeout: 10 * time.Second}

// New returns a client for the backend rooted at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse backend url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("backend url %q must be absolute", baseURL)
	}
	c := &Client{
		base:      u,
		leavePath: DefaultLeavePath,
		http:      defaultHTTPClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	if !strings.Contains(c.leavePath, "{id}") {
		return nil, fmt.Errorf("leave path %q has no {id} placeholder", c.leavePath)
	}
	return c, nil
}

// EmployeeLink returns the absolute URL of an employee's JSON resource.
func (c *Client) EmployeeLink(id int64) string {
	return c.base.JoinPath("employees", strconv.FormatInt(id, 10)).String()
}

// LoadEmployee fetches and decodes the record behind link.
func (c *Client) LoadEmployee(ctx context.Context, link string) (*domain.EmployeeRecord, error) {
	const op = "load employee"
	target, err := c.base.Parse(link)
	if err != nil {
		return nil, &domain.TransportError{Op: op, Err: err}
	}
	req, err := c.newRequest(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, &domain.TransportError{Op: op, Err: err}
	}
	// the employee resource answers 200 only; other 2xx codes are not a record
	body, err := c.do(req, op, http.StatusOK)
	if err != nil {
		return nil, err
	}
	if !isJSONObject(body) {
		return nil, &domain.TransportError{Op: op, Err: errors.New("response is not a JSON object")}
	}
	var rec domain.EmployeeRecord
	if err := json.Unmarshal(body, &rec); err != nil {
		return nil, &domain.TransportError{Op: op, Err: fmt.Errorf("decode employee: %w", err)}
	}
	if rec.ID == 0 {
		return nil, &domain.TransportError{Op: op, Err: errors.New("decode employee: missing id")}
	}
	return &rec, nil
}

// ListEmployees fetches the employee list used to build the page.
func (c *Client) ListEmployees(ctx context.Context) ([]domain.EmployeeSummary, error) {
	const op = "list employees"
	req, err := c.newRequest(ctx, http.MethodGet, c.base.JoinPath("employees").String(), nil)
	if err != nil {
		return nil, &domain.TransportError{Op: op, Err: err}
	}
	body, err := c.do(req, op)
	if err != nil {
		return nil, err
	}
	var list []domain.EmployeeSummary
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, &domain.TransportError{Op: op, Err: fmt.Errorf("decode employees: %w", err)}
	}
	return list, nil
}

// SubmitLeave posts the draft as a url-encoded form to the leave endpoint.
func (c *Client) SubmitLeave(ctx context.Context, employeeID int64, d domain.LeaveRequestDraft) (string, error) {
	const op = "submit leave"
	target, err := c.leaveURL(employeeID)
	if err != nil {
		return "", &domain.TransportError{Op: op, Err: err}
	}
	form := url.Values{}
	form.Set(domain.FieldLeaveDate, d.Date)
	form.Set(domain.FieldLeaveReason, d.Reason)

	req, err := c.newRequest(ctx, http.MethodPost, target.String(), strings.NewReader(form.Encode()))
	if err != nil {
		return "", &domain.TransportError{Op: op, Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	body, err := c.do(req, op)
	if err != nil {
		return "", err
	}
	ack := acknowledgement(body)
	slog.DebugContext(ctx, "leave submitted", "employee_id", employeeID, "ack", ack)
	return ack, nil
}

// leaveURL resolves the leave path for employeeID. A rooted or relative path
// lives under the base URL, path prefix included; an absolute URL is used as is.
func (c *Client) leaveURL(employeeID int64) (*url.URL, error) {
	u, err := url.Parse(strings.Replace(c.leavePath, "{id}", strconv.FormatInt(employeeID, 10), 1))
	if err != nil {
		return nil, err
	}
	if u.IsAbs() {
		return u, nil
	}
	target := c.base.JoinPath(u.Path)
	target.RawQuery = u.RawQuery
	return target, nil
}

func (c *Client) newRequest(ctx context.Context, method, target string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID(ctx))
	return req, nil
}

// do executes req and returns the body of a successful response. Any 2xx
// status succeeds unless accepted narrows it.
func (c *Client) do(req *http.Request, op string, accepted ...int) ([]byte, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &domain.TransportError{Op: op, Err: err}
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			slog.Warn("error closing backend response", "op", op, "err", cerr)
		}
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, &domain.TransportError{Op: op, Err: fmt.Errorf("read body: %w", err)}
	}
	if !statusAccepted(resp.StatusCode, accepted) {
		return nil, &domain.ServerError{Op: op, Status: resp.StatusCode, Detail: errorDetail(body)}
	}
	return body, nil
}

func statusAccepted(status int, accepted []int) bool {
	if len(accepted) == 0 {
		return status >= 200 && status <= 299
	}
	return slices.Contains(accepted, status)
}

// requestID reuses the inbound request id so backend and panel logs line up.
func requestID(ctx context.Context) string {
	if id := middleware.GetReqID(ctx); id != "" {
		return id
	}
	return uuid.NewString()
}

func isJSONObject(b []byte) bool {
	b = bytes.TrimSpace(b)
	return len(b) > 0 && b[0] == '{'
}

// acknowledgement prefers the backend's {"message": ...} over the raw body.
func acknowledgement(body []byte) string {
	var ack struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &ack) == nil && ack.Message != "" {
		return ack.Message
	}
	return strings.TrimSpace(string(body))
}

// errorDetail extracts {"error": ...} from a failed response, if present.
func errorDetail(body []byte) string {
	var e struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(body, &e) == nil {
		return e.Error
	}
	return ""
}
