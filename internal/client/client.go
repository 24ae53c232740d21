// Package client is a typed HTTP client for the dashboard API, used by the
// welfarectl command to talk to a running server.
package client

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/yonghwan1106/e-ansimcare/internal/chatbot"
	"github.com/yonghwan1106/e-ansimcare/internal/domain"
	httpapi "github.com/yonghwan1106/e-ansimcare/internal/http"
)

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status  int
	Message string `json:"error"`
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: status %d", e.Status)
	}
	return fmt.Sprintf("api error: %s (status %d)", e.Message, e.Status)
}

type Options struct {
	Timeout    time.Duration
	RetryCount int
	Logger     *zap.Logger
}

type Client struct {
	http   *resty.Client
	logger *zap.Logger
}

func New(baseURL string, opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	c := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(opts.Timeout).
		SetRetryCount(opts.RetryCount).
		SetRetryWaitTime(500 * time.Millisecond).
		SetRetryMaxWaitTime(3 * time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	return &Client{http: c, logger: opts.Logger}
}

// do runs a request and decodes a 2xx body into result.
func (c *Client) do(ctx context.Context, method, path string, body, result any) error {
	apiErr := &APIError{}
	req := c.http.R().SetContext(ctx).SetError(apiErr)
	if body != nil {
		req.SetBody(body)
	}
	if result != nil {
		req.SetResult(result)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		c.logger.Error("api call failed", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	if resp.IsError() {
		apiErr.Status = resp.StatusCode()
		c.logger.Debug("api returned error",
			zap.String("path", path),
			zap.Int("status", apiErr.Status),
			zap.String("msg", apiErr.Message),
		)
		return apiErr
	}
	return nil
}

func (c *Client) Health(ctx context.Context) (map[string]string, error) {
	var out map[string]string
	if err := c.do(ctx, resty.MethodGet, "/health", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Household(ctx context.Context, id string) (domain.Household, error) {
	var out domain.Household
	err := c.do(ctx, resty.MethodGet, "/households/"+id, nil, &out)
	return out, err
}

// Recommendations asks for the household's best programs; limit <= 0 uses the server default.
func (c *Client) Recommendations(ctx context.Context, householdID string, limit int) ([]domain.Recommendation, error) {
	path := "/households/" + householdID + "/recommendations"
	if limit > 0 {
		path = fmt.Sprintf("%s?limit=%d", path, limit)
	}
	var out httpapi.RecommendationsResponse
	if err := c.do(ctx, resty.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Recommendations, nil
}

func (c *Client) Dashboard(ctx context.Context) (httpapi.DashboardResponse, error) {
	var out httpapi.DashboardResponse
	err := c.do(ctx, resty.MethodGet, "/dashboard", nil, &out)
	return out, err
}

func (c *Client) CreateChat(ctx context.Context) (httpapi.ChatSessionResponse, error) {
	var out httpapi.ChatSessionResponse
	err := c.do(ctx, resty.MethodPost, "/chat/sessions", nil, &out)
	return out, err
}

func (c *Client) ChatHistory(ctx context.Context, sessionID string) (httpapi.ChatSessionResponse, error) {
	var out httpapi.ChatSessionResponse
	err := c.do(ctx, resty.MethodGet, "/chat/sessions/"+sessionID, nil, &out)
	return out, err
}

func (c *Client) SendChat(ctx context.Context, sessionID, text string) (chatbot.Turn, error) {
	var out chatbot.Turn
	err := c.do(ctx, resty.MethodPost, "/chat/sessions/"+sessionID+"/messages",
		httpapi.ChatMessageRequest{Text: text}, &out)
	return out, err
}

func (c *Client) ChooseChat(ctx context.Context, sessionID string, option chatbot.NodeKey) (chatbot.Turn, error) {
	var out chatbot.Turn
	err := c.do(ctx, resty.MethodPost, "/chat/sessions/"+sessionID+"/messages",
		httpapi.ChatMessageRequest{Option: option}, &out)
	return out, err
}

func (c *Client) ResetChat(ctx context.Context, sessionID string) (httpapi.ChatSessionResponse, error) {
	var out httpapi.ChatSessionResponse
	err := c.do(ctx, resty.MethodPost, "/chat/sessions/"+sessionID+"/reset", nil, &out)
	return out, err
}

func (c *Client) ChatFeedback(ctx context.Context, sessionID, messageID string, f chatbot.Feedback) (chatbot.Message, error) {
	var out chatbot.Message
	err := c.do(ctx, resty.MethodPost, "/chat/sessions/"+sessionID+"/feedback",
		httpapi.ChatFeedbackRequest{MessageID: messageID, Feedback: string(f)}, &out)
	return out, err
}

func (c *Client) DeleteChat(ctx context.Context, sessionID string) error {
	return c.do(ctx, resty.MethodDelete, "/chat/sessions/"+sessionID, nil, nil)
}
