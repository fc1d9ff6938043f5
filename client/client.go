// Package client is a typed HTTP client for the platform-pulse API.
// Every endpoint is wrapped by one method; any non-2xx response is
// returned as an *APIError carrying the server's error message.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mbolis/platform-pulse/model"
)

type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for the API at baseURL, e.g. "http://localhost:3001/api".
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// NewDefault targets a local server on the default port.
func NewDefault() *Client {
	return New("http://localhost:3001/api")
}

type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: status %d: %s", e.Status, e.Message)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body *bytes.Buffer
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("client: marshal request: %w", err)
		}
		body = bytes.NewBuffer(payload)
	} else {
		body = &bytes.Buffer{}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("client: new request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("client: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode}
		var errBody model.ErrorResponse
		if json.NewDecoder(resp.Body).Decode(&errBody) == nil && errBody.Error != "" {
			apiErr.Message = errBody.Error
		} else {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		return apiErr
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("client: unmarshal response: %w", err)
		}
	}
	return nil
}

// Surveys lists the surveys visible to end users, newest first.
func (c *Client) Surveys(ctx context.Context) (surveys []model.Survey, err error) {
	err = c.do(ctx, http.MethodGet, "/surveys", nil, &surveys)
	return
}

// AllSurveys lists every survey regardless of flags, newest first.
func (c *Client) AllSurveys(ctx context.Context) (surveys []model.Survey, err error) {
	err = c.do(ctx, http.MethodGet, "/surveys/all", nil, &surveys)
	return
}

func (c *Client) Survey(ctx context.Context, id string) (survey model.Survey, err error) {
	err = c.do(ctx, http.MethodGet, "/surveys/"+url.PathEscape(id), nil, &survey)
	return
}

func (c *Client) CreateSurvey(ctx context.Context, input model.SurveyInput) (survey model.Survey, err error) {
	err = c.do(ctx, http.MethodPost, "/surveys", input, &survey)
	return
}

// UpdateSurvey replaces all mutable survey fields.
func (c *Client) UpdateSurvey(ctx context.Context, id string, input model.SurveyInput) (survey model.Survey, err error) {
	err = c.do(ctx, http.MethodPut, "/surveys/"+url.PathEscape(id), input, &survey)
	return
}

// DeleteSurvey removes a survey along with all its responses and selections.
func (c *Client) DeleteSurvey(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/surveys/"+url.PathEscape(id), nil, nil)
}

// SubmitResponse records one anonymous submission of platform selections.
func (c *Client) SubmitResponse(ctx context.Context, surveyID string, platforms []string) (result model.SubmitResponseResult, err error) {
	input := model.SubmitResponseInput{SurveyID: surveyID, Platforms: platforms}
	err = c.do(ctx, http.MethodPost, "/responses", input, &result)
	return
}

func (c *Client) Results(ctx context.Context, id string) (results model.SurveyResults, err error) {
	err = c.do(ctx, http.MethodGet, "/surveys/"+url.PathEscape(id)+"/results", nil, &results)
	return
}

func (c *Client) Stats(ctx context.Context, id string) (stats model.SurveyStats, err error) {
	err = c.do(ctx, http.MethodGet, "/surveys/"+url.PathEscape(id)+"/stats", nil, &stats)
	return
}

// ResetResponses deletes every response of a survey, keeping the survey itself.
func (c *Client) ResetResponses(ctx context.Context, id string) (result model.ResetResult, err error) {
	err = c.do(ctx, http.MethodDelete, "/surveys/"+url.PathEscape(id)+"/responses", nil, &result)
	return
}

func (c *Client) Health(ctx context.Context) (health model.Health, err error) {
	err = c.do(ctx, http.MethodGet, "/health", nil, &health)
	return
}
