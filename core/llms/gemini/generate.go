package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// fallbackResponse is returned whenever generation fails for any reason.
// Callers sit on the conversational hot path and have no use for an error.
const fallbackResponse = "I could not come up with a response right now."

type request struct {
	Contents []content `json:"contents"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text,omitempty"`
}

type response struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

type GenerateOption func(*generateOptions)

type generateOptions struct {
	baseURL    string
	httpClient *http.Client
}

// WithBaseURL overrides the API endpoint.
func WithBaseURL(baseURL string) GenerateOption {
	return func(o *generateOptions) { o.baseURL = baseURL }
}

// WithHTTPClient overrides the HTTP client used for the request.
func WithHTTPClient(client *http.Client) GenerateOption {
	return func(o *generateOptions) { o.httpClient = client }
}

// Generate performs one stateless text completion against the generateContent
// endpoint. It never fails: any transport, status or decode problem is logged
// and the fallback response is returned instead.
func Generate(ctx context.Context, apiKey string, model string, prompt string, opts ...GenerateOption) string {
	ctx, span := tracer.Start(ctx, "generate text response")
	defer span.End()

	options := generateOptions{
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)},
	}
	for _, opt := range opts {
		opt(&options)
	}

	body, err := json.Marshal(request{
		Contents: []content{{Role: "user", Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		logger.Warn("failed to marshal generation request", "error", err)
		return fallbackResponse
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", options.baseURL, model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		logger.Warn("failed to build generation request", "error", err)
		return fallbackResponse
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", apiKey)

	resp, err := options.httpClient.Do(req)
	if err != nil {
		logger.Warn("generation request failed", "error", err)
		return fallbackResponse
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Warn("generation returned non-OK status", "status", resp.Status)
		return fallbackResponse
	}

	var decoded response
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		logger.Warn("failed to decode generation response", "error", err)
		return fallbackResponse
	}

	var text strings.Builder
	for _, candidate := range decoded.Candidates {
		for _, part := range candidate.Content.Parts {
			text.WriteString(part.Text)
		}
		break
	}

	if text.Len() == 0 {
		logger.Warn("generation response carried no text")
		return fallbackResponse
	}
	return text.String()
}
