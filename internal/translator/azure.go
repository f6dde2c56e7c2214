package translator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

const (
	DefaultAzureEndpoint = "https://api.cognitive.microsofttranslator.com"

	azureAPIVersion = "3.0"
	// Custom-domain resources serve the translator under this prefix.
	azureCustomDomainPath = "/translator/text/v3.0"
)

type AzureService struct {
	apiKey   string
	region   string
	endpoint string
	client   *http.Client
}

// NewAzureService builds a client for the Azure Text Translation v3 API.
// It fails when the key is missing or the endpoint is not an absolute URL;
// credentials themselves are only checked by the first real call.
func NewAzureService(cfg AzureConfig) (*AzureService, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("azure translator API key is required")
	}

	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		endpoint = DefaultAzureEndpoint
	}

	base, err := resolveAzureEndpoint(endpoint)
	if err != nil {
		return nil, err
	}

	return &AzureService{
		apiKey:   cfg.APIKey,
		region:   cfg.Region,
		endpoint: base,
		client:   &http.Client{},
	}, nil
}

func resolveAzureEndpoint(endpoint string) (string, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid azure translator endpoint %q: %w", endpoint, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("invalid azure translator endpoint %q: absolute http(s) URL required", endpoint)
	}

	base := strings.TrimRight(u.String(), "/")
	if strings.HasSuffix(u.Hostname(), ".cognitiveservices.azure.com") && !strings.HasSuffix(base, azureCustomDomainPath) {
		base += azureCustomDomainPath
	}
	return base, nil
}

func (s *AzureService) Name() string {
	return "azure"
}

func (s *AzureService) Translate(ctx context.Context, req TranslateRequest) ([]TextResult, error) {
	body, err := json.Marshal([]azureInput{{Text: req.Text}})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.translateURL(req), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Ocp-Apim-Subscription-Key", s.apiKey)
	if s.region != "" {
		httpReq.Header.Set("Ocp-Apim-Subscription-Region", s.region)
	}
	httpReq.Header.Set("X-ClientTraceId", uuid.NewString())

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, parseAzureError(resp.StatusCode, respBody)
	}

	var results []TextResult
	if err := json.Unmarshal(respBody, &results); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return results, nil
}

func (s *AzureService) translateURL(req TranslateRequest) string {
	q := url.Values{}
	q.Set("api-version", azureAPIVersion)
	if req.SourceLang != "" && req.SourceLang != "auto" {
		q.Set("from", req.SourceLang)
	}
	q.Set("to", req.TargetLang)
	return s.endpoint + "/translate?" + q.Encode()
}

func (s *AzureService) IsAvailable(ctx context.Context) error {
	if s.apiKey == "" {
		return fmt.Errorf("azure translator API key not configured")
	}
	return nil
}

type azureInput struct {
	Text string `json:"Text"`
}

type azureErrorBody struct {
	Error *struct {
		Code    json.RawMessage `json:"code"`
		Message string          `json:"message"`
	} `json:"error"`
}

func parseAzureError(status int, body []byte) *ServiceError {
	svcErr := &ServiceError{StatusCode: status, Body: strings.TrimSpace(string(body))}

	var eb azureErrorBody
	if err := json.Unmarshal(body, &eb); err != nil || eb.Error == nil {
		return svcErr
	}

	svcErr.Code = rawCode(eb.Error.Code)
	svcErr.Message = eb.Error.Message
	return svcErr
}

// rawCode accepts both the numeric codes of the v3 API and string codes.
func rawCode(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}
