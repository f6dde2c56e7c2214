package translator

import (
	"context"
	"fmt"
)

type AzureConfig struct {
	APIKey   string `mapstructure:"api_key" json:"api_key"`
	Endpoint string `mapstructure:"endpoint" json:"endpoint"`
	Region   string `mapstructure:"region" json:"region"`
}

type TranslateRequest struct {
	Text       string `json:"text"`
	SourceLang string `json:"source_lang"`
	TargetLang string `json:"target_lang"`
}

type Translation struct {
	Text string `json:"text"`
	To   string `json:"to"`
}

type DetectedLanguage struct {
	Language string  `json:"language"`
	Score    float64 `json:"score"`
}

// TextResult holds the candidate translations for one input string.
type TextResult struct {
	DetectedLanguage *DetectedLanguage `json:"detectedLanguage,omitempty"`
	Translations     []Translation     `json:"translations"`
}

// ServiceError is a request-level failure reported by the upstream service.
// Code and Message are empty when the error body could not be decoded.
type ServiceError struct {
	StatusCode int
	Code       string
	Message    string
	Body       string
}

func (e *ServiceError) Error() string {
	if e.Code == "" && e.Message == "" {
		return fmt.Sprintf("upstream returned status %d: %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("Error Code: %s, Message: %s", e.Code, e.Message)
}

// Structured reports whether the upstream supplied a code or message.
func (e *ServiceError) Structured() bool {
	return e.Code != "" || e.Message != ""
}

type TranslationService interface {
	Name() string
	Translate(ctx context.Context, req TranslateRequest) ([]TextResult, error)
	IsAvailable(ctx context.Context) error
}
