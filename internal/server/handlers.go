package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"github.com/valpere/perevod/internal/translator"
)

const (
	defaultFromLang = "en"
	defaultToLang   = "es"

	errNotInitialized = "Translation service not initialized"
	errNoText         = "No text provided"
	errFailed         = "Translation failed"
)

// pageLanguages are offered in the UI selectors; the API accepts any code the
// upstream supports.
var pageLanguages = []string{
	"ar", "de", "en", "es", "fr", "it", "ja", "ko", "nl", "pl", "pt", "ru", "tr", "uk", "zh-Hans",
}

type translateRequest struct {
	Text     string `json:"text"`
	FromLang string `json:"fromLang"`
	ToLang   string `json:"toLang"`
}

type pageLanguage struct {
	Code string
	Name string
}

func (s *Server) handleIndex(c *gin.Context) {
	langs := make([]pageLanguage, 0, len(pageLanguages))
	for _, code := range pageLanguages {
		name := code
		if tag, err := language.Parse(code); err == nil {
			if n := display.Self.Name(tag); n != "" {
				name = n
			}
		}
		langs = append(langs, pageLanguage{Code: code, Name: name})
	}

	c.HTML(http.StatusOK, "index.html", gin.H{
		"Title":       "Text Translator",
		"Languages":   langs,
		"DefaultFrom": defaultFromLang,
		"DefaultTo":   defaultToLang,
	})
}

func (s *Server) handleTranslate(c *gin.Context) {
	if s.svc == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": errNotInitialized})
		return
	}

	// A missing or malformed body is treated like an empty object.
	var req translateRequest
	_ = json.NewDecoder(c.Request.Body).Decode(&req)

	if req.FromLang == "" {
		req.FromLang = defaultFromLang
	}
	if req.ToLang == "" {
		req.ToLang = defaultToLang
	}

	if req.Text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": errNoText})
		return
	}

	results, err := s.svc.Translate(c.Request.Context(), translator.TranslateRequest{
		Text:       req.Text,
		SourceLang: req.FromLang,
		TargetLang: req.ToLang,
	})
	if err != nil {
		s.log.ErrorContext(c.Request.Context(), "translation failed",
			"service", s.svc.Name(),
			"from", req.FromLang,
			"to", req.ToLang,
			"request_id", c.GetString(requestIDKey),
			"error", err,
		)
	}

	status, body := translateOutcome(results, err)
	c.JSON(status, body)
}

// translateOutcome maps the upstream result to the HTTP status and body.
func translateOutcome(results []translator.TextResult, err error) (int, gin.H) {
	if err != nil {
		var svcErr *translator.ServiceError
		if errors.As(err, &svcErr) && svcErr.Structured() {
			return http.StatusInternalServerError, gin.H{
				"error": "Error Code: " + svcErr.Code + ", Message: " + svcErr.Message,
			}
		}
		return http.StatusInternalServerError, gin.H{"error": err.Error()}
	}

	if len(results) == 0 || len(results[0].Translations) == 0 {
		return http.StatusInternalServerError, gin.H{"error": errFailed}
	}

	return http.StatusOK, gin.H{"translatedText": results[0].Translations[0].Text}
}
