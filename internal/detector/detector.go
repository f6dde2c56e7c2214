// Package detector guesses the language of a text so the CLI can fill in a
// source language before calling the translator.
package detector

import (
	"strings"

	lingua "github.com/pemistahl/lingua-go"
)

// Detector wraps a lingua detector. Building one is expensive; reuse it.
type Detector struct {
	detector      lingua.LanguageDetector
	minConfidence float64
}

func New(minConfidence float64) *Detector {
	detector := lingua.NewLanguageDetectorBuilder().
		FromAllLanguages().
		Build()

	return &Detector{detector: detector, minConfidence: minConfidence}
}

// DetectISO returns the ISO 639-1 code of the most likely language of text.
// ok is false when the text is blank or no language reaches minConfidence.
func (d *Detector) DetectISO(text string) (code string, confidence float64, ok bool) {
	if strings.TrimSpace(text) == "" {
		return "", 0, false
	}

	lang, found := d.detector.DetectLanguageOf(text)
	if !found {
		return "", 0, false
	}

	confidence = d.detector.ComputeLanguageConfidence(text, lang)
	if confidence < d.minConfidence {
		return "", confidence, false
	}

	return strings.ToLower(lang.IsoCode639_1().String()), confidence, true
}
