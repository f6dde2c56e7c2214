/*
Copyright © 2025 Valentyn Solomko <valentyn.solomko@gmail.com>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"github.com/valpere/perevod/internal/detector"
	"github.com/valpere/perevod/internal/translator"
)

const minDetectConfidence = 0.5

var (
	inputFile  string
	outputFile string
	sourceLang string
	targetLang string
)

var translateCmd = &cobra.Command{
	Use:   "translate [text]",
	Short: "Translate text once from the command line",
	Long: `Translate a single text with the configured Azure client and print the
result, or write it to --output.

The text is taken from the arguments, or from --input when no arguments are
given. With --source auto the source language is detected locally first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if inputFile != "" && inputFile == outputFile {
			return fmt.Errorf("input file and output file cannot be the same")
		}

		text, err := readText(args)
		if err != nil {
			return err
		}
		if strings.TrimSpace(text) == "" {
			return fmt.Errorf("no text provided")
		}

		if sourceLang == "auto" {
			det := detector.New(minDetectConfidence)
			if detected, conf, ok := det.DetectISO(text); ok {
				sourceLang = detected
				logger.Info("detected source language", "lang", sourceLang, "confidence", conf)
			}
		}

		if err := validateLang("source", sourceLang, true); err != nil {
			return err
		}
		if err := validateLang("target", targetLang, false); err != nil {
			return err
		}

		svc, err := buildService(cfg.Azure)
		if err != nil {
			return fmt.Errorf("translation service not initialized: %w", err)
		}

		results, err := svc.Translate(cmd.Context(), translator.TranslateRequest{
			Text:       text,
			SourceLang: sourceLang,
			TargetLang: targetLang,
		})
		if err != nil {
			return err
		}
		if len(results) == 0 || len(results[0].Translations) == 0 {
			return fmt.Errorf("translation failed: empty response")
		}

		translated := results[0].Translations[0].Text

		if outputFile == "" {
			fmt.Fprintln(cmd.OutOrStdout(), translated)
			return nil
		}

		if err := os.MkdirAll(filepath.Dir(outputFile), 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		if err := os.WriteFile(outputFile, []byte(translated), 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Successfully translated %s to %s\n", sourceLang, targetLang)
		return nil
	},
}

func readText(args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	if inputFile == "" {
		return "", fmt.Errorf("either text arguments or --input is required")
	}
	b, err := os.ReadFile(inputFile)
	if err != nil {
		return "", fmt.Errorf("failed to read input file: %w", err)
	}
	return string(b), nil
}

// validateLang rejects codes that are not well-formed BCP 47 tags. Whether the
// upstream supports the language is left to the upstream.
func validateLang(kind, code string, allowAuto bool) error {
	if allowAuto && code == "auto" {
		return nil
	}
	if code == "" {
		return fmt.Errorf("%s language is required", kind)
	}
	if _, err := language.Parse(code); err != nil {
		return fmt.Errorf("invalid %s language %q: %w", kind, code, err)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(translateCmd)

	translateCmd.Flags().StringVarP(&inputFile, "input", "i", "", "Input file to translate")
	translateCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file for translation (default stdout)")
	translateCmd.Flags().StringVarP(&sourceLang, "source", "s", "en", "Source language code, or auto")
	translateCmd.Flags().StringVarP(&targetLang, "target", "t", "es", "Target language code")
}
