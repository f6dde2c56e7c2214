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
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/valpere/perevod/internal/config"
	"github.com/valpere/perevod/internal/logging"
)

var version = "0.1.0"

var (
	envFiles []string

	v      = viper.New()
	cfg    *config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "perevod",
	Short: "Web front end for Azure Text Translation",
	Long: `perevod serves a small web page and a JSON endpoint that translate text
through Azure Text Translation, keeping the API key on the server.

Configuration is read from flags, the environment and an optional .env file:
  AZURE_TEXT_TRANSLATION_APIKEY    subscription key
  AZURE_TEXT_TRANSLATION_ENDPOINT  service endpoint
  AZURE_TEXT_TRANSLATION_REGION    resource region

Use "perevod serve" to start the HTTP server.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.LoadDotEnv(envFiles...); err != nil {
			return err
		}

		loaded, err := config.Load(v)
		if err != nil {
			return err
		}
		cfg = loaded

		level, err := logging.ParseLevel(cfg.Log.Level)
		if err != nil {
			return err
		}
		logger = logging.New(os.Stderr, level, cfg.Log.NoColor)
		slog.SetDefault(logger)
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringSliceVar(&envFiles, "env-file", []string{".env"}, "Files to load environment variables from (missing files are ignored)")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable coloured log output")

	v.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	v.BindPFlag("log.no_color", rootCmd.PersistentFlags().Lookup("no-color"))
}
