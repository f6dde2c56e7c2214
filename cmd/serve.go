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
	"context"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/valpere/perevod/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Start the HTTP server with the translation page on / and the JSON
endpoint on /translate.

If the translation client cannot be built (for example the API key is
missing) the server still starts; /translate then answers with an error.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		gin.SetMode(gin.ReleaseMode)

		svc := buildServiceOrDegrade(logger, cfg.Azure)

		srv, err := server.New(svc, logger, server.Options{
			AllowedOrigins: cfg.Server.AllowedOrigins,
		})
		if err != nil {
			return err
		}

		return srv.Run(ctx, cfg.Server.Addr)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "0.0.0.0:5000", "Address to listen on")
	serveCmd.Flags().StringSlice("allowed-origins", []string{"*"}, "CORS allowed origins")

	v.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))
	v.BindPFlag("server.allowed_origins", serveCmd.Flags().Lookup("allowed-origins"))
}
