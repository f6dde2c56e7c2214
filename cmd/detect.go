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
	"strings"

	"github.com/spf13/cobra"

	"github.com/valpere/perevod/internal/detector"
)

var detectMinConfidence float64

var detectCmd = &cobra.Command{
	Use:   "detect <text>",
	Short: "Print the detected language of a text",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		det := detector.New(detectMinConfidence)

		code, conf, ok := det.DetectISO(strings.Join(args, " "))
		if !ok {
			return fmt.Errorf("could not detect language")
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%.2f\n", code, conf)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(detectCmd)

	detectCmd.Flags().Float64Var(&detectMinConfidence, "min-confidence", minDetectConfidence, "Minimum confidence to accept a detection")
}
