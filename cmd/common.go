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
	"log/slog"

	"github.com/valpere/perevod/internal/translator"
)

// buildService constructs the Azure client from the loaded configuration.
// A nil interface (never a typed nil) is returned on failure.
func buildService(azure translator.AzureConfig) (translator.TranslationService, error) {
	svc, err := translator.NewAzureService(azure)
	if err != nil {
		return nil, err
	}
	return svc, nil
}

// buildServiceOrDegrade logs a construction failure and returns nil so the
// caller can keep running without a translator.
func buildServiceOrDegrade(log *slog.Logger, azure translator.AzureConfig) translator.TranslationService {
	svc, err := buildService(azure)
	if err != nil {
		log.Error("error initializing translation client", "error", err)
		return nil
	}
	log.Info("translation client ready", "service", svc.Name(), "region", azure.Region)
	return svc
}
