// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv fills cfg from the process environment. Names are built from the
// envPrefix chain of [StructuredConfig], e.g. Storage.Registry.DSN is read
// from STORAGE_REGISTRY_DATABASE_URI. Unset variables leave zero values for
// the merge to skip.
func parseEnv(cfg any) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}
	return nil
}
