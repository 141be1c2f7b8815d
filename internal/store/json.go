// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"encoding/json"
	"fmt"
)

// jsonb marshals v for a JSONB column. Nil slices become empty JSON
// arrays so the column never holds SQL NULL.
func jsonb(v any) ([]byte, error) {
	if s, ok := v.([]string); ok && s == nil {
		v = []string{}
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode jsonb: %w", err)
	}
	return data, nil
}

// scanJSONB decodes a JSONB column into dest. Empty or NULL input is
// left as dest's zero value.
func scanJSONB(raw []byte, dest any) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("decode jsonb: %w", err)
	}
	return nil
}
