// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package archive

import (
	"context"
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"
)

// Export writes an archived run as YAML. Used by `archive show --yaml` so
// downstream tooling can consume runs without touching the database.
func (s *Store) Export(ctx context.Context, id string, w io.Writer) error {
	result, err := s.Show(ctx, id)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshaling run: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing export: %w", err)
	}
	return nil
}
