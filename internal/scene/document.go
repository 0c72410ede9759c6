package scene

import (
	"encoding/json"
	"fmt"
	"os"

	"starmesh/pkg/stargeom"
)

// SaveFile writes the scene document as indented JSON. Meshes are derived
// state and stay out of the file.
func (s *Scene) SaveFile(path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("save scene: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("save scene: %w", err)
	}
	return nil
}

// LoadFile reads a scene document and rebuilds every object's mesh from
// its stored parameters. The loaded scene has no selection.
func LoadFile(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load scene: %w", err)
	}
	s := New()
	if err := json.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("load scene: %w", err)
	}
	if s.Props == nil {
		s.Props = map[string]string{}
	}
	if len(s.Collections) == 0 {
		s.Collections = []string{DefaultCollection}
	}
	s.active = -1
	for _, o := range s.Objects {
		o.Params = o.Params.Normalized()
		o.ReplaceMesh(stargeom.Build(o.Params))
	}
	return s, nil
}
