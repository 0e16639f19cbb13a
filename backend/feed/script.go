package feed

import (
	"nebula/backend/types"
	"os"

	"golang.org/x/xerrors"
	"gopkg.in/yaml.v3"
)

// Script is a recorded edit feed over string items, replayed in order.
//
//	group_by: first-letter
//	batches:
//	  - mode: initial
//	    items: [Banana, Apple, Strawberry]
//	  - mode: list
//	    added: [Cherry]
type Script struct {
	GroupBy string        `yaml:"group_by"`
	Batches []ScriptBatch `yaml:"batches"`
}

// ScriptBatch is one delta of a script.
type ScriptBatch struct {
	Mode    string   `yaml:"mode"`
	Items   []string `yaml:"items"`
	Added   []string `yaml:"added"`
	Removed []string `yaml:"removed"`
	Changed []string `yaml:"changed"`
	Moved   []string `yaml:"moved"`
}

// LoadScript reads a YAML script.
func LoadScript(path string) (Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Script{}, xerrors.Errorf("failed to read script: %w", err)
	}
	return ParseScript(data)
}

// ParseScript decodes a YAML script.
func ParseScript(data []byte) (Script, error) {
	var script Script
	if err := yaml.Unmarshal(data, &script); err != nil {
		return Script{}, xerrors.Errorf("failed to parse script: %w", err)
	}
	if _, err := GroupByName(script.GroupBy); err != nil {
		return Script{}, err
	}
	return script, nil
}

// Deltas converts every batch to a delta.
func (s Script) Deltas() ([]types.Delta[string], error) {
	deltas := make([]types.Delta[string], 0, len(s.Batches))

	for i, b := range s.Batches {
		mode, err := types.ParseMode(b.Mode)
		if err != nil {
			return nil, xerrors.Errorf("batch %d: %w", i, err)
		}

		switch mode {
		case types.InitialMode:
			deltas = append(deltas, types.NewInitialDelta(b.Items))
		case types.ListMode:
			deltas = append(deltas, types.NewListDelta(b.Added, b.Removed))
		case types.ElementMode:
			deltas = append(deltas, types.NewElementDelta(b.Added, b.Removed, b.Changed, b.Moved))
		}
	}

	return deltas, nil
}
