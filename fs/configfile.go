package fs

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fwojciec/cabinet"
	"gopkg.in/yaml.v3"
)

// yamlEntry mirrors the JSON form of cabinet.ConfigEntry.
type yamlEntry struct {
	Value       yamlValue  `yaml:"value"`
	Default     *yamlValue `yaml:"default"`
	Description string     `yaml:"description"`
}

type yamlValue struct {
	Type  cabinet.ValueKind `yaml:"type"`
	Value any               `yaml:"value"`
}

func toYAMLValue(v cabinet.Value) yamlValue {
	if v.Kind() != cabinet.ValueList {
		return yamlValue{Type: v.Kind(), Value: v.Payload()}
	}
	items, _ := v.AsList()
	out := make([]yamlValue, len(items))
	for i, item := range items {
		out[i] = toYAMLValue(item)
	}
	return yamlValue{Type: cabinet.ValueList, Value: out}
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// ExportConfig writes every entry of svc to path. The document maps each key
// to its value, default and description. Paths ending in .yaml or .yml are
// written as YAML, anything else as JSON.
func ExportConfig(ctx context.Context, svc cabinet.ConfigService, path string) error {
	entries, err := svc.List(ctx)
	if err != nil {
		return err
	}

	var data []byte
	if isYAML(path) {
		doc := make(map[string]yamlEntry, len(entries))
		for key, e := range entries {
			ye := yamlEntry{Value: toYAMLValue(e.Value), Description: e.Description}
			if e.Default != nil {
				def := toYAMLValue(*e.Default)
				ye.Default = &def
			}
			doc[key] = ye
		}
		data, err = yaml.Marshal(doc)
	} else {
		data, err = json.MarshalIndent(entries, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return cabinet.Errorf(cabinet.EINTERNAL, "encode config: %v", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return pathError("write", path, err)
	}
	return nil
}

// ImportConfig applies every entry in the document at path to svc with
// Create, in key order, and returns the number of entries applied.
func ImportConfig(ctx context.Context, svc cabinet.ConfigService, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, pathError("read", path, err)
	}

	if isYAML(path) {
		// YAML decodes into plain values which re-encode as the JSON form.
		var generic map[string]any
		if err := yaml.Unmarshal(data, &generic); err != nil {
			return 0, cabinet.Errorf(cabinet.EINVALID, "invalid config document %s: %v", path, err)
		}
		if data, err = json.Marshal(generic); err != nil {
			return 0, cabinet.Errorf(cabinet.EINVALID, "invalid config document %s: %v", path, err)
		}
	}

	var doc map[string]cabinet.ConfigEntry
	if err := json.Unmarshal(data, &doc); err != nil {
		return 0, cabinet.Errorf(cabinet.EINVALID, "invalid config document %s: %v", path, err)
	}

	keys := make([]string, 0, len(doc))
	for key := range doc {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for i, key := range keys {
		entry := doc[key]
		entry.Key = key
		if err := entry.Validate(); err != nil {
			return i, err
		}
		if _, err := svc.Create(ctx, entry); err != nil {
			return i, err
		}
	}
	return len(keys), nil
}
