package shot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads an ordered shot list from path. Files ending in .yaml or .yml
// are parsed as YAML; anything else as JSON. Missing fields default to
// empty values, and numeric ids are accepted.
func Load(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read shot list: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return ParseJSON(data)
	}
}

// ParseJSON decodes a JSON array of shot objects.
func ParseJSON(data []byte) ([]Record, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	var raw []map[string]any
	if err := decoder.Decode(&raw); err != nil {
		return nil, fmt.Errorf("parse shot list json: %w", err)
	}
	return fromMaps(raw)
}

// ParseYAML decodes a YAML sequence of shot mappings.
func ParseYAML(data []byte) ([]Record, error) {
	var raw []map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse shot list yaml: %w", err)
	}
	return fromMaps(raw)
}

func fromMaps(raw []map[string]any) ([]Record, error) {
	taken := make(map[string]struct{}, len(raw))
	for _, entry := range raw {
		if id := scalarString(entry["id"]); id != "" {
			taken[id] = struct{}{}
		}
	}

	records := make([]Record, 0, len(raw))
	for i, entry := range raw {
		rec := Record{
			ID:          scalarString(entry["id"]),
			Description: scalarString(entry["description"]),
		}
		var err error
		if rec.SceneNumber, err = optionalInt(entry["sceneNumber"]); err != nil {
			return nil, fmt.Errorf("shot %d: sceneNumber: %w", i+1, err)
		}
		if rec.ShotNumber, err = optionalInt(entry["shotNumber"]); err != nil {
			return nil, fmt.Errorf("shot %d: shotNumber: %w", i+1, err)
		}
		if rec.ID == "" {
			rec.ID = positionalID(i+1, taken)
		}
		records = append(records, rec)
	}
	return records, nil
}

func scalarString(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	case json.Number:
		return value.String()
	case int:
		return strconv.Itoa(value)
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	default:
		return fmt.Sprint(value)
	}
}

// optionalInt maps null, "", "none", and "unknown" to nil.
func optionalInt(v any) (*int, error) {
	switch value := v.(type) {
	case nil:
		return nil, nil
	case int:
		return &value, nil
	case json.Number:
		n, err := strconv.Atoi(value.String())
		if err != nil {
			return nil, fmt.Errorf("not an integer: %s", value)
		}
		return &n, nil
	case float64:
		if value != math.Trunc(value) {
			return nil, fmt.Errorf("not an integer: %v", value)
		}
		n := int(value)
		return &n, nil
	case string:
		trimmed := strings.ToLower(strings.TrimSpace(value))
		if trimmed == "" || trimmed == "none" || trimmed == "unknown" {
			return nil, nil
		}
		n, err := strconv.Atoi(trimmed)
		if err != nil {
			return nil, fmt.Errorf("not an integer: %q", value)
		}
		return &n, nil
	default:
		return nil, fmt.Errorf("unsupported value %v", value)
	}
}

// positionalID names a shot without an id after its 1-based position, adding
// a suffix when an explicit id already uses that name.
func positionalID(pos int, taken map[string]struct{}) string {
	id := strconv.Itoa(pos)
	for n := 2; ; n++ {
		if _, ok := taken[id]; !ok {
			taken[id] = struct{}{}
			return id
		}
		id = strconv.Itoa(pos) + "-" + strconv.Itoa(n)
	}
}
