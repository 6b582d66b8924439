package config

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// knownFieldNames collects the json tag names of FileConfig.
func knownFieldNames() map[string]bool {
	known := map[string]bool{"$schema": true}
	t := reflect.TypeOf(FileConfig{})
	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag.Get("json")
		if tag == "" || tag == "-" {
			continue
		}
		name := strings.Split(tag, ",")[0]
		known[name] = true
	}
	return known
}

func unknownFieldWarnings(keys []string) []string {
	known := knownFieldNames()
	var warnings []string
	for _, key := range keys {
		if !known[key] {
			warnings = append(warnings, fmt.Sprintf("unknown config field: %q", key))
		}
	}
	sort.Strings(warnings)
	return warnings
}

func detectUnknownJSONFields(data []byte) []string {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}
	keys := make([]string, 0, len(raw))
	for key := range raw {
		keys = append(keys, key)
	}
	return unknownFieldWarnings(keys)
}

func detectUnknownYAMLFields(data []byte) []string {
	var raw map[string]yaml.Node
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil
	}
	keys := make([]string, 0, len(raw))
	for key := range raw {
		keys = append(keys, key)
	}
	return unknownFieldWarnings(keys)
}
