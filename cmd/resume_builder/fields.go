package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/jonathan/resume-builder/internal/store"
	"github.com/jonathan/resume-builder/internal/types"
)

// parseAssignments turns key=value arguments into a map.
func parseAssignments(args []string) (map[string]string, error) {
	fields := make(map[string]string, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("expected key=value, got %q", arg)
		}
		fields[key] = value
	}
	return fields, nil
}

// setFields writes string assignments into content, or into the entry itemID of a
// list-valued content when itemID is set. Field names are the JSON names of the
// content types. "current" is parsed as a boolean and "skills" as a comma-separated list.
func setFields(content types.Content, itemID string, fields map[string]string) error {
	data, err := json.Marshal(content)
	if err != nil {
		return err
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}

	target := doc
	if itemID != "" {
		target, err = findEntry(doc, itemID)
		if err != nil {
			return err
		}
	}

	for key, raw := range fields {
		if key == "id" {
			return fmt.Errorf("the id field cannot be changed")
		}
		value, err := fieldValue(key, raw)
		if err != nil {
			return err
		}
		target[key] = value
	}

	data, err = json.Marshal(doc)
	if err != nil {
		return err
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(content); err != nil {
		return fmt.Errorf("invalid field for %s content: %w", content.Type(), err)
	}
	return nil
}

func findEntry(doc map[string]any, itemID string) (map[string]any, error) {
	for _, listKey := range []string{"items", "categories"} {
		list, ok := doc[listKey].([]any)
		if !ok {
			continue
		}
		for _, entry := range list {
			if m, ok := entry.(map[string]any); ok && m["id"] == itemID {
				return m, nil
			}
		}
		return nil, fmt.Errorf("%w: %s", store.ErrItemNotFound, itemID)
	}
	return nil, store.ErrNotListSection
}

func fieldValue(key, raw string) (any, error) {
	switch key {
	case "current":
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("current must be true or false: %w", err)
		}
		return b, nil
	case "skills":
		skills := []any{}
		for _, s := range strings.Split(raw, ",") {
			if s = strings.TrimSpace(s); s != "" {
				skills = append(skills, s)
			}
		}
		return skills, nil
	default:
		return raw, nil
	}
}
