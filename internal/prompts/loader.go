// Package prompts holds the embedded text-generation prompts and fills their {{.Name}}
// placeholders.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
)

//go:embed *.json
var promptFiles embed.FS

var (
	filesMu sync.Mutex
	files   = make(map[string]map[string]string)
)

// Get returns the prompt stored under key in filename (e.g. "generation.json").
func Get(filename, key string) (string, error) {
	prompts, err := load(filename)
	if err != nil {
		return "", err
	}
	prompt, ok := prompts[key]
	if !ok {
		return "", fmt.Errorf("prompt key %q not found in %s", key, filename)
	}
	return prompt, nil
}

// List returns the prompt keys in a file, sorted.
func List(filename string) ([]string, error) {
	prompts, err := load(filename)
	if err != nil {
		return nil, err
	}
	return slices.Sorted(maps.Keys(prompts)), nil
}

// Placeholders returns the names used as {{.Name}} in template, in order of first use.
func Placeholders(template string) []string {
	var names []string
	rest := template
	for {
		start := strings.Index(rest, "{{.")
		if start < 0 {
			return names
		}
		rest = rest[start+3:]
		end := strings.Index(rest, "}}")
		if end < 0 {
			return names
		}
		if name := rest[:end]; !slices.Contains(names, name) {
			names = append(names, name)
		}
		rest = rest[end+2:]
	}
}

// Format replaces {{.Key}} placeholders with values from data in a single pass, so
// braces inside a value are copied verbatim. Placeholders without a value are left as
// they are.
func Format(template string, data map[string]string) string {
	pairs := make([]string, 0, 2*len(data))
	for _, key := range slices.Sorted(maps.Keys(data)) {
		pairs = append(pairs, "{{."+key+"}}", data[key])
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

// Render looks up a prompt and fills its placeholders. Every placeholder of the prompt
// must have a value in data.
func Render(filename, key string, data map[string]string) (string, error) {
	template, err := Get(filename, key)
	if err != nil {
		return "", err
	}
	for _, name := range Placeholders(template) {
		if _, ok := data[name]; !ok {
			return "", fmt.Errorf("prompt %s/%s: unfilled placeholder {{.%s}}", filename, key, name)
		}
	}
	return Format(template, data), nil
}

func load(filename string) (map[string]string, error) {
	filesMu.Lock()
	defer filesMu.Unlock()

	if prompts, ok := files[filename]; ok {
		return prompts, nil
	}

	data, err := promptFiles.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt file %s: %w", filename, err)
	}
	var prompts map[string]string
	if err := json.Unmarshal(data, &prompts); err != nil {
		return nil, fmt.Errorf("failed to parse prompt file %s: %w", filename, err)
	}
	files[filename] = prompts
	return prompts, nil
}
