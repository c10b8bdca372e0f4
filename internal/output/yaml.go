package output

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/goccy/go-yaml"
)

func init() {
	RegisterFormatter("yaml", &YAMLFormatter{})
}

// YAMLFormatter formats documents as YAML, keeping the field order of their
// JSON encoding.
type YAMLFormatter struct{}

func (f *YAMLFormatter) Format(doc any, cfg Config) ([]byte, error) {
	jsonBytes, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}

	var data any
	if err := yaml.UnmarshalWithOptions(jsonBytes, &data, yaml.UseOrderedMap()); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf, yaml.Indent(2), yaml.IndentSequence(true))
	if err := enc.Encode(data); err != nil {
		return nil, err
	}

	out := bytes.TrimRight(buf.Bytes(), "\n")
	if cfg.Colorize {
		return []byte(colorizeYAML(string(out), cfg.Colors)), nil
	}
	return out, nil
}

// colorizeYAML paints mapping keys, the credential kind and redaction markers.
func colorizeYAML(doc string, colors ResolvedColors) string {
	lines := strings.Split(doc, "\n")
	for i, line := range lines {
		key, value, ok := strings.Cut(line, ": ")
		if !ok {
			continue
		}
		indent := len(key) - len(strings.TrimLeft(key, " -"))
		name := key[indent:]
		lines[i] = key[:indent] + colors.Paint(true, colors.Key, name) + ": " + colorizeValue(name, value, colors)
	}
	return strings.Join(lines, "\n")
}

func colorizeValue(key, value string, colors ResolvedColors) string {
	switch {
	case key == "kind" && value == "production":
		return colors.Paint(true, colors.Production, value)
	case key == "kind":
		return colors.Paint(true, colors.Template, value)
	case strings.HasPrefix(value, "'[") || strings.HasPrefix(value, `"[`) || strings.HasPrefix(value, "["):
		return colors.Paint(true, colors.Secret, value)
	}
	return value
}
