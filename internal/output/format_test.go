package output

import (
	"bytes"
	"strings"
	"testing"
)

type doc struct {
	Kind       string `json:"kind"`
	ProjectID  string `json:"projectId"`
	PrivateKey string `json:"privateKey"`
}

func (d doc) String() string { return "kind=" + d.Kind }

var testDoc = doc{Kind: "production", ProjectID: "acme-prod", PrivateKey: "[REDACTED]"}

func TestFormatterRegistry(t *testing.T) {
	names := FormatNames()
	for _, want := range []string{"json", "text", "yaml"} {
		if _, ok := GetFormatter(want); !ok {
			t.Errorf("%s formatter not registered (have %v)", want, names)
		}
	}
}

func TestJSONFormatter(t *testing.T) {
	f, _ := GetFormatter("json")

	out, err := f.Format(testDoc, Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(out), "\n  \"projectId\": \"acme-prod\"") {
		t.Errorf("expected indented output: %s", out)
	}

	out, err = f.Format(testDoc, Config{Compact: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(string(out), "\n") {
		t.Errorf("expected single line: %s", out)
	}
}

func TestYAMLFormatterKeepsFieldOrder(t *testing.T) {
	f, _ := GetFormatter("yaml")

	out, err := f.Format(testDoc, Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "kind: production\nprojectId: acme-prod\nprivateKey: '[REDACTED]'"
	if !strings.HasPrefix(string(out), "kind: production\nprojectId: acme-prod\nprivateKey:") {
		t.Errorf("got %q, want %q", out, want)
	}
}

func TestYAMLFormatterColorize(t *testing.T) {
	f, _ := GetFormatter("yaml")
	colors := DefaultColorConfig().Resolve()

	out, err := f.Format(testDoc, Config{Colorize: true, Colors: colors})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(out), colors.Key+"kind"+colors.Reset) {
		t.Errorf("expected colored key: %q", out)
	}
	if !strings.Contains(string(out), colors.Production+"production"+colors.Reset) {
		t.Errorf("expected colored kind: %q", out)
	}
}

func TestTextFormatter(t *testing.T) {
	f, _ := GetFormatter("text")

	out, err := f.Format(testDoc, Config{})
	if err != nil || string(out) != "kind=production" {
		t.Errorf("got %q, %v", out, err)
	}

	if _, err := f.Format(struct{}{}, Config{}); err == nil {
		t.Error("expected error for document without String method")
	}
}

func TestFormatAndPrintUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := FormatAndPrint(&buf, testDoc, Config{Format: "junit"})
	if err == nil || !strings.Contains(err.Error(), "available: json, text, yaml") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestPaint(t *testing.T) {
	colors := DefaultColorConfig().Resolve()
	if got := colors.Paint(false, colors.Valid, "ok"); got != "ok" {
		t.Errorf("expected plain text, got %q", got)
	}
	if got := colors.Paint(true, colors.Valid, "ok"); got != colors.Valid+"ok"+colors.Reset {
		t.Errorf("expected painted text, got %q", got)
	}
}
