package output

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestYAMLFormatter_Format(t *testing.T) {
	var buf bytes.Buffer
	f := NewYAMLFormatter(nil)

	data := map[string]interface{}{"cores": 8}
	if err := f.Format(&buf, data); err != nil {
		t.Fatalf("Format failed: %v", err)
	}

	var decoded map[string]interface{}
	if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid YAML: %v", err)
	}
	if decoded["cores"] != 8 {
		t.Errorf("cores = %v, want 8", decoded["cores"])
	}
}

func TestYAMLFormatter_FormatResults(t *testing.T) {
	var buf bytes.Buffer
	f := NewYAMLFormatter(nil)

	results := []TaskResult{
		{Name: "solution", Duration: time.Second},
		{Name: "tooling", Err: errors.New("boom")},
	}

	if err := f.FormatResults(&buf, results); err != nil {
		t.Fatalf("FormatResults failed: %v", err)
	}

	var decoded []map[string]interface{}
	if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid YAML: %v", err)
	}
	if len(decoded) != 2 {
		t.Fatalf("decoded %d entries, want 2", len(decoded))
	}
	if decoded[0]["status"] != "success" {
		t.Errorf("first status = %v, want success", decoded[0]["status"])
	}
	if decoded[1]["error"] != "boom" {
		t.Errorf("second error = %v, want boom", decoded[1]["error"])
	}
}
