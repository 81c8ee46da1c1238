package ui

import (
	"bytes"
	"strings"
	"testing"
)

func TestChoose_NonInteractiveReturnsDefault(t *testing.T) {
	p := NewPrompterForTest(strings.NewReader("2\n"), &bytes.Buffer{}, false)

	if got := p.Choose("pick", []string{"a", "b", "c"}, 2); got != 2 {
		t.Errorf("Choose = %d, want the default 2", got)
	}
}

func TestChoose(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		defaultIdx int
		expected   int
	}{
		{name: "valid selection", input: "2\n", defaultIdx: 0, expected: 1},
		{name: "empty input uses default", input: "\n", defaultIdx: 1, expected: 1},
		{name: "out of range uses default", input: "9\n", defaultIdx: 0, expected: 0},
		{name: "non-numeric uses default", input: "abc\n", defaultIdx: 2, expected: 2},
		{name: "eof uses default", input: "", defaultIdx: 1, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			p := NewPrompterForTest(strings.NewReader(tt.input), &out, true)

			got := p.Choose("pick one", []string{"keep", "reset", "skip"}, tt.defaultIdx)
			if got != tt.expected {
				t.Errorf("Choose = %d, want %d", got, tt.expected)
			}
			if !strings.Contains(out.String(), "pick one") {
				t.Error("question was not printed")
			}
		})
	}
}

func TestChoose_InvalidDefaultClamped(t *testing.T) {
	p := NewPrompterForTest(strings.NewReader(""), &bytes.Buffer{}, false)

	if got := p.Choose("pick", []string{"a", "b"}, 7); got != 0 {
		t.Errorf("Choose = %d, want 0 for an out-of-range default", got)
	}
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		interactive bool
		defaultYes  bool
		expected    bool
	}{
		{name: "yes", input: "y\n", interactive: true, defaultYes: false, expected: true},
		{name: "no", input: "no\n", interactive: true, defaultYes: true, expected: false},
		{name: "empty uses default", input: "\n", interactive: true, defaultYes: true, expected: true},
		{name: "garbage uses default", input: "maybe\n", interactive: true, defaultYes: false, expected: false},
		{name: "non-interactive", input: "y\n", interactive: false, defaultYes: false, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPrompterForTest(strings.NewReader(tt.input), &bytes.Buffer{}, tt.interactive)
			if got := p.Confirm("proceed?", tt.defaultYes); got != tt.expected {
				t.Errorf("Confirm = %t, want %t", got, tt.expected)
			}
		})
	}
}
