package debug

import (
	"bytes"
	"testing"
)

func TestNewDebugCmd(t *testing.T) {
	cmd := NewDebugCmd()

	if cmd.Use != "debug" {
		t.Errorf("Use = %q, want debug", cmd.Use)
	}

	expected := map[string]bool{"serve": false, "profile": false}
	for _, sub := range cmd.Commands() {
		if _, ok := expected[sub.Name()]; ok {
			expected[sub.Name()] = true
		}
	}
	for name, found := range expected {
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestProfileCmd_RequiresATarget(t *testing.T) {
	cmd := newProfileCmd()
	cmd.SetArgs([]string{})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	if err := cmd.Execute(); err == nil {
		t.Error("expected an error without --cpu or --heap")
	}
}
