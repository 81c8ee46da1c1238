package env

import "testing"

func TestNewEnvCmd(t *testing.T) {
	cmd := NewEnvCmd()

	if cmd.Use != "env" {
		t.Errorf("Use = %q, want env", cmd.Use)
	}

	expected := map[string]bool{"setup": false, "show": false}
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

func TestSetupCmdFlags(t *testing.T) {
	cmd := newSetupCmd()
	if cmd.Flags().Lookup("export") == nil {
		t.Error("setup command missing the export flag")
	}
}
