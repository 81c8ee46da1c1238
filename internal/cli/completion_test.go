package cli

import (
	"bytes"
	"strings"
	"testing"
)

func TestCompletionCommand(t *testing.T) {
	tests := []struct {
		name        string
		shell       string
		wantErr     bool
		errContains string
	}{
		{name: "bash completion", shell: "bash"},
		{name: "zsh completion", shell: "zsh"},
		{name: "fish completion", shell: "fish"},
		{name: "powershell completion", shell: "powershell"},
		{name: "invalid shell", shell: "invalid", wantErr: true, errContains: "invalid argument"},
		{name: "no arguments", shell: "", wantErr: true, errContains: "accepts 1 arg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rootCmd := newRootCmd()

			var args []string
			if tt.shell != "" {
				args = []string{"completion", tt.shell}
			} else {
				args = []string{"completion"}
			}

			rootCmd.SetArgs(args)
			rootCmd.SetOut(&bytes.Buffer{})
			rootCmd.SetErr(&bytes.Buffer{})

			err := rootCmd.Execute()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				if tt.errContains != "" && !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("error = %q, want it to contain %q", err.Error(), tt.errContains)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
