package util

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestCommandError(t *testing.T) {
	base := errors.New("exit status 1")
	err := WrapCommandError("git fetch", "fatal: not a repository\n", base)

	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) {
		t.Fatalf("expected *CommandError, got %T", err)
	}

	if cmdErr.Command != "git fetch" {
		t.Errorf("Command = %q, want %q", cmdErr.Command, "git fetch")
	}
	if cmdErr.Stderr != "fatal: not a repository" {
		t.Errorf("Stderr = %q, want trimmed stderr", cmdErr.Stderr)
	}
	if !errors.Is(err, base) {
		t.Error("CommandError should unwrap to the base error")
	}
	if !strings.Contains(err.Error(), "git fetch") {
		t.Errorf("Error() = %q, should mention the command", err.Error())
	}
}

func TestWrapCommandError_Nil(t *testing.T) {
	if err := WrapCommandError("anything", "", nil); err != nil {
		t.Errorf("wrapping nil should return nil, got %v", err)
	}
}

func TestRepoError(t *testing.T) {
	err := WrapRepoError("tooling", ErrRepoNotFound)

	if !errors.Is(err, ErrRepoNotFound) {
		t.Error("RepoError should unwrap to the sentinel")
	}
	if !IsRepoNotFound(err) {
		t.Error("IsRepoNotFound should match a wrapped sentinel")
	}
	if !strings.Contains(err.Error(), "tooling") {
		t.Errorf("Error() = %q, should mention the repository", err.Error())
	}

	if err := WrapRepoError("tooling", nil); err != nil {
		t.Errorf("wrapping nil should return nil, got %v", err)
	}
}

func TestMultiError(t *testing.T) {
	tests := []struct {
		name     string
		errors   []error
		wantNil  bool
		wantText string
	}{
		{
			name:    "no errors",
			errors:  nil,
			wantNil: true,
		},
		{
			name:    "all nil errors filtered",
			errors:  []error{nil, nil},
			wantNil: true,
		},
		{
			name:     "single error",
			errors:   []error{errors.New("only one")},
			wantText: "only one",
		},
		{
			name:     "multiple errors",
			errors:   []error{errors.New("first"), errors.New("second")},
			wantText: "2 errors occurred:",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMultiError(tt.errors)
			err := m.ErrorOrNil()

			if tt.wantNil {
				if err != nil {
					t.Errorf("expected nil, got %v", err)
				}
				return
			}

			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.wantText) {
				t.Errorf("Error() = %q, want it to contain %q", err.Error(), tt.wantText)
			}
		})
	}
}

func TestMultiError_TruncatesLongLists(t *testing.T) {
	m := &MultiError{}
	for i := 0; i < 15; i++ {
		m.Add(fmt.Errorf("error %d", i))
	}

	msg := m.Error()
	if !strings.Contains(msg, "15 errors occurred:") {
		t.Errorf("message should report the total count, got %q", msg)
	}
	if !strings.Contains(msg, "and 5 more errors") {
		t.Errorf("message should truncate after 10 entries, got %q", msg)
	}
}

func TestCombineErrors(t *testing.T) {
	if err := CombineErrors(nil, nil); err != nil {
		t.Errorf("combining nils should return nil, got %v", err)
	}

	first := errors.New("first")
	err := CombineErrors(nil, first, nil)
	if err == nil {
		t.Fatal("expected an error")
	}
	if !errors.Is(err, first) {
		t.Error("combined error should match its members via errors.Is")
	}
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("workers", -3, "must be non-negative")
	msg := err.Error()

	for _, want := range []string{"workers", "-3", "must be non-negative"} {
		if !strings.Contains(msg, want) {
			t.Errorf("Error() = %q, want it to contain %q", msg, want)
		}
	}
}

func TestFriendlyError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "nil error",
			err:  nil,
			want: "",
		},
		{
			name: "timeout",
			err:  fmt.Errorf("batch: %w", ErrTimeout),
			want: "timed out",
		},
		{
			name: "cancelled",
			err:  ErrCancelled,
			want: "cancelled",
		},
		{
			name: "missing command",
			err:  WrapCommandError("ccache", "", ErrCommandNotFound),
			want: "not installed",
		},
		{
			name: "not initialized",
			err:  ErrNotInitialized,
			want: "devinit env setup",
		},
		{
			name: "unknown error passes through",
			err:  errors.New("something odd"),
			want: "something odd",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FriendlyError(tt.err)
			if !strings.Contains(got, tt.want) {
				t.Errorf("FriendlyError() = %q, want it to contain %q", got, tt.want)
			}
		})
	}
}

func TestWrapErrorf(t *testing.T) {
	if err := WrapErrorf(nil, "context"); err != nil {
		t.Errorf("wrapping nil should return nil, got %v", err)
	}

	base := errors.New("base")
	err := WrapErrorf(base, "loading %s", "config")
	if !errors.Is(err, base) {
		t.Error("wrapped error should match the base via errors.Is")
	}
	if !strings.Contains(err.Error(), "loading config") {
		t.Errorf("Error() = %q, want formatted context", err.Error())
	}
}
