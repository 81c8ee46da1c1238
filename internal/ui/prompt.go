// Package ui provides small terminal prompt helpers for interactive
// commands. Every prompt short-circuits to its default when stdin is not a
// terminal, so scripted runs never block.
package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

var (
	questionColor = color.New(color.FgCyan, color.Bold)
	optionColor   = color.New(color.FgWhite)
	hintColor     = color.New(color.Faint)
)

// Prompter asks questions on a terminal
type Prompter struct {
	in          io.Reader
	out         io.Writer
	interactive bool
}

// NewPrompter builds a prompter bound to stdin/stdout, detecting whether
// stdin is a terminal
func NewPrompter() *Prompter {
	return &Prompter{
		in:          os.Stdin,
		out:         os.Stdout,
		interactive: isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()),
	}
}

// NewPrompterForTest builds a prompter over explicit streams
func NewPrompterForTest(in io.Reader, out io.Writer, interactive bool) *Prompter {
	return &Prompter{in: in, out: out, interactive: interactive}
}

// Interactive reports whether the prompter will actually ask
func (p *Prompter) Interactive() bool {
	return p.interactive
}

// Choose presents a numbered list of options and returns the selected index.
// Empty input, invalid input, or a non-interactive session selects
// defaultIdx.
func (p *Prompter) Choose(question string, options []string, defaultIdx int) int {
	if defaultIdx < 0 || defaultIdx >= len(options) {
		defaultIdx = 0
	}

	if !p.interactive {
		return defaultIdx
	}

	questionColor.Fprintln(p.out, question)
	for i, opt := range options {
		marker := " "
		if i == defaultIdx {
			marker = "*"
		}
		optionColor.Fprintf(p.out, "  %s %d) %s\n", marker, i+1, opt)
	}
	hintColor.Fprintf(p.out, "Select [1-%d] (default %d): ", len(options), defaultIdx+1)

	line, err := bufio.NewReader(p.in).ReadString('\n')
	if err != nil && line == "" {
		return defaultIdx
	}

	line = strings.TrimSpace(line)
	if line == "" {
		return defaultIdx
	}

	n, err := strconv.Atoi(line)
	if err != nil || n < 1 || n > len(options) {
		fmt.Fprintln(p.out, "invalid selection, using default")
		return defaultIdx
	}

	return n - 1
}

// Confirm asks a yes/no question. Non-interactive sessions and empty input
// return defaultYes.
func (p *Prompter) Confirm(question string, defaultYes bool) bool {
	if !p.interactive {
		return defaultYes
	}

	hint := "y/N"
	if defaultYes {
		hint = "Y/n"
	}
	questionColor.Fprintf(p.out, "%s [%s]: ", question, hint)

	line, err := bufio.NewReader(p.in).ReadString('\n')
	if err != nil && line == "" {
		return defaultYes
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	case "n", "no":
		return false
	default:
		return defaultYes
	}
}
