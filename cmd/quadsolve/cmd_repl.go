// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/AleutianAI/quadsolve/pkg/ux"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

const replPrompt = "a b c> "

func newReplCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Solve one equation per input line until EOF",
		Long: `repl reads lines of three coefficients separated by spaces or commas
and prints the roots of each. Errors are reported and the loop continues.
Type "quit" or press Ctrl+D to leave.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var reader LineReader
			if isTerminal(cmd.InOrStdin()) {
				reader = NewInteractiveLineReader(replPrompt, cmd.ErrOrStderr())
			} else {
				reader = NewScannerLineReader(cmd.InOrStdin())
			}
			return a.repl(cmd, reader)
		},
	}
}

// repl runs the read-solve-print loop until reader returns io.EOF.
func (a *app) repl(cmd *cobra.Command, reader LineReader) error {
	for {
		if err := cmd.Context().Err(); err != nil {
			return nil
		}

		line, err := reader.ReadLine()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		switch line {
		case "":
			continue
		case "quit", "exit":
			return nil
		}

		raw, err := splitCoefficients(line)
		if err != nil {
			_ = ux.RenderError(cmd.ErrOrStderr(), err, a.renderOptions())
			continue
		}
		if err := a.solveStrings(cmd, raw); err != nil {
			var reported *reportedError
			if !errors.As(err, &reported) {
				return err
			}
		}
	}
}

// splitCoefficients splits "1 -3 2" or "1, -3, 2" into three fields.
func splitCoefficients(line string) ([3]string, error) {
	fields := strings.FieldsFunc(line, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	if len(fields) != 3 {
		return [3]string{}, fmt.Errorf("expected 3 coefficients, got %d", len(fields))
	}
	return [3]string{fields[0], fields[1], fields[2]}, nil
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// =============================================================================
// LineReader
// =============================================================================

// LineReader yields one trimmed input line per call and io.EOF at the end.
type LineReader interface {
	ReadLine() (string, error)
}

// ScannerLineReader reads lines from a non-interactive source.
type ScannerLineReader struct {
	scanner *bufio.Scanner
}

// NewScannerLineReader wraps r.
func NewScannerLineReader(r io.Reader) *ScannerLineReader {
	return &ScannerLineReader{scanner: bufio.NewScanner(r)}
}

// ReadLine returns the next line without its terminator.
func (r *ScannerLineReader) ReadLine() (string, error) {
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(r.scanner.Text()), nil
}

// InteractiveLineReader edits lines with a bubbletea text input and keeps
// a history navigable with Up/Down.
type InteractiveLineReader struct {
	prompt     string
	out        io.Writer
	history    []string
	maxHistory int
}

// NewInteractiveLineReader renders to out, typically stderr.
func NewInteractiveLineReader(prompt string, out io.Writer) *InteractiveLineReader {
	return &InteractiveLineReader{
		prompt:     prompt,
		out:        out,
		maxHistory: 100,
	}
}

// ReadLine blocks until Enter, returning io.EOF on Ctrl+D.
func (r *InteractiveLineReader) ReadLine() (string, error) {
	ti := textinput.New()
	ti.Prompt = r.prompt
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = 60

	m := inputModel{
		textInput:    ti,
		history:      r.history,
		historyIndex: -1,
	}

	final, err := tea.NewProgram(m, tea.WithOutput(r.out)).Run()
	if err != nil {
		return "", err
	}
	result, ok := final.(inputModel)
	if !ok {
		return "", fmt.Errorf("unexpected model type from bubbletea: %T", final)
	}
	if result.cancelled {
		return "", io.EOF
	}

	line := strings.TrimSpace(result.textInput.Value())
	if line != "" {
		r.addToHistory(line)
	}
	// The program clears its view on exit; echo the submitted line.
	fmt.Fprintf(r.out, "%s%s\n", r.prompt, line)
	return line, nil
}

func (r *InteractiveLineReader) addToHistory(line string) {
	if n := len(r.history); n > 0 && r.history[n-1] == line {
		return
	}
	r.history = append(r.history, line)
	if len(r.history) > r.maxHistory {
		r.history = r.history[1:]
	}
}

// inputModel is the bubbletea model behind InteractiveLineReader.
type inputModel struct {
	textInput    textinput.Model
	history      []string
	historyIndex int
	currentInput string
	done         bool
	cancelled    bool
}

func (m inputModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			m.done = true
			return m, tea.Quit

		case tea.KeyCtrlC, tea.KeyCtrlD:
			m.cancelled = true
			m.done = true
			return m, tea.Quit

		case tea.KeyUp:
			if len(m.history) == 0 {
				return m, nil
			}
			if m.historyIndex == -1 {
				m.currentInput = m.textInput.Value()
				m.historyIndex = len(m.history) - 1
			} else if m.historyIndex > 0 {
				m.historyIndex--
			}
			m.textInput.SetValue(m.history[m.historyIndex])
			m.textInput.CursorEnd()
			return m, nil

		case tea.KeyDown:
			if m.historyIndex == -1 {
				return m, nil
			}
			if m.historyIndex < len(m.history)-1 {
				m.historyIndex++
				m.textInput.SetValue(m.history[m.historyIndex])
			} else {
				m.historyIndex = -1
				m.textInput.SetValue(m.currentInput)
			}
			m.textInput.CursorEnd()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m inputModel) View() string {
	if m.done {
		return ""
	}
	return m.textInput.View()
}
