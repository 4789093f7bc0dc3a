// Package common contains shared functionality for command handlers
package common

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

// ErrNoInput is returned when neither arguments nor stdin carry any text.
var ErrNoInput = errors.New("no input text given")

// InputText joins args into one string. With no args, or the single
// argument "-", the text is read from in, one statement per line, and the
// lines are joined with commas.
func InputText(args []string, in io.Reader) (string, error) {
	if len(args) > 0 && !(len(args) == 1 && args[0] == "-") {
		text := strings.TrimSpace(strings.Join(args, " "))
		if text == "" {
			return "", ErrNoInput
		}
		return text, nil
	}
	if in == nil {
		return "", ErrNoInput
	}

	var lines []string
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("error reading input: %w", err)
	}
	if len(lines) == 0 {
		return "", ErrNoInput
	}
	return strings.Join(lines, ", "), nil
}

// PrintJSON writes v to w as indented JSON.
func PrintJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("error encoding JSON: %w", err)
	}
	return nil
}

// Context returns the command context, or context.Background when the
// command was not started through Execute.
func Context(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
