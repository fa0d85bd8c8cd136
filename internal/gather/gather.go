// Package gather collects document paths and overwrite confirmations from
// an interactive front end. Everything here is a pure function over an
// injected reader and writer; the core scaffolding operations only consume
// the resulting values and never touch stdin or stdout themselves.
package gather

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Sentinel ends the document-gathering loop.
const Sentinel = "q"

// Documents prompts on out and reads file paths from in, one per line,
// until the sentinel (or EOF). Paths that do not name an existing regular
// file are rejected with a message and re-prompted, never fatal. The
// returned slice preserves entry order.
func Documents(in io.Reader, out io.Writer) ([]string, error) {
	sc := bufio.NewScanner(in)
	fmt.Fprintf(out, "Select documents to add; enter %q to finish.\n", Sentinel)

	var paths []string
	for {
		fmt.Fprint(out, "Document path: ")
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return paths, fmt.Errorf("GATHER_READ: %w", err)
			}
			return paths, nil
		}
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if strings.EqualFold(line, Sentinel) {
			return paths, nil
		}
		info, err := os.Stat(line)
		if err != nil || !info.Mode().IsRegular() {
			fmt.Fprintln(out, "Invalid file path. Please try again.")
			continue
		}
		paths = append(paths, line)
	}
}

// ConsoleConfirm returns an overwrite-confirmation func that lists the
// colliding names on out and reads a y/N answer from in. Anything other
// than y or yes declines, as does EOF.
func ConsoleConfirm(in io.Reader, out io.Writer) func(existing []string) bool {
	sc := bufio.NewScanner(in)
	return func(existing []string) bool {
		fmt.Fprintf(out, "The following files already exist:\n  %s\n", strings.Join(existing, "\n  "))
		fmt.Fprint(out, "Overwrite them? (y/N): ")
		if !sc.Scan() {
			return false
		}
		answer := strings.ToLower(strings.TrimSpace(sc.Text()))
		return answer == "y" || answer == "yes"
	}
}

// ConfirmAll approves every overwrite. Used for non-interactive runs.
func ConfirmAll([]string) bool { return true }
