package menu

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
)

// ErrInvalidSelection is returned for input outside the menu range.
var ErrInvalidSelection = errors.New("invalid selection")

const rule = "=========================================="

// maxLineBytes caps one input line; longer lines are drained and rejected.
const maxLineBytes = 4096

// Item is one numbered menu entry.
type Item struct {
	Label string
	Run   func(ctx context.Context, w io.Writer) error
}

// Menu is a numbered list of routines plus a trailing exit entry.
type Menu struct {
	Title     string
	Items     []Item
	ExitLabel string
	Goodbye   string
	Intro     string // shown in the TUI output pane before the first routine
}

// ExitChoice is the 1-based number of the exit entry.
func (m Menu) ExitChoice() int {
	return len(m.Items) + 1
}

// Render formats the banner and options.
func (m Menu) Render() string {
	var b strings.Builder
	b.WriteString("\n" + rule + "\n")
	b.WriteString(" " + m.Title + "\n")
	b.WriteString(rule + "\n")
	for i, item := range m.Items {
		fmt.Fprintf(&b, "%d. %s\n", i+1, item.Label)
	}
	exit := m.ExitLabel
	if exit == "" {
		exit = "Exit"
	}
	fmt.Fprintf(&b, "%d. %s\n", m.ExitChoice(), exit)
	b.WriteString(rule + "\n")
	return b.String()
}

// Prompt is the line shown before reading a choice.
func (m Menu) Prompt() string {
	return fmt.Sprintf("Choose an option (1-%d): ", m.ExitChoice())
}

// InvalidMessage is printed for out-of-range or non-numeric input.
func (m Menu) InvalidMessage() string {
	return fmt.Sprintf("Invalid option! Please choose 1-%d.", m.ExitChoice())
}

// Parse maps raw input to a 1-based choice.
func (m Menu) Parse(input string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSelection, strings.TrimSpace(input))
	}
	if n < 1 || n > m.ExitChoice() {
		return 0, fmt.Errorf("%w: %d", ErrInvalidSelection, n)
	}
	return n, nil
}

// Run drives the menu over line-oriented input until the exit choice, EOF,
// or context cancellation. Routine errors are reported and the loop continues.
func Run(ctx context.Context, m Menu, in io.Reader, out io.Writer) error {
	reader := bufio.NewReader(in)

	for {
		if ctx.Err() != nil {
			return nil
		}

		fmt.Fprint(out, m.Render())
		fmt.Fprint(out, m.Prompt())

		line, tooLong, err := readLine(reader)
		if err != nil {
			fmt.Fprintln(out)
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if tooLong {
			slog.Debug("menu selection rejected", "menu", m.Title, "error", "line too long")
			fmt.Fprintln(out, m.InvalidMessage())
			continue
		}

		choice, err := m.Parse(line)
		if err != nil {
			slog.Debug("menu selection rejected", "menu", m.Title, "error", err)
			fmt.Fprintln(out, m.InvalidMessage())
			continue
		}

		if choice == m.ExitChoice() {
			if m.Goodbye != "" {
				fmt.Fprintln(out, m.Goodbye)
			}
			return nil
		}

		item := m.Items[choice-1]
		if err := item.Run(ctx, out); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			fmt.Fprintf(out, "Error: %v\n", err)
		}
	}
}

// readLine returns the next line without its terminator. A line longer than
// maxLineBytes is consumed in full and reported with tooLong set.
func readLine(r *bufio.Reader) (line string, tooLong bool, err error) {
	var buf []byte
	for {
		chunk, isPrefix, readErr := r.ReadLine()
		if readErr != nil {
			if len(buf) > 0 || tooLong {
				return string(buf), tooLong, nil
			}
			return "", false, readErr
		}
		if !tooLong {
			if len(buf)+len(chunk) > maxLineBytes {
				tooLong = true
				buf = nil
			} else {
				buf = append(buf, chunk...)
			}
		}
		if !isPrefix {
			return string(buf), tooLong, nil
		}
	}
}
