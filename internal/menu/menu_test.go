package menu

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
)

func testMenu(calls *[]string) Menu {
	record := func(name string) func(context.Context, io.Writer) error {
		return func(_ context.Context, w io.Writer) error {
			*calls = append(*calls, name)
			fmt.Fprintf(w, "ran %s\n", name)
			return nil
		}
	}
	return Menu{
		Title: "TEST WORKLOAD",
		Items: []Item{
			{Label: "First", Run: record("first")},
			{Label: "Second", Run: record("second")},
		},
		Goodbye: "Bye!",
	}
}

func TestRender_ListsItemsAndExit(t *testing.T) {
	var calls []string
	out := testMenu(&calls).Render()

	for _, want := range []string{"TEST WORKLOAD", "1. First", "2. Second", "3. Exit"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in menu, got:\n%s", want, out)
		}
	}
}

func TestParse(t *testing.T) {
	var calls []string
	m := testMenu(&calls)

	cases := map[string]int{"1": 1, " 2 ": 2, "3": 3}
	for in, want := range cases {
		got, err := m.Parse(in)
		if err != nil || got != want {
			t.Fatalf("Parse(%q) = %d, %v; want %d", in, got, err, want)
		}
	}
	for _, in := range []string{"0", "4", "-1", "abc", ""} {
		if _, err := m.Parse(in); !errors.Is(err, ErrInvalidSelection) {
			t.Fatalf("Parse(%q): expected ErrInvalidSelection, got %v", in, err)
		}
	}
}

func TestRun_DispatchesUntilExit(t *testing.T) {
	var calls []string
	var out bytes.Buffer

	err := Run(context.Background(), testMenu(&calls), strings.NewReader("2\n1\n3\n1\n"), &out)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(calls) != 2 || calls[0] != "second" || calls[1] != "first" {
		t.Fatalf("unexpected calls: %v", calls)
	}
	if !strings.Contains(out.String(), "Bye!") {
		t.Fatalf("expected goodbye, got:\n%s", out.String())
	}
}

func TestRun_InvalidSelectionRedisplays(t *testing.T) {
	var calls []string
	var out bytes.Buffer

	if err := Run(context.Background(), testMenu(&calls), strings.NewReader("9\nfoo\n3\n"), &out); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := strings.Count(out.String(), "Invalid option! Please choose 1-3."); got != 2 {
		t.Fatalf("expected 2 invalid messages, got %d:\n%s", got, out.String())
	}
	if got := strings.Count(out.String(), "TEST WORKLOAD"); got != 3 {
		t.Fatalf("expected menu shown 3 times, got %d", got)
	}
	if len(calls) != 0 {
		t.Fatalf("expected no routine calls, got %v", calls)
	}
}

func TestRun_EOFExitsCleanly(t *testing.T) {
	var calls []string
	var out bytes.Buffer

	if err := Run(context.Background(), testMenu(&calls), strings.NewReader("1\n"), &out); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(calls) != 1 {
		t.Fatalf("expected one call, got %v", calls)
	}
}

func TestRun_RoutineErrorIsReported(t *testing.T) {
	m := Menu{
		Title: "ERR",
		Items: []Item{{Label: "Fail", Run: func(context.Context, io.Writer) error { return errors.New("boom") }}},
	}
	var out bytes.Buffer

	if err := Run(context.Background(), m, strings.NewReader("1\n2\n"), &out); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(out.String(), "Error: boom") {
		t.Fatalf("expected error line, got:\n%s", out.String())
	}
}

func TestRun_CancelledRoutineStopsLoop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	m := Menu{
		Title: "CANCEL",
		Items: []Item{{Label: "Stop", Run: func(context.Context, io.Writer) error {
			cancel()
			return context.Canceled
		}}},
	}
	var out bytes.Buffer

	if err := Run(ctx, m, strings.NewReader("1\n1\n1\n"), &out); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := strings.Count(out.String(), "CANCEL"); got != 1 {
		t.Fatalf("expected loop to stop after cancellation, menu shown %d times", got)
	}
}

func TestRun_OversizedLineIsRejected(t *testing.T) {
	var calls []string
	var out bytes.Buffer

	input := strings.Repeat("9", 70000) + "\n1\n3\n"
	if err := Run(context.Background(), testMenu(&calls), strings.NewReader(input), &out); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(out.String(), "Invalid option! Please choose 1-3.") {
		t.Fatalf("expected invalid option message, got:\n%s", out.String())
	}
	if len(calls) != 1 || calls[0] != "first" {
		t.Fatalf("expected the line after the oversized one to run, got %v", calls)
	}
}

func TestRun_LastLineWithoutNewline(t *testing.T) {
	var calls []string
	var out bytes.Buffer

	if err := Run(context.Background(), testMenu(&calls), strings.NewReader("2\r\n3"), &out); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(calls) != 1 || calls[0] != "second" || !strings.Contains(out.String(), "Bye!") {
		t.Fatalf("unexpected run: calls=%v output:\n%s", calls, out.String())
	}
}
