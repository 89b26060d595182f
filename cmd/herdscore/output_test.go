package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func TestWriteJSONIndents(t *testing.T) {
	cmd := &cobra.Command{}
	var out bytes.Buffer
	cmd.SetOut(&out)

	if err := writeJSON(cmd, map[string]float64{"withers_height_cm": 44.44}); err != nil {
		t.Fatalf("writeJSON: %v", err)
	}
	requireContains(t, out.String(), "  \"withers_height_cm\": 44.44")
	if !strings.HasSuffix(out.String(), "\n") {
		t.Fatal("output must end with a newline")
	}
}

func TestPrintFieldAlignsLabels(t *testing.T) {
	var out bytes.Buffer
	printField(&out, "Verdict", fieldInfo, "%s", "VG")
	printField(&out, "Score", fieldGood, "%.2f", 8.4)

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	// A buffer is not a terminal, so no ANSI codes and values start at the
	// same column.
	if strings.Contains(out.String(), "\x1b[") {
		t.Fatal("colors must be off for non-terminal output")
	}
	if strings.Index(lines[0], "VG") != strings.Index(lines[1], "8.40") {
		t.Fatalf("values not aligned:\n%s", out.String())
	}
}

func TestPrintTableRightAlignsNumericColumns(t *testing.T) {
	var out bytes.Buffer
	printTable(&out,
		table.Row{"Measurement", "Value"},
		[]table.Row{
			{"withers_height_cm", "141.00"},
			{"body_length_cm", "9.50"},
		},
		2,
	)

	rendered := out.String()
	requireContains(t, rendered, "withers_height_cm")
	requireContains(t, rendered, "MEASUREMENT")
	// Right alignment pads the shorter number on the left.
	requireContains(t, rendered, "  9.50")
}
