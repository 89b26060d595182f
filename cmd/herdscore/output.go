package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// writeJSON renders v as indented JSON on the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}

// fieldKind colors a field line when stdout is a terminal.
type fieldKind int

const (
	fieldInfo fieldKind = iota
	fieldGood
	fieldBad
)

const (
	ansiReset = "\x1b[0m"
	ansiRed   = "\x1b[31m"
	ansiGreen = "\x1b[32m"
)

const fieldLabelWidth = 16

// printField writes one aligned "Label: value" line.
func printField(out io.Writer, label string, kind fieldKind, format string, args ...any) {
	line := fmt.Sprintf("  %-*s %s", fieldLabelWidth, label+":", fmt.Sprintf(format, args...))
	if colorEnabled(out) {
		switch kind {
		case fieldGood:
			line = ansiGreen + line + ansiReset
		case fieldBad:
			line = ansiRed + line + ansiReset
		}
	}
	fmt.Fprintln(out, line)
}

func colorEnabled(out io.Writer) bool {
	file, ok := out.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// printTable writes a light-styled table to out. numericColumns lists the
// 1-based columns holding numbers, which are right-aligned.
func printTable(out io.Writer, header table.Row, rows []table.Row, numericColumns ...int) {
	tw := table.NewWriter()
	tw.SetOutputMirror(out)
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(header)
	tw.AppendRows(rows)

	configs := make([]table.ColumnConfig, 0, len(numericColumns))
	for _, column := range numericColumns {
		configs = append(configs, table.ColumnConfig{Number: column, Align: text.AlignRight})
	}
	tw.SetColumnConfigs(configs)
	tw.Render()
}
