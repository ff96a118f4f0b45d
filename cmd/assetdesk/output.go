package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/charlesng35/assetdesk/internal/models"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

func parseFormat(format string) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case formatText, formatJSON, formatYAML:
		return nil
	default:
		return fmt.Errorf("unsupported output format %q (text|json|yaml)", format)
	}
}

type printer struct {
	w      io.Writer
	format string
}

// value prints v as JSON or YAML, or calls text for the text format.
func (p printer) value(v any, text func(io.Writer) error) error {
	switch p.format {
	case formatJSON:
		enc := json.NewEncoder(p.w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatYAML:
		// Round-trip through JSON so YAML keys match the wire names.
		raw, err := json.Marshal(v)
		if err != nil {
			return err
		}
		var generic any
		if err := json.Unmarshal(raw, &generic); err != nil {
			return err
		}
		enc := yaml.NewEncoder(p.w)
		enc.SetIndent(2)
		if err := enc.Encode(generic); err != nil {
			return err
		}
		return enc.Close()
	default:
		return text(p.w)
	}
}

// table prints rows under header using aligned columns.
func table(w io.Writer, header []string, rows [][]string) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

func printPage[T any](p printer, page models.Page[T], header []string, row func(T) []string) error {
	return p.value(page, func(w io.Writer) error {
		rows := make([][]string, 0, len(page.Data))
		for _, item := range page.Data {
			rows = append(rows, row(item))
		}
		if err := table(w, header, rows); err != nil {
			return err
		}
		_, err := fmt.Fprintf(w, "page %d/%d, %d total\n", page.Page, max(page.TotalPages, 1), page.Total)
		return err
	})
}

func printFields(p printer, v any, fields [][2]string) error {
	return p.value(v, func(w io.Writer) error {
		rows := make([][]string, 0, len(fields))
		for _, f := range fields {
			rows = append(rows, []string{f[0] + ":", f[1]})
		}
		tw := tabwriter.NewWriter(w, 0, 4, 1, ' ', 0)
		for _, r := range rows {
			fmt.Fprintln(tw, strings.Join(r, "\t"))
		}
		return tw.Flush()
	})
}

func actionsString(actions []models.Action) string {
	if len(actions) == 0 {
		return "-"
	}
	out := make([]string, len(actions))
	for i, a := range actions {
		out[i] = string(a)
	}
	return strings.Join(out, ",")
}

func approvalString(v *bool) string {
	switch {
	case v == nil:
		return "pending"
	case *v:
		return "approved"
	default:
		return "rejected"
	}
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
