// Package render writes simulation outcomes in the supported output formats.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"

	"github.com/me/cpusim/internal/batch"
	"github.com/me/cpusim/internal/scheduler"
	"github.com/me/cpusim/pkg/model"
)

// Format selects how outcomes are written.
type Format string

const (
	FormatText  Format = "text"
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// Formats lists every supported format.
var Formats = []Format{FormatText, FormatTable, FormatJSON, FormatYAML}

// ParseFormat converts a format name (case-insensitive) to a Format.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown output format %q (want text, table, json or yaml)", s)
}

// Options controls optional parts of the output.
type Options struct {
	Metrics bool
}

// Write renders outcomes to w.
func Write(w io.Writer, format Format, outcomes []batch.Outcome, opts Options) error {
	switch format {
	case FormatText:
		return writeText(w, outcomes, opts)
	case FormatTable:
		return writeTable(w, outcomes, opts)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(Documents(outcomes, opts))
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(Documents(outcomes, opts)); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unknown output format %q", format)
}

// BurstLine formats a burst as "<start> <id> <duration>", with an X appended
// when the burst completes its job.
func BurstLine(b model.Burst) string {
	line := fmt.Sprintf("%d %d %d", b.Start, b.ID, b.Duration)
	if b.Terminates {
		line += "X"
	}
	return line
}

func writeText(w io.Writer, outcomes []batch.Outcome, opts Options) error {
	for _, o := range outcomes {
		if _, err := fmt.Fprintln(w, o.Case.Name); err != nil {
			return err
		}
		if o.Err != nil {
			if _, err := fmt.Fprintf(w, "# error: %v\n", o.Err); err != nil {
				return err
			}
			continue
		}
		for _, b := range o.Result.Bursts {
			if _, err := fmt.Fprintln(w, BurstLine(b)); err != nil {
				return err
			}
		}
		if opts.Metrics {
			m := o.Result.Metrics
			if _, err := fmt.Fprintf(w, "# makespan=%d utilization=%.2f turnaround=%.2f waiting=%.2f response=%.2f\n",
				m.Makespan, m.Utilization, m.Turnaround.Mean, m.Waiting.Mean, m.Response.Mean); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeTable(w io.Writer, outcomes []batch.Outcome, opts Options) error {
	for i, o := range outcomes {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		title := fmt.Sprintf("Case %s: %s", o.Case.Name, o.Case.Options.Policy.Description())
		if o.Case.Options.Policy.Sliced() {
			title += fmt.Sprintf(" (quantum %d)", o.Case.Options.Quantum)
		}
		if _, err := fmt.Fprintln(w, title); err != nil {
			return err
		}
		if o.Err != nil {
			if _, err := fmt.Fprintf(w, "error: %v\n", o.Err); err != nil {
				return err
			}
			continue
		}

		table := tablewriter.NewWriter(w)
		table.SetHeader([]string{"Start", "End", "Job", "Duration", "Done"})
		for _, b := range o.Result.Bursts {
			done := ""
			if b.Terminates {
				done = "X"
			}
			table.Append([]string{itoa(b.Start), itoa(b.End()), itoa(b.ID), itoa(b.Duration), done})
		}
		table.Render()

		if opts.Metrics {
			writeMetricsTable(w, o.Result.Metrics)
		}
	}
	return nil
}

func writeMetricsTable(w io.Writer, m *scheduler.Metrics) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Job", "Arrival", "Burst", "Completion", "Turnaround", "Waiting", "Response"})
	for _, j := range m.Jobs {
		table.Append([]string{
			itoa(j.ID), itoa(j.Arrival), itoa(j.Duration), itoa(j.Completion),
			itoa(j.Turnaround), itoa(j.Waiting), itoa(j.Response),
		})
	}
	table.SetFooter([]string{"", "", "", "Average",
		fmt.Sprintf("%.2f", m.Turnaround.Mean),
		fmt.Sprintf("%.2f", m.Waiting.Mean),
		fmt.Sprintf("%.2f", m.Response.Mean),
	})
	table.SetCaption(true, fmt.Sprintf("makespan %d, utilization %.2f, throughput %.3f/unit, %d context switches",
		m.Makespan, m.Utilization, m.Throughput, m.ContextSwitches))
	table.Render()
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

// CaseDocument is the structured form of one outcome used by the JSON and
// YAML formats and by the HTTP API.
type CaseDocument struct {
	Case    string             `json:"case" yaml:"case"`
	Policy  model.Policy       `json:"policy" yaml:"policy"`
	Quantum int                `json:"quantum,omitempty" yaml:"quantum,omitempty"`
	Bursts  []model.Burst      `json:"bursts,omitempty" yaml:"bursts,omitempty"`
	Metrics *scheduler.Metrics `json:"metrics,omitempty" yaml:"metrics,omitempty"`
	Error   string             `json:"error,omitempty" yaml:"error,omitempty"`
}

// Documents converts outcomes to their structured form. Metrics are included
// only when opts.Metrics is set.
func Documents(outcomes []batch.Outcome, opts Options) []CaseDocument {
	docs := make([]CaseDocument, len(outcomes))
	for i, o := range outcomes {
		d := CaseDocument{Case: o.Case.Name, Policy: o.Case.Options.Policy}
		if o.Case.Options.Policy.Sliced() {
			d.Quantum = o.Case.Options.Quantum
		}
		if o.Err != nil {
			d.Error = o.Err.Error()
		} else {
			d.Bursts = o.Result.Bursts
			if opts.Metrics {
				d.Metrics = o.Result.Metrics
			}
		}
		docs[i] = d
	}
	return docs
}
