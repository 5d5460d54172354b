// Package batch reads simulation cases from text or YAML input and
// evaluates them.
package batch

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/me/cpusim/internal/scheduler"
	"github.com/me/cpusim/pkg/model"
)

// Case is one independent set of jobs run under one policy.
type Case struct {
	Name    string            `json:"name" yaml:"name"`
	Options scheduler.Options `json:"options" yaml:"options"`
	Jobs    []model.Job       `json:"jobs" yaml:"jobs"`
}

// Batch is an ordered list of cases.
type Batch struct {
	Cases []Case
}

// maxPrealloc caps capacity hints taken from counts in the input.
const maxPrealloc = 1024

// ParseError reports malformed batch input. Text input sets Line; YAML input
// sets Case (1-based) once the document itself has been decoded.
type ParseError struct {
	Line int
	Case int
	Msg  string
	Err  error
}

func (e *ParseError) Error() string {
	var where string
	switch {
	case e.Line > 0:
		where = fmt.Sprintf("line %d: ", e.Line)
	case e.Case > 0:
		where = fmt.Sprintf("case %d: ", e.Case)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s%s: %v", where, e.Msg, e.Err)
	}
	return where + e.Msg
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parse reads a batch in either format. Input whose first significant token
// is an integer is read as text, anything else as YAML.
func Parse(r io.Reader) (*Batch, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read batch: %w", err)
	}
	if looksLikeText(data) {
		return ParseText(bytes.NewReader(data))
	}
	return ParseYAML(data)
}

func looksLikeText(data []byte) bool {
	for _, line := range strings.Split(string(data), "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		_, err := strconv.Atoi(fields[0])
		return err == nil
	}
	return false
}

// lineReader yields non-blank, non-comment lines with their 1-based line numbers.
type lineReader struct {
	sc   *bufio.Scanner
	line int
}

func (lr *lineReader) next() ([]string, error) {
	for lr.sc.Scan() {
		lr.line++
		fields := strings.Fields(lr.sc.Text())
		if len(fields) > 0 && !strings.HasPrefix(fields[0], "#") {
			return fields, nil
		}
	}
	if err := lr.sc.Err(); err != nil {
		return nil, err
	}
	return nil, &ParseError{Line: lr.line, Msg: "unexpected end of input"}
}

func (lr *lineReader) ints(fields []string, want int) ([]int, error) {
	if len(fields) < want {
		return nil, &ParseError{Line: lr.line, Msg: fmt.Sprintf("expected %d values, got %d", want, len(fields))}
	}
	out := make([]int, want)
	for i := 0; i < want; i++ {
		v, err := strconv.Atoi(fields[i])
		if err != nil {
			return nil, &ParseError{Line: lr.line, Msg: fmt.Sprintf("value %q is not an integer", fields[i])}
		}
		out[i] = v
	}
	return out, nil
}

// ParseText reads the line format
//
//	T
//	N POLICY [QUANTUM]
//	ARRIVAL DURATION PRIORITY   (N lines)
//	...
//
// where QUANTUM is read only for round-robin. Job ids are assigned 1..N in
// input order.
func ParseText(r io.Reader) (*Batch, error) {
	lr := &lineReader{sc: bufio.NewScanner(r)}

	fields, err := lr.next()
	if err != nil {
		return nil, err
	}
	header, err := lr.ints(fields, 1)
	if err != nil {
		return nil, err
	}
	count := header[0]
	if count < 0 {
		return nil, &ParseError{Line: lr.line, Msg: "negative case count"}
	}

	b := &Batch{Cases: make([]Case, 0, min(count, maxPrealloc))}
	for c := 1; c <= count; c++ {
		fields, err := lr.next()
		if err != nil {
			return nil, err
		}
		if len(fields) < 2 {
			return nil, &ParseError{Line: lr.line, Msg: "expected job count and policy"}
		}
		n, err := lr.ints(fields[:1], 1)
		if err != nil {
			return nil, err
		}
		if n[0] < 0 {
			return nil, &ParseError{Line: lr.line, Msg: "negative job count"}
		}
		policy, err := model.ParsePolicy(fields[1])
		if err != nil {
			return nil, &ParseError{Line: lr.line, Msg: "bad policy", Err: err}
		}
		opts := scheduler.Options{Policy: policy}
		if policy.Sliced() {
			if len(fields) < 3 {
				return nil, &ParseError{Line: lr.line, Msg: "missing quantum", Err: &model.MissingQuantumError{Policy: policy}}
			}
			q, err := lr.ints(fields[2:3], 1)
			if err != nil {
				return nil, err
			}
			opts.Quantum = q[0]
		}
		if err := opts.Validate(); err != nil {
			return nil, &ParseError{Line: lr.line, Msg: "bad case header", Err: err}
		}

		jobs := make([]model.Job, 0, min(n[0], maxPrealloc))
		for i := 1; i <= n[0]; i++ {
			fields, err := lr.next()
			if err != nil {
				return nil, err
			}
			v, err := lr.ints(fields, 3)
			if err != nil {
				return nil, err
			}
			j := model.Job{ID: i, Arrival: v[0], Duration: v[1], Priority: v[2]}
			if err := j.Validate(); err != nil {
				return nil, &ParseError{Line: lr.line, Msg: "bad job", Err: err}
			}
			jobs = append(jobs, j)
		}

		b.Cases = append(b.Cases, Case{Name: strconv.Itoa(c), Options: opts, Jobs: jobs})
	}
	return b, nil
}

type yamlBatch struct {
	Cases []struct {
		Name    string           `yaml:"name"`
		Policy  string           `yaml:"policy"`
		Quantum int              `yaml:"quantum"`
		Jobs    []model.JobInput `yaml:"jobs"`
	} `yaml:"cases"`
}

// ParseYAML reads a batch document of the form
//
//	cases:
//	  - name: demo
//	    policy: RR
//	    quantum: 2
//	    jobs:
//	      - {arrival: 0, duration: 4, priority: 1}
func ParseYAML(data []byte) (*Batch, error) {
	var doc yamlBatch
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &ParseError{Msg: "malformed yaml batch", Err: err}
	}

	b := &Batch{Cases: make([]Case, 0, len(doc.Cases))}
	for i, c := range doc.Cases {
		policy, err := model.ParsePolicy(c.Policy)
		if err != nil {
			return nil, &ParseError{Case: i + 1, Msg: "bad policy", Err: err}
		}
		opts := scheduler.Options{Policy: policy, Quantum: c.Quantum}
		if err := opts.Validate(); err != nil {
			return nil, &ParseError{Case: i + 1, Msg: "bad case header", Err: err}
		}
		jobs := model.ToJobs(c.Jobs)
		for _, j := range jobs {
			if err := j.Validate(); err != nil {
				return nil, &ParseError{Case: i + 1, Msg: "bad job", Err: err}
			}
		}
		name := c.Name
		if name == "" {
			name = strconv.Itoa(i + 1)
		}
		b.Cases = append(b.Cases, Case{Name: name, Options: opts, Jobs: jobs})
	}
	return b, nil
}
