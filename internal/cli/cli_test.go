package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/me/cpusim/internal/config"
	"github.com/me/cpusim/internal/render"
	"github.com/me/cpusim/internal/scheduler"
	"github.com/me/cpusim/internal/server"
	"github.com/me/cpusim/pkg/model"
)

const sampleBatch = `2
2 FCFS
0 5 0
1 3 0
2 SRTF
0 5 0
1 3 0
`

// isolateEnv keeps the host environment from leaking into config loading.
func isolateEnv(t *testing.T) {
	t.Helper()
	t.Setenv(config.EnvConfigPath, "")
	t.Setenv(config.EnvAddr, "")
}

func runCLI(t *testing.T, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	isolateEnv(t)
	root := NewRootCmd()

	var out, errBuf bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errBuf)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)

	err = root.Execute()
	return out.String(), errBuf.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestRunCommand_File(t *testing.T) {
	path := writeFile(t, "batch.txt", sampleBatch)

	out, _, err := runCLI(t, "", "run", path)
	if err != nil {
		t.Fatalf("run error: %v", err)
	}
	want := "1\n0 1 5X\n5 2 3X\n2\n0 1 1\n1 2 3X\n4 1 4X\n"
	if diff := cmp.Diff(want, out); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestRunCommand_StdinYAMLAsJSON(t *testing.T) {
	in := `cases:
  - name: rr
    policy: RR
    quantum: 2
    jobs:
      - {arrival: 0, duration: 4}
      - {arrival: 2, duration: 2}
`
	out, _, err := runCLI(t, in, "run", "--format", "json", "--metrics", "--jobs", "1")
	if err != nil {
		t.Fatalf("run error: %v", err)
	}

	var docs []render.CaseDocument
	if err := json.Unmarshal([]byte(out), &docs); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, out)
	}
	if len(docs) != 1 {
		t.Fatalf("cases = %d, want 1", len(docs))
	}
	want := []model.Burst{
		{Start: 0, ID: 1, Duration: 2},
		{Start: 2, ID: 2, Duration: 2, Terminates: true},
		{Start: 4, ID: 1, Duration: 2, Terminates: true},
	}
	if diff := cmp.Diff(want, docs[0].Bursts); diff != "" {
		t.Errorf("bursts mismatch (-want +got):\n%s", diff)
	}
	if docs[0].Metrics == nil || docs[0].Metrics.Makespan != 6 {
		t.Errorf("metrics = %+v, want makespan 6", docs[0].Metrics)
	}
}

func TestRunCommand_ConfigOutput(t *testing.T) {
	batchPath := writeFile(t, "batch.txt", sampleBatch)
	cfgPath := writeFile(t, "cpusim.yaml", "output: table\n")

	out, _, err := runCLI(t, "", "--config", cfgPath, "run", batchPath)
	if err != nil {
		t.Fatalf("run error: %v", err)
	}
	upper := strings.ToUpper(out)
	for _, want := range []string{"CASE 1: FIRST-COME FIRST-SERVED", "START", "DURATION"} {
		if !strings.Contains(upper, want) {
			t.Errorf("expected %q in table output, got:\n%s", want, out)
		}
	}
}

func TestRunCommand_Errors(t *testing.T) {
	tests := []struct {
		name  string
		stdin string
		args  []string
	}{
		{"missing file", "", []string{"run", filepath.Join(t.TempDir(), "missing.txt")}},
		{"malformed batch", "1\n1 FCFS\n0 x 0\n", []string{"run"}},
		{"unknown format", sampleBatch, []string{"run", "--format", "xml"}},
		{"bad log format", sampleBatch, []string{"--log-format", "xml", "run"}},
		{"missing config", sampleBatch, []string{"--config", filepath.Join(t.TempDir(), "nope.yaml"), "run"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := runCLI(t, tt.stdin, tt.args...); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestSimulateCommand(t *testing.T) {
	out, _, err := runCLI(t, "", "simulate", "--policy", "srtf", "--job", "0,5", "--job", "1,3")
	if err != nil {
		t.Fatalf("simulate error: %v", err)
	}
	want := "1\n0 1 1\n1 2 3X\n4 1 4X\n"
	if diff := cmp.Diff(want, out); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestSimulateCommand_DefaultQuantum(t *testing.T) {
	cfgPath := writeFile(t, "cpusim.yaml", "default_quantum: 2\n")
	out, _, err := runCLI(t, "", "--config", cfgPath, "simulate", "-p", "RR", "--job", "0,4", "--job", "2,2")
	if err != nil {
		t.Fatalf("simulate error: %v", err)
	}
	want := "1\n0 1 2\n2 2 2X\n4 1 2X\n"
	if diff := cmp.Diff(want, out); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestSimulateCommand_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing policy", []string{"simulate", "--job", "0,1"}},
		{"unknown policy", []string{"simulate", "--policy", "EDF", "--job", "0,1"}},
		{"rr without quantum", []string{"simulate", "--policy", "RR", "--job", "0,1"}},
		{"malformed job", []string{"simulate", "--policy", "FCFS", "--job", "0"}},
		{"non-numeric job", []string{"simulate", "--policy", "FCFS", "--job", "0,a"}},
		{"invalid job", []string{"simulate", "--policy", "FCFS", "--job", "0,0"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := runCLI(t, "", tt.args...); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestSimulateCommand_Remote(t *testing.T) {
	srvLogger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelError}))
	srv := server.New(config.Default(), scheduler.NewLoop(srvLogger), srvLogger)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	out, _, err := runCLI(t, "", "simulate", "--server", ts.URL, "--policy", "P",
		"--job", "0,4,3", "--job", "1,2,1", "--job", "2,1,2")
	if err != nil {
		t.Fatalf("simulate error: %v", err)
	}
	want := "1\n0 1 1\n1 2 2X\n3 3 1X\n4 1 3X\n"
	if diff := cmp.Diff(want, out); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}

	_, _, err = runCLI(t, "", "simulate", "--server", ts.URL, "--policy", "EDF", "--job", "0,1")
	if err == nil || !strings.Contains(err.Error(), string(model.ErrValidation)) {
		t.Errorf("expected validation error from server, got %v", err)
	}
}

func TestPoliciesCommand(t *testing.T) {
	out, _, err := runCLI(t, "", "policies")
	if err != nil {
		t.Fatalf("policies error: %v", err)
	}
	for _, want := range []string{"FCFS", "SRTF", "round-robin", "shortest remaining time first"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output, got:\n%s", want, out)
		}
	}
}

func TestDebugFlag(t *testing.T) {
	_, stderr, err := runCLI(t, "", "--debug", "simulate", "--policy", "SRTF", "--job", "0,5", "--job", "1,3")
	if err != nil {
		t.Fatalf("simulate error: %v", err)
	}
	if !strings.Contains(stderr, "level=DEBUG") || !strings.Contains(stderr, "msg=preempted") {
		t.Errorf("expected debug scheduler logs, got: %s", stderr)
	}
}

func TestServeCommand_Shutdown(t *testing.T) {
	isolateEnv(t)
	root := NewRootCmd()
	var errBuf bytes.Buffer
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&errBuf)
	root.SetArgs([]string{"serve", "--addr", "127.0.0.1:0"})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(100 * time.Millisecond)
		cancel()
	}()

	if err := root.ExecuteContext(ctx); err != nil {
		t.Fatalf("serve error: %v", err)
	}
	if !strings.Contains(errBuf.String(), "server stopped") {
		t.Errorf("expected shutdown log, got: %s", errBuf.String())
	}
}
