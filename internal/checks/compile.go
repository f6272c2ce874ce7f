// Package checks contains the rule checks the audit runner executes. Every
// check is a stateless heuristic: it flags suspicious patterns by token,
// substring, or regex matching, and makes no claim of proof. Recoverable
// conditions (missing or unreadable files, unparsable configs) are handled
// inside each check and never abort a run.
package checks

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"strings"

	"github.com/grovehealth/appaudit/internal/audit"
	"github.com/grovehealth/appaudit/internal/snapshot"
)

// tscDiagnostic matches one TypeScript compiler error line:
// <path>(<line>,<col>): error TS<code>: <message>
var tscDiagnostic = regexp.MustCompile(`^(.+?)\((\d+),\d+\): error TS\d+: (.+)$`)

// CommandRunner executes an external tool in a working directory and returns
// its exit code and captured output. A non-nil error means the tool could not
// be invoked at all, as opposed to running and exiting nonzero.
type CommandRunner func(ctx context.Context, dir, name string, args ...string) (exitCode int, stdout, stderr string, err error)

// execRunner is the default CommandRunner backed by os/exec.
func execRunner(ctx context.Context, dir, name string, args ...string) (int, string, string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), stdout.String(), stderr.String(), nil
		}
		return -1, stdout.String(), stderr.String(), err
	}
	return 0, stdout.String(), stderr.String(), nil
}

// CompileCheck runs the TypeScript compiler in no-emit mode and converts its
// diagnostics into CRITICAL issues. Diagnostic lines that do not match the
// documented pattern are silently dropped: parsing is lossy but safe.
type CompileCheck struct {
	// Runner invokes the external compiler. Tests substitute a fake.
	Runner CommandRunner
}

// NewCompileCheck creates a compile check using the real tsc invocation.
func NewCompileCheck() *CompileCheck {
	return &CompileCheck{Runner: execRunner}
}

// Name implements audit.Check.
func (c *CompileCheck) Name() string { return "compile" }

// Category implements audit.Check.
func (c *CompileCheck) Category() string { return "TypeScript" }

// Tier implements audit.Check.
func (c *CompileCheck) Tier() audit.Tier { return audit.TierCritical }

// Run implements audit.Check.
func (c *CompileCheck) Run(ctx context.Context, snap *snapshot.Snapshot) ([]audit.Issue, error) {
	exitCode, _, stderr, err := c.Runner(ctx, snap.Root(), "npx", "tsc", "--noEmit", "--skipLibCheck")
	if err != nil {
		// The compiler could not be invoked. That is a finding, not a crash.
		return []audit.Issue{{
			File:        "tsconfig.json",
			Severity:    audit.SeverityCritical,
			Category:    c.Category(),
			Description: fmt.Sprintf("Failed to run TypeScript compiler: %v", err),
			Remediation: "Ensure TypeScript is properly installed and configured",
		}}, nil
	}
	if exitCode == 0 {
		return nil, nil
	}

	var issues []audit.Issue
	for _, line := range strings.Split(stderr, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "Found") {
			continue
		}
		if issue, ok := parseDiagnostic(line); ok {
			issues = append(issues, issue)
		}
	}
	return issues, nil
}

// parseDiagnostic converts one compiler error line into an issue. Lines that
// do not match the pattern are dropped.
func parseDiagnostic(line string) (audit.Issue, bool) {
	m := tscDiagnostic.FindStringSubmatch(line)
	if m == nil {
		return audit.Issue{}, false
	}
	lineNum, err := strconv.Atoi(m[2])
	if err != nil {
		return audit.Issue{}, false
	}
	return audit.Issue{
		File:        m[1],
		Line:        lineNum,
		Severity:    audit.SeverityCritical,
		Category:    "TypeScript",
		Description: fmt.Sprintf("Compilation error: %s", m[3]),
		Remediation: "Fix TypeScript syntax and type errors",
	}, true
}
