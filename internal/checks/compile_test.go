package checks

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovehealth/appaudit/internal/audit"
)

func fakeCompiler(exitCode int, stderr string, err error) CommandRunner {
	return func(_ context.Context, _, _ string, _ ...string) (int, string, string, error) {
		return exitCode, "", stderr, err
	}
}

func TestCompileCheck_CleanBuild(t *testing.T) {
	check := &CompileCheck{Runner: fakeCompiler(0, "", nil)}
	issues, err := check.Run(context.Background(), captureTree(t, nil))
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestCompileCheck_ParsesDiagnostics(t *testing.T) {
	stderr := "client/src/App.tsx(14,5): error TS2304: Cannot find name 'useQuery'.\n" +
		"server/routes.ts(3,1): error TS1005: ';' expected.\n" +
		"some garbage the compiler printed\n" +
		"Found 2 errors.\n"

	check := &CompileCheck{Runner: fakeCompiler(2, stderr, nil)}
	issues, err := check.Run(context.Background(), captureTree(t, nil))
	require.NoError(t, err)

	// Non-matching lines and the Found summary are silently dropped.
	require.Len(t, issues, 2)

	assert.Equal(t, "client/src/App.tsx", issues[0].File)
	assert.Equal(t, 14, issues[0].Line)
	assert.Equal(t, audit.SeverityCritical, issues[0].Severity)
	assert.Equal(t, "TypeScript", issues[0].Category)
	assert.Contains(t, issues[0].Description, "Cannot find name 'useQuery'")

	assert.Equal(t, "server/routes.ts", issues[1].File)
	assert.Equal(t, 3, issues[1].Line)
}

func TestCompileCheck_ToolInvocationFailure(t *testing.T) {
	check := &CompileCheck{Runner: fakeCompiler(-1, "", fmt.Errorf("npx: executable not found"))}
	issues, err := check.Run(context.Background(), captureTree(t, nil))
	require.NoError(t, err, "invocation failure is a finding, not an error")

	require.Len(t, issues, 1)
	assert.Equal(t, audit.SeverityCritical, issues[0].Severity)
	assert.Contains(t, issues[0].Description, "Failed to run TypeScript compiler")
	assert.Contains(t, issues[0].Description, "executable not found")
}

func TestParseDiagnostic(t *testing.T) {
	tests := []struct {
		name string
		line string
		ok   bool
	}{
		{"well formed", "a/b.ts(10,2): error TS1234: boom", true},
		{"missing code", "a/b.ts(10,2): oops", false},
		{"warning not error", "a/b.ts(10,2): warning TS1: meh", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := parseDiagnostic(tt.line)
			assert.Equal(t, tt.ok, ok)
		})
	}
}
