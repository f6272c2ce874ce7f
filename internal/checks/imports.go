package checks

import (
	"context"
	"fmt"
	"path"
	"regexp"
	"strings"

	"github.com/grovehealth/appaudit/internal/audit"
	"github.com/grovehealth/appaudit/internal/snapshot"
)

var importSource = regexp.MustCompile(`from ['"]([^'"]+)['"]`)

// ImportsCheck resolves every relative import in the source tree against a
// fixed candidate list: the exact path, the path with each declared
// extension appended, and an index file with each extension inside the path
// treated as a directory. An import that resolves to none of them is HIGH.
type ImportsCheck struct {
	// Extensions are tried in order when the exact path does not exist.
	Extensions []string
}

// NewImportsCheck creates the check with the TypeScript extension list.
func NewImportsCheck() *ImportsCheck {
	return &ImportsCheck{Extensions: []string{".ts", ".tsx"}}
}

// Name implements audit.Check.
func (c *ImportsCheck) Name() string { return "imports" }

// Category implements audit.Check.
func (c *ImportsCheck) Category() string { return "Imports" }

// Tier implements audit.Check.
func (c *ImportsCheck) Tier() audit.Tier { return audit.TierHigh }

// Run implements audit.Check.
func (c *ImportsCheck) Run(_ context.Context, snap *snapshot.Snapshot) ([]audit.Issue, error) {
	var issues []audit.Issue
	for _, rel := range sourceFiles(snap) {
		content, ok := snap.Read(rel)
		if !ok {
			continue
		}
		issues = append(issues, c.checkFile(snap, rel, content)...)
	}
	return issues, nil
}

// checkFile scans one file's import lines and flags unresolvable relative
// imports with their 1-based line number.
func (c *ImportsCheck) checkFile(snap *snapshot.Snapshot, rel, content string) []audit.Issue {
	var issues []audit.Issue
	for i, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "import") || !strings.Contains(line, "from") {
			continue
		}
		m := importSource.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		source := m[1]
		if !strings.HasPrefix(source, "./") && !strings.HasPrefix(source, "../") {
			continue
		}
		if c.resolves(snap, rel, source) {
			continue
		}
		issues = append(issues, audit.Issue{
			File:        rel,
			Line:        i + 1,
			Severity:    audit.SeverityHigh,
			Category:    c.Category(),
			Description: fmt.Sprintf("Import path not found: %s", source),
			Remediation: "Fix import path or create missing file",
			Snippet:     line,
		})
	}
	return issues
}

// resolves reports whether any candidate for the import exists in the
// snapshot. The exact path also resolves when it names a directory, matching
// how module resolvers treat bare directory imports.
func (c *ImportsCheck) resolves(snap *snapshot.Snapshot, importer, source string) bool {
	base := path.Clean(path.Join(path.Dir(importer), source))
	if snap.IsDir(base) {
		return true
	}
	for _, candidate := range c.candidates(base) {
		if snap.Exists(candidate) {
			return true
		}
	}
	return false
}

// candidates returns the resolution order for a cleaned import path:
// exact, extension-appended, then directory index files.
func (c *ImportsCheck) candidates(base string) []string {
	out := []string{base}
	for _, ext := range c.Extensions {
		out = append(out, base+ext)
	}
	for _, ext := range c.Extensions {
		out = append(out, path.Join(base, "index"+ext))
	}
	return out
}

// sourceFiles returns every captured TypeScript/JavaScript file.
func sourceFiles(snap *snapshot.Snapshot) []string {
	var out []string
	for _, pattern := range []string{"*.ts", "*.tsx", "*.js", "*.jsx"} {
		out = append(out, snap.Match(pattern)...)
	}
	return out
}
