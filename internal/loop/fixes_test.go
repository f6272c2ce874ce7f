package loop

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovehealth/appaudit/internal/audit"
)

func TestAdvisories_SeverityFirstStableOrder(t *testing.T) {
	issues := []audit.Issue{
		{Severity: audit.SeverityHigh, Category: "Dependencies", Description: "Missing required dependency: wouter"},
		{Severity: audit.SeverityCritical, Category: "TypeScript", Description: "Missing compiler output"},
		{Severity: audit.SeverityHigh, Category: "Imports", Description: "Import not found: ./util", File: "client/src/app.tsx", Line: 4},
	}

	advisories := Advisories(issues)
	require.Len(t, advisories, 3)
	assert.Equal(t, "# Fix missing dependency: Missing compiler output", advisories[0])
	assert.Equal(t, "# Fix missing dependency: Missing required dependency: wouter", advisories[1])
	assert.Equal(t, "# Fix import path in client/src/app.tsx:4", advisories[2])
}

func TestAdvisories_OnlyBlockingSeverities(t *testing.T) {
	issues := []audit.Issue{
		{Severity: audit.SeverityMedium, Category: "Brand Colors", File: "client/src/index.css"},
		{Severity: audit.SeverityLow, Category: "Dependencies", Description: "Missing start script"},
	}

	assert.Empty(t, Advisories(issues))
}

func TestAdvisories_BrandColors(t *testing.T) {
	issues := []audit.Issue{
		{Severity: audit.SeverityHigh, Category: "Brand Colors", File: "client/src/index.css"},
	}

	advisories := Advisories(issues)
	require.Len(t, advisories, 1)
	assert.Equal(t, "# Update colors in client/src/index.css to use brand palette", advisories[0])
}

func TestAdvisories_UnknownPatternsContributeNothing(t *testing.T) {
	issues := []audit.Issue{
		{Severity: audit.SeverityCritical, Category: "Database", Description: "Schema file shared/schema.ts not found"},
		{Severity: audit.SeverityHigh, Category: "React Hooks", Description: "Hook called conditionally"},
	}

	assert.Empty(t, Advisories(issues))
}

func TestAdvisories_EmptyInput(t *testing.T) {
	assert.Empty(t, Advisories(nil))
}
