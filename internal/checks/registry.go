package checks

import (
	"github.com/grovehealth/appaudit/internal/audit"
)

// Options carries the tunable inputs individual checks accept. Zero values
// select each check's defaults.
type Options struct {
	// RequiredDeps overrides the required package.json dependency list.
	RequiredDeps []string

	// BrandPalette and ForbiddenColors override the style compliance lists.
	BrandPalette    map[string]string
	ForbiddenColors []string
}

// All returns every check in execution order: critical tier first, then
// high, medium, low. Tier grouping controls execution and report order only;
// scoring depends solely on each issue's severity.
func All(opts Options) []audit.Check {
	return []audit.Check{
		// Critical tier: compilation, dependencies, schema, routes.
		NewCompileCheck(),
		NewDependenciesCheck(opts.RequiredDeps),
		NewSchemaCheck(),
		NewRoutesCheck(),

		// High tier: imports, structure, hook usage, type safety.
		NewImportsCheck(),
		NewComponentsCheck(),
		NewHooksCheck(),
		NewTypeSafetyCheck(),

		// Medium tier: style, configuration, environment.
		NewColorsCheck(opts.BrandPalette, opts.ForbiddenColors),
		NewConfigurationCheck(),
		NewEnvironmentCheck(),

		// Low tier: quality, documentation.
		NewQualityCheck(),
		NewDocumentationCheck(),
	}
}
