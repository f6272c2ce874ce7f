package checks

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/grovehealth/appaudit/internal/audit"
	"github.com/grovehealth/appaudit/internal/snapshot"
)

// defaultBrandPalette is the allow-list. It is only quoted in remediation
// text; compliance is judged by the deny-list below.
var defaultBrandPalette = map[string]string{
	"ivory":       "#F2F3F1",
	"sage":        "#8EA58C",
	"moss":        "#738A6E",
	"evergreen":   "#344C3D",
	"french_blue": "#88A5BC",
}

// defaultForbiddenColors are substrings that indicate off-palette styling.
var defaultForbiddenColors = []string{
	"#ff", "#00", "#blue", "#red", "#green", "#yellow", "#purple", "#pink",
	"blue-", "red-", "green-", "yellow-", "purple-", "pink-", "indigo-", "violet-",
}

// tailwindColorClass matches className attributes carrying an off-palette
// Tailwind color utility.
var tailwindColorClass = regexp.MustCompile(`className=['"][^'"]*(?:bg-|text-|border-)(blue|red|green|yellow|purple|pink|indigo|violet)[^'"]*['"]`)

// ColorsCheck enforces the brand palette: stylesheet lines containing a
// deny-listed substring and component class names using off-palette Tailwind
// colors are both flagged MEDIUM.
type ColorsCheck struct {
	Palette   map[string]string
	Forbidden []string
}

// NewColorsCheck creates the check with the default palette and deny-list.
func NewColorsCheck(palette map[string]string, forbidden []string) *ColorsCheck {
	if len(palette) == 0 {
		palette = defaultBrandPalette
	}
	if len(forbidden) == 0 {
		forbidden = defaultForbiddenColors
	}
	return &ColorsCheck{Palette: palette, Forbidden: forbidden}
}

// Name implements audit.Check.
func (c *ColorsCheck) Name() string { return "colors" }

// Category implements audit.Check.
func (c *ColorsCheck) Category() string { return "Brand Colors" }

// Tier implements audit.Check.
func (c *ColorsCheck) Tier() audit.Tier { return audit.TierMedium }

// Run implements audit.Check.
func (c *ColorsCheck) Run(_ context.Context, snap *snapshot.Snapshot) ([]audit.Issue, error) {
	var issues []audit.Issue
	for _, pattern := range []string{"*.css", "*.scss", "*.sass"} {
		for _, rel := range snap.Match(pattern) {
			issues = append(issues, c.checkStylesheet(snap, rel)...)
		}
	}
	for _, rel := range sourceFiles(snap) {
		issues = append(issues, c.checkClassNames(snap, rel)...)
	}
	return issues, nil
}

// checkStylesheet flags every line containing a deny-listed substring.
func (c *ColorsCheck) checkStylesheet(snap *snapshot.Snapshot, rel string) []audit.Issue {
	content, ok := snap.Read(rel)
	if !ok {
		return nil
	}
	var issues []audit.Issue
	for i, line := range strings.Split(content, "\n") {
		lower := strings.ToLower(line)
		for _, forbidden := range c.Forbidden {
			if !strings.Contains(lower, forbidden) {
				continue
			}
			issues = append(issues, audit.Issue{
				File:        rel,
				Line:        i + 1,
				Severity:    audit.SeverityMedium,
				Category:    c.Category(),
				Description: fmt.Sprintf("Non-brand color found: %s", forbidden),
				Remediation: fmt.Sprintf("Replace with brand colors: %s", c.paletteList()),
			})
		}
	}
	return issues
}

// checkClassNames flags off-palette Tailwind utilities in class attributes.
func (c *ColorsCheck) checkClassNames(snap *snapshot.Snapshot, rel string) []audit.Issue {
	content, ok := snap.Read(rel)
	if !ok {
		return nil
	}
	var issues []audit.Issue
	for _, m := range tailwindColorClass.FindAllStringSubmatch(content, -1) {
		issues = append(issues, audit.Issue{
			File:        rel,
			Severity:    audit.SeverityMedium,
			Category:    c.Category(),
			Description: fmt.Sprintf("Non-brand Tailwind color: %s", m[1]),
			Remediation: "Replace with brand color classes or custom styles",
		})
	}
	return issues
}

// paletteList renders the allow-list hex values in stable order.
func (c *ColorsCheck) paletteList() string {
	names := make([]string, 0, len(c.Palette))
	for name := range c.Palette {
		names = append(names, name)
	}
	sort.Strings(names)
	values := make([]string, len(names))
	for i, name := range names {
		values[i] = c.Palette[name]
	}
	return strings.Join(values, ", ")
}
