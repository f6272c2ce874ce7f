package audit

// Score converts an issue list into counts by severity and a pass rate.
//
// The pass rate is 100.0 for an empty issue list. Otherwise it is
//
//	max(0, (total - critical - high) / total * 100)
//
// MEDIUM and LOW issues contribute to the denominator but never subtract
// from the numerator, so a project with zero CRITICAL/HIGH issues scores
// 100 no matter how many MEDIUM/LOW findings exist. The pass rate measures
// blocking problems only.
func Score(issues []Issue) (map[Severity]int, float64) {
	counts := make(map[Severity]int, len(Severities))
	for _, issue := range issues {
		counts[issue.Severity]++
	}

	total := len(issues)
	if total == 0 {
		return counts, 100.0
	}

	blocking := counts[SeverityCritical] + counts[SeverityHigh]
	rate := float64(total-blocking) / float64(total) * 100
	if rate < 0 {
		rate = 0
	}
	return counts, rate
}
