package models

import "strings"

// maxHeadingLength matches the width of code_submissions.heading.
const maxHeadingLength = 255

// Complexity is a Big-O estimate with a short justification.
type Complexity struct {
	Notation    string `json:"notation"`
	Explanation string `json:"explanation"`
}

// AnalysisResult is the document returned by the analysis model. When the
// analysis failed only Error is set, so the stored JSON is {"error": "..."}.
type AnalysisResult struct {
	Heading         string      `json:"heading,omitempty"`
	Summary         string      `json:"summary,omitempty"`
	LogicBreakdown  []string    `json:"logic_breakdown,omitempty"`
	PotentialIssues []string    `json:"potential_issues,omitempty"`
	TimeComplexity  *Complexity `json:"time_complexity,omitempty"`
	SpaceComplexity *Complexity `json:"space_complexity,omitempty"`
	Improvements    []string    `json:"improvements,omitempty"`
	Error           string      `json:"error,omitempty"`
}

// AnalysisError builds the failure document.
func AnalysisError(reason string) *AnalysisResult {
	return &AnalysisResult{Error: reason}
}

// Failed reports whether r is a failure document.
func (r *AnalysisResult) Failed() bool {
	return r == nil || r.Error != ""
}

// HeadingOrNil returns the trimmed heading cut to the column width, or nil
// when there is none.
func (r *AnalysisResult) HeadingOrNil() *string {
	if r.Failed() {
		return nil
	}
	h := strings.TrimSpace(r.Heading)
	if h == "" {
		return nil
	}
	if runes := []rune(h); len(runes) > maxHeadingLength {
		h = string(runes[:maxHeadingLength])
	}
	return &h
}
