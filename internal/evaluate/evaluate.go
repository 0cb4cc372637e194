// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package evaluate scores a research finding's citation set against a fixed
// credibility policy. Evaluation is observational: verdicts inform the
// operator but never gate or alter downstream processing.
package evaluate

import (
	"regexp"
	"strings"

	"github.com/pdiddy/deep-research/pkg/types"
)

// urlPattern matches embedded citation URLs: http or https, terminated by
// whitespace or a closing bracket/parenthesis.
var urlPattern = regexp.MustCompile(`https?://[^\s)\]]+`)

// preferredDomains is the allow-list of trusted citation domains. Matching
// is substring containment, not strict domain equality.
var preferredDomains = []string{
	"arxiv.org",
	"nature.com",
	"nasa.gov",
	"science.org",
	"mit.edu",
}

// passThreshold is the credibility cut-off. A score of exactly 0.5 fails;
// the comparison is strictly greater.
const passThreshold = 0.5

// ExtractURLs returns every URL embedded in the finding text, preserving
// duplicates and order of appearance.
func ExtractURLs(finding string) []string {
	return urlPattern.FindAllString(finding, -1)
}

// Trusted reports whether the URL contains any preferred domain.
func Trusted(url string) bool {
	for _, dom := range preferredDomains {
		if strings.Contains(url, dom) {
			return true
		}
	}
	return false
}

// Evaluate computes the credibility verdict for one finding. A finding with
// zero URLs scores 0.0 by definition.
func Evaluate(finding string) types.Verdict {
	urls := ExtractURLs(finding)

	trusted := 0
	for _, u := range urls {
		if Trusted(u) {
			trusted++
		}
	}

	score := 0.0
	if len(urls) > 0 {
		score = float64(trusted) / float64(len(urls))
	}

	status := types.VerdictFail
	if score > passThreshold {
		status = types.VerdictPass
	}

	return types.Verdict{
		Score:       score,
		Status:      status,
		TotalURLs:   len(urls),
		TrustedURLs: trusted,
	}
}
