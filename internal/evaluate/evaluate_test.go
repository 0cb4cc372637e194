// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package evaluate

import (
	"reflect"
	"testing"

	"github.com/pdiddy/deep-research/pkg/types"
)

func TestExtractURLs(t *testing.T) {
	tests := []struct {
		name    string
		finding string
		want    []string
	}{
		{
			name:    "plain urls",
			finding: "See https://arxiv.org/abs/2301.07041 and http://example.com/page for details.",
			want:    []string{"https://arxiv.org/abs/2301.07041", "http://example.com/page"},
		},
		{
			name:    "markdown link terminates at paren",
			finding: "Reported in [the paper](https://www.nature.com/articles/s41586-024-1) today.",
			want:    []string{"https://www.nature.com/articles/s41586-024-1"},
		},
		{
			name:    "bracket citation terminates at bracket",
			finding: "Key result [https://www.nasa.gov/fusion] was confirmed.",
			want:    []string{"https://www.nasa.gov/fusion"},
		},
		{
			name:    "duplicates and order preserved",
			finding: "https://a.com then https://b.com then https://a.com again",
			want:    []string{"https://a.com", "https://b.com", "https://a.com"},
		},
		{
			name:    "no urls",
			finding: "No citations here, only prose about ftp://old.server paths.",
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractURLs(tt.finding)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractURLs() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name        string
		finding     string
		wantScore   float64
		wantStatus  types.VerdictStatus
		wantTotal   int
		wantTrusted int
	}{
		{
			name:       "zero urls scores zero and fails",
			finding:    "No sources cited.",
			wantScore:  0.0,
			wantStatus: types.VerdictFail,
		},
		{
			name: "exactly half is a fail",
			finding: "Sources: https://arxiv.org/abs/2301.07041 and " +
				"https://randomblog.example.com/post",
			wantScore:   0.5,
			wantStatus:  types.VerdictFail,
			wantTotal:   2,
			wantTrusted: 1,
		},
		{
			name: "three of four passes",
			finding: "https://arxiv.org/abs/1 https://www.nature.com/a " +
				"https://web.mit.edu/report https://example.com/blog",
			wantScore:   0.75,
			wantStatus:  types.VerdictPass,
			wantTotal:   4,
			wantTrusted: 3,
		},
		{
			name:        "all trusted passes",
			finding:     "https://science.org/doi/1 and https://www.nasa.gov/press",
			wantScore:   1.0,
			wantStatus:  types.VerdictPass,
			wantTotal:   2,
			wantTrusted: 2,
		},
		{
			name:        "duplicates count individually",
			finding:     "https://arxiv.org/abs/1 https://arxiv.org/abs/1 https://example.com",
			wantScore:   2.0 / 3.0,
			wantStatus:  types.VerdictPass,
			wantTotal:   3,
			wantTrusted: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Evaluate(tt.finding)
			if v.Score != tt.wantScore {
				t.Errorf("Score = %v, want %v", v.Score, tt.wantScore)
			}
			if v.Status != tt.wantStatus {
				t.Errorf("Status = %v, want %v", v.Status, tt.wantStatus)
			}
			if v.TotalURLs != tt.wantTotal {
				t.Errorf("TotalURLs = %d, want %d", v.TotalURLs, tt.wantTotal)
			}
			if v.TrustedURLs != tt.wantTrusted {
				t.Errorf("TrustedURLs = %d, want %d", v.TrustedURLs, tt.wantTrusted)
			}
		})
	}
}

func TestTrustedIsSubstringMatch(t *testing.T) {
	// Containment match per policy: subdomains and path mentions both count.
	if !Trusted("https://export.arxiv.org/abs/1") {
		t.Error("subdomain of a preferred domain should be trusted")
	}
	if Trusted("https://example.com/why-i-like-arxiv") {
		// Path does not contain "arxiv.org", so this stays untrusted.
		t.Error("unrelated host should not be trusted")
	}
}
