// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package plan

import (
	"reflect"
	"testing"
)

func TestDecodeFirstList(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
		ok   bool
	}{
		{
			name: "bare double-quoted list",
			text: `["survey the field", "identify key papers"]`,
			want: []string{"survey the field", "identify key papers"},
			ok:   true,
		},
		{
			name: "single-quoted list",
			text: `['step one', 'step two', 'step three']`,
			want: []string{"step one", "step two", "step three"},
			ok:   true,
		},
		{
			name: "list embedded in prose",
			text: "Here is your plan:\n[\"a\", \"b\"]\nGood luck!",
			want: []string{"a", "b"},
			ok:   true,
		},
		{
			name: "trailing comma",
			text: `["a", "b",]`,
			want: []string{"a", "b"},
			ok:   true,
		},
		{
			name: "escaped quotes and newlines",
			text: `["say \"hi\"", 'it\'s fine', "line\nbreak"]`,
			want: []string{`say "hi"`, "it's fine", "line\nbreak"},
			ok:   true,
		},
		{
			name: "multiline formatting",
			text: "[\n  \"first\",\n  \"second\"\n]",
			want: []string{"first", "second"},
			ok:   true,
		},
		{
			name: "empty list",
			text: `[]`,
			want: []string{},
			ok:   true,
		},
		{
			name: "first bracket invalid, later list valid",
			text: `Plan[1] follows: ["a", "b"]`,
			want: []string{"a", "b"},
			ok:   true,
		},
		{
			name: "no list at all",
			text: "I cannot produce a plan for that topic.",
			ok:   false,
		},
		{
			name: "numbers rejected",
			text: `[1, 2, 3]`,
			ok:   false,
		},
		{
			// The outer list is not a flat list of strings; the scan finds
			// the inner list, which is the first valid substring.
			name: "nested outer list skipped for inner",
			text: `[["a"], ["b"]]`,
			want: []string{"a"},
			ok:   true,
		},
		{
			name: "identifiers rejected",
			text: `[os.system, "b"]`,
			ok:   false,
		},
		{
			name: "unterminated string rejected",
			text: `["a", "b`,
			ok:   false,
		},
		{
			name: "unterminated list rejected",
			text: `["a", "b"`,
			ok:   false,
		},
		{
			name: "mismatched quotes rejected",
			text: `["a']`,
			ok:   false,
		},
		{
			name: "missing comma rejected",
			text: `["a" "b"]`,
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := DecodeFirstList(tt.text)
			if ok != tt.ok {
				t.Fatalf("DecodeFirstList(%q) ok = %v, want %v", tt.text, ok, tt.ok)
			}
			if !tt.ok {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("DecodeFirstList(%q) = %#v, want %#v", tt.text, got, tt.want)
			}
		})
	}
}
