package mongo

import (
	"regexp"
	"testing"
)

func TestExactFoldEscapesMetacharacters(t *testing.T) {
	cases := []struct {
		name  string
		value string
		match string
		skip  string
	}{
		{name: "plain", value: "Amsterdam", match: "amsterdam", skip: "amsterdam-noord"},
		{name: "paren", value: "a(b", match: "a(b", skip: "ab"},
		{name: "dot", value: "a.b", match: "a.b", skip: "axb"},
		{name: "alternation", value: "x|y", match: "x|y", skip: "x"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			filter := exactFold(tc.value)
			pattern, ok := filter["$regex"].(string)
			if !ok {
				t.Fatalf("missing $regex in %v", filter)
			}
			re, err := regexp.Compile("(?i)" + pattern)
			if err != nil {
				t.Fatalf("pattern %q does not compile: %v", pattern, err)
			}
			if !re.MatchString(tc.match) {
				t.Fatalf("pattern %q should match %q", pattern, tc.match)
			}
			if re.MatchString(tc.skip) {
				t.Fatalf("pattern %q should not match %q", pattern, tc.skip)
			}
		})
	}
}
