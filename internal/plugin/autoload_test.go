package plugin

import "testing"

func TestResolveAutoload(t *testing.T) {
	tags := []string{"gef", "heavy"}

	tests := []struct {
		name string
		raw  any
		want bool
	}{
		{"bool true", true, true},
		{"bool false", false, false},
		{"int nonzero", 2, true},
		{"int zero", 0, false},
		{"int64 nonzero", int64(1), true},
		{"uint8 zero", uint8(0), false},
		{"nil", nil, false},
		{"float", 1.0, false},
		{"slice", []string{"all"}, false},
		{"empty string", "", false},
		{"all", "all", true},
		{"TRUE uppercase", "TRUE", true},
		{"one", "1", true},
		{"none", "none", false},
		{"zero", "0", false},
		{"own name", "gef", true},
		{"own name folded", "GEF", true},
		{"group", "heavy", true},
		{"other plugin", "pwndbg", false},
		{"all except group", "all,-heavy", false},
		{"group excluded then all", "-heavy,all", true},
		{"all then none", "all,none", false},
		{"none then name", "none,gef", true},
		{"unknown tokens ignored", "bogus,all,whatever", true},
		{"spaces trimmed", " all , -gef ", false},
		{"empty tokens", ",,all,,", true},
		{"substring is not a match", "allx,gefx", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveAutoload(tt.raw, tags); got != tt.want {
				t.Errorf("ResolveAutoload(%#v, %v) = %v, want %v", tt.raw, tags, got, tt.want)
			}
		})
	}
}

func TestResolveAutoload_EmptyTagNeverMatches(t *testing.T) {
	if ResolveAutoload("x", []string{""}) {
		t.Error("expected empty tag to be ignored")
	}
}
