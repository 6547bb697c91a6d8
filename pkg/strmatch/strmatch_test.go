package strmatch

import "testing"

func TestMatches(t *testing.T) {
	cases := []struct {
		subject string
		pattern Pattern
		want    bool
	}{
		{"water", Exact("water"), true},
		{"water", Exact("wat"), false},
		{"", Exact(""), true},
		{"anything", Any(), true},
		{"", Any(), true},
		{"road_label", Pattern{Value: "road", Mode: ModePrefix}, true},
		{"minor_road", Pattern{Value: "road", Mode: ModePrefix}, false},
		{"minor_road", Pattern{Value: "road", Mode: ModeSuffix}, true},
		{"road_label", Pattern{Value: "road", Mode: ModeSuffix}, false},
		{"major_road_label", Pattern{Value: "road", Mode: ModeContains}, true},
		{"buildings", Pattern{Value: "road", Mode: ModeContains}, false},
	}
	for _, c := range cases {
		if got := Matches(c.subject, c.pattern); got != c.want {
			t.Errorf("Matches(%q, %v %q) = %v, want %v", c.subject, c.pattern.Mode, c.pattern.Value, got, c.want)
		}
	}
}

func TestParseMode(t *testing.T) {
	for in, want := range map[string]Mode{
		"":         ModeExact,
		"exact":    ModeExact,
		"match":    ModeExact,
		"any":      ModeAny,
		"Prefix":   ModePrefix,
		"postfix":  ModeSuffix,
		"endswith": ModeSuffix,
		"contains": ModeContains,
	} {
		got, err := ParseMode(in)
		if err != nil {
			t.Fatalf("ParseMode(%q): %v", in, err)
		}
		if got != want {
			t.Errorf("ParseMode(%q) = %v, want %v", in, got, want)
		}
	}
	if _, err := ParseMode("glob"); err == nil {
		t.Error("ParseMode(glob): expected error")
	}
}

func TestIsLiteral(t *testing.T) {
	if Any().IsLiteral() {
		t.Error("any-mode pattern must not report a literal")
	}
	if !Exact("poi").IsLiteral() {
		t.Error("exact pattern should report a literal")
	}
}
