package artifact

import (
	"testing"
)

func TestParseSystem(t *testing.T) {
	for _, sys := range AllSystems() {
		got, err := ParseSystem(string(sys))
		if err != nil {
			t.Fatalf("ParseSystem(%q): %v", sys, err)
		}
		if got != sys {
			t.Errorf("got %q, want %q", got, sys)
		}
	}

	if _, err := ParseSystem("riscv64-linux"); err == nil {
		t.Fatal("expected error for unknown system")
	}
}

func TestOutputPath(t *testing.T) {
	got := OutputPath(DefaultOutputRoot, DefaultNamespace, ID("abc123"))
	want := "/var/lib/vorpal/store/artifact/output/library/abc123"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestHashContentDeterministic(t *testing.T) {
	a := HashContent([]byte("theme = tokyonight"))
	b := HashContent([]byte("theme = tokyonight"))
	if a != b {
		t.Fatalf("digest not stable: %s != %s", a, b)
	}
	if len(a) != 64 {
		t.Errorf("digest length = %d, want 64", len(a))
	}
	if HashContent([]byte("theme = other")) == a {
		t.Error("different content produced same digest")
	}
}

func TestHashStepCoversEveryInput(t *testing.T) {
	base := Step{
		Name:    "ghostty",
		Systems: []System{Aarch64Darwin},
		Script:  "echo hi",
		Sources: []Source{{Name: "src", Files: map[string]string{"a": "1"}}},
	}
	id := HashStep(base)

	variants := map[string]Step{
		"name":    {Name: "other", Systems: base.Systems, Script: base.Script, Sources: base.Sources},
		"systems": {Name: base.Name, Systems: []System{X8664Linux}, Script: base.Script, Sources: base.Sources},
		"script":  {Name: base.Name, Systems: base.Systems, Script: "echo bye", Sources: base.Sources},
		"sources": {Name: base.Name, Systems: base.Systems, Script: base.Script, Sources: []Source{{Name: "src", Files: map[string]string{"a": "2"}}}},
	}
	for field, step := range variants {
		if HashStep(step) == id {
			t.Errorf("changing %s did not change the id", field)
		}
	}
}

func TestHashStepFieldBoundaries(t *testing.T) {
	a := HashStep(Step{Name: "ab", Script: "c"})
	b := HashStep(Step{Name: "a", Script: "bc"})
	if a == b {
		t.Error("adjacent fields ran together")
	}
}

func TestHashStepListBoundaries(t *testing.T) {
	tests := []struct {
		name string
		a, b Step
	}{
		{
			name: "system shifted into script",
			a:    Step{Name: "n", Systems: []System{"echo"}},
			b:    Step{Name: "n", Script: "echo", Sources: []Source{{Name: ""}}},
		},
		{
			name: "files read as further sources",
			a:    Step{Sources: []Source{{Name: "a", Files: map[string]string{"b": "c"}}}},
			b:    Step{Sources: []Source{{Name: "a"}, {Name: "b"}, {Name: "c"}}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if HashStep(tt.a) == HashStep(tt.b) {
				t.Error("steps with different lists share an id")
			}
		})
	}
}

func TestIDValid(t *testing.T) {
	for _, id := range []ID{"3f1c", "a", "user-bat.config_1", "..a"} {
		if !id.Valid() {
			t.Errorf("%q should be valid", id)
		}
	}
	for _, id := range []ID{"", ".", "..", "../x", "a/b", `a\b`, "a b", "é"} {
		if id.Valid() {
			t.Errorf("%q should be invalid", id)
		}
	}
}

func TestHashContentDiffersFromStep(t *testing.T) {
	if string(HashStep(Step{})) == HashContent(nil) {
		t.Error("content and step domains collided")
	}
}
