package benchmark

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultCases(t *testing.T) {
	t.Parallel()

	cases, err := DefaultCases()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cases) != 4 {
		t.Fatalf("unexpected case count: %d", len(cases))
	}

	wantKeys := []string{"short_ja_to_en", "long_ja_to_en", "short_en_to_ja", "long_en_to_ja"}
	for i, want := range wantKeys {
		if cases[i].Key != want {
			t.Fatalf("unexpected key at %d: %q", i, cases[i].Key)
		}
		if strings.TrimSpace(cases[i].Text) == "" {
			t.Fatalf("case %q has blank text", want)
		}
	}
}

func TestParseCasesValid(t *testing.T) {
	t.Parallel()

	raw := []byte(`[{"key":"greeting","name":"Greeting","text":"こんにちは"}]`)
	cases, err := ParseCases(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cases) != 1 || cases[0].Key != "greeting" || cases[0].Text != "こんにちは" {
		t.Fatalf("unexpected cases: %+v", cases)
	}
}

func TestParseCasesRejects(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		raw  string
	}{
		{name: "empty input", raw: ``},
		{name: "not json", raw: `oops`},
		{name: "trailing content", raw: `[{"key":"a","name":"A","text":"x"}] extra`},
		{name: "not an array", raw: `{"key":"a","name":"A","text":"x"}`},
		{name: "empty array", raw: `[]`},
		{name: "missing text", raw: `[{"key":"a","name":"A"}]`},
		{name: "unknown field", raw: `[{"key":"a","name":"A","text":"x","lang":"ja"}]`},
		{name: "uppercase key", raw: `[{"key":"Greeting","name":"A","text":"x"}]`},
		{name: "blank text", raw: `[{"key":"a","name":"A","text":"   "}]`},
		{name: "duplicate key", raw: `[{"key":"a","name":"A","text":"x"},{"key":"a","name":"B","text":"y"}]`},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if _, err := ParseCases([]byte(tc.raw)); err == nil {
				t.Fatalf("expected an error for %s", tc.name)
			}
		})
	}
}

func TestLoadCasesFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "cases.json")
	content := `[{"key":"short_de_to_ja","name":"Short German to Japanese","text":"Guten Tag, wie geht es Ihnen?"}]`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write case file: %v", err)
	}

	cases, err := LoadCasesFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cases) != 1 || cases[0].Key != "short_de_to_ja" {
		t.Fatalf("unexpected cases: %+v", cases)
	}

	if _, err := LoadCasesFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
