package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/phanxgames/nuclea/site"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestValidateEmbedded(t *testing.T) {
	out, err := execute(t, "validate")
	if err != nil {
		t.Fatalf("validate: %v\n%s", err, out)
	}
	if !strings.Contains(out, "✓ embedded content") || !strings.Contains(out, "contact") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestValidateReportsEveryProblem(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	doc := "brand: x\nhero:\n  anchor: top\n  primary:\n    target: nowhere\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	out, err := execute(t, "validate", path)
	if err == nil {
		t.Fatal("validate should fail")
	}
	if got := strings.Count(out, "✗"); got != 2 {
		t.Errorf("problems reported = %d, want 2:\n%s", got, out)
	}
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "nuclea ") {
		t.Errorf("version output = %q", out)
	}
}

func TestProblems(t *testing.T) {
	a, b := errors.New("a"), errors.New("b")
	err := fmt.Errorf("file: %w", errors.Join(a, errors.Join(b)))
	got := problems(err)
	if len(got) != 2 || got[0] != a || got[1] != b {
		t.Errorf("problems = %v, want [a b]", got)
	}
	if got := problems(a); len(got) != 1 || got[0] != a {
		t.Errorf("problems(a) = %v", got)
	}
}

func TestLoadContentDefault(t *testing.T) {
	c, err := loadContent("")
	if err != nil {
		t.Fatal(err)
	}
	def, _ := site.DefaultContent()
	if c.Brand != def.Brand {
		t.Errorf("Brand = %q, want %q", c.Brand, def.Brand)
	}
}
