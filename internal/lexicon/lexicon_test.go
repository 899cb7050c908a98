package lexicon

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "words.txt")
	content := "Crane\n  slate \n\nstares\n# notes\nCRANE\ncat\nshare\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := Load(path, 5)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := []string{"crane", "slate", "share"}
	if !slices.Equal(got, want) {
		t.Errorf("Load = %v, want %v", got, want)
	}
}

func TestLoadOtherLength(t *testing.T) {
	got, err := FromReader("test", strings.NewReader("cat\ndog\ncrane\nemu\n"), 3)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(got, []string{"cat", "dog", "emu"}) {
		t.Errorf("FromReader = %v", got)
	}
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.txt"), 5)
	var le *LoadError
	if !errors.As(err, &le) {
		t.Fatalf("missing file err = %v, want *LoadError", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file err does not wrap os.ErrNotExist: %v", err)
	}

	_, err = FromReader("short", strings.NewReader("cat\ndog\n"), 5)
	if !errors.As(err, &le) || !errors.Is(err, ErrEmpty) {
		t.Errorf("no matching words err = %v, want LoadError wrapping ErrEmpty", err)
	}

	if _, err := FromReader("zero", strings.NewReader("crane\n"), 0); !errors.As(err, &le) {
		t.Errorf("zero length err = %v, want *LoadError", err)
	}
}

func TestDefault(t *testing.T) {
	words, err := Default(DefaultLength)
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	if len(words) <= 100 {
		t.Fatalf("embedded list has %d words, want more than 100", len(words))
	}
	for _, w := range words {
		if len(w) != DefaultLength || strings.ToLower(w) != w {
			t.Fatalf("bad embedded word %q", w)
		}
	}
	for _, w := range []string{"crane", "slate", "stare", "spare", "share"} {
		if !slices.Contains(words, w) {
			t.Errorf("embedded list missing %q", w)
		}
	}
}

func TestCountLettersAndScore(t *testing.T) {
	f := CountLetters([]string{"crane", "slate", "speed"})
	if f['e'] != 4 || f['a'] != 2 || f['z'] != 0 {
		t.Fatalf("CountLetters e=%d a=%d z=%d", f['e'], f['a'], f['z'])
	}

	// crane: c1 + r1 + a2 + n1 + e4
	if got := f.Score("crane"); got != 9 {
		t.Errorf("Score(crane) = %v, want 9", got)
	}
	// speed has four distinct letters out of five: (s2 + p1 + e4 + d1) * 4/5
	if got := f.Score("speed"); math.Abs(got-6.4) > 1e-9 {
		t.Errorf("Score(speed) = %v, want 6.4", got)
	}
}
