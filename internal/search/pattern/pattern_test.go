package pattern

import (
	"errors"
	"testing"
)

func TestCompileEmptyQuery(t *testing.T) {
	_, err := Compile("", Options{})
	if !errors.Is(err, ErrEmptyQuery) {
		t.Errorf("expected ErrEmptyQuery, got %v", err)
	}
}

func TestCompileLiteralEscapesMetacharacters(t *testing.T) {
	c, err := Compile("a.b*c(", Options{CaseSensitive: true})
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}

	if !c.Regexp().MatchString("a.b*c(") {
		t.Error("literal pattern should match its own text")
	}

	if c.Regexp().MatchString("axbbbc(") {
		t.Error("literal pattern should not behave as a regex")
	}
}

func TestCompileCaseInsensitiveDefault(t *testing.T) {
	c, err := Compile("Foo", Options{})
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}

	if !c.Regexp().MatchString("FOO") || !c.Regexp().MatchString("foo") {
		t.Error("default compile should be case-insensitive")
	}
}

func TestCompileCaseSensitive(t *testing.T) {
	c, err := Compile("Foo", Options{CaseSensitive: true})
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}

	if c.Regexp().MatchString("FOO") {
		t.Error("case-sensitive compile should not match FOO")
	}
}

func TestCompileInvalidRegex(t *testing.T) {
	_, err := Compile("missing(", Options{Regex: true})

	var perr *PatternError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *PatternError, got %v", err)
	}

	if perr.Query != "missing(" {
		t.Errorf("expected query in error, got %q", perr.Query)
	}

	if perr.Unwrap() == nil {
		t.Error("expected wrapped regexp error")
	}
}

func TestCompileInvalidSyntaxIsLiteralWhenNotRegex(t *testing.T) {
	c, err := Compile("missing(", Options{})
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}

	if !c.Regexp().MatchString("call missing( now") {
		t.Error("literal mode should match the raw text")
	}
}

func TestCompileMultiline(t *testing.T) {
	c, err := Compile("^bar$", Options{Regex: true, Multiline: true, CaseSensitive: true})
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}

	if !c.Regexp().MatchString("foo\nbar\nbaz") {
		t.Error("multiline ^/$ should match at line boundaries")
	}
}

func TestCompileDotAll(t *testing.T) {
	c, err := Compile("a.b", Options{Regex: true, DotAll: true, CaseSensitive: true})
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}

	if !c.Regexp().MatchString("a\nb") {
		t.Error("dotall . should match a newline")
	}

	plain, err := Compile("a.b", Options{Regex: true, CaseSensitive: true})
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}

	if plain.Regexp().MatchString("a\nb") {
		t.Error(". should not match a newline without dotall")
	}
}

func TestCompileWholeWordRegex(t *testing.T) {
	c, err := Compile("cat|dog", Options{Regex: true, WholeWord: true, CaseSensitive: true})
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}

	if c.NeedsBoundaryCheck() {
		t.Error("regex mode embeds \\b; no scanner-side check needed")
	}

	if c.Regexp().MatchString("concatenate") {
		t.Error("whole-word regex should not match inside a word")
	}

	if !c.Regexp().MatchString("a cat here") {
		t.Error("whole-word regex should match a standalone word")
	}
}

func TestCompileWholeWordLiteralDefersToScanner(t *testing.T) {
	c, err := Compile("cat", Options{WholeWord: true, CaseSensitive: true})
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}

	if !c.NeedsBoundaryCheck() {
		t.Error("literal whole-word compile should request a boundary check")
	}
}

func TestGroupCount(t *testing.T) {
	c, err := Compile(`(\d+)-(\d+)`, Options{Regex: true})
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}

	if c.GroupCount() != 2 {
		t.Errorf("expected 2 groups, got %d", c.GroupCount())
	}
}
