package userinfo

import "testing"

func TestParseRoundTrip(t *testing.T) {
	b := Parse(`\name\foo\team\red`)
	if v, _ := b.Get("name"); v != "foo" {
		t.Fatalf("name = %q, want foo", v)
	}
	if v, _ := b.Get("team"); v != "red" {
		t.Fatalf("team = %q, want red", v)
	}
	if got, want := b.String(), `\name\foo\team\red`; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}

func TestParsePreservesTrailingPair(t *testing.T) {
	// No trailing backslash after the last value: both key and value of
	// the final pair must still be recovered.
	b := Parse(`\name\foo\team\blue`)
	if v, ok := b.Get("team"); !ok || v != "blue" {
		t.Fatalf("team = %q, %v; want blue, true", v, ok)
	}
}

func TestSetPreservesOrder(t *testing.T) {
	b := New()
	b.Set("b", "2")
	b.Set("a", "1")
	b.Set("b", "3")
	if got, want := b.String(), `\b\3\a\1`; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}

func TestUpdateMerges(t *testing.T) {
	b := Parse(`\name\foo`)
	b.Update(Parse(`\team\red\skin\base`))
	if v, _ := b.Get("team"); v != "red" {
		t.Fatalf("team = %q, want red", v)
	}
	if v, _ := b.Get("skin"); v != "base" {
		t.Fatalf("skin = %q, want base", v)
	}
}
