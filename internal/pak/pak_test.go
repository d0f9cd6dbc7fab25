package pak

import (
	"bytes"
	"testing"
)

func TestWriterReaderRoundTrip(t *testing.T) {
	w := NewWriter()
	if err := w.Add("dir/file1", []byte("01234567")); err != nil {
		t.Fatal(err)
	}
	if err := w.Add("dir_a/file2", []byte("76543210")); err != nil {
		t.Fatal(err)
	}

	r, err := NewReader(w.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	if len(r.Files) != 2 {
		t.Fatalf("files = %d, want 2", len(r.Files))
	}
	if r.Files[0].Name != "dir/file1" || r.Files[1].Name != "dir_a/file2" {
		t.Fatalf("names = %q, %q", r.Files[0].Name, r.Files[1].Name)
	}

	got0, err := r.Data(r.Files[0])
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got0, []byte("01234567")) {
		t.Fatalf("file1 data = %q", got0)
	}

	got1, err := r.Data(r.Files[1])
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got1, []byte("76543210")) {
		t.Fatalf("file2 data = %q", got1)
	}
}

func TestReaderRejectsBadHeader(t *testing.T) {
	_, err := NewReader([]byte("NOPE0000000000000000"))
	if err == nil {
		t.Fatal("expected header error")
	}
	if _, ok := err.(*HeaderError); !ok {
		t.Fatalf("err = %T, want *HeaderError", err)
	}
}

func TestWriterRejectsLongName(t *testing.T) {
	w := NewWriter()
	name := make([]byte, maxNameLen+1)
	for i := range name {
		name[i] = 'a'
	}
	if err := w.Add(string(name), nil); err == nil {
		t.Fatal("expected name length error")
	}
}

func TestFind(t *testing.T) {
	w := NewWriter()
	w.Add("models/a.mdl", []byte("x"))
	r, err := NewReader(w.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := r.Find("models/a.mdl"); !ok {
		t.Fatal("expected to find models/a.mdl")
	}
	if _, ok := r.Find("nope"); ok {
		t.Fatal("did not expect to find nope")
	}
}

func TestIsTGA(t *testing.T) {
	if !IsTGA("textures/wall.tga") {
		t.Fatal("expected .tga match")
	}
	if IsTGA("textures/wall.png") {
		t.Fatal("did not expect .png match")
	}
}
