package recorder

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"
)

type sample struct {
	Seq   int     `json:"seq"`
	CLift float64 `json:"cLift"`
}

func TestRecordAndRead(t *testing.T) {
	var buf bytes.Buffer
	rec, err := New(&buf)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 100; i++ {
		if err := rec.Record(sample{Seq: i, CLift: 0.35 + float64(i)*0.01}); err != nil {
			t.Fatal(err)
		}
	}
	if rec.Count() != 100 {
		t.Errorf("Count = %d", rec.Count())
	}
	if err := rec.Close(); err != nil {
		t.Fatal(err)
	}
	if err := rec.Record(sample{}); err == nil {
		t.Error("Record after Close succeeded")
	}

	r, err := NewReader(&buf)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	for i := 0; ; i++ {
		var s sample
		err := r.Next(&s)
		if err == io.EOF {
			if i != 100 {
				t.Errorf("read %d records; want 100", i)
			}
			break
		}
		if err != nil {
			t.Fatal(err)
		}
		if s.Seq != i {
			t.Fatalf("record %d has seq %d", i, s.Seq)
		}
	}
}

func TestCreate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frames.jsonl.zst")
	rec, err := Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := rec.Record(sample{Seq: 7, CLift: 1.19}); err != nil {
		t.Fatal(err)
	}
	if err := rec.Close(); err != nil {
		t.Fatal(err)
	}
	if err := rec.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	r, err := NewReader(f)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	var s sample
	if err := r.Next(&s); err != nil || s.Seq != 7 || s.CLift != 1.19 {
		t.Errorf("got %+v, %v", s, err)
	}
}
