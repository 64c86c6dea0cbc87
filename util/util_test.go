// util/util_test.go
// Copyright(c) 2022-2026 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func TestErrorLogger(t *testing.T) {
	var e ErrorLogger
	if e.HaveErrors() || e.Err() != nil {
		t.Fatalf("fresh ErrorLogger reports errors")
	}

	e.Push("airframe.json")
	e.Push("layout")
	e.ErrorString("bad value %d", 3)
	e.Pop()
	e.Error(errors.New("plain"))
	e.Pop()

	if e.CurrentDepth() != 0 {
		t.Errorf("depth %d after balanced Push/Pop", e.CurrentDepth())
	}
	expected := "airframe.json / layout: bad value 3\nairframe.json: plain"
	if e.String() != expected {
		t.Errorf("got %q, expected %q", e.String(), expected)
	}
	if e.Err() == nil {
		t.Errorf("Err() returned nil with logged errors")
	}
}

type testConfig struct {
	Density float64    `json:"air_density"`
	Name    string     `json:"name"`
	Offset  [3]float64 `json:"offset"`
	Inner   struct {
		Enabled bool `json:"enabled"`
	} `json:"inner"`
}

func TestCheckJSON(t *testing.T) {
	tests := []struct {
		name   string
		json   string
		errors int
	}{
		{name: "valid", json: `{"air_density": 1.2, "name": "x", "offset": [0, 0, 1], "inner": {"enabled": true}}`},
		{name: "subset", json: `{"name": "x"}`},
		{name: "misspelled", json: `{"air_densty": 1.2}`, errors: 1},
		{name: "nested misspelled", json: `{"inner": {"enable": true}}`, errors: 1},
		{name: "wrong type", json: `{"air_density": "heavy"}`, errors: 1},
		{name: "syntax", json: `{"name": }`, errors: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var e ErrorLogger
			CheckJSON[testConfig]([]byte(tt.json), &e)
			if n := len(e.errors); n != tt.errors {
				t.Errorf("got %d errors, expected %d: %s", n, tt.errors, e.String())
			}
		})
	}
}

func TestUnmarshalJSONBytesLineNumbers(t *testing.T) {
	var c testConfig
	err := UnmarshalJSONBytes([]byte("{\n  \"name\": \"a\",\n  \"air_density\": \"b\"\n}"), &c)
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "line 3") {
		t.Errorf("error %q doesn't report line 3", err)
	}
}

func TestLoadJSONFile(t *testing.T) {
	dir := t.TempDir()
	fn := filepath.Join(dir, "config.json")
	if err := os.WriteFile(fn, []byte(`{"name": "override"}`), 0o600); err != nil {
		t.Fatal(err)
	}

	c := testConfig{Density: 1.225, Name: "default"}
	var e ErrorLogger
	LoadJSONFile(fn, &c, &e)
	if e.HaveErrors() {
		t.Fatalf("unexpected errors: %s", e.String())
	}
	if c.Name != "override" || c.Density != 1.225 {
		t.Errorf("got %+v, expected name override and default density kept", c)
	}

	LoadJSONFile(filepath.Join(dir, "missing.json"), &c, &e)
	if !e.HaveErrors() {
		t.Errorf("expected error for missing file")
	}
}

type streamItem struct {
	Tick  int
	Value float64
	Tags  []string
}

func TestCompressedStream(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewCompressedStreamWriter[streamItem](&buf, "test", 2)
	if err != nil {
		t.Fatal(err)
	}
	for i := range 50 {
		item := streamItem{Tick: i, Value: float64(i) * 0.5, Tags: []string{"a", "b"}}
		if err := w.Write(&item); err != nil {
			t.Fatal(err)
		}
	}
	if w.Count() != 50 {
		t.Errorf("Count() = %d, expected 50", w.Count())
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	n := 0
	for item, err := range ReadCompressedStream[streamItem](bytes.NewReader(buf.Bytes()), "test", 2) {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if item.Tick != n || item.Value != float64(n)*0.5 || len(item.Tags) != 2 {
			t.Errorf("item %d: got %+v", n, item)
		}
		n++
	}
	if n != 50 {
		t.Errorf("read %d items, expected 50", n)
	}

	for _, err := range ReadCompressedStream[streamItem](bytes.NewReader(buf.Bytes()), "other", 2) {
		if !errors.Is(err, ErrStreamHeader) {
			t.Errorf("got %v, expected ErrStreamHeader", err)
		}
	}
	for _, err := range ReadCompressedStream[streamItem](bytes.NewReader(buf.Bytes()), "test", 3) {
		if !errors.Is(err, ErrStreamHeader) {
			t.Errorf("got %v, expected ErrStreamHeader", err)
		}
	}
}

func TestChunkedChan(t *testing.T) {
	cc := MakeChunkedChan[int](8, 4)

	var wg sync.WaitGroup
	for w := range 3 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s := cc.Sender()
			for i := range 100 {
				s.Send(w*1000 + i)
			}
			s.Flush()
		}()
	}
	go func() {
		wg.Wait()
		cc.Close()
	}()

	seen := make(map[int]bool)
	for chunk := range cc.Ch() {
		if len(chunk) == 0 || len(chunk) > 8 {
			t.Errorf("got chunk of %d items", len(chunk))
		}
		for _, v := range chunk {
			if seen[v] {
				t.Errorf("%d received twice", v)
			}
			seen[v] = true
		}
	}
	if len(seen) != 300 {
		t.Errorf("received %d items, expected 300", len(seen))
	}
}

func TestProfilerZero(t *testing.T) {
	p, err := CreateProfiler("", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p.Cleanup()

	var nilp *Profiler
	nilp.Cleanup()
}
