package storage

import (
	"errors"
	"testing"
)

func TestMemoryCopiesValues(t *testing.T) {
	m := NewMemory()

	in := []byte("abc")
	if err := m.Write("k", in); err != nil {
		t.Fatalf("Write: %v", err)
	}
	in[0] = 'X'

	got, ok, err := m.Read("k")
	if err != nil || !ok {
		t.Fatalf("Read: ok=%v err=%v", ok, err)
	}
	if string(got) != "abc" {
		t.Errorf("stored value aliased caller slice: got %s", got)
	}

	got[0] = 'Y'
	again, _, _ := m.Read("k")
	if string(again) != "abc" {
		t.Errorf("returned value aliased stored slice: got %s", again)
	}
}

func TestMemoryInjectedFailures(t *testing.T) {
	m := NewMemory()
	m.Set("k", []byte("seed"))
	if m.Writes() != 0 {
		t.Errorf("Set counted as write: %d", m.Writes())
	}

	boom := errors.New("boom")
	m.WriteErr = boom
	if err := m.Write("k", []byte("new")); !errors.Is(err, boom) {
		t.Errorf("Write: got %v, want boom", err)
	}
	if m.Writes() != 1 {
		t.Errorf("Writes: got %d, want 1", m.Writes())
	}

	m.ReadErr = boom
	if _, _, err := m.Read("k"); !errors.Is(err, boom) {
		t.Errorf("Read: got %v, want boom", err)
	}

	m.ReadErr = nil
	if got, _, _ := m.Read("k"); string(got) != "seed" {
		t.Errorf("failed write changed value: got %s", got)
	}
}
