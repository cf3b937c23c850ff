package todo

import (
	"errors"
	"testing"
	"time"
)

func TestParseFilter(t *testing.T) {
	tests := []struct {
		input   string
		want    Filter
		wantErr bool
	}{
		{"", FilterAll, false},
		{"all", FilterAll, false},
		{"Active", FilterActive, false},
		{" completed ", FilterCompleted, false},
		{"done", "", true},
	}

	for _, tt := range tests {
		got, err := ParseFilter(tt.input)
		if tt.wantErr {
			if !errors.Is(err, ErrUnknownFilter) {
				t.Errorf("ParseFilter(%q): got err %v, want ErrUnknownFilter", tt.input, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseFilter(%q): unexpected error %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("ParseFilter(%q): got %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestFilterNextCycles(t *testing.T) {
	f := FilterAll
	var seen []Filter
	for i := 0; i < 4; i++ {
		f = f.Next()
		seen = append(seen, f)
	}

	want := []Filter{FilterActive, FilterCompleted, FilterAll, FilterActive}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("step %d: got %q, want %q", i, seen[i], want[i])
		}
	}

	if got := Filter("bogus").Next(); got != FilterAll {
		t.Errorf("Next of unknown filter: got %q, want %q", got, FilterAll)
	}
}

func TestUnknownFilterMatchesEverything(t *testing.T) {
	done := Task{ID: "1", Text: "x", Completed: true}
	open := Task{ID: "2", Text: "y"}
	f := Filter("bogus")
	if !f.Matches(done) || !f.Matches(open) {
		t.Error("unknown filter should behave like all")
	}
}

func TestGenerateIDPrefixFollowsTime(t *testing.T) {
	early := GenerateID(time.UnixMilli(1_000))
	late := GenerateID(time.UnixMilli(2_000_000_000_000))
	if early == late {
		t.Fatal("ids for different times should differ")
	}
	if len(early) < 9 {
		t.Errorf("id %q too short to carry a random component", early)
	}

	a := GenerateID(time.UnixMilli(42))
	b := GenerateID(time.UnixMilli(42))
	if a == b {
		t.Errorf("two ids in the same millisecond collided: %q", a)
	}
}

func TestEncodeEmptyIsArray(t *testing.T) {
	data, err := Encode(nil)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if string(data) != "[]" {
		t.Errorf("Encode(nil): got %s, want []", data)
	}
}

func TestDecodeRestoresTimestamp(t *testing.T) {
	tasks, err := Decode([]byte(`[{"id":"a1","text":"Buy milk","completed":true,"createdAt":"2024-03-05T10:20:30.123Z"}]`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("got %d tasks, want 1", len(tasks))
	}

	want := time.Date(2024, 3, 5, 10, 20, 30, 123_000_000, time.UTC)
	if !tasks[0].CreatedAt.Equal(want) {
		t.Errorf("CreatedAt: got %v, want %v", tasks[0].CreatedAt, want)
	}
	if !tasks[0].Completed || tasks[0].Text != "Buy milk" {
		t.Errorf("decoded task: got %+v", tasks[0])
	}
}
