package shell

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func completerRegistry() *Registry {
	r := NewRegistry()
	for _, name := range []string{
		"followers", "followings", "fwersemail", "fwingsemail",
		"info", "fwersnumber", "fwingsnumber",
	} {
		r.Register(NewDelegateCommand(name, "", noop))
	}
	return r
}

func TestCompleter_Enumerates(t *testing.T) {
	c := NewCompleter(completerRegistry())

	want := []string{"fwersemail", "fwingsemail", "fwersnumber", "fwingsnumber"}
	for i, w := range want {
		got, ok := c.Complete("fw", i)
		if !ok || got != w {
			t.Errorf("Complete(%q, %d) = %q, %v; want %q, true", "fw", i, got, ok, w)
		}
	}
	if got, ok := c.Complete("fw", len(want)); ok {
		t.Errorf("Complete(%q, %d) = %q, want no match", "fw", len(want), got)
	}
}

func TestCompleter_EdgeCases(t *testing.T) {
	c := NewCompleter(completerRegistry())

	tests := []struct {
		name   string
		prefix string
		index  int
		want   string
		wantOK bool
	}{
		{"empty prefix first", "", 0, "followers", true},
		{"empty prefix last", "", 6, "fwingsnumber", true},
		{"empty prefix past end", "", 7, "", false},
		{"negative index", "f", -1, "", false},
		{"no match", "zzz", 0, "", false},
		{"exact name", "info", 0, "info", true},
		{"case sensitive", "INFO", 0, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := c.Complete(tt.prefix, tt.index)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Complete(%q, %d) = %q, %v; want %q, %v", tt.prefix, tt.index, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestCompleter_SeesLateRegistrations(t *testing.T) {
	r := completerRegistry()
	c := NewCompleter(r)
	r.Register(NewDelegateCommand("fwextra", "", noop))

	want := []string{"fwersemail", "fwingsemail", "fwersnumber", "fwingsnumber", "fwextra"}
	if diff := cmp.Diff(want, c.Matches("fw")); diff != "" {
		t.Errorf("Matches() mismatch (-want +got):\n%s", diff)
	}
}
