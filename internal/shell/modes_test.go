package shell

import "testing"

func TestModeState_ApplyToken(t *testing.T) {
	tests := []struct {
		name     string
		start    [2]bool
		token    string
		wantOK   bool
		wantFile bool
		wantJSON bool
	}{
		{"file on", [2]bool{false, false}, "FILE=y", true, true, false},
		{"file off", [2]bool{true, true}, "FILE=n", true, false, true},
		{"json on", [2]bool{false, false}, "JSON=y", true, false, true},
		{"json off", [2]bool{true, true}, "JSON=n", true, true, false},
		{"idempotent", [2]bool{true, false}, "FILE=y", true, true, false},
		{"lowercase rejected", [2]bool{false, false}, "file=y", false, false, false},
		{"spaces rejected", [2]bool{false, false}, "FILE = y", false, false, false},
		{"command rejected", [2]bool{true, true}, "info", false, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewModeState(tt.start[0], tt.start[1])
			if got := m.ApplyToken(tt.token); got != tt.wantOK {
				t.Errorf("ApplyToken(%q) = %v, want %v", tt.token, got, tt.wantOK)
			}
			if m.FileOutput() != tt.wantFile {
				t.Errorf("FileOutput() = %v, want %v", m.FileOutput(), tt.wantFile)
			}
			if m.JSONDump() != tt.wantJSON {
				t.Errorf("JSONDump() = %v, want %v", m.JSONDump(), tt.wantJSON)
			}
		})
	}
}

func TestModeState_Independent(t *testing.T) {
	m := NewModeState(false, false)
	m.ApplyToken(TokenFileOn)
	m.ApplyToken(TokenJSONOn)
	m.ApplyToken(TokenFileOff)

	if m.FileOutput() {
		t.Error("FileOutput() should be false")
	}
	if !m.JSONDump() {
		t.Error("JSONDump() should be unaffected by FILE tokens")
	}
}
