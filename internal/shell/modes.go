package shell

// Mode tokens recognised before registry lookup.
const (
	TokenFileOn  = "FILE=y"
	TokenFileOff = "FILE=n"
	TokenJSONOn  = "JSON=y"
	TokenJSONOff = "JSON=n"
)

// ModeState holds the two output persistence flags. The flags are
// independent; every combination is valid.
type ModeState struct {
	fileOutput bool
	jsonDump   bool
}

var _ Modes = (*ModeState)(nil)

// NewModeState creates a ModeState with the given initial flags.
func NewModeState(fileOutput, jsonDump bool) *ModeState {
	return &ModeState{fileOutput: fileOutput, jsonDump: jsonDump}
}

// SetFileOutput sets the file output flag.
func (m *ModeState) SetFileOutput(v bool) { m.fileOutput = v }

// SetJSONDump sets the JSON export flag.
func (m *ModeState) SetJSONDump(v bool) { m.jsonDump = v }

// FileOutput reports whether results are also written to text files.
func (m *ModeState) FileOutput() bool { return m.fileOutput }

// JSONDump reports whether results are also exported as JSON files.
func (m *ModeState) JSONDump() bool { return m.jsonDump }

// ApplyToken updates the flags if token is one of the four mode tokens and
// reports whether it was.
func (m *ModeState) ApplyToken(token string) bool {
	switch token {
	case TokenFileOn:
		m.SetFileOutput(true)
	case TokenFileOff:
		m.SetFileOutput(false)
	case TokenJSONOn:
		m.SetJSONDump(true)
	case TokenJSONOff:
		m.SetJSONDump(false)
	default:
		return false
	}
	return true
}
