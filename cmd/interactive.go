package cmd

import (
	"strings"

	"github.com/elk-language/go-prompt"
	istrings "github.com/elk-language/go-prompt/strings"

	"github.com/quocvuong92/osint-shell/internal/constants"
	"github.com/quocvuong92/osint-shell/internal/history"
	"github.com/quocvuong92/osint-shell/internal/logging"
	"github.com/quocvuong92/osint-shell/internal/shell"
)

// interactiveSession runs the dispatcher behind a go-prompt line editor.
type interactiveSession struct {
	dispatcher  *shell.Dispatcher
	completer   *shell.Completer
	interrupt   *shell.InterruptHandler
	history     history.Recorder
	logger      *logging.Logger
	exitFlag    bool
	interrupted bool
}

func newInteractiveSession(d *shell.Dispatcher, interrupt *shell.InterruptHandler, hist history.Recorder, logger *logging.Logger) *interactiveSession {
	return &interactiveSession{
		dispatcher: d,
		completer:  shell.NewCompleter(d.Registry()),
		interrupt:  interrupt,
		history:    hist,
		logger:     logger,
	}
}

// complete suggests registered command names matching the word being typed.
// Commands are single words, so nothing is suggested after a space.
func (s *interactiveSession) complete(d prompt.Document) ([]prompt.Suggest, istrings.RuneNumber, istrings.RuneNumber) {
	endIndex := d.CurrentRuneIndex()
	w := d.GetWordBeforeCursor()
	startIndex := endIndex - istrings.RuneCountInString(w)

	text := d.TextBeforeCursor()
	if strings.TrimSpace(text) == "" || strings.Contains(strings.TrimLeft(text, " "), " ") {
		return []prompt.Suggest{}, startIndex, endIndex
	}

	return s.suggestions(w), startIndex, endIndex
}

func (s *interactiveSession) suggestions(prefix string) []prompt.Suggest {
	names := s.completer.Matches(prefix)
	suggestions := make([]prompt.Suggest, 0, len(names))
	for _, name := range names {
		desc := ""
		if c, ok := s.dispatcher.Registry().Resolve(name); ok {
			desc = c.Description()
		}
		suggestions = append(suggestions, prompt.Suggest{Text: name, Description: desc})
	}
	return suggestions
}

// execute dispatches one line entered at the prompt.
func (s *interactiveSession) execute(input string) {
	if s.exitFlag {
		return
	}

	res := s.dispatcher.Dispatch(s.interrupt.Context(), input)
	if res.Status != shell.StatusEmpty && s.history != nil {
		if err := s.history.Append(input); err != nil {
			s.logger.Warn("could not save history", logging.Fields{"error": err})
		}
	}
	if res.Terminal() {
		s.exitFlag = true
	}
}

// run blocks until the operator quits. Ctrl+C is handled after the line
// editor has restored the terminal.
func (s *interactiveSession) run() {
	var entries []string
	if s.history != nil {
		var err error
		if entries, err = s.history.Load(); err != nil {
			s.logger.Warn("could not load history", logging.Fields{"error": err})
		}
	}

	p := prompt.New(
		s.execute,
		prompt.WithCompleter(s.complete),
		prompt.WithPrefix(shell.Prompt),
		prompt.WithTitle(constants.AppName),
		prompt.WithPrefixTextColor(prompt.Yellow),
		prompt.WithHistory(entries),
		prompt.WithSuggestionBGColor(prompt.DarkGray),
		prompt.WithSuggestionTextColor(prompt.Yellow),
		prompt.WithSelectedSuggestionBGColor(prompt.Yellow),
		prompt.WithSelectedSuggestionTextColor(prompt.Black),
		prompt.WithDescriptionBGColor(prompt.DarkGray),
		prompt.WithDescriptionTextColor(prompt.LightGray),
		prompt.WithMaxSuggestion(10),
		prompt.WithExitChecker(func(in string, breakline bool) bool {
			return s.exitFlag
		}),
		prompt.WithKeyBind(prompt.KeyBind{
			Key: prompt.ControlC,
			Fn: func(p *prompt.Prompt) bool {
				s.interrupted = true
				s.exitFlag = true
				return false
			},
		}),
		prompt.WithKeyBind(prompt.KeyBind{
			Key: prompt.ControlD,
			Fn: func(p *prompt.Prompt) bool {
				if p.Buffer().Text() == "" {
					s.execute("exit")
				}
				return false
			},
		}),
	)

	p.Run()

	if s.interrupted {
		s.interrupt.Trigger()
	}
}
