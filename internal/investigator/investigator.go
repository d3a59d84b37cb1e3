// Package investigator implements the delegate commands of the shell. Each
// command queries the backend for the current target, prints its result and
// persists it according to the output modes in force when it was invoked.
package investigator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/quocvuong92/osint-shell/internal/api"
	"github.com/quocvuong92/osint-shell/internal/constants"
	"github.com/quocvuong92/osint-shell/internal/display"
	"github.com/quocvuong92/osint-shell/internal/export"
	"github.com/quocvuong92/osint-shell/internal/logging"
	"github.com/quocvuong92/osint-shell/internal/shell"
)

var (
	// ErrPrivateProfile is returned when the target is private and not
	// followed by the session user.
	ErrPrivateProfile = errors.New("target has a private profile and is not followed by the session user")
	// ErrEmptyTarget is returned when the target command reads a blank name.
	ErrEmptyTarget = errors.New("target username cannot be empty")
	// ErrNoInput is returned when a command needs operator input but none is
	// available.
	ErrNoInput = errors.New("no input available")
)

const noResults = "Sorry! No results found :-(\n"

// Cache is the part of the response cache the cache command needs.
type Cache interface {
	Clear() (int64, error)
}

// Investigator holds the current target and the collaborators its commands use.
type Investigator struct {
	src         api.Source
	exporter    *export.Writer
	cache       Cache
	in          shell.LineReader
	out         io.Writer
	logger      *logging.Logger
	render      bool
	concurrency int

	target  string
	profile *api.Profile
}

// Option configures an Investigator.
type Option func(*Investigator)

// WithOutput sets where command results are printed.
func WithOutput(w io.Writer) Option {
	return func(inv *Investigator) { inv.out = w }
}

// WithInput sets where the target and photos commands read operator input.
func WithInput(r shell.LineReader) Option {
	return func(inv *Investigator) { inv.in = r }
}

// WithCache sets the cache cleared by the cache command.
func WithCache(c Cache) Option {
	return func(inv *Investigator) { inv.cache = c }
}

// WithLogger sets the diagnostic logger.
func WithLogger(l *logging.Logger) Option {
	return func(inv *Investigator) { inv.logger = l }
}

// WithRender renders the info command as markdown.
func WithRender(enabled bool) Option {
	return func(inv *Investigator) { inv.render = enabled }
}

// WithConcurrency caps parallel per-user and per-post lookups.
func WithConcurrency(n int) Option {
	return func(inv *Investigator) {
		if n > 0 {
			inv.concurrency = n
		}
	}
}

// New creates an investigator for target.
func New(src api.Source, exporter *export.Writer, target string, opts ...Option) *Investigator {
	inv := &Investigator{
		src:         src,
		exporter:    exporter,
		out:         os.Stdout,
		logger:      logging.DefaultLogger,
		concurrency: constants.DefaultLookupConcurrency,
		target:      target,
	}
	for _, opt := range opts {
		opt(inv)
	}
	return inv
}

// Target returns the current target username.
func (inv *Investigator) Target() string {
	return inv.target
}

// Load fetches and caches the target profile. Commands call it lazily; the
// shell calls it at startup to fail fast on an unknown target.
func (inv *Investigator) Load(ctx context.Context) (*api.Profile, error) {
	if inv.profile != nil {
		return inv.profile, nil
	}
	sp := display.NewSpinner("Loading " + inv.target + "...")
	sp.Start()
	p, err := inv.src.Profile(ctx, inv.target)
	sp.Stop()
	if err != nil {
		return nil, err
	}
	inv.profile = p
	inv.logger.Debug("target loaded", logging.Fields{
		"target":  p.Username,
		"id":      p.ID,
		"private": p.IsPrivate,
	})
	return p, nil
}

// accessible loads the profile and refuses private targets the session user
// does not follow.
func (inv *Investigator) accessible(ctx context.Context) (*api.Profile, error) {
	p, err := inv.Load(ctx)
	if err != nil {
		return nil, err
	}
	if p.IsPrivate && !p.FollowedByViewer {
		return nil, fmt.Errorf("%s: %w", inv.target, ErrPrivateProfile)
	}
	return p, nil
}

// Actions returns the delegate commands in listing order.
func (inv *Investigator) Actions() []shell.Command {
	return []shell.Command{
		shell.NewDelegateCommand("addrs", "Get all registered addresses by target photos.", inv.addrs),
		shell.NewDelegateCommand("cache", "Clear cache of the tool.", inv.clearCache),
		shell.NewDelegateCommand("captions", "Get target's photos captions.", inv.captions),
		shell.NewDelegateCommand("commentdata", "Get a list of all the comments on the target's posts.", inv.commentData),
		shell.NewDelegateCommand("comments", "Get total comments of target's posts.", inv.totalComments),
		shell.NewDelegateCommand("followers", "Get target followers.", inv.followers),
		shell.NewDelegateCommand("followings", "Get users followed by target.", inv.followings),
		shell.NewDelegateCommand("fwersemail", "Get email of target followers.", inv.followersEmail),
		shell.NewDelegateCommand("fwingsemail", "Get email of users followed by target.", inv.followingsEmail),
		shell.NewDelegateCommand("fwersnumber", "Get phone number of target followers.", inv.followersNumber),
		shell.NewDelegateCommand("fwingsnumber", "Get phone number of users followed by target.", inv.followingsNumber),
		shell.NewDelegateCommand("hashtags", "Get hashtags used by target.", inv.hashtags),
		shell.NewDelegateCommand("info", "Get target info.", inv.info),
		shell.NewDelegateCommand("likes", "Get total likes of target's posts.", inv.totalLikes),
		shell.NewDelegateCommand("mediatype", "Get target's posts type (photo or video).", inv.mediaType),
		shell.NewDelegateCommand("photodes", "Get description of target's photos.", inv.photoDescriptions),
		shell.NewDelegateCommand("photos", "Download target's photos in output folder.", inv.photos),
		shell.NewDelegateCommand("propic", "Download target's profile picture.", inv.profilePicture),
		shell.NewDelegateCommand("stories", "Download target's stories.", inv.stories),
		shell.NewDelegateCommand("tagged", "Get list of users tagged by target.", inv.tagged),
		shell.NewDelegateCommand("target", "Set new target.", inv.changeTarget),
		shell.NewDelegateCommand("wcommented", "Get a list of users who commented on target's photos.", inv.whoCommented),
		shell.NewDelegateCommand("wtagged", "Get a list of users who tagged the target.", inv.whoTagged),
	}
}

// emit prints lines and persists them per modes: lines to the .txt file and
// data to the .json file. Nothing is written for an empty result.
func (inv *Investigator) emit(modes shell.Modes, command string, lines []string, data any) error {
	if len(lines) == 0 {
		display.Alert(inv.out, noResults)
		return nil
	}
	for _, l := range lines {
		fmt.Fprintln(inv.out, l)
	}
	return inv.persist(modes, command, lines, data)
}

func (inv *Investigator) persist(modes shell.Modes, command string, lines []string, data any) error {
	if modes.FileOutput() {
		path, err := inv.exporter.WriteText(inv.target, command, lines)
		if err != nil {
			return err
		}
		inv.logger.Debug("wrote text output", logging.Fields{"path": path})
	}
	if modes.JSONDump() {
		path, err := inv.exporter.WriteJSON(inv.target, command, data)
		if err != nil {
			return err
		}
		inv.logger.Debug("wrote json output", logging.Fields{"path": path})
	}
	return nil
}

// ask prints question and reads one trimmed line of input.
func (inv *Investigator) ask(question string) (string, error) {
	if inv.in == nil {
		return "", ErrNoInput
	}
	display.Highlight(inv.out, "%s", question)
	line, err := inv.in.ReadLine()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return "", ErrNoInput
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Ranked is a name with an occurrence count.
type Ranked struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// rank sorts counts by descending count, then by name.
func rank(counts map[string]int) []Ranked {
	out := make([]Ranked, 0, len(counts))
	for name, n := range counts {
		out = append(out, Ranked{Name: name, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func rankedLines(ranked []Ranked) []string {
	lines := make([]string, len(ranked))
	for i, r := range ranked {
		lines[i] = fmt.Sprintf("%d\t%s", r.Count, r.Name)
	}
	return lines
}
