package investigator

import (
	"bytes"
	"context"
	"io"
	"sync"
	"testing"

	"github.com/quocvuong92/osint-shell/internal/api"
	"github.com/quocvuong92/osint-shell/internal/export"
	"github.com/quocvuong92/osint-shell/internal/logging"
)

// fakeSource serves canned data keyed by username or ID.
type fakeSource struct {
	mu         sync.Mutex
	profiles   map[string]*api.Profile
	users      map[string]*api.User
	posts      []api.Post
	followers  []api.User
	followings []api.User
	stories    []api.Story
	taggedIn   []api.Post
	comments   map[string][]api.Comment
	files      map[string][]byte
	err        error

	profileCalls int
	downloads    []string
}

func (f *fakeSource) Profile(_ context.Context, username string) (*api.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.profileCalls++
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.profiles[username]
	if !ok {
		return nil, &api.APIError{StatusCode: 404, Message: "user not found"}
	}
	return p, nil
}

func (f *fakeSource) UserByID(_ context.Context, id string) (*api.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return &api.User{ID: id}, nil
}

func (f *fakeSource) Posts(context.Context, string) ([]api.Post, error) { return f.posts, f.err }
func (f *fakeSource) Followers(context.Context, string) ([]api.User, error) {
	return f.followers, f.err
}
func (f *fakeSource) Followings(context.Context, string) ([]api.User, error) {
	return f.followings, f.err
}
func (f *fakeSource) Stories(context.Context, string) ([]api.Story, error) { return f.stories, f.err }
func (f *fakeSource) TaggedIn(context.Context, string) ([]api.Post, error) { return f.taggedIn, f.err }

func (f *fakeSource) Comments(_ context.Context, postID string) ([]api.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.comments[postID], nil
}

func (f *fakeSource) Download(_ context.Context, rawURL string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.downloads = append(f.downloads, rawURL)
	if b, ok := f.files[rawURL]; ok {
		return b, nil
	}
	return []byte("data"), nil
}

var _ api.Source = (*fakeSource)(nil)

// modes is a fixed Modes value.
type modes struct{ file, json bool }

func (m modes) FileOutput() bool { return m.file }
func (m modes) JSONDump() bool   { return m.json }

type lines struct{ items []string }

func (l *lines) ReadLine() (string, error) {
	if len(l.items) == 0 {
		return "", io.EOF
	}
	s := l.items[0]
	l.items = l.items[1:]
	return s, nil
}

type fixture struct {
	inv *Investigator
	src *fakeSource
	out *bytes.Buffer
	dir string
}

func newFixture(t *testing.T, src *fakeSource, opts ...Option) *fixture {
	t.Helper()
	if src.profiles == nil {
		src.profiles = map[string]*api.Profile{
			"someone": {ID: "42", Username: "someone", FullName: "Some One", FollowerCount: 3, ProfilePicURL: "https://cdn.example/pic.png"},
		}
	}
	dir := t.TempDir()
	var out bytes.Buffer
	quiet := logging.New(logging.Options{Level: logging.LevelNone, Output: io.Discard})
	opts = append([]Option{WithOutput(&out), WithLogger(quiet)}, opts...)
	inv := New(src, export.NewWriter(dir), "someone", opts...)
	return &fixture{inv: inv, src: src, out: &out, dir: dir}
}
