package investigator

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/quocvuong92/osint-shell/internal/api"
	"github.com/quocvuong92/osint-shell/internal/shell"
)

func TestActions_Order(t *testing.T) {
	f := newFixture(t, &fakeSource{})

	var names []string
	for _, c := range f.inv.Actions() {
		if c.Description() == "" {
			t.Errorf("%s has no description", c.Name())
		}
		names = append(names, c.Name())
	}

	want := []string{
		"addrs", "cache", "captions", "commentdata", "comments", "followers",
		"followings", "fwersemail", "fwingsemail", "fwersnumber", "fwingsnumber",
		"hashtags", "info", "likes", "mediatype", "photodes", "photos", "propic",
		"stories", "tagged", "target", "wcommented", "wtagged",
	}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("Actions() names mismatch (-want +got):\n%s", diff)
	}
}

func TestModesAppliedPerInvocation(t *testing.T) {
	f := newFixture(t, &fakeSource{
		followers: []api.User{{ID: "1", Username: "alice"}, {ID: "2", Username: "bob"}},
	})

	reg := shell.NewRegistry()
	for _, c := range f.inv.Actions() {
		reg.Register(c)
	}
	d := shell.NewDispatcher(reg, shell.NewModeState(false, false), shell.WithOutput(f.out))
	ctx := context.Background()
	txt := filepath.Join(f.dir, "someone_followers.txt")

	d.Dispatch(ctx, "FILE=y")
	if res := d.Dispatch(ctx, "followers"); res.Status != shell.StatusOK {
		t.Fatalf("followers = %v (%v)", res.Status, res.Err)
	}
	data, err := os.ReadFile(txt)
	if err != nil {
		t.Fatalf("text output not written: %v", err)
	}
	if !strings.Contains(string(data), "alice") {
		t.Errorf("text output = %q", data)
	}

	_ = os.Remove(txt)
	d.Dispatch(ctx, "FILE=n")
	d.Dispatch(ctx, "followers")
	if _, err := os.Stat(txt); !os.IsNotExist(err) {
		t.Error("text output written with FILE=n")
	}
}

func TestJSONDump(t *testing.T) {
	f := newFixture(t, &fakeSource{
		posts: []api.Post{{ID: "p1", LikeCount: 5}, {ID: "p2", LikeCount: 7}},
	})

	if err := f.inv.totalLikes(context.Background(), modes{json: true}); err != nil {
		t.Fatalf("likes error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(f.dir, "someone_likes.json"))
	if err != nil {
		t.Fatalf("json output not written: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if got["like_count"] != float64(12) || got["posts"] != float64(2) {
		t.Errorf("json output = %v", got)
	}
	if !strings.Contains(f.out.String(), "someone has a total of 12 likes in 2 posts") {
		t.Errorf("output = %q", f.out.String())
	}
	if _, err := os.Stat(filepath.Join(f.dir, "someone_likes.txt")); !os.IsNotExist(err) {
		t.Error("text output written without FILE=y")
	}
}

func TestPrivateProfile(t *testing.T) {
	src := &fakeSource{
		profiles: map[string]*api.Profile{
			"someone": {ID: "42", Username: "someone", IsPrivate: true},
		},
		followers: []api.User{{ID: "1", Username: "alice"}},
	}
	f := newFixture(t, src)
	ctx := context.Background()

	for _, run := range []func(context.Context, shell.Modes) error{
		f.inv.followers, f.inv.captions, f.inv.stories, f.inv.whoTagged,
	} {
		if err := run(ctx, modes{}); !errors.Is(err, ErrPrivateProfile) {
			t.Errorf("error = %v, want ErrPrivateProfile", err)
		}
	}

	if err := f.inv.info(ctx, modes{}); err != nil {
		t.Errorf("info on private profile error = %v", err)
	}
}

func TestPrivateProfileFollowed(t *testing.T) {
	src := &fakeSource{
		profiles: map[string]*api.Profile{
			"someone": {ID: "42", Username: "someone", IsPrivate: true, FollowedByViewer: true},
		},
		followers: []api.User{{ID: "1", Username: "alice"}},
	}
	f := newFixture(t, src)

	if err := f.inv.followers(context.Background(), modes{}); err != nil {
		t.Errorf("followers error = %v", err)
	}
}

func TestEmptyResult(t *testing.T) {
	f := newFixture(t, &fakeSource{})

	if err := f.inv.captions(context.Background(), modes{file: true, json: true}); err != nil {
		t.Fatalf("captions error = %v", err)
	}
	if !strings.Contains(f.out.String(), "No results found") {
		t.Errorf("output = %q", f.out.String())
	}
	entries, _ := os.ReadDir(f.dir)
	if len(entries) != 0 {
		t.Errorf("files written for empty result: %v", entries)
	}
}

func TestProfileLoadedOnce(t *testing.T) {
	f := newFixture(t, &fakeSource{posts: []api.Post{{ID: "p1"}}})
	ctx := context.Background()

	_ = f.inv.captions(ctx, modes{})
	_ = f.inv.totalLikes(ctx, modes{})
	_ = f.inv.info(ctx, modes{})

	if f.src.profileCalls != 1 {
		t.Errorf("profile fetched %d times, want 1", f.src.profileCalls)
	}
}

func TestChangeTarget(t *testing.T) {
	src := &fakeSource{profiles: map[string]*api.Profile{
		"someone": {ID: "42", Username: "someone"},
		"other":   {ID: "43", Username: "other"},
	}}

	tests := []struct {
		name       string
		input      []string
		wantErr    error
		wantTarget string
	}{
		{"empty input", []string{"   "}, ErrEmptyTarget, "someone"},
		{"no input", nil, ErrNoInput, "someone"},
		{"unknown user", []string{"ghost"}, api.ErrNotFound, "someone"},
		{"valid", []string{" other "}, nil, "other"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, src, WithInput(&lines{items: tt.input}))
			err := f.inv.changeTarget(context.Background(), modes{})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("changeTarget() error = %v, want %v", err, tt.wantErr)
			}
			if f.inv.Target() != tt.wantTarget {
				t.Errorf("Target() = %q, want %q", f.inv.Target(), tt.wantTarget)
			}
		})
	}
}

func TestHashtags(t *testing.T) {
	f := newFixture(t, &fakeSource{posts: []api.Post{
		{ID: "1", Caption: "sunny #beach #summer"},
		{ID: "2", Caption: "again #beach"},
		{ID: "3", Caption: "no tags"},
	}})

	if err := f.inv.hashtags(context.Background(), modes{}); err != nil {
		t.Fatalf("hashtags error = %v", err)
	}
	want := "2\t#beach\n1\t#summer\n"
	if f.out.String() != want {
		t.Errorf("output = %q, want %q", f.out.String(), want)
	}
}

func TestRank(t *testing.T) {
	got := rank(map[string]int{"b": 2, "a": 2, "c": 5})
	want := []Ranked{{"c", 5}, {"a", 2}, {"b", 2}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("rank() mismatch (-want +got):\n%s", diff)
	}
}

func TestFollowersEmail(t *testing.T) {
	src := &fakeSource{
		followers: []api.User{
			{ID: "1", Username: "alice"},
			{ID: "2", Username: "bob"},
			{ID: "3", Username: "carol"},
		},
		users: map[string]*api.User{
			"1": {ID: "1", PublicEmail: "alice@example.com"},
			"3": {ID: "3", PublicEmail: "carol@example.com", PublicPhone: "+100"},
		},
	}
	f := newFixture(t, src, WithConcurrency(2))

	if err := f.inv.followersEmail(context.Background(), modes{json: true}); err != nil {
		t.Fatalf("fwersemail error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(f.dir, "someone_fwersemail.json"))
	if err != nil {
		t.Fatalf("json output not written: %v", err)
	}
	var got []Contact
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	want := []Contact{
		{ID: "1", Username: "alice", Value: "alice@example.com"},
		{ID: "3", Username: "carol", Value: "carol@example.com"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("fwersemail mismatch (-want +got):\n%s", diff)
	}
}

func TestCommentData(t *testing.T) {
	f := newFixture(t, &fakeSource{
		posts: []api.Post{
			{ID: "p1", Code: "AAA", CommentCount: 2},
			{ID: "p2", Code: "BBB", CommentCount: 0},
			{ID: "p3", Code: "CCC", CommentCount: 1},
		},
		comments: map[string][]api.Comment{
			"p1": {{Text: "nice", User: api.User{Username: "alice"}}, {Text: "wow", User: api.User{Username: "bob"}}},
			"p3": {{Text: "hi", User: api.User{Username: "alice"}}},
		},
	})
	ctx := context.Background()

	if err := f.inv.commentData(ctx, modes{}); err != nil {
		t.Fatalf("commentdata error = %v", err)
	}
	want := "AAA\talice: nice\nAAA\tbob: wow\nCCC\talice: hi\n"
	if f.out.String() != want {
		t.Errorf("commentdata output = %q, want %q", f.out.String(), want)
	}

	f.out.Reset()
	if err := f.inv.whoCommented(ctx, modes{}); err != nil {
		t.Fatalf("wcommented error = %v", err)
	}
	if f.out.String() != "2\talice\n1\tbob\n" {
		t.Errorf("wcommented output = %q", f.out.String())
	}
}

func TestAddrs(t *testing.T) {
	taken := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	f := newFixture(t, &fakeSource{posts: []api.Post{
		{ID: "1", TakenAt: taken, Location: &api.Location{Name: "Cafe", City: "Rome", Lat: 41.9, Lng: 12.5}},
		{ID: "2"},
	}})

	if err := f.inv.addrs(context.Background(), modes{}); err != nil {
		t.Fatalf("addrs error = %v", err)
	}
	if !strings.Contains(f.out.String(), "2024-05-01 10:00:00\tCafe, Rome\t(41.900000, 12.500000)") {
		t.Errorf("addrs output = %q", f.out.String())
	}
}

func TestPhotos(t *testing.T) {
	src := &fakeSource{posts: []api.Post{
		{ID: "1", Code: "AAA", MediaType: api.MediaPhoto, MediaURLs: []string{"https://cdn.example/a.jpg"}},
		{ID: "2", Code: "BBB", MediaType: api.MediaVideo, MediaURLs: []string{"https://cdn.example/b.mp4"}},
		{ID: "3", Code: "CCC", MediaType: api.MediaCarousel, MediaURLs: []string{"https://cdn.example/c1.webp", "https://cdn.example/c2"}},
	}}

	tests := []struct {
		name      string
		input     []string
		wantFiles []string
		wantErr   bool
	}{
		{"all", []string{""}, []string{"someone_AAA_0.jpg", "someone_CCC_0.webp", "someone_CCC_1.jpg"}, false},
		{"limited", []string{"2"}, []string{"someone_AAA_0.jpg", "someone_CCC_0.webp"}, false},
		{"no input", nil, []string{"someone_AAA_0.jpg", "someone_CCC_0.webp", "someone_CCC_1.jpg"}, false},
		{"invalid", []string{"many"}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, src, WithInput(&lines{items: tt.input}))
			err := f.inv.photos(context.Background(), modes{})
			if (err != nil) != tt.wantErr {
				t.Fatalf("photos error = %v, wantErr %v", err, tt.wantErr)
			}

			var got []string
			entries, _ := os.ReadDir(f.dir)
			for _, e := range entries {
				got = append(got, e.Name())
			}
			if diff := cmp.Diff(tt.wantFiles, got); diff != "" {
				t.Errorf("downloaded files mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestStoriesAndPropic(t *testing.T) {
	f := newFixture(t, &fakeSource{stories: []api.Story{
		{ID: "s1", MediaType: api.MediaVideo, URL: "https://cdn.example/s1"},
		{ID: "s2", MediaType: api.MediaPhoto, URL: "https://cdn.example/s2.png"},
	}})
	ctx := context.Background()

	if err := f.inv.stories(ctx, modes{}); err != nil {
		t.Fatalf("stories error = %v", err)
	}
	if err := f.inv.profilePicture(ctx, modes{}); err != nil {
		t.Fatalf("propic error = %v", err)
	}

	for _, name := range []string{"someone_s1.mp4", "someone_s2.png", "someone_propic.png"} {
		if _, err := os.Stat(filepath.Join(f.dir, name)); err != nil {
			t.Errorf("%s not written: %v", name, err)
		}
	}
}

type fakeCache struct{ cleared int }

func (c *fakeCache) Clear() (int64, error) {
	c.cleared++
	return 4, nil
}

func TestClearCache(t *testing.T) {
	cache := &fakeCache{}
	f := newFixture(t, &fakeSource{}, WithCache(cache))

	if err := f.inv.clearCache(context.Background(), modes{}); err != nil {
		t.Fatalf("cache error = %v", err)
	}
	if cache.cleared != 1 || !strings.Contains(f.out.String(), "4 responses removed") {
		t.Errorf("cleared = %d, output = %q", cache.cleared, f.out.String())
	}

	disabled := newFixture(t, &fakeSource{})
	if err := disabled.inv.clearCache(context.Background(), modes{}); err != nil {
		t.Fatalf("cache error = %v", err)
	}
	if !strings.Contains(disabled.out.String(), "Cache is disabled") {
		t.Errorf("output = %q", disabled.out.String())
	}
}

func TestInfoPersists(t *testing.T) {
	f := newFixture(t, &fakeSource{})

	if err := f.inv.info(context.Background(), modes{file: true}); err != nil {
		t.Fatalf("info error = %v", err)
	}
	data, err := os.ReadFile(filepath.Join(f.dir, "someone_info.txt"))
	if err != nil {
		t.Fatalf("info text not written: %v", err)
	}
	if !strings.Contains(string(data), "[FULL NAME] Some One") {
		t.Errorf("info text = %q", data)
	}
}

func TestProfileMarkdown(t *testing.T) {
	md := profileMarkdown(&api.Profile{Username: "someone", Biography: "a|b"})
	if !strings.HasPrefix(md, "# someone\n") {
		t.Errorf("markdown = %q", md)
	}
	if !strings.Contains(md, `| BIOGRAPHY | a\|b |`) {
		t.Errorf("markdown missing escaped biography row: %q", md)
	}
}

func TestAsk_PrintsQuestionVerbatim(t *testing.T) {
	f := newFixture(t, &fakeSource{}, WithInput(&lines{items: []string{" 5 "}}))

	answer, err := f.inv.ask("Download 100% of %d photos? ")
	if err != nil {
		t.Fatalf("ask() error = %v", err)
	}
	if answer != "5" {
		t.Errorf("ask() = %q, want %q", answer, "5")
	}
	if !strings.Contains(f.out.String(), "Download 100% of %d photos? ") {
		t.Errorf("question garbled: %q", f.out.String())
	}
}
