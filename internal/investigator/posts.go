package investigator

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/quocvuong92/osint-shell/internal/api"
	"github.com/quocvuong92/osint-shell/internal/display"
	"github.com/quocvuong92/osint-shell/internal/shell"
)

const timeLayout = "2006-01-02 15:04:05"

var hashtagPattern = regexp.MustCompile(`#\w+`)

// fetchPosts returns every post of an accessible target.
func (inv *Investigator) fetchPosts(ctx context.Context) ([]api.Post, error) {
	p, err := inv.accessible(ctx)
	if err != nil {
		return nil, err
	}
	sp := display.NewSpinner("Fetching posts...")
	sp.Start()
	defer sp.Stop()
	return inv.src.Posts(ctx, p.ID)
}

// fetchComments returns the comments of each post, in post order.
func (inv *Investigator) fetchComments(ctx context.Context, posts []api.Post) ([][]api.Comment, error) {
	sp := display.NewSpinner("Fetching comments...")
	sp.Start()
	defer sp.Stop()

	results := make([][]api.Comment, len(posts))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(inv.concurrency)
	for i, post := range posts {
		if post.CommentCount == 0 {
			continue
		}
		g.Go(func() error {
			comments, err := inv.src.Comments(gctx, post.ID)
			if err != nil {
				return err
			}
			results[i] = comments
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// AddressEntry is a location attached to a post.
type AddressEntry struct {
	Address string    `json:"address"`
	Lat     float64   `json:"lat"`
	Lng     float64   `json:"lng"`
	TakenAt time.Time `json:"taken_at"`
}

func (inv *Investigator) addrs(ctx context.Context, modes shell.Modes) error {
	posts, err := inv.fetchPosts(ctx)
	if err != nil {
		return err
	}

	var (
		entries []AddressEntry
		lines   []string
	)
	for _, post := range posts {
		loc := post.Location
		if loc == nil {
			continue
		}
		addr := formatAddress(loc)
		if addr == "" {
			continue
		}
		entries = append(entries, AddressEntry{Address: addr, Lat: loc.Lat, Lng: loc.Lng, TakenAt: post.TakenAt})
		lines = append(lines, fmt.Sprintf("%s\t%s\t(%.6f, %.6f)", post.TakenAt.Format(timeLayout), addr, loc.Lat, loc.Lng))
	}
	return inv.emit(modes, "addrs", lines, entries)
}

func formatAddress(loc *api.Location) string {
	var parts []string
	for _, s := range []string{loc.Name, loc.Address, loc.City} {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ", ")
}

func (inv *Investigator) captions(ctx context.Context, modes shell.Modes) error {
	posts, err := inv.fetchPosts(ctx)
	if err != nil {
		return err
	}

	var lines []string
	for _, post := range posts {
		if c := strings.TrimSpace(post.Caption); c != "" {
			lines = append(lines, c)
		}
	}
	return inv.emit(modes, "captions", lines, map[string]any{"captions": lines})
}

// CommentEntry is one comment on one of the target's posts.
type CommentEntry struct {
	PostID    string    `json:"post_id"`
	PostCode  string    `json:"post_code"`
	Username  string    `json:"username"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

func (inv *Investigator) commentData(ctx context.Context, modes shell.Modes) error {
	posts, err := inv.fetchPosts(ctx)
	if err != nil {
		return err
	}
	comments, err := inv.fetchComments(ctx, posts)
	if err != nil {
		return err
	}

	var (
		entries []CommentEntry
		lines   []string
	)
	for i, post := range posts {
		for _, c := range comments[i] {
			entries = append(entries, CommentEntry{
				PostID:    post.ID,
				PostCode:  post.Code,
				Username:  c.User.Username,
				Text:      c.Text,
				CreatedAt: c.CreatedAt,
			})
			lines = append(lines, fmt.Sprintf("%s\t%s: %s", post.Code, c.User.Username, c.Text))
		}
	}
	return inv.emit(modes, "commentdata", lines, entries)
}

func (inv *Investigator) totalComments(ctx context.Context, modes shell.Modes) error {
	posts, err := inv.fetchPosts(ctx)
	if err != nil {
		return err
	}
	if len(posts) == 0 {
		return inv.emit(modes, "comments", nil, nil)
	}

	total := 0
	for _, post := range posts {
		total += post.CommentCount
	}
	line := fmt.Sprintf("%s has a total of %d comments in %d posts", inv.target, total, len(posts))
	return inv.emit(modes, "comments", []string{line}, map[string]any{
		"username":      inv.target,
		"comment_count": total,
		"posts":         len(posts),
	})
}

func (inv *Investigator) totalLikes(ctx context.Context, modes shell.Modes) error {
	posts, err := inv.fetchPosts(ctx)
	if err != nil {
		return err
	}
	if len(posts) == 0 {
		return inv.emit(modes, "likes", nil, nil)
	}

	total := 0
	for _, post := range posts {
		total += post.LikeCount
	}
	line := fmt.Sprintf("%s has a total of %d likes in %d posts", inv.target, total, len(posts))
	return inv.emit(modes, "likes", []string{line}, map[string]any{
		"username":   inv.target,
		"like_count": total,
		"posts":      len(posts),
	})
}

func (inv *Investigator) hashtags(ctx context.Context, modes shell.Modes) error {
	posts, err := inv.fetchPosts(ctx)
	if err != nil {
		return err
	}

	counts := make(map[string]int)
	for _, post := range posts {
		for _, tag := range hashtagPattern.FindAllString(post.Caption, -1) {
			counts[tag]++
		}
	}
	ranked := rank(counts)
	return inv.emit(modes, "hashtags", rankedLines(ranked), ranked)
}

func (inv *Investigator) mediaType(ctx context.Context, modes shell.Modes) error {
	posts, err := inv.fetchPosts(ctx)
	if err != nil {
		return err
	}
	if len(posts) == 0 {
		return inv.emit(modes, "mediatype", nil, nil)
	}

	counts := map[string]int{api.MediaPhoto: 0, api.MediaVideo: 0, api.MediaCarousel: 0}
	for _, post := range posts {
		counts[post.MediaType]++
	}
	line := fmt.Sprintf("%s has %d photos, %d videos and %d carousels",
		inv.target, counts[api.MediaPhoto], counts[api.MediaVideo], counts[api.MediaCarousel])
	return inv.emit(modes, "mediatype", []string{line}, map[string]any{
		"username":  inv.target,
		"photos":    counts[api.MediaPhoto],
		"videos":    counts[api.MediaVideo],
		"carousels": counts[api.MediaCarousel],
	})
}

// PhotoDescription is the generated description of a photo post.
type PhotoDescription struct {
	PostCode    string    `json:"post_code"`
	Description string    `json:"description"`
	TakenAt     time.Time `json:"taken_at"`
}

func (inv *Investigator) photoDescriptions(ctx context.Context, modes shell.Modes) error {
	posts, err := inv.fetchPosts(ctx)
	if err != nil {
		return err
	}

	var (
		entries []PhotoDescription
		lines   []string
	)
	for _, post := range posts {
		desc := strings.TrimSpace(post.AccessibilityCaption)
		if post.MediaType != api.MediaPhoto || desc == "" {
			continue
		}
		entries = append(entries, PhotoDescription{PostCode: post.Code, Description: desc, TakenAt: post.TakenAt})
		lines = append(lines, fmt.Sprintf("%s\t%s", post.TakenAt.Format(timeLayout), desc))
	}
	return inv.emit(modes, "photodes", lines, entries)
}

func (inv *Investigator) tagged(ctx context.Context, modes shell.Modes) error {
	posts, err := inv.fetchPosts(ctx)
	if err != nil {
		return err
	}

	counts := make(map[string]int)
	for _, post := range posts {
		for _, u := range post.UserTags {
			if u.Username != "" && u.Username != inv.target {
				counts[u.Username]++
			}
		}
	}
	ranked := rank(counts)
	return inv.emit(modes, "tagged", rankedLines(ranked), ranked)
}

func (inv *Investigator) whoCommented(ctx context.Context, modes shell.Modes) error {
	posts, err := inv.fetchPosts(ctx)
	if err != nil {
		return err
	}
	comments, err := inv.fetchComments(ctx, posts)
	if err != nil {
		return err
	}

	counts := make(map[string]int)
	for _, cs := range comments {
		for _, c := range cs {
			counts[c.User.Username]++
		}
	}
	ranked := rank(counts)
	return inv.emit(modes, "wcommented", rankedLines(ranked), ranked)
}

func (inv *Investigator) whoTagged(ctx context.Context, modes shell.Modes) error {
	p, err := inv.accessible(ctx)
	if err != nil {
		return err
	}
	sp := display.NewSpinner("Fetching tagged posts...")
	sp.Start()
	posts, err := inv.src.TaggedIn(ctx, p.ID)
	sp.Stop()
	if err != nil {
		return err
	}

	counts := make(map[string]int)
	for _, post := range posts {
		if post.Owner.Username != "" {
			counts[post.Owner.Username]++
		}
	}
	ranked := rank(counts)
	return inv.emit(modes, "wtagged", rankedLines(ranked), ranked)
}
