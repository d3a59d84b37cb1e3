package investigator

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path"
	"strconv"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/quocvuong92/osint-shell/internal/api"
	"github.com/quocvuong92/osint-shell/internal/display"
	"github.com/quocvuong92/osint-shell/internal/logging"
	"github.com/quocvuong92/osint-shell/internal/shell"
)

// download is one media file to fetch and the name to store it under.
type download struct {
	url  string
	name string
}

// fetchAll downloads files concurrently and returns the written paths in
// input order.
func (inv *Investigator) fetchAll(ctx context.Context, files []download) ([]string, error) {
	sp := display.NewSpinner(fmt.Sprintf("Downloading %d files...", len(files)))
	sp.Start()
	defer sp.Stop()

	var done atomic.Int32
	paths := make([]string, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(inv.concurrency)
	for i, f := range files {
		g.Go(func() error {
			data, err := inv.src.Download(gctx, f.url)
			if err != nil {
				return err
			}
			p, err := inv.exporter.WriteFile(inv.target, f.name, data)
			if err != nil {
				return err
			}
			paths[i] = p
			sp.UpdateMessage(fmt.Sprintf("Downloaded %d/%d files...", done.Add(1), len(files)))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}

// extension returns the file extension of a media URL, or fallback.
func extension(rawURL, fallback string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fallback
	}
	if ext := path.Ext(u.Path); ext != "" {
		return ext
	}
	return fallback
}

// photoLimit asks how many photos to download. Zero means all.
func (inv *Investigator) photoLimit() (int, error) {
	answer, err := inv.ask("How many photos you want to download (default all): ")
	if errors.Is(err, ErrNoInput) || (err == nil && answer == "") {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(answer)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid photo count %q", answer)
	}
	return n, nil
}

func (inv *Investigator) photos(ctx context.Context, modes shell.Modes) error {
	limit, err := inv.photoLimit()
	if err != nil {
		return err
	}
	posts, err := inv.fetchPosts(ctx)
	if err != nil {
		return err
	}

	var files []download
collect:
	for _, post := range posts {
		if post.MediaType != api.MediaPhoto && post.MediaType != api.MediaCarousel {
			continue
		}
		for i, u := range post.MediaURLs {
			if limit > 0 && len(files) == limit {
				break collect
			}
			files = append(files, download{
				url:  u,
				name: fmt.Sprintf("%s_%d%s", post.Code, i, extension(u, ".jpg")),
			})
		}
	}
	if len(files) == 0 {
		return inv.emit(modes, "photos", nil, nil)
	}

	paths, err := inv.fetchAll(ctx, files)
	if err != nil {
		return err
	}
	inv.logger.Info("photos downloaded", logging.Fields{"target": inv.target, "count": len(paths)})
	return inv.reportDownloads(modes, "photos", paths)
}

func (inv *Investigator) profilePicture(ctx context.Context, modes shell.Modes) error {
	p, err := inv.Load(ctx)
	if err != nil {
		return err
	}
	if p.ProfilePicURL == "" {
		return inv.emit(modes, "propic", nil, nil)
	}

	paths, err := inv.fetchAll(ctx, []download{{
		url:  p.ProfilePicURL,
		name: "propic" + extension(p.ProfilePicURL, ".jpg"),
	}})
	if err != nil {
		return err
	}
	return inv.reportDownloads(modes, "propic", paths)
}

func (inv *Investigator) stories(ctx context.Context, modes shell.Modes) error {
	p, err := inv.accessible(ctx)
	if err != nil {
		return err
	}
	sp := display.NewSpinner("Fetching stories...")
	sp.Start()
	items, err := inv.src.Stories(ctx, p.ID)
	sp.Stop()
	if err != nil {
		return err
	}

	files := make([]download, 0, len(items))
	for _, s := range items {
		fallback := ".jpg"
		if s.MediaType == api.MediaVideo {
			fallback = ".mp4"
		}
		files = append(files, download{url: s.URL, name: s.ID + extension(s.URL, fallback)})
	}
	if len(files) == 0 {
		return inv.emit(modes, "stories", nil, nil)
	}

	paths, err := inv.fetchAll(ctx, files)
	if err != nil {
		return err
	}
	return inv.reportDownloads(modes, "stories", paths)
}

func (inv *Investigator) reportDownloads(modes shell.Modes, command string, paths []string) error {
	display.Highlight(inv.out, "Downloaded %d files to %s\n", len(paths), inv.exporter.Dir())
	return inv.emit(modes, command, paths, map[string]any{
		"username": inv.target,
		"files":    paths,
	})
}
