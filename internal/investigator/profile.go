package investigator

import (
	"context"
	"fmt"
	"strings"

	"github.com/quocvuong92/osint-shell/internal/api"
	"github.com/quocvuong92/osint-shell/internal/display"
	"github.com/quocvuong92/osint-shell/internal/logging"
	"github.com/quocvuong92/osint-shell/internal/shell"
)

// profileLines formats the fields of p that are set.
func profileLines(p *api.Profile) []string {
	lines := []string{
		"[ID] " + p.ID,
		"[FULL NAME] " + p.FullName,
		"[BIOGRAPHY] " + p.Biography,
		fmt.Sprintf("[FOLLOWED] %d", p.FollowerCount),
		fmt.Sprintf("[FOLLOW] %d", p.FollowingCount),
		fmt.Sprintf("[POSTS] %d", p.MediaCount),
		fmt.Sprintf("[BUSINESS ACCOUNT] %t", p.IsBusiness),
	}
	if p.IsBusiness && p.BusinessCategory != "" {
		lines = append(lines, "[BUSINESS CATEGORY] "+p.BusinessCategory)
	}
	lines = append(lines,
		fmt.Sprintf("[VERIFIED ACCOUNT] %t", p.IsVerified),
		fmt.Sprintf("[PRIVATE ACCOUNT] %t", p.IsPrivate),
	)
	if p.PublicEmail != "" {
		lines = append(lines, "[EMAIL] "+p.PublicEmail)
	}
	if p.PublicPhone != "" {
		lines = append(lines, "[PHONE] "+p.PublicPhone)
	}
	if p.ExternalURL != "" {
		lines = append(lines, "[EXTERNAL URL] "+p.ExternalURL)
	}
	if p.ProfilePicURL != "" {
		lines = append(lines, "[HD PROFILE PIC] "+p.ProfilePicURL)
	}
	return lines
}

// profileMarkdown renders p as a markdown table for the glamour renderer.
func profileMarkdown(p *api.Profile) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n| Field | Value |\n|---|---|\n", p.Username)
	for _, l := range profileLines(p) {
		field, value, _ := strings.Cut(strings.TrimPrefix(l, "["), "] ")
		fmt.Fprintf(&b, "| %s | %s |\n", field, strings.ReplaceAll(value, "|", `\|`))
	}
	return b.String()
}

func (inv *Investigator) info(ctx context.Context, modes shell.Modes) error {
	p, err := inv.Load(ctx)
	if err != nil {
		return err
	}

	lines := profileLines(p)
	if inv.render {
		display.ShowContentRendered(inv.out, profileMarkdown(p))
	} else {
		for _, l := range lines {
			fmt.Fprintln(inv.out, l)
		}
	}
	return inv.persist(modes, "info", lines, p)
}

func (inv *Investigator) changeTarget(ctx context.Context, _ shell.Modes) error {
	name, err := inv.ask("Insert new target username: ")
	if err != nil {
		return err
	}
	if name == "" {
		return ErrEmptyTarget
	}

	previous, previousProfile := inv.target, inv.profile
	inv.target, inv.profile = name, nil
	if _, err := inv.Load(ctx); err != nil {
		inv.target, inv.profile = previous, previousProfile
		return err
	}

	inv.logger.Info("target changed", logging.Fields{"from": previous, "to": name})
	display.Highlight(inv.out, "New target set: %s\n", name)
	return nil
}

func (inv *Investigator) clearCache(_ context.Context, _ shell.Modes) error {
	if inv.cache == nil {
		display.Alert(inv.out, "Cache is disabled\n")
		return nil
	}
	n, err := inv.cache.Clear()
	if err != nil {
		return err
	}
	display.Highlight(inv.out, "Cache cleared: %d responses removed\n", n)
	return nil
}
