package investigator

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/quocvuong92/osint-shell/internal/api"
	"github.com/quocvuong92/osint-shell/internal/display"
	"github.com/quocvuong92/osint-shell/internal/shell"
)

type relation int

const (
	followersOf relation = iota
	followingsOf
)

func (r relation) String() string {
	if r == followingsOf {
		return "followings"
	}
	return "followers"
}

func (inv *Investigator) fetchUsers(ctx context.Context, rel relation) ([]api.User, error) {
	p, err := inv.accessible(ctx)
	if err != nil {
		return nil, err
	}
	sp := display.NewSpinner("Fetching " + rel.String() + "...")
	sp.Start()
	defer sp.Stop()

	if rel == followingsOf {
		return inv.src.Followings(ctx, p.ID)
	}
	return inv.src.Followers(ctx, p.ID)
}

func (inv *Investigator) listUsers(ctx context.Context, modes shell.Modes, rel relation) error {
	users, err := inv.fetchUsers(ctx, rel)
	if err != nil {
		return err
	}

	lines := make([]string, len(users))
	for i, u := range users {
		lines[i] = fmt.Sprintf("%s\t%s\t%s", u.ID, u.Username, u.FullName)
	}
	return inv.emit(modes, rel.String(), lines, users)
}

func (inv *Investigator) followers(ctx context.Context, modes shell.Modes) error {
	return inv.listUsers(ctx, modes, followersOf)
}

func (inv *Investigator) followings(ctx context.Context, modes shell.Modes) error {
	return inv.listUsers(ctx, modes, followingsOf)
}

// contactField picks one public contact field from a user's details.
type contactField func(*api.User) string

func email(u *api.User) string { return u.PublicEmail }
func phone(u *api.User) string { return u.PublicPhone }

// Contact is a related user with one public contact field.
type Contact struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Value    string `json:"value"`
}

// contacts looks up each related user's details concurrently and keeps those
// with a non-empty field, in listing order.
func (inv *Investigator) contacts(ctx context.Context, modes shell.Modes, rel relation, command string, field contactField) error {
	users, err := inv.fetchUsers(ctx, rel)
	if err != nil {
		return err
	}

	sp := display.NewSpinner(fmt.Sprintf("Looking up %d users...", len(users)))
	sp.Start()
	details := make([]*api.User, len(users))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(inv.concurrency)
	for i, u := range users {
		g.Go(func() error {
			d, err := inv.src.UserByID(gctx, u.ID)
			if err != nil {
				return err
			}
			details[i] = d
			return nil
		})
	}
	err = g.Wait()
	sp.Stop()
	if err != nil {
		return err
	}

	var (
		found []Contact
		lines []string
	)
	for i, d := range details {
		v := field(d)
		if v == "" {
			continue
		}
		u := users[i]
		found = append(found, Contact{ID: u.ID, Username: u.Username, FullName: u.FullName, Value: v})
		lines = append(lines, fmt.Sprintf("%s\t%s\t%s", u.Username, u.FullName, v))
	}
	return inv.emit(modes, command, lines, found)
}

func (inv *Investigator) followersEmail(ctx context.Context, modes shell.Modes) error {
	return inv.contacts(ctx, modes, followersOf, "fwersemail", email)
}

func (inv *Investigator) followingsEmail(ctx context.Context, modes shell.Modes) error {
	return inv.contacts(ctx, modes, followingsOf, "fwingsemail", email)
}

func (inv *Investigator) followersNumber(ctx context.Context, modes shell.Modes) error {
	return inv.contacts(ctx, modes, followersOf, "fwersnumber", phone)
}

func (inv *Investigator) followingsNumber(ctx context.Context, modes shell.Modes) error {
	return inv.contacts(ctx, modes, followingsOf, "fwingsnumber", phone)
}
