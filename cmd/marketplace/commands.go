package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/barbercommunity/marketplace/internal/core/domain"
)

type command struct {
	summary string
	run     func(ctx context.Context, a *app, args []string) error
}

var commandOrder = []string{"login", "register", "logout", "whoami", "feed", "barbers", "search", "cities", "profile", "contact"}

var commands = map[string]command{
	"login":    {"sign in with email and password", runLogin},
	"register": {"create an account and sign in", runRegister},
	"logout":   {"forget the saved session", runLogout},
	"whoami":   {"show the current session", runWhoami},
	"feed":     {"list recent posts", runFeed},
	"barbers":  {"list barbers", runBarbers},
	"search":   {"find barbers by city", runSearch},
	"cities":   {"list cities with barbers", runCities},
	"profile":  {"show a barber's profile", runProfile},
	"contact":  {"send a message to a barber (clients only)", runContact},
}

func newFlagSet(name string) *pflag.FlagSet {
	return pflag.NewFlagSet(name, pflag.ContinueOnError)
}

func runLogin(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet("login")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	user, err := a.session.Login(ctx, *email, *password)
	if err != nil {
		return err
	}
	return a.print(user, func() { fmt.Fprintf(a.out, "signed in as %s (%s)\n", user.Name, roleLabel(user.Role)) })
}

func runRegister(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet("register")
	name := fs.String("name", "", "display name")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "password (at least 6 characters)")
	role := fs.String("role", "", "barber or client")
	location := fs.String("location", "", "city")
	if err := fs.Parse(args); err != nil {
		return err
	}

	r, err := parseRoleFlag(*role)
	if err != nil {
		return err
	}
	user, err := a.session.Register(ctx, domain.Registration{
		Name:     *name,
		Email:    *email,
		Password: *password,
		Role:     r,
		Location: *location,
	})
	if err != nil {
		return err
	}
	return a.print(user, func() { fmt.Fprintf(a.out, "welcome %s, you are registered as %s\n", user.Name, roleLabel(user.Role)) })
}

func runLogout(ctx context.Context, a *app, _ []string) error {
	a.session.Logout(ctx)
	fmt.Fprintln(a.out, "signed out")
	return nil
}

func runWhoami(_ context.Context, a *app, _ []string) error {
	snap := a.session.Snapshot()
	if a.json {
		return a.print(map[string]any{
			"state":         snap.State(),
			"user":          snap.User,
			"isProvider":    snap.IsProvider(),
			"isClient":      snap.IsClient(),
			"canContact":    snap.CanContact(),
			"canCreatePost": snap.CanCreatePost(),
		}, nil)
	}
	if !snap.IsAuthenticated() {
		fmt.Fprintln(a.out, "not signed in")
		return nil
	}
	fmt.Fprintf(a.out, "%s <%s>\nrole: %s\n", snap.User.Name, snap.User.Email, roleLabel(snap.User.Role))
	if snap.User.Location != "" {
		fmt.Fprintf(a.out, "location: %s\n", snap.User.Location)
	}
	return nil
}

func runFeed(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet("feed")
	limit := fs.Int("limit", 0, "posts per page")
	offset := fs.Int("offset", 0, "posts to skip")
	if err := fs.Parse(args); err != nil {
		return err
	}

	page, err := a.market.Feed(ctx, *limit, *offset)
	if err != nil {
		return err
	}
	return a.print(page, func() {
		for _, p := range page.Posts {
			fmt.Fprintf(a.out, "[%s] %s (%s): %s  ♥ %d\n", p.ID, p.UserName, p.UserLocation, p.Content, p.LikesCount)
		}
		if page.Pagination.HasMore {
			fmt.Fprintf(a.out, "more: --offset %d\n", page.Pagination.Offset+len(page.Posts))
		}
	})
}

func runBarbers(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet("barbers")
	limit := fs.Int("limit", 0, "barbers per page")
	offset := fs.Int("offset", 0, "barbers to skip")
	if err := fs.Parse(args); err != nil {
		return err
	}

	page, err := a.market.Barbers(ctx, *limit, *offset)
	if err != nil {
		return err
	}
	return a.print(page, func() {
		printBarbers(a, page.Barbers)
		if page.Pagination.HasMore {
			fmt.Fprintf(a.out, "more: --offset %d\n", page.Pagination.Offset+len(page.Barbers))
		}
	})
}

func runSearch(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet("search")
	city := fs.String("city", "", "city to search")
	limit := fs.Int("limit", 0, "maximum results")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *city == "" && fs.NArg() > 0 {
		*city = strings.Join(fs.Args(), " ")
	}

	barbers, err := a.market.SearchBarbers(ctx, *city, *limit)
	if err != nil {
		return err
	}
	return a.print(barbers, func() { printBarbers(a, barbers) })
}

func runCities(ctx context.Context, a *app, _ []string) error {
	cities, err := a.market.Cities(ctx)
	if err != nil {
		return err
	}
	return a.print(cities, func() {
		for _, c := range cities {
			fmt.Fprintln(a.out, c)
		}
	})
}

func runProfile(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet("profile")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: marketplace profile <barber-id>")
	}

	profile, err := a.market.BarberProfile(ctx, domain.ID(fs.Arg(0)))
	if err != nil {
		return err
	}
	return a.print(profile, func() {
		b := profile.Barber
		fmt.Fprintf(a.out, "%s, %s\nrating %.1f, %d years\n", b.Name, b.Location, b.Rating, b.ExperienceYears)
		if b.Services != "" {
			fmt.Fprintf(a.out, "services: %s\n", b.Services)
		}
		fmt.Fprintf(a.out, "posts: %d, contacts: %d\n", profile.Stats.TotalPosts, profile.Stats.TotalContacts)
	})
}

func runContact(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet("contact")
	barber := fs.String("barber", "", "barber id")
	message := fs.String("message", "", "message text")
	email := fs.String("email", "", "reply email (defaults to your account email)")
	phone := fs.String("phone", "", "reply phone")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *email == "" {
		if u := a.session.Snapshot().User; u != nil {
			*email = u.Email
		}
	}
	err := a.market.Contact(ctx, domain.ContactMessage{
		BarberID: domain.ID(*barber),
		Message:  *message,
		Email:    *email,
		Phone:    *phone,
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "message sent")
	return nil
}

func (a *app) print(v any, text func()) error {
	if a.json || text == nil {
		enc := json.NewEncoder(a.out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	text()
	return nil
}

func printBarbers(a *app, barbers []domain.Barber) {
	if len(barbers) == 0 {
		fmt.Fprintln(a.out, "no barbers found")
		return
	}
	for _, b := range barbers {
		fmt.Fprintf(a.out, "[%s] %s, %s  ★ %.1f\n", b.ID, b.Name, b.Location, b.Rating)
	}
}

// parseRoleFlag accepts barber/client besides the wire spellings.
func parseRoleFlag(s string) (domain.Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "barber":
		return domain.RoleProvider, nil
	case "client":
		return domain.RoleClient, nil
	case "":
		return "", nil
	}
	return domain.ParseRole(s)
}

func roleLabel(r domain.Role) string {
	switch r {
	case domain.RoleProvider:
		return "barber"
	case domain.RoleClient:
		return "client"
	}
	return string(r)
}
