// Package main provides panelctl, the league panel operator CLI.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/league-panel/internal/adapter"
	"github.com/league-panel/internal/config"
	"github.com/league-panel/internal/credentials"
	apperrors "github.com/league-panel/internal/errors"
	"github.com/league-panel/internal/logging"
	"github.com/league-panel/internal/models"
	"github.com/league-panel/internal/session"
	"github.com/league-panel/internal/storage"
)

const usage = `usage: panelctl [flags] <command> [args]

commands:
  login <username>                 sign in (password from -password, $PANELCTL_PASSWORD or stdin)
  logout                           forget the stored token and username
  status                           show who is signed in
  list <resource>                  tokens, cards, rarities, pack-types, reward-types, tournaments, prizes, users
  scheduler status|trigger         price collection scheduler
  stats users|tournaments          backend statistics summaries
  users duplicates                 run the duplicate-account search
  cards activate <id>              mark a card active
  audit                            recent console actions from the audit log (-operator, -limit)

flags:
`

var errUsage = errors.New("invalid usage")

// auditLog reads the console's operator audit log
type auditLog interface {
	Recent(ctx context.Context, operator string, limit int) ([]*models.AuditEntry, error)
}

// openAuditLog connects to the audit database; the returned func releases it
var openAuditLog = func(ctx context.Context, cfg *config.PostgresConfig) (auditLog, func(), error) {
	db, err := storage.NewPostgresDB(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return storage.NewAuditRepository(db), db.Close, nil
}

// cli holds what every command needs
type cli struct {
	client   *adapter.Client
	session  *session.Controller
	store    *credentials.FileStore
	page     adapter.Pagination
	filters  listFilters
	operator string
	limit    int
	postgres *config.PostgresConfig
	password string
	in       io.Reader
	out      io.Writer
}

// listFilters holds the list flags; the id pointers are nil unless the flag was given
type listFilters struct {
	activeOnly   string
	tokenID      *int64
	rarity       string
	status       string
	tournamentID *int64
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	os.Exit(run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes one command and returns the process exit code
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := config.LoadConfig()
	if err != nil {
		color.New(color.FgRed).Fprintf(stderr, "config: %v\n", err)
		return 1
	}

	fs := flag.NewFlagSet("panelctl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}
	apiURL := fs.String("api", cfg.API.BaseURL, "backend base URL")
	credsPath := fs.String("credentials", cfg.CLI.CredentialsPath, "credentials file")
	timeout := fs.Duration("timeout", cfg.API.Timeout, "backend request timeout")
	verbose := fs.Bool("v", false, "log backend requests to stderr")
	password := fs.String("password", "", "password for login (default $PANELCTL_PASSWORD)")
	skip := fs.Int("skip", 0, "list: records to skip")
	limit := fs.Int("limit", cfg.Server.PageSize, "list: page size")
	var filters listFilters
	fs.StringVar(&filters.activeOnly, "active-only", "", "list: true or false")
	tokenID := fs.Int64("token", 0, "list cards: token id")
	fs.StringVar(&filters.rarity, "rarity", "", "list cards: rarity name")
	fs.StringVar(&filters.status, "status", "", "list tournaments: status")
	tournamentID := fs.Int64("tournament", 0, "list prizes: tournament id")
	operator := fs.String("operator", "", "audit: only this operator's actions")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return 2
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "token":
			filters.tokenID = tokenID
		case "tournament":
			filters.tournamentID = tournamentID
		}
	})

	level := logging.LevelError
	if *verbose {
		level = logging.LevelDebug
	}
	logging.SetGlobalLogger(logging.NewLoggerWithOutput(level, logging.FormatText, stderr))

	store := credentials.NewFileStore(*credsPath)
	client := adapter.NewClient(adapter.NewGateway(*apiURL, *timeout))
	sessions := session.NewManager(client.Auth, cfg.Credentials.TokenTTL, cfg.Credentials.UsernameTTL)

	c := &cli{
		client:   client,
		session:  sessions.Controller(store),
		store:    store,
		page:     adapter.PageOf(*skip, *limit),
		filters:  filters,
		operator: *operator,
		limit:    *limit,
		postgres: &cfg.Database.Postgres,
		password: *password,
		in:       stdin,
		out:      stdout,
	}

	ctx = credentials.WithStore(ctx, store)
	ctx = logging.WithLogger(ctx, logging.GetGlobalLogger())

	if err := c.dispatch(ctx, fs.Args()); err != nil {
		if errors.Is(err, errUsage) {
			fs.Usage()
			return 2
		}
		msg := apperrors.UserMessage(err)
		if msg == "" || msg == "internal error" {
			msg = err.Error()
		}
		color.New(color.FgRed).Fprintf(stderr, "error: %s\n", msg)
		return 1
	}
	return 0
}

func (c *cli) dispatch(ctx context.Context, args []string) error {
	cmd, rest := args[0], args[1:]
	switch cmd {
	case "login":
		return c.login(ctx, rest)
	case "logout":
		return c.logout(ctx)
	case "status":
		return c.status(ctx)
	}

	if !c.session.IsAuthenticated(ctx) {
		return errors.New("not signed in; run: panelctl login <username>")
	}

	switch cmd {
	case "list":
		if len(rest) != 1 {
			return errUsage
		}
		return c.list(ctx, rest[0])
	case "scheduler":
		return c.scheduler(ctx, rest)
	case "stats":
		return c.stats(ctx, rest)
	case "users":
		if len(rest) != 1 || rest[0] != "duplicates" {
			return errUsage
		}
		return c.report(ctx, "No duplicate accounts found", c.client.Users.SearchDuplicates)
	case "cards":
		return c.cards(ctx, rest)
	case "audit":
		if len(rest) != 0 {
			return errUsage
		}
		return c.audit(ctx)
	default:
		return errUsage
	}
}

func (c *cli) login(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	username := args[0]

	password := c.password
	if password == "" {
		password = os.Getenv("PANELCTL_PASSWORD")
	}
	if password == "" {
		fmt.Fprint(c.out, "Password: ")
		line, err := bufio.NewReader(c.in).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("read password: %w", err)
		}
		password = strings.TrimRight(line, "\r\n")
		fmt.Fprintln(c.out)
	}
	if password == "" {
		return apperrors.NewMissingFieldError("password")
	}

	if err := c.session.Login(ctx, username, password); err != nil {
		return err
	}
	color.New(color.FgGreen).Fprintf(c.out, "Signed in as %s\n", username)
	return nil
}

func (c *cli) logout(ctx context.Context) error {
	if err := c.session.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(c.out, "Signed out")
	return nil
}

func (c *cli) status(ctx context.Context) error {
	state := c.session.State(ctx)
	switch {
	case state.Authenticated:
		color.New(color.FgGreen).Fprintf(c.out, "Signed in as %s\n", state.Username)
	case c.session.Username(ctx) != "":
		color.New(color.FgYellow).Fprintf(c.out, "Session expired for %s\n", c.session.Username(ctx))
	default:
		fmt.Fprintln(c.out, "Not signed in")
	}
	fmt.Fprintf(c.out, "Credentials: %s\n", c.store.Path())
	return nil
}

func (c *cli) scheduler(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	switch args[0] {
	case "status":
		return c.report(ctx, "", c.client.Tokens.SchedulerStatus)
	case "trigger":
		return c.report(ctx, "Price collection started", c.client.Tokens.TriggerScheduler)
	default:
		return errUsage
	}
}

func (c *cli) stats(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	switch args[0] {
	case "users":
		return c.report(ctx, "", c.client.Users.StatsSummary)
	case "tournaments":
		return c.report(ctx, "", c.client.Tournaments.StatsSummary)
	default:
		return errUsage
	}
}

func (c *cli) cards(ctx context.Context, args []string) error {
	if len(args) != 2 || args[0] != "activate" {
		return errUsage
	}
	id, err := parseID(args[1])
	if err != nil {
		return err
	}
	return c.report(ctx, "Card activated", func(ctx context.Context) (string, error) {
		return c.client.Cards.Activate(ctx, id)
	})
}

func (c *cli) audit(ctx context.Context) error {
	log, release, err := openAuditLog(ctx, c.postgres)
	if err != nil {
		return err
	}
	defer release()

	entries, err := log.Recent(ctx, c.operator, c.limit)
	if err != nil {
		return err
	}

	t := &table{
		header: []string{"TIME", "OPERATOR", "METHOD", "PATH", "STATUS", "DURATION", "REQUEST"},
		total:  len(entries),
	}
	for _, e := range entries {
		t.rows = append(t.rows, []string{
			e.CreatedAt.Local().Format(time.DateTime),
			e.Operator,
			e.Method,
			e.Path,
			strconv.Itoa(e.Status),
			e.Duration.String(),
			e.RequestID,
		})
	}
	c.print(t)
	return nil
}

// report prints the text of an action or report endpoint, or fallback when it is empty
func (c *cli) report(ctx context.Context, fallback string, call func(context.Context) (string, error)) error {
	text, err := call(ctx)
	if err != nil {
		return err
	}
	if text == "" {
		text = fallback
	}
	fmt.Fprintln(c.out, text)
	return nil
}
