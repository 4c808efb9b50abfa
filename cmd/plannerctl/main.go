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
	"sort"
	"strings"
	"syscall"

	"daily-planner-go/internal/app"
	"daily-planner-go/internal/config"
	"daily-planner-go/internal/domain/notify"
	"daily-planner-go/internal/domain/session"
	"daily-planner-go/pkg/logger"

	"golang.org/x/term"
)

var errNotLoggedIn = errors.New("not logged in, run: plannerctl login")

type command struct {
	summary string
	run     func(ctx context.Context, env *env, args []string) error
}

var commands = map[string]command{
	"login":       {"log in with a username or phone number", cmdLogin},
	"register":    {"create an account and log in", cmdRegister},
	"logout":      {"forget the stored token", cmdLogout},
	"whoami":      {"verify the stored token and show the user", cmdWhoami},
	"plans":       {"list the plans of a day", cmdPlans},
	"plan-add":    {"add a plan", cmdPlanAdd},
	"plan-done":   {"toggle a plan between pending and completed", cmdPlanDone},
	"plan-rm":     {"delete a plan", cmdPlanRemove},
	"expenses":    {"list expenses with totals", cmdExpenses},
	"expense-add": {"record an expense", cmdExpenseAdd},
	"export":      {"write expenses to an XLSX file", cmdExport},
	"water":       {"show today's water intake", cmdWater},
	"water-add":   {"log a drink", cmdWaterAdd},
	"reminders":   {"list server reminders", cmdReminders},
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// env is what every command works with.
type env struct {
	services *app.Services
	stdin    io.Reader
	stdout   io.Writer
	stderr   io.Writer
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("plannerctl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	apiURL := fs.String("api", "", "API base URL (overrides API_BASE_URL)")
	dbPath := fs.String("db", "", "SQLite file for tokens and water records (overrides SQLITE_PATH)")
	fs.Usage = func() { usage(stderr, fs) }

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		usage(stdout, fs)
		return fmt.Errorf("missing command")
	}

	name := fs.Arg(0)
	cmd, ok := commands[name]
	if !ok {
		return fmt.Errorf("unknown command %q", name)
	}

	log := logger.NewFromEnv(stderr)
	cfg, err := config.Load(log)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if *apiURL != "" {
		cfg.API.BaseURL = strings.TrimRight(*apiURL, "/")
		cfg.API.AdminBaseURL = cfg.API.BaseURL + "/admin"
	}
	if *dbPath != "" {
		cfg.Storage.Driver = config.StorageSQLite
		cfg.Storage.SQLitePath = *dbPath
	}

	storage, err := app.OpenStorage(cfg, log)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer storage.Close()

	services, err := app.NewServices(cfg, storage.Prefs, notify.NewLoggingScheduler(log), log)
	if err != nil {
		return err
	}

	return cmd.run(ctx, &env{services: services, stdin: stdin, stdout: stdout, stderr: stderr}, fs.Args()[1:])
}

func usage(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(w, "Usage: plannerctl [-api <url>] [-db <path>] <command> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %-12s %s\n", name, commands[name].summary)
	}
	fmt.Fprintln(w)
	fs.SetOutput(w)
	fs.PrintDefaults()
}

// requireSession verifies the stored token before a command talks to the API.
func (e *env) requireSession(ctx context.Context) (session.User, error) {
	if e.services.Session.CheckAuth(ctx) != session.StateLoggedIn {
		return session.User{}, errNotLoggedIn
	}
	user, ok := e.services.Session.User()
	if !ok {
		return session.User{}, errNotLoggedIn
	}
	return user, nil
}

func readPassword(stdin io.Reader) (string, error) {
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		bytePassword, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", err
		}
		return string(bytePassword), nil
	}

	// Pipes and tests.
	scanner := bufio.NewScanner(stdin)
	if scanner.Scan() {
		return scanner.Text(), nil
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

func (e *env) promptPassword(label string) (string, error) {
	fmt.Fprint(e.stdout, label)
	password, err := readPassword(e.stdin)
	fmt.Fprintln(e.stdout)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return password, nil
}

func newFlagSet(name string, e *env) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	return fs
}
