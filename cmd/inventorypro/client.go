package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/erazemk/inventorypro/internal/config"
	"github.com/erazemk/inventorypro/internal/kv"
	"github.com/erazemk/inventorypro/internal/model"
	"github.com/erazemk/inventorypro/internal/report"
	"github.com/erazemk/inventorypro/internal/session"
	"github.com/erazemk/inventorypro/pkg/client"
)

// requestTimeout bounds every client command.
const requestTimeout = 30 * time.Second

// clientFlags are shared by the commands that talk to a server.
type clientFlags struct {
	envFile string
	server  string
}

func (f *clientFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.envFile, "env", "", "")
	fs.StringVar(&f.envFile, "e", "", "")
	fs.StringVar(&f.server, "server", "", "")
}

const clientFlagsUsage = `  -e, -env <path>         .env file to load (default: .env if present)
  -server <url>           server URL (default: http://localhost:8080)
  -h, -help               show this help and exit
`

// clientEnv is an API client paired with the local session.
type clientEnv struct {
	api     *client.Client
	session *session.Session
	store   kv.Store
}

func (e *clientEnv) Close() error {
	return e.store.Close()
}

// open loads the configuration, opens the session file and builds a client
// carrying the stored token, if any.
func (f *clientFlags) open(ctx context.Context) (*clientEnv, error) {
	cfg, err := config.Load(f.envFile)
	if err != nil {
		return nil, err
	}
	if f.server != "" {
		cfg.Client.ServerURL = f.server
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Client.SessionPath), 0o700); err != nil {
		return nil, fmt.Errorf("creating session directory: %w", err)
	}
	backend, err := kv.Open(ctx, kv.Options{Driver: kv.DriverSQLite, Path: cfg.Client.SessionPath})
	if err != nil {
		return nil, fmt.Errorf("opening session: %w", err)
	}

	env := &clientEnv{
		api:     client.New(cfg.Client.ServerURL),
		session: session.New(backend),
		store:   backend,
	}
	id, err := env.session.Current(ctx)
	if err != nil {
		backend.Close()
		return nil, err
	}
	if id != nil {
		env.api.SetToken(id.Token)
	}
	return env, nil
}

func commandUsage(fs *flag.FlagSet, synopsis, extra string) {
	fs.Usage = func() {
		fmt.Fprintf(os.Stdout, "Usage: inventorypro %s\n\nFlags:\n%s%s", synopsis, extra, clientFlagsUsage)
	}
}

func cmdRegister(args []string) error {
	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	var flags clientFlags
	flags.register(fs)
	reg := model.Registration{Role: model.RoleStaff}
	fs.StringVar(&reg.Email, "email", "", "")
	fs.StringVar(&reg.Password, "password", "", "")
	fs.StringVar(&reg.Name, "name", "", "")
	commandUsage(fs, "register -email <email> -password <password> -name <name> [flags]", "")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	env, err := flags.open(ctx)
	if err != nil {
		return err
	}
	defer env.Close()

	user, err := env.api.Register(ctx, reg)
	if err != nil {
		return err
	}
	fmt.Printf("Account created for %s (%s). Log in to continue.\n", user.Email, user.Role)
	return nil
}

func cmdLogin(args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	var flags clientFlags
	flags.register(fs)
	var email, password string
	fs.StringVar(&email, "email", "", "")
	fs.StringVar(&password, "password", "", "")
	commandUsage(fs, "login -email <email> -password <password> [flags]", "")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	env, err := flags.open(ctx)
	if err != nil {
		return err
	}
	defer env.Close()

	if state, err := env.session.State(ctx); err != nil {
		return err
	} else if state == session.StateAuthenticated {
		return fmt.Errorf("%w; run logout first", session.ErrAlreadyAuthenticated)
	}

	res, err := env.api.Login(ctx, email, password)
	if err != nil {
		return err
	}
	if err := env.session.Authenticate(ctx, session.Identity{User: res.User, Token: res.Token}); err != nil {
		return err
	}
	fmt.Printf("Logged in as %s (%s)\n", res.User.Name, res.User.Role)
	return nil
}

func cmdLogout(args []string) error {
	fs := flag.NewFlagSet("logout", flag.ContinueOnError)
	var flags clientFlags
	flags.register(fs)
	commandUsage(fs, "logout [flags]", "")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	env, err := flags.open(ctx)
	if err != nil {
		return err
	}
	defer env.Close()

	id, err := env.session.Current(ctx)
	if err != nil {
		return err
	}
	if id == nil {
		fmt.Println("Not logged in.")
		return nil
	}

	// The local session is cleared even if the server is unreachable.
	logoutErr := env.api.Logout(ctx)
	if err := env.session.Clear(ctx); err != nil {
		return err
	}
	if logoutErr != nil {
		fmt.Fprintf(os.Stderr, "warning: server logout failed: %v\n", logoutErr)
	}
	fmt.Println("Logged out.")
	return nil
}

func cmdWhoami(args []string) error {
	fs := flag.NewFlagSet("whoami", flag.ContinueOnError)
	var flags clientFlags
	flags.register(fs)
	commandUsage(fs, "whoami [flags]", "")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	env, err := flags.open(ctx)
	if err != nil {
		return err
	}
	defer env.Close()

	id, err := env.session.Current(ctx)
	if err != nil {
		return err
	}
	if id == nil {
		fmt.Println("Not logged in.")
		return nil
	}

	user, err := env.api.Me(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("%s <%s> (%s)\n", user.Name, user.Email, user.Role)
	return nil
}

// requireSession fails when no identity is stored.
func requireSession(ctx context.Context, env *clientEnv) error {
	state, err := env.session.State(ctx)
	if err != nil {
		return err
	}
	if state != session.StateAuthenticated {
		return errors.New("not logged in")
	}
	return nil
}

// writeDownload saves d to out, or under the server-provided name.
func writeDownload(d *client.Download, out string) (string, error) {
	path := out
	if path == "" {
		path = d.FileName
	}
	if err := os.WriteFile(path, d.Data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}

func cmdExport(args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	var flags clientFlags
	flags.register(fs)
	var resource, out, search, category, warehouse, status string
	fs.StringVar(&resource, "resource", "inventory", "")
	fs.StringVar(&resource, "r", "inventory", "")
	fs.StringVar(&out, "out", "", "")
	fs.StringVar(&out, "o", "", "")
	fs.StringVar(&search, "search", "", "")
	fs.StringVar(&category, "category", "", "")
	fs.StringVar(&warehouse, "warehouse", "", "")
	fs.StringVar(&status, "status", "", "")
	commandUsage(fs, "export [flags]",
		"  -r, -resource <name>    inventory, warehouses or transfers (default: inventory)\n"+
			"  -o, -out <path>         output file (default: the server's file name)\n"+
			"  -search, -category, -warehouse, -status <value>   list filters\n")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	switch resource {
	case "inventory", "warehouses", "transfers":
	default:
		return fmt.Errorf("unknown resource %q", resource)
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	env, err := flags.open(ctx)
	if err != nil {
		return err
	}
	defer env.Close()
	if err := requireSession(ctx, env); err != nil {
		return err
	}

	filters := map[string]string{}
	for key, value := range map[string]string{"search": search, "category": category, "warehouse": warehouse, "status": status} {
		if value != "" {
			filters[key] = value
		}
	}

	d, err := env.api.Export(ctx, resource, filters)
	if err != nil {
		return err
	}
	path, err := writeDownload(d, out)
	if err != nil {
		return err
	}
	fmt.Printf("Saved %s\n", path)
	return nil
}

func cmdReport(args []string) error {
	fs := flag.NewFlagSet("report", flag.ContinueOnError)
	var flags clientFlags
	flags.register(fs)
	var typ, warehouse, category, out string
	var asCSV bool
	fs.StringVar(&typ, "type", string(report.TypeSummary), "")
	fs.StringVar(&typ, "t", string(report.TypeSummary), "")
	fs.StringVar(&warehouse, "warehouse", "", "")
	fs.StringVar(&category, "category", "", "")
	fs.BoolVar(&asCSV, "csv", false, "")
	fs.StringVar(&out, "out", "", "")
	fs.StringVar(&out, "o", "", "")
	commandUsage(fs, "report [flags]",
		"  -t, -type <type>        one of "+reportTypeList()+"\n"+
			"  -warehouse <name>       only items in this warehouse\n"+
			"  -category <name>        only items in this category\n"+
			"  -csv                    save as CSV instead of printing\n"+
			"  -o, -out <path>         CSV output file (default: the server's file name)\n")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	t := report.Type(typ)
	if !t.Valid() {
		return fmt.Errorf("unknown report type %q, want one of %s", typ, reportTypeList())
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	env, err := flags.open(ctx)
	if err != nil {
		return err
	}
	defer env.Close()
	if err := requireSession(ctx, env); err != nil {
		return err
	}

	opts := client.ReportOptions{Warehouse: warehouse, Category: category}
	if asCSV {
		d, err := env.api.ReportCSV(ctx, t, opts)
		if err != nil {
			return err
		}
		path, err := writeDownload(d, out)
		if err != nil {
			return err
		}
		fmt.Printf("Saved %s\n", path)
		return nil
	}

	rep, err := env.api.Report(ctx, t, opts)
	if err != nil {
		return err
	}
	printReport(rep)
	return nil
}

func reportTypeList() string {
	names := make([]string, len(report.Types))
	for i, t := range report.Types {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}

func printReport(rep *report.Report) {
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tSTOCK\tSTATUS\tWAREHOUSE\tEXTRA")
	for _, row := range rep.Rows {
		extra := ""
		switch {
		case row.Movement != nil:
			extra = fmt.Sprintf("moved %d", *row.Movement)
		case row.Value != nil:
			extra = "$" + row.Value.StringFixed(2)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%s\t%s\n",
			row.ID, row.Name, row.Category, row.Stock, row.Status, row.Warehouse, extra)
	}
	tw.Flush()
	if rep.TotalValue != nil {
		fmt.Printf("\nTotal value: $%s\n", rep.TotalValue.StringFixed(2))
	}
}
