package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/term"
	"go.uber.org/zap"

	"github.com/ikyyy777/TPLM-website-wisata-desa-banjarpanepen/internal/config"
	"github.com/ikyyy777/TPLM-website-wisata-desa-banjarpanepen/internal/logging"
	"github.com/ikyyy777/TPLM-website-wisata-desa-banjarpanepen/internal/session"
	"github.com/ikyyy777/TPLM-website-wisata-desa-banjarpanepen/internal/tui"
	"github.com/ikyyy777/TPLM-website-wisata-desa-banjarpanepen/internal/web"
	"github.com/ikyyy777/TPLM-website-wisata-desa-banjarpanepen/pkg/client"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

const (
	// envFile is read from the working directory when present.
	envFile        = ".env"
	requestTimeout = 30 * time.Second
)

var errLoginFailed = errors.New("login gagal: username atau password salah")

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cmd := ""
	if len(args) > 0 {
		cmd = args[0]
	}

	switch cmd {
	case "--version", "version", "-v":
		fmt.Println("banjarpanepen " + version)
		return nil
	case "help", "--help", "-h":
		printHelp()
		return nil
	case "", "login", "logout", "serve":
	default:
		printHelp()
		return fmt.Errorf("unknown command %q", cmd)
	}

	cfg, err := config.Load(envFile)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg, cmd == "serve")
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	d := wire(cfg, logger)
	switch cmd {
	case "login":
		return runLogin(d, os.Stdin)
	case "logout":
		return runLogout(d)
	case "serve":
		return runServe(cfg, d)
	}
	return runTUI(d)
}

// deps is everything the commands share.
type deps struct {
	public   *client.Client
	admin    *client.Client
	sessions *session.Manager
	guard    *session.Guard
	logger   *zap.Logger
}

// wire builds the API clients and the session. The admin client reads the
// token from the session on every request, so a login or logout takes effect
// immediately.
func wire(cfg *config.Config, logger *zap.Logger) deps {
	store := session.WithEnvToken(session.NewFileStore(cfg.TokenPath), cfg.Token)
	public := client.New(cfg.Endpoints, nil)
	sessions := session.NewManager(store, public, logging.WithComponent(logger, "session"))
	admin := client.New(cfg.Endpoints, client.TokenFunc(sessions.Token))
	return deps{
		public:   public,
		admin:    admin,
		sessions: sessions,
		guard:    session.NewGuard(sessions, public, logging.WithComponent(logger, "guard")),
		logger:   logger,
	}
}

// newLogger logs to a file unless serving: the terminal UI owns stdout.
func newLogger(cfg *config.Config, serve bool) (*zap.Logger, error) {
	path := cfg.Log.File
	if path == "" && !serve {
		p, err := config.DefaultLogPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	return logging.New(cfg.Log.Level, cfg.Log.Env, path)
}

func runTUI(d deps) error {
	app := tui.NewApp(tui.Deps{
		Public:   d.public,
		Admin:    d.admin,
		Sessions: d.sessions,
		Guard:    d.guard,
		Logger:   logging.WithComponent(d.logger, "tui"),
		Version:  version,
	})
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

func runLogin(d deps, in io.Reader) error {
	username, password, err := readCredentials(in, os.Stdout)
	if err != nil {
		return err
	}
	if username == "" || password == "" {
		return errors.New("username dan password wajib diisi")
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()
	if !d.sessions.Login(ctx, username, password) {
		return errLoginFailed
	}
	printLoggedIn(username)
	return nil
}

func runLogout(d deps) error {
	if !d.sessions.IsAuthenticated() {
		fmt.Println("Belum login.")
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()
	d.sessions.Logout(ctx)
	printLoggedOut()
	return nil
}

func runServe(cfg *config.Config, d deps) error {
	srv, err := web.New(d.public, cfg.Web.CacheTTL, logging.WithComponent(d.logger, "web"))
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return srv.Run(ctx, cfg.Web.Addr)
}

// readCredentials prompts for a username and password. The password is read
// without echo when in is a terminal.
func readCredentials(in io.Reader, out io.Writer) (string, string, error) {
	r := bufio.NewReader(in)

	fmt.Fprint(out, "Username: ") //nolint:errcheck
	username, err := r.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", "", fmt.Errorf("read username: %w", err)
	}

	fmt.Fprint(out, "Password: ") //nolint:errcheck
	var password string
	if f, ok := in.(*os.File); ok && term.IsTerminal(f.Fd()) {
		b, err := term.ReadPassword(f.Fd())
		fmt.Fprintln(out) //nolint:errcheck
		if err != nil {
			return "", "", fmt.Errorf("read password: %w", err)
		}
		password = string(b)
	} else {
		password, err = r.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", "", fmt.Errorf("read password: %w", err)
		}
	}
	return strings.TrimSpace(username), strings.TrimRight(password, "\r\n"), nil
}
