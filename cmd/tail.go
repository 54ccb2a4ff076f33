package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"
	"github.com/zhubert/parley/internal/config"
	perrors "github.com/zhubert/parley/internal/errors"
	"github.com/zhubert/parley/internal/logger"
	"github.com/zhubert/parley/internal/protocol"
	"github.com/zhubert/parley/internal/router"
	"github.com/zhubert/parley/internal/session"
	"github.com/zhubert/parley/internal/ui"
	"golang.org/x/term"
)

// passwordEnv holds the password for unattended runs.
const passwordEnv = "PARLEY_PASSWORD"

const tailConnectTimeout = 15 * time.Second

var (
	tailOnly  string
	tailPlain bool
)

var tailCmd = &cobra.Command{
	Use:   "tail",
	Short: "Print incoming chat lines without the TUI",
	Long: `Logs in and prints every line the server sends, prefixed with the
conversation it was routed to, until interrupted.

The password is read from $PARLEY_PASSWORD, then from a prompt. With
neither, a password remembered by the TUI for the same user and server
is used.`,
	RunE: runTail,
}

func init() {
	tailCmd.Flags().StringVar(&tailOnly, "only", "", "Only print lines routed to this conversation")
	tailCmd.Flags().BoolVar(&tailPlain, "plain", false, "Disable colors")
	rootCmd.AddCommand(tailCmd)
}

// lineSource is the part of a session tail reads from.
type lineSource interface {
	Lines() <-chan string
	Err() error
}

// tailTarget is who to log in as, after flags and saved settings are merged.
type tailTarget struct {
	server    string
	user      string
	transport string
}

func resolveTarget(cfg *config.Config) (tailTarget, error) {
	saved := cfg.GetLogin()
	t := tailTarget{server: serverFlag, user: userFlag, transport: transportFlag}
	if t.server == "" {
		t.server = saved.Server
	}
	if t.server == "" {
		t.server = config.DefaultServer
	}
	if t.user == "" {
		t.user = saved.Username
	}
	if t.transport == "" {
		t.transport = cfg.GetTransport()
	}
	if t.user == "" {
		return t, perrors.E(perrors.Op("cmd.tail"), perrors.KindInvalid, "a username is required (--user)")
	}
	return t, nil
}

// promptPassword reads a password from the terminal without echo. It
// returns "" when stdin is not a terminal.
var promptPassword = func(user string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", nil
	}
	fmt.Fprintf(os.Stderr, "Password for %s: ", user)
	b, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// resolvePasswordHash picks the password hash to log in with: the
// environment, then the prompt, then the remembered hash for the same
// user and server.
func resolvePasswordHash(t tailTarget, saved config.LoginInfo, env string) (string, error) {
	if env != "" {
		return protocol.HashPassword(env, t.user), nil
	}
	pw, err := promptPassword(t.user)
	if err != nil {
		return "", err
	}
	if pw != "" {
		return protocol.HashPassword(pw, t.user), nil
	}
	if saved.PasswordHash != "" && saved.Username == t.user && saved.Server == t.server {
		return saved.PasswordHash, nil
	}
	return "", perrors.E(perrors.Op("cmd.tail"), perrors.KindInvalid, "no password given (set "+passwordEnv+")")
}

func runTail(cmd *cobra.Command, args []string) error {
	if err := validateTransport(transportFlag); err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	defer logger.Close()

	target, err := resolveTarget(cfg)
	if err != nil {
		return err
	}
	hash, err := resolvePasswordHash(target, cfg.GetLogin(), os.Getenv(passwordEnv))
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	log := logger.WithComponent("tail")
	go func() {
		select {
		case sig := <-sigCh:
			log.Info("received signal, disconnecting", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	dialCtx, dialCancel := context.WithTimeout(ctx, tailConnectTimeout)
	s, err := session.Connect(dialCtx, session.Options{
		Server:       target.server,
		Transport:    target.transport,
		Username:     target.user,
		PasswordHash: hash,
	})
	dialCancel()
	if err != nil {
		return fmt.Errorf("connecting to %s: %s", target.server, perrors.Message(err))
	}
	defer s.Close()

	// Closing the session ends the Lines channel, which ends printLines.
	go func() {
		<-ctx.Done()
		s.Close()
	}()

	fmt.Fprintf(cmd.ErrOrStderr(), "Connected to %s as %s. Press Ctrl+C to stop.\n", target.server, target.user)

	f := newTailFormatter(!tailPlain)
	err = printLines(s, router.New(target.user), cmd.OutOrStdout(), tailOnly, f)
	if ctx.Err() != nil {
		return nil
	}
	return err
}

// printLines routes every line from src and writes the ones that match
// only ("" for all) to w. It returns when src runs dry.
func printLines(src lineSource, r *router.Router, w io.Writer, only string, f tailFormatter) error {
	for raw := range src.Lines() {
		res := r.Route(raw)
		if only != "" && !strings.EqualFold(res.Conversation, only) {
			continue
		}
		fmt.Fprintln(w, f.format(res))
	}
	return src.Err()
}

// tailFormatter renders routed messages as "[conversation] sender> body".
type tailFormatter struct {
	color bool
	conv  lipgloss.Style
	from  lipgloss.Style
}

func newTailFormatter(color bool) tailFormatter {
	return tailFormatter{
		color: color,
		conv:  lipgloss.NewStyle().Foreground(ui.ColorSecondary).Bold(true),
		from:  ui.ChatSenderStyle,
	}
}

func (f tailFormatter) format(res router.Routed) string {
	conv := "[" + res.Conversation + "]"
	msg := res.Message
	if !f.color {
		return conv + " " + msg.Line()
	}
	body := ui.MessageStyle(msg.Style).Render(msg.Body)
	if msg.Sender == "" {
		return f.conv.Render(conv) + " " + body
	}
	return f.conv.Render(conv) + " " + f.from.Render(msg.Sender+">") + " " + body
}
