package pkg

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"fmt"
	"io"
	"net"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/creack/pty"
	petname "github.com/dustinkirkland/golang-petname"
	"github.com/gliderlabs/ssh"
	"github.com/sirupsen/logrus"
	gossh "golang.org/x/crypto/ssh"
)

const (
	ServerIdleTimeout = 5 * time.Minute
	SshPort           = ":2222"
)

type ServerOptions struct {
	Addr        string
	HostKeyFile string
	IdleTimeout time.Duration
	// Command is run for every session, e.g. ["chessterm", "play"].
	Command []string
	Logger  *logrus.Entry
}

// Server hosts the board over SSH. Every session gets its own game running
// under a pseudo terminal.
type Server struct {
	*ssh.Server
	command []string
	log     *logrus.Entry

	mu       sync.Mutex
	sessions map[string]ssh.Session
}

func NewServer(opts ServerOptions) (*Server, error) {
	if opts.Addr == "" {
		opts.Addr = SshPort
	}
	if opts.IdleTimeout == 0 {
		opts.IdleTimeout = ServerIdleTimeout
	}
	if opts.Logger == nil {
		opts.Logger = logrus.WithField("component", "server")
	}
	if len(opts.Command) == 0 {
		exe, err := os.Executable()
		if err != nil {
			return nil, fmt.Errorf("find executable: %w", err)
		}
		opts.Command = []string{exe, "play"}
	}

	s := &Server{
		command:  opts.Command,
		log:      opts.Logger,
		sessions: make(map[string]ssh.Session),
	}
	s.Server = &ssh.Server{
		Addr:        opts.Addr,
		IdleTimeout: opts.IdleTimeout,
		Handler:     s.handle,
	}

	if opts.HostKeyFile != "" {
		if err := s.SetOption(ssh.HostKeyFile(opts.HostKeyFile)); err != nil {
			return nil, fmt.Errorf("load host key %s: %w", opts.HostKeyFile, err)
		}
		return s, nil
	}

	// Without a key file the server gets a fresh key on every start
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generate host key: %w", err)
	}
	signer, err := gossh.NewSignerFromKey(priv)
	if err != nil {
		return nil, fmt.Errorf("host key signer: %w", err)
	}
	s.AddHostKey(signer)
	s.log.Warn("no host key configured, using an ephemeral key")
	return s, nil
}

// Sessions is the number of connected players.
func (s *Server) Sessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Server) track(sess ssh.Session) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	name := petname.Generate(2, "-")
	for _, ok := s.sessions[name]; ok; _, ok = s.sessions[name] {
		name = petname.Generate(3, "-")
	}
	s.sessions[name] = sess
	return name
}

func (s *Server) untrack(name string) {
	s.mu.Lock()
	delete(s.sessions, name)
	s.mu.Unlock()
}

func (s *Server) handle(sess ssh.Session) {
	name := s.track(sess)
	defer s.untrack(name)
	log := s.log.WithFields(logrus.Fields{
		"session": name,
		"user":    sess.User(),
		"remote":  sess.RemoteAddr().String(),
	})

	ptyReq, winCh, isPty := sess.Pty()
	if !isPty {
		log.Info("refused non-interactive session")
		io.WriteString(sess, "non-interactive terminals are not supported\n")
		sess.Exit(1)
		return
	}

	ctx, cancel := context.WithCancel(sess.Context())
	defer cancel()

	cmd := exec.CommandContext(ctx, s.command[0], s.command[1:]...)
	cmd.Env = append(os.Environ(), fmt.Sprintf("TERM=%s", ptyReq.Term))

	f, err := pty.Start(cmd)
	if err != nil {
		log.WithError(err).Error("failed to start game")
		io.WriteString(sess, fmt.Sprintf("failed to initialize pseudo-terminal: %s\n", err))
		sess.Exit(1)
		return
	}
	defer f.Close()
	log.Info("session started")

	setSize(f, ptyReq.Window)
	go func() {
		for win := range winCh {
			setSize(f, win)
		}
	}()

	go func() {
		io.Copy(f, sess)
	}()
	io.Copy(sess, f)

	f.Close()
	if err := cmd.Wait(); err != nil {
		log.WithError(err).Debug("game exited")
	}
	log.Info("session ended")
	sess.Exit(0)
}

func setSize(f *os.File, win ssh.Window) {
	pty.Setsize(f, &pty.Winsize{Rows: uint16(win.Height), Cols: uint16(win.Width)})
}

// Serve accepts sessions on l until the server is closed.
func (s *Server) Serve(l net.Listener) error {
	s.log.WithField("addr", l.Addr().String()).Info("server listening")
	return s.Server.Serve(l)
}

// ListenAndServe listens on the configured address.
func (s *Server) ListenAndServe() error {
	l, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.Addr, err)
	}
	return s.Serve(l)
}
