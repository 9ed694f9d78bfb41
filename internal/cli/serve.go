package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/gliderlabs/ssh"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/qnkhuat/clickchess/pkg"
)

func Serve() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Host games over SSH",
		Long: heredoc.Doc(`
			serve accepts SSH connections and starts a game for each one, so
			people can play with nothing but an SSH client:

			    ssh -p 2222 localhost

			Sessions without a terminal are turned away.
		`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr, _ = cmd.Flags().GetString("addr")
			}
			if cmd.Flags().Changed("host-key") {
				cfg.Server.HostKey, _ = cmd.Flags().GetString("host-key")
			}
			logrus.SetLevel(logLevel(cmd, cfg))

			s, err := pkg.NewServer(pkg.ServerOptions{
				Addr:        cfg.Server.Addr,
				HostKeyFile: cfg.Server.HostKey,
				IdleTimeout: cfg.Server.IdleTimeout,
				Command:     cfg.Server.Command,
			})
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			go func() {
				<-ctx.Done()
				logrus.Info("shutting down")
				s.Close()
			}()

			if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().String("addr", "", "Address to listen on, e.g. :2222")
	cmd.Flags().String("host-key", "", "Path to the SSH host key")
	return cmd
}
