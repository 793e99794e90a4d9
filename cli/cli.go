package cli

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

// Replier produces the reply for one inbound text.
type Replier interface {
	Reply(ctx context.Context, text string) string
}

// Bot is a long-running transport loop.
type Bot interface {
	Run(ctx context.Context) error
}

// Server is the ops HTTP server.
type Server interface {
	Start() error
	Shutdown(ctx context.Context) error
}

// ServeFunc starts the bot and blocks until ctx is done.
type ServeFunc func(ctx context.Context) error

func New(replier Replier, serve ServeFunc) (*cobra.Command, error) {
	if replier == nil {
		return nil, errors.New("nil replier")
	}

	root := &cobra.Command{
		Use:           "weatherbot",
		Short:         "Telegram bot replying with current weather for a city or ZIP code",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Args:  cobra.NoArgs,
		Short: "Run the Telegram bot with health and metrics endpoints",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if serve == nil {
				return errors.New("serve is not configured")
			}
			return serve(cmd.Context())
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "lookup <query...>",
		Args:  cobra.MinimumNArgs(1),
		Short: "Print the reply the bot would send for a city name or ZIP code",
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.Println(replier.Reply(cmd.Context(), strings.Join(args, " ")))
			return nil
		},
	})

	return root, nil
}

// Serve runs bot and srv until ctx is cancelled or either of them fails,
// then shuts the server down within shutdownTimeout.
func Serve(ctx context.Context, bot Bot, srv Server, shutdownTimeout time.Duration, logger *slog.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	srvErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			srvErr <- err
			cancel()
		}
	}()

	botErr := make(chan error, 1)
	go func() {
		botErr <- bot.Run(ctx)
		cancel()
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	var errs []error
	if err := srv.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, err)
	}
	select {
	case err := <-botErr:
		errs = append(errs, err)
	case <-shutdownCtx.Done():
		errs = append(errs, errors.New("bot did not stop before shutdown timeout"))
	}
	select {
	case err := <-srvErr:
		errs = append(errs, err)
	default:
	}

	return errors.Join(errs...)
}
