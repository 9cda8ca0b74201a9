package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/they4kman/gosweep/game"
	"github.com/they4kman/gosweep/store"
	"github.com/they4kman/gosweep/transport"
)

var serveOptions struct {
	addr   string
	secret string
	db     string
	layout string
	seed   int64
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run an authority which owns boards and resolves sweeps for remote players",
	Long: `serve runs the remote authority. Clients start games and sweep cells
over HTTP; the boards never leave the authority. With --db, a player lists
their finished games at /games/<user>?token=<token>, using any token issued
to that user.

Settings not given as flags are read from the environment, or from a .env file
in the working directory:
	GOSWEEP_ADDR     address to listen on
	GOSWEEP_SECRET   secret signing session tokens
	GOSWEEP_DB       SQLite file recording finished games
`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	envDefault(cmd, "addr", "GOSWEEP_ADDR", &serveOptions.addr)
	envDefault(cmd, "secret", "GOSWEEP_SECRET", &serveOptions.secret)
	envDefault(cmd, "db", "GOSWEEP_DB", &serveOptions.db)

	if serveOptions.secret == "" {
		return errors.New("a token secret is required, set --secret or GOSWEEP_SECRET")
	}

	config := transport.NewServerConfig()
	config.Secret = []byte(serveOptions.secret)
	config.Seed = serveOptions.seed
	config.Logger = logrus.StandardLogger()

	if serveOptions.layout != "" {
		in, err := os.ReadFile(serveOptions.layout)
		if err != nil {
			return errors.Wrap(err, "read layout")
		}
		if config.Snapshot, err = game.LoadSnapshot(string(in)); err != nil {
			return errors.Wrapf(err, "load layout %s", serveOptions.layout)
		}
	}

	if serveOptions.db != "" {
		ledger, err := store.OpenSQLiteLedger(serveOptions.db)
		if err != nil {
			return err
		}
		defer ledger.Close()
		config.Ledger = ledger
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := transport.NewServer(store.NewMemoryStore(), config)
	return server.ListenAndServe(ctx, serveOptions.addr)
}

// envDefault fills value from the environment, unless the flag was given
func envDefault(cmd *cobra.Command, flag, env string, value *string) {
	if cmd.Flags().Changed(flag) {
		return
	}
	if v := os.Getenv(env); v != "" {
		*value = v
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveOptions.addr, "addr", ":8080", "Address to listen on")
	serveCmd.Flags().StringVar(&serveOptions.secret, "secret", "", "Secret signing session tokens")
	serveCmd.Flags().StringVar(&serveOptions.db, "db", "", "SQLite file recording finished games; nothing is recorded when empty")
	serveCmd.Flags().StringVar(&serveOptions.layout, "layout", "", "YAML snapshot served whenever a game of its size is started")
	serveCmd.Flags().Int64Var(&serveOptions.seed, "seed", 0, "Seed for mine placement; random when 0")
}
