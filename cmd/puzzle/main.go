package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/mr-shifu/puzzle-lib/core/commitment"
	comm_vault "github.com/mr-shifu/puzzle-lib/pkg/common/vault"
	"github.com/mr-shifu/puzzle-lib/pkg/config"
	"github.com/mr-shifu/puzzle-lib/pkg/execution"
	"github.com/mr-shifu/puzzle-lib/pkg/puzzle"
	"github.com/mr-shifu/puzzle-lib/pkg/vault"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app holds what the subcommands share for one invocation.
type app struct {
	configPath string
	dbPath     string
	scheme     string
	caller     string
	verbose    bool

	logger *zap.Logger
	vault  comm_vault.DurableVault
	store  *puzzle.Store
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "puzzle",
		Short: "Commit to a puzzle answer and check guesses against it",
		Long: `puzzle keeps a single commitment (a plaintext answer or its hex digest)
and lets anyone check a guess against it without reading the answer back.

State lives in a SQLite file when --db (or db_path) is set, otherwise in memory
for the lifetime of the command.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "path to a YAML config file")
	root.PersistentFlags().StringVar(&a.dbPath, "db", "", "SQLite file holding puzzle state")
	root.PersistentFlags().StringVar(&a.scheme, "scheme", "", "commitment scheme: plaintext, sha256, sha3-256, blake3")
	root.PersistentFlags().StringVar(&a.caller, "caller", "", "account the call is attributed to")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		&cobra.Command{
			Use:   "number",
			Short: "Print the puzzle number",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				fmt.Fprintln(cmd.OutOrStdout(), a.store.PuzzleNumber())
				return nil
			},
		},
		&cobra.Command{
			Use:   "init [solution]",
			Short: "Initialize the puzzle with a solution or solution digest",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				_, err := a.store.Initialize(a.context(cmd, false), args[0])
				return err
			},
		},
		&cobra.Command{
			Use:   "set [solution]",
			Short: "Replace the stored solution",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.store.SetSolution(a.context(cmd, false), args[0])
			},
		},
		&cobra.Command{
			Use:   "get",
			Short: "Print the stored solution or digest",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				solution, err := a.store.GetSolution(a.context(cmd, true))
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), solution)
				return nil
			},
		},
		&cobra.Command{
			Use:   "guess [candidate]",
			Short: "Check a guess against the stored solution",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx := a.context(cmd, false)
				ok, err := a.store.GuessSolution(ctx, args[0])
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				for _, record := range execution.From(ctx).Log.Records() {
					fmt.Fprintln(out, "log:", record)
				}
				fmt.Fprintln(out, ok)
				return nil
			},
		},
		&cobra.Command{
			Use:   "digest [secret]",
			Short: "Print the commitment for a secret under the configured scheme",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				fmt.Fprintln(cmd.OutOrStdout(), commitment.Commit(a.store.Scheme(), args[0]))
				return nil
			},
		},
	)

	return root
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.dbPath != "" {
		cfg.DBPath = a.dbPath
	}
	if a.scheme != "" {
		cfg.Scheme = a.scheme
	}
	// Flags override file and env, so validation waits until all three are merged.
	if err := cfg.Validate(); err != nil {
		return err
	}

	if a.logger, err = cfg.NewLogger(a.verbose); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	var factory comm_vault.VaultFactory = vault.InMemoryVaultFactory{}
	if cfg.DBPath != "" {
		factory = vault.SQLiteVaultFactory{}
	}
	if a.vault, err = factory.NewVault(cfg.DBPath); err != nil {
		return err
	}

	opts := []puzzle.Option{
		puzzle.WithVault(a.vault),
		puzzle.WithInstanceID(cfg.InstanceID),
		puzzle.WithLogger(a.logger),
	}
	if len(cfg.AllowedCallers) > 0 {
		opts = append(opts, puzzle.WithAuthorizer(puzzle.AllowList(cfg.AllowedCallers...)))
	}
	a.store, err = puzzle.NewStore(cfg.CommitmentScheme(), opts...)
	return err
}

func (a *app) teardown() {
	if a.vault != nil {
		if err := a.vault.Close(); err != nil && a.logger != nil {
			a.logger.Warn("closing vault", zap.Error(err))
		}
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

func (a *app) context(cmd *cobra.Command, readOnly bool) context.Context {
	opts := []execution.Option{execution.WithCaller(a.caller)}
	if readOnly {
		opts = append(opts, execution.ReadOnly())
	}
	return execution.With(cmd.Context(), execution.NewEnv(opts...))
}

// run executes one command line and releases the vault and logger whether
// or not the command succeeded.
func run(args []string, stdout, stderr io.Writer) error {
	a := &app{}
	defer a.teardown()

	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root.Execute()
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}
