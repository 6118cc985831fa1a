// Command spamc checks messages against a spamd daemon from the command
// line: ping the daemon, ask for a verdict, a report or the matched rules.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/davrux/spamc"
)

var (
	configPath string
	flagUser   string
)

func main() {
	root := &cobra.Command{
		Use:           "spamc",
		Short:         "Client for the SpamAssassin spamd daemon",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a TOML config file")
	root.PersistentFlags().StringVar(&flagUser, "user", "", "user to check the message for")

	root.AddCommand(pingCmd(), checkCmd(), symbolsCmd(), reportCmd())

	if err := root.Execute(); err != nil {
		slog.Error("spamc failed", "error", err)
		os.Exit(1)
	}
}

func newClient() (*spamc.Client, context.Context, context.CancelFunc, error) {
	cfg, err := loadCLIConfig(configPath)
	if err != nil {
		return nil, nil, nil, err
	}
	if flagUser != "" {
		cfg.user = flagUser
	}

	client, err := spamc.NewClient(cfg.servers, spamc.Config{
		MaxSessions: cfg.maxSessions,
		User:        cfg.user,
		Compress:    cfg.compress,
	})
	if err != nil {
		return nil, nil, nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.timeout)
	return client, ctx, cancel, nil
}

// readMessage returns the message from the file argument, or stdin when no
// argument is given.
func readMessage(args []string) ([]byte, error) {
	if len(args) == 0 {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(args[0])
}

func pingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that spamd answers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, ctx, cancel, err := newClient()
			if err != nil {
				return err
			}
			defer client.Close()
			defer cancel()

			if err := client.Ping(ctx); err != nil {
				return err
			}
			fmt.Println("PONG")
			return nil
		},
	}
}

func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check [file]",
		Short: "Ask spamd for a verdict on a message (stdin when no file)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			message, err := readMessage(args)
			if err != nil {
				return err
			}

			client, ctx, cancel, err := newClient()
			if err != nil {
				return err
			}
			defer client.Close()
			defer cancel()

			result, err := client.Check(ctx, message)
			if err != nil {
				return err
			}

			verdict := "ham"
			if result.IsSpam {
				verdict = "spam"
			}
			fmt.Printf("%s (score %.1f, threshold %.1f)\n", verdict, result.Score, result.Threshold)
			return nil
		},
	}
}

func symbolsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "symbols [file]",
		Short: "List the rules a message matched (stdin when no file)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			message, err := readMessage(args)
			if err != nil {
				return err
			}

			client, ctx, cancel, err := newClient()
			if err != nil {
				return err
			}
			defer client.Close()
			defer cancel()

			result, err := client.Symbols(ctx, message)
			if err != nil {
				return err
			}
			for _, sym := range result.Symbols {
				fmt.Println(sym)
			}
			return nil
		},
	}
}

func reportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report [file]",
		Short: "Print the spamd report for a message (stdin when no file)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			message, err := readMessage(args)
			if err != nil {
				return err
			}

			client, ctx, cancel, err := newClient()
			if err != nil {
				return err
			}
			defer client.Close()
			defer cancel()

			result, err := client.Report(ctx, message)
			if err != nil {
				return err
			}
			os.Stdout.Write(result.Body)
			return nil
		},
	}
}
