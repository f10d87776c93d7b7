package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mcoot/fantasta/internal/api/request"
	"github.com/mcoot/fantasta/internal/api/response"
	"github.com/mcoot/fantasta/internal/model"
)

func newSessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Session management commands",
	}

	cmd.AddCommand(newSessionShowCmd())
	cmd.AddCommand(newSessionSetupCmd())
	cmd.AddCommand(newSessionResetCmd())
	cmd.AddCommand(newSessionUndoCmd())

	return cmd
}

func newSessionShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Session
			if err := client.Get("/api/v1/session", &result); err != nil {
				return err
			}
			output(cmd).Print(result)
			return nil
		},
	}
}

func newSessionSetupCmd() *cobra.Command {
	var budget int

	cmd := &cobra.Command{
		Use:   "setup NAME NAME [NAME...]",
		Short: "Register the participants of a new auction",
		Long: `Register the participants of a new auction.

An existing session is left untouched; reset it first to start over.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := request.SetupRequest{Participants: args, InitialBudget: budget}

			var result response.SetupResponse
			if err := client.Post("/api/v1/session/setup", req, &result); err != nil {
				return err
			}
			output(cmd).Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&budget, "budget", 0, "Initial budget per participant (default: server setting)")

	return cmd
}

func newSessionResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Discard the session (undoable once)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete("/api/v1/session"); err != nil {
				return err
			}
			output(cmd).PrintMessage("Session reset")
			return nil
		},
	}
}

func newSessionUndoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "undo",
		Short: "Revert the last state-changing operation",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Session
			if err := client.Post("/api/v1/session/undo", nil, &result); err != nil {
				return err
			}
			output(cmd).Print(result)
			return nil
		},
	}
}

func newCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Player catalog commands",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "load FILE",
		Short: "Replace the player catalog from a quotation workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			var result response.CatalogLoaded
			if err := client.Upload("/api/v1/catalog", filepath.Base(args[0]), data, &result); err != nil {
				return err
			}
			output(cmd).Print(result)
			return nil
		},
	})

	return cmd
}

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Restore a session from an exported workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			var result response.Imported
			if err := client.Upload("/api/v1/import", filepath.Base(args[0]), data, &result); err != nil {
				return err
			}
			output(cmd).Print(result)
			return nil
		},
	}
}

func newExportCmd() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:       "export xlsx|json",
		Short:     "Download the auction as a workbook or JSON document",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"xlsx", "json"},
		RunE: func(cmd *cobra.Command, args []string) error {
			data, filename, err := client.Download("/api/v1/export." + args[0])
			if err != nil {
				return err
			}

			if outPath == "" {
				outPath = filename
			}
			if outPath == "" {
				outPath = "fantasy-auction." + args[0]
			}
			if outPath == "-" {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(outPath, data, 0o644); err != nil {
				return err
			}
			output(cmd).PrintMessage(fmt.Sprintf("Wrote %s (%d bytes)", outPath, len(data)))
			return nil
		},
	}

	cmd.Flags().StringVar(&outPath, "out", "", "Output file, - for stdout (default: server-suggested name)")

	return cmd
}

func newResultsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "results",
		Short: "Show per-participant auction results",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result model.AuctionResults
			if err := client.Get("/api/v1/results", &result); err != nil {
				return err
			}
			output(cmd).Print(result)
			return nil
		},
	}
}
