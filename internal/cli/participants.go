package cli

import (
	"net/url"

	"github.com/spf13/cobra"

	"github.com/mcoot/fantasta/internal/api/response"
)

func newParticipantsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "participants",
		Short: "Participant queries",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List participants with their spending",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []response.ParticipantDetail
			if err := client.Get("/api/v1/participants", &result); err != nil {
				return err
			}
			output(cmd).Print(result)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show NAME",
		Short: "Show a participant and their roster",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.ParticipantDetail
			if err := client.Get("/api/v1/participants/"+url.PathEscape(args[0]), &result); err != nil {
				return err
			}
			output(cmd).Print(result)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "roster NAME",
		Short: "List the catalog players a participant owns",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []response.Player
			if err := client.Get("/api/v1/participants/"+url.PathEscape(args[0])+"/roster", &result); err != nil {
				return err
			}
			output(cmd).Print(result)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "can-acquire NAME ROLE",
		Short: "Check whether a participant has room for another player of a role",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/v1/participants/" + url.PathEscape(args[0]) + "/can-acquire?role=" + url.QueryEscape(args[1])

			var result response.Eligibility
			if err := client.Get(path, &result); err != nil {
				return err
			}
			output(cmd).Print(result)
			return nil
		},
	})

	return cmd
}
