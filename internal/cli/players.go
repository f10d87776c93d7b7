package cli

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mcoot/fantasta/internal/api/response"
)

func newPlayersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "players",
		Short: "Player catalog queries",
	}

	cmd.AddCommand(newPlayersListCmd())
	cmd.AddCommand(newPlayersShowCmd())

	return cmd
}

func newPlayersListCmd() *cobra.Command {
	var role, team, status, query string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List players, optionally filtered",
		RunE: func(cmd *cobra.Command, args []string) error {
			params := url.Values{}
			for key, val := range map[string]string{"role": role, "team": team, "status": status, "q": query} {
				if val != "" {
					params.Set(key, val)
				}
			}
			path := "/api/v1/players"
			if len(params) > 0 {
				path += "?" + params.Encode()
			}

			var result []response.Player
			if err := client.Get(path, &result); err != nil {
				return err
			}
			output(cmd).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&role, "role", "", "Role: P, D, C, A")
	cmd.Flags().StringVar(&team, "team", "", "Team name")
	cmd.Flags().StringVar(&status, "status", "", "Status: free, owned")
	cmd.Flags().StringVarP(&query, "query", "q", "", "Name substring")

	return cmd
}

func newPlayersShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show one player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := playerPath(args[0], "")
			if err != nil {
				return err
			}

			var result response.Player
			if err := client.Get(path, &result); err != nil {
				return err
			}
			output(cmd).Print(result)
			return nil
		},
	}
}

func newTeamsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "teams",
		Short: "List the teams in the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Teams
			if err := client.Get("/api/v1/teams", &result); err != nil {
				return err
			}
			output(cmd).Print(result)
			return nil
		},
	}
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show catalog statistics by role",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Stats
			if err := client.Get("/api/v1/stats", &result); err != nil {
				return err
			}
			output(cmd).Print(result)
			return nil
		},
	}
}

func newHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List owned players, most expensive first",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []response.Player
			if err := client.Get("/api/v1/history", &result); err != nil {
				return err
			}
			output(cmd).Print(result)
			return nil
		},
	}
}

// playerPath validates a player id argument and builds its resource path
func playerPath(arg, suffix string) (string, error) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		return "", fmt.Errorf("invalid player id %q", arg)
	}
	return fmt.Sprintf("/api/v1/players/%d%s", id, suffix), nil
}
