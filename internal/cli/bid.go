package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mcoot/fantasta/internal/api/request"
	"github.com/mcoot/fantasta/internal/api/response"
)

func newBidCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bid",
		Short: "Record auction outcomes",
	}

	cmd.AddCommand(newBidAcquireCmd())
	cmd.AddCommand(newBidReviseCmd())
	cmd.AddCommand(newBidReleaseCmd())

	return cmd
}

func newBidAcquireCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "acquire PLAYER_ID PARTICIPANT PRICE",
		Short: "Assign a free player to a participant",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := playerPath(args[0], "/acquire")
			if err != nil {
				return err
			}
			price, err := parsePrice(args[2])
			if err != nil {
				return err
			}

			var result response.Player
			req := request.AcquireRequest{Participant: args[1], Price: price}
			if err := client.Post(path, req, &result); err != nil {
				return err
			}
			output(cmd).Print(result)
			return nil
		},
	}
}

func newBidReviseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "revise PLAYER_ID PARTICIPANT PRICE",
		Short: "Change the price paid for an owned player",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := playerPath(args[0], "/price")
			if err != nil {
				return err
			}
			price, err := parsePrice(args[2])
			if err != nil {
				return err
			}

			var result response.Player
			req := request.RevisePriceRequest{Participant: args[1], Price: price}
			if err := client.Patch(path, req, &result); err != nil {
				return err
			}
			output(cmd).Print(result)
			return nil
		},
	}
}

func newBidReleaseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "release PLAYER_ID PARTICIPANT",
		Short: "Return an owned player to the free pool and refund the price",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := playerPath(args[0], "/release")
			if err != nil {
				return err
			}

			var result response.Player
			req := request.ReleaseRequest{Participant: args[1]}
			if err := client.Post(path, req, &result); err != nil {
				return err
			}
			output(cmd).Print(result)
			return nil
		},
	}
}

func parsePrice(arg string) (int, error) {
	price, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid price %q", arg)
	}
	return price, nil
}
