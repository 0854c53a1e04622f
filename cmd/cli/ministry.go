package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSetlistsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "setlists",
		Short: "Inspect a ministry's setlists",
	}

	var ministryID string
	list := &cobra.Command{
		Use:   "list",
		Short: "List setlists, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, cleanup, err := openService(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			setlists, err := svc.ListSetlists(cmd.Context(), ministryID)
			if err != nil {
				return err
			}
			renderSetlists(cmd.OutOrStdout(), setlists)
			return nil
		},
	}
	list.Flags().StringVar(&ministryID, "ministry", "", "Ministry id")
	_ = list.MarkFlagRequired("ministry")

	cmd.AddCommand(list)
	return cmd
}

func newSchedulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedules",
		Short: "Inspect a ministry's schedule",
	}

	var ministryID, musicianID string
	list := &cobra.Command{
		Use:   "list",
		Short: "List schedule entries, earliest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, cleanup, err := openService(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			entries, err := svc.ListSchedules(cmd.Context(), ministryID, musicianID)
			if err != nil {
				return err
			}
			renderSchedules(cmd.OutOrStdout(), entries)
			return nil
		},
	}
	list.Flags().StringVar(&ministryID, "ministry", "", "Ministry id")
	list.Flags().StringVar(&musicianID, "musician", "", "Only entries this musician is assigned to")
	_ = list.MarkFlagRequired("ministry")

	cmd.AddCommand(list)
	return cmd
}

func newMinistryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ministry",
		Short: "Create or join a ministry",
	}

	var owner string
	create := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a ministry and print its invite code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cleanup, err := openService(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			ministry, err := svc.CreateMinistry(cmd.Context(), args[0], owner)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Created ministry %q\n", ministry.Name)
			fmt.Fprintf(w, "ID:          %s\n", ministry.ID)
			fmt.Fprintf(w, "Invite code: %s\n", titleStyle.Render(ministry.InviteCode))
			return nil
		},
	}
	create.Flags().StringVar(&owner, "owner", "", "User id of the owner")
	_ = create.MarkFlagRequired("owner")

	var user string
	join := &cobra.Command{
		Use:   "join <code>",
		Short: "Join a ministry with its invite code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cleanup, err := openService(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			ministry, err := svc.JoinMinistryByCode(cmd.Context(), args[0], user)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Joined %q (%d members)\n", ministry.Name, len(ministry.Members))
			return nil
		},
	}
	join.Flags().StringVar(&user, "user", "", "User id joining the ministry")
	_ = join.MarkFlagRequired("user")

	cmd.AddCommand(create, join)
	return cmd
}
