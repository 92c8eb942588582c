package cmd

import (
	"encoding/json"

	"github.com/spf13/cobra"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the authenticated user's profile",
	RunE: func(cmd *cobra.Command, _ []string) error {
		client, closeClient, err := newClient()
		if err != nil {
			return err
		}
		defer closeClient()

		profile, err := client.Profile(cmd.Context())
		if err != nil {
			return err
		}

		out, err := json.MarshalIndent(profile, "", "  ")
		if err != nil {
			return err
		}

		cmd.Println(string(out))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}
