package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/strandplatform/strand-go/pkg/strand"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Revoke the stored session",
	RunE: func(cmd *cobra.Command, _ []string) error {
		client, closeClient, err := newClient()
		if err != nil {
			return err
		}
		defer closeClient()

		err = client.Logout(cmd.Context())
		if errors.Is(err, strand.ErrUnauthenticated) {
			cmd.Println("not logged in")
			return nil
		}
		if err != nil {
			return err
		}

		cmd.Println("logged out")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}
