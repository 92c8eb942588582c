package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/strandplatform/strand-go/pkg/strand"
)

var (
	loginProvider string
	loginUsername string
	loginPassword string
	loginAPIKey   string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate against the platform and store the session",
	RunE: func(cmd *cobra.Command, _ []string) error {
		client, closeClient, err := newClient()
		if err != nil {
			return err
		}
		defer closeClient()

		var credentials any
		switch loginProvider {
		case strand.ProviderUserPassword:
			credentials = strand.UserPasswordCredentials{
				Username: loginUsername,
				Password: loginPassword,
			}
		case strand.ProviderAPIKey:
			credentials = strand.APIKeyCredentials{Key: loginAPIKey}
		case strand.ProviderAnonymous:
			credentials = struct{}{}
		default:
			return fmt.Errorf("unknown provider %q", loginProvider)
		}

		session, err := client.Authenticate(cmd.Context(), loginProvider, credentials)
		if err != nil {
			return err
		}

		cmd.Printf("logged in as %s\n", session.UserID)
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginProvider, "provider", strand.ProviderUserPassword, "authentication provider")
	loginCmd.Flags().StringVar(&loginUsername, "username", "", "username for the local-userpass provider")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "password for the local-userpass provider")
	loginCmd.Flags().StringVar(&loginAPIKey, "api-key", "", "key for the api-key provider")
	rootCmd.AddCommand(loginCmd)
}
