package cmd

import (
	"github.com/maelkum/storefront/pkg/validation"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// loginCmd creates the command for signing in to the storefront.
func loginCmd() *cobra.Command {
	var useGoogle bool
	var headless bool

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to the storefront",
		Long:  "Sign in with your username and password, or with --google through a browser",
		Run: func(cmd *cobra.Command, args []string) {
			svc, err := buildServices()
			if err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}
			ctx := cmd.Context()

			if token, err := svc.session.EnsureValid(ctx); err == nil && token != nil {
				cmd.Println("You are already signed in.")
				return
			}

			if useGoogle {
				resp, err := svc.authAPI.LoginWithGoogleBrowser(ctx, headless)
				if err != nil {
					log.Error().Err(err).Msg("Google sign-in failed")
					cmd.PrintErrln("Error: Google sign-in failed.")
					return
				}
				if err := svc.session.SaveSession(ctx, resp.AccessToken, resp.RefreshToken, resp.ExpiresIn); err != nil {
					cmd.PrintErrln("Error:", err)
					return
				}
				cmd.Println("Signed in with Google.")
				return
			}

			username := promptForInput("Username: ")
			password := promptForPassword("Password: ")

			if err := validation.ValidateUsername(username); err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}
			if err := validation.ValidatePassword(password); err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}

			resp, err := svc.authAPI.Login(ctx, username, password)
			if err != nil {
				log.Error().Err(err).Msg("Login failed")
				cmd.PrintErrln("Error: Failed to sign in. Check your username and password.")
				return
			}
			if err := svc.session.SaveSession(ctx, resp.AccessToken, resp.RefreshToken, resp.ExpiresIn); err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}
			cmd.Println("Signed in successfully.")
		},
	}

	cmd.Flags().BoolVarP(&useGoogle, "google", "g", false, "Sign in with a Google account through a browser")
	cmd.Flags().BoolVarP(&headless, "headless", "n", false, "Run the browser sign-in without showing a window? [true, false]")

	return cmd
}
