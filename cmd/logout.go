package cmd

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// logoutCmd creates the command for signing out. The server-side revocation
// is best effort; local credentials are cleared either way.
func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and clear stored credentials",
		Run: func(cmd *cobra.Command, args []string) {
			svc, err := buildServices()
			if err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}
			ctx := cmd.Context()

			token, err := svc.session.Store.Get(ctx)
			if err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}
			if token == nil {
				cmd.Println("You are not signed in.")
				return
			}

			if token.RefreshToken != "" {
				if err := svc.authAPI.Logout(ctx, token.RefreshToken); err != nil {
					log.Warn().Err(err).Msg("Server-side logout failed, clearing local credentials anyway")
				}
			}
			if err := svc.session.Clear(ctx); err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}
			cmd.Println("Signed out.")
		},
	}
}
