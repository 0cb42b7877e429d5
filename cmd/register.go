package cmd

import (
	"github.com/maelkum/storefront/client"
	"github.com/maelkum/storefront/pkg/validation"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// registerCmd creates the command for registering a new account.
func registerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "register",
		Short: "Create a new storefront account",
		Run: func(cmd *cobra.Command, args []string) {
			svc, err := buildServices()
			if err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}
			ctx := cmd.Context()

			username := promptForInput("Username: ")
			email := promptForInput("Email: ")
			firstName := promptForInput("First name: ")
			lastName := promptForInput("Last name: ")
			password := promptForPassword("Password: ")
			confirm := promptForPassword("Confirm password: ")

			if err := validation.ValidateUsername(username); err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}
			if err := validation.ValidateEmail(email); err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}
			if err := validation.ValidateNonEmptyString("first name", firstName); err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}
			if err := validation.ValidateNonEmptyString("last name", lastName); err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}
			if err := validation.ValidatePassword(password); err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}
			if password != confirm {
				cmd.PrintErrln("Error: Passwords do not match.")
				return
			}

			resp, err := svc.authAPI.Register(ctx, client.RegisterRequest{
				Username:  username,
				Email:     email,
				FirstName: firstName,
				LastName:  lastName,
				Password:  password,
			})
			if err != nil {
				log.Error().Err(err).Msg("Registration failed")
				cmd.PrintErrln("Error: Failed to create the account.")
				return
			}
			if err := svc.session.SaveSession(ctx, resp.AccessToken, resp.RefreshToken, resp.ExpiresIn); err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}
			cmd.Println("Account created. You are now signed in.")
		},
	}
}
