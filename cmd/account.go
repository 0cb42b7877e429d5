package cmd

import (
	"github.com/maelkum/storefront/client"
	"github.com/maelkum/storefront/pkg/validation"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// accountCmd groups the profile subcommands.
func accountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Show and update your profile",
	}

	cmd.AddCommand(
		accountShowCmd(),
		accountUpdateCmd(),
	)

	return cmd
}

func accountShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show your profile",
		Run: func(cmd *cobra.Command, args []string) {
			svc, err := buildServices()
			if err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}
			profile, err := svc.users.Me(cmd.Context())
			if err != nil {
				log.Error().Err(err).Msg("Failed to fetch profile")
				cmd.PrintErrln("Error:", classifyError(err).Message)
				return
			}
			cmd.Printf("Username: %s\n", profile.Username)
			cmd.Printf("Name:     %s %s\n", profile.FirstName, profile.LastName)
			cmd.Printf("Email:    %s\n", profile.Email)
		},
	}
}

func accountUpdateCmd() *cobra.Command {
	var email, firstName, lastName string

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update your profile",
		Run: func(cmd *cobra.Command, args []string) {
			svc, err := buildServices()
			if err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}
			ctx := cmd.Context()

			// Unset flags keep their current values.
			current, err := svc.users.Me(ctx)
			if err != nil {
				log.Error().Err(err).Msg("Failed to fetch profile")
				cmd.PrintErrln("Error:", classifyError(err).Message)
				return
			}
			if email == "" {
				email = current.Email
			}
			if firstName == "" {
				firstName = current.FirstName
			}
			if lastName == "" {
				lastName = current.LastName
			}

			if err := validation.ValidateEmail(email); err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}

			updated, err := svc.users.UpdateProfile(ctx, client.UpdateProfileRequest{
				Email:     email,
				FirstName: firstName,
				LastName:  lastName,
			})
			if err != nil {
				log.Error().Err(err).Msg("Failed to update profile")
				cmd.PrintErrln("Error:", classifyError(err).Message)
				return
			}
			cmd.Printf("Profile updated: %s %s <%s>.\n",
				updated.FirstName, updated.LastName, updated.Email)
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "New email address")
	cmd.Flags().StringVarP(&firstName, "first-name", "f", "", "New first name")
	cmd.Flags().StringVarP(&lastName, "last-name", "l", "", "New last name")

	return cmd
}
