package main

import (
	"fmt"

	"github.com/portfolio/internal/service"
	"github.com/portfolio/internal/validation"
	"github.com/spf13/cobra"
)

func newUserCmd(state *cli) *cobra.Command {
	userCmd := &cobra.Command{
		Use:   "user",
		Short: "Manage back-office accounts",
	}

	var input service.UserInput
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a back-office account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			gdb, logger, err := state.open()
			if err != nil {
				return err
			}
			defer logger.Sync()

			user, err := service.NewUserService(gdb).Create(input)
			if err != nil {
				if verr, ok := validation.As(err); ok {
					return fmt.Errorf("invalid account: %s", verr.Error())
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "用户创建成功: %s (id=%d)\n", user.Email, user.ID)
			return nil
		},
	}
	createCmd.Flags().StringVar(&input.Name, "name", "", "Display name")
	createCmd.Flags().StringVar(&input.Email, "email", "", "Login email")
	createCmd.Flags().StringVar(&input.Password, "password", "", "Login password (8-72 characters)")
	_ = createCmd.MarkFlagRequired("email")
	_ = createCmd.MarkFlagRequired("password")

	userCmd.AddCommand(createCmd)
	return userCmd
}
