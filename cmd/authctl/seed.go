package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oksasatya/user-auth-service/config"
	"github.com/oksasatya/user-auth-service/internal/application"
	"github.com/oksasatya/user-auth-service/internal/container"
	"github.com/oksasatya/user-auth-service/pkg/helpers"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create a user in the configured credential store",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")
		name, _ := cmd.Flags().GetString("name")
		welcome, _ := cmd.Flags().GetBool("welcome")

		cfg := config.Load()
		if cfg.StoreDriver == config.StoreMemory {
			return errors.New("seeding the in-memory store has no effect")
		}
		cfg.MailSendEnabled = welcome
		logger := helpers.NewLogger(cfg.AppName, cfg.Env, cfg.LogLevel)

		c, err := container.New(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}
		defer c.Close()

		u, err := c.UserService.Register(cmd.Context(), application.CreateUserInput{
			Email:    email,
			Password: password,
			Name:     name,
		})
		if errors.Is(err, application.ErrEmailTaken) {
			fmt.Fprintf(cmd.OutOrStdout(), "user %s already exists\n", email)
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "seeded user: id=%s email=%s name=%s\n", u.ID, u.Email, u.Name)
		return nil
	},
}

func init() {
	seedCmd.Flags().String("email", "demo@example.com", "user email")
	seedCmd.Flags().String("password", "password123", "user password")
	seedCmd.Flags().String("name", "Demo User", "display name")
	seedCmd.Flags().Bool("welcome", false, "publish the welcome email job")
	rootCmd.AddCommand(seedCmd)
}
