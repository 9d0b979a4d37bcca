package main

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oksasatya/user-auth-service/config"
	"github.com/oksasatya/user-auth-service/pkg/helpers"
)

var hashCmd = &cobra.Command{
	Use:   "hash [password]",
	Short: "Print the bcrypt hash of a password (reads stdin when no argument)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var plain string
		if len(args) == 1 {
			plain = args[0]
		} else {
			line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if err != nil && line == "" {
				return errors.New("no password given")
			}
			plain = strings.TrimRight(line, "\r\n")
		}
		if plain == "" {
			return errors.New("empty password")
		}

		cost, _ := cmd.Flags().GetInt("cost")
		if cost == 0 {
			cost = config.Load().BcryptCost
		}
		hash, err := helpers.NewPasswordHasher(cost).Hash(plain)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), hash)
		return nil
	},
}

func init() {
	hashCmd.Flags().Int("cost", 0, "bcrypt cost (default BCRYPT_COST)")
	rootCmd.AddCommand(hashCmd)
}
