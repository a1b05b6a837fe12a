package main

import (
	"fmt"

	"labtracker/internal/adapter/persistence/repository"
	"labtracker/internal/infrastructure/config"
	"labtracker/internal/infrastructure/database"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/spf13/cobra"
)

func newTablesCmd(c *cli) *cobra.Command {
	tables := &cobra.Command{
		Use:   "tables",
		Short: "Manage the DynamoDB tables",
	}

	tables.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Print the table names taken from the environment",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			for _, def := range repository.TableDefinitions(cfg.Tables) {
				fmt.Fprintln(cmd.OutOrStdout(), aws.ToString(def.TableName))
			}
			return nil
		},
	})

	tables.AddCommand(&cobra.Command{
		Use:   "create",
		Short: "Create missing tables and wait until they are active",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			ddb, err := database.ConnectDynamoDB(cmd.Context(), cfg.AWS)
			if err != nil {
				return err
			}
			if err := repository.EnsureTables(cmd.Context(), ddb, cfg.Tables, c.log); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "tables ready")
			return nil
		},
	})
	return tables
}
