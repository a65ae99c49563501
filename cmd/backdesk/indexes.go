package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jcallister/backdesk/pkg/config"
	"github.com/jcallister/backdesk/pkg/indexes"
)

var indexesCmd = &cobra.Command{
	Use:   "indexes",
	Short: "Inspect and provision Firestore composite indexes",
}

var indexesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the configured index definitions",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadConfig()
		if err != nil {
			return err
		}

		defs, err := indexes.LoadFile(cfg.Firestore.IndexesFile)
		if err != nil {
			return err
		}

		if len(defs) == 0 {
			fmt.Println("No composite indexes defined.")
			return nil
		}
		for _, def := range defs {
			fmt.Println(def.BuildPayload().Label(def.CollectionGroup))
		}
		return nil
	},
}

var indexesValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the index definitions file",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadConfig()
		if err != nil {
			return err
		}

		defs, err := indexes.LoadFile(cfg.Firestore.IndexesFile)
		if err != nil {
			return err
		}

		report := indexes.Validate(defs)
		for _, warning := range report.Warnings {
			fmt.Printf("warning: %s\n", warning)
		}
		for _, message := range report.Errors {
			fmt.Printf("error: %s\n", message)
		}
		if !report.IsValid() {
			return fmt.Errorf("found %d error(s) in %s", len(report.Errors), cfg.Firestore.IndexesFile)
		}
		fmt.Printf("%d index definition(s), configuration is valid\n", len(defs))
		return nil
	},
}

var indexesProvisionCmd = &cobra.Command{
	Use:   "provision",
	Short: "Create every configured index against the Admin API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadConfig()
		if err != nil {
			return err
		}
		if cfg.Firestore.ProjectID == "" {
			return fmt.Errorf("no Firestore project configured")
		}

		defs, err := indexes.LoadFile(cfg.Firestore.IndexesFile)
		if err != nil {
			return err
		}
		if len(defs) == 0 {
			fmt.Println("No composite indexes defined.")
			return nil
		}

		options := []indexes.AdminClientOption{
			indexes.WithDatabase(cfg.Firestore.DatabaseID),
		}
		if cfg.Firestore.Endpoint != "" {
			options = append(options, indexes.WithEndpoint(cfg.Firestore.Endpoint))
		}
		if token := config.FirestoreToken(); token != "" {
			options = append(options, indexes.WithToken(token))
		}
		client := indexes.NewAdminClient(cfg.Firestore.ProjectID, options...)

		outcomes, hasErrors := indexes.Provision(cmd.Context(), defs, client)
		for _, outcome := range outcomes {
			fmt.Printf("%-10s %s: %s\n", outcome.Status, outcome.Index, outcome.Detail)
		}
		if hasErrors {
			return fmt.Errorf("provisioning completed with errors or skips")
		}
		fmt.Println("Provisioning completed.")
		return nil
	},
}

func init() {
	indexesCmd.AddCommand(indexesListCmd)
	indexesCmd.AddCommand(indexesValidateCmd)
	indexesCmd.AddCommand(indexesProvisionCmd)
}
