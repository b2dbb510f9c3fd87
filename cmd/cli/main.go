package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/iho/finledger/internal/infrastructure/config"
	"github.com/iho/finledger/internal/infrastructure/postgres"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "finledger-cli",
		Short: "FinLedger CLI tool",
		Long:  `A command line interface for interacting with the FinLedger API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the FinLedger API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	// Account commands
	accountsCmd := &cobra.Command{
		Use:   "accounts",
		Short: "Account operations",
	}

	accountsCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List accounts",
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/api/v1/accounts")
		},
	})

	accountsCmd.AddCommand(&cobra.Command{
		Use:   "get [id]",
		Short: "Get an account by id",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/api/v1/accounts/" + args[0])
		},
	})

	rootCmd.AddCommand(accountsCmd)

	// Category commands
	rootCmd.AddCommand(&cobra.Command{
		Use:   "categories",
		Short: "List categories",
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/api/v1/categories")
		},
	})

	// Transaction commands
	transactionsCmd := &cobra.Command{
		Use:   "transactions",
		Short: "Transaction operations",
	}

	transactionsCmd.AddCommand(&cobra.Command{
		Use:   "get [id]",
		Short: "Get a transaction by id",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/api/v1/transactions/" + args[0])
		},
	})

	var cancelReason string
	cancelCmd := &cobra.Command{
		Use:   "cancel [id]",
		Short: "Cancel a transaction",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			postJSON("/api/v1/transactions/"+args[0]+"/cancel", mustMarshal(map[string]any{
				"reason": cancelReason,
			}))
		},
	}
	cancelCmd.Flags().StringVar(&cancelReason, "reason", "", "Cancellation reason")
	transactionsCmd.AddCommand(cancelCmd)
	rootCmd.AddCommand(transactionsCmd)

	// Transfer commands
	transfersCmd := &cobra.Command{
		Use:   "transfers",
		Short: "Transfer operations",
	}

	var (
		transferFrom     string
		transferTo       string
		transferAmount   string
		transferCategory string
	)
	transferCreateCmd := &cobra.Command{
		Use:   "create",
		Short: "Transfer between two accounts",
		Run: func(cmd *cobra.Command, args []string) {
			postJSON("/api/v1/transfers", mustMarshal(map[string]any{
				"source_account_id":      transferFrom,
				"destination_account_id": transferTo,
				"category_id":            transferCategory,
				"amount":                 transferAmount,
				"date":                   time.Now().UTC().Format(time.RFC3339),
			}))
		},
	}
	transferCreateCmd.Flags().StringVar(&transferFrom, "from", "", "Source account id")
	transferCreateCmd.Flags().StringVar(&transferTo, "to", "", "Destination account id")
	transferCreateCmd.Flags().StringVar(&transferAmount, "amount", "", "Amount to transfer")
	transferCreateCmd.Flags().StringVar(&transferCategory, "category", "", "Category id")
	transfersCmd.AddCommand(transferCreateCmd)

	var (
		invoiceCard   string
		invoiceAmount string
	)
	payInvoiceCmd := &cobra.Command{
		Use:   "pay-invoice",
		Short: "Settle a credit card invoice from its debit account",
		Run: func(cmd *cobra.Command, args []string) {
			postJSON("/api/v1/transfers/pay-invoice", mustMarshal(map[string]any{
				"credit_card_account_id": invoiceCard,
				"amount":                 invoiceAmount,
				"competence_date":        time.Now().UTC().Format(time.RFC3339),
			}))
		},
	}
	payInvoiceCmd.Flags().StringVar(&invoiceCard, "card", "", "Credit card account id")
	payInvoiceCmd.Flags().StringVar(&invoiceAmount, "amount", "", "Invoice amount to pay")
	transfersCmd.AddCommand(payInvoiceCmd)
	rootCmd.AddCommand(transfersCmd)

	// Recurrence commands
	recurrencesCmd := &cobra.Command{
		Use:   "recurrences",
		Short: "Recurrence template operations",
	}

	var month string
	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate transactions from active templates",
		Run: func(cmd *cobra.Command, args []string) {
			path := "/api/v1/recurrences/generate"
			if month != "" {
				path += "?month=" + month
			}
			postJSON(path, nil)
		},
	}
	generateCmd.Flags().StringVar(&month, "month", "", "Target month (format: 2006-01, defaults to current)")

	recurrencesCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List recurrence templates",
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/api/v1/recurrences")
		},
	})
	recurrencesCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(recurrencesCmd)

	// Migration commands
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migrations",
	}

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		Run: func(cmd *cobra.Command, args []string) {
			cfg := mustLoadConfig()
			if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
				fmt.Printf("Migration failed: %v\n", err)
				os.Exit(1)
			}
			fmt.Println("Migrations applied")
		},
	})

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the last migration",
		Run: func(cmd *cobra.Command, args []string) {
			cfg := mustLoadConfig()
			if err := postgres.RunMigrationsDown(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
				fmt.Printf("Rollback failed: %v\n", err)
				os.Exit(1)
			}
			fmt.Println("Migration rolled back")
		},
	})

	rootCmd.AddCommand(migrateCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func mustMarshal(v any) []byte {
	body, err := json.Marshal(v)
	if err != nil {
		fmt.Printf("Failed to encode request: %v\n", err)
		os.Exit(1)
	}
	return body
}

func mustLoadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

func getJSON(path string) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + path)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	printResponse(resp)
}

func postJSON(path string, body []byte) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Post(baseURL+path, "application/json", bytes.NewReader(body))
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	printResponse(resp)
}

func printResponse(resp *http.Response) {
	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode >= http.StatusBadRequest {
		fmt.Printf("Request FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, body, "", "  "); err != nil {
		fmt.Println(string(body))
		return
	}
	fmt.Println(pretty.String())
}
