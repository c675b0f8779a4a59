package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "accounting-cli",
		Short: "Village accounting CLI tool",
		Long:  `A command line interface for interacting with the village accounting API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the accounting API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(accountsCmd())
	rootCmd.AddCommand(reportsCmd())
	rootCmd.AddCommand(statementsCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func accountsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "Chart of accounts operations",
	}

	var accountType string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		Run: func(cmd *cobra.Command, args []string) {
			query := url.Values{}
			if accountType != "" {
				query.Set("type", accountType)
			}
			listAccounts(query)
		},
	}
	listCmd.Flags().StringVar(&accountType, "type", "", "Filter by account type (ASSET, LIABILITY, EQUITY, REVENUE, EXPENSE)")

	bootstrapCmd := &cobra.Command{
		Use:   "bootstrap",
		Short: "Seed the default chart of accounts",
		Run: func(cmd *cobra.Command, args []string) {
			doPost("/api/v1/accounts/bootstrap", nil)
		},
	}

	cmd.AddCommand(listCmd)
	cmd.AddCommand(bootstrapCmd)
	return cmd
}

func reportsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reports",
		Short: "Financial reports",
	}

	var asOf string
	trialBalanceCmd := &cobra.Command{
		Use:   "trial-balance",
		Short: "Print the trial balance",
		Run: func(cmd *cobra.Command, args []string) {
			doGet(reportPath("/api/v1/reports/trial-balance", url.Values{"as_of": {asOf}}))
		},
	}
	trialBalanceCmd.Flags().StringVar(&asOf, "as-of", "", "Report date (YYYY-MM-DD)")

	var start, end string
	incomeStatementCmd := &cobra.Command{
		Use:   "income-statement",
		Short: "Print the income statement",
		Run: func(cmd *cobra.Command, args []string) {
			doGet(reportPath("/api/v1/reports/income-statement", url.Values{"start": {start}, "end": {end}}))
		},
	}
	incomeStatementCmd.Flags().StringVar(&start, "start", "", "Range start (YYYY-MM-DD)")
	incomeStatementCmd.Flags().StringVar(&end, "end", "", "Range end (YYYY-MM-DD)")

	var sheetAsOf string
	balanceSheetCmd := &cobra.Command{
		Use:   "balance-sheet",
		Short: "Print the balance sheet",
		Run: func(cmd *cobra.Command, args []string) {
			doGet(reportPath("/api/v1/reports/balance-sheet", url.Values{"as_of": {sheetAsOf}}))
		},
	}
	balanceSheetCmd.Flags().StringVar(&sheetAsOf, "as-of", "", "Report date (YYYY-MM-DD)")

	cmd.AddCommand(trialBalanceCmd)
	cmd.AddCommand(incomeStatementCmd)
	cmd.AddCommand(balanceSheetCmd)
	return cmd
}

func statementsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "statements",
		Short: "Bank statement operations",
	}

	reconcileCmd := &cobra.Command{
		Use:   "reconcile <statement-id>",
		Short: "Run auto-reconciliation for a statement",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			doPost("/api/v1/statements/"+args[0]+"/reconcile", nil)
		},
	}

	cmd.AddCommand(reconcileCmd)
	return cmd
}

// reportPath builds a report URL, dropping query parameters left empty.
func reportPath(path string, query url.Values) string {
	for key, values := range query {
		if len(values) == 0 || values[0] == "" {
			delete(query, key)
		}
	}
	if len(query) == 0 {
		return path
	}
	return path + "?" + query.Encode()
}

func listAccounts(query url.Values) {
	path := "/api/v1/accounts/"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	body := fetch(http.MethodGet, path, nil)

	var result struct {
		Accounts []struct {
			Code string `json:"code"`
			Name string `json:"name"`
			Type string `json:"type"`
		} `json:"accounts"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	for _, account := range result.Accounts {
		fmt.Printf("%-10s %-9s %s\n", account.Code, account.Type, truncate(account.Name, 48))
	}
}

func doGet(path string) {
	printResponse(fetch(http.MethodGet, path, nil))
}

func doPost(path string, body io.Reader) {
	printResponse(fetch(http.MethodPost, path, body))
}

func fetch(method, path string, body io.Reader) []byte {
	client := &http.Client{Timeout: timeout}

	req, err := http.NewRequest(method, baseURL+path, body)
	if err != nil {
		fmt.Printf("Error building request: %v\n", err)
		os.Exit(1)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)

	if resp.StatusCode >= http.StatusBadRequest {
		fmt.Printf("Request FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(data))
		os.Exit(1)
	}

	return data
}

func printResponse(body []byte) {
	var decoded any
	if err := json.Unmarshal(body, &decoded); err != nil {
		fmt.Println(string(body))
		return
	}
	printJSON(decoded)
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("Failed to render response: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
