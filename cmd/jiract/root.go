package main

import (
	"fmt"
	"os"

	"jiract/internal/config"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var exit = os.Exit
var cfgFile string

// rootCmd represents the base command when called without any subcommands.
// Calling the binary with no subcommand behaves like `jiract run`, which is
// how CI invokes it.
var rootCmd = &cobra.Command{
	Use:   "jiract",
	Short: "Jiract: single-shot Jira operations for CI pipelines",
	Long: `Jiract maps a named operation onto the Jira Cloud REST API: creating
and updating issues, transitioning workflow state, adding comments,
fetching issues and projects, and creating release versions. It runs
once per invocation, reads its inputs from the CI runner, and reports
flat outputs (status, issue_key, issue_id, response) back to it.`,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "\n=== CRITICAL ERROR: Command Execution Panic ===\n")
			fmt.Fprintf(os.Stderr, "Error: %v\n", r)
			exit(1)
		}
	}()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'jiract --help' for usage.")
		exit(1)
	}
}

func init() {
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runCmd.RunE(cmd, args)
	}
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")

	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	config.Load(cfgFile)
}
