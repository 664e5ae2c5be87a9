package main

import (
	"github.com/spf13/cobra"
)

var flagConfigPath string

var rootCmd = &cobra.Command{
	Use:   "beats",
	Short: "Work session tracking server",
	Long: `beats records work sessions against projects and serves
time reports over a REST API.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfigPath, "config", "c", "", "path to config file")
	rootCmd.AddCommand(serveCmd)
}
