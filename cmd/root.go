package cmd

import (
	"github.com/spf13/cobra"
)

const app = "ai-interviewer"

var rootCmd = &cobra.Command{
	Use:   app,
	Short: "ai-interviewer - голосовое интервью кандидата по его резюме",
	// без подкоманды запускается HTTP сервер
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd)
	},
	SilenceUsage: true,
}

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}
