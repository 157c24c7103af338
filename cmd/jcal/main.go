package main

import (
	"os"

	"jcal/cmd/jcal/commands"
	appLog "jcal/internal/log"
)

func main() {
	rootCmd := commands.NewRootCommand()

	rootCmd.AddCommand(commands.NewConvertCommand())
	rootCmd.AddCommand(commands.NewFormatCommand())
	rootCmd.AddCommand(commands.NewMonthCommand())
	rootCmd.AddCommand(commands.NewLeapCommand())
	rootCmd.AddCommand(commands.NewEventsCommand())
	rootCmd.AddCommand(commands.NewServeCommand())

	err := rootCmd.Execute()
	appLog.Sync()
	if err != nil {
		os.Exit(1)
	}
}
