package main

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var debug bool

	root := &cobra.Command{
		Use:           "minbar",
		Short:         "Mosque clock display server",
		Long:          "minbar serves the mosque clock display: time, prayer schedule, next prayer, Islamic calendar and rotating messages.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadEnvironment(debug)
		},
	}
	root.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")

	root.AddCommand(
		newServeCmd(),
		newCitiesCmd(),
		newTodayCmd(),
		newSeedCmd(),
		newHashPasswordCmd(),
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Error().Err(err).Msg("minbar failed")
		os.Exit(1)
	}
}
