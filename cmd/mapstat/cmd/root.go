package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	flagVerbose bool
	log         zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "mapstat",
	Short: "Drives workloads through pooled UnorderedMaps and reports table, pool and metric statistics",
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		level := zerolog.InfoLevel
		if flagVerbose {
			level = zerolog.DebugLevel
		}
		log = zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), NoColor: true}).Level(level).With().Timestamp().Logger()
	},
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "log slab carving and rehashes")
	rootCmd.AddCommand(fillCmd)
}
