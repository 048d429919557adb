package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pingerconf/internal/di"
	"pingerconf/internal/structures"
)

func main() {
	flags := &structures.CliFlags{}

	rootCmd := &cobra.Command{
		Use:          "pingerconf",
		Short:        "Keyword and channel configuration editor",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := di.InitApp(flags)
			return err
		},
	}
	rootCmd.Flags().StringVarP(&flags.ConfigPath, "config", "c", "config.yaml", "path to the YAML configuration file")
	rootCmd.Flags().BoolVarP(&flags.DebugMode, "debug", "d", false, "mirror application logs to stderr")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
