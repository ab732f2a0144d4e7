// Package cmd provides the command-line interface of bramsim.
package cmd

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// envPrefix is prepended to the upper-cased flag name, with dashes replaced
// by underscores, to find the default of a flag in the environment.
const envPrefix = "BRAM_"

// NewRootCmd creates the bramsim command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "bramsim",
		Short: "bramsim simulates a synchronous block RAM.",
		Long: `bramsim loads the initial contents of a block RAM from a text ` +
			`file and evaluates it cycle by cycle, with one cycle of read ` +
			`latency and undefined value propagation.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := loadEnv(cmd); err != nil {
				return err
			}

			if getBool(cmd, "verbose") {
				log.SetLevel(log.DebugLevel)
			}

			return nil
		},
	}

	rootCmd.PersistentFlags().BoolP("verbose", "v", false,
		"log every simulated cycle")
	rootCmd.PersistentFlags().String("env-file", ".env",
		"file with BRAM_* defaults for the flags")

	rootCmd.AddCommand(newLoadCmd())
	rootCmd.AddCommand(newRunCmd())

	return rootCmd
}

// Execute runs the command line.
func Execute() error {
	return NewRootCmd().Execute()
}

// loadEnv reads the env file, if any, and uses BRAM_* variables as the value
// of the flags that are not given on the command line.
func loadEnv(cmd *cobra.Command) error {
	envFile, _ := cmd.Flags().GetString("env-file")
	if envFile != "" {
		err := godotenv.Load(envFile)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}

		if err == nil {
			log.Debugf("loaded defaults from %s", envFile)
		}
	}

	var setErr error

	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Changed || setErr != nil {
			return
		}

		key := envPrefix + strings.ToUpper(strings.ReplaceAll(f.Name, "-", "_"))

		value, ok := os.LookupEnv(key)
		if !ok {
			return
		}

		setErr = cmd.Flags().Set(f.Name, value)
	})

	return setErr
}

func getBool(cmd *cobra.Command, name string) bool {
	v, err := cmd.Flags().GetBool(name)
	if err != nil {
		log.Panic(err)
	}

	return v
}

func getInt(cmd *cobra.Command, name string) int {
	v, err := cmd.Flags().GetInt(name)
	if err != nil {
		log.Panic(err)
	}

	return v
}

func getString(cmd *cobra.Command, name string) string {
	v, err := cmd.Flags().GetString(name)
	if err != nil {
		log.Panic(err)
	}

	return v
}

func getFloat(cmd *cobra.Command, name string) float64 {
	v, err := cmd.Flags().GetFloat64(name)
	if err != nil {
		log.Panic(err)
	}

	return v
}
