package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/KostasZigo/gogitstore/internal/constants"
	"github.com/KostasZigo/gogitstore/internal/logger"
	"github.com/KostasZigo/gogitstore/internal/objects"
	"github.com/KostasZigo/gogitstore/internal/repository"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// rootCmd defines the base command for the gogit CLI.
// All subcommands (init, hash-object, cat-file, ls-tree, write-tree) register under this root.
var rootCmd = &cobra.Command{
	Use:   "gogit",
	Short: "A content-addressable object store in GO",
	Long: `GoGit stores file contents and directory snapshots as content-addressed
objects under .gogit/objects, using the same loose object format as Git.`,
	PersistentPreRunE: setupLogger,
}

// log is replaced by setupLogger before any subcommand runs.
var log = zap.NewNop()

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String(constants.LogLevelKey, constants.DefaultLogLevel, "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String(constants.LogFormatKey, constants.DefaultLogFormat, "log format (console, json)")

	_ = viper.BindPFlag(constants.LogLevelKey, rootCmd.PersistentFlags().Lookup(constants.LogLevelKey))
	_ = viper.BindPFlag(constants.LogFormatKey, rootCmd.PersistentFlags().Lookup(constants.LogFormatKey))
}

// initConfig reads settings from GOGIT_* environment variables.
func initConfig() {
	viper.SetEnvPrefix(constants.EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func setupLogger(cmd *cobra.Command, _ []string) error {
	l, err := logger.New(viper.GetString(constants.LogLevelKey), viper.GetString(constants.LogFormatKey))
	if err != nil {
		return err
	}
	log = l
	return nil
}

// Execute runs the root command and handles exit codes.
// Called from main.go to start CLI execution.
func Execute() {
	err := rootCmd.Execute()
	_ = log.Sync()
	if err != nil {
		os.Exit(1)
	}
}

// openStore locates the repository containing the working directory and
// opens its object store with the repository config applied.
func openStore() (*objects.ObjectStore, error) {
	repoPath, err := repository.FindRepoRoot(".")
	if err != nil {
		return nil, err
	}

	return repository.OpenStore(repoPath, log)
}

// exactArgs validates command receives exactly n positional arguments.
// enables usage printing in case of error
func exactArgs(n int, what string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			cmd.SilenceUsage = false
			return fmt.Errorf("%s command requires exactly %d argument (%s), received %d", cmd.Name(), n, what, len(args))
		}
		return nil
	}
}

// maximumArgs validates command receives at most n positional arguments.
// enables usage printing in case of error
func maximumArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) > n {
			cmd.SilenceUsage = false
			return fmt.Errorf("%s command accepts at most %d arg(s), received %d", cmd.Name(), n, len(args))
		}
		return nil
	}
}
