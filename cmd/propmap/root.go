package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// envPrefix prefixes the environment variables read for every flag:
// --profile is also PROPMAP_PROFILE.
const envPrefix = "PROPMAP"

// app is the state shared by the subcommands of one invocation.
type app struct {
	v      *viper.Viper
	logger *zap.SugaredLogger
}

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	a.v.SetEnvPrefix(envPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	rootCmd := &cobra.Command{
		Use:           "propmap",
		Short:         "Check and format propmap mapping profiles",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.v.BindPFlags(cmd.Flags()); err != nil {
				return fmt.Errorf("bind flags: %w", err)
			}

			logger, err := newLogger(a.v.GetBool("verbose"))
			if err != nil {
				return fmt.Errorf("create logger: %w", err)
			}

			a.logger = logger.Sugar()

			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().Bool("verbose", false, "log debug output to stderr")

	rootCmd.AddCommand(newCheckCmd(a))
	rootCmd.AddCommand(newFmtCmd(a))

	return rootCmd
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}

	return cfg.Build()
}

// reportError prints err to the command's error stream and returns it so RunE
// exits non-zero.
func reportError(cmd *cobra.Command, err error) error {
	if err == nil {
		return nil
	}

	cmd.PrintErrln("Error:", err)
	return err
}
