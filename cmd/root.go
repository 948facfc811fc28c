package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// cfgFile is the optional run profile supplying flag defaults
var cfgFile string

// v resolves settings from flags, then QOSGEN_* env, then the run profile
var v = viper.New()

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:          "qosgen",
	Short:        "Expected buffer watermark generator for Broadcom ASICs",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := initConfig(v, cfgFile); err != nil {
			return err
		}
		level, err := logrus.ParseLevel(v.GetString("log"))
		if err != nil {
			return fmt.Errorf("invalid log level %q", v.GetString("log"))
		}
		logrus.SetLevel(level)
		return nil
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Run profile (YAML) with defaults for any flag")
	rootCmd.PersistentFlags().String("log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	cobra.CheckErr(v.BindPFlag("log", rootCmd.PersistentFlags().Lookup("log")))

	rootCmd.AddCommand(calcCmd)
	rootCmd.AddCommand(asicsCmd)
}
