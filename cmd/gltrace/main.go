// Command gltrace is the inspection and replay CLI for the trace
// format implemented by this module (spec §6.4): replay, dump, parse,
// info, find, pack_json/unpack_json, and compare_hash_files.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	log         = logrus.New()
	cfgFile     string
	flagVerbose bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "gltrace",
		Short: "Inspect and replay GL call-stream traces",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $HOME/.gltrace.yaml)")
	root.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newReplayCmd(),
		newDumpCmd(),
		newParseCmd(),
		newInfoCmd(),
		newFindCmd(),
		newPackJSONCmd(),
		newUnpackJSONCmd(),
		newCompareHashFilesCmd(),
	)
	return root
}

// initConfig wires viper to an optional config file (--config, or
// $HOME/.gltrace.yaml when that flag is empty) plus GLTRACE_-prefixed
// environment overrides, and sets the log level from --verbose or the
// resolved "verbose" config key.
func initConfig() error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home)
		viper.SetConfigName(".gltrace")
	}
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return err
		}
	}
	viper.SetEnvPrefix("GLTRACE")
	viper.AutomaticEnv()

	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if flagVerbose || viper.GetBool("verbose") {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.InfoLevel)
	}
	return nil
}

func logEntry() *logrus.Entry {
	return logrus.NewEntry(log)
}
