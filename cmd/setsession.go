package cmd

import (
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/leftmike/setsession/config"
	"github.com/leftmike/setsession/property"
	"github.com/leftmike/setsession/system"
)

var (
	setsessionCmd = &cobra.Command{
		Use:   "setsession",
		Short: "Set session properties",
		Long: "SetSession runs SET SESSION, RESET SESSION, and SHOW SESSION statements " +
			"against a session, using system and catalog properties declared in a config file.",
		SilenceUsage:      true,
		PersistentPreRunE: setsessionPreRun,
		PersistentPostRun: setsessionPostRun,
	}

	logFile   = "setsession.log"
	logLevel  = "info"
	logStderr = false
	logWriter io.WriteCloser

	configFile = "setsession.hcl"
	noConfig   = false

	cfgVars   = map[string]*pflag.Flag{}
	usedFlags = map[string]struct{}{}
	registry  *property.Registry
)

func init() {
	log.SetFormatter(&log.TextFormatter{
		DisableLevelTruncation: true,
	})

	fs := setsessionCmd.PersistentFlags()

	fs.StringVar(&logFile, "log-file", logFile, "`file` to use for logging")
	cfgVars["log-file"] = fs.Lookup("log-file")

	fs.StringVar(&logLevel, "log-level", logLevel,
		"log level: trace, debug, info, warn, error, fatal, or panic")
	cfgVars["log-level"] = fs.Lookup("log-level")

	fs.BoolVarP(&logStderr, "log-stderr", "s", logStderr, "log to standard error")

	fs.StringVar(&configFile, "config-file", configFile, "`file` to load config from")
	fs.BoolVar(&noConfig, "no-config", noConfig, "don't load config file")
}

func Execute() error {
	return setsessionCmd.Execute()
}

func setsessionPreRun(cmd *cobra.Command, args []string) error {
	cmd.Flags().Visit(
		func(flg *pflag.Flag) {
			usedFlags[flg.Name] = struct{}{}
		})

	registry = system.NewRegistry()
	if configFile != "" && !noConfig {
		err := loadConfig(registry)
		if err != nil {
			return fmt.Errorf("setsession: %s", err)
		}
	}

	if !logStderr && logFile != "" {
		var err error
		logWriter, err = os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
		if err != nil {
			logWriter = nil
			return fmt.Errorf("setsession: %s", err)
		}
		log.SetOutput(logWriter)
	}

	ll, err := log.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("setsession: %s", err)
	}
	log.SetLevel(ll)

	log.WithFields(log.Fields{
		"pid":     os.Getpid(),
		"command": cmd.Name(),
	}).Info("setsession starting")
	return nil
}

func setsessionPostRun(cmd *cobra.Command, args []string) {
	log.WithField("pid", os.Getpid()).Info("setsession done")

	if logWriter != nil {
		logWriter.Close()
	}
}

func loadConfig(reg *property.Registry) error {
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		if _, ok := usedFlags["config-file"]; !ok {
			return nil
		}
	}

	vars, err := config.LoadFile(reg, configFile)
	if err != nil {
		return err
	}
	return setVars(vars)
}

// setVars sets the flags named by vars, unless they were given on the command line.
func setVars(vars map[string]interface{}) error {
	for name, val := range vars {
		flg, ok := cfgVars[name]
		if !ok {
			return fmt.Errorf("%s is not a config variable", name)
		}
		if _, ok := usedFlags[flg.Name]; ok {
			continue
		}
		err := flg.Value.Set(fmt.Sprintf("%v", val))
		if err != nil {
			return fmt.Errorf("%s: %s", name, err)
		}
	}
	return nil
}
