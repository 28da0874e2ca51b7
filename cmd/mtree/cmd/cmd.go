// Copyright 2020 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ethersphere/mtree/pkg/logging"
	"github.com/ethersphere/mtree/pkg/merkle"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	optionNameHash          = "hash"
	optionNameConcurrency   = "concurrency"
	optionNameVerbosity     = "verbosity"
	optionNameOutput        = "output"
	optionNameIncludeHidden = "include-hidden"
	optionNameCacheCapacity = "cache-capacity"
	optionNameMetrics       = "metrics"
	optionNameLeavesOnly    = "leaves-only"
)

const (
	outputText = "text"
	outputJSON = "json"
	outputYAML = "yaml"
)

func init() {
	cobra.EnableCommandSorting = false
}

type command struct {
	root    *cobra.Command
	config  *viper.Viper
	fs      afero.Fs
	cfgFile string
	homeDir string
}

type option func(*command)

func newCommand(opts ...option) (c *command, err error) {
	c = &command{
		root: &cobra.Command{
			Use:           "mtree",
			Short:         "Build and compare Merkle trees over directories",
			SilenceErrors: true,
			SilenceUsage:  true,
			PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
				if err := c.initConfig(); err != nil {
					return err
				}
				return c.config.BindPFlags(cmd.Flags())
			},
		},
	}

	for _, o := range opts {
		o(c)
	}
	if c.fs == nil {
		c.fs = afero.NewOsFs()
	}

	// Find home directory.
	if err := c.setHomeDir(); err != nil {
		return nil, err
	}

	c.initGlobalFlags()

	c.initRootHashCmd()
	c.initLevelsCmd()
	c.initDiffCmd()
	c.initVersionCmd()

	return c, nil
}

func (c *command) Execute() (err error) {
	return c.root.Execute()
}

// Execute parses command line arguments and runs appropriate functions.
func Execute() (err error) {
	c, err := newCommand()
	if err != nil {
		return err
	}
	return c.Execute()
}

func (c *command) initGlobalFlags() {
	globalFlags := c.root.PersistentFlags()
	globalFlags.StringVar(&c.cfgFile, "config", c.cfgFile, "config file (default is $HOME/.mtree.yaml)")
	globalFlags.String(optionNameHash, merkle.SHA256, fmt.Sprintf("base hash function, one of %s", strings.Join(merkle.HasherNames(), ", ")))
	globalFlags.Int(optionNameConcurrency, 1, "number of goroutines hashing a tree level")
	globalFlags.String(optionNameVerbosity, "warn", "log verbosity level 0=silent, 1=error, 2=warn, 3=info, 4=debug, 5=trace")
	globalFlags.String(optionNameOutput, outputText, "output format, one of text, json, yaml")
	globalFlags.Bool(optionNameIncludeHidden, false, "include files and directories starting with a dot")
	globalFlags.Int(optionNameCacheCapacity, 10000, "number of file digests remembered between directory loads")
	globalFlags.Bool(optionNameMetrics, false, "write collected metrics to stderr when done")
}

func (c *command) initConfig() (err error) {
	config := viper.New()
	config.SetFs(c.fs)
	configName := ".mtree"
	if c.cfgFile != "" {
		// Use config file from the flag.
		config.SetConfigFile(c.cfgFile)
	} else {
		// Search config in home directory with name ".mtree" (without extension).
		config.AddConfigPath(c.homeDir)
		config.SetConfigName(configName)
	}

	// Environment
	config.SetEnvPrefix("mtree")
	config.AutomaticEnv() // read in environment variables that match
	config.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	if c.homeDir != "" && c.cfgFile == "" {
		c.cfgFile = filepath.Join(c.homeDir, configName+".yaml")
	}

	// If a config file is found, read it in.
	if err := config.ReadInConfig(); err != nil {
		var e viper.ConfigFileNotFoundError
		if !errors.As(err, &e) {
			return err
		}
	}
	c.config = config
	return nil
}

func (c *command) setHomeDir() (err error) {
	if c.homeDir != "" {
		return
	}
	dir, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	c.homeDir = dir
	return nil
}

func newLogger(w io.Writer, verbosity string) (logging.Logger, error) {
	var logger logging.Logger
	switch verbosity {
	case "0", "silent":
		logger = logging.New(io.Discard, 0)
	case "1", "error":
		logger = logging.New(w, logrus.ErrorLevel)
	case "2", "warn":
		logger = logging.New(w, logrus.WarnLevel)
	case "3", "info":
		logger = logging.New(w, logrus.InfoLevel)
	case "4", "debug":
		logger = logging.New(w, logrus.DebugLevel)
	case "5", "trace":
		logger = logging.New(w, logrus.TraceLevel)
	default:
		return nil, fmt.Errorf("unknown verbosity level %q", verbosity)
	}
	return logger, nil
}
