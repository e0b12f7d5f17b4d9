package main

import (
	"errors"
	"fmt"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-typograf/internal/yamlutil"
)

// configHeader documents the file printed by the config command.
const configHeader = `typograf configuration

Save as ~/.config/go-typograf/NAME.yaml (or ./NAME.yaml) and use --config NAME.
Quote styles: french, german, english-double, programmer, english-single.
Formats: named, numeric, unicode.
TYPOGRAF_* environment variables and flags override these values.`

// runConfigCmd prints the effective configuration as YAML: the defaults,
// or the named config with environment overrides applied.
func runConfigCmd(args []string, env *Environment) error {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(env.Stderr)
	var name string
	fs.StringVarP(&name, "config", "c", "", "config file name or path")
	fs.Usage = func() { printConfigUsage(env.Stderr) }
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}

	logger := newLogger(env.Stderr, false, false)
	envCfg := loadEnvConfig(logger)
	if name == "" {
		name = envCfg.ConfigPath
	}

	cfg, err := resolveConfig(name)
	if err != nil {
		return err
	}
	applyEnvConfig(envCfg, cfg)

	return yamlutil.WriteDocument(env.Stdout, configHeader, cfg)
}
