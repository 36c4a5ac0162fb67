package main

import (
	"errors"
	"fmt"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-mdmirror/internal/config"
)

// runConfigCmd prints the effective configuration as YAML or TOML.
func runConfigCmd(args []string, env *Environment) int {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(env.Stderr)
	var name string
	var asTOML bool
	fs.StringVarP(&name, "config", "c", "", "config file name or path")
	fs.BoolVar(&asTOML, "toml", false, "print TOML instead of YAML")
	fs.Usage = func() { printConfigUsage(env.Stderr) }

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		return ExitUsage
	}

	envCfg := loadEnvConfig(env.Getenv)
	if name == "" {
		name = envCfg.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		var err error
		if cfg, err = config.LoadConfig(name); err != nil {
			hc := &hintContext{configName: name}
			fmt.Fprintf(env.Stderr, "error: %v\n", withHint(fmt.Errorf("loading config: %w", err), hc))
			return exitCodeFor(err)
		}
	}
	applyEnvConfig(envCfg, cfg)

	encode := config.EncodeYAML
	if asTOML {
		encode = config.EncodeTOML
	}
	out, err := encode(cfg)
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return ExitGeneral
	}
	_, _ = env.Stdout.Write(out)
	return ExitSuccess
}
