package config

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/urfave/cli/v3"
)

// ConfigCommand provides configuration management subcommands for the cforge CLI.
// This is the main entry point for viewing and editing the scaffolding
// defaults stored at ~/.cforge/config.json.
var ConfigCommand = &cli.Command{
	Name:        "config",
	Usage:       "Manage cforge configuration",
	Description: "Commands to manage the global cforge configuration at ~/.cforge/config.json",
	Commands: []*cli.Command{
		configShowCommand,
		configPathCommand,
		configSetCommand,
	},
}

var configShowCommand = &cli.Command{
	Name:        "show",
	Usage:       "Display current configuration",
	Description: "Shows the stored configuration, or the built-in defaults if none was saved yet",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:    "json",
			Aliases: []string{"j"},
			Usage:   "Output as JSON",
		},
	},
	Action: showConfig,
}

var configPathCommand = &cli.Command{
	Name:        "path",
	Usage:       "Print the configuration file path",
	Description: "Prints the full path of ~/.cforge/config.json",
	Action:      showConfigPath,
}

var configSetCommand = &cli.Command{
	Name:        "set",
	Usage:       "Set a default value",
	Description: "Updates a scaffolding default. Keys: features (comma separated list), init-git (true/false), visibility (public/private)",
	ArgsUsage:   "<key> <value>",
	Action:      setConfigValue,
}

// showConfig prints the effective configuration, using the built-in
// defaults when no file has been saved yet.
func showConfig(_ context.Context, cmd *cli.Command) error {
	cfg, err := LoadOrDefault()
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	defaults := cfg.Defaults
	if defaults == nil {
		d := NewDefaultScaffoldDefaults()
		defaults = &d
	}

	fmt.Printf("Version:    %s\n", cfg.Version)
	fmt.Printf("Features:   %s\n", strings.Join(defaults.Features, ", "))
	fmt.Printf("Init git:   %t\n", defaults.InitGit)
	fmt.Printf("Visibility: %s\n", defaults.Visibility)
	return nil
}

func showConfigPath(_ context.Context, _ *cli.Command) error {
	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}
	fmt.Println(configPath)
	return nil
}

// setConfigValue updates one default and persists the config file.
func setConfigValue(_ context.Context, cmd *cli.Command) error {
	args := cmd.Args()
	if args.Len() != 2 {
		return fmt.Errorf("usage: cforge config set <key> <value>")
	}
	key := args.Get(0)
	value := args.Get(1)

	cfg, err := LoadOrDefault()
	if err != nil {
		return err
	}
	if cfg.Defaults == nil {
		defaults := NewDefaultScaffoldDefaults()
		cfg.Defaults = &defaults
	}

	if err := applyDefault(cfg.Defaults, key, value); err != nil {
		return err
	}

	if err := ValidateConfig(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if err := SaveConfig(cfg); err != nil {
		return err
	}

	fmt.Printf("✅ Updated %s\n", key)
	return nil
}

// applyDefault mutates one field of the scaffolding defaults.
func applyDefault(defaults *ScaffoldDefaults, key, value string) error {
	switch key {
	case "features":
		features := []string{}
		for _, feature := range strings.Split(value, ",") {
			feature = strings.TrimSpace(feature)
			if feature == "" {
				continue
			}
			features = append(features, feature)
		}
		defaults.Features = features
	case "init-git":
		enabled, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("init-git must be true or false, got '%s'", value)
		}
		defaults.InitGit = enabled
	case "visibility":
		defaults.Visibility = value
	default:
		return fmt.Errorf("unknown key '%s' (supported: features, init-git, visibility)", key)
	}
	return nil
}
