// Copyright 2026 cforge Contributors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at.
//
//     http://www.apache.org/licenses/LICENSE-2.0.
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package main contains the entry point for cforge - it uses internal packages to provide the following CLI commands:.
// - cforge new.
// - cforge doctor.
// - cforge config.
package main

import (
	"context"
	"log"
	"os"

	"github.com/CForgeLabs/cforge-cli/internal/cli"
	"github.com/CForgeLabs/cforge-cli/internal/config"
	urfavecli "github.com/urfave/cli/v3"
)

// version is set by build flags during release.
var version = "dev"

func main() {
	// Create CLI app.
	app := &urfavecli.Command{
		Name:                  "cforge",
		Description:           "Scaffold minimal C projects with optional git and GitHub setup.",
		Usage:                 "cforge new",
		Version:               version,
		EnableShellCompletion: true,
		Commands: []*urfavecli.Command{
			cli.NewCommand,
			cli.DoctorCommand,
			config.ConfigCommand,
		},
	}

	// Run the CLI app.
	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
