// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/kittiesd/command/kitties-cli/configuration"
)

type metadata struct {
	file    string
	config  *configuration.Configuration
	save    bool
	verbose bool
	e       io.Writer
	w       io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {
	app := newApp(os.Stdout, os.Stderr)

	err := app.Run(os.Args)
	if nil != err {
		fmt.Fprintf(app.ErrWriter, "terminated with error: %s\n", err)
		os.Exit(1)
	}
}

func newApp(w io.Writer, e io.Writer) *cli.App {
	app := cli.NewApp()
	app.Name = "kitties-cli"
	app.Usage = "create, breed and trade kitties on a kittiesd"
	app.Version = version
	app.HideVersion = true

	app.Writer = w
	app.ErrWriter = e

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:  "config, c",
			Value: "",
			Usage: " configuration `FILE` [$XDG_CONFIG_HOME/kitties-cli/kitties-cli.json]",
		},
		cli.StringFlag{
			Name:  "identity, i",
			Value: "",
			Usage: " identity `NAME` [default identity]",
		},
		cli.StringFlag{
			Name:  "password, p",
			Value: "",
			Usage: " identity `PASSWORD`",
		},
	}

	app.Commands = []cli.Command{
		{
			Name:      "generate",
			Usage:     "generate a recovery phrase and account, will not store in config file",
			ArgsUsage: "\n   (* = required)",
			Action:    runGenerate,
		},
		{
			Name:      "setup",
			Usage:     "initialise kitties-cli configuration",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "connect, x",
					Value: "",
					Usage: "*kittiesd host/IP and port, `HOST:PORT`",
				},
				cli.StringFlag{
					Name:  "description, d",
					Value: "",
					Usage: "*identity description `STRING`",
				},
				cli.StringFlag{
					Name:  "mnemonic, m",
					Value: "",
					Usage: " recover from an existing recovery `PHRASE`",
				},
			},
			Action: runSetup,
		},
		{
			Name:      "add",
			Usage:     "add a new identity to config file",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "description, d",
					Value: "",
					Usage: "*identity description `STRING`",
				},
				cli.StringFlag{
					Name:  "mnemonic, m",
					Value: "",
					Usage: " recover from an existing recovery `PHRASE`",
				},
				cli.StringFlag{
					Name:  "account, a",
					Value: "",
					Usage: " receive only `ACCOUNT`, no private key",
				},
			},
			Action: runAdd,
		},
		{
			Name:      "list",
			Usage:     "list identities",
			ArgsUsage: "\n   (* = required)",
			Action:    runList,
		},
		{
			Name:      "info",
			Usage:     "display kittiesd status",
			ArgsUsage: "\n   (* = required)",
			Action:    runInfo,
		},
		{
			Name:      "balance",
			Usage:     "display balance and locks of an account",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "owner, o",
					Value: "",
					Usage: " identity name or `ACCOUNT` default is global identity",
				},
			},
			Action: runBalance,
		},
		{
			Name:      "create",
			Usage:     "create a new random kitty",
			ArgsUsage: "\n   (* = required)",
			Action:    runCreate,
		},
		{
			Name:      "breed",
			Usage:     "breed two owned kitties",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "parent1",
					Value: "",
					Usage: "*first parent `ID`",
				},
				cli.StringFlag{
					Name:  "parent2",
					Value: "",
					Usage: "*second parent `ID`",
				},
			},
			Action: runBreed,
		},
		{
			Name:      "transfer",
			Usage:     "transfer a kitty to another account",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "kitty, k",
					Value: "",
					Usage: "*kitty to transfer `ID`",
				},
				cli.StringFlag{
					Name:  "receiver, r",
					Value: "",
					Usage: "*identity name or account to receive the kitty `ACCOUNT`",
				},
			},
			Action: runTransfer,
		},
		{
			Name:      "ask",
			Usage:     "list an owned kitty for sale or withdraw it",
			ArgsUsage: "\n   (* = required, + = select one)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "kitty, k",
					Value: "",
					Usage: "*kitty to list `ID`",
				},
				cli.StringFlag{
					Name:  "price, P",
					Value: "",
					Usage: "+asking `PRICE`",
				},
				cli.BoolFlag{
					Name:  "withdraw, w",
					Usage: "+remove the kitty from sale",
				},
			},
			Action: runAsk,
		},
		{
			Name:      "buy",
			Usage:     "buy a kitty that is for sale",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "kitty, k",
					Value: "",
					Usage: "*kitty to buy `ID`",
				},
				cli.StringFlag{
					Name:  "price, P",
					Value: "",
					Usage: "*maximum `PRICE` to pay",
				},
			},
			Action: runBuy,
		},
		{
			Name:      "kitty",
			Usage:     "display one kitty and its lineage",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "kitty, k",
					Value: "",
					Usage: "*kitty to display `ID`",
				},
			},
			Action: runKitty,
		},
		{
			Name:      "owned",
			Usage:     "list kitties owned",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "owner, o",
					Value: "",
					Usage: " identity name or `ACCOUNT` default is global identity",
				},
				cli.IntFlag{
					Name:  "count, n",
					Value: 20,
					Usage: " maximum records to output `COUNT`",
				},
			},
			Action: runOwned,
		},
		{
			Name:  "version",
			Usage: "display kitties-cli version",
			Action: func(c *cli.Context) error {
				fmt.Fprintf(c.App.Writer, "%s\n", version)
				return nil
			},
		},
	}

	// read the configuration file, except for commands that do not need it
	app.Before = func(c *cli.Context) error {
		e := c.App.ErrWriter
		w := c.App.Writer
		verbose := c.GlobalBool("verbose")

		command := c.Args().Get(0)
		switch command {
		case "", "version", "generate", "help", "h":
			c.App.Metadata["config"] = &metadata{
				verbose: verbose,
				e:       e,
				w:       w,
			}
			return nil
		}

		file, err := configurationFile(c.GlobalString("config"), app.Name)
		if nil != err {
			return err
		}
		if verbose {
			fmt.Fprintf(e, "file: %q\n", file)
		}

		m := &metadata{
			file:    file,
			verbose: verbose,
			e:       e,
			w:       w,
		}

		if "setup" == command {
			// do not run setup if there is an existing configuration
			if _, err := checkFileExists(file); nil == err {
				return fmt.Errorf("not overwriting existing configuration: %q", file)
			}
		} else {
			config, err := configuration.Load(file)
			if nil != err {
				return err
			}
			m.config = config
		}

		c.App.Metadata["config"] = m
		return nil
	}

	// update the configuration if required
	app.After = func(c *cli.Context) error {
		m, ok := c.App.Metadata["config"].(*metadata)
		if !ok || !m.save {
			return nil
		}
		if m.verbose {
			fmt.Fprintf(c.App.ErrWriter, "updating config file: %s\n", m.file)
		}
		return configuration.Save(m.file, m.config)
	}

	return app
}

func configurationFile(file string, name string) (string, error) {
	if "" != file {
		return filepath.Abs(os.ExpandEnv(file))
	}

	p := os.Getenv("XDG_CONFIG_HOME")
	if "" == p {
		return "", fmt.Errorf("XDG_CONFIG_HOME environment is not set")
	}
	dir, err := checkFileExists(p)
	if nil != err {
		return "", err
	}
	if !dir {
		return "", fmt.Errorf("not a directory: %q", p)
	}
	return filepath.Join(p, name, name+".json"), nil
}
