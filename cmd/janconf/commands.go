package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/KimNorgaard/go-janconf"
	"github.com/scott-cotton/cli"
)

type MainConfig struct {
	MaxDepth int `cli:"name=max-depth desc='maximum group nesting accepted when parsing (default 1000)'"`

	Main *cli.Command
}

func (cfg *MainConfig) parseOpts() []janconf.Option {
	if cfg.MaxDepth > 0 {
		return []janconf.Option{janconf.MaxDepth(cfg.MaxDepth)}
	}
	return nil
}

type FmtConfig struct {
	MainConfig *MainConfig
	Fmt        *cli.Command

	Indent  int  `cli:"name=i aliases=indent desc='spaces per group level (default 2)'"`
	NoSpace bool `cli:"name=nospace desc='omit the space after the colon of a scalar'"`
	Write   bool `cli:"name=w desc='write the result back to the source file'"`
	Diff    bool `cli:"name=d desc='print a diff instead of the formatted document'"`
}

func (cfg *FmtConfig) encOpts() []janconf.Option {
	indent := cfg.Indent
	if indent == 0 {
		indent = 2
	}
	return []janconf.Option{janconf.Indent(indent), janconf.ValueSpacing(!cfg.NoSpace)}
}

type CheckConfig struct {
	MainConfig *MainConfig
	Check      *cli.Command
}

type GetConfig struct {
	MainConfig *MainConfig
	Get        *cli.Command
}

type YAMLConfig struct {
	MainConfig *MainConfig
	YAML       *cli.Command
}

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Main, "janconf").
		WithSynopsis("janconf [opts] command [opts]").
		WithDescription("janconf formats, checks and queries JanConf configuration files.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return janconfMain(cfg, cc, args)
		}).
		WithSubs(
			FmtCommand(cfg),
			CheckCommand(cfg),
			GetCommand(cfg),
			YAMLCommand(cfg))
}

func janconfMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return cli.ErrNoCommandProvided
	}
	sub := cfg.Main.FindSub(cc, args[0])
	if sub == nil {
		return fmt.Errorf("%w: %q not found", cli.ErrNoSuchCommand, args[0])
	}
	err = sub.Run(cc, args[1:])
	if errors.Is(err, cli.ErrUsage) {
		sub.Usage(cc, err)
		os.Exit(sub.Exit(cc, err))
	}
	return err
}

func FmtCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &FmtConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Fmt, "fmt").
		WithSynopsis("fmt [-i n] [-nospace] [-w] [-d] [files]").
		WithDescription("reformat JanConf files; reads stdin when no file is given").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return fmtMain(cfg, cc, args)
		})
}

func CheckCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &CheckConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Check, "check").
		WithSynopsis("check [files]").
		WithDescription("parse JanConf files and report the first error in each").
		WithRun(func(cc *cli.Context, args []string) error {
			return check(cfg, cc, args)
		})
}

func GetCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &GetConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Get, "get").
		WithSynopsis("get <dotted.path> [files]").
		WithDescription("print the scalar or group found at a dotted key path").
		WithRun(func(cc *cli.Context, args []string) error {
			return get(cfg, cc, args)
		})
}

func YAMLCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &YAMLConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.YAML, "yaml").
		WithAliases("y").
		WithSynopsis("yaml [files]").
		WithDescription("convert JanConf files to YAML, keeping comments").
		WithRun(func(cc *cli.Context, args []string) error {
			return toYAML(cfg, cc, args)
		})
}
