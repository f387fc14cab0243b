package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, &cli.Opt{
		Name:        "o",
		Description: "output file (default stdout)",
		Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
	})

	return cli.NewCommandAt(&cfg.Main, "objson").
		WithSynopsis("objson [opts] command [opts]").
		WithDescription("objson formats JSON and checks it against registered types.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return objsonMain(cfg, cc, args)
		}).
		WithSubs(
			FmtCommand(cfg),
			CheckCommand(cfg),
			TypesCommand(cfg))
}

func FmtCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &FmtConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("fmt").
		WithAliases("f").
		WithOpts(opts...).
		WithSynopsis("fmt [-strict] [files]").
		WithDescription("reformat JSON documents").
		WithRun(func(cc *cli.Context, args []string) error {
			return format(cfg, cc, args)
		})
	cfg.Fmt = cmd
	return cmd
}

func CheckCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &CheckConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts = append(opts, &cli.Opt{
		Name:        "config",
		Description: "serializer configuration file (yaml)",
		Type:        cli.NamedFuncOpt(cli.FuncOpt(cfg.configOpt), "(file)"),
	}, &cli.Opt{
		Name:        "patch",
		Description: "JSON patch applied to each input before checking",
		Type:        cli.NamedFuncOpt(cli.FuncOpt(cfg.patchOpt), "(file)"),
	})
	cmd := cli.NewCommand("check").
		WithAliases("c", "ch").
		WithOpts(opts...).
		WithSynopsis("check -t <type> [-config file] [-patch file [-merge]] [-diff] [files]").
		WithDescription("deserialize documents as a type and write them back normalized").
		WithRun(func(cc *cli.Context, args []string) error {
			return check(cfg, cc, args)
		})
	cfg.Check = cmd
	return cmd
}

func TypesCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &TypesConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Types, "types").
		WithAliases("t").
		WithSynopsis("types").
		WithDescription("list the types known to check").
		WithRun(func(cc *cli.Context, args []string) error {
			return listTypes(cfg, cc, args)
		})
}
