package main

import (
	"fmt"
	"io"
	"os"

	"github.com/signadot/objson/encode"
	"github.com/signadot/objson/parse"
	"github.com/signadot/objson/serializer"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"
)

type MainConfig struct {
	Color   bool `cli:"name=color desc='encode with color'"`
	WireOut bool `cli:"name=wire desc='output in compact format'"`

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	res := []encode.EncodeOption{
		encode.EncodeWire(cfg.WireOut),
	}
	if cfg.colored(w) {
		res = append(res, encode.EncodeColors(encode.NewColors()))
	}
	return res
}

// colored reports whether output to w should be colored: -color when given
// explicitly, otherwise whether w is a terminal.
func (cfg *MainConfig) colored(w io.Writer) bool {
	if cfg.Color {
		return true
	}
	if cfg.Main != nil {
		for _, opt := range cfg.Main.Opts {
			if opt.Name == "color" && opt.Value != nil {
				return false
			}
		}
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

type FmtConfig struct {
	*MainConfig
	Strict bool `cli:"name=strict desc='reject duplicate object keys'"`

	Fmt *cli.Command
}

func (cfg *FmtConfig) parseOpts() []parse.ParseOption {
	return []parse.ParseOption{parse.RejectDuplicateNames(cfg.Strict)}
}

type CheckConfig struct {
	*MainConfig
	Type  string `cli:"name=t aliases=type desc='type name to check against'"`
	Merge bool   `cli:"name=merge desc='treat -patch as an RFC 7386 merge patch'"`
	Diff  bool   `cli:"name=diff desc='show how the normalized output differs from the input'"`
	Quiet bool   `cli:"name=q desc='only report failures'"`

	Serializer serializer.Config
	PatchData  []byte

	Check *cli.Command
}

func (cfg *CheckConfig) configOpt(_ *cli.Context, a string) (any, error) {
	d, err := os.ReadFile(a)
	if err != nil {
		return nil, err
	}
	c, err := serializer.ParseConfig(d)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", cli.ErrUsage, a, err)
	}
	cfg.Serializer = c
	return c, nil
}

func (cfg *CheckConfig) patchOpt(_ *cli.Context, a string) (any, error) {
	d, err := os.ReadFile(a)
	if err != nil {
		return nil, err
	}
	cfg.PatchData = d
	return a, nil
}

func (cfg *CheckConfig) patchFormat() serializer.PatchFormat {
	if cfg.Merge {
		return serializer.MergePatch
	}
	return serializer.JSONPatch
}

type TypesConfig struct {
	*MainConfig

	Types *cli.Command
}
