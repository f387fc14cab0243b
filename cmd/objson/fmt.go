package main

import (
	"fmt"

	"github.com/signadot/objson/encode"

	"github.com/scott-cotton/cli"
)

func format(cfg *FmtConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Fmt.Parse(cc, args)
	if err != nil {
		return err
	}
	w := cc.Out
	opts := cfg.encOpts(w)
	for _, file := range inputs(args) {
		node, err := getObjFile(cc, file, cfg.parseOpts()...)
		if err != nil {
			return fmt.Errorf("error decoding %s: %w", file, err)
		}
		if err := encode.Encode(node, w, opts...); err != nil {
			return err
		}
		// wire output has no trailing newline
		if cfg.WireOut {
			if _, err := w.Write([]byte("\n")); err != nil {
				return err
			}
		}
	}
	return nil
}
