package main

import (
	"fmt"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/signadot/objson/meta"

	"github.com/scott-cotton/cli"
)

func listTypes(cfg *TypesConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Types.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 0 {
		return fmt.Errorf("%w: types takes no arguments", cli.ErrUsage)
	}
	tw := tabwriter.NewWriter(cc.Out, 0, 4, 2, ' ', 0)
	for _, t := range sortedTypes(meta.NewRegistry()) {
		fmt.Fprintf(tw, "%s\t%s\n", t.Name(), t.Flags())
	}
	return tw.Flush()
}

func sortedTypes(r *meta.Registry) []*meta.Type {
	ts := r.Types()
	slices.SortFunc(ts, func(a, b *meta.Type) int {
		return strings.Compare(a.Name(), b.Name())
	})
	return ts
}
