package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/signadot/objson/encode"
	"github.com/signadot/objson/ir"
	"github.com/signadot/objson/meta"
	"github.com/signadot/objson/serializer"

	"github.com/scott-cotton/cli"
)

func check(cfg *CheckConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Check.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.Type == "" {
		return fmt.Errorf("%w: check requires -t <type>", cli.ErrUsage)
	}
	s := cfg.newSerializer()
	t, ok := s.Registry().TypeByName(cfg.Type)
	if !ok {
		return fmt.Errorf("%w: unknown type %q (see objson types)", cli.ErrUsage, cfg.Type)
	}
	files := inputs(args)
	failed := 0
	for _, file := range files {
		node, err := getObjFile(cc, file)
		if err != nil {
			return fmt.Errorf("error decoding %s: %w", file, err)
		}
		in, out, err := checkDoc(cfg, s, t, node)
		if err != nil {
			failed++
			report(os.Stderr, file, err)
			continue
		}
		if err := writeResult(cfg, cc.Out, file, in, out); err != nil {
			return err
		}
	}
	if failed != 0 {
		return fmt.Errorf("%d of %d inputs are not valid %s", failed, len(files), t.Name())
	}
	return nil
}

func (cfg *CheckConfig) newSerializer() *serializer.Serializer {
	return serializer.New(meta.NewRegistry(),
		serializer.WithConfig(cfg.Serializer),
		serializer.WithLogger(theLog))
}

// checkDoc applies the configured patch to node, deserializes the result as
// t and serializes it again. It returns the patched input and the
// normalized output.
func checkDoc(cfg *CheckConfig, s *serializer.Serializer, t *meta.Type, node *ir.Node) (in, out *ir.Node, err error) {
	in = node
	if cfg.PatchData != nil {
		in, err = serializer.PatchNode(node, cfg.PatchData, cfg.patchFormat())
		if err != nil {
			return nil, nil, err
		}
	}
	v, err := s.Deserialize(in, t, nil)
	if err != nil {
		return nil, nil, err
	}
	out, err = s.SerializeAs(t, v.Interface())
	if err != nil {
		return nil, nil, err
	}
	return in, out, nil
}

func writeResult(cfg *CheckConfig, w io.Writer, file string, in, out *ir.Node) error {
	switch {
	case cfg.Quiet:
		return nil
	case cfg.Diff:
		if ir.Equal(in, out) {
			return nil
		}
		d := lineDiff(encode.MustString(in), encode.MustString(out), cfg.colored(w))
		if d == "" {
			return nil
		}
		_, err := fmt.Fprintf(w, "--- %s\n%s", file, d)
		return err
	}
	if err := encode.Encode(out, w, cfg.encOpts(w)...); err != nil {
		return err
	}
	if cfg.WireOut {
		_, err := w.Write([]byte("\n"))
		return err
	}
	return nil
}

// report writes err for file to w followed by the location and property
// trace of serializer errors.
func report(w io.Writer, file string, err error) {
	fmt.Fprintf(w, "%s: %v\n", file, err)
	var se *serializer.Error
	if !errors.As(err, &se) {
		return
	}
	if se.Location != "" {
		fmt.Fprintf(w, "  at %s\n", se.Location)
	}
	for _, f := range se.Trace() {
		fmt.Fprintf(w, "  in %s\n", f)
	}
}
