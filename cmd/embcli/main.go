// Command embcli is a thin demonstration wrapper around the stitchkit
// codec registry: flag-parsed subcommands dispatching into library
// calls, no business logic of its own. It exists to exercise the
// registry end-to-end.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"v.io/x/lib/cmdline"

	"github.com/fibercraft/stitchkit/embfmt"
	_ "github.com/fibercraft/stitchkit/encoding/dst"
	_ "github.com/fibercraft/stitchkit/encoding/hus"
	_ "github.com/fibercraft/stitchkit/encoding/json"
	_ "github.com/fibercraft/stitchkit/encoding/registryformats"
)

// runnerFunc adapts a plain function to cmdline.Runner, mirroring the
// teacher's cmdutil.RunnerFunc without pulling in its package.
type runnerFunc func(env *cmdline.Env, args []string) error

func (f runnerFunc) Run(env *cmdline.Env, args []string) error { return f(env, args) }

func formatForPath(path, override string) (string, error) {
	if override != "" {
		return override, nil
	}
	if name, ok := embfmt.DetectByExtension(embfmt.Default, path); ok {
		return name, nil
	}
	return "", embfmt.UnsupportedFormatError("cannot determine format for %q; pass --format", path)
}

func readPattern(path, formatOverride string) (*os.File, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", embfmt.IOError(err)
	}
	name, err := formatForPath(path, formatOverride)
	if err != nil {
		f.Close()
		return nil, "", err
	}
	return f, name, nil
}

func newCmdConvert() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     "convert",
		Short:    "Convert an embroidery file between formats",
		ArgsName: "in out",
	}
	fromFlag := cmd.Flags.String("from", "", "Source format name (guessed from extension if empty)")
	toFlag := cmd.Flags.String("to", "", "Destination format name (guessed from extension if empty)")
	cmd.Runner = runnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 2 {
			return fmt.Errorf("convert takes in and out paths, got %v", argv)
		}
		in, inFormat, err := readPattern(argv[0], *fromFlag)
		if err != nil {
			return err
		}
		defer in.Close()

		p, err := embfmt.Default.ReadPattern(in, inFormat)
		if err != nil {
			return err
		}

		outFormat, err := formatForPath(argv[1], *toFlag)
		if err != nil {
			return err
		}
		out, err := os.Create(argv[1])
		if err != nil {
			return embfmt.IOError(err)
		}
		defer out.Close()

		return embfmt.Default.WritePattern(p, out, outFormat)
	})
	return cmd
}

func newCmdInfo() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     "info",
		Short:    "Print stitch/thread counts and bounds for a pattern file",
		ArgsName: "path",
	}
	formatFlag := cmd.Flags.String("format", "", "Format name (guessed from extension/content if empty)")
	cmd.Runner = runnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 1 {
			return fmt.Errorf("info takes one path, got %v", argv)
		}
		f, name, err := detectAndOpen(argv[0], *formatFlag)
		if err != nil {
			return err
		}
		defer f.Close()

		p, err := embfmt.Default.ReadPattern(f, name)
		if err != nil {
			return err
		}
		minX, minY, maxX, maxY := p.Bounds()
		fmt.Fprintf(env.Stdout, "format:        %s\n", name)
		fmt.Fprintf(env.Stdout, "stitches:      %d\n", p.CountStitches())
		fmt.Fprintf(env.Stdout, "color changes: %d\n", p.CountColorChanges())
		fmt.Fprintf(env.Stdout, "threads:       %d\n", len(p.Threads))
		fmt.Fprintf(env.Stdout, "bounds:        (%.0f, %.0f) - (%.0f, %.0f)\n", minX, minY, maxX, maxY)
		return nil
	})
	return cmd
}

func newCmdValidate() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     "validate",
		Short:    "Check that a file parses as a valid embroidery pattern",
		ArgsName: "path",
	}
	formatFlag := cmd.Flags.String("format", "", "Format name (guessed from extension/content if empty)")
	cmd.Runner = runnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 1 {
			return fmt.Errorf("validate takes one path, got %v", argv)
		}
		f, name, err := detectAndOpen(argv[0], *formatFlag)
		if err != nil {
			return err
		}
		defer f.Close()

		if _, err := embfmt.Default.ReadPattern(f, name); err != nil {
			return err
		}
		fmt.Fprintf(env.Stdout, "%s: valid %s\n", argv[0], name)
		return nil
	})
	return cmd
}

// batchResult is one worker's outcome, collected so the runner can print
// them in directory order rather than whichever order goroutines finish.
type batchResult struct {
	inPath, outPath string
	err             error
}

// convertOne reads inPath under srcFormat and writes it to outDir under
// targetFmt, context-aware per the registry's cancellation hooks. Each
// batch worker owns its own pattern value end to end, never sharing it
// with the others running alongside it.
func convertOne(ctx context.Context, inPath, srcFormat, outDir string, targetFmt embfmt.Format) (string, error) {
	in, err := os.Open(inPath)
	if err != nil {
		return "", embfmt.IOError(err)
	}
	defer in.Close()

	p, err := embfmt.Default.ReadPatternContext(ctx, in, srcFormat)
	if err != nil {
		return "", err
	}

	base := filepath.Base(inPath)
	outName := strings.TrimSuffix(base, filepath.Ext(base)) + "." + targetFmt.Name
	outPath := filepath.Join(outDir, outName)
	out, err := os.Create(outPath)
	if err != nil {
		return "", embfmt.IOError(err)
	}
	defer out.Close()

	if err := embfmt.Default.WritePatternContext(ctx, p, out, targetFmt.Name); err != nil {
		return "", err
	}
	return outPath, nil
}

func newCmdBatch() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     "batch",
		Short:    "Convert every file in a directory to a target format",
		ArgsName: "in_dir out_dir format",
	}
	cmd.Runner = runnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 3 {
			return fmt.Errorf("batch takes in_dir, out_dir, and format, got %v", argv)
		}
		inDir, outDir, toFormat := argv[0], argv[1], argv[2]
		targetFmt, ok := embfmt.Default.Lookup(toFormat)
		if !ok {
			return embfmt.UnsupportedFormatError("unknown format %q", toFormat)
		}
		entries, err := os.ReadDir(inDir)
		if err != nil {
			return embfmt.IOError(err)
		}
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return embfmt.IOError(err)
		}

		ctx := context.Background()
		results := make([]batchResult, len(entries))
		var wg sync.WaitGroup
		for i, e := range entries {
			if e.IsDir() {
				continue
			}
			inPath := filepath.Join(inDir, e.Name())
			srcFormat, ok := embfmt.DetectByExtension(embfmt.Default, inPath)
			if !ok {
				results[i] = batchResult{inPath: inPath, err: fmt.Errorf("unrecognised extension")}
				continue
			}
			wg.Add(1)
			go func(i int, inPath, srcFormat string) {
				defer wg.Done()
				outPath, err := convertOne(ctx, inPath, srcFormat, outDir, targetFmt)
				results[i] = batchResult{inPath: inPath, outPath: outPath, err: err}
			}(i, inPath, srcFormat)
		}
		wg.Wait()

		for i, e := range entries {
			if e.IsDir() {
				continue
			}
			r := results[i]
			if r.err != nil {
				fmt.Fprintf(env.Stderr, "skip %s: %v\n", r.inPath, r.err)
				continue
			}
			fmt.Fprintf(env.Stdout, "%s -> %s\n", r.inPath, r.outPath)
		}
		return nil
	})
	return cmd
}

func newCmdListFormats() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:  "list-formats",
		Short: "List every registered format and its capabilities",
	}
	cmd.Runner = runnerFunc(func(env *cmdline.Env, argv []string) error {
		for _, name := range embfmt.Default.Names() {
			f, _ := embfmt.Default.Lookup(name)
			fmt.Fprintf(env.Stdout, "%-12s read=%-5v write=%-5v %s\n", f.Name, f.CanRead(), f.CanWrite(), f.Description)
		}
		return nil
	})
	return cmd
}

func detectAndOpen(path, formatOverride string) (*os.File, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", embfmt.IOError(err)
	}
	if formatOverride != "" {
		return f, formatOverride, nil
	}
	if name, ok := embfmt.DetectByExtension(embfmt.Default, path); ok {
		return f, name, nil
	}
	name, err := embfmt.Detect(f)
	if err != nil {
		f.Close()
		return nil, "", err
	}
	if name == "" {
		f.Close()
		return nil, "", embfmt.UnsupportedFormatError("could not detect format for %q", path)
	}
	return f, name, nil
}

const version = "0.1.0"

func newCmdVersion() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:  "version",
		Short: "Print the embcli version",
	}
	cmd.Runner = runnerFunc(func(env *cmdline.Env, argv []string) error {
		fmt.Fprintln(env.Stdout, version)
		return nil
	})
	return cmd
}

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds | log.Lshortfile)
	cmdline.HideGlobalFlagsExcept()
	cmdline.Main(&cmdline.Command{
		Name:     "embcli",
		Short:    "Convert and inspect embroidery pattern files",
		LookPath: false,
		Children: []*cmdline.Command{
			newCmdConvert(),
			newCmdInfo(),
			newCmdValidate(),
			newCmdBatch(),
			newCmdListFormats(),
			newCmdVersion(),
		},
	})
}
