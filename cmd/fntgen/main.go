// Command fntgen generates a bitmap font from a JSON configuration.
//
// Usage:
//
//	fntgen [flags] [config.json]
//
// Without a configuration file the built-in template is used. The page
// images and the .fnt descriptor are written to the configured output_file.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/gogpu/bmfont"
	"github.com/gogpu/bmfont/config"
	"github.com/gogpu/bmfont/descriptor"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	if err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, "fntgen:", err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("fntgen", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		output   = fs.String("o", "", "output .fnt file (overrides output_file)")
		template = fs.Bool("template", false, "print the default configuration and exit")
		inspect  = fs.String("inspect", "", "summarise an existing .fnt file and exit")
		workers  = fs.Int("workers", -1, "pages drawn at once (0 = one per CPU)")
		verbose  = fs.Bool("v", false, "log debug details")
	)
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: fntgen [flags] [config.json]")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 1 {
		fs.Usage()
		return errors.New("too many arguments")
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	bmfont.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))

	switch {
	case *template:
		_, err := stdout.Write(config.Template())
		return err
	case *inspect != "":
		return inspectFont(stdout, *inspect)
	}

	cfg, err := loadConfig(fs.Arg(0))
	if err != nil {
		return err
	}
	if *output != "" {
		cfg.OutputFile = *output
	}

	var opts []bmfont.Option
	if *workers >= 0 {
		opts = append(opts, bmfont.WithWorkers(*workers))
	}
	gen, err := bmfont.NewGenerator(cfg, opts...)
	if err != nil {
		return err
	}
	res, err := gen.Run(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "wrote %s (%d pages, %d chars)\n",
		res.DescriptorPath, len(res.Font.Pages), res.Font.CharCount())
	if n := len(res.Dropped); n > 0 {
		fmt.Fprintf(stdout, "dropped %d characters: %q\n", n, string(res.Dropped))
	}
	return nil
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.LoadTemplate()
	}
	return config.Load(path)
}

func inspectFont(w io.Writer, path string) error {
	f, err := os.Open(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	defer f.Close()

	font, err := descriptor.Parse(f)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	fmt.Fprintf(w, "face %q size %d lineHeight %d base %d\n", font.Face, font.Size, font.LineHeight, font.Base)
	fmt.Fprintf(w, "texture %dx%d, %d pages, %d chars\n", font.ScaleW, font.ScaleH, len(font.Pages), font.CharCount())
	for _, p := range font.Pages {
		fmt.Fprintf(w, "  page %d %s: %d chars\n", p.ID, p.File, len(p.Chars))
	}
	return nil
}
