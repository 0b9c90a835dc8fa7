package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joeshaw/envdecode"

	"github.com/jptrs93/structproto/internal/generate"
	protogen "github.com/jptrs93/structproto/internal/generate/proto"
	"github.com/jptrs93/structproto/internal/ir"
	"github.com/jptrs93/structproto/internal/source"
)

// config holds defaults that flags may override.
type config struct {
	Out string `env:"STRUCTPROTO_OUT,default=."`
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	if err := run(os.Args[1:], os.Stdout, os.Stderr, logger); err != nil {
		logger.Error("structproto failed", "error", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer, logger *slog.Logger) error {
	var cfg config
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return fmt.Errorf("read environment: %w", err)
	}

	fs := flag.NewFlagSet("structproto", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: structproto [-out DIR] [-stdout] descriptors.yaml...")
		fs.PrintDefaults()
	}
	out := fs.String("out", cfg.Out, "output directory for .proto files (env STRUCTPROTO_OUT)")
	toStdout := fs.Bool("stdout", false, "print schemas instead of writing files")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() == 0 {
		return fmt.Errorf("no descriptor files provided")
	}

	var types []ir.TypeDescriptor
	for _, path := range fs.Args() {
		loaded, err := source.LoadFile(path)
		if err != nil {
			return err
		}
		types = append(types, loaded...)
	}
	if len(types) == 0 {
		return fmt.Errorf("no types found in %v", fs.Args())
	}
	warnDuplicates(types, logger)

	var gen generate.Generator = protogen.Generator{}
	outputs, err := gen.Generate(types, generate.Options{Out: cleanPath(*out)})
	if err != nil {
		return err
	}

	if *toStdout {
		for _, file := range outputs {
			if _, err := stdout.Write(file.Content); err != nil {
				return err
			}
		}
		return nil
	}

	written, err := generate.WriteFiles(outputs)
	if err != nil {
		return err
	}
	for _, path := range written {
		logger.Info("wrote schema", "path", path)
	}
	logger.Info("generation complete", "types", len(types), "written", len(written))
	return nil
}

// warnDuplicates logs field names that collide after snake casing. Such
// schemas are still generated.
func warnDuplicates(types []ir.TypeDescriptor, logger *slog.Logger) {
	for _, td := range types {
		fields, err := protogen.Walk(td)
		if err != nil {
			continue
		}
		for _, name := range protogen.DuplicateNames(fields) {
			logger.Warn("duplicate field name", "type", td.Name, "field", name)
		}
	}
}

func cleanPath(path string) string {
	if path == "" {
		return "."
	}
	return filepath.Clean(path)
}
