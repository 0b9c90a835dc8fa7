package protogen

import (
	"fmt"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/jptrs93/structproto/internal/generate"
	"github.com/jptrs93/structproto/internal/ir"
)

type Generator struct{}

func (g Generator) Name() string {
	return "proto"
}

// Generate renders one .proto file per type. Output order matches the order
// of types.
func (g Generator) Generate(types []ir.TypeDescriptor, options generate.Options) ([]generate.OutputFile, error) {
	paths := make(map[string]string, len(types))
	for _, td := range types {
		if td.Name == "" {
			return nil, fmt.Errorf("type name is required")
		}
		path := filepath.Join(options.Out, FileName(td))
		if prev, ok := paths[path]; ok {
			return nil, fmt.Errorf("types %s and %s both generate %s", prev, td.Name, path)
		}
		paths[path] = td.Name
	}

	outputs := make([]generate.OutputFile, len(types))
	errs := make([]error, len(types))
	var eg errgroup.Group
	for i, td := range types {
		i, td := i, td
		eg.Go(func() error {
			content, err := Generate(td)
			if err != nil {
				errs[i] = fmt.Errorf("generate %s: %w", td.Name, err)
				return errs[i]
			}
			outputs[i] = generate.OutputFile{
				Path:    filepath.Join(options.Out, FileName(td)),
				Content: []byte(content),
			}
			return nil
		})
	}
	if eg.Wait() != nil {
		// report the failure of the earliest type, not the first to finish
		for _, err := range errs {
			if err != nil {
				return nil, err
			}
		}
	}
	return outputs, nil
}

// FileName is the name of the file generated for td, e.g. user_profile.proto.
func FileName(td ir.TypeDescriptor) string {
	return ir.ToSnakeCase(td.Name) + ".proto"
}
