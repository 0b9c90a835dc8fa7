package generate

import "github.com/jptrs93/structproto/internal/ir"

type OutputFile struct {
	Path    string
	Content []byte
}

type Options struct {
	// Out is the directory generated files are placed in.
	Out string
}

type Generator interface {
	Name() string
	Generate(types []ir.TypeDescriptor, options Options) ([]OutputFile, error)
}
