package typstformula

import (
	"context"
	"fmt"

	"github.com/beevik/etree"

	"github.com/hellenic-development/typst-formula/pkg/inkscape"
	"github.com/hellenic-development/typst-formula/pkg/placer"
	"github.com/hellenic-development/typst-formula/pkg/svgdoc"
	"github.com/hellenic-development/typst-formula/pkg/typst"
	"github.com/hellenic-development/typst-formula/pkg/workspace"
)

const (
	sourceFile = "input.typ"
	outputFile = "output.svg"
)

// Options configures one formula generation.
type Options struct {
	Request       typst.Request
	Binary        string  // typst executable, default "typst"
	ViewScale     float64 // px per user unit of the host document, default 1
	Label         string  // inkscape:label of the inserted group
	KeepWorkspace bool    // leave the temp directory on disk
	Logger        Logger  // nil = no logging
}

// Logger receives progress messages. A nil Logger means silent operation.
type Logger interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// Result contains the generated shapes.
type Result struct {
	// Shapes are the placed top-level elements of the compiled document,
	// in document order. They are detached from any parent.
	Shapes []*etree.Element
	Scale  float64 // factor applied to every shape
}

func (o *Options) logInfo(f string, a ...any) {
	if o.Logger != nil {
		o.Logger.Infof(f, a...)
	}
}

func (o *Options) logWarn(f string, a ...any) {
	if o.Logger != nil {
		o.Logger.Warnf(f, a...)
	}
}

func (o *Options) logError(f string, a ...any) {
	if o.Logger != nil {
		o.Logger.Errorf(f, a...)
	}
}

// Generate compiles the formula and returns its shapes, centred on the
// origin and scaled to the host's user units. Nothing is returned on error.
func Generate(ctx context.Context, opts Options) (*Result, error) {
	// Apply defaults.
	if opts.ViewScale == 0 {
		opts.ViewScale = 1
	}
	req := typst.NewRequest(opts.Request.Code, opts.Request.FontSize, opts.Request.Page)
	if err := req.Validate(); err != nil {
		return nil, err
	}

	scale, err := placer.ScaleFactor(opts.ViewScale)
	if err != nil {
		return nil, err
	}

	ws, err := workspace.Acquire("typst-formula-*")
	if err != nil {
		return nil, err
	}
	if opts.KeepWorkspace {
		ws.Keep()
		opts.logInfo("Keeping workspace %s", ws.Dir())
	}
	defer func() {
		if err := ws.Close(); err != nil {
			opts.logWarn("%v", err)
		}
	}()

	source := ws.Path(sourceFile)
	output := ws.Path(outputFile)

	opts.logInfo("Writing %s...", source)
	if err := typst.WriteSourceFile(source, req); err != nil {
		return nil, err
	}

	compiler := typst.NewCompiler(opts.Binary)
	opts.logInfo("Running %s compile...", compiler.Binary())
	if err := compiler.Compile(ctx, source, output); err != nil {
		opts.logError("%v", err)
		return nil, err
	}

	opts.logInfo("Loading %s...", output)
	doc, err := svgdoc.LoadFile(output)
	if err != nil {
		return nil, err
	}

	if err := doc.Expand(); err != nil {
		return nil, fmt.Errorf("expand references: %w", err)
	}

	shapes, err := placer.PlaceAll(doc, scale)
	if err != nil {
		return nil, fmt.Errorf("place shapes: %w", err)
	}
	opts.logInfo("Placed %d shape(s) at scale %g", len(shapes), scale)

	for _, shape := range shapes {
		shape.Parent().RemoveChild(shape)
	}

	return &Result{Shapes: shapes, Scale: scale}, nil
}

// Insert generates the formula for the given host drawing and adds the
// shapes to it as one new group in the current layer. The drawing is left
// untouched when generation fails.
func Insert(ctx context.Context, host *inkscape.Document, opts Options) (*etree.Element, error) {
	opts.ViewScale = host.Scale()

	result, err := Generate(ctx, opts)
	if err != nil {
		return nil, err
	}

	group, err := host.InsertGroup(opts.Label, result.Shapes)
	if err != nil {
		return nil, err
	}
	opts.logInfo("Inserted %d shape(s) into the current layer", len(result.Shapes))

	return group, nil
}
