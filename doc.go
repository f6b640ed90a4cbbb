// Package typstformula renders Typst formulas with the external typst
// compiler and turns the result into SVG shapes that can be inserted into an
// Inkscape drawing as native, editable paths.
//
// The CLI lives in cmd/typst-formula and is what Inkscape runs as an
// extension; this root package exposes the same pipeline as a Go API.
//
// # Import
//
// The module path contains a hyphen but Go package names cannot, so the
// package is named typstformula:
//
//	import "github.com/hellenic-development/typst-formula" // package typstformula
//
// # Quick start
//
//	result, err := typstformula.Generate(ctx, typstformula.Options{
//	    Request: typst.Request{Code: "$ e^(i pi) + 1 = 0 $", FontSize: 12, Page: "basic"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, shape := range result.Shapes {
//	    parent.AddChild(shape)
//	}
//
// Or, to modify a drawing the way the Inkscape extension does:
//
//	host, err := inkscape.Open("drawing.svg")
//	...
//	_, err = typstformula.Insert(ctx, host, opts)
//	...
//	host.WriteTo(os.Stdout)
//
// # Pipeline
//
// Every call gets its own temporary directory, removed when the call
// returns. The formula is written to input.typ behind a zero page margin and
// the requested text size, compiled with "typst compile input.typ
// output.svg", parsed, and every glyph reference (use element) is replaced
// with its own copy of the glyph outline. Each top-level shape is then
// centred on the origin and scaled from pt to the host's user units.
//
// # Errors
//
// A compiler that fails returns a *typst.CompileError carrying its standard
// error; a compiler that succeeds without writing the SVG returns a
// *typst.MissingOutputError naming the expected file. Both abort the
// operation and nothing is inserted.
//
// # Logging
//
// Pass a [Logger] implementation in [Options.Logger] to receive progress
// messages. A nil Logger silences all output.
package typstformula
