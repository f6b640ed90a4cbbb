package inkscape

import (
	"io"
	"strconv"

	"github.com/beevik/etree"
)

// ExtensionNamespace is the namespace of .inx descriptor files.
const ExtensionNamespace = "http://www.inkscape.org/namespace/inkscape/extension"

// DescriptorOptions describes the extension entry shown in Inkscape.
type DescriptorOptions struct {
	Name        string   // menu entry, default "Typst Formula"
	ID          string   // unique extension id
	Command     string   // executable, resolved next to the .inx file
	Submenu     string   // Extensions submenu, default "Render"
	DefaultCode string   // initial value of typst_code
	DefaultSize int      // initial value of font_size
	Pages       []string // choices of page, the first being the default
}

func (o *DescriptorOptions) applyDefaults() {
	if o.Name == "" {
		o.Name = "Typst Formula"
	}
	if o.ID == "" {
		o.ID = "org.inkscape.render.typst_formula"
	}
	if o.Command == "" {
		o.Command = "typst-formula"
	}
	if o.Submenu == "" {
		o.Submenu = "Render"
	}
	if o.DefaultSize == 0 {
		o.DefaultSize = 10
	}
}

// Descriptor builds the .inx document that registers the extension with
// Inkscape and declares its three parameters: typst_code, font_size and page.
func Descriptor(opts DescriptorOptions) *etree.Document {
	opts.applyDefaults()

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	ext := doc.CreateElement("inkscape-extension")
	ext.CreateAttr("xmlns", ExtensionNamespace)
	ext.CreateElement("name").SetText(opts.Name)
	ext.CreateElement("id").SetText(opts.ID)

	code := param(ext, "typst_code", "string", "Typst code:")
	code.CreateAttr("appearance", "multiline")
	code.SetText(opts.DefaultCode)

	size := param(ext, "font_size", "int", "Font size (pt):")
	size.CreateAttr("min", "1")
	size.CreateAttr("max", "1000")
	size.SetText(strconv.Itoa(opts.DefaultSize))

	page := param(ext, "page", "optiongroup", "Page:")
	page.CreateAttr("appearance", "combo")
	for _, name := range opts.Pages {
		option := page.CreateElement("option")
		option.CreateAttr("value", name)
		option.SetText(name)
	}

	effect := ext.CreateElement("effect")
	effect.CreateAttr("needs-live-preview", "true")
	effect.CreateElement("object-type").SetText("all")
	menu := effect.CreateElement("effects-menu")
	menu.CreateElement("submenu").CreateAttr("name", opts.Submenu)

	command := ext.CreateElement("script").CreateElement("command")
	command.CreateAttr("location", "inx")
	command.SetText(opts.Command)

	doc.Indent(2)
	return doc
}

func param(parent *etree.Element, name, typ, label string) *etree.Element {
	p := parent.CreateElement("param")
	p.CreateAttr("name", name)
	p.CreateAttr("type", typ)
	p.CreateAttr("gui-text", label)
	return p
}

// WriteDescriptor writes the .inx document for opts to w.
func WriteDescriptor(w io.Writer, opts DescriptorOptions) error {
	_, err := Descriptor(opts).WriteTo(w)
	return err
}
