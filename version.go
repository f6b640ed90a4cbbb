package typstformula

// Version is the release of the typst-formula module and CLI.
const Version = "0.3.0"
