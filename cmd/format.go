package cmd

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/gaurav-prasanna/coursepipe/core"
	"github.com/gaurav-prasanna/coursepipe/core/render"
)

// formatFlags are the mutually exclusive output format flags.
type formatFlags struct {
	JSON     bool
	Markdown bool
	PDF      bool
}

func (f *formatFlags) register(fs *pflag.FlagSet) {
	fs.BoolVar(&f.JSON, "json", false, "Output structured JSON")
	fs.BoolVar(&f.Markdown, "markdown", false, "Output Markdown")
	fs.BoolVar(&f.PDF, "pdf", false, "Output PDF")
}

// validate checks that exactly one output format is chosen.
func (f formatFlags) validate() error {
	formatCount := 0
	for _, set := range []bool{f.JSON, f.Markdown, f.PDF} {
		if set {
			formatCount++
		}
	}

	if formatCount == 0 {
		return fmt.Errorf("exactly one output format is required: --json, --markdown, or --pdf")
	}
	if formatCount > 1 {
		return fmt.Errorf("only one output format allowed per run (got %d)", formatCount)
	}
	return nil
}

// renderer creates the Renderer selected by the flags.
func (f formatFlags) renderer() (core.Renderer, error) {
	switch {
	case f.JSON:
		return render.NewJSONRenderer(), nil
	case f.Markdown:
		return render.NewMarkdownRenderer(), nil
	case f.PDF:
		return render.NewPDFRenderer(), nil
	default:
		return nil, fmt.Errorf("no output format selected")
	}
}
