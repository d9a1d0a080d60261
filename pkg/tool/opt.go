package tool

import (
	// Packages
	opt "github.com/mutablelogic/go-meteo/pkg/opt"
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// WithToolkit sets a toolkit for generation options.
// The toolkit is stored under opt.ToolkitKey and retrieved with ToolsFromOpts
func WithToolkit(toolkit *Toolkit) opt.Opt {
	return opt.SetAny(opt.ToolkitKey, toolkit)
}

// WithTool adds a single tool to the generation options, in addition to any
// toolkit
func WithTool(t Tool) opt.Opt {
	return opt.AddAny(opt.ToolKey, t)
}

// ToolsFromOpts returns the toolkit tools followed by any additional tools
func ToolsFromOpts(options *opt.Options) []Tool {
	var result []Tool
	if tk, ok := options.Get(opt.ToolkitKey).(*Toolkit); ok && tk != nil {
		result = append(result, tk.Tools()...)
	}
	for _, v := range options.GetAll(opt.ToolKey) {
		if t, ok := v.(Tool); ok {
			result = append(result, t)
		}
	}
	return result
}
