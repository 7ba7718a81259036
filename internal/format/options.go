package format

import "beanfmt/internal/align"

type Options struct {
	IndentWidth int // spaces per nesting level
	Padding     int // minimum gap between label and amount
}

// DefaultOptions returns two-space indentation and two-space padding.
func DefaultOptions() Options {
	d := align.DefaultOptions()
	return Options{IndentWidth: d.IndentWidth, Padding: d.Padding}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.IndentWidth <= 0 {
		o.IndentWidth = d.IndentWidth
	}
	if o.Padding <= 0 {
		o.Padding = d.Padding
	}
	return o
}

func (o Options) alignOptions() align.Options {
	return align.Options{IndentWidth: o.IndentWidth, Padding: o.Padding}
}
