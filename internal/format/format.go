package format

import (
	"context"
	"strconv"

	"beanfmt/internal/align"
	"beanfmt/internal/diag"
	"beanfmt/internal/lexer"
	"beanfmt/internal/observ"
	"beanfmt/internal/parser"
	"beanfmt/internal/source"
	"beanfmt/internal/trace"
)

// Stage names used for trace spans and timings.
const (
	StageLex    = "lex"
	StageParse  = "parse"
	StageAlign  = "align"
	StageRender = "render"
)

// Pipeline carries the optional collaborators of FormatFile.
type Pipeline struct {
	Options Options
	Timer   *observ.Timer // may be nil
	MaxDiag int           // bag capacity, default 16
}

// FormatFile runs lexer → parser → align → render over one file. On failure
// the returned output is nil and bag holds the diagnostics; the first error
// is terminal.
func FormatFile(ctx context.Context, file *source.File, pl Pipeline) (out []byte, bag *diag.Bag) {
	opt := pl.Options.withDefaults()
	maxDiag := pl.MaxDiag
	if maxDiag <= 0 {
		maxDiag = 16
	}
	bag = diag.NewBag(maxDiag)
	rep := diag.BagReporter{Bag: bag}

	end := stage(ctx, pl.Timer, StageLex)
	tokens := lexer.Tokenize(file, rep)
	end(strconv.Itoa(len(tokens)) + " tokens")
	if bag.HasErrors() {
		return nil, bag
	}

	end = stage(ctx, pl.Timer, StageParse)
	res := parser.ParseFile(tokens, parser.Options{Reporter: rep})
	if !res.OK {
		end("failed")
		return nil, bag
	}
	end(strconv.Itoa(len(res.Doc.Blocks)) + " blocks")

	end = stage(ctx, pl.Timer, StageAlign)
	table := align.Compute(res.Doc, opt.alignOptions())
	end(strconv.Itoa(table.Len()) + " amount lines")

	end = stage(ctx, pl.Timer, StageRender)
	out = Render(res.Doc, table, opt)
	end("")
	return out, bag
}

func stage(ctx context.Context, timer *observ.Timer, name string) func(detail string) {
	_, span := trace.Start(ctx, trace.ScopeStage, name)
	done := timer.Track(name)
	return func(detail string) {
		done()
		span.End(detail)
	}
}

// Format formats src with opt. Errors are *diag.LexError or *diag.ParseError
// carrying a 1-based line and column.
func Format(src []byte, opt Options) ([]byte, error) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("<input>", src))
	out, bag := FormatFile(context.Background(), file, Pipeline{Options: opt})
	if err := diag.FirstError(bag, fs); err != nil {
		return nil, err
	}
	return out, nil
}
