package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-python/gpython/py"
	"github.com/go-python/gpython/repl"
	"github.com/go-python/gpython/repl/cli"

	"github.com/fine-structures/hess/pyhess"
	_ "github.com/go-python/gpython/stdlib"
)

// runScript executes the script at pathname, or starts a REPL if pathname is empty.
//
// If stdout is non-nil, both the script's print output and the run banners go there.
func runScript(pathname string, stdout *os.File) error {
	ctx := py.NewContext(py.DefaultContextOpts())

	var out io.Writer = os.Stdout
	if stdout != nil {
		sys := ctx.Store().MustGetModule("sys")
		sys.Globals["stdout"] = &py.File{
			File:     stdout,
			FileMode: py.FileWrite,
		}
		out = stdout
	}

	var (
		err error
	)
	if len(pathname) == 0 {
		replCtx := repl.New(ctx)
		cli.RunREPL(replCtx)
	} else {
		startTime := time.Now()
		fmt.Fprintf(out, "<<<>>>   executing '%s'   <<<>>>\n", pathname)

		_, err = pyhess.RunFile(ctx, pathname)

		if err == nil {
			elapsed := time.Since(startTime)
			fmt.Fprintf(out, "<<<>>>   execution complete: %v   <<<>>>\n", elapsed)
		}
	}

	ctx.Close()
	<-ctx.Done()

	if err != nil {
		py.TracebackDump(err)
	}
	return err
}
