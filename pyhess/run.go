package pyhess

import (
	"path/filepath"

	"github.com/go-python/gpython/py"
)

// RunFile runs the script at pathname in a new __main__ module.
//
// gpython joins each search path with the script name, which turns an absolute
// name into a relative one, so the script's directory is passed as CurDir instead.
func RunFile(ctx py.Context, pathname string) (*py.Module, error) {
	abs, err := filepath.Abs(pathname)
	if err != nil {
		return nil, py.ExceptionNewf(py.OSError, "%q: %v", pathname, err)
	}
	opts := py.CompileOpts{
		CurDir: filepath.Dir(abs),
	}
	return py.RunFile(ctx, filepath.Base(abs), opts, nil)
}
