package pyhess

import (
	"strings"

	"github.com/fine-structures/hess/hess"
	"github.com/fine-structures/hess/libhess"
	"github.com/fine-structures/hess/libhess/catalog"
	"github.com/go-python/gpython/py"
)

var (
	LIB_VERSION = "v1.2024.1"
)

var (
	pyTableType     = py.NewType("Table", "a graded character table of one path")
	pyCatalogType   = py.NewType("Catalog", "a store of computed tables")
	pyWorkspaceType = py.NewType("Workspace", "owns the memo caches shared by computations")
)

const (
	kWorkspaceAttr = "_Workspace"
)

// Workspace holds the session engine context.
type Workspace struct {
	Ctx *libhess.Context
}

func (ws *Workspace) Type() *py.Type {
	return pyWorkspaceType
}

func (ws *Workspace) Close() {
	if ws.Ctx != nil {
		ws.Ctx.Close()
		ws.Ctx = nil
	}
}

func getWorkspace(module py.Object) (*Workspace, error) {
	wsObj, _ := py.GetAttrString(module, kWorkspaceAttr)
	if wsObj != nil {
		return wsObj.(*Workspace), nil
	}
	ctx, err := libhess.NewContext(libhess.DefaultContextOpts)
	if err != nil {
		return nil, py.ExceptionNewf(py.RuntimeError, "%v", err)
	}
	ws := &Workspace{
		Ctx: ctx,
	}
	if _, err = py.SetAttrString(module, kWorkspaceAttr, ws); err != nil {
		ws.Close()
		return nil, err
	}
	return ws, nil
}

func toTuple(entries []int) py.Tuple {
	tuple := make(py.Tuple, len(entries))
	for i, v := range entries {
		tuple[i] = py.Int(v)
	}
	return tuple
}

func loadInts(obj py.Object) ([]int, error) {
	var items []py.Object
	switch v := obj.(type) {
	case py.Tuple:
		items = v
	case *py.List:
		items = v.Items
	default:
		return nil, py.ExceptionNewf(py.TypeError, "expected tuple or list (got %v)", obj.Type().Name)
	}
	out := make([]int, len(items))
	for i, item := range items {
		val, err := py.GetInt(item)
		if err != nil {
			return nil, err
		}
		out[i] = int(val)
	}
	return out, nil
}

// loadPath accepts a tuple or list of ints, or any string hess.ParsePath takes.
func loadPath(obj py.Object) (hess.Path, error) {
	var path hess.Path
	var err error
	if str, isStr := obj.(py.String); isStr {
		path, err = hess.ParsePath(string(str))
	} else {
		var entries []int
		entries, err = loadInts(obj)
		if err == nil {
			path = entries
			err = path.Validate()
		}
	}
	if err != nil {
		if _, isPyErr := err.(*py.Exception); isPyErr {
			return nil, err
		}
		return nil, py.ExceptionNewf(py.ValueError, "%v", err)
	}
	return path, nil
}

func loadKind(obj py.Object) (hess.TableKind, error) {
	if str, isStr := obj.(py.String); isStr {
		kind, err := hess.ParseTableKind(string(str))
		if err != nil {
			return 0, py.ExceptionNewf(py.ValueError, "unknown table kind %q", string(str))
		}
		return kind, nil
	}
	val, err := py.GetInt(obj)
	if err != nil {
		return 0, err
	}
	kind := hess.TableKind(val)
	if !kind.IsValid() {
		return 0, py.ExceptionNewf(py.ValueError, "unknown table kind %d", val)
	}
	return kind, nil
}

func loadSize(obj py.Object) (int, error) {
	n, err := py.GetInt(obj)
	if err != nil {
		return 0, err
	}
	if n < 1 || n > hess.MaxSize {
		return 0, py.ExceptionNewf(py.ValueError, "size %d must be in [1, %d]", n, hess.MaxSize)
	}
	return int(n), nil
}

type pyTable struct {
	*hess.Table
}

func (T pyTable) Type() *py.Type {
	return pyTableType
}

func (T pyTable) M__str__() (py.Object, error) {
	var b strings.Builder
	T.WriteTo(&b)
	return py.String(b.String()), nil
}

func (T pyTable) M__repr__() (py.Object, error) {
	return py.String(T.Kind.String() + "[" + T.Path.String() + "]"), nil
}

func py_Table_Rows(self py.Object, args py.Tuple) (py.Object, error) {
	T := self.(pyTable)
	rows := T.Rows()
	items := make([]py.Object, len(rows))
	for i, row := range rows {
		coeffs := make([]py.Object, len(row.Coeffs))
		for j, c := range row.Coeffs {
			coeffs[j] = py.Int(c)
		}
		items[i] = py.Tuple{toTuple(row.Partition), py.NewListFromItems(coeffs)}
	}
	return py.NewListFromItems(items), nil
}

func py_Table_Path(self py.Object, args py.Tuple) (py.Object, error) {
	return toTuple(self.(pyTable).Path), nil
}

func py_Table_Kind(self py.Object, args py.Tuple) (py.Object, error) {
	return py.String(self.(pyTable).Kind.String()), nil
}

func py_Table_Coeff(self py.Object, args py.Tuple) (py.Object, error) {
	T := self.(pyTable)
	var partObj, degObj py.Object
	if err := py.ParseTuple(args, "OO", &partObj, &degObj); err != nil {
		return nil, err
	}
	part, err := loadInts(partObj)
	if err != nil {
		return nil, err
	}
	degree, err := py.GetInt(degObj)
	if err != nil {
		return nil, err
	}
	return py.Int(T.Coeff(part, int(degree))), nil
}

func py_Table_RegularSum(self py.Object, args py.Tuple) (py.Object, error) {
	sum, ok := self.(pyTable).RegularSum()
	return py.Tuple{py.Int(sum), py.NewBool(ok)}, nil
}

// Arg 1 (int): n
func py_Paths(module py.Object, args py.Tuple) (py.Object, error) {
	var nObj py.Object
	if err := py.ParseTuple(args, "i", &nObj); err != nil {
		return nil, err
	}
	n, err := loadSize(nObj)
	if err != nil {
		return nil, err
	}
	paths := hess.EnumPaths(n)
	items := make([]py.Object, len(paths))
	for i, path := range paths {
		items[i] = toTuple(path)
	}
	return py.NewListFromItems(items), nil
}

// Arg 1 (str|int): table kind
// Arg 2 (tuple|list|str): path
func py_Table(module py.Object, args py.Tuple) (py.Object, error) {
	var kindObj, pathObj py.Object
	if err := py.ParseTuple(args, "OO", &kindObj, &pathObj); err != nil {
		return nil, err
	}
	kind, err := loadKind(kindObj)
	if err != nil {
		return nil, err
	}
	path, err := loadPath(pathObj)
	if err != nil {
		return nil, err
	}
	ws, err := getWorkspace(module)
	if err != nil {
		return nil, err
	}
	T, err := ws.Ctx.ComputeTable(kind, path)
	if err != nil {
		return nil, py.ExceptionNewf(py.RuntimeError, "%v", err)
	}
	return pyTable{T}, nil
}

// Arg 1 (tuple|list|str): path
func py_CheckRegular(module py.Object, args py.Tuple) (py.Object, error) {
	var pathObj py.Object
	if err := py.ParseTuple(args, "O", &pathObj); err != nil {
		return nil, err
	}
	path, err := loadPath(pathObj)
	if err != nil {
		return nil, err
	}
	ws, err := getWorkspace(module)
	if err != nil {
		return nil, err
	}
	sum, ok, err := ws.Ctx.CheckRegular(path)
	if err != nil {
		return nil, py.ExceptionNewf(py.RuntimeError, "%v", err)
	}
	return py.Tuple{py.Int(sum), py.NewBool(ok)}, nil
}

// Arg 1 (int): n
func py_Translators(module py.Object, args py.Tuple) (py.Object, error) {
	var nObj py.Object
	if err := py.ParseTuple(args, "i", &nObj); err != nil {
		return nil, err
	}
	n, err := loadSize(nObj)
	if err != nil {
		return nil, err
	}
	translators := libhess.Translators(n)
	items := make([]py.Object, len(translators))
	for i, t := range translators {
		items[i] = py.Tuple{toTuple(t.Perm), toTuple(t.CycleType)}
	}
	return py.NewListFromItems(items), nil
}

type pyCatalog struct {
	hess.Catalog
	module py.Object
}

func (cat *pyCatalog) Type() *py.Type {
	return pyCatalogType
}

func (cat *pyCatalog) checkOpen() error {
	if cat.Catalog == nil {
		return py.ExceptionNewf(py.ValueError, "catalog is closed")
	}
	return nil
}

// Arg 1 (str): pathname ("" for an in-memory catalog)
// Arg 2 (bool, optional): read-only
func py_OpenCatalog(module py.Object, args py.Tuple) (py.Object, error) {
	var pathObj, readOnlyObj py.Object = nil, py.False
	if err := py.ParseTuple(args, "U|O", &pathObj, &readOnlyObj); err != nil {
		return nil, err
	}
	readOnly, err := py.MakeBool(readOnlyObj)
	if err != nil {
		return nil, err
	}
	opts := hess.CatalogOpts{
		DbPathName: string(pathObj.(py.String)),
		ReadOnly:   readOnly == py.True,
	}
	cat, err := catalog.OpenCatalog(opts)
	if err != nil {
		return nil, py.ExceptionNewf(py.RuntimeError, "%v", err)
	}
	return &pyCatalog{
		Catalog: cat,
		module:  module,
	}, nil
}

func py_Catalog_Get(self py.Object, args py.Tuple) (py.Object, error) {
	cat := self.(*pyCatalog)
	if err := cat.checkOpen(); err != nil {
		return nil, err
	}
	var kindObj, pathObj py.Object
	if err := py.ParseTuple(args, "OO", &kindObj, &pathObj); err != nil {
		return nil, err
	}
	kind, err := loadKind(kindObj)
	if err != nil {
		return nil, err
	}
	path, err := loadPath(pathObj)
	if err != nil {
		return nil, err
	}
	T, err := cat.GetTable(kind, path)
	if err != nil {
		return nil, py.ExceptionNewf(py.KeyError, "%v", err)
	}
	return pyTable{T}, nil
}

func py_Catalog_Put(self py.Object, args py.Tuple) (py.Object, error) {
	cat := self.(*pyCatalog)
	if err := cat.checkOpen(); err != nil {
		return nil, err
	}
	if cat.IsReadOnly() {
		return nil, py.ExceptionNewf(py.PermissionError, "catalog is in read-only mode")
	}
	var kindObj, pathObj py.Object
	if err := py.ParseTuple(args, "OO", &kindObj, &pathObj); err != nil {
		return nil, err
	}
	kind, err := loadKind(kindObj)
	if err != nil {
		return nil, err
	}
	path, err := loadPath(pathObj)
	if err != nil {
		return nil, err
	}
	ws, err := getWorkspace(cat.module)
	if err != nil {
		return nil, err
	}
	T, err := ws.Ctx.ComputeTable(kind, path)
	if err == nil {
		err = cat.PutTable(T)
	}
	if err != nil {
		return nil, py.ExceptionNewf(py.RuntimeError, "%v", err)
	}
	return pyTable{T}, nil
}

func py_Catalog_Count(self py.Object, args py.Tuple) (py.Object, error) {
	cat := self.(*pyCatalog)
	if err := cat.checkOpen(); err != nil {
		return nil, err
	}
	var kindObj, nObj py.Object
	if err := py.ParseTuple(args, "Oi", &kindObj, &nObj); err != nil {
		return nil, err
	}
	kind, err := loadKind(kindObj)
	if err != nil {
		return nil, err
	}
	n, err := loadSize(nObj)
	if err != nil {
		return nil, err
	}
	return py.Int(cat.NumTables(kind, n)), nil
}

func py_Catalog_Close(self py.Object, args py.Tuple) (py.Object, error) {
	cat := self.(*pyCatalog)
	if cat.Catalog != nil {
		err := cat.Catalog.Close()
		cat.Catalog = nil
		if err != nil {
			return nil, py.ExceptionNewf(py.RuntimeError, "%v", err)
		}
	}
	return py.None, nil
}

func init() {

	/////////////////////////////////
	// Table
	{
		pyTableType.Dict["Rows"] = py.MustNewMethod("Rows", py_Table_Rows, 0, "returns the nonzero rows as (partition, coeffs) pairs")
		pyTableType.Dict["Path"] = py.MustNewMethod("Path", py_Table_Path, 0, "")
		pyTableType.Dict["Kind"] = py.MustNewMethod("Kind", py_Table_Kind, 0, "")
		pyTableType.Dict["Coeff"] = py.MustNewMethod("Coeff", py_Table_Coeff, 0, "returns the coefficient at (partition, degree)")
		pyTableType.Dict["RegularSum"] = py.MustNewMethod("RegularSum", py_Table_RegularSum, 0, "returns (identity row sum, is regular)")
	}

	/////////////////////////////////
	// Catalog
	{
		pyCatalogType.Dict["Get"] = py.MustNewMethod("Get", py_Catalog_Get, 0, "loads a stored table")
		pyCatalogType.Dict["Put"] = py.MustNewMethod("Put", py_Catalog_Put, 0, "computes and stores a table")
		pyCatalogType.Dict["Count"] = py.MustNewMethod("Count", py_Catalog_Count, 0, "")
		pyCatalogType.Dict["Close"] = py.MustNewMethod("Close", py_Catalog_Close, 0, "")
	}

	{
		methods := []*py.Method{
			py.MustNewMethod("Paths", py_Paths, 0, "lists the paths of size n"),
			py.MustNewMethod("Table", py_Table, 0, "computes the table of the given kind for a path"),
			py.MustNewMethod("CheckRegular", py_CheckRegular, 0, "checks a path's right table against the regular representation"),
			py.MustNewMethod("Translators", py_Translators, 0, "lists (perm, cycle type) for size n"),
			py.MustNewMethod("OpenCatalog", py_OpenCatalog, 0, ""),
		}

		globals := py.StringDict{
			"LIB_VERSION": py.String(LIB_VERSION),
			"MAX_SIZE":    py.Int(hess.MaxSize),
			"LEFT":        py.String(hess.LeftTable.String()),
			"RIGHT":       py.String(hess.RightTable.String()),
			"CSF":         py.String(hess.QChromatic.String()),
		}

		py.RegisterModule(&py.ModuleImpl{
			Info: py.ModuleInfo{
				Name: "_hess",
				Doc:  "Hessenberg character tables gpython module",
			},
			Methods: methods,
			Globals: globals,
			OnContextClosed: func(m *py.Module) {
				wsObj, _ := py.GetAttrString(m, kWorkspaceAttr)
				if wsObj != nil {
					wsObj.(*Workspace).Close()
				}
			},
		})
	}
}
