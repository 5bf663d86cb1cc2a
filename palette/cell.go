package palette

import "github.com/atma-editor/atma/expr"

// Cell is the value stored at one occupied palette index, per spec
// §3: exactly one InsertExpr.
type Cell struct {
	Expr expr.InsertExpr
}
