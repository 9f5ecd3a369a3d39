package ast

// Visitor is the node-visiting hook every AST node exposes (§4.A "plus a
// visitor hook"). Visit is called with each node Walk descends into; a nil
// return stops descent into that node's children, a non-nil Visitor
// continues the walk with those children.
type Visitor interface {
	Visit(node Node) Visitor
}

// Walk traverses an AST in depth-first, render order, calling v.Visit for
// node and the children it descends into. It does not reach every child: a
// TypeDeclaration visits its base type, interfaces, methods and nested
// types but not its field defaults, constructors, static constructor or
// events; a TryAdapter visits its try, catch and finally bodies but not
// catch types or filters; ConstructorAdapter arguments are not visited.
// It is a pure reader: no node is mutated
// by walking it (§4.A "equality and identity are not defined... only
// meaningful after rendering" — Walk never needs either).
func Walk(v Visitor, node Node) {
	if node == nil {
		return
	}
	v = v.Visit(node)
	if v == nil {
		return
	}

	switch n := node.(type) {
	case *File:
		walkStatements(v, n.Statements)
	case *Block:
		walkStatements(v, n.Statements)

	case *BinaryExpr:
		Walk(v, n.Left)
		Walk(v, n.Right)
	case *UnaryExpr:
		Walk(v, n.Operand)
	case *MemberAccessExpr:
		Walk(v, n.Object)
	case *IndexExpr:
		Walk(v, n.Object)
		Walk(v, n.Index)
	case *CallExpr:
		Walk(v, n.Callee)
		for _, a := range n.Args {
			Walk(v, a)
		}
	case *FunctionLiteral:
		Walk(v, n.Body)
	case *ParenExpr:
		Walk(v, n.Inner)
	case *TableInitializer:
		for _, item := range n.Items {
			if item.Key != nil {
				Walk(v, item.Key)
			}
			Walk(v, item.Value)
		}
	case *SequenceListExpr:
		for _, e := range n.Elements {
			Walk(v, e)
		}
	case *PropertyAdapterExpr:
		Walk(v, n.Object)
	case *ArrayTypeAdapterExpr:
		Walk(v, n.ElementType)
		for _, s := range n.Sizes {
			Walk(v, s)
		}

	case *ExprStatement:
		Walk(v, n.Expr)
	case *AssignStatement:
		for _, e := range n.LHS {
			Walk(v, e)
		}
		for _, e := range n.RHS {
			Walk(v, e)
		}
	case *LocalVarDeclStatement:
		for _, e := range n.Values {
			Walk(v, e)
		}
	case *IfStatement:
		Walk(v, n.Cond)
		Walk(v, n.Then)
		for _, ei := range n.ElseIfs {
			Walk(v, ei.Cond)
			Walk(v, ei.Body)
		}
		if n.Else != nil {
			Walk(v, n.Else)
		}
	case *WhileStatement:
		Walk(v, n.Cond)
		Walk(v, n.Body)
	case *RepeatUntilStatement:
		Walk(v, n.Body)
		Walk(v, n.Cond)
	case *NumericForStatement:
		Walk(v, n.Start)
		Walk(v, n.Stop)
		if n.Step != nil {
			Walk(v, n.Step)
		}
		Walk(v, n.Body)
	case *GenericForStatement:
		for _, e := range n.Exprs {
			Walk(v, e)
		}
		Walk(v, n.Body)
	case *DoStatement:
		Walk(v, n.Body)
	case *ReturnStatement:
		for _, e := range n.Values {
			Walk(v, e)
		}

	case *TryAdapter:
		Walk(v, n.Try)
		for _, c := range n.Catches {
			Walk(v, c.Body)
		}
		if n.Finally != nil {
			Walk(v, n.Finally)
		}
	case *UsingAdapter:
		for _, r := range n.Resources {
			Walk(v, r.Init)
		}
		Walk(v, n.Body)

	case *TypeDeclaration:
		if n.BaseType != nil {
			Walk(v, n.BaseType)
		}
		for _, i := range n.Interfaces {
			Walk(v, i)
		}
		for _, m := range n.Methods {
			Walk(v, m.Fn)
		}
		for _, nested := range n.NestedTypes {
			Walk(v, nested)
		}
	case *LocalFunctionDecl:
		Walk(v, n.Fn)

	default:
		// Leaf nodes (Identifier, Literal, Break, Goto, Labeled, blank
		// lines, comments, vararg, Continue/GotoCase adapters) have no
		// children to descend into; ConstructorAdapter also lands here.
	}
}

func walkStatements(v Visitor, stmts []Statement) {
	for _, s := range stmts {
		Walk(v, s)
	}
}
