package pyast

// Walk traverses the tree rooted at n in depth-first source order,
// calling fn for every node. If fn returns false the node's children are
// not visited. Walk of a nil node is a no-op.
func Walk(n Node, fn func(Node) bool) {
	if n == nil {
		return
	}
	if !fn(n) {
		return
	}
	for _, child := range children(n) {
		Walk(child, fn)
	}
}

func children(n Node) []Node {
	switch v := n.(type) {
	case *Module:
		return v.Body
	case *FunctionDef:
		return v.Body
	case *ClassDef:
		return v.Body
	case *Block:
		return v.Body
	default:
		return nil
	}
}
