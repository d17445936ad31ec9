package dom

import "strings"

// compile turns a simple selector into a predicate. It returns nil for
// selectors it does not understand.
func compile(selector string) func(*Node) bool {
	selector = strings.TrimSpace(selector)
	if selector == "" {
		return nil
	}
	switch {
	case strings.HasPrefix(selector, "#"):
		id := selector[1:]
		return func(n *Node) bool { return id != "" && n.id == id }
	case strings.HasPrefix(selector, "."):
		class := selector[1:]
		return func(n *Node) bool { return n.HasClass(class) }
	case strings.HasPrefix(selector, "[") && strings.HasSuffix(selector, "]"):
		attr := strings.TrimSpace(selector[1 : len(selector)-1])
		return func(n *Node) bool { return n.HasAttribute(attr) }
	case strings.ContainsAny(selector, " >+~,:"):
		return nil
	default:
		return func(n *Node) bool { return n.tag == selector }
	}
}
