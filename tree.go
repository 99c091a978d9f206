package main

import (
	"strings"
)

// PathNode is one entry of a repository tree: either a directory holding
// ordered children, or a file.
type PathNode struct {
	Name     string
	Children []*PathNode

	dir   bool
	index map[string]*PathNode
}

// IsDir reports whether the node is a directory.
func (n *PathNode) IsDir() bool {
	return n.dir
}

func newDir(name string) *PathNode {
	return &PathNode{Name: name, dir: true, index: make(map[string]*PathNode)}
}

// child returns the named child, creating it with the given kind when it
// does not exist yet. Children keep the order in which they were first seen.
func (n *PathNode) child(name string, dir bool) *PathNode {
	if c, ok := n.index[name]; ok {
		return c
	}
	var c *PathNode
	if dir {
		c = newDir(name)
	} else {
		c = &PathNode{Name: name}
	}
	n.index[name] = c
	n.Children = append(n.Children, c)
	return c
}

// buildTree turns slash separated paths, as listed by git ls-tree, into a
// tree rooted at an unnamed directory. Empty paths are skipped.
func buildTree(paths []string) *PathNode {
	root := newDir("")
	for _, line := range paths {
		if line == "" {
			continue
		}
		parts := strings.Split(line, "/")
		current := root
		for _, part := range parts[:len(parts)-1] {
			current = current.child(part, true)
			if !current.dir {
				// A path listed as a file earlier cannot hold children.
				break
			}
		}
		if current.dir {
			current.child(parts[len(parts)-1], false)
		}
	}
	return root
}

// findAll returns every entry named filename beneath root, in listing
// order. A match is not descended into.
func findAll(root *PathNode, filename string) []Finding {
	var found []Finding
	var walk func(n *PathNode, prefix string)
	walk = func(n *PathNode, prefix string) {
		for _, c := range n.Children {
			current := c.Name
			if prefix != "" {
				current = prefix + "/" + c.Name
			}
			switch {
			case c.Name == filename:
				found = append(found, Finding{Folder: lastSegment(prefix), Path: current})
			case c.IsDir():
				walk(c, current)
			}
		}
	}
	if root != nil {
		walk(root, "")
	}
	return found
}

func lastSegment(path string) string {
	if i := strings.LastIndex(path, "/"); i >= 0 {
		return path[i+1:]
	}
	return path
}
