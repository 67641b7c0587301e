// Package xmlutils provides the namespace-agnostic tree walking used to read statement documents.
// Path steps match element local names, so `Ntry` finds both `<Ntry>` and `<camt:Ntry>`.
package xmlutils

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"golang.org/x/net/html/charset"
	"gopkg.in/xmlpath.v2"
)

var (
	// ErrNoRootElement is returned when the input holds no element at all
	ErrNoRootElement = errors.New("document has no root element")
	// ErrMultipleRoots is returned when more than one top-level element is present
	ErrMultipleRoots = errors.New("document has more than one root element")
)

var (
	topLevel = xmlpath.MustCompile("/*")

	cacheMu sync.RWMutex
	cache   = map[string]*xmlpath.Path{}
)

// Parse reads an XML document and returns its root node.
// Documents declaring a non UTF-8 encoding are transcoded on the fly.
func Parse(r io.Reader) (*xmlpath.Node, error) {
	decoder := xml.NewDecoder(r)
	decoder.CharsetReader = charset.NewReaderLabel

	root, err := xmlpath.ParseDecoder(decoder)
	if err != nil {
		return nil, err
	}
	iter := topLevel.Iter(root)
	if !iter.Next() {
		return nil, ErrNoRootElement
	}
	if iter.Next() {
		return nil, ErrMultipleRoots
	}
	return root, nil
}

// ParseString is Parse over an in-memory document
func ParseString(text string) (*xmlpath.Node, error) {
	return Parse(strings.NewReader(text))
}

// compile returns the compiled form of path, caching it for reuse.
// Paths are program constants, so a bad path panics.
func compile(path string) *xmlpath.Path {
	cacheMu.RLock()
	p, ok := cache[path]
	cacheMu.RUnlock()
	if ok {
		return p
	}

	p, err := xmlpath.Compile(path)
	if err != nil {
		panic(fmt.Sprintf("xmlutils: invalid path %q: %v", path, err))
	}

	cacheMu.Lock()
	cache[path] = p
	cacheMu.Unlock()
	return p
}

// FirstNode returns the first node selected by path from node, in document order
func FirstNode(node *xmlpath.Node, path string) (*xmlpath.Node, bool) {
	if node == nil {
		return nil, false
	}
	iter := compile(path).Iter(node)
	if iter.Next() {
		return iter.Node(), true
	}
	return nil, false
}

// AllNodes returns every node selected by path from node, in document order
func AllNodes(node *xmlpath.Node, path string) []*xmlpath.Node {
	if node == nil {
		return nil
	}
	var nodes []*xmlpath.Node
	iter := compile(path).Iter(node)
	for iter.Next() {
		nodes = append(nodes, iter.Node())
	}
	return nodes
}

// FirstText returns the trimmed text of the first node selected by path.
// The boolean is false when nothing matched.
func FirstText(node *xmlpath.Node, path string) (string, bool) {
	found, ok := FirstNode(node, path)
	if !ok {
		return "", false
	}
	return strings.TrimSpace(found.String()), true
}

// TextOrEmpty is FirstText without the presence flag
func TextOrEmpty(node *xmlpath.Node, path string) string {
	text, _ := FirstText(node, path)
	return text
}

// Attr returns the value of the named attribute of node
func Attr(node *xmlpath.Node, name string) (string, bool) {
	return FirstText(node, "@"+name)
}

// JoinNonEmpty joins the non-empty parts with sep
func JoinNonEmpty(sep string, parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" {
			kept = append(kept, part)
		}
	}
	return strings.Join(kept, sep)
}
