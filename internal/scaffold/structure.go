// Package scaffold generates a workspace directory tree from a YAML
// structure document. Directories map to nested nodes, files to list
// entries or null-valued keys, and each created file gets placeholder
// content appropriate to its extension.
package scaffold

import (
	_ "embed"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/msandoval/devinit/internal/util"
)

//go:embed structure.yaml
var defaultStructureYAML []byte

// Node is one level of the workspace tree: Files at this level plus named
// child directories
type Node struct {
	// Files to create directly in this directory
	Files []string

	// Dirs maps child directory names to their contents
	Dirs map[string]*Node
}

// Structure is the root of a workspace definition
type Structure struct {
	Root *Node
}

// DefaultStructure parses the embedded workspace definition
func DefaultStructure() (*Structure, error) {
	return parseStructure(defaultStructureYAML)
}

// LoadStructure reads a workspace definition from a YAML file
func LoadStructure(path string) (*Structure, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read structure file %s: %w", path, err)
	}
	return parseStructure(data)
}

func parseStructure(data []byte) (*Structure, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse structure document: %w", err)
	}

	root, err := buildNode(raw)
	if err != nil {
		return nil, err
	}

	return &Structure{Root: root}, nil
}

// buildNode converts a parsed YAML mapping to a Node. A null-valued key is
// a file at this level; a sequence-valued key is a directory holding exactly
// the listed files; a mapping-valued key is a directory that recurses.
func buildNode(raw map[string]any) (*Node, error) {
	node := &Node{Dirs: make(map[string]*Node)}

	keys := make([]string, 0, len(raw))
	for key := range raw {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		switch value := raw[key].(type) {
		case nil:
			node.Files = append(node.Files, key)
		case []any:
			child := &Node{Dirs: make(map[string]*Node)}
			for _, item := range value {
				name, ok := item.(string)
				if !ok {
					return nil, util.NewValidationError(key, item, "file list entries must be strings")
				}
				child.Files = append(child.Files, name)
			}
			node.Dirs[key] = child
		case map[string]any:
			child, err := buildNode(value)
			if err != nil {
				return nil, err
			}
			node.Dirs[key] = child
		default:
			return nil, util.NewValidationError(key, value, "structure values must be null, a list, or a mapping")
		}
	}

	return node, nil
}

// CountEntries returns the number of directories and files the structure
// describes
func (s *Structure) CountEntries() (dirs, files int) {
	var walk func(n *Node)
	walk = func(n *Node) {
		files += len(n.Files)
		for _, child := range n.Dirs {
			dirs++
			walk(child)
		}
	}
	walk(s.Root)
	return dirs, files
}
