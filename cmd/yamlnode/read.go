package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/lc/yamlnode/internal/document"
	"github.com/lc/yamlnode/internal/node"
)

// readValue reads path from root as typ and returns the lines to print.
// With hasDef, def is parsed as typ and passed to the matching *Or
// accessor, which may write it back into root.
func readValue(root *node.Node, path, typ, def string, hasDef bool) ([]string, error) {
	switch typ {
	case "string":
		if hasDef {
			return []string{root.StringOr(path, def)}, nil
		}
		return one(root.String(path))
	case "int":
		if hasDef {
			d, err := strconv.Atoi(def)
			if err != nil {
				return nil, fmt.Errorf("invalid default: %w", err)
			}
			return []string{strconv.Itoa(root.IntOr(path, d))}, nil
		}
		i, ok := root.Int(path)
		return one(strconv.Itoa(i), ok)
	case "float":
		if hasDef {
			d, err := strconv.ParseFloat(def, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid default: %w", err)
			}
			return []string{node.FormatFloat(root.FloatOr(path, d))}, nil
		}
		f, ok := root.Float(path)
		return one(node.FormatFloat(f), ok)
	case "bool":
		if hasDef {
			d, err := strconv.ParseBool(def)
			if err != nil {
				return nil, fmt.Errorf("invalid default: %w", err)
			}
			return []string{strconv.FormatBool(root.BoolOr(path, d))}, nil
		}
		b, ok := root.Bool(path)
		return one(strconv.FormatBool(b), ok)
	case "uuid":
		if hasDef {
			d, err := uuid.Parse(def)
			if err != nil {
				return nil, fmt.Errorf("invalid default: %w", err)
			}
			return []string{root.UUIDOr(path, d).String()}, nil
		}
		id, ok := root.UUID(path)
		return one(id.String(), ok)
	case "vector":
		if hasDef {
			d, err := parseVector(def)
			if err != nil {
				return nil, fmt.Errorf("invalid default: %w", err)
			}
			return []string{formatVector(root.VectorOr(path, d))}, nil
		}
		v, ok := root.Vector(path)
		return one(formatVector(v), ok)
	case "list":
		if hasDef {
			return root.StringList(path, splitList(def)), nil
		}
		if _, ok := root.List(path); !ok {
			return nil, fmt.Errorf("%w at %s", errNotFound, path)
		}
		return root.StringList(path, nil), nil
	case "keys":
		keys, ok := root.Keys(path)
		if !ok {
			return nil, fmt.Errorf("%w at %s", errNotFound, path)
		}
		return keys, nil
	case "node":
		sub, ok := root.Node(path)
		if !ok {
			return nil, fmt.Errorf("%w at %s", errNotFound, path)
		}
		data, err := document.Encode(sub.Map(), document.Options{})
		if err != nil {
			return nil, err
		}
		return []string{strings.TrimRight(string(data), "\n")}, nil
	default:
		return nil, fmt.Errorf("unknown type %q", typ)
	}
}

// parseValue converts a command-line argument into a value to store.
// "auto" parses the text as YAML, so "[1, 2]" becomes a sequence.
func parseValue(text, typ string) (any, error) {
	switch typ {
	case "auto":
		return document.ParseValue(text)
	case "string":
		return text, nil
	case "int":
		return strconv.ParseInt(text, 10, 64)
	case "float":
		return strconv.ParseFloat(text, 64)
	case "bool":
		return strconv.ParseBool(text)
	case "uuid":
		return uuid.Parse(text)
	case "vector":
		return parseVector(text)
	default:
		return nil, fmt.Errorf("unknown type %q", typ)
	}
}

func one(s string, ok bool) ([]string, error) {
	if !ok {
		return nil, errNotFound
	}
	return []string{s}, nil
}

// parseVector parses "x,y,z".
func parseVector(s string) (node.Vector, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return node.Vector{}, fmt.Errorf("vector %q: want x,y,z", s)
	}
	var xyz [3]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return node.Vector{}, fmt.Errorf("vector %q: %w", s, err)
		}
		xyz[i] = f
	}
	return node.Vector{X: xyz[0], Y: xyz[1], Z: xyz[2]}, nil
}

func formatVector(v node.Vector) string {
	return node.FormatFloat(v.X) + "," + node.FormatFloat(v.Y) + "," + node.FormatFloat(v.Z)
}

func splitList(s string) []string {
	if s == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
