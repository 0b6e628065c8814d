package domain

import (
	"path/filepath"
	"strings"
)

// Dialect is the grammar a module is parsed with.
type Dialect int

const (
	// DialectScript is plain ECMAScript.
	DialectScript Dialect = iota
	// DialectTypeScript is TypeScript without JSX.
	DialectTypeScript
	// DialectJSX is ECMAScript with JSX.
	DialectJSX
	// DialectTypeScriptJSX is TypeScript with JSX.
	DialectTypeScriptJSX
)

// DialectFromPath derives the dialect from a file extension.
// Unknown extensions are parsed as plain script.
func DialectFromPath(path string) Dialect {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ts", ".mts", ".cts":
		return DialectTypeScript
	case ".tsx":
		return DialectTypeScriptJSX
	case ".jsx":
		return DialectJSX
	default:
		return DialectScript
	}
}

// IsTypeScript reports whether type annotations must be stripped.
func (d Dialect) IsTypeScript() bool {
	return d == DialectTypeScript || d == DialectTypeScriptJSX
}

// HasJSX reports whether JSX elements must be lowered.
func (d Dialect) HasJSX() bool {
	return d == DialectJSX || d == DialectTypeScriptJSX
}

func (d Dialect) String() string {
	switch d {
	case DialectTypeScript:
		return "typescript"
	case DialectJSX:
		return "jsx"
	case DialectTypeScriptJSX:
		return "typescript-jsx"
	default:
		return "script"
	}
}
