package ports

import "go.trai.ch/weld/internal/core/domain"

// Compiler is the external parse, transform and emit toolchain.
//
//go:generate mockgen -source=compiler.go -destination=mocks/mock_compiler.go -package=mocks
type Compiler interface {
	// Compile parses source with the grammar of dialect, applies the transform
	// passes for that dialect and returns the tree with the raw import specifiers.
	Compile(path, source string, dialect domain.Dialect) (domain.SyntaxTree, []string, error)

	// Restore wraps previously emitted code of path back into a tree.
	Restore(path, code string) domain.SyntaxTree

	// Emit serializes a tree to text.
	Emit(tree domain.SyntaxTree) (string, error)
}
