package ports

// ModuleResolver maps import specifiers to canonical file paths.
//
//go:generate mockgen -source=resolver.go -destination=mocks/mock_resolver.go -package=mocks
type ModuleResolver interface {
	// ResolveEntry resolves the entry specifier relative to root.
	ResolveEntry(root, specifier string) (string, error)

	// Resolve resolves a specifier found in the module at from.
	// It reports false for specifiers that are external or cannot be found.
	Resolve(from, specifier string) (string, bool)
}
