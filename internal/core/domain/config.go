package domain

// DefaultJSXImportSource is the module the automatic JSX runtime is imported from.
const DefaultJSXImportSource = "react"

// DefaultExternals are specifiers provided by the host runtime rather than bundled.
func DefaultExternals() []string {
	return []string{"react", "react-dom/client", "weld:*", "node:*"}
}

// Config is the resolved bundler configuration.
type Config struct {
	// Root is the directory relative entry specifiers are resolved against.
	Root  string
	Entry string
	// Out is the output file. Empty means standard output.
	Out string
	// Workers is the discovery pool size. Zero means one worker per CPU.
	Workers int
	Cache   CacheConfig
	// Externals lists specifiers that are never resolved. A trailing "*" matches a prefix.
	Externals       []string
	JSXImportSource string
}

// CacheConfig configures the module cache.
type CacheConfig struct {
	Enabled bool
	Dir     string
}
