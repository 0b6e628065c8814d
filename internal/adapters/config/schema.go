package config

// Weldfile is the structure of weld.yaml.
type Weldfile struct {
	Version   string   `yaml:"version"`
	Root      string   `yaml:"root"`
	Entry     string   `yaml:"entry"`
	Out       string   `yaml:"out"`
	Workers   int      `yaml:"workers"`
	Cache     CacheDTO `yaml:"cache"`
	Externals []string `yaml:"externals"`
	JSX       JSXDTO   `yaml:"jsx"`
}

// CacheDTO is the cache section of weld.yaml.
type CacheDTO struct {
	// Enabled is nil when the key is absent.
	Enabled *bool  `yaml:"enabled"`
	Dir     string `yaml:"dir"`
}

// JSXDTO is the jsx section of weld.yaml.
type JSXDTO struct {
	ImportSource string `yaml:"importSource"`
}
