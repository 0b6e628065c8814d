package cas

// EntryPath exposes the cache file name of a module for tests.
func (s *Store) EntryPath(path string) string {
	return s.entryPath(path)
}
