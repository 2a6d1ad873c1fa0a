package storage

// NewStorage opens the article store under dataDir. SQLite is the only
// backend; the pipeline and the API share the returned instance.
func NewStorage(dataDir string) (Storage, error) {
	return NewSQLiteStorage(dataDir)
}
