package domain

import "path/filepath"

const (
	// FederateDirName is the name of the internal state directory.
	FederateDirName = ".federate"

	// StoreDirName is the name of the file storage directory.
	StoreDirName = "store"

	// SQLiteFileName is the name of the sqlite storage database.
	SQLiteFileName = "federate.db"

	// ConfigFileName is the name of the project configuration file.
	ConfigFileName = "federate.yaml"

	// DefaultImportMapFile is the default output path of the import map.
	DefaultImportMapFile = "importmap.json"

	// StdoutPath as output path writes no file, the import map is printed instead.
	StdoutPath = "-"

	// DefaultServeAddr is the default listen address of the serve command.
	DefaultServeAddr = ":4400"

	// SharedExternalsNamespace is the storage namespace of the shared externals.
	SharedExternalsNamespace = "shared-externals"

	// RemotesNamespace is the storage namespace of the remote infos.
	RemotesNamespace = "remotes"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// Namespaces lists every storage namespace in use.
func Namespaces() []string {
	return []string{SharedExternalsNamespace, RemotesNamespace}
}

// DefaultStorePath returns the default path of the file storage.
// It joins .federate and store.
func DefaultStorePath() string {
	return filepath.Join(FederateDirName, StoreDirName)
}

// DefaultSQLitePath returns the default path of the sqlite database.
// It joins .federate and federate.db.
func DefaultSQLitePath() string {
	return filepath.Join(FederateDirName, SQLiteFileName)
}
