package domain

import "go.trai.ch/zerr"

var (
	// ErrFederationInitFailed is returned when the federation pipeline does not reach the exposed state.
	ErrFederationInitFailed = zerr.New("federation init failed")

	// ErrManifestFetch is returned when the manifest is unreachable or invalid.
	ErrManifestFetch = zerr.New("could not fetch manifest")

	// ErrRemoteEntryFetch is returned when a remote entry cannot be fetched or parsed.
	ErrRemoteEntryFetch = zerr.New("could not fetch remote entry")

	// ErrDocumentTooLarge is returned when a manifest or remote entry exceeds the size limit.
	ErrDocumentTooLarge = zerr.New("document too large")

	// ErrInvalidRemoteEntryURL is returned when a remote is registered without a usable entry URL.
	ErrInvalidRemoteEntryURL = zerr.New("module not registered, provide a valid remote entry url")

	// ErrUnresolvableVersion is returned when no known version satisfies a remote's declared range.
	ErrUnresolvableVersion = zerr.New("unresolvable version")

	// ErrIncompatibleSingleton is reported when two remotes declare incompatible versions of a singleton.
	ErrIncompatibleSingleton = zerr.New("incompatible singleton")

	// ErrUnexposedModule is returned when a requested module key is not exposed by a remote.
	ErrUnexposedModule = zerr.New("module is not exposed by remote")

	// ErrEmptyRemoteName is returned when a module is requested without a remote name.
	ErrEmptyRemoteName = zerr.New("remote name cannot be empty")

	// ErrRemoteNotFound is returned when a remote is neither cached nor fetchable.
	ErrRemoteNotFound = zerr.New("remote not found in storage")

	// ErrInvalidVersion is returned when a version string is not a valid semantic version.
	ErrInvalidVersion = zerr.New("invalid semantic version")

	// ErrInvalidVersionRange is returned when a version range cannot be parsed.
	ErrInvalidVersionRange = zerr.New("invalid version range")

	// ErrEmptyVersionSet is returned when the latest version of an empty set is requested.
	ErrEmptyVersionSet = zerr.New("no versions to choose from")

	// ErrInvalidAction is returned when a sharing action is not one of skip, scope or share.
	ErrInvalidAction = zerr.New("invalid sharing action, expected 'skip', 'scope' or 'share'")

	// ErrStorageReadFailed is returned when a storage namespace cannot be read.
	ErrStorageReadFailed = zerr.New("failed to read storage namespace")

	// ErrStorageWriteFailed is returned when a storage namespace cannot be written.
	ErrStorageWriteFailed = zerr.New("failed to write storage namespace")

	// ErrStorageUnmarshalFailed is returned when persisted state cannot be decoded.
	ErrStorageUnmarshalFailed = zerr.New("failed to unmarshal persisted state")

	// ErrStorageMarshalFailed is returned when state cannot be encoded for persistence.
	ErrStorageMarshalFailed = zerr.New("failed to marshal state")

	// ErrUnknownStorageDriver is returned when the configured storage driver is not supported.
	ErrUnknownStorageDriver = zerr.New("unknown storage driver, expected 'file', 'sqlite' or 'memory'")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrNoManifest is returned when neither a manifest location nor inline remotes are configured.
	ErrNoManifest = zerr.New("no manifest or remotes configured")

	// ErrUnknownOutputFormat is returned when the import map output format is not supported.
	ErrUnknownOutputFormat = zerr.New("unknown output format, expected 'json' or 'html'")

	// ErrImportMapWriteFailed is returned when the import map cannot be written.
	ErrImportMapWriteFailed = zerr.New("failed to write import map")

	// ErrNotExposed is returned when a module is imported before any import map was exposed.
	ErrNotExposed = zerr.New("no import map has been exposed")

	// ErrUnresolvedSpecifier is returned when a specifier is not mapped by the exposed import map.
	ErrUnresolvedSpecifier = zerr.New("specifier is not mapped by the import map")
)
