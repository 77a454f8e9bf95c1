package domain

// ExposedModule is an exposed module resolved to its physical URL.
type ExposedModule struct {
	ModuleName string `json:"moduleName"`
	URL        string `json:"url"`
}

// RemoteInfo is what is remembered about a loaded remote.
type RemoteInfo struct {
	ScopeURL string          `json:"scopeUrl"`
	Exposes  []ExposedModule `json:"exposes"`
}

// Module returns the URL of the exposed module with the given key.
func (r RemoteInfo) Module(key string) (string, bool) {
	for _, e := range r.Exposes {
		if e.ModuleName == key {
			return e.URL, true
		}
	}
	return "", false
}

// NewRemoteInfo derives the remote info of a fetched remote entry.
func NewRemoteInfo(entry *RemoteEntry) RemoteInfo {
	scope := ToScope(entry.URL)
	info := RemoteInfo{ScopeURL: scope, Exposes: make([]ExposedModule, 0, len(entry.Exposes))}
	for _, e := range entry.Exposes {
		info.Exposes = append(info.Exposes, ExposedModule{
			ModuleName: e.Key,
			URL:        JoinURL(scope, e.OutFileName),
		})
	}
	return info
}

// RemoteInfos maps a remote name to its info.
type RemoteInfos map[string]RemoteInfo
