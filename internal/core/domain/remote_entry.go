package domain

import (
	"bytes"
	"encoding/json"

	"go.trai.ch/zerr"
)

// ExposesInfo is a module a remote makes available to others.
type ExposesInfo struct {
	Key         string `json:"key"`
	OutFileName string `json:"outFileName"`
}

// SharedInfo is a remote's declaration of a shared dependency.
type SharedInfo struct {
	PackageName     string `json:"packageName"`
	OutFileName     string `json:"outFileName"`
	RequiredVersion string `json:"requiredVersion"`
	Singleton       bool   `json:"singleton"`
	StrictVersion   bool   `json:"strictVersion"`
	Version         string `json:"version"`
	ShareScope      string `json:"shareScope,omitempty"`
}

// RemoteEntry is the metadata document published by a remote.
type RemoteEntry struct {
	Name    string        `json:"name"`
	URL     string        `json:"url,omitempty"`
	Host    bool          `json:"host,omitempty"`
	Exposes []ExposesInfo `json:"exposes"`
	Shared  []SharedInfo  `json:"shared"`
}

// ParseRemoteEntry decodes a remote entry document fetched from url.
// Missing exposes and shared lists default to empty and the fetched url is recorded.
func ParseRemoteEntry(data []byte, url string) (*RemoteEntry, error) {
	var entry RemoteEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "malformed remote entry"), "url", url)
	}
	if entry.Exposes == nil {
		entry.Exposes = []ExposesInfo{}
	}
	if entry.Shared == nil {
		entry.Shared = []SharedInfo{}
	}
	entry.URL = url
	return &entry, nil
}

// ManifestEntry maps a remote name to its remote entry URL.
type ManifestEntry struct {
	Name string
	URL  string
}

// Manifest lists the remotes to load, in document order.
type Manifest []ManifestEntry

// Lookup returns the remote entry URL registered for name.
func (m Manifest) Lookup(name string) (string, bool) {
	for _, e := range m {
		if e.Name == name {
			return e.URL, true
		}
	}
	return "", false
}

// With returns a copy of the manifest where name points to url.
// An existing entry keeps its position, a new one is appended.
func (m Manifest) With(name, url string) Manifest {
	out := make(Manifest, 0, len(m)+1)
	found := false
	for _, e := range m {
		if e.Name == name {
			e.URL = url
			found = true
		}
		out = append(out, e)
	}
	if !found {
		out = append(out, ManifestEntry{Name: name, URL: url})
	}
	return out
}

// UnmarshalJSON decodes a JSON object keeping the key order of the document.
func (m *Manifest) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return zerr.New("manifest must be a JSON object")
	}

	out := Manifest{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := keyTok.(string)

		var url string
		if err := dec.Decode(&url); err != nil {
			return zerr.With(zerr.Wrap(err, "manifest value must be a string"), "remote", key)
		}
		out = out.With(key, url)
	}

	if _, err := dec.Token(); err != nil {
		return err
	}
	*m = out
	return nil
}

// MarshalJSON encodes the manifest as a JSON object in entry order.
func (m Manifest) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range m {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(e.Name)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(e.URL)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
