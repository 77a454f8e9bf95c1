// Package importmap turns a remote entry and its sharing decisions into an import map fragment.
package importmap

import (
	"fmt"
	"slices"
	"strings"

	"go.trai.ch/federate/internal/core/domain"
	"go.trai.ch/federate/internal/core/ports"
	"go.trai.ch/zerr"
)

// Builder builds import map fragments for single remote entries.
type Builder struct {
	logger ports.Logger
}

// NewBuilder creates a new Builder.
func NewBuilder(logger ports.Logger) *Builder {
	return &Builder{logger: logger}
}

// Build returns the fragment contributed by entry.
// Exposed modules are always mapped globally as "<remote name>/<key>".
// On error the fragment is nil and nothing must be merged.
func (b *Builder) Build(entry *domain.RemoteEntry, actions domain.SharedInfoActions) (*domain.ImportMap, error) {
	if entry == nil {
		return nil, zerr.Wrap(domain.ErrRemoteEntryFetch, "no remote entry to build from")
	}
	if strings.TrimSpace(entry.URL) == "" {
		return nil, zerr.With(zerr.Wrap(domain.ErrInvalidRemoteEntryURL, "remote entry has no url"), "remote", entry.Name)
	}

	fragment := domain.NewImportMap()
	scope := domain.ToScope(entry.URL)

	for _, shared := range entry.Shared {
		b.addExternal(fragment, entry.Name, scope, shared, actions)
	}

	for _, exposed := range entry.Exposes {
		fragment.AddImport(
			domain.JoinURL(entry.Name, exposed.Key),
			domain.JoinURL(scope, exposed.OutFileName),
		)
	}

	b.logger.Debug(fmt.Sprintf("[%s] Processed actions: %s", entry.Name, describe(actions)))
	return fragment, nil
}

func (b *Builder) addExternal(
	fragment *domain.ImportMap,
	remote, scope string,
	shared domain.SharedInfo,
	actions domain.SharedInfoActions,
) {
	own := domain.JoinURL(scope, shared.OutFileName)

	if !shared.Singleton {
		fragment.AddScoped(scope, shared.PackageName, own)
		return
	}

	action, ok := actions[shared.PackageName]
	if !ok || action.Action == domain.ActionNone {
		b.logger.Warn(fmt.Sprintf("[%s] No action defined for shared external '%s'.", remote, shared.PackageName))
		return
	}

	if action.Action == domain.ActionSkip {
		if shared.ShareScope == "" {
			return
		}
		if action.Override != "" {
			fragment.AddScoped(scope, shared.PackageName, action.Override)
			return
		}
	}

	if action.Action == domain.ActionScope || shared.ShareScope != "" {
		fragment.AddScoped(scope, shared.PackageName, own)
		return
	}

	fragment.AddImport(shared.PackageName, own)
}

func describe(actions domain.SharedInfoActions) string {
	names := make([]string, 0, len(actions))
	for name := range actions {
		names = append(names, name)
	}
	slices.Sort(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		a := actions[name]
		part := name + "=" + a.Action.String()
		if a.Override != "" {
			part += "(" + a.Override + ")"
		}
		parts = append(parts, part)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
