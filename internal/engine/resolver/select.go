package resolver

import "go.trai.ch/federate/internal/core/domain"

func find(versions []domain.SharedVersion, version string) (int, bool) {
	for i, v := range versions {
		if v.Version == version {
			return i, true
		}
	}
	return -1, false
}

// singletons returns the records that take part in singleton selection.
// Records of remotes that do not share the package as a singleton never bind other remotes.
func singletons(versions []domain.SharedVersion) []domain.SharedVersion {
	out := make([]domain.SharedVersion, 0, len(versions))
	for _, v := range versions {
		if v.Singleton {
			out = append(out, v)
		}
	}
	return out
}

// authoritative returns the singleton currently in force for an entry:
// the earliest confirmed singleton, or the first singleton staged in this pass when none is confirmed.
// Records are only ever appended, so the choice is stable across reloads.
// found is false when no singleton has been chosen yet.
func authoritative(versions []domain.SharedVersion) (auth domain.SharedVersion, parsed domain.Version, found bool, err error) {
	candidates := singletons(versions)
	if len(candidates) == 0 {
		return domain.SharedVersion{}, domain.Version{}, false, nil
	}

	auth = candidates[0]
	for _, v := range candidates {
		if !v.Dirty {
			auth = v
			break
		}
	}
	parsed, err = domain.ParseVersion(auth.Version)
	return auth, parsed, err == nil, err
}

// pickBinding chooses the singleton for a range, in order of preference:
// the authoritative singleton, the latest confirmed singleton, the latest singleton of any kind.
func pickBinding(versions []domain.SharedVersion, rng domain.Range) (domain.SharedVersion, bool, error) {
	auth, parsed, found, err := authoritative(versions)
	if err != nil {
		return domain.SharedVersion{}, false, err
	}
	if found && rng.Contains(parsed) {
		return auth, true, nil
	}

	candidates := singletons(versions)
	if v, _, ok, err := latest(candidates, &rng, true); err != nil || ok {
		return v, ok, err
	}
	v, _, ok, err := latest(candidates, &rng, false)
	return v, ok, err
}

// latest returns the highest record, optionally restricted to a range and to confirmed records.
func latest(versions []domain.SharedVersion, rng *domain.Range, confirmedOnly bool) (domain.SharedVersion, domain.Version, bool, error) {
	var (
		best       domain.SharedVersion
		bestParsed domain.Version
		found      bool
	)
	for _, v := range versions {
		if confirmedOnly && v.Dirty {
			continue
		}
		parsed, err := domain.ParseVersion(v.Version)
		if err != nil {
			return domain.SharedVersion{}, domain.Version{}, false, err
		}
		if rng != nil && !rng.Contains(parsed) {
			continue
		}
		if !found || parsed.Compare(bestParsed) > 0 {
			best, bestParsed, found = v, parsed, true
		}
	}
	return best, bestParsed, found, nil
}
