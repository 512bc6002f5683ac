package search

import "github.com/nill-home/face-insight/internal/store"

// IsUnknown reports whether an observation still contains unidentified
// faces, judged purely from metadata: more detected faces than distinct
// matched identities. Duplicate names in matched count once. When the
// matched set is somehow larger than the face count the record is
// treated as fully resolved, not unknown.
func IsUnknown(faceCount int, matched []string) bool {
	seen := make(map[string]struct{}, len(matched))
	for _, name := range matched {
		seen[name] = struct{}{}
	}
	return faceCount > len(seen)
}

// KnownByName returns every observation whose matched persons contain
// the given name. Matching is exact and case-sensitive: matched_persons
// entries are written by the detection pipeline from enrolled reference
// names, so they are compared verbatim rather than normalized.
func KnownByName(corpus []store.ObservationRecord, name string) []store.ObservationRecord {
	var out []store.ObservationRecord
	for _, obs := range corpus {
		for _, matched := range obs.MatchedPersons {
			if matched == name {
				out = append(out, obs)
				break
			}
		}
	}
	return out
}

// KnownByAny returns the union of observations matching any of the
// given names, de-duplicated by filename with first-seen order preserved.
func KnownByAny(corpus []store.ObservationRecord, names []string) []store.ObservationRecord {
	wanted := make(map[string]struct{}, len(names))
	for _, name := range names {
		wanted[name] = struct{}{}
	}

	seen := make(map[string]struct{})
	var out []store.ObservationRecord
	for _, obs := range corpus {
		if _, dup := seen[obs.Filename]; dup {
			continue
		}
		for _, matched := range obs.MatchedPersons {
			if _, ok := wanted[matched]; ok {
				seen[obs.Filename] = struct{}{}
				out = append(out, obs)
				break
			}
		}
	}
	return out
}
