package commit

import (
	"errors"
	"strings"

	"github.com/blang/semver/v4"
)

var ErrNoTags = errors.New("commit: no release tags found")

// semverLatest returns the highest release version among tags, along with the
// tag it was parsed from. Prereleases are skipped.
func semverLatest(tags []string) (semver.Version, string, error) {
	var latest semver.Version
	var latestTag string
	found := false
	for _, t := range tags {
		v, err := semver.Parse(strings.TrimPrefix(t, "v"))
		if err != nil {
			continue
		}
		if len(v.Pre) > 0 {
			continue
		}

		if !found || v.GT(latest) {
			latest = v
			latestTag = t
			found = true
		}
	}

	if !found {
		return semver.Version{}, "", ErrNoTags
	}
	return latest, latestTag, nil
}
