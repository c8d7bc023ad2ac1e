package versionutils

import (
	"regexp"

	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

var (
	ManifestVersionMissingError = func(path string) error {
		return errors.Errorf("Could not find version in manifest %s", path)
	}

	// Tables a TOML manifest may declare its own version under, in
	// precedence order.
	manifestVersionKeys = []string{
		"version",
		"project.version",
		"package.version",
		"tool.poetry.version",
	}

	manifestVersionRegex = regexp.MustCompile(`(?m)^version\s*=\s*"([^"]+)"`)
)

// CurrentVersion reads the project version declared in the manifest at
// path. TOML manifests are parsed structurally; anything else falls back to
// the top-of-line `version = "X.Y.Z"` declaration.
func CurrentVersion(fs afero.Fs, path string) (*Version, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed reading manifest %s", path)
	}

	if tree, err := toml.LoadBytes(data); err == nil {
		for _, key := range manifestVersionKeys {
			if raw, ok := tree.Get(key).(string); ok {
				version, err := ParseVersion(raw)
				if err != nil {
					return nil, err
				}
				return version, nil
			}
		}
	}

	match := manifestVersionRegex.FindSubmatch(data)
	if match == nil {
		return nil, ManifestVersionMissingError(path)
	}
	return ParseVersion(string(match[1]))
}
