package config

import (
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/arthur-debert/sedit/pkg/errors"
)

// Generate marshals settings to TOML with a short usage header, the
// content genconfig writes for users to edit.
func Generate(s *Settings) (string, error) {
	data, err := toml.Marshal(s)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "cannot marshal settings")
	}

	header := strings.Join([]string{
		"# sedit configuration",
		"# Values here override the built-in defaults; SEDIT_ environment",
		"# variables override this file (SEDIT_BACKUP__STRATEGY=timestamped).",
		"",
		"",
	}, "\n")

	return header + string(data), nil
}
