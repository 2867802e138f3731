// Package signoff checks commit messages for sign-off markers according to
// configured policies.
//
// Related packages: config, commit, runner, model, vcs, vcs/gitcli
package signoff

import "github.com/jeffrom/signoff/config"

// Config holds most of the configuration variables for signoff. This struct
// is intended for command-line use, so not all of its attributes are
// applicable to every operation.
//
// See "go doc github.com/jeffrom/signoff/config Config" for more information.
type Config = config.Config
