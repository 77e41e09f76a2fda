// Package config loads sedit's layered configuration.
//
// Settings merge in order, later layers winning:
//
//  1. embedded defaults (embedded/defaults.toml)
//  2. the user config file ($XDG_CONFIG_HOME/sedit/config.toml)
//  3. a repo-local ./sedit.toml
//  4. SEDIT_ environment variables, with __ separating key segments
//     (SEDIT_BACKUP__STRATEGY=timestamped sets backup.strategy)
//
// Config files may be TOML or YAML, chosen by extension.
package config
