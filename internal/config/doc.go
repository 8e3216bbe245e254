// Package config manages user-level settings stored at ~/.rulesync/config.yaml.
// It provides functions to load, read, and write configuration keys such as
// the default worker count and colored-output preference.
package config
