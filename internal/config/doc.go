// Package config manages user-level settings stored at ~/.letsyolo/config.yaml
// with LETSYOLO_* environment overrides: the probe timeout, log level, extra
// binary search directories and color output.
package config
