// Package configstore reads and writes the agent configuration files letsyolo
// touches. Two shapes are supported: a nested JSON object and a flat TOML
// table. Writes are atomic (sibling temp file + rename) and keep the file's
// existing permission bits; unknown keys survive a read/modify/write cycle.
package configstore
