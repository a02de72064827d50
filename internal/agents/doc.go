// Package agents holds the static tables letsyolo works from: one Definition
// per supported coding agent (binary names, version flag, config file and the
// settings that mean "autonomy on") and the API keys those agents read from
// the environment. The tables are built once and never mutated.
package agents
