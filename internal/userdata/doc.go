// Package userdata manages the ~/.letsyolo/ directory: path resolution with
// the LETSYOLO_HOME override, first-run initialization with owner-only
// permissions, and the doctor checks that verify (and optionally repair) the
// secrets file, the shell hook and each agent's config file.
package userdata
