// Package secrets discovers, stores and loads the API keys agents need.
//
// Scanner looks for keys in a fixed precedence order: the process
// environment, then letsyolo's own secrets file, then common shell dotfiles.
// The first source that has a key wins. Store owns ~/.letsyolo/secrets.env,
// a file of `export NAME="value"` lines kept at mode 0600 inside a 0700
// directory, written so that a shell can source it and get back exactly the
// value that was saved.
package secrets
