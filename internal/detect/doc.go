// Package detect finds agent executables and probes them for a version.
//
// Locator produces the ordered candidate paths for a binary name: the bare
// name first (whatever PATH resolves), then well-known global prefixes, then
// every Node version managed by nvm, newest first. Prober runs each candidate
// with the agent's version flag under a timeout and reports the first one that
// answers. Nothing is cached; every call looks again.
package detect
