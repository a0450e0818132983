// Package pkgmgr provides one adapter per package-manager ecosystem behind
// a uniform Client contract: Homebrew casks and formulae, the Mac App Store
// (mas), apt, dnf, winget, and snap.
//
// Adapters translate the contract's four operations into each ecosystem's
// actual command syntax. Side effects are confined to spawning exactly one
// external process per call through execx.Runner, which also makes every
// adapter fully testable against execx.Fake.
package pkgmgr
