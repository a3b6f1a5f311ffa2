// Package analyze derives the next semantic version for a repository from
// its commit history.
//
// Each commit message is classified against the Conventional Commits
// convention (feat/fix prefixes, "!:" breaking marker) into a bump
// category. Categories accumulate over a reverse-chronological history
// walk that stops early once a breaking change is seen, and a calculator
// folds the accumulated flags with the previous version into the next
// one. Builds on branches other than main/master get a prerelease label
// derived from the previous version's label.
//
// Repository access is abstracted behind the Source interface; the engine
// itself never touches the version-control store.
package analyze
