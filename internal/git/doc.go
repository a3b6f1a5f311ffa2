// Package git is the repository access layer for the version analysis.
//
// It wraps go-git behind a small read-only surface:
//   - opening worktrees (including .git files and linked worktrees)
//   - HEAD and branch resolution
//   - tag-to-commit resolution with annotated-tag peeling
//   - revision resolution for user-supplied commit arguments
//   - commit history walks in go-git's default log order
//
// The package never mutates the repository. Typed errors carry the
// offending path or ref name and unwrap to the go-git cause.
package git
