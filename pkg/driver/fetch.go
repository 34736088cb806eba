package driver

import (
	"fmt"
	"os"
	"strings"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// ScriptTarget is a resolved `mint run` argument: either a local path or
// a git remote reference of the form `<git-url>#<ref>:<path-in-repo>`.
type ScriptTarget struct {
	URL  string
	Ref  string // branch, tag, or commit; empty means the remote's default
	Path string
}

// ParseScriptTarget recognises the `<git-url>#<ref>:<path-in-repo>` form;
// anything else is treated as a local filesystem path and returned with
// URL == "".
func ParseScriptTarget(arg string) ScriptTarget {
	if !strings.Contains(arg, "#") {
		return ScriptTarget{Path: arg}
	}
	hashIdx := strings.Index(arg, "#")
	url := arg[:hashIdx]
	rest := arg[hashIdx+1:]
	colonIdx := strings.Index(rest, ":")
	if colonIdx < 0 {
		return ScriptTarget{URL: url, Ref: rest}
	}
	return ScriptTarget{URL: url, Ref: rest[:colonIdx], Path: rest[colonIdx+1:]}
}

// FetchScript clones target.URL into a temporary directory at the
// requested ref, reads target.Path out of the checkout, and returns its
// contents. This is strictly a CLI convenience for
// `mint run <git-url>#<ref>:<path>`; there is no package dependency
// tree to resolve, just a single runnable script to retrieve.
func FetchScript(target ScriptTarget) (string, error) {
	if target.URL == "" {
		return "", fmt.Errorf("fetch: not a git target")
	}
	tmpDir, err := os.MkdirTemp("", "mint-fetch-*")
	if err != nil {
		return "", err
	}
	defer os.RemoveAll(tmpDir)

	repo, err := git.PlainClone(tmpDir, false, &git.CloneOptions{
		URL:   target.URL,
		Depth: 0,
	})
	if err != nil {
		return "", fmt.Errorf("git clone %s: %w", target.URL, err)
	}

	if target.Ref != "" {
		hash, err := repo.ResolveRevision(plumbing.Revision(target.Ref))
		if err != nil {
			return "", fmt.Errorf("resolve revision %s: %w", target.Ref, err)
		}
		worktree, err := repo.Worktree()
		if err != nil {
			return "", err
		}
		if err := worktree.Checkout(&git.CheckoutOptions{Hash: *hash, Force: true}); err != nil {
			return "", fmt.Errorf("git checkout %s: %w", target.Ref, err)
		}
	}

	data, err := os.ReadFile(tmpDir + "/" + target.Path)
	if err != nil {
		return "", fmt.Errorf("read %s from %s: %w", target.Path, target.URL, err)
	}
	return string(data), nil
}
