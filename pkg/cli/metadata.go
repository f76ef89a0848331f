package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/barrage/pkg/domain/model"
	"github.com/secmon-lab/barrage/pkg/utils/logging"
)

// DetectGitMetadata fills empty fields of meta from the git repository containing dir.
// A directory outside of any repository leaves meta untouched.
func DetectGitMetadata(ctx context.Context, dir string, meta *model.GitMetadata) error {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			logging.From(ctx).Debug("not a git repository, skip metadata detection", "dir", dir)
			return nil
		}
		return goerr.Wrap(err, "failed to open git repository", goerr.V("dir", dir))
	}

	if meta.CommitID == "" || meta.Branch == "" {
		head, err := repo.Head()
		switch {
		case errors.Is(err, plumbing.ErrReferenceNotFound):
			// empty repository
		case err != nil:
			return goerr.Wrap(err, "failed to get HEAD", goerr.V("dir", dir))
		default:
			if meta.CommitID == "" {
				meta.CommitID = head.Hash().String()
			}
			if meta.Branch == "" && head.Name().IsBranch() {
				meta.Branch = head.Name().Short()
			}
		}
	}

	if meta.RepoURL == "" {
		remote, err := repo.Remote("origin")
		switch {
		case errors.Is(err, git.ErrRemoteNotFound):
		case err != nil:
			return goerr.Wrap(err, "failed to get remote origin", goerr.V("dir", dir))
		case len(remote.Config().URLs) > 0:
			meta.RepoURL = remote.Config().URLs[0]
		}
	}

	return nil
}

// RepoNameFromURL extracts "owner/repo" from a git remote URL such as
// git@github.com:owner/repo.git or https://gitlab.com/group/repo.git.
// It returns "" when the URL has no such path.
func RepoNameFromURL(url string) string {
	path := url
	if i := strings.Index(path, "://"); i >= 0 {
		path = path[i+3:]
		if j := strings.Index(path, "/"); j >= 0 {
			path = path[j+1:]
		} else {
			return ""
		}
	} else if i := strings.Index(path, ":"); i >= 0 {
		// scp-like syntax
		path = path[i+1:]
	} else {
		return ""
	}

	path = strings.TrimSuffix(strings.Trim(path, "/"), ".git")
	parts := strings.Split(path, "/")
	if len(parts) < 2 || parts[len(parts)-2] == "" || parts[len(parts)-1] == "" {
		return ""
	}
	return parts[len(parts)-2] + "/" + parts[len(parts)-1]
}
