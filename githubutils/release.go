package githubutils

import (
	"context"
	"fmt"
	"os"

	"github.com/google/go-github/v32/github"
	"github.com/rotisserie/eris"
	"golang.org/x/oauth2"
)

const (
	GITHUB_TOKEN = "GITHUB_TOKEN"
)

func GetGithubToken() (string, error) {
	token, found := os.LookupEnv(GITHUB_TOKEN)
	if !found {
		return "", eris.Errorf("Could not find %s in environment.", GITHUB_TOKEN)
	}
	return token, nil
}

func GetClient(ctx context.Context) (*github.Client, error) {
	token, err := GetGithubToken()
	if err != nil {
		return nil, err
	}
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(ctx, ts)
	return github.NewClient(tc), nil
}

// CreateRelease publishes a release for an already-pushed tag. The release
// name is the tag itself and the body is the changelog section for the
// version, if the caller has one.
func CreateRelease(ctx context.Context, client *github.Client, owner, repo, tag, body string) (*github.RepositoryRelease, error) {
	release, _, err := client.Repositories.CreateRelease(ctx, owner, repo, &github.RepositoryRelease{
		TagName: github.String(tag),
		Name:    github.String(tag),
		Body:    github.String(body),
	})
	if err != nil {
		return nil, eris.Wrapf(err, "failed to create release %s in %s/%s", tag, owner, repo)
	}
	return release, nil
}

// ReleasePageUrl is the human-facing page for a tagged release.
func ReleasePageUrl(owner, repo, tag string) string {
	return fmt.Sprintf("https://github.com/%s/%s/releases/tag/%s", owner, repo, tag)
}

// ReleasesUrl is the repository's release listing.
func ReleasesUrl(owner, repo string) string {
	return fmt.Sprintf("https://github.com/%s/%s/releases", owner, repo)
}
