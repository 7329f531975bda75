package store

import (
	"context"
	"fmt"
	"net/http"

	"github.com/anggiemonteroariza-afk/App-Deudores-ED/internal/config"

	"github.com/google/go-github/v39/github"
	"golang.org/x/oauth2"
)

// Mirror pushes the persisted spreadsheet into a GitHub repository through
// the contents API after each successful local save. Updates are keyed by
// the file's current blob SHA, so a mirror that drifted (edited directly on
// GitHub) makes the push fail rather than silently overwrite.
type Mirror struct {
	client *github.Client
	cfg    config.GitHubConfig
}

func NewMirror(cfg config.GitHubConfig) *Mirror {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token})
	tc := oauth2.NewClient(context.Background(), ts)
	return &Mirror{
		client: github.NewClient(tc),
		cfg:    cfg,
	}
}

// Push uploads content to the configured repository path, creating the file
// on first push and updating it afterwards. One attempt, no retries: a
// failure surfaces as a persist failure and the caller decides when to retry.
func (m *Mirror) Push(ctx context.Context, content []byte, message string) error {
	getOpts := &github.RepositoryContentGetOptions{Ref: m.cfg.Branch}
	current, _, resp, err := m.client.Repositories.GetContents(
		ctx, m.cfg.Owner, m.cfg.Repo, m.cfg.Path, getOpts)

	var sha *string
	switch {
	case err == nil && current != nil:
		sha = current.SHA
	case resp != nil && resp.StatusCode == http.StatusNotFound:
		// first push, no SHA
	default:
		return fmt.Errorf("mirror: get %s: %w", m.cfg.Path, err)
	}

	opts := &github.RepositoryContentFileOptions{
		Message: github.String(message),
		Content: content,
		Branch:  github.String(m.cfg.Branch),
		SHA:     sha,
	}
	if sha != nil {
		_, _, err = m.client.Repositories.UpdateFile(
			ctx, m.cfg.Owner, m.cfg.Repo, m.cfg.Path, opts)
	} else {
		_, _, err = m.client.Repositories.CreateFile(
			ctx, m.cfg.Owner, m.cfg.Repo, m.cfg.Path, opts)
	}
	if err != nil {
		return fmt.Errorf("mirror: push %s: %w", m.cfg.Path, err)
	}
	return nil
}
