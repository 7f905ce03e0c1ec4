package contents

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/cbout22/single-commit/internal/config"
)

// File is the subset of a contents API file object that is used here.
type File struct {
	Type     string `json:"type"`
	Path     string `json:"path"`
	SHA      string `json:"sha"`
	Size     int64  `json:"size"`
	Encoding string `json:"encoding"`
	Content  string `json:"content"` // base64, wrapped at 60 columns
}

// Identity is a commit author or committer.
type Identity struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// PutFileRequest is the body of a create-or-update call. An empty SHA
// creates the file; a non-empty one updates it at that blob revision.
type PutFileRequest struct {
	Message   string   `json:"message"`
	Committer Identity `json:"committer"`
	Content   string   `json:"content"`
	SHA       string   `json:"sha,omitempty"`
	Branch    string   `json:"branch,omitempty"`
}

// PutFileResult describes the outcome of a successful write.
type PutFileResult struct {
	Status  int  `json:"-"`
	Content File `json:"content"`
	Commit  struct {
		SHA     string `json:"sha"`
		HTMLURL string `json:"html_url"`
	} `json:"commit"`
}

// ErrIsDirectory is returned when the path names a directory upstream.
var ErrIsDirectory = errors.New("path is a directory")

// FilePath builds /repos/{owner}/{repo}/contents/{path}, escaping each segment.
func FilePath(repo config.Repository, path string) string {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return fmt.Sprintf("/repos/%s/%s/contents/%s",
		url.PathEscape(repo.Owner), url.PathEscape(repo.Name), strings.Join(segments, "/"))
}

// GetFile fetches file metadata and content. ref selects a branch, tag or
// commit; empty means the default branch. Errors are returned unwrapped so
// callers can inspect the status with StatusOf.
func GetFile(ctx context.Context, api Requester, repo config.Repository, path, ref string) (*File, error) {
	p := FilePath(repo, path)
	if ref != "" {
		p += "?ref=" + url.QueryEscape(ref)
	}

	resp, err := api.Request(ctx, http.MethodGet, p, nil)
	if err != nil {
		return nil, err
	}

	if trimmed := strings.TrimSpace(string(resp.Data)); strings.HasPrefix(trimmed, "[") {
		return nil, fmt.Errorf("%s: %w", path, ErrIsDirectory)
	}

	var f File
	if err := json.Unmarshal(resp.Data, &f); err != nil {
		return nil, fmt.Errorf("decoding contents response for %s: %w", path, err)
	}
	if f.Type != "" && f.Type != "file" {
		return nil, fmt.Errorf("%s: unexpected content type %q", path, f.Type)
	}
	return &f, nil
}

// PutFile creates or updates a file.
func PutFile(ctx context.Context, api Requester, repo config.Repository, path string, req *PutFileRequest) (*PutFileResult, error) {
	resp, err := api.Request(ctx, http.MethodPut, FilePath(repo, path), req)
	if err != nil {
		return nil, err
	}

	result := &PutFileResult{Status: resp.Status}
	if len(resp.Data) > 0 {
		if err := json.Unmarshal(resp.Data, result); err != nil {
			return nil, fmt.Errorf("decoding commit response for %s: %w", path, err)
		}
	}
	return result, nil
}
