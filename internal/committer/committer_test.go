package committer

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/google/go-github/v72/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cbout22/single-commit/internal/config"
	"github.com/cbout22/single-commit/internal/contents"
	"github.com/cbout22/single-commit/internal/workspace"
)

var testRepo = config.Repository{Owner: "octo-org", Name: "hello-world"}

// fakeAPI is an in-memory contents API for one repository.
type fakeAPI struct {
	files   map[string]contents.File // keyed by request path
	putErr  int                      // status to fail PUT with, if non-zero
	getErr  int                      // status to fail GET with, if non-zero
	gets    int
	puts    []contents.PutFileRequest
	nextSHA int
}

var _ contents.Requester = (*fakeAPI)(nil)

func newFakeAPI() *fakeAPI {
	return &fakeAPI{files: make(map[string]contents.File)}
}

func (f *fakeAPI) seed(path, content string) string {
	f.nextSHA++
	sha := fmt.Sprintf("sha%d", f.nextSHA)
	f.files[contents.FilePath(testRepo, path)] = contents.File{
		Type:     "file",
		Path:     path,
		SHA:      sha,
		Encoding: "base64",
		Content:  base64.StdEncoding.EncodeToString([]byte(content)) + "\n",
	}
	return sha
}

func (f *fakeAPI) Request(_ context.Context, method, path string, body any) (*contents.Response, error) {
	key, _, _ := strings.Cut(path, "?")
	switch method {
	case http.MethodGet:
		f.gets++
		if f.getErr != 0 {
			return nil, apiError(method, path, f.getErr, "")
		}
		file, ok := f.files[key]
		if !ok {
			return nil, apiError(method, path, http.StatusNotFound, "Not Found")
		}
		data, _ := json.Marshal(file)
		return &contents.Response{Status: http.StatusOK, Data: data}, nil

	case http.MethodPut:
		req := *body.(*contents.PutFileRequest)
		f.puts = append(f.puts, req)
		if f.putErr != 0 {
			return nil, apiError(method, path, f.putErr, "")
		}
		existing, ok := f.files[key]
		if ok && existing.SHA != req.SHA {
			return nil, apiError(method, path, http.StatusConflict, "sha mismatch")
		}
		status := http.StatusCreated
		if ok {
			status = http.StatusOK
		}
		f.nextSHA++
		sha := fmt.Sprintf("sha%d", f.nextSHA)
		f.files[key] = contents.File{Type: "file", SHA: sha, Encoding: "base64", Content: req.Content}
		data, _ := json.Marshal(map[string]any{
			"content": map[string]string{"sha": sha},
			"commit":  map[string]string{"sha": "commit-" + sha, "html_url": "https://github.com/octo-org/hello-world/commit/" + sha},
		})
		return &contents.Response{Status: status, Data: data}, nil
	}
	return nil, fmt.Errorf("unexpected method %s", method)
}

// apiError builds the error go-github returns for a failed call.
func apiError(method, path string, status int, message string) error {
	return &github.ErrorResponse{
		Response: &http.Response{
			StatusCode: status,
			Request:    &http.Request{Method: method, URL: &url.URL{Path: path}},
		},
		Message: message,
	}
}

func newWorkspace(t *testing.T, files map[string]string) *workspace.Workspace {
	t.Helper()
	fs := memfs.New()
	for name, content := range files {
		require.NoError(t, util.WriteFile(fs, name, []byte(content), 0644))
	}
	return workspace.NewFromFS(fs)
}

func input(path string) Input {
	return Input{
		Path:           path,
		Message:        "chore: update " + path,
		CommitterName:  "github-actions[bot]",
		CommitterEmail: "41898282+github-actions[bot]@users.noreply.github.com",
	}
}

func TestProbe_Existing(t *testing.T) {
	t.Parallel()
	api := newFakeAPI()
	sha := api.seed("docs/a.txt", "hello")

	c := New(api, testRepo, newWorkspace(t, nil))
	got, err := c.Probe(context.Background(), "docs/a.txt")
	require.NoError(t, err)
	assert.Equal(t, FileProbeResult{
		RemoteRevisionID: sha,
		ContentDigest:    "5d41402abc4b2a76b9719d911017c592",
	}, got)
	assert.True(t, got.Exists())
}

func TestProbe_NotFoundIsEmpty(t *testing.T) {
	t.Parallel()
	c := New(newFakeAPI(), testRepo, newWorkspace(t, nil))

	got, err := c.Probe(context.Background(), "missing.txt")
	require.NoError(t, err)
	assert.Equal(t, FileProbeResult{}, got)
	assert.False(t, got.Exists())
}

func TestProbe_OtherErrorsPropagate(t *testing.T) {
	t.Parallel()
	api := newFakeAPI()
	api.getErr = http.StatusForbidden

	_, err := New(api, testRepo, newWorkspace(t, nil)).Probe(context.Background(), "a.txt")
	var errResp *github.ErrorResponse
	require.ErrorAs(t, err, &errResp)
	assert.Equal(t, http.StatusForbidden, contents.StatusOf(err))
}

func TestProbe_TooLarge(t *testing.T) {
	t.Parallel()
	api := newFakeAPI()
	api.files[contents.FilePath(testRepo, "big.bin")] = contents.File{Type: "file", SHA: "bigsha", Encoding: "none"}

	got, err := New(api, testRepo, newWorkspace(t, nil)).Probe(context.Background(), "big.bin")
	require.NoError(t, err)
	assert.Equal(t, FileProbeResult{RemoteRevisionID: "bigsha"}, got)
}

func TestProbe_CorruptUpstreamContent(t *testing.T) {
	t.Parallel()
	api := newFakeAPI()
	api.files[contents.FilePath(testRepo, "a.txt")] = contents.File{Type: "file", SHA: "x", Encoding: "base64", Content: "***"}

	_, err := New(api, testRepo, newWorkspace(t, nil)).Probe(context.Background(), "a.txt")
	assert.Error(t, err)
}

func TestPlan(t *testing.T) {
	t.Parallel()
	ws := newWorkspace(t, map[string]string{"a.txt": "hello"})
	c := New(newFakeAPI(), testRepo, ws, WithBranch("release"))

	cases := []struct {
		name    string
		probe   FileProbeResult
		action  Action
		wantSHA string
	}{
		{"absent upstream", FileProbeResult{}, ActionCreate, ""},
		{"changed upstream", FileProbeResult{RemoteRevisionID: "sha1", ContentDigest: "different"}, ActionUpdate, "sha1"},
		{"identical upstream", FileProbeResult{RemoteRevisionID: "sha1", ContentDigest: "5d41402abc4b2a76b9719d911017c592"}, ActionNone, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			plan, err := c.Plan(tc.probe, input("a.txt"))
			require.NoError(t, err)
			assert.Equal(t, tc.action, plan.Action)
			assert.Equal(t, "5d41402abc4b2a76b9719d911017c592", plan.LocalDigest)
			if tc.action == ActionNone {
				assert.Nil(t, plan.Request)
				return
			}
			require.NotNil(t, plan.Request)
			assert.Equal(t, tc.wantSHA, plan.Request.RemoteRevisionID)
			assert.Equal(t, "aGVsbG8=", plan.Request.Base64Content)
			assert.Equal(t, "release", plan.Request.Branch)
		})
	}
}

func TestPlan_MissingLocalFile(t *testing.T) {
	t.Parallel()
	c := New(newFakeAPI(), testRepo, newWorkspace(t, nil))
	_, err := c.Plan(FileProbeResult{}, input("missing.txt"))
	assert.Error(t, err)
}

func TestRun_CreatePath(t *testing.T) {
	t.Parallel()
	api := newFakeAPI()
	c := New(api, testRepo, newWorkspace(t, map[string]string{"a.txt": "hello"}))

	res, err := c.Run(context.Background(), input("a.txt"))
	require.NoError(t, err)
	assert.Equal(t, StatusCreated, res.Status)
	assert.NotEmpty(t, res.CommitSHA)

	require.Len(t, api.puts, 1)
	put := api.puts[0]
	assert.Empty(t, put.SHA, "create must not send a revision token")
	assert.Equal(t, "aGVsbG8=", put.Content)
	assert.Equal(t, "chore: update a.txt", put.Message)
	assert.Equal(t, contents.Identity{
		Name:  "github-actions[bot]",
		Email: "41898282+github-actions[bot]@users.noreply.github.com",
	}, put.Committer)
}

func TestRun_UpdatePath(t *testing.T) {
	t.Parallel()
	api := newFakeAPI()
	sha := api.seed("a.txt", "old content")
	c := New(api, testRepo, newWorkspace(t, map[string]string{"a.txt": "new content"}))

	res, err := c.Run(context.Background(), input("a.txt"))
	require.NoError(t, err)
	assert.Equal(t, StatusUpdated, res.Status)

	require.Len(t, api.puts, 1)
	assert.Equal(t, sha, api.puts[0].SHA)
}

func TestRun_NoOpPath(t *testing.T) {
	t.Parallel()
	api := newFakeAPI()
	api.seed("a.txt", "same")
	c := New(api, testRepo, newWorkspace(t, map[string]string{"a.txt": "same"}))

	res, err := c.Run(context.Background(), input("a.txt"))
	require.NoError(t, err)
	assert.Equal(t, StatusUnchanged, res.Status)
	assert.Empty(t, res.CommitSHA)
	assert.Empty(t, api.puts, "no write call may be issued")
}

func TestRun_Idempotent(t *testing.T) {
	t.Parallel()
	api := newFakeAPI()
	c := New(api, testRepo, newWorkspace(t, map[string]string{"a.txt": "hello"}))

	first, err := c.Run(context.Background(), input("a.txt"))
	require.NoError(t, err)
	assert.Equal(t, StatusCreated, first.Status)

	second, err := c.Run(context.Background(), input("a.txt"))
	require.NoError(t, err)
	assert.Equal(t, StatusUnchanged, second.Status)
	assert.Len(t, api.puts, 1)
	assert.Equal(t, 2, api.gets)
}

func TestRun_WriteNotFoundIsFatal(t *testing.T) {
	t.Parallel()
	api := newFakeAPI()
	api.seed("docs/a.txt", "old")
	api.putErr = http.StatusNotFound
	c := New(api, testRepo, newWorkspace(t, map[string]string{"docs/a.txt": "new"}))

	_, err := c.Run(context.Background(), input("docs/a.txt"))
	require.ErrorIs(t, err, ErrPathNotFound)
	assert.EqualError(t, err, "docs/a.txt does not exist")
}

func TestRun_Write422(t *testing.T) {
	t.Parallel()
	api := newFakeAPI()
	api.putErr = http.StatusUnprocessableEntity
	c := New(api, testRepo, newWorkspace(t, map[string]string{"a.txt": "new"}))

	_, err := c.Run(context.Background(), input("a.txt"))
	require.ErrorIs(t, err, ErrValidationOrRateLimit)
	assert.EqualError(t, err, "validation failed or rate limit exceeded")
}

func TestRun_OtherWriteErrorsPropagate(t *testing.T) {
	t.Parallel()
	api := newFakeAPI()
	api.putErr = http.StatusConflict
	c := New(api, testRepo, newWorkspace(t, map[string]string{"a.txt": "new"}))

	_, err := c.Run(context.Background(), input("a.txt"))
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrPathNotFound))
	assert.False(t, errors.Is(err, ErrValidationOrRateLimit))
	assert.Equal(t, http.StatusConflict, contents.StatusOf(err))
}

func TestRun_ProbeErrorStopsBeforeWrite(t *testing.T) {
	t.Parallel()
	api := newFakeAPI()
	api.getErr = http.StatusInternalServerError
	c := New(api, testRepo, newWorkspace(t, map[string]string{"a.txt": "new"}))

	_, err := c.Run(context.Background(), input("a.txt"))
	require.Error(t, err)
	assert.Empty(t, api.puts)
}
