package airtable

import (
	"context"
	"net/http"
	"net/url"
	"sync"
)

// WorkspaceInfo is the typed view of the workspace metadata payload.
type WorkspaceInfo struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	CreatedTime Timestamp `json:"createdTime,omitempty"`
	BaseIDs     []string  `json:"baseIds,omitempty"`
}

// Workspace wraps one Airtable workspace, which contains a number of bases
// and its own set of collaborators. Most workspace functionality requires an
// Enterprise billing plan on the service side; this wrapper surfaces the
// API's error response unchanged when a plan does not allow a call.
type Workspace struct {
	client *Client
	id     string

	mu   sync.Mutex
	info *WorkspaceInfo
}

// ID returns the workspace id.
func (w *Workspace) ID() string { return w.id }

// URL returns the workspace's metadata endpoint.
func (w *Workspace) URL() string {
	return w.client.BuildURL("meta", "workspaces", w.id)
}

// CreateBase creates a base in the workspace and returns its id. Each table
// must conform to the service's table model.
func (w *Workspace) CreateBase(ctx context.Context, name string, tables []map[string]any) (string, error) {
	payload := map[string]any{
		"name":        name,
		"workspaceId": w.id,
		"tables":      tables,
	}
	var out map[string]any
	if err := w.client.req.Do(ctx, http.MethodPost, w.client.BuildURL("meta", "bases"), nil, payload, &out); err != nil {
		return "", err
	}
	id, ok := out["id"].(string)
	if !ok {
		return "", Issues{Issue{
			Path:    "/id",
			Code:    CodeRequired,
			Message: "create base response carried no base id",
			Params:  map[string]any{"keys": mapKeys(out)},
		}}
	}
	return id, nil
}

// Info retrieves basic information, collaborators, and invites for the
// workspace, caching the result on the wrapper. Use RefreshInfo to bypass
// the cache.
func (w *Workspace) Info(ctx context.Context) (*WorkspaceInfo, error) {
	w.mu.Lock()
	cached := w.info
	w.mu.Unlock()
	if cached != nil {
		return cached, nil
	}
	return w.RefreshInfo(ctx)
}

// RefreshInfo fetches workspace metadata from the service, replacing any
// cached copy.
func (w *Workspace) RefreshInfo(ctx context.Context) (*WorkspaceInfo, error) {
	params := url.Values{"include": []string{"collaborators", "inviteLinks"}}
	var out map[string]any
	if err := w.client.req.Do(ctx, http.MethodGet, w.URL(), params, nil, &out); err != nil {
		return nil, err
	}
	m, err := w.client.reg.ValidateOne(WorkspaceInfoDict, out)
	if err != nil {
		return nil, err
	}
	info := &WorkspaceInfo{}
	if err := decodeInto(m, info); err != nil {
		return nil, err
	}
	w.mu.Lock()
	w.info = info
	w.mu.Unlock()
	return info, nil
}

// Name returns the workspace name, fetching info if not cached.
func (w *Workspace) Name(ctx context.Context) (string, error) {
	info, err := w.Info(ctx)
	if err != nil {
		return "", err
	}
	return info.Name, nil
}

// Bases returns the ids of all bases within the workspace.
func (w *Workspace) Bases(ctx context.Context) ([]string, error) {
	info, err := w.Info(ctx)
	if err != nil {
		return nil, err
	}
	return info.BaseIDs, nil
}

// Delete deletes the workspace.
func (w *Workspace) Delete(ctx context.Context) error {
	return w.client.req.Do(ctx, http.MethodDelete, w.URL(), nil, nil, nil)
}

// MoveBase moves the given base into the target workspace. When index is
// non-nil the base is inserted at that position in the target's base list;
// otherwise the service appends it.
func (w *Workspace) MoveBase(ctx context.Context, baseID, targetWorkspaceID string, index *int) error {
	payload := map[string]any{
		"baseId":            baseID,
		"targetWorkspaceId": targetWorkspaceID,
	}
	if index != nil {
		payload["targetIndex"] = *index
	}
	return w.client.req.Do(ctx, http.MethodPost, w.URL()+"/moveBase", nil, payload, nil)
}
