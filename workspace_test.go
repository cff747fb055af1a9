package airtable_test

import (
	"context"
	"net/url"
	"strings"
	"testing"

	airtable "github.com/tablekit/airtable"
)

// fakeRequester records calls and plays back canned responses keyed by
// method+url prefix.
type fakeRequester struct {
	calls     []fakeCall
	responses map[string]map[string]any
	err       error
}

type fakeCall struct {
	method string
	url    string
	params url.Values
	body   any
}

func (f *fakeRequester) Do(ctx context.Context, method, rawurl string, params url.Values, body, out any) error {
	f.calls = append(f.calls, fakeCall{method: method, url: rawurl, params: params, body: body})
	if f.err != nil {
		return f.err
	}
	resp, ok := f.responses[method+" "+rawurl]
	if !ok || out == nil {
		return nil
	}
	*(out.(*map[string]any)) = resp
	return nil
}

func newTestClient(f *fakeRequester) *airtable.Client {
	return airtable.NewClient("pat_test", airtable.WithRequester(f))
}

func TestWorkspace_InfoCachesUnlessRefreshed(t *testing.T) {
	f := &fakeRequester{
		responses: map[string]map[string]any{
			"GET https://api.airtable.com/v0/meta/workspaces/wspA": {
				"id":      "wspA",
				"name":    "my first workspace",
				"baseIds": []any{"appX", "appY"},
			},
		},
	}
	ws := newTestClient(f).Workspace("wspA")

	ctx := context.Background()
	info, err := ws.Info(ctx)
	if err != nil {
		t.Fatalf("info: %v", err)
	}
	if info.Name != "my first workspace" || len(info.BaseIDs) != 2 {
		t.Fatalf("unexpected info: %+v", info)
	}
	if got := f.calls[0].params["include"]; len(got) != 2 {
		t.Fatalf("expected collaborators+inviteLinks includes, got %v", f.calls[0].params)
	}

	// second Info call is served from cache
	if _, err := ws.Info(ctx); err != nil {
		t.Fatalf("cached info: %v", err)
	}
	if len(f.calls) != 1 {
		t.Fatalf("expected 1 request, got %d", len(f.calls))
	}

	// RefreshInfo bypasses the cache
	if _, err := ws.RefreshInfo(ctx); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if len(f.calls) != 2 {
		t.Fatalf("expected refresh to re-fetch, got %d calls", len(f.calls))
	}

	name, err := ws.Name(ctx)
	if err != nil || name != "my first workspace" {
		t.Fatalf("name: %q err=%v", name, err)
	}
	bases, err := ws.Bases(ctx)
	if err != nil || len(bases) != 2 || bases[0] != "appX" {
		t.Fatalf("bases: %v err=%v", bases, err)
	}
}

func TestWorkspace_InfoValidatesPayload(t *testing.T) {
	ws := newTestClient(&fakeRequester{
		responses: map[string]map[string]any{
			// name is missing: the metadata payload does not conform
			"GET https://api.airtable.com/v0/meta/workspaces/wspA": {"id": "wspA"},
		},
	}).Workspace("wspA")

	_, err := ws.Info(context.Background())
	if err == nil || !airtable.IsShapeMismatch(err) {
		t.Fatalf("expected shape mismatch from malformed info payload, got %v", err)
	}
}

func TestWorkspace_CreateBase(t *testing.T) {
	f := &fakeRequester{
		responses: map[string]map[string]any{
			"POST https://api.airtable.com/v0/meta/bases": {"id": "appNew"},
		},
	}
	ws := newTestClient(f).Workspace("wspA")

	id, err := ws.CreateBase(context.Background(), "Base Name", []map[string]any{{"name": "Table 1", "fields": []any{}}})
	if err != nil || id != "appNew" {
		t.Fatalf("create base: id=%q err=%v", id, err)
	}
	body := f.calls[0].body.(map[string]any)
	if body["name"] != "Base Name" || body["workspaceId"] != "wspA" {
		t.Fatalf("unexpected payload: %v", body)
	}
}

func TestWorkspace_DeleteAndMoveBase(t *testing.T) {
	f := &fakeRequester{}
	ws := newTestClient(f).Workspace("wspA")
	ctx := context.Background()

	if err := ws.Delete(ctx); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if f.calls[0].method != "DELETE" || !strings.HasSuffix(f.calls[0].url, "/meta/workspaces/wspA") {
		t.Fatalf("unexpected delete call: %+v", f.calls[0])
	}

	if err := ws.MoveBase(ctx, "appX", "wspB", nil); err != nil {
		t.Fatalf("move: %v", err)
	}
	move := f.calls[1]
	if !strings.HasSuffix(move.url, "/meta/workspaces/wspA/moveBase") {
		t.Fatalf("unexpected move url: %s", move.url)
	}
	payload := move.body.(map[string]any)
	if payload["baseId"] != "appX" || payload["targetWorkspaceId"] != "wspB" {
		t.Fatalf("unexpected move payload: %v", payload)
	}
	if _, ok := payload["targetIndex"]; ok {
		t.Fatalf("targetIndex must be omitted when index is nil")
	}

	idx := 0
	if err := ws.MoveBase(ctx, "appX", "wspB", &idx); err != nil {
		t.Fatalf("move with index: %v", err)
	}
	payload = f.calls[2].body.(map[string]any)
	if got, ok := payload["targetIndex"]; !ok || got != 0 {
		t.Fatalf("expected targetIndex 0, got %v", payload)
	}
}
