package tools_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/ternlabs/tern/tools"
)

// fakeProvider implements tools.Provider in memory.
type fakeProvider struct {
	defs    []tools.Definition
	listErr error

	callName  string
	callInput json.RawMessage
	result    tools.Result
	callErr   error
}

func (f *fakeProvider) ListTools(ctx context.Context) ([]tools.Definition, error) {
	return f.defs, f.listErr
}

func (f *fakeProvider) CallTool(ctx context.Context, name string, input json.RawMessage) (tools.Result, error) {
	f.callName = name
	f.callInput = input
	return f.result, f.callErr
}

func TestRemoteTools_BuildsOneToolPerDefinition(t *testing.T) {
	p := &fakeProvider{defs: []tools.Definition{
		{Name: "search", Description: "Search things"},
		{Name: "fetch", Description: "Fetch things"},
	}}

	ts, err := tools.RemoteTools(context.Background(), p)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(ts) != 2 {
		t.Fatalf("got %d tools, want 2", len(ts))
	}
	if ts[0].Definition().Name != "search" || ts[1].Definition().Name != "fetch" {
		t.Fatalf("unexpected definitions: %v, %v", ts[0].Definition(), ts[1].Definition())
	}
}

func TestRemoteTools_ListFailure(t *testing.T) {
	p := &fakeProvider{listErr: fmt.Errorf("connection refused")}
	if _, err := tools.RemoteTools(context.Background(), p); err == nil {
		t.Fatal("expected error from failing provider")
	}
}

func TestRemoteTool_Execute_ForwardsNameAndInput(t *testing.T) {
	p := &fakeProvider{result: tools.TextResult("remote says hi", false)}
	tool := tools.NewRemoteTool(p, tools.Definition{Name: "greet"})

	res, err := tool.Execute(context.Background(), json.RawMessage(`{"who":"tern"}`))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if p.callName != "greet" {
		t.Fatalf("provider called with %q, want greet", p.callName)
	}
	if string(p.callInput) != `{"who":"tern"}` {
		t.Fatalf("provider input %q", string(p.callInput))
	}
	if res.IsError || flatten(res) != "remote says hi" {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestRemoteTool_Execute_ProviderErrorFlagPropagates(t *testing.T) {
	p := &fakeProvider{result: tools.TextResult("tool exploded", true)}
	tool := tools.NewRemoteTool(p, tools.Definition{Name: "explode"})

	res, err := tool.Execute(context.Background(), nil)
	if err != nil {
		t.Fatalf("provider-flagged failures are results, not errors: %v", err)
	}
	if !res.IsError {
		t.Fatal("expected IsError=true")
	}
}

func TestRemoteTool_Execute_TransportErrorIsError(t *testing.T) {
	p := &fakeProvider{callErr: fmt.Errorf("session closed")}
	tool := tools.NewRemoteTool(p, tools.Definition{Name: "gone"})

	if _, err := tool.Execute(context.Background(), nil); err == nil {
		t.Fatal("expected transport error to surface as an error")
	}
}
