package authorizer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/aws/aws-lambda-go/events"

	"github.com/vitalsync/fhir-gateway/internal/idp"
	"github.com/vitalsync/fhir-gateway/internal/introspect"
)

const methodArn = "arn:aws:execute-api:us-east-1:123:abc/prod/GET/foo"

type fakeSecrets struct {
	mu    sync.Mutex
	raw   []byte
	err   error
	calls int
}

func (f *fakeSecrets) GetSecret(_ context.Context, _ string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.raw, f.err
}

// newAuthorizer builds a pipeline whose introspection endpoint is the given
// httptest handler and whose secret store returns configJSON.
func newAuthorizer(t *testing.T, configJSON string, handler http.HandlerFunc) (*Authorizer, *fakeSecrets) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	// Point the issuer at the test server unless the config sets its own.
	if configJSON == "" {
		configJSON = `{"client_id":"cid","client_secret":"cs","issuer":"` + srv.URL + `"}`
	}

	store := &fakeSecrets{raw: []byte(configJSON)}
	resolver := idp.NewResolver(store, "arn:secret:idp")
	return New(resolver, introspect.NewClient()), store
}

func respond(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}
}

func effect(resp events.APIGatewayCustomAuthorizerResponse) string {
	return resp.PolicyDocument.Statement[0].Effect
}

func resource(resp events.APIGatewayCustomAuthorizerResponse) string {
	return resp.PolicyDocument.Statement[0].Resource[0]
}

func TestAuthorize_MissingOrMalformedToken(t *testing.T) {
	t.Parallel()

	a, _ := newAuthorizer(t, "", respond(`{"active":true}`))

	headers := []string{
		"",
		"Bearer ",
		"Bearer not-a-jwt",
		"Bearer a.b",
		"Basic dXNlcjpwYXNz",
		"garbage",
	}
	for _, h := range headers {
		resp := a.Authorize(context.Background(), Request{AuthorizationToken: h, MethodArn: methodArn})
		if resp.PrincipalID != PrincipalAnonymous {
			t.Fatalf("header %q: principal = %q, want anonymous", h, resp.PrincipalID)
		}
		if effect(resp) != "Deny" {
			t.Fatalf("header %q: effect = %q, want Deny", h, effect(resp))
		}
		if resource(resp) != methodArn {
			t.Fatalf("header %q: deny resource = %q, want exact arn", h, resource(resp))
		}
	}
}

func TestAuthorize_SecretIDNotConfigured(t *testing.T) {
	t.Parallel()

	resolver := idp.NewResolver(&fakeSecrets{}, "")
	a := New(resolver, introspect.NewClient())

	resp := a.Authorize(context.Background(), Request{AuthorizationToken: "Bearer a.b.c", MethodArn: methodArn})
	if resp.PrincipalID != PrincipalSystem || effect(resp) != "Deny" {
		t.Fatalf("principal/effect = %q/%q, want system/Deny", resp.PrincipalID, effect(resp))
	}
}

func TestAuthorize_SecretStoreFailure(t *testing.T) {
	t.Parallel()

	store := &fakeSecrets{err: context.DeadlineExceeded}
	a := New(idp.NewResolver(store, "arn:secret:idp"), introspect.NewClient())

	resp := a.Authorize(context.Background(), Request{AuthorizationToken: "Bearer a.b.c", MethodArn: methodArn})
	if resp.PrincipalID != PrincipalError || effect(resp) != "Deny" {
		t.Fatalf("principal/effect = %q/%q, want error/Deny", resp.PrincipalID, effect(resp))
	}
}

func TestAuthorize_IncompleteConfig(t *testing.T) {
	t.Parallel()

	a, _ := newAuthorizer(t, `{"client_id":"cid"}`, respond(`{"active":true}`))

	resp := a.Authorize(context.Background(), Request{AuthorizationToken: "Bearer a.b.c", MethodArn: methodArn})
	if resp.PrincipalID != PrincipalSystem || effect(resp) != "Deny" {
		t.Fatalf("principal/effect = %q/%q, want system/Deny", resp.PrincipalID, effect(resp))
	}
}

func TestAuthorize_IntrospectionFailure(t *testing.T) {
	t.Parallel()

	a, _ := newAuthorizer(t, "", func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	})

	resp := a.Authorize(context.Background(), Request{AuthorizationToken: "Bearer a.b.c", MethodArn: methodArn})
	if resp.PrincipalID != PrincipalError || effect(resp) != "Deny" {
		t.Fatalf("principal/effect = %q/%q, want error/Deny", resp.PrincipalID, effect(resp))
	}
}

func TestAuthorize_InactiveToken(t *testing.T) {
	t.Parallel()

	a, _ := newAuthorizer(t, "", respond(`{"active":false}`))

	resp := a.Authorize(context.Background(), Request{AuthorizationToken: "Bearer a.b.c", MethodArn: methodArn})
	if resp.PrincipalID != PrincipalInvalidToken || effect(resp) != "Deny" {
		t.Fatalf("principal/effect = %q/%q, want invalid_token/Deny", resp.PrincipalID, effect(resp))
	}
	if resp.Context["error"] != "token is not active" {
		t.Fatalf("context error = %v", resp.Context["error"])
	}
}

func TestAuthorize_AudienceMismatch(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(respond(`{"active":true,"sub":"u1","aud":"api2"}`))
	t.Cleanup(srv.Close)
	cfg := `{"client_id":"cid","client_secret":"cs","issuer":"` + srv.URL + `","audience":"api1"}`

	a := New(idp.NewResolver(&fakeSecrets{raw: []byte(cfg)}, "arn:secret:idp"), introspect.NewClient())
	resp := a.Authorize(context.Background(), Request{AuthorizationToken: "Bearer a.b.c", MethodArn: methodArn})
	if resp.PrincipalID != PrincipalInvalidToken || effect(resp) != "Deny" {
		t.Fatalf("principal/effect = %q/%q, want invalid_token/Deny", resp.PrincipalID, effect(resp))
	}
}

func TestAuthorize_MissingScope(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(respond(`{"active":true,"sub":"u1","scope":"read"}`))
	t.Cleanup(srv.Close)
	cfg := `{"client_id":"cid","client_secret":"cs","issuer":"` + srv.URL + `","required_scopes":["read","write"]}`

	a := New(idp.NewResolver(&fakeSecrets{raw: []byte(cfg)}, "arn:secret:idp"), introspect.NewClient())
	resp := a.Authorize(context.Background(), Request{AuthorizationToken: "Bearer a.b.c", MethodArn: methodArn})
	if resp.PrincipalID != PrincipalInvalidToken || effect(resp) != "Deny" {
		t.Fatalf("principal/effect = %q/%q, want invalid_token/Deny", resp.PrincipalID, effect(resp))
	}
}

func TestAuthorize_AllowPath(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(respond(
		`{"active":true,"sub":"user-7","aud":["api1"],"scope":"read write","client_id":"app-1","token_type":"Bearer"}`,
	))
	t.Cleanup(srv.Close)
	cfg := `{"client_id":"cid","client_secret":"cs","issuer":"` + srv.URL + `","audience":"api1","required_scopes":["read","write"]}`

	a := New(idp.NewResolver(&fakeSecrets{raw: []byte(cfg)}, "arn:secret:idp"), introspect.NewClient())
	resp := a.Authorize(context.Background(), Request{
		AuthorizationToken: "Bearer a.b.c",
		MethodArn:          methodArn,
		Headers:            map[string]string{"X-Client-Id": "hinted"},
	})

	if effect(resp) != "Allow" {
		t.Fatalf("effect = %q, want Allow (context: %v)", effect(resp), resp.Context)
	}
	if resp.PrincipalID != "user-7" {
		t.Fatalf("principal = %q, want user-7", resp.PrincipalID)
	}
	if got, want := resource(resp), "arn:aws:execute-api:us-east-1:123:abc/prod/*"; got != want {
		t.Fatalf("resource = %q, want %q", got, want)
	}
	if resp.Context["clientId"] != "app-1" {
		t.Fatalf("clientId = %v, want introspected app-1 over hint", resp.Context["clientId"])
	}
	if resp.Context["scope"] != "read write" || resp.Context["tokenType"] != "Bearer" {
		t.Fatalf("context = %v", resp.Context)
	}
}

func TestAuthorize_ClientIDFallsBackToHint(t *testing.T) {
	t.Parallel()

	a, _ := newAuthorizer(t, "", respond(`{"active":true,"sub":"u1"}`))

	resp := a.Authorize(context.Background(), Request{
		AuthorizationToken:    "Bearer a.b.c",
		MethodArn:             methodArn,
		QueryStringParameters: map[string]string{"client_id": "hinted"},
	})
	if resp.Context["clientId"] != "hinted" {
		t.Fatalf("clientId = %v, want hinted", resp.Context["clientId"])
	}

	// And "unknown" when there is no hint anywhere.
	resp = a.Authorize(context.Background(), Request{AuthorizationToken: "Bearer a.b.c", MethodArn: methodArn})
	if resp.Context["clientId"] != "unknown" {
		t.Fatalf("clientId = %v, want unknown", resp.Context["clientId"])
	}
}

func TestAuthorize_SingleSecretFetchAcrossInvocations(t *testing.T) {
	t.Parallel()

	a, store := newAuthorizer(t, "", respond(`{"active":true,"sub":"u1"}`))

	for i := 0; i < 3; i++ {
		_ = a.Authorize(context.Background(), Request{AuthorizationToken: "Bearer a.b.c", MethodArn: methodArn})
	}
	if store.calls != 1 {
		t.Fatalf("secret store calls = %d, want 1", store.calls)
	}
}

func TestAuthorize_EmptyMethodArnDefaultsToStar(t *testing.T) {
	t.Parallel()

	a, _ := newAuthorizer(t, "", respond(`{"active":true}`))

	resp := a.Authorize(context.Background(), Request{AuthorizationToken: ""})
	if resource(resp) != "*" {
		t.Fatalf("resource = %q, want *", resource(resp))
	}
}
