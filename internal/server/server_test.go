package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"inkwell/internal/api"
	"inkwell/internal/config"
	"inkwell/internal/logging"
	"inkwell/internal/server"
	"inkwell/internal/summarize"
	"inkwell/internal/testsupport"
)

func newTestServer(t *testing.T, stub *testsupport.StubCompleter, opts ...testsupport.ConfigOption) (*server.Server, *config.Config) {
	t.Helper()
	cfg := testsupport.NewConfig(t, opts...)
	st := testsupport.MustOpenStore(t, cfg)
	svc := api.NewArticleService(st, summarize.NewGateway(stub, nil))
	srv, err := server.New(cfg, svc, logging.NewNop())
	if err != nil {
		t.Fatalf("server.New: %v", err)
	}
	return srv, cfg
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestArticleLifecycleOverHTTP(t *testing.T) {
	srv, _ := newTestServer(t, &testsupport.StubCompleter{})
	handler := srv.Handler()

	rec := doJSON(t, handler, http.MethodPost, "/api/articles", api.DraftRequest{
		Title:    "HTTP article",
		Body:     "body",
		Category: "Go",
		Format:   "blog",
		Keywords: []string{"http"},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d: %s", rec.Code, rec.Body)
	}
	var created api.ArticleResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode create: %v", err)
	}
	id := created.Article.ID

	rec = doJSON(t, handler, http.MethodGet, "/api/articles/"+id, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}

	rec = doJSON(t, handler, http.MethodGet, "/api/articles?category=Go", nil)
	var list api.ArticleListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list.Articles) != 1 || list.Articles[0].ID != id {
		t.Fatalf("filtered list = %+v", list.Articles)
	}

	rec = doJSON(t, handler, http.MethodPut, "/api/articles/"+id, api.DraftRequest{
		Title:    "Renamed",
		Category: "Go",
		Format:   "blog",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d: %s", rec.Code, rec.Body)
	}

	rec = doJSON(t, handler, http.MethodDelete, "/api/articles/"+id, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rec.Code)
	}
	rec = doJSON(t, handler, http.MethodGet, "/api/articles/"+id, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("get after delete status = %d", rec.Code)
	}
}

func TestCreateValidationMapsToBadRequest(t *testing.T) {
	srv, _ := newTestServer(t, &testsupport.StubCompleter{})
	handler := srv.Handler()

	rec := doJSON(t, handler, http.MethodPost, "/api/articles", api.DraftRequest{Category: "Go"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing title status = %d", rec.Code)
	}

	rec = doJSON(t, handler, http.MethodPost, "/api/articles", api.DraftRequest{
		Title:    "T",
		Category: "Go",
		Format:   "mixtape",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown format status = %d", rec.Code)
	}
}

func TestMemoEndpoints(t *testing.T) {
	srv, _ := newTestServer(t, &testsupport.StubCompleter{})
	handler := srv.Handler()

	rec := doJSON(t, handler, http.MethodPost, "/api/articles", api.DraftRequest{Title: "T", Category: "Go"})
	var created api.ArticleResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode create: %v", err)
	}
	id := created.Article.ID

	rec = doJSON(t, handler, http.MethodPost, "/api/articles/"+id+"/memos", api.MemoRequest{Content: "note"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("memo create status = %d: %s", rec.Code, rec.Body)
	}
	var memo api.Memo
	if err := json.Unmarshal(rec.Body.Bytes(), &memo); err != nil {
		t.Fatalf("decode memo: %v", err)
	}

	rec = doJSON(t, handler, http.MethodPut, "/api/articles/"+id+"/memos/"+memo.ID, api.MemoRequest{Content: "edited"})
	if rec.Code != http.StatusOK {
		t.Fatalf("memo update status = %d", rec.Code)
	}

	rec = doJSON(t, handler, http.MethodDelete, "/api/articles/"+id+"/memos/"+memo.ID, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("memo delete status = %d", rec.Code)
	}
	rec = doJSON(t, handler, http.MethodDelete, "/api/articles/"+id+"/memos/"+memo.ID, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("second memo delete status = %d", rec.Code)
	}
}

func TestSummarizeEndpoints(t *testing.T) {
	stub := &testsupport.StubCompleter{Response: "summary text"}
	srv, _ := newTestServer(t, stub)
	handler := srv.Handler()

	rec := doJSON(t, handler, http.MethodPost, "/api/summarize", api.SummarizeRequest{Text: "a long passage"})
	if rec.Code != http.StatusOK {
		t.Fatalf("summarize status = %d", rec.Code)
	}
	var sum api.SummarizeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &sum); err != nil {
		t.Fatalf("decode summary: %v", err)
	}
	if sum.Summary != "summary text" {
		t.Fatalf("summary = %q", sum.Summary)
	}

	rec = doJSON(t, handler, http.MethodPost, "/api/articles", api.DraftRequest{Title: "T", Body: "body", Category: "Go"})
	var created api.ArticleResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode create: %v", err)
	}
	id := created.Article.ID

	rec = doJSON(t, handler, http.MethodPost, "/api/articles/"+id+"/summarize", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("body summarize status = %d: %s", rec.Code, rec.Body)
	}
	var updated api.ArticleResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &updated); err != nil {
		t.Fatalf("decode updated: %v", err)
	}
	if !strings.Contains(updated.Article.Body, "-- AI Summary --") {
		t.Fatalf("body missing summary block: %q", updated.Article.Body)
	}

	rec = doJSON(t, handler, http.MethodPost, "/api/articles/"+id+"/summarize", api.SummarizeRequest{Text: "selection"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("selection summarize status = %d", rec.Code)
	}
	var memo api.Memo
	if err := json.Unmarshal(rec.Body.Bytes(), &memo); err != nil {
		t.Fatalf("decode memo: %v", err)
	}
	if !memo.IsSummary {
		t.Fatal("selection memo not flagged as summary")
	}
}

func TestCategoriesEndpoint(t *testing.T) {
	srv, _ := newTestServer(t, &testsupport.StubCompleter{})
	handler := srv.Handler()

	rec := doJSON(t, handler, http.MethodGet, "/api/categories", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("categories status = %d", rec.Code)
	}
	var list api.CategoryListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode categories: %v", err)
	}
	if len(list.Categories) == 0 {
		t.Fatal("expected seeded category")
	}
}

func TestBearerTokenGuardsEveryRoute(t *testing.T) {
	srv, _ := newTestServer(t, &testsupport.StubCompleter{}, testsupport.WithAPIToken("sekrit"))
	handler := srv.Handler()

	rec := doJSON(t, handler, http.MethodGet, "/api/articles", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("unauthenticated status = %d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/articles", nil)
	req.Header.Set("Authorization", "Bearer sekrit")
	ok := httptest.NewRecorder()
	handler.ServeHTTP(ok, req)
	if ok.Code != http.StatusOK {
		t.Fatalf("authenticated status = %d", ok.Code)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	srv, _ := newTestServer(t, &testsupport.StubCompleter{})
	handler := srv.Handler()

	rec := doJSON(t, handler, http.MethodDelete, "/api/categories", nil)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestPutReplacesAttachments(t *testing.T) {
	srv, _ := newTestServer(t, &testsupport.StubCompleter{})
	handler := srv.Handler()

	pngDataURL := "data:image/png;base64,iVBORw0KGgo="
	rec := doJSON(t, handler, http.MethodPost, "/api/articles", api.DraftRequest{
		Title:    "Figures",
		Category: "Go",
		Attachments: []api.Attachment{
			{Name: "fig.png", MimeType: "image/png", DataURL: pngDataURL},
		},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d: %s", rec.Code, rec.Body)
	}
	var created api.ArticleResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode create: %v", err)
	}
	if len(created.Article.Attachments) != 1 {
		t.Fatalf("attachments after create = %d", len(created.Article.Attachments))
	}

	rec = doJSON(t, handler, http.MethodPut, "/api/articles/"+created.Article.ID, api.DraftRequest{
		Title:    "Figures",
		Category: "Go",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d: %s", rec.Code, rec.Body)
	}
	var updated api.ArticleResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &updated); err != nil {
		t.Fatalf("decode update: %v", err)
	}
	if len(updated.Article.Attachments) != 0 {
		t.Fatalf("attachments not removed: %+v", updated.Article.Attachments)
	}
}

func TestStopSafeUnderConcurrentShutdown(t *testing.T) {
	srv, _ := newTestServer(t, &testsupport.StubCompleter{})

	ctx, cancel := context.WithCancel(context.Background())
	if err := srv.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if srv.Addr() == "" {
		t.Fatal("no bound address after Start")
	}

	// Context cancellation and explicit Stop calls race in normal shutdown;
	// all paths must be safe together.
	cancel()
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			srv.Stop()
		}()
	}
	wg.Wait()
	srv.Stop()
}
