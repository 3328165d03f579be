package store_test

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"inkwell/internal/archive"
	"inkwell/internal/store"
	"inkwell/internal/testsupport"
)

func draft(title, category string, keywords ...string) archive.Draft {
	return archive.Draft{
		Title:    title,
		Category: category,
		Format:   archive.FormatNews,
		Keywords: keywords,
	}
}

func TestOpenSeedsEmptyStorage(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	articles := st.Articles()
	if len(articles) != 1 {
		t.Fatalf("len(articles) = %d, want 1 seed article", len(articles))
	}
	if articles[0].Title == "" || articles[0].Category == "" {
		t.Fatalf("seed article incomplete: %#v", articles[0])
	}
}

func TestCollectionSurvivesReopen(t *testing.T) {
	cfg := testsupport.NewConfig(t)

	st := testsupport.MustOpenStore(t, cfg)
	created, err := st.CreateArticle(context.Background(), draft("Persisted", "Tech", "go"))
	if err != nil {
		t.Fatalf("CreateArticle: %v", err)
	}
	if err := st.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened := testsupport.MustOpenStore(t, cfg)
	fetched, err := reopened.GetArticle(created.ID)
	if err != nil {
		t.Fatalf("GetArticle after reopen: %v", err)
	}
	if fetched.Title != "Persisted" {
		t.Fatalf("Title = %q", fetched.Title)
	}
	if len(reopened.Articles()) != 2 {
		t.Fatalf("len(articles) = %d, want seed + created", len(reopened.Articles()))
	}
}

func TestCorruptPayloadReseeds(t *testing.T) {
	cfg := testsupport.NewConfig(t)

	st := testsupport.MustOpenStore(t, cfg)
	if _, err := st.CreateArticle(context.Background(), draft("Will be lost", "Tech")); err != nil {
		t.Fatalf("CreateArticle: %v", err)
	}
	dbPath := st.Path()
	if err := st.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if _, err := db.Exec(`UPDATE collections SET payload = '{"not":"an array"'`); err != nil {
		t.Fatalf("corrupt payload: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("close db: %v", err)
	}

	reopened := testsupport.MustOpenStore(t, cfg)
	articles := reopened.Articles()
	if len(articles) != 1 {
		t.Fatalf("len(articles) = %d, want 1 seed article after reseed", len(articles))
	}
	if articles[0].Title == "Will be lost" {
		t.Fatal("corrupt payload should have triggered a reseed")
	}
}

func TestCreatePrependsAndPreservesCreatedAt(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	current := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	st := testsupport.MustOpenStore(t, cfg, store.WithClock(func() time.Time {
		current = current.Add(time.Minute)
		return current
	}))

	ctx := context.Background()
	first, err := st.CreateArticle(ctx, draft("First", "Tech"))
	if err != nil {
		t.Fatalf("CreateArticle: %v", err)
	}
	second, err := st.CreateArticle(ctx, draft("Second", "Tech"))
	if err != nil {
		t.Fatalf("CreateArticle: %v", err)
	}
	if first.ID == second.ID {
		t.Fatal("article IDs are not unique")
	}

	articles := st.Articles()
	if articles[0].ID != second.ID {
		t.Fatalf("newest article should be first in storage order, got %q", articles[0].Title)
	}

	updated, err := st.UpdateArticle(ctx, first.ID, draft("First, revised", "Science", "physics"))
	if err != nil {
		t.Fatalf("UpdateArticle: %v", err)
	}
	if !updated.CreatedAt.Equal(first.CreatedAt) {
		t.Fatalf("CreatedAt changed on update: %v -> %v", first.CreatedAt, updated.CreatedAt)
	}
	if updated.ID != first.ID {
		t.Fatal("ID changed on update")
	}
	if updated.Title != "First, revised" || updated.Category != "Science" {
		t.Fatalf("mutable fields not replaced: %#v", updated)
	}
}

func TestUpdatePreservesMemos(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	article, err := st.CreateArticle(ctx, draft("With memo", "Tech"))
	if err != nil {
		t.Fatalf("CreateArticle: %v", err)
	}
	memo, err := st.AddMemo(ctx, article.ID, "keep me", false)
	if err != nil {
		t.Fatalf("AddMemo: %v", err)
	}

	updated, err := st.UpdateArticle(ctx, article.ID, draft("Renamed", "Tech"))
	if err != nil {
		t.Fatalf("UpdateArticle: %v", err)
	}
	if len(updated.Memos) != 1 || updated.Memos[0].ID != memo.ID {
		t.Fatalf("memo thread not preserved: %#v", updated.Memos)
	}
}

func TestDeleteArticleCascades(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	article, err := st.CreateArticle(ctx, draft("Doomed", "Tech"))
	if err != nil {
		t.Fatalf("CreateArticle: %v", err)
	}
	if _, err := st.AddMemo(ctx, article.ID, "going with it", false); err != nil {
		t.Fatalf("AddMemo: %v", err)
	}

	if err := st.DeleteArticle(ctx, article.ID); err != nil {
		t.Fatalf("DeleteArticle: %v", err)
	}
	if _, err := st.GetArticle(article.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("GetArticle after delete: %v, want ErrNotFound", err)
	}
	for _, remaining := range st.Articles() {
		for _, memo := range remaining.Memos {
			if memo.Content == "going with it" {
				t.Fatal("memo survived its article")
			}
		}
	}
}

func TestMemoLifecycle(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	article, err := st.CreateArticle(ctx, draft("Annotated", "Tech"))
	if err != nil {
		t.Fatalf("CreateArticle: %v", err)
	}

	first, err := st.AddMemo(ctx, article.ID, "first", false)
	if err != nil {
		t.Fatalf("AddMemo: %v", err)
	}
	second, err := st.AddMemo(ctx, article.ID, "second", true)
	if err != nil {
		t.Fatalf("AddMemo: %v", err)
	}

	fetched, err := st.GetArticle(article.ID)
	if err != nil {
		t.Fatalf("GetArticle: %v", err)
	}
	if len(fetched.Memos) != 2 || fetched.Memos[0].ID != first.ID || fetched.Memos[1].ID != second.ID {
		t.Fatalf("memos not in append order: %#v", fetched.Memos)
	}
	if !fetched.Memos[1].IsSummary {
		t.Fatal("summary flag lost")
	}

	if err := st.UpdateMemo(ctx, article.ID, first.ID, "first, edited"); err != nil {
		t.Fatalf("UpdateMemo: %v", err)
	}
	fetched, _ = st.GetArticle(article.ID)
	if fetched.Memos[0].Content != "first, edited" {
		t.Fatalf("memo content = %q", fetched.Memos[0].Content)
	}

	if err := st.DeleteMemo(ctx, article.ID, first.ID); err != nil {
		t.Fatalf("DeleteMemo: %v", err)
	}
	if err := st.DeleteMemo(ctx, article.ID, first.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("double delete: %v, want ErrNotFound", err)
	}
	fetched, _ = st.GetArticle(article.ID)
	if len(fetched.Memos) != 1 || fetched.Memos[0].ID != second.ID {
		t.Fatalf("unexpected memos after delete: %#v", fetched.Memos)
	}
}

func TestMemoAddThenDeleteLeavesOthersUntouched(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	a1, err := st.CreateArticle(ctx, draft("A1", "Tech"))
	if err != nil {
		t.Fatalf("CreateArticle: %v", err)
	}
	a2, err := st.CreateArticle(ctx, draft("A2", "Tech"))
	if err != nil {
		t.Fatalf("CreateArticle: %v", err)
	}

	memo, err := st.AddMemo(ctx, a2.ID, "temporary", false)
	if err != nil {
		t.Fatalf("AddMemo: %v", err)
	}
	if err := st.DeleteMemo(ctx, a2.ID, memo.ID); err != nil {
		t.Fatalf("DeleteMemo: %v", err)
	}

	got2, _ := st.GetArticle(a2.ID)
	if len(got2.Memos) != 0 {
		t.Fatalf("A2 memos = %d, want 0", len(got2.Memos))
	}
	got1, _ := st.GetArticle(a1.ID)
	if len(got1.Memos) != 0 {
		t.Fatalf("A1 affected by A2's memo lifecycle: %#v", got1.Memos)
	}
}

func TestInvalidDraftLeavesStateUntouched(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	before := st.Revision()
	if _, err := st.CreateArticle(ctx, draft("", "Tech")); !errors.Is(err, archive.ErrTitleRequired) {
		t.Fatalf("blank title: %v", err)
	}
	if _, err := st.CreateArticle(ctx, draft("Title", "")); !errors.Is(err, archive.ErrCategoryRequired) {
		t.Fatalf("blank category: %v", err)
	}
	if st.Revision() != before {
		t.Fatal("rejected drafts must not bump the revision")
	}
}

func TestNotFoundSignals(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	if _, err := st.UpdateArticle(ctx, "missing", draft("T", "C")); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("UpdateArticle: %v", err)
	}
	if err := st.DeleteArticle(ctx, "missing"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("DeleteArticle: %v", err)
	}
	if _, err := st.AddMemo(ctx, "missing", "m", false); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("AddMemo: %v", err)
	}
	if err := st.UpdateMemo(ctx, "missing", "m", "c"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("UpdateMemo: %v", err)
	}
}

func TestSecondOpenIsRejectedWhileLocked(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	testsupport.MustOpenStore(t, cfg)

	if _, err := store.Open(cfg, nil); !errors.Is(err, store.ErrLocked) {
		t.Fatalf("second Open: %v, want ErrLocked", err)
	}

	dbPath := filepath.Join(cfg.Paths.DataDir, "archive.db")
	if cfg.DatabasePath() != dbPath {
		t.Fatalf("DatabasePath = %q, want %q", cfg.DatabasePath(), dbPath)
	}
}
