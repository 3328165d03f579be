package api

import (
	"context"
	"fmt"

	"inkwell/internal/archive"
	"inkwell/internal/attachment"
	"inkwell/internal/catalog"
)

// aiSummaryMarker separates an article body from the appended AI summary.
const aiSummaryMarker = "\n\n-- AI Summary --\n"

// ArticleStore abstracts the collection operations the service needs.
type ArticleStore interface {
	Articles() []archive.Article
	Revision() uint64
	GetArticle(id string) (archive.Article, error)
	CreateArticle(ctx context.Context, draft archive.Draft) (archive.Article, error)
	UpdateArticle(ctx context.Context, id string, draft archive.Draft) (archive.Article, error)
	DeleteArticle(ctx context.Context, id string) error
	AddMemo(ctx context.Context, articleID, content string, isSummary bool) (archive.Memo, error)
	UpdateMemo(ctx context.Context, articleID, memoID, content string) error
	DeleteMemo(ctx context.Context, articleID, memoID string) error
}

// Summarizer abstracts the summarization gateway. Both operations resolve to
// displayable strings and never fail.
type Summarizer interface {
	Summarize(ctx context.Context, text string) string
	ProcessFile(ctx context.Context, att archive.Attachment) string
}

// ArticleService exposes archive operations returning API DTOs. It is the
// single entry point shared by the CLI commands and the HTTP handlers.
type ArticleService struct {
	store   ArticleStore
	catalog *catalog.Cache
	gateway Summarizer
}

// NewArticleService constructs the service around a store and a gateway. The
// category index is memoized per store revision.
func NewArticleService(store ArticleStore, gateway Summarizer) *ArticleService {
	if store == nil {
		return nil
	}
	return &ArticleService{
		store:   store,
		catalog: catalog.NewCache(store),
		gateway: gateway,
	}
}

// List returns the articles matching the filter, newest first.
func (s *ArticleService) List(filter catalog.Filter) []Article {
	if s == nil || s.store == nil {
		return nil
	}
	return FromArticles(catalog.FilterArticles(s.store.Articles(), filter))
}

// Describe fetches a single article.
func (s *ArticleService) Describe(id string) (Article, error) {
	article, err := s.store.GetArticle(id)
	if err != nil {
		return Article{}, err
	}
	return FromArticle(article), nil
}

// Create validates the draft and adds a new article at the head of the
// collection. Attachment files are processed sequentially in submission
// order: each is size- and type-checked, attached, and run through the
// gateway with the result appended to the body before the next file starts.
func (s *ArticleService) Create(ctx context.Context, req DraftRequest, filePaths ...string) (Article, error) {
	draft, err := req.Draft()
	if err != nil {
		return Article{}, err
	}
	if err := draft.Validate(); err != nil {
		return Article{}, err
	}

	if err := s.ingestFiles(ctx, &draft, filePaths); err != nil {
		return Article{}, err
	}

	article, err := s.store.CreateArticle(ctx, draft)
	if err != nil {
		return Article{}, err
	}
	return FromArticle(article), nil
}

// Update replaces the mutable fields of an article, attachments included: the
// request carries the full attachment list, so entries left out are dropped.
// Identity, creation time, and the memo thread are preserved. Additional
// attachment files are ingested the same way Create ingests them.
func (s *ArticleService) Update(ctx context.Context, id string, req DraftRequest, filePaths ...string) (Article, error) {
	draft, err := req.Draft()
	if err != nil {
		return Article{}, err
	}
	if err := draft.Validate(); err != nil {
		return Article{}, err
	}
	if err := s.ingestFiles(ctx, &draft, filePaths); err != nil {
		return Article{}, err
	}

	article, err := s.store.UpdateArticle(ctx, id, draft)
	if err != nil {
		return Article{}, err
	}
	return FromArticle(article), nil
}

// ingestFiles loads each file in submission order, appends it to the draft's
// attachments, and folds the gateway result into the body before moving on to
// the next file.
func (s *ArticleService) ingestFiles(ctx context.Context, draft *archive.Draft, filePaths []string) error {
	for _, path := range filePaths {
		att, err := attachment.LoadFile(path)
		if err != nil {
			return err
		}
		draft.Attachments = append(draft.Attachments, att)
		if s.gateway != nil {
			result := s.gateway.ProcessFile(ctx, att)
			draft.Body = appendSection(draft.Body, att.Name, result)
		}
	}
	return nil
}

// Delete removes an article and its memo thread.
func (s *ArticleService) Delete(ctx context.Context, id string) error {
	return s.store.DeleteArticle(ctx, id)
}

// AddMemo appends a user memo to an article's thread.
func (s *ArticleService) AddMemo(ctx context.Context, articleID, content string) (Memo, error) {
	memo, err := s.store.AddMemo(ctx, articleID, content, false)
	if err != nil {
		return Memo{}, err
	}
	return FromMemo(memo), nil
}

// UpdateMemo rewrites a memo's content.
func (s *ArticleService) UpdateMemo(ctx context.Context, articleID, memoID, content string) error {
	return s.store.UpdateMemo(ctx, articleID, memoID, content)
}

// DeleteMemo removes a memo from an article's thread.
func (s *ArticleService) DeleteMemo(ctx context.Context, articleID, memoID string) error {
	return s.store.DeleteMemo(ctx, articleID, memoID)
}

// Categories returns the derived category index in first-encounter order.
func (s *ArticleService) Categories() []Category {
	if s == nil || s.catalog == nil {
		return nil
	}
	return FromCategoryEntries(s.catalog.Index())
}

// SummarizeText summarizes free-standing text through the gateway.
func (s *ArticleService) SummarizeText(ctx context.Context, text string) string {
	return s.gateway.Summarize(ctx, text)
}

// SummarizeBody summarizes an article's body and appends the result to it
// under a fixed marker.
func (s *ArticleService) SummarizeBody(ctx context.Context, id string) (Article, error) {
	article, err := s.store.GetArticle(id)
	if err != nil {
		return Article{}, err
	}

	summary := s.gateway.Summarize(ctx, article.Body)
	draft := draftFrom(article)
	draft.Body = article.Body + aiSummaryMarker + summary

	updated, err := s.store.UpdateArticle(ctx, id, draft)
	if err != nil {
		return Article{}, err
	}
	return FromArticle(updated), nil
}

// SummarizeSelection summarizes a passage of an article and records the
// result as a summary-flagged memo.
func (s *ArticleService) SummarizeSelection(ctx context.Context, articleID, text string) (Memo, error) {
	if _, err := s.store.GetArticle(articleID); err != nil {
		return Memo{}, err
	}

	summary := s.gateway.Summarize(ctx, text)
	memo, err := s.store.AddMemo(ctx, articleID, summary, true)
	if err != nil {
		return Memo{}, err
	}
	return FromMemo(memo), nil
}

// draftFrom rebuilds a draft carrying every mutable field of the article.
func draftFrom(article archive.Article) archive.Draft {
	return archive.Draft{
		Title:       article.Title,
		Body:        article.Body,
		Source:      article.Source,
		Format:      article.Format,
		Category:    article.Category,
		Keywords:    append([]string(nil), article.Keywords...),
		Attachments: article.Attachments,
	}
}

func appendSection(body, name, content string) string {
	section := fmt.Sprintf("--- %s ---\n%s", name, content)
	if body == "" {
		return section
	}
	return body + "\n\n" + section
}
