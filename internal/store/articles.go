package store

import (
	"context"
	"fmt"

	"inkwell/internal/archive"
	"inkwell/internal/logging"
)

// Articles returns a deep-copied snapshot of the collection in storage order
// (newest-first by construction; display sorting is a view concern).
func (s *Store) Articles() []archive.Article {
	s.mu.Lock()
	defer s.mu.Unlock()
	return archive.CloneAll(s.articles)
}

// Revision returns a counter bumped on every accepted mutation. View caches
// key their memoization on it.
func (s *Store) Revision() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.revision
}

// GetArticle returns a copy of the article with the given ID.
func (s *Store) GetArticle(id string) (archive.Article, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.articles {
		if s.articles[i].ID == id {
			return s.articles[i].Clone(), nil
		}
	}
	return archive.Article{}, fmt.Errorf("article %s: %w", id, ErrNotFound)
}

// CreateArticle validates the draft, assigns identity and creation time, and
// prepends the new article to the collection.
func (s *Store) CreateArticle(ctx context.Context, draft archive.Draft) (archive.Article, error) {
	if err := draft.Validate(); err != nil {
		return archive.Article{}, err
	}

	article := archive.Article{
		ID:          archive.NewID(),
		Title:       draft.Title,
		Body:        draft.Body,
		Source:      draft.Source,
		CreatedAt:   s.now(),
		Format:      draft.Format,
		Category:    draft.Category,
		Keywords:    append([]string(nil), draft.Keywords...),
		Memos:       []archive.Memo{},
		Attachments: append([]archive.Attachment(nil), draft.Attachments...),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	next := make([]archive.Article, 0, len(s.articles)+1)
	next = append(next, article)
	next = append(next, s.articles...)
	s.swapLocked(ctx, next)

	s.logger.Info("article created",
		logging.String(logging.FieldArticleID, article.ID),
		logging.String("category", article.Category))
	return article.Clone(), nil
}

// UpdateArticle replaces the mutable fields of the matching article. ID,
// CreatedAt, and the memo thread are preserved.
func (s *Store) UpdateArticle(ctx context.Context, id string, draft archive.Draft) (archive.Article, error) {
	if err := draft.Validate(); err != nil {
		return archive.Article{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexLocked(id)
	if idx < 0 {
		return archive.Article{}, fmt.Errorf("article %s: %w", id, ErrNotFound)
	}

	next := archive.CloneAll(s.articles)
	updated := &next[idx]
	updated.Title = draft.Title
	updated.Body = draft.Body
	updated.Source = draft.Source
	updated.Format = draft.Format
	updated.Category = draft.Category
	updated.Keywords = append([]string(nil), draft.Keywords...)
	updated.Attachments = append([]archive.Attachment(nil), draft.Attachments...)
	s.swapLocked(ctx, next)

	s.logger.Info("article updated", logging.String(logging.FieldArticleID, id))
	return updated.Clone(), nil
}

// DeleteArticle removes the article and, with it, every memo it owns.
func (s *Store) DeleteArticle(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexLocked(id)
	if idx < 0 {
		return fmt.Errorf("article %s: %w", id, ErrNotFound)
	}

	next := make([]archive.Article, 0, len(s.articles)-1)
	next = append(next, s.articles[:idx]...)
	next = append(next, s.articles[idx+1:]...)
	s.swapLocked(ctx, next)

	s.logger.Info("article deleted", logging.String(logging.FieldArticleID, id))
	return nil
}

// AddMemo appends a memo to the target article's thread. Display-order
// reversal is a view concern.
func (s *Store) AddMemo(ctx context.Context, articleID, content string, isSummary bool) (archive.Memo, error) {
	memo := archive.Memo{
		ID:        archive.NewID(),
		Content:   content,
		IsSummary: isSummary,
		CreatedAt: s.now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexLocked(articleID)
	if idx < 0 {
		return archive.Memo{}, fmt.Errorf("article %s: %w", articleID, ErrNotFound)
	}

	next := archive.CloneAll(s.articles)
	next[idx].Memos = append(next[idx].Memos, memo)
	s.swapLocked(ctx, next)

	s.logger.Info("memo added",
		logging.String(logging.FieldArticleID, articleID),
		logging.String(logging.FieldMemoID, memo.ID),
		logging.Bool("summary", isSummary))
	return memo, nil
}

// UpdateMemo replaces the content of the memo addressed by the composite key.
func (s *Store) UpdateMemo(ctx context.Context, articleID, memoID, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexLocked(articleID)
	if idx < 0 {
		return fmt.Errorf("article %s: %w", articleID, ErrNotFound)
	}
	memoIdx := s.articles[idx].FindMemo(memoID)
	if memoIdx < 0 {
		return fmt.Errorf("memo %s: %w", memoID, ErrNotFound)
	}

	next := archive.CloneAll(s.articles)
	next[idx].Memos[memoIdx].Content = content
	s.swapLocked(ctx, next)

	s.logger.Info("memo updated",
		logging.String(logging.FieldArticleID, articleID),
		logging.String(logging.FieldMemoID, memoID))
	return nil
}

// DeleteMemo removes the memo addressed by the composite key.
func (s *Store) DeleteMemo(ctx context.Context, articleID, memoID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexLocked(articleID)
	if idx < 0 {
		return fmt.Errorf("article %s: %w", articleID, ErrNotFound)
	}
	memoIdx := s.articles[idx].FindMemo(memoID)
	if memoIdx < 0 {
		return fmt.Errorf("memo %s: %w", memoID, ErrNotFound)
	}

	next := archive.CloneAll(s.articles)
	memos := next[idx].Memos
	next[idx].Memos = append(memos[:memoIdx], memos[memoIdx+1:]...)
	s.swapLocked(ctx, next)

	s.logger.Info("memo deleted",
		logging.String(logging.FieldArticleID, articleID),
		logging.String(logging.FieldMemoID, memoID))
	return nil
}

// swapLocked installs the rebuilt collection and writes it through. Callers
// hold s.mu.
func (s *Store) swapLocked(ctx context.Context, next []archive.Article) {
	s.articles = next
	s.revision++
	s.persistLocked(ctx)
}

func (s *Store) indexLocked(id string) int {
	for i := range s.articles {
		if s.articles[i].ID == id {
			return i
		}
	}
	return -1
}
