// Package feed holds the client's authoritative local copy of posts,
// inventory, and health logs for the active family. Fetches replace a
// whole collection; mutations go through the repository and the
// response reconciles the local copy.
package feed

import (
	"context"
	"log/slog"

	"hearth/internal/assistant"
	"hearth/internal/model"
	"hearth/internal/repo"
	"hearth/internal/state"
)

type Store struct {
	domain repo.Domain
	logger *slog.Logger

	posts      *state.Value[[]model.Post]
	inventory  *state.Value[[]model.InventoryItem]
	healthLogs *state.Value[[]model.HealthLog]
}

func NewStore(domain repo.Domain, logger *slog.Logger) *Store {
	return &Store{
		domain:     domain,
		logger:     logger,
		posts:      state.NewValue([]model.Post{}),
		inventory:  state.NewValue([]model.InventoryItem{}),
		healthLogs: state.NewValue([]model.HealthLog{}),
	}
}

func (s *Store) Posts() []model.Post              { return s.posts.Get() }
func (s *Store) Inventory() []model.InventoryItem { return s.inventory.Get() }
func (s *Store) HealthLogs() []model.HealthLog    { return s.healthLogs.Get() }

func (s *Store) SubscribePosts(fn func([]model.Post)) (cancel func()) {
	return s.posts.Subscribe(fn)
}

func (s *Store) SubscribeInventory(fn func([]model.InventoryItem)) (cancel func()) {
	return s.inventory.Subscribe(fn)
}

func (s *Store) SubscribeHealthLogs(fn func([]model.HealthLog)) (cancel func()) {
	return s.healthLogs.Subscribe(fn)
}

// ClearAll empties every collection. The session store's owner calls
// this when no family is active.
func (s *Store) ClearAll() {
	s.posts.Set([]model.Post{})
	s.inventory.Set([]model.InventoryItem{})
	s.healthLogs.Set([]model.HealthLog{})
}

// RefreshPosts replaces the post collection with the fetched one. On
// failure it logs and falls back to empty rather than failing the caller.
func (s *Store) RefreshPosts(ctx context.Context) {
	posts, err := s.domain.Posts(ctx)
	if err != nil {
		s.logger.Warn("fetch posts", "error", err)
		s.posts.Set([]model.Post{})
		return
	}
	if posts == nil {
		posts = []model.Post{}
	}
	s.posts.Set(posts)
}

func (s *Store) RefreshInventory(ctx context.Context) {
	items, err := s.domain.Inventory(ctx)
	if err != nil {
		s.logger.Warn("fetch inventory", "error", err)
		s.inventory.Set([]model.InventoryItem{})
		return
	}
	if items == nil {
		items = []model.InventoryItem{}
	}
	s.inventory.Set(items)
}

func (s *Store) RefreshHealthLogs(ctx context.Context) {
	logs, err := s.domain.HealthLogs(ctx)
	if err != nil {
		s.logger.Warn("fetch health logs", "error", err)
		s.healthLogs.Set([]model.HealthLog{})
		return
	}
	if logs == nil {
		logs = []model.HealthLog{}
	}
	s.healthLogs.Set(logs)
}

// RefreshAll refetches every collection for the active family.
func (s *Store) RefreshAll(ctx context.Context) {
	s.RefreshPosts(ctx)
	s.RefreshInventory(ctx)
	s.RefreshHealthLogs(ctx)
}

func replacePost(posts []model.Post, p model.Post) []model.Post {
	out := append([]model.Post(nil), posts...)
	for i := range out {
		if out[i].ID == p.ID {
			out[i] = p
			return out
		}
	}
	return out
}

func (s *Store) AddPost(ctx context.Context, p model.Post) (*model.Post, error) {
	created, err := s.domain.CreatePost(ctx, p)
	if err != nil {
		return nil, err
	}
	s.posts.Update(func(posts []model.Post) []model.Post {
		return append([]model.Post{*created}, posts...)
	})
	return created, nil
}

// ToggleReaction adds or removes the caller's reaction and reconciles
// the local post with the repository's response, picking up assignee
// and status side effects.
func (s *Store) ToggleReaction(ctx context.Context, postID int64, rt model.ReactionType) (*model.Post, error) {
	updated, err := s.domain.ToggleReaction(ctx, postID, rt)
	if err != nil {
		return nil, err
	}
	s.posts.Update(func(posts []model.Post) []model.Post {
		return replacePost(posts, *updated)
	})
	return updated, nil
}

func (s *Store) AddComment(ctx context.Context, postID int64, content string) (*model.Post, error) {
	updated, err := s.domain.AddComment(ctx, postID, content)
	if err != nil {
		return nil, err
	}
	s.posts.Update(func(posts []model.Post) []model.Post {
		return replacePost(posts, *updated)
	})
	return updated, nil
}

func (s *Store) DeleteComment(ctx context.Context, postID, commentID int64) (*model.Post, error) {
	updated, err := s.domain.DeleteComment(ctx, postID, commentID)
	if err != nil {
		return nil, err
	}
	s.posts.Update(func(posts []model.Post) []model.Post {
		return replacePost(posts, *updated)
	})
	return updated, nil
}

func (s *Store) MarkTaskAsDone(ctx context.Context, postID int64) (*model.Post, error) {
	updated, err := s.domain.MarkDone(ctx, postID)
	if err != nil {
		return nil, err
	}
	s.posts.Update(func(posts []model.Post) []model.Post {
		return replacePost(posts, *updated)
	})
	return updated, nil
}

// GenerateSuggestion renders the prompt for the post, asks the
// generator for content, stores the result, and reconciles the local
// copy. The loading flag is visible to subscribers while the generator
// runs. Generator failures become an apology string, never an error.
func (s *Store) GenerateSuggestion(ctx context.Context, gen assistant.Generator, postID int64) (*model.Post, error) {
	var target *model.Post
	for _, p := range s.posts.Get() {
		if p.ID == postID {
			copied := p
			target = &copied
			break
		}
	}
	if target == nil {
		return nil, repo.ErrNotFound
	}

	s.setSuggestionLoading(postID, true)
	content := assistant.Suggest(ctx, gen, *target)
	updated, err := s.domain.AddSuggestion(ctx, postID, content)
	s.setSuggestionLoading(postID, false)
	if err != nil {
		return nil, err
	}
	s.posts.Update(func(posts []model.Post) []model.Post {
		return replacePost(posts, *updated)
	})
	return updated, nil
}

// CycleSuggestion advances the post's active suggestion index, wrapping
// back to the first. Display state only; nothing is sent to the
// repository.
func (s *Store) CycleSuggestion(postID int64) {
	s.posts.Update(func(posts []model.Post) []model.Post {
		out := append([]model.Post(nil), posts...)
		for i := range out {
			if out[i].ID == postID && len(out[i].AISuggestions) > 0 {
				out[i].ActiveSuggestion = (out[i].ActiveSuggestion + 1) % len(out[i].AISuggestions)
			}
		}
		return out
	})
}

// SuggestMeal asks the generator for a meal idea built from what is in
// stock and posts the result as a meal suggestion.
func (s *Store) SuggestMeal(ctx context.Context, gen assistant.Generator) (*model.Post, error) {
	var inStock []model.InventoryItem
	for _, it := range s.inventory.Get() {
		if it.Status == model.StockInStock {
			inStock = append(inStock, it)
		}
	}

	content, err := gen.Generate(ctx, assistant.MealPrompt(inStock))
	if err != nil || content == "" {
		content = assistant.Apology
	}
	return s.AddPost(ctx, model.Post{
		Type:    model.PostMealSuggestion,
		Content: content,
	})
}

func (s *Store) setSuggestionLoading(postID int64, loading bool) {
	s.posts.Update(func(posts []model.Post) []model.Post {
		out := append([]model.Post(nil), posts...)
		for i := range out {
			if out[i].ID == postID {
				out[i].LoadingSuggestion = loading
			}
		}
		return out
	})
}

func replaceItem(items []model.InventoryItem, it model.InventoryItem) []model.InventoryItem {
	out := append([]model.InventoryItem(nil), items...)
	for i := range out {
		if out[i].ID == it.ID {
			out[i] = it
			return out
		}
	}
	return out
}

func (s *Store) AddItem(ctx context.Context, it model.InventoryItem) (*model.InventoryItem, error) {
	created, err := s.domain.CreateItem(ctx, it)
	if err != nil {
		return nil, err
	}
	s.inventory.Update(func(items []model.InventoryItem) []model.InventoryItem {
		return append(append([]model.InventoryItem(nil), items...), *created)
	})
	return created, nil
}

func (s *Store) UpdateItem(ctx context.Context, id int64, it model.InventoryItem) (*model.InventoryItem, error) {
	updated, err := s.domain.UpdateItem(ctx, id, it)
	if err != nil {
		return nil, err
	}
	s.inventory.Update(func(items []model.InventoryItem) []model.InventoryItem {
		return replaceItem(items, *updated)
	})
	return updated, nil
}

func (s *Store) SetItemStatus(ctx context.Context, id int64, status model.InventoryStatus) (*model.InventoryItem, error) {
	updated, err := s.domain.UpdateItemStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	s.inventory.Update(func(items []model.InventoryItem) []model.InventoryItem {
		return replaceItem(items, *updated)
	})
	return updated, nil
}

func (s *Store) RemoveItem(ctx context.Context, id int64) error {
	if err := s.domain.DeleteItem(ctx, id); err != nil {
		return err
	}
	s.inventory.Update(func(items []model.InventoryItem) []model.InventoryItem {
		out := make([]model.InventoryItem, 0, len(items))
		for _, it := range items {
			if it.ID != id {
				out = append(out, it)
			}
		}
		return out
	})
	return nil
}

func (s *Store) AddItemComment(ctx context.Context, itemID int64, content string) (*model.InventoryItem, error) {
	updated, err := s.domain.AddItemComment(ctx, itemID, content)
	if err != nil {
		return nil, err
	}
	s.inventory.Update(func(items []model.InventoryItem) []model.InventoryItem {
		return replaceItem(items, *updated)
	})
	return updated, nil
}

func (s *Store) DeleteItemComment(ctx context.Context, itemID, commentID int64) (*model.InventoryItem, error) {
	updated, err := s.domain.DeleteItemComment(ctx, itemID, commentID)
	if err != nil {
		return nil, err
	}
	s.inventory.Update(func(items []model.InventoryItem) []model.InventoryItem {
		return replaceItem(items, *updated)
	})
	return updated, nil
}

func (s *Store) AddHealthLog(ctx context.Context, hl model.HealthLog) (*model.HealthLog, error) {
	created, err := s.domain.AddHealthLog(ctx, hl)
	if err != nil {
		return nil, err
	}
	s.healthLogs.Update(func(logs []model.HealthLog) []model.HealthLog {
		return append([]model.HealthLog{*created}, logs...)
	})
	return created, nil
}
