// Package memory implements the repository contracts against in-process
// fixture data. It stands in for the backend in demo mode and mirrors
// its semantics, including reaction toggling and assignee side effects.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"hearth/internal/inventory"
	"hearth/internal/model"
	"hearth/internal/repo"
)

type account struct {
	persona        model.Member
	password       string
	familyIDs      []string
	activeFamilyID string
}

type Repo struct {
	mu        sync.Mutex
	tokens    repo.TokenSource
	users     map[string]*account
	families  map[string]*model.Family
	sessions  map[string]string // token -> username
	posts     map[string][]model.Post
	inventory map[string][]model.InventoryItem
	health    map[string][]model.HealthLog
	nextID    int64
	nextToken int
}

// New creates a Repo seeded with the demo family.
func New(tokens repo.TokenSource) *Repo {
	r := &Repo{
		tokens:    tokens,
		users:     make(map[string]*account),
		families:  make(map[string]*model.Family),
		sessions:  make(map[string]string),
		posts:     make(map[string][]model.Post),
		inventory: make(map[string][]model.InventoryItem),
		health:    make(map[string][]model.HealthLog),
		nextID:    1000,
	}
	r.seed()
	return r
}

func (r *Repo) id() int64 {
	r.nextID++
	return r.nextID
}

// currentUser resolves the ambient token to an account. Callers must
// hold r.mu.
func (r *Repo) currentUser() (*account, error) {
	token := r.tokens.Token()
	if token == "" {
		return nil, repo.ErrNoSession
	}
	username, ok := r.sessions[token]
	if !ok {
		return nil, repo.ErrNoSession
	}
	return r.users[username], nil
}

func (r *Repo) activeFamily() (*account, string, error) {
	acct, err := r.currentUser()
	if err != nil {
		return nil, "", err
	}
	if acct.activeFamilyID == "" {
		return nil, "", repo.ErrNoActiveFamily
	}
	return acct, acct.activeFamilyID, nil
}

func (r *Repo) authResponse(username, token string) *model.AuthResponse {
	acct := r.users[username]
	families := make([]model.Family, 0, len(acct.familyIDs))
	for _, fid := range acct.familyIDs {
		families = append(families, *r.families[fid])
	}
	resp := &model.AuthResponse{
		AccessToken: token,
		User:        acct.persona,
		Families:    families,
	}
	if acct.activeFamilyID != "" {
		id := acct.activeFamilyID
		resp.ActiveFamilyID = &id
	}
	return resp
}

func (r *Repo) Login(_ context.Context, username, password string) (*model.AuthResponse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	acct, ok := r.users[username]
	if !ok || acct.password != password {
		return nil, repo.ErrInvalidCredentials
	}
	r.nextToken++
	token := fmt.Sprintf("mock-token-%d", r.nextToken)
	r.sessions[token] = username
	return r.authResponse(username, token), nil
}

func (r *Repo) Register(_ context.Context, username, displayName, password string) (*model.AuthResponse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[username]; ok {
		return nil, repo.ErrUsernameTaken
	}
	r.users[username] = &account{
		persona:  model.Member{Name: displayName, Avatar: "🙂"},
		password: password,
	}
	r.nextToken++
	token := fmt.Sprintf("mock-token-%d", r.nextToken)
	r.sessions[token] = username
	return r.authResponse(username, token), nil
}

func (r *Repo) Logout(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, r.tokens.Token())
	return nil
}

func (r *Repo) CheckSession(_ context.Context) (*model.AuthResponse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	token := r.tokens.Token()
	if token == "" {
		return nil, repo.ErrNoSession
	}
	username, ok := r.sessions[token]
	if !ok {
		return nil, repo.ErrNoSession
	}
	return r.authResponse(username, token), nil
}

func (r *Repo) CreateFamily(_ context.Context, name string) (*model.Family, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	acct, err := r.currentUser()
	if err != nil {
		return nil, err
	}

	fam := &model.Family{
		ID:         fmt.Sprintf("fam_%d", r.id()),
		Name:       name,
		InviteCode: newInviteCode(),
		Members:    []model.Member{acct.persona},
		CreatedAt:  time.Now(),
	}
	r.families[fam.ID] = fam
	acct.familyIDs = append(acct.familyIDs, fam.ID)
	acct.activeFamilyID = fam.ID
	copied := *fam
	return &copied, nil
}

func (r *Repo) JoinFamily(_ context.Context, inviteCode string) (*model.Family, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	acct, err := r.currentUser()
	if err != nil {
		return nil, err
	}

	var fam *model.Family
	for _, f := range r.families {
		if f.InviteCode == inviteCode {
			fam = f
			break
		}
	}
	if fam == nil {
		return nil, repo.ErrNotFound
	}
	for _, fid := range acct.familyIDs {
		if fid == fam.ID {
			return nil, repo.ErrAlreadyMember
		}
	}

	fam.Members = append(fam.Members, acct.persona)
	acct.familyIDs = append(acct.familyIDs, fam.ID)
	acct.activeFamilyID = fam.ID
	copied := *fam
	return &copied, nil
}

func (r *Repo) SwitchFamily(_ context.Context, familyID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	acct, err := r.currentUser()
	if err != nil {
		return err
	}
	for _, fid := range acct.familyIDs {
		if fid == familyID {
			acct.activeFamilyID = familyID
			return nil
		}
	}
	return repo.ErrNotMember
}

func (r *Repo) Posts(_ context.Context) ([]model.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, fid, err := r.activeFamily()
	if err != nil {
		return nil, err
	}
	return append([]model.Post(nil), r.posts[fid]...), nil
}

func (r *Repo) CreatePost(_ context.Context, p model.Post) (*model.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	acct, fid, err := r.activeFamily()
	if err != nil {
		return nil, err
	}

	p.ID = r.id()
	p.FamilyID = fid
	p.Author = acct.persona.Name
	p.AuthorAvatar = acct.persona.Avatar
	if p.Timestamp.IsZero() {
		p.Timestamp = time.Now()
	}
	if p.Type.Actionable() && p.Status == "" {
		p.Status = model.StatusTodo
	}
	if p.Assignees == nil {
		p.Assignees = []model.Member{}
	}
	p.Reactions = []model.Reaction{}
	p.Comments = []model.Comment{}

	// Newest first, matching the backend's feed ordering
	r.posts[fid] = append([]model.Post{p}, r.posts[fid]...)
	return &p, nil
}

func (r *Repo) findPost(fid string, postID int64) *model.Post {
	posts := r.posts[fid]
	for i := range posts {
		if posts[i].ID == postID {
			return &posts[i]
		}
	}
	return nil
}

func (r *Repo) ToggleReaction(_ context.Context, postID int64, rt model.ReactionType) (*model.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	acct, fid, err := r.activeFamily()
	if err != nil {
		return nil, err
	}
	p := r.findPost(fid, postID)
	if p == nil {
		return nil, repo.ErrNotFound
	}

	if p.HasReaction(acct.persona.Name, rt) {
		kept := p.Reactions[:0]
		for _, re := range p.Reactions {
			if re.Author.Name == acct.persona.Name && re.Type == rt {
				continue
			}
			kept = append(kept, re)
		}
		p.Reactions = kept
	} else {
		p.Reactions = append(p.Reactions, model.Reaction{Author: acct.persona, Type: rt})
		if rt.CommitsAuthor() {
			if !p.HasAssignee(acct.persona.Name) {
				p.Assignees = append(p.Assignees, acct.persona)
			}
			if p.Status == model.StatusTodo {
				p.Status = model.StatusInProgress
			}
		}
	}

	copied := *p
	return &copied, nil
}

func (r *Repo) AddComment(_ context.Context, postID int64, content string) (*model.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	acct, fid, err := r.activeFamily()
	if err != nil {
		return nil, err
	}
	p := r.findPost(fid, postID)
	if p == nil {
		return nil, repo.ErrNotFound
	}

	p.Comments = append(p.Comments, model.Comment{
		ID:           r.id(),
		Author:       acct.persona.Name,
		AuthorAvatar: acct.persona.Avatar,
		Content:      content,
		Timestamp:    time.Now(),
	})
	copied := *p
	return &copied, nil
}

func (r *Repo) DeleteComment(_ context.Context, postID, commentID int64) (*model.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, fid, err := r.activeFamily()
	if err != nil {
		return nil, err
	}
	p := r.findPost(fid, postID)
	if p == nil {
		return nil, repo.ErrNotFound
	}

	kept := p.Comments[:0]
	for _, c := range p.Comments {
		if c.ID != commentID {
			kept = append(kept, c)
		}
	}
	p.Comments = kept
	copied := *p
	return &copied, nil
}

func (r *Repo) MarkDone(_ context.Context, postID int64) (*model.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, fid, err := r.activeFamily()
	if err != nil {
		return nil, err
	}
	p := r.findPost(fid, postID)
	if p == nil {
		return nil, repo.ErrNotFound
	}
	p.Status = model.StatusDone
	copied := *p
	return &copied, nil
}

func (r *Repo) AddSuggestion(_ context.Context, postID int64, content string) (*model.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, fid, err := r.activeFamily()
	if err != nil {
		return nil, err
	}
	p := r.findPost(fid, postID)
	if p == nil {
		return nil, repo.ErrNotFound
	}
	p.AISuggestions = append(p.AISuggestions, model.AISuggestion{ID: r.id(), Content: content})
	p.ActiveSuggestion = len(p.AISuggestions) - 1
	copied := *p
	return &copied, nil
}

func (r *Repo) Inventory(_ context.Context) ([]model.InventoryItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, fid, err := r.activeFamily()
	if err != nil {
		return nil, err
	}
	return append([]model.InventoryItem(nil), r.inventory[fid]...), nil
}

func (r *Repo) CreateItem(_ context.Context, it model.InventoryItem) (*model.InventoryItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, fid, err := r.activeFamily()
	if err != nil {
		return nil, err
	}
	it.ID = r.id()
	it.FamilyID = fid
	if it.Status == "" {
		it.Status = model.StockInStock
	}
	if it.Category == "" {
		it.Category = inventory.Categorize(it.Name)
	}
	it.CreatedAt = time.Now()
	it.UpdatedAt = it.CreatedAt
	r.inventory[fid] = append(r.inventory[fid], it)
	return &it, nil
}

func (r *Repo) findItem(fid string, id int64) *model.InventoryItem {
	items := r.inventory[fid]
	for i := range items {
		if items[i].ID == id {
			return &items[i]
		}
	}
	return nil
}

func (r *Repo) UpdateItem(_ context.Context, id int64, it model.InventoryItem) (*model.InventoryItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, fid, err := r.activeFamily()
	if err != nil {
		return nil, err
	}
	existing := r.findItem(fid, id)
	if existing == nil {
		return nil, repo.ErrNotFound
	}
	existing.Name = it.Name
	existing.Image = it.Image
	existing.Category = it.Category
	existing.Brand = it.Brand
	existing.Store = it.Store
	existing.Notes = it.Notes
	existing.UsageScenario = it.UsageScenario
	existing.UpdatedAt = time.Now()
	copied := *existing
	return &copied, nil
}

func (r *Repo) UpdateItemStatus(_ context.Context, id int64, status model.InventoryStatus) (*model.InventoryItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, fid, err := r.activeFamily()
	if err != nil {
		return nil, err
	}
	existing := r.findItem(fid, id)
	if existing == nil {
		return nil, repo.ErrNotFound
	}
	existing.Status = status
	existing.UpdatedAt = time.Now()
	copied := *existing
	return &copied, nil
}

func (r *Repo) DeleteItem(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, fid, err := r.activeFamily()
	if err != nil {
		return err
	}
	items := r.inventory[fid]
	for i := range items {
		if items[i].ID == id {
			r.inventory[fid] = append(items[:i], items[i+1:]...)
			return nil
		}
	}
	return repo.ErrNotFound
}

func (r *Repo) AddItemComment(_ context.Context, itemID int64, content string) (*model.InventoryItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	acct, fid, err := r.activeFamily()
	if err != nil {
		return nil, err
	}
	existing := r.findItem(fid, itemID)
	if existing == nil {
		return nil, repo.ErrNotFound
	}
	existing.Comments = append(existing.Comments, model.Comment{
		ID:           r.id(),
		Author:       acct.persona.Name,
		AuthorAvatar: acct.persona.Avatar,
		Content:      content,
		Timestamp:    time.Now(),
	})
	copied := *existing
	return &copied, nil
}

func (r *Repo) DeleteItemComment(_ context.Context, itemID, commentID int64) (*model.InventoryItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, fid, err := r.activeFamily()
	if err != nil {
		return nil, err
	}
	existing := r.findItem(fid, itemID)
	if existing == nil {
		return nil, repo.ErrNotFound
	}
	kept := existing.Comments[:0]
	for _, c := range existing.Comments {
		if c.ID != commentID {
			kept = append(kept, c)
		}
	}
	existing.Comments = kept
	copied := *existing
	return &copied, nil
}

func (r *Repo) HealthLogs(_ context.Context) ([]model.HealthLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, fid, err := r.activeFamily()
	if err != nil {
		return nil, err
	}
	return append([]model.HealthLog(nil), r.health[fid]...), nil
}

func (r *Repo) AddHealthLog(_ context.Context, hl model.HealthLog) (*model.HealthLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	acct, fid, err := r.activeFamily()
	if err != nil {
		return nil, err
	}
	hl.ID = r.id()
	hl.FamilyID = fid
	hl.Author = acct.persona.Name
	if hl.Timestamp.IsZero() {
		hl.Timestamp = time.Now()
	}
	r.health[fid] = append([]model.HealthLog{hl}, r.health[fid]...)
	copied := hl
	return &copied, nil
}
