package model

import "time"

type PostType string

const (
	PostFeeling        PostType = "FEELING"
	PostDiscovery      PostType = "DISCOVERY"
	PostChore          PostType = "CHORE"
	PostTask           PostType = "TASK"
	PostAppointment    PostType = "APPOINTMENT"
	PostEvent          PostType = "EVENT"
	PostMedication     PostType = "MEDICATION"
	PostMealSuggestion PostType = "MEAL_SUGGESTION"
)

// Actionable reports whether posts of this type carry a work status.
func (t PostType) Actionable() bool {
	return t == PostTask || t == PostChore
}

type NeedStatus string

const (
	StatusTodo       NeedStatus = "TODO"
	StatusInProgress NeedStatus = "IN_PROGRESS"
	StatusDone       NeedStatus = "DONE"
)

type Priority string

const (
	PriorityUrgent Priority = "URGENT"
	PriorityNormal Priority = "NORMAL"
	PriorityLow    Priority = "LOW"
)

type ReactionType string

const (
	ReactionGotIt   ReactionType = "GOT_IT"
	ReactionIllDoIt ReactionType = "ILL_DO_IT"
	ReactionIllJoin ReactionType = "ILL_JOIN"
)

// CommitsAuthor reports whether reacting with this type signs the author up
// as an assignee on the post.
func (t ReactionType) CommitsAuthor() bool {
	return t == ReactionIllDoIt || t == ReactionIllJoin
}

type Reaction struct {
	Author Member       `json:"author"`
	Type   ReactionType `json:"type"`
}

// Comment snapshots the author's name and avatar at write time rather than
// referencing a live member record.
type Comment struct {
	ID           int64     `json:"id"`
	Author       string    `json:"author"`
	AuthorAvatar string    `json:"author_avatar"`
	Content      string    `json:"content"`
	Timestamp    time.Time `json:"timestamp"`
}

type Media struct {
	Type string `json:"type"` // "image" or "video"
	URL  string `json:"url"`
}

type AISuggestion struct {
	ID      int64  `json:"id"`
	Content string `json:"content"`
}

type Post struct {
	ID           int64      `json:"id"`
	FamilyID     string     `json:"family_id"`
	Author       string     `json:"author"`
	AuthorAvatar string     `json:"author_avatar"`
	Timestamp    time.Time  `json:"timestamp"`
	Type         PostType   `json:"type"`
	Content      string     `json:"content"`
	Media        []Media    `json:"media,omitempty"`
	Status       NeedStatus `json:"status,omitempty"`
	Priority     Priority   `json:"priority,omitempty"`
	DueDate      *time.Time `json:"due_date,omitempty"`
	Subject      *Member    `json:"subject,omitempty"`
	Assignees    []Member   `json:"assignees"`
	Reactions    []Reaction `json:"reactions"`
	Comments     []Comment  `json:"comments"`

	AISuggestions     []AISuggestion `json:"ai_suggestions,omitempty"`
	ActiveSuggestion  int            `json:"active_suggestion,omitempty"`
	LoadingSuggestion bool           `json:"loading_suggestion,omitempty"`
}

// HasReaction reports whether author already reacted with the given type.
func (p *Post) HasReaction(author string, t ReactionType) bool {
	for _, r := range p.Reactions {
		if r.Author.Name == author && r.Type == t {
			return true
		}
	}
	return false
}

// HasAssignee reports whether the named member is already assigned.
func (p *Post) HasAssignee(name string) bool {
	for _, a := range p.Assignees {
		if a.Name == name {
			return true
		}
	}
	return false
}
