package store

import (
	"database/sql"
	"fmt"

	"hearth/internal/model"
)

type PostStore struct {
	db *sql.DB
}

func NewPostStore(db *sql.DB) *PostStore {
	return &PostStore{db: db}
}

func scanPost(scanner interface{ Scan(...any) error }) (*model.Post, error) {
	var p model.Post
	var status, priority, subjectName, subjectAvatar sql.NullString
	var dueDate sql.NullTime
	err := scanner.Scan(
		&p.ID, &p.FamilyID, &p.Author, &p.AuthorAvatar, &p.Timestamp,
		&p.Type, &p.Content, &status, &priority, &dueDate, &subjectName, &subjectAvatar,
	)
	if err != nil {
		return nil, err
	}
	if status.Valid {
		p.Status = model.NeedStatus(status.String)
	}
	if priority.Valid {
		p.Priority = model.Priority(priority.String)
	}
	if dueDate.Valid {
		t := dueDate.Time
		p.DueDate = &t
	}
	if subjectName.Valid {
		p.Subject = &model.Member{Name: subjectName.String, Avatar: subjectAvatar.String}
	}
	p.Assignees = []model.Member{}
	p.Reactions = []model.Reaction{}
	p.Comments = []model.Comment{}
	return &p, nil
}

const postCols = `id, family_id, author_name, author_avatar, timestamp, type, content, status, priority, due_date, subject_name, subject_avatar`

func (s *PostStore) Create(p *model.Post) (*model.Post, error) {
	var status, priority, subjectName, subjectAvatar any
	if p.Status != "" {
		status = string(p.Status)
	}
	if p.Priority != "" {
		priority = string(p.Priority)
	}
	if p.Subject != nil {
		subjectName = p.Subject.Name
		subjectAvatar = p.Subject.Avatar
	}
	result, err := s.db.Exec(
		`INSERT INTO posts (family_id, author_name, author_avatar, timestamp, type, content, status, priority, due_date, subject_name, subject_avatar)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.FamilyID, p.Author, p.AuthorAvatar, p.Timestamp.UTC(), string(p.Type), p.Content,
		status, priority, p.DueDate, subjectName, subjectAvatar,
	)
	if err != nil {
		return nil, fmt.Errorf("insert post: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	for _, m := range p.Media {
		if _, err := s.db.Exec(
			`INSERT INTO post_media (post_id, type, url) VALUES (?, ?, ?)`,
			id, m.Type, m.URL,
		); err != nil {
			return nil, fmt.Errorf("insert media: %w", err)
		}
	}

	for _, a := range p.Assignees {
		if _, err := s.db.Exec(
			`INSERT OR IGNORE INTO post_assignees (post_id, name, avatar, age) VALUES (?, ?, ?, ?)`,
			id, a.Name, a.Avatar, a.Age,
		); err != nil {
			return nil, fmt.Errorf("insert assignee: %w", err)
		}
	}

	return s.GetByID(id)
}

func (s *PostStore) GetByID(id int64) (*model.Post, error) {
	row := s.db.QueryRow(`SELECT `+postCols+` FROM posts WHERE id = ?`, id)
	p, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}
	if err := s.hydrate(p); err != nil {
		return nil, err
	}
	return p, nil
}

// ListByFamily returns the family's posts newest first, fully hydrated.
func (s *PostStore) ListByFamily(familyID string) ([]model.Post, error) {
	rows, err := s.db.Query(
		`SELECT `+postCols+` FROM posts WHERE family_id = ? ORDER BY timestamp DESC, id DESC`,
		familyID,
	)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	var posts []model.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range posts {
		if err := s.hydrate(&posts[i]); err != nil {
			return nil, err
		}
	}
	return posts, nil
}

// ToggleReaction adds the (author, type) reaction if absent, or removes it if
// present. Adding a committing reaction also assigns the author once and
// advances a TODO post to IN_PROGRESS. Removal never regresses status or
// unassigns. Returns the updated post, or nil if the post does not exist.
func (s *PostStore) ToggleReaction(postID int64, author model.Member, rt model.ReactionType) (*model.Post, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var familyID string
	err = tx.QueryRow(`SELECT family_id FROM posts WHERE id = ?`, postID).Scan(&familyID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}

	var existing int64
	err = tx.QueryRow(
		`SELECT id FROM post_reactions WHERE post_id = ? AND author_name = ? AND type = ?`,
		postID, author.Name, string(rt),
	).Scan(&existing)
	switch {
	case err == sql.ErrNoRows:
		if _, err := tx.Exec(
			`INSERT INTO post_reactions (post_id, author_name, author_avatar, author_age, type) VALUES (?, ?, ?, ?, ?)`,
			postID, author.Name, author.Avatar, author.Age, string(rt),
		); err != nil {
			return nil, fmt.Errorf("insert reaction: %w", err)
		}
		if rt.CommitsAuthor() {
			if err := s.assignInTx(tx, postID, author); err != nil {
				return nil, err
			}
		}
	case err != nil:
		return nil, fmt.Errorf("check reaction: %w", err)
	default:
		if _, err := tx.Exec(`DELETE FROM post_reactions WHERE id = ?`, existing); err != nil {
			return nil, fmt.Errorf("delete reaction: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return s.GetByID(postID)
}

func (s *PostStore) assignInTx(tx *sql.Tx, postID int64, author model.Member) error {
	var n int
	if err := tx.QueryRow(
		`SELECT COUNT(*) FROM post_assignees WHERE post_id = ? AND name = ?`,
		postID, author.Name,
	).Scan(&n); err != nil {
		return fmt.Errorf("check assignee: %w", err)
	}
	if n > 0 {
		return nil
	}
	if _, err := tx.Exec(
		`INSERT INTO post_assignees (post_id, name, avatar, age) VALUES (?, ?, ?, ?)`,
		postID, author.Name, author.Avatar, author.Age,
	); err != nil {
		return fmt.Errorf("insert assignee: %w", err)
	}
	// First assignee moves TODO to IN_PROGRESS. Never the other way.
	if _, err := tx.Exec(
		`UPDATE posts SET status = ? WHERE id = ? AND status = ?`,
		string(model.StatusInProgress), postID, string(model.StatusTodo),
	); err != nil {
		return fmt.Errorf("advance status: %w", err)
	}
	return nil
}

func (s *PostStore) AddComment(postID int64, author model.Member, content string) (*model.Post, error) {
	var exists int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM posts WHERE id = ?`, postID).Scan(&exists); err != nil {
		return nil, fmt.Errorf("check post: %w", err)
	}
	if exists == 0 {
		return nil, nil
	}
	if _, err := s.db.Exec(
		`INSERT INTO post_comments (post_id, author, author_avatar, content) VALUES (?, ?, ?, ?)`,
		postID, author.Name, author.Avatar, content,
	); err != nil {
		return nil, fmt.Errorf("insert comment: %w", err)
	}
	return s.GetByID(postID)
}

func (s *PostStore) DeleteComment(postID, commentID int64) (*model.Post, error) {
	if _, err := s.db.Exec(
		`DELETE FROM post_comments WHERE id = ? AND post_id = ?`,
		commentID, postID,
	); err != nil {
		return nil, fmt.Errorf("delete comment: %w", err)
	}
	return s.GetByID(postID)
}

// MarkDone sets the post's status to DONE.
func (s *PostStore) MarkDone(postID int64) (*model.Post, error) {
	if _, err := s.db.Exec(
		`UPDATE posts SET status = ? WHERE id = ?`,
		string(model.StatusDone), postID,
	); err != nil {
		return nil, fmt.Errorf("mark done: %w", err)
	}
	return s.GetByID(postID)
}

func (s *PostStore) AddSuggestion(postID int64, content string) (*model.Post, error) {
	if _, err := s.db.Exec(
		`INSERT INTO post_suggestions (post_id, content) VALUES (?, ?)`,
		postID, content,
	); err != nil {
		return nil, fmt.Errorf("insert suggestion: %w", err)
	}
	return s.GetByID(postID)
}

func (s *PostStore) hydrate(p *model.Post) error {
	rows, err := s.db.Query(`SELECT type, url FROM post_media WHERE post_id = ? ORDER BY id ASC`, p.ID)
	if err != nil {
		return fmt.Errorf("list media: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var m model.Media
		if err := rows.Scan(&m.Type, &m.URL); err != nil {
			return fmt.Errorf("scan media: %w", err)
		}
		p.Media = append(p.Media, m)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	aRows, err := s.db.Query(`SELECT name, avatar, age FROM post_assignees WHERE post_id = ? ORDER BY id ASC`, p.ID)
	if err != nil {
		return fmt.Errorf("list assignees: %w", err)
	}
	defer aRows.Close()
	for aRows.Next() {
		var m model.Member
		if err := aRows.Scan(&m.Name, &m.Avatar, &m.Age); err != nil {
			return fmt.Errorf("scan assignee: %w", err)
		}
		p.Assignees = append(p.Assignees, m)
	}
	if err := aRows.Err(); err != nil {
		return err
	}

	rRows, err := s.db.Query(`SELECT author_name, author_avatar, author_age, type FROM post_reactions WHERE post_id = ? ORDER BY id ASC`, p.ID)
	if err != nil {
		return fmt.Errorf("list reactions: %w", err)
	}
	defer rRows.Close()
	for rRows.Next() {
		var r model.Reaction
		if err := rRows.Scan(&r.Author.Name, &r.Author.Avatar, &r.Author.Age, &r.Type); err != nil {
			return fmt.Errorf("scan reaction: %w", err)
		}
		p.Reactions = append(p.Reactions, r)
	}
	if err := rRows.Err(); err != nil {
		return err
	}

	cRows, err := s.db.Query(`SELECT id, author, author_avatar, content, timestamp FROM post_comments WHERE post_id = ? ORDER BY timestamp ASC, id ASC`, p.ID)
	if err != nil {
		return fmt.Errorf("list comments: %w", err)
	}
	defer cRows.Close()
	for cRows.Next() {
		var c model.Comment
		if err := cRows.Scan(&c.ID, &c.Author, &c.AuthorAvatar, &c.Content, &c.Timestamp); err != nil {
			return fmt.Errorf("scan comment: %w", err)
		}
		p.Comments = append(p.Comments, c)
	}
	if err := cRows.Err(); err != nil {
		return err
	}

	sRows, err := s.db.Query(`SELECT id, content FROM post_suggestions WHERE post_id = ? ORDER BY id ASC`, p.ID)
	if err != nil {
		return fmt.Errorf("list suggestions: %w", err)
	}
	defer sRows.Close()
	for sRows.Next() {
		var sug model.AISuggestion
		if err := sRows.Scan(&sug.ID, &sug.Content); err != nil {
			return fmt.Errorf("scan suggestion: %w", err)
		}
		p.AISuggestions = append(p.AISuggestions, sug)
	}
	// The newest suggestion is active. Cycling through older ones is
	// client display state and is not persisted.
	if n := len(p.AISuggestions); n > 0 {
		p.ActiveSuggestion = n - 1
	}
	return sRows.Err()
}
