package store

import (
	"database/sql"
	"fmt"

	"hearth/internal/model"
)

type FamilyStore struct {
	db *sql.DB
}

func NewFamilyStore(db *sql.DB) *FamilyStore {
	return &FamilyStore{db: db}
}

func scanFamily(scanner interface{ Scan(...any) error }) (*model.Family, error) {
	var f model.Family
	err := scanner.Scan(&f.ID, &f.Name, &f.InviteCode, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

const familyCols = `id, name, invite_code, created_at, updated_at`

func (s *FamilyStore) Create(id, name, inviteCode string) (*model.Family, error) {
	_, err := s.db.Exec(
		`INSERT INTO families (id, name, invite_code) VALUES (?, ?, ?)`,
		id, name, inviteCode,
	)
	if err != nil {
		return nil, fmt.Errorf("insert family: %w", err)
	}
	return s.GetByID(id)
}

func (s *FamilyStore) GetByID(id string) (*model.Family, error) {
	row := s.db.QueryRow(`SELECT `+familyCols+` FROM families WHERE id = ?`, id)
	f, err := scanFamily(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get family: %w", err)
	}
	return s.withMembers(f)
}

func (s *FamilyStore) GetByInviteCode(code string) (*model.Family, error) {
	row := s.db.QueryRow(`SELECT `+familyCols+` FROM families WHERE invite_code = ?`, code)
	f, err := scanFamily(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get family by invite code: %w", err)
	}
	return s.withMembers(f)
}

func (s *FamilyStore) AddMember(familyID string, userID int64, role string) error {
	_, err := s.db.Exec(
		`INSERT INTO family_members (family_id, user_id, role) VALUES (?, ?, ?)`,
		familyID, userID, role,
	)
	if err != nil {
		return fmt.Errorf("add member: %w", err)
	}
	return nil
}

// IsMember reports whether the user belongs to the family.
func (s *FamilyStore) IsMember(familyID string, userID int64) (bool, error) {
	var n int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM family_members WHERE family_id = ? AND user_id = ?`,
		familyID, userID,
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("check membership: %w", err)
	}
	return n > 0, nil
}

// ListMembers returns the member personas of a family in join order.
func (s *FamilyStore) ListMembers(familyID string) ([]model.Member, error) {
	rows, err := s.db.Query(
		`SELECT u.display_name, u.avatar, u.age
		 FROM users u
		 JOIN family_members fm ON u.id = fm.user_id
		 WHERE fm.family_id = ?
		 ORDER BY fm.created_at ASC, fm.id ASC`,
		familyID,
	)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	defer rows.Close()

	var members []model.Member
	for rows.Next() {
		var m model.Member
		if err := rows.Scan(&m.Name, &m.Avatar, &m.Age); err != nil {
			return nil, fmt.Errorf("scan member: %w", err)
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

// ListFamiliesForUser returns every family the user belongs to, members
// populated.
func (s *FamilyStore) ListFamiliesForUser(userID int64) ([]model.Family, error) {
	rows, err := s.db.Query(
		`SELECT f.id, f.name, f.invite_code, f.created_at, f.updated_at
		 FROM families f
		 JOIN family_members fm ON f.id = fm.family_id
		 WHERE fm.user_id = ?
		 ORDER BY f.name ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list families for user: %w", err)
	}
	defer rows.Close()

	var families []model.Family
	for rows.Next() {
		f, err := scanFamily(rows)
		if err != nil {
			return nil, fmt.Errorf("scan family: %w", err)
		}
		families = append(families, *f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range families {
		members, err := s.ListMembers(families[i].ID)
		if err != nil {
			return nil, err
		}
		families[i].Members = members
	}
	return families, nil
}

func (s *FamilyStore) withMembers(f *model.Family) (*model.Family, error) {
	members, err := s.ListMembers(f.ID)
	if err != nil {
		return nil, err
	}
	f.Members = members
	return f, nil
}
