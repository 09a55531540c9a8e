package store

import (
	"database/sql"
	"fmt"

	"hearth/internal/model"
)

type InventoryStore struct {
	db *sql.DB
}

func NewInventoryStore(db *sql.DB) *InventoryStore {
	return &InventoryStore{db: db}
}

func scanInventoryItem(scanner interface{ Scan(...any) error }) (*model.InventoryItem, error) {
	var it model.InventoryItem
	err := scanner.Scan(
		&it.ID, &it.FamilyID, &it.Name, &it.Image, &it.Category,
		&it.Brand, &it.Store, &it.Notes, &it.UsageScenario, &it.Status,
		&it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

const inventoryCols = `id, family_id, name, image, category, brand, store, notes, usage_scenario, status, created_at, updated_at`

func (s *InventoryStore) Create(it *model.InventoryItem) (*model.InventoryItem, error) {
	status := it.Status
	if status == "" {
		status = model.StockInStock
	}
	result, err := s.db.Exec(
		`INSERT INTO inventory_items (family_id, name, image, category, brand, store, notes, usage_scenario, status)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		it.FamilyID, it.Name, it.Image, string(it.Category), it.Brand, it.Store, it.Notes, it.UsageScenario, string(status),
	)
	if err != nil {
		return nil, fmt.Errorf("insert inventory item: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *InventoryStore) GetByID(id int64) (*model.InventoryItem, error) {
	row := s.db.QueryRow(`SELECT `+inventoryCols+` FROM inventory_items WHERE id = ?`, id)
	it, err := scanInventoryItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get inventory item: %w", err)
	}
	if err := s.loadComments(it); err != nil {
		return nil, err
	}
	return it, nil
}

func (s *InventoryStore) ListByFamily(familyID string) ([]model.InventoryItem, error) {
	rows, err := s.db.Query(
		`SELECT `+inventoryCols+` FROM inventory_items WHERE family_id = ? ORDER BY created_at ASC, id ASC`,
		familyID,
	)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	defer rows.Close()

	var items []model.InventoryItem
	for rows.Next() {
		it, err := scanInventoryItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory item: %w", err)
		}
		items = append(items, *it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range items {
		if err := s.loadComments(&items[i]); err != nil {
			return nil, err
		}
	}
	return items, nil
}

func (s *InventoryStore) Update(id int64, it *model.InventoryItem) (*model.InventoryItem, error) {
	_, err := s.db.Exec(
		`UPDATE inventory_items
		 SET name = ?, image = ?, category = ?, brand = ?, store = ?, notes = ?, usage_scenario = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		it.Name, it.Image, string(it.Category), it.Brand, it.Store, it.Notes, it.UsageScenario, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update inventory item: %w", err)
	}
	return s.GetByID(id)
}

func (s *InventoryStore) UpdateStatus(id int64, status model.InventoryStatus) (*model.InventoryItem, error) {
	_, err := s.db.Exec(
		`UPDATE inventory_items SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		string(status), id,
	)
	if err != nil {
		return nil, fmt.Errorf("update inventory status: %w", err)
	}
	return s.GetByID(id)
}

func (s *InventoryStore) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM inventory_items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete inventory item: %w", err)
	}
	return nil
}

func (s *InventoryStore) AddComment(itemID int64, author model.Member, content string) (*model.InventoryItem, error) {
	var exists int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM inventory_items WHERE id = ?`, itemID).Scan(&exists); err != nil {
		return nil, fmt.Errorf("check item: %w", err)
	}
	if exists == 0 {
		return nil, nil
	}
	if _, err := s.db.Exec(
		`INSERT INTO inventory_comments (item_id, author, author_avatar, content) VALUES (?, ?, ?, ?)`,
		itemID, author.Name, author.Avatar, content,
	); err != nil {
		return nil, fmt.Errorf("insert inventory comment: %w", err)
	}
	return s.GetByID(itemID)
}

func (s *InventoryStore) DeleteComment(itemID, commentID int64) (*model.InventoryItem, error) {
	if _, err := s.db.Exec(
		`DELETE FROM inventory_comments WHERE id = ? AND item_id = ?`,
		commentID, itemID,
	); err != nil {
		return nil, fmt.Errorf("delete inventory comment: %w", err)
	}
	return s.GetByID(itemID)
}

func (s *InventoryStore) loadComments(it *model.InventoryItem) error {
	rows, err := s.db.Query(
		`SELECT id, author, author_avatar, content, timestamp FROM inventory_comments WHERE item_id = ? ORDER BY timestamp ASC, id ASC`,
		it.ID,
	)
	if err != nil {
		return fmt.Errorf("list inventory comments: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var c model.Comment
		if err := rows.Scan(&c.ID, &c.Author, &c.AuthorAvatar, &c.Content, &c.Timestamp); err != nil {
			return fmt.Errorf("scan inventory comment: %w", err)
		}
		it.Comments = append(it.Comments, c)
	}
	return rows.Err()
}
