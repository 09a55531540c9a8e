package database

import (
	"database/sql"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
)

const demoFamilyID = "fam_demo"

type demoUser struct {
	username    string
	displayName string
	avatar      string
	age         int
}

var demoUsers = []demoUser{
	{"me", "Me", "🙂", 35},
	{"mom", "Mom", "👩", 62},
	{"dad", "Dad", "👨", 65},
	{"alex", "Alex", "🧒", 10},
}

// SeedDemo populates the demo family with four members and a starter
// feed. All demo accounts use the password "demo". Running it twice is
// a no-op.
func SeedDemo(db *sql.DB) error {
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM families WHERE id = ?`, demoFamilyID).Scan(&count); err != nil {
		return fmt.Errorf("check demo family: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("demo"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash demo password: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin seed: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		`INSERT INTO families (id, name, invite_code) VALUES (?, ?, ?)`,
		demoFamilyID, "Demo Family", "DEMO42",
	); err != nil {
		return fmt.Errorf("insert demo family: %w", err)
	}

	for _, u := range demoUsers {
		res, err := tx.Exec(
			`INSERT INTO users (username, display_name, avatar, age, password_hash, active_family_id)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			u.username, u.displayName, u.avatar, u.age, string(hash), demoFamilyID,
		)
		if err != nil {
			return fmt.Errorf("insert demo user %s: %w", u.username, err)
		}
		userID, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("demo user id: %w", err)
		}
		role := "member"
		if u.username == "me" {
			role = "admin"
		}
		if _, err := tx.Exec(
			`INSERT INTO family_members (family_id, user_id, role) VALUES (?, ?, ?)`,
			demoFamilyID, userID, role,
		); err != nil {
			return fmt.Errorf("insert demo membership: %w", err)
		}
	}

	now := time.Now().UTC()
	posts := []struct {
		author  string
		avatar  string
		age     time.Duration
		ptype   string
		content string
		status  string
		prio    string
	}{
		{"Mom", "👩", 2 * time.Hour, "FEELING", "Feeling a bit dizzy this morning, going to rest for a while.", "", ""},
		{"Dad", "👨", 4 * time.Hour, "TASK", "Pick up the prescription from the pharmacy before 6pm.", "TODO", "URGENT"},
		{"Me", "🙂", 26 * time.Hour, "CHORE", "Water the plants on the balcony.", "TODO", "LOW"},
		{"Alex", "🧒", 30 * time.Hour, "DISCOVERY", "Did you know octopuses have three hearts?", "", ""},
		{"Dad", "👨", 50 * time.Hour, "MEDICATION", "Started the new blood pressure medication today.", "", ""},
	}
	for _, p := range posts {
		var status, prio any
		if p.status != "" {
			status = p.status
		}
		if p.prio != "" {
			prio = p.prio
		}
		if _, err := tx.Exec(
			`INSERT INTO posts (family_id, author_name, author_avatar, timestamp, type, content, status, priority)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			demoFamilyID, p.author, p.avatar, now.Add(-p.age), p.ptype, p.content, status, prio,
		); err != nil {
			return fmt.Errorf("insert demo post: %w", err)
		}
	}

	items := []struct {
		name     string
		category string
		status   string
	}{
		{"Milk", "INGREDIENT", "RUNNING_LOW"},
		{"Paper towels", "HOUSEHOLD", "OUT_OF_STOCK"},
		{"Dish soap", "CLEANING", "IN_STOCK"},
		{"Eggs", "INGREDIENT", "IN_STOCK"},
	}
	for _, it := range items {
		if _, err := tx.Exec(
			`INSERT INTO inventory_items (family_id, name, category, status) VALUES (?, ?, ?, ?)`,
			demoFamilyID, it.name, it.category, it.status,
		); err != nil {
			return fmt.Errorf("insert demo inventory: %w", err)
		}
	}

	if _, err := tx.Exec(
		`INSERT INTO health_logs (family_id, author, timestamp, content, mood)
		 VALUES (?, ?, ?, ?, ?)`,
		demoFamilyID, "Mom", now.Add(-2*time.Hour), "Dizzy spell after breakfast, resting now.", "TIRED",
	); err != nil {
		return fmt.Errorf("insert demo health log: %w", err)
	}

	return tx.Commit()
}
