package store

import (
	"testing"

	"hearth/internal/database"
)

func setupFamilyTestDB(t *testing.T) (*FamilyStore, *UserStore) {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewFamilyStore(db), NewUserStore(db)
}

func TestFamilyMembership(t *testing.T) {
	fs, us := setupFamilyTestDB(t)

	fam, err := fs.Create("fam_1", "The Smiths", "QRS234")
	if err != nil {
		t.Fatalf("create family: %v", err)
	}
	mom, err := us.Create("mom", "Mom", "👩", 38, "hash")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	dad, err := us.Create("dad", "Dad", "👨", 40, "hash")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	if err := fs.AddMember(fam.ID, mom.ID, "admin"); err != nil {
		t.Fatalf("add member: %v", err)
	}

	ok, err := fs.IsMember(fam.ID, mom.ID)
	if err != nil {
		t.Fatalf("is member: %v", err)
	}
	if !ok {
		t.Error("expected mom to be a member")
	}
	ok, err = fs.IsMember(fam.ID, dad.ID)
	if err != nil {
		t.Fatalf("is member: %v", err)
	}
	if ok {
		t.Error("expected dad not to be a member")
	}

	members, err := fs.ListMembers(fam.ID)
	if err != nil {
		t.Fatalf("list members: %v", err)
	}
	if len(members) != 1 {
		t.Fatalf("members = %d, want 1", len(members))
	}
	if members[0].Name != "Mom" {
		t.Errorf("member name = %q, want %q", members[0].Name, "Mom")
	}
}

func TestGetByInviteCode(t *testing.T) {
	fs, _ := setupFamilyTestDB(t)

	if _, err := fs.Create("fam_1", "The Smiths", "QRS234"); err != nil {
		t.Fatalf("create family: %v", err)
	}

	fam, err := fs.GetByInviteCode("QRS234")
	if err != nil {
		t.Fatalf("get by invite code: %v", err)
	}
	if fam == nil || fam.ID != "fam_1" {
		t.Fatalf("expected fam_1, got %+v", fam)
	}

	missing, err := fs.GetByInviteCode("NOPE99")
	if err != nil {
		t.Fatalf("get missing code: %v", err)
	}
	if missing != nil {
		t.Error("expected nil for unknown invite code")
	}
}

func TestListFamiliesForUser(t *testing.T) {
	fs, us := setupFamilyTestDB(t)

	mom, err := us.Create("mom", "Mom", "👩", 38, "hash")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	for _, id := range []string{"fam_a", "fam_b"} {
		fam, err := fs.Create(id, "Family "+id, "CODE"+id[4:]+"2")
		if err != nil {
			t.Fatalf("create family: %v", err)
		}
		if err := fs.AddMember(fam.ID, mom.ID, "member"); err != nil {
			t.Fatalf("add member: %v", err)
		}
	}

	fams, err := fs.ListFamiliesForUser(mom.ID)
	if err != nil {
		t.Fatalf("list families: %v", err)
	}
	if len(fams) != 2 {
		t.Errorf("families = %d, want 2", len(fams))
	}
}
