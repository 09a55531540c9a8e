package memory

import (
	"math/rand"
	"time"

	"hearth/internal/model"
)

const (
	DemoFamilyID   = "fam_demo"
	demoInviteCode = "DEMO42"
)

const inviteAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

func newInviteCode() string {
	code := make([]byte, 6)
	for i := range code {
		code[i] = inviteAlphabet[rand.Intn(len(inviteAlphabet))]
	}
	return string(code)
}

// seed loads the demo family: four members, a starter feed, a stocked
// pantry, and one health log. All accounts use the password "demo".
func (r *Repo) seed() {
	me := model.Member{Name: "Me", Avatar: "🙂", Age: 35}
	mom := model.Member{Name: "Mom", Avatar: "👩", Age: 62}
	dad := model.Member{Name: "Dad", Avatar: "👨", Age: 65}
	alex := model.Member{Name: "Alex", Avatar: "🧒", Age: 10}

	r.families[DemoFamilyID] = &model.Family{
		ID:         DemoFamilyID,
		Name:       "demo",
		InviteCode: demoInviteCode,
		Members:    []model.Member{me, mom, dad, alex},
		CreatedAt:  time.Now().Add(-90 * 24 * time.Hour),
	}

	for username, persona := range map[string]model.Member{
		"me": me, "mom": mom, "dad": dad, "alex": alex,
	} {
		r.users[username] = &account{
			persona:        persona,
			password:       "demo",
			familyIDs:      []string{DemoFamilyID},
			activeFamilyID: DemoFamilyID,
		}
	}

	now := time.Now()
	r.posts[DemoFamilyID] = []model.Post{
		{
			ID: r.id(), FamilyID: DemoFamilyID,
			Author: mom.Name, AuthorAvatar: mom.Avatar,
			Timestamp: now.Add(-2 * time.Hour),
			Type:      model.PostFeeling,
			Content:   "Feeling a bit dizzy this morning, going to rest for a while.",
			Assignees: []model.Member{}, Reactions: []model.Reaction{}, Comments: []model.Comment{},
		},
		{
			ID: r.id(), FamilyID: DemoFamilyID,
			Author: dad.Name, AuthorAvatar: dad.Avatar,
			Timestamp: now.Add(-4 * time.Hour),
			Type:      model.PostTask,
			Content:   "Pick up the prescription from the pharmacy before 6pm.",
			Status:    model.StatusTodo, Priority: model.PriorityUrgent,
			Assignees: []model.Member{}, Reactions: []model.Reaction{}, Comments: []model.Comment{},
		},
		{
			ID: r.id(), FamilyID: DemoFamilyID,
			Author: me.Name, AuthorAvatar: me.Avatar,
			Timestamp: now.Add(-26 * time.Hour),
			Type:      model.PostChore,
			Content:   "Water the plants on the balcony.",
			Status:    model.StatusTodo, Priority: model.PriorityLow,
			Assignees: []model.Member{}, Reactions: []model.Reaction{}, Comments: []model.Comment{},
		},
		{
			ID: r.id(), FamilyID: DemoFamilyID,
			Author: alex.Name, AuthorAvatar: alex.Avatar,
			Timestamp: now.Add(-30 * time.Hour),
			Type:      model.PostDiscovery,
			Content:   "Did you know octopuses have three hearts?",
			Assignees: []model.Member{}, Reactions: []model.Reaction{}, Comments: []model.Comment{},
		},
		{
			ID: r.id(), FamilyID: DemoFamilyID,
			Author: dad.Name, AuthorAvatar: dad.Avatar,
			Timestamp: now.Add(-50 * time.Hour),
			Type:      model.PostMedication,
			Content:   "Started the new blood pressure medication today.",
			Subject:   &dad,
			Assignees: []model.Member{}, Reactions: []model.Reaction{}, Comments: []model.Comment{},
		},
	}

	r.inventory[DemoFamilyID] = []model.InventoryItem{
		{ID: r.id(), FamilyID: DemoFamilyID, Name: "Milk", Category: model.CategoryIngredient, Status: model.StockRunningLow, CreatedAt: now.Add(-72 * time.Hour)},
		{ID: r.id(), FamilyID: DemoFamilyID, Name: "Paper towels", Category: model.CategoryHousehold, Status: model.StockOut, CreatedAt: now.Add(-48 * time.Hour)},
		{ID: r.id(), FamilyID: DemoFamilyID, Name: "Dish soap", Category: model.CategoryCleaning, Status: model.StockInStock, CreatedAt: now.Add(-24 * time.Hour)},
		{ID: r.id(), FamilyID: DemoFamilyID, Name: "Eggs", Category: model.CategoryIngredient, Status: model.StockInStock, CreatedAt: now.Add(-12 * time.Hour)},
	}

	r.health[DemoFamilyID] = []model.HealthLog{
		{
			ID: r.id(), FamilyID: DemoFamilyID,
			Author:    mom.Name,
			Timestamp: now.Add(-2 * time.Hour),
			Content:   "Dizzy spell after breakfast, resting now.",
			Mood:      model.MoodTired,
		},
	}
}
