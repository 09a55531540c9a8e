// Package view derives display state from the feed store's collections.
// Everything here is a pure function over snapshots; nothing mutates
// the underlying data.
package view

import (
	"fmt"
	"time"

	"hearth/internal/model"
)

// Tab is a feed category filter.
type Tab string

const (
	TabAll       Tab = "all"
	TabDaily     Tab = "daily"
	TabHealth    Tab = "health"
	TabKnowledge Tab = "knowledge"
)

var tabTypes = map[Tab][]model.PostType{
	TabDaily:     {model.PostTask, model.PostChore, model.PostAppointment, model.PostMealSuggestion},
	TabHealth:    {model.PostFeeling, model.PostEvent, model.PostMedication},
	TabKnowledge: {model.PostDiscovery},
}

// HealthTyped reports whether the post belongs to the health category.
func HealthTyped(p model.Post) bool {
	switch p.Type {
	case model.PostFeeling, model.PostEvent, model.PostMedication:
		return true
	}
	return false
}

// SplitUrgentHealth partitions posts into health-typed posts the viewer
// has not yet acknowledged, and everything else. Order is preserved in
// both partitions.
func SplitUrgentHealth(posts []model.Post, viewer string) (urgent, rest []model.Post) {
	for _, p := range posts {
		if HealthTyped(p) && !p.HasReaction(viewer, model.ReactionGotIt) {
			urgent = append(urgent, p)
		} else {
			rest = append(rest, p)
		}
	}
	return urgent, rest
}

// FilterByTab returns the posts whose type belongs to the tab. TabAll
// passes everything through.
func FilterByTab(posts []model.Post, tab Tab) []model.Post {
	if tab == TabAll {
		return posts
	}
	types, ok := tabTypes[tab]
	if !ok {
		return posts
	}
	var out []model.Post
	for _, p := range posts {
		for _, t := range types {
			if p.Type == t {
				out = append(out, p)
				break
			}
		}
	}
	return out
}

// StockByCategory groups in-stock items by category for the pantry view.
func StockByCategory(items []model.InventoryItem) map[model.InventoryCategory][]model.InventoryItem {
	out := make(map[model.InventoryCategory][]model.InventoryItem)
	for _, it := range items {
		if it.Status != model.StockInStock {
			continue
		}
		out[it.Category] = append(out[it.Category], it)
	}
	return out
}

// ShoppingList selects running-low and out-of-stock items, out-of-stock
// first. The sort is stable: items with equal status keep their order.
func ShoppingList(items []model.InventoryItem) []model.InventoryItem {
	var out, low []model.InventoryItem
	for _, it := range items {
		switch it.Status {
		case model.StockOut:
			out = append(out, it)
		case model.StockRunningLow:
			low = append(low, it)
		}
	}
	return append(out, low...)
}

// Expired marks a countdown whose due time has passed.
const Expired = "Expired"

// Countdown renders the remaining time until due as HH:MM:SS, or the
// expired marker once the due time has passed.
func Countdown(due, now time.Time) string {
	remaining := due.Sub(now)
	if remaining <= 0 {
		return Expired
	}
	remaining = remaining.Round(time.Second)
	h := int(remaining / time.Hour)
	m := int(remaining/time.Minute) % 60
	sec := int(remaining/time.Second) % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, sec)
}

// HasReacted reports whether the viewer already reacted with the type.
func HasReacted(p model.Post, viewer string, rt model.ReactionType) bool {
	return p.HasReaction(viewer, rt)
}

// IsInvolved reports whether the viewer is an assignee or the author of
// a commit-type reaction on the post.
func IsInvolved(p model.Post, viewer string) bool {
	if p.HasAssignee(viewer) {
		return true
	}
	for _, r := range p.Reactions {
		if r.Author.Name == viewer && r.Type.CommitsAuthor() {
			return true
		}
	}
	return false
}
