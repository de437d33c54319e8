package model

import (
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// EventType tags the kind of occasion an Event plans for.
type EventType string

const (
	EventWedding     EventType = "wedding"
	EventBirthday    EventType = "birthday"
	EventCorporate   EventType = "corporate"
	EventAnniversary EventType = "anniversary"
	EventGraduation  EventType = "graduation"
	EventBabyShower  EventType = "baby_shower"
	EventCustom      EventType = "custom"
)

// EventTypeInfo describes an event type for display.
type EventTypeInfo struct {
	ID          EventType `json:"id"`
	Name        string    `json:"name"`
	Icon        string    `json:"icon"`
	Color       string    `json:"color"`
	Description string    `json:"description"`
}

var eventTypes = []EventTypeInfo{
	{ID: EventWedding, Name: "Wedding", Icon: "heart", Color: "#EC4899", Description: "Plan your perfect wedding day"},
	{ID: EventBirthday, Name: "Birthday Party", Icon: "cake", Color: "#F59E0B", Description: "Celebrate special birthdays"},
	{ID: EventCorporate, Name: "Corporate Event", Icon: "briefcase", Color: "#6366F1", Description: "Organize business events and meetings"},
	{ID: EventAnniversary, Name: "Anniversary", Icon: "ring", Color: "#8B5CF6", Description: "Celebrate milestones and anniversaries"},
	{ID: EventGraduation, Name: "Graduation", Icon: "graduation-cap", Color: "#10B981", Description: "Plan graduation ceremonies and parties"},
	{ID: EventBabyShower, Name: "Baby Shower", Icon: "baby", Color: "#06B6D4", Description: "Celebrate new arrivals"},
	{ID: EventCustom, Name: "Custom Event", Icon: "calendar", Color: "#94A3B8", Description: "Create your own event type"},
}

// EventTypes returns the catalog of known event types in display order.
func EventTypes() []EventTypeInfo {
	return append([]EventTypeInfo(nil), eventTypes...)
}

// Info returns catalog details, falling back to the custom type.
func (t EventType) Info() EventTypeInfo {
	for _, info := range eventTypes {
		if info.ID == t {
			return info
		}
	}
	return eventTypes[len(eventTypes)-1]
}

func (t EventType) Valid() bool {
	for _, info := range eventTypes {
		if info.ID == t {
			return true
		}
	}
	return false
}

func ParseEventType(v string) (EventType, error) {
	key := strings.ToLower(strings.TrimSpace(v))
	key = strings.ReplaceAll(key, "-", "_")
	if key == "" {
		return EventCustom, nil
	}
	t := EventType(key)
	if !t.Valid() {
		return "", invalid("unknown event type %q", v)
	}
	return t, nil
}

// Default colors used when an entity is created without a usable color.
const (
	DefaultProjectColor  = "#0EA5E9"
	DefaultCategoryColor = "#94A3B8"
)

// NormalizeColor returns c as a lowercase #rrggbb hex string, or fallback
// when c does not parse as a color.
func NormalizeColor(c, fallback string) string {
	c = strings.TrimSpace(c)
	if c == "" {
		return fallback
	}
	if !strings.HasPrefix(c, "#") {
		c = "#" + c
	}
	parsed, err := colorful.Hex(c)
	if err != nil {
		return fallback
	}
	return parsed.Hex()
}

// Default budget category ids.
const (
	CategoryVenue          = "venue"
	CategoryCatering       = "catering"
	CategoryPhotography    = "photography"
	CategoryMakeup         = "makeup"
	CategoryFlowers        = "flowers"
	CategoryMusic          = "music"
	CategoryAttire         = "attire"
	CategoryTransportation = "transportation"
)

// DefaultCategories is the seed set written on first run.
func DefaultCategories() []BudgetCategory {
	return []BudgetCategory{
		{ID: CategoryVenue, Name: "Venue", Icon: "building", Color: "#EC4899"},
		{ID: CategoryCatering, Name: "Catering", Icon: "utensils", Color: "#F59E0B"},
		{ID: CategoryPhotography, Name: "Photography", Icon: "camera", Color: "#8B5CF6"},
		{ID: CategoryMakeup, Name: "Makeup & Beauty", Icon: "sparkles", Color: "#10B981"},
		{ID: CategoryFlowers, Name: "Flowers & Decor", Icon: "flower", Color: "#06B6D4"},
		{ID: CategoryMusic, Name: "Music & Entertainment", Icon: "music", Color: "#F97316"},
		{ID: CategoryAttire, Name: "Attire", Icon: "shirt", Color: "#EF4444"},
		{ID: CategoryTransportation, Name: "Transportation", Icon: "car", Color: "#6366F1"},
	}
}
