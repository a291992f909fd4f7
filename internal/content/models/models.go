// Package models defines the site content collections and their write DTOs.
package models

import "strings"

// Collection names a list-shaped content type.
type Collection string

const (
	CollectionPublications  Collection = "publications"
	CollectionPressReleases Collection = "press-releases"
	CollectionProgrammes    Collection = "programmes"
)

// Collections lists every list-shaped content type.
func Collections() []Collection {
	return []Collection{CollectionPublications, CollectionPressReleases, CollectionProgrammes}
}

// IsValid reports whether c is a known collection.
func (c Collection) IsValid() bool {
	switch c {
	case CollectionPublications, CollectionPressReleases, CollectionProgrammes:
		return true
	}
	return false
}

// UploadPath is the per-item upload endpoint suffix; programmes take an icon, the rest an image.
func (c Collection) UploadPath() string {
	if c == CollectionProgrammes {
		return "upload-icon"
	}
	return "upload-image"
}

// Hero tagline defaults shown when the stored value is empty.
const (
	DefaultMealText  = "Share a Meal"
	DefaultMealIcon  = "FaUtensils"
	DefaultSmileText = "Share a Smile"
	DefaultSmileIcon = "FaSmile"
	DefaultHandsText = "Join Hands to End Hunger"
	DefaultHandsIcon = "FaHandsHelping"
)

// Hero is the landing banner.
type Hero struct {
	Title           string `json:"title"`
	Subtitle        string `json:"subtitle"`
	BackgroundImage string `json:"backgroundImage,omitempty"`
	MealText        string `json:"mealText,omitempty"`
	MealIcon        string `json:"mealIcon,omitempty"`
	SmileText       string `json:"smileText,omitempty"`
	SmileIcon       string `json:"smileIcon,omitempty"`
	HandsText       string `json:"handsText,omitempty"`
	HandsIcon       string `json:"handsIcon,omitempty"`
}

// WithDefaults fills empty tagline lines.
func (h Hero) WithDefaults() Hero {
	fill := func(dst *string, def string) {
		if strings.TrimSpace(*dst) == "" {
			*dst = def
		}
	}
	fill(&h.MealText, DefaultMealText)
	fill(&h.MealIcon, DefaultMealIcon)
	fill(&h.SmileText, DefaultSmileText)
	fill(&h.SmileIcon, DefaultSmileIcon)
	fill(&h.HandsText, DefaultHandsText)
	fill(&h.HandsIcon, DefaultHandsIcon)
	return h
}

type Publication struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl,omitempty"`
}

type PressRelease struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Excerpt  string `json:"excerpt"`
	Date     string `json:"date"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// Programme keeps the upstream document id field name.
type Programme struct {
	ID          string `json:"_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Color       string `json:"color,omitempty"`
	Icon        string `json:"icon,omitempty"`
}

// Home is the public landing page aggregate.
type Home struct {
	Hero          Hero           `json:"hero"`
	Publications  []Publication  `json:"publications"`
	PressReleases []PressRelease `json:"pressReleases"`
	Programmes    []Programme    `json:"programmes"`
}

// NewItem returns a pointer to the item type of col.
func NewItem(col Collection) (any, bool) {
	switch col {
	case CollectionPublications:
		return &Publication{}, true
	case CollectionPressReleases:
		return &PressRelease{}, true
	case CollectionProgrammes:
		return &Programme{}, true
	}
	return nil, false
}

// NewList returns a pointer to an empty slice of the item type of col.
func NewList(col Collection) (any, bool) {
	switch col {
	case CollectionPublications:
		return &[]Publication{}, true
	case CollectionPressReleases:
		return &[]PressRelease{}, true
	case CollectionProgrammes:
		return &[]Programme{}, true
	}
	return nil, false
}
