package models

// HeroInput replaces the editable hero text. The background image is set through upload.
type HeroInput struct {
	Title     string `json:"title" validate:"required,max=200"`
	Subtitle  string `json:"subtitle" validate:"max=500"`
	MealText  string `json:"mealText,omitempty" validate:"max=100"`
	MealIcon  string `json:"mealIcon,omitempty" validate:"omitempty,startswith=Fa,alphanum,max=64"`
	SmileText string `json:"smileText,omitempty" validate:"max=100"`
	SmileIcon string `json:"smileIcon,omitempty" validate:"omitempty,startswith=Fa,alphanum,max=64"`
	HandsText string `json:"handsText,omitempty" validate:"max=100"`
	HandsIcon string `json:"handsIcon,omitempty" validate:"omitempty,startswith=Fa,alphanum,max=64"`
}

type PublicationInput struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"required,max=5000"`
	ImageURL    string `json:"imageUrl,omitempty" validate:"omitempty,url"`
}

type PressReleaseInput struct {
	Title    string `json:"title" validate:"required,max=200"`
	Excerpt  string `json:"excerpt" validate:"required,max=2000"`
	Date     string `json:"date" validate:"required,datetime=2006-01-02"`
	ImageURL string `json:"imageUrl,omitempty" validate:"omitempty,url"`
}

type ProgrammeInput struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"required,max=5000"`
	Color       string `json:"color,omitempty" validate:"omitempty,max=32"`
	Icon        string `json:"icon,omitempty" validate:"omitempty,max=256"`
}

// NewInput returns a pointer to the write DTO for col, ready for decoding.
func NewInput(col Collection) (any, bool) {
	switch col {
	case CollectionPublications:
		return &PublicationInput{}, true
	case CollectionPressReleases:
		return &PressReleaseInput{}, true
	case CollectionProgrammes:
		return &ProgrammeInput{}, true
	}
	return nil, false
}
