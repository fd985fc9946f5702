package models

// MovieStatus is the editorial state of a movie. Drafts are visible only to
// their owner regardless of the visibility flag.
type MovieStatus string

const (
	MovieStatusDraft     MovieStatus = "DRAFT"
	MovieStatusPublished MovieStatus = "PUBLISHED"
)

func (s MovieStatus) Valid() bool {
	return s == MovieStatusDraft || s == MovieStatusPublished
}

// Visibility is the access-scope flag, independent of the editorial state.
type Visibility string

const (
	VisibilityPublic  Visibility = "PUBLIC"
	VisibilityPrivate Visibility = "PRIVATE"
)

func (v Visibility) Valid() bool {
	return v == VisibilityPublic || v == VisibilityPrivate
}

// Theme is the user's UI preference.
type Theme string

const (
	ThemeLight Theme = "LIGHT"
	ThemeDark  Theme = "DARK"
)

func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark
}
