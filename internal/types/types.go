// Package types holds the shared data structures (models) used across
// the application. Keeping them in one place prevents import cycles:
// the parser, storage backends, sorting and handlers all import types
// without depending on each other.
package types

// Alumni is one record read from the data source.
//
// Values are built fresh on every parse pass and never modified after
// construction. ID is only meaningful inside the pass that produced it:
// every pass numbers its accepted rows again starting at 1.
//
// The json:"..." tags fix the wire names. The field order below is also
// the order the keys appear in the encoded object.
type Alumni struct {
	ID                   int    `json:"id"`
	Name                 string `json:"name"`
	University           string `json:"university"`
	NotableAchievements  string `json:"notableAchievements"`
	Major                string `json:"major"`
	FieldAfterGraduation string `json:"fieldAfterGraduation"`
	YearOfGraduation     int    `json:"yearOfGraduation"`
}

// Stats summarises one parse pass for GET /alumni/stats.
type Stats struct {
	TotalAlumni           int `json:"totalAlumni"`
	AverageGraduationYear int `json:"averageGraduationYear"`
	UniqueFields          int `json:"uniqueFields"`
	WithAchievements      int `json:"withAchievements"`
	RejectedRows          int `json:"rejectedRows"`
}
