package models

import (
	"time"

	"gorm.io/datatypes"
)

// Resume is the desired schema for the resumes table, used by cmd/migrate.
// The runtime never assumes all of these columns exist: reads and writes
// degrade to whatever column set the live database actually has.
type Resume struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	UserID        uint           `gorm:"index;not null" json:"user_id"`
	Title         *string        `gorm:"size:255" json:"title"`
	Summary       datatypes.JSON `json:"summary"`
	Experience    datatypes.JSON `json:"experience"` // legacy combined list, kept for pre-migration rows
	Education     datatypes.JSON `json:"education"`
	Skills        datatypes.JSON `json:"skills"`
	Internship    datatypes.JSON `json:"internship"`
	JobExperience datatypes.JSON `gorm:"column:job_experience" json:"job_experience"`
	Projects      datatypes.JSON `json:"projects"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// ResumeRecord is a resume as read back from a possibly-drifted table. Each
// JSON column carries its decoded value, or the raw stored text when the
// text does not parse (tolerant read). Columns the live table does not
// have are omitted from the payload rather than serialized as null.
type ResumeRecord struct {
	ID            uint                          `json:"id"`
	UserID        uint                          `json:"user_id"`
	Title         *string                       `json:"title"`
	Summary       JSONColumn[SummaryBlock]      `json:"summary,omitzero"`
	Skills        JSONColumn[[]string]          `json:"skills,omitzero"`
	Experience    JSONColumn[[]ExperienceEntry] `json:"experience,omitzero"`
	Education     JSONColumn[[]EducationEntry]  `json:"education,omitzero"`
	Internship    JSONColumn[[]ExperienceEntry] `json:"internship,omitzero"`
	JobExperience JSONColumn[[]ExperienceEntry] `json:"job_experience,omitzero"`
	Projects      JSONColumn[[]ProjectEntry]    `json:"projects,omitzero"`
	CreatedAt     *time.Time                    `json:"created_at,omitempty"`
	UpdatedAt     *time.Time                    `json:"updated_at,omitempty"`
}

// PortfolioPayload is a public portfolio page: the owner's most recent
// resume merged with the account's public profile fields. Field names match
// what the web client has always consumed.
type PortfolioPayload struct {
	ResumeRecord
	AccountName            string  `json:"accountName,omitempty"`
	ProfilePicture         *string `json:"profilePicture,omitempty"`
	ProfilePicturePublicID *string `json:"profilePicturePublicId,omitempty"`
}

// DashboardStats aggregates the numbers shown on the owner dashboard.
type DashboardStats struct {
	TotalResumes    int64      `json:"totalResumes"`
	LastUpdated     *time.Time `json:"lastUpdated"`
	LastResumeTitle *string    `json:"lastResumeTitle"`
	NewThisMonth    int64      `json:"newThisMonth"`
	PortfolioViews  int64      `json:"portfolioViews"`
	ViewsThisWeek   int64      `json:"viewsThisWeek"`
}
