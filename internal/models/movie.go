package models

import "time"

// Grade is the age-appropriateness classification of a movie.
const (
	GradeGeneral    = "G"    // suitable for all ages
	GradeProtected  = "P"    // under 6 not admitted
	GradeParental12 = "PG12" // under 12 not admitted
	GradeParental15 = "PG15" // under 15 not admitted
	GradeRestricted = "R"    // under 18 not admitted
)

// Grades lists every valid grade value.
var Grades = []string{GradeGeneral, GradeProtected, GradeParental12, GradeParental15, GradeRestricted}

// ValidGrade reports whether g is one of the five grade labels.
func ValidGrade(g string) bool {
	for _, grade := range Grades {
		if g == grade {
			return true
		}
	}
	return false
}

type Movie struct {
	ID           int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	TagID        int64     `json:"tag_id" gorm:"not null;index"`
	Name         string    `json:"name" gorm:"not null"`
	Content      string    `json:"content" gorm:"not null;size:500"`
	OfficialSite string    `json:"official_site" gorm:"type:text"`
	Runtime      int       `json:"runtime" gorm:"not null"` // minutes
	Image        string    `json:"image"`                   // empty until a poster is uploaded
	Grade        string    `json:"grade" gorm:"not null"`
	DateReleased time.Time `json:"date_released" gorm:"not null"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Associations
	Tag     *Tag     `json:"tag,omitempty" gorm:"foreignKey:TagID"`
	Reviews []Review `json:"reviews,omitempty" gorm:"foreignKey:MovieID;constraint:OnDelete:CASCADE;"`
}

func (Movie) TableName() string {
	return "movies"
}
