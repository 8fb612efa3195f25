package model

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// Candidate is one uploaded résumé. Rows are written once and never updated.
// BlobKey, OriginalFileName and ContentType are empty on rows created before
// those columns existed.
type Candidate struct {
	ID               string         `gorm:"type:varchar(64);primaryKey" json:"id"`
	Name             string         `gorm:"type:text;not null" json:"name"`
	Skills           datatypes.JSON `gorm:"type:jsonb;not null" json:"skills"`
	ResumeURL        string         `gorm:"type:text;not null;default:''" json:"resumeUrl"`
	BlobKey          string         `gorm:"type:text;not null;default:''" json:"blobKey,omitempty"`
	OriginalFileName string         `gorm:"type:text;not null;default:''" json:"originalFileName"`
	ContentType      string         `gorm:"type:varchar(255);not null;default:''" json:"contentType"`
	UploadedAt       time.Time      `gorm:"not null;index" json:"uploadedAt"`
}

// SetSkills encodes skills into the jsonb column.
func (c *Candidate) SetSkills(skills []string) error {
	if skills == nil {
		skills = []string{}
	}
	b, err := json.Marshal(skills)
	if err != nil {
		return err
	}
	c.Skills = datatypes.JSON(b)
	return nil
}

// SkillList decodes the jsonb column. A malformed value yields an empty list.
func (c *Candidate) SkillList() []string {
	var skills []string
	if len(c.Skills) == 0 || json.Unmarshal(c.Skills, &skills) != nil || skills == nil {
		return []string{}
	}
	return skills
}

// HasSkill reports whether skill is one of the candidate's skills (exact match).
func (c *Candidate) HasSkill(skill string) bool {
	for _, s := range c.SkillList() {
		if s == skill {
			return true
		}
	}
	return false
}
