package dto

import (
	"time"

	"github.com/fadilmartias/talent-vault/internal/model"
)

// CandidateDTO is the JSON shape of a candidate record.
type CandidateDTO struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Skills           []string  `json:"skills"`
	ResumeURL        string    `json:"resumeUrl"`
	BlobKey          string    `json:"blobKey,omitempty"`
	OriginalFileName string    `json:"originalFileName,omitempty"`
	ContentType      string    `json:"contentType,omitempty"`
	UploadedAt       time.Time `json:"uploadedAt"`
}

func NewCandidateDTO(c *model.Candidate) CandidateDTO {
	return CandidateDTO{
		ID:               c.ID,
		Name:             c.Name,
		Skills:           c.SkillList(),
		ResumeURL:        c.ResumeURL,
		BlobKey:          c.BlobKey,
		OriginalFileName: c.OriginalFileName,
		ContentType:      c.ContentType,
		UploadedAt:       c.UploadedAt,
	}
}

// NewCandidateDTOs never returns nil so an empty result encodes as [].
func NewCandidateDTOs(cs []model.Candidate) []CandidateDTO {
	out := make([]CandidateDTO, 0, len(cs))
	for i := range cs {
		out = append(out, NewCandidateDTO(&cs[i]))
	}
	return out
}

// UploadResponseDTO is returned by POST /api/upload.
type UploadResponseDTO struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Data    CandidateDTO `json:"data"`
}
