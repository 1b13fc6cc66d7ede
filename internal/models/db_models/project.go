package db_models

import (
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ProjectStatus string

const (
	ProjectStatusCreated    ProjectStatus = "created"
	ProjectStatusGenerating ProjectStatus = "generating"
	ProjectStatusCompleted  ProjectStatus = "completed"
	ProjectStatusError      ProjectStatus = "error"
)

type Project struct {
	BaseModel
	AccountID uuid.UUID `gorm:"index"`
	Name      string    `gorm:"size:200"`
	Prompt    string    `gorm:"type:text"`
	Status    ProjectStatus `gorm:"size:16;index;default:created"`

	// Generated bundle: relative path -> file content.
	Files datatypes.JSON `gorm:"type:jsonb;default:'{}'"`
	// Self-contained document rendered in the client's preview iframe.
	PreviewHTML string `gorm:"type:text"`

	Account Account `gorm:"foreignKey:AccountID"`
}

func (p *Project) FileSet() map[string]string {
	files := map[string]string{}
	if len(p.Files) > 0 {
		_ = json.Unmarshal(p.Files, &files)
	}
	return files
}

func (p *Project) SetFileSet(files map[string]string) {
	if files == nil {
		files = map[string]string{}
	}
	raw, _ := json.Marshal(files)
	p.Files = raw
}
