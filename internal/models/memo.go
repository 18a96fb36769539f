package models

import "strings"

// Memo is a captured piece of shared content.
//
// The schema grew over time: thumbnail, AI summary, tags, archived and
// updated_at were added after the initial release, so every later column
// carries a default and older rows read back with zero values.
type Memo struct {
	ID           int64   `gorm:"primaryKey;autoIncrement" json:"id"`
	Title        string  `gorm:"not null" json:"title"`
	Content      string  `gorm:"type:text;not null" json:"content"`
	Link         *string `json:"link,omitempty"`
	Category     string  `gorm:"not null;index" json:"category"`
	ThumbnailURL *string `json:"thumbnailUrl,omitempty"`
	AISummary    *string `gorm:"type:text" json:"aiSummary,omitempty"`
	Tags         *string `json:"tags,omitempty"` // comma-delimited set
	Archived     bool    `gorm:"not null;default:false" json:"archived"`
	CreatedAt    int64   `gorm:"not null;index" json:"createdAt"` // unix millis
	UpdatedAt    int64   `gorm:"not null" json:"updatedAt"`       // unix millis
}

func (Memo) TableName() string { return "memos" }

// TagList splits the delimited tag column into a slice. Empty column yields nil.
func (m *Memo) TagList() []string {
	if m.Tags == nil || strings.TrimSpace(*m.Tags) == "" {
		return nil
	}
	parts := strings.Split(*m.Tags, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// SetTagList stores tags as the delimited column representation.
func (m *Memo) SetTagList(tags []string) {
	cleaned := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			cleaned = append(cleaned, t)
		}
	}
	if len(cleaned) == 0 {
		m.Tags = nil
		return
	}
	joined := strings.Join(cleaned, ",")
	m.Tags = &joined
}
