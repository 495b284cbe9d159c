package dbschema

import (
	"encoding/json"

	"streamvibe.tv/read-gateway/app/domain/video"
	"streamvibe.tv/read-gateway/app/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(Video{})
}

type Video struct {
	BaseModel
	Title           string `gorm:"index"`
	Description     string
	ChannelID       uint   `gorm:"index"`
	Category        string `gorm:"index"`
	Tags            string `gorm:"type:text"`
	DurationSeconds int
	VideoURL        string
	ThumbnailURL    string
}

func NewSchemaVideo(v *video.Video) *Video {
	tags, _ := json.Marshal(v.Tags)
	return &Video{
		BaseModel: BaseModel{
			ID:        v.ID,
			CreatedAt: v.CreatedAt,
		},
		Title:           v.Title,
		Description:     v.Description,
		ChannelID:       v.ChannelID,
		Category:        v.Category,
		Tags:            string(tags),
		DurationSeconds: v.DurationSeconds,
		VideoURL:        v.VideoURL,
		ThumbnailURL:    v.ThumbnailURL,
	}
}

func (v *Video) EtoD() *video.Video {
	var tags []string
	if v.Tags != "" {
		_ = json.Unmarshal([]byte(v.Tags), &tags)
	}
	return &video.Video{
		ID:              v.ID,
		Title:           v.Title,
		Description:     v.Description,
		ChannelID:       v.ChannelID,
		Category:        v.Category,
		Tags:            tags,
		DurationSeconds: v.DurationSeconds,
		VideoURL:        v.VideoURL,
		ThumbnailURL:    v.ThumbnailURL,
		CreatedAt:       v.CreatedAt,
	}
}
