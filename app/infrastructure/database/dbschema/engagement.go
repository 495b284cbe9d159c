package dbschema

import (
	"streamvibe.tv/read-gateway/app/domain/engagement"
	"streamvibe.tv/read-gateway/app/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(View{}, Like{}, Comment{})
}

type View struct {
	BaseModel
	VideoID      uint `gorm:"index:idx_view_video;index:idx_view_video_time,priority:1"`
	UserID       uint `gorm:"index:idx_view_user_time,priority:1"`
	WatchSeconds int
	// idx_view_video_time and idx_view_user_time carry CreatedAt so the
	// trending rollup and watch-history group-bys stay index scans.
}

type Like struct {
	BaseModel
	VideoID uint `gorm:"uniqueIndex:idx_like_once,priority:1"`
	UserID  uint `gorm:"uniqueIndex:idx_like_once,priority:2"`
}

type Comment struct {
	BaseModel
	VideoID uint `gorm:"index"`
	UserID  uint
	Text    string
}

func NewSchemaView(v *engagement.View) *View {
	return &View{
		BaseModel: BaseModel{
			ID: v.ID,
		},
		VideoID:      v.VideoID,
		UserID:       v.UserID,
		WatchSeconds: v.WatchSeconds,
	}
}

func (v *View) EtoD() *engagement.View {
	return &engagement.View{
		ID:           v.ID,
		VideoID:      v.VideoID,
		UserID:       v.UserID,
		WatchSeconds: v.WatchSeconds,
		CreatedAt:    v.CreatedAt,
	}
}

func NewSchemaLike(l *engagement.Like) *Like {
	return &Like{
		BaseModel: BaseModel{
			ID: l.ID,
		},
		VideoID: l.VideoID,
		UserID:  l.UserID,
	}
}

func (l *Like) EtoD() *engagement.Like {
	return &engagement.Like{
		ID:        l.ID,
		VideoID:   l.VideoID,
		UserID:    l.UserID,
		CreatedAt: l.CreatedAt,
	}
}

func NewSchemaComment(c *engagement.Comment) *Comment {
	return &Comment{
		BaseModel: BaseModel{
			ID: c.ID,
		},
		VideoID: c.VideoID,
		UserID:  c.UserID,
		Text:    c.Text,
	}
}

func (c *Comment) EtoD() *engagement.Comment {
	return &engagement.Comment{
		ID:        c.ID,
		VideoID:   c.VideoID,
		UserID:    c.UserID,
		Text:      c.Text,
		CreatedAt: c.CreatedAt,
	}
}
