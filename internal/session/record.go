package session

import "time"

// Record is the single durable row holding the authenticated session.
// Token and user are written and cleared together; a row with one but not
// the other never exists.
type Record struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	Token     string    `gorm:"column:token;type:text;not null"`
	UserJSON  string    `gorm:"column:user_json;type:text;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName exposes the table backing the persisted session.
func (Record) TableName() string {
	return "session_records"
}
