package models

// Post is a standing request for a skill. It stays open until one of its
// propositions is accepted, which closes it exactly once; it is never
// reopened. A user holds at most one post per skill at a time.
type Post struct {
	BaseModel
	UserID   string `gorm:"type:uuid;not null;index;uniqueIndex:idx_posts_user_skill" json:"user_id"`
	SkillID  string `gorm:"type:uuid;not null;uniqueIndex:idx_posts_user_skill" json:"skill_id"`
	Title    string `gorm:"not null" json:"title"`
	Content  string `gorm:"type:text;not null" json:"content"`
	IsClosed bool   `gorm:"default:false" json:"is_closed"`

	Author       *User         `gorm:"foreignKey:UserID" json:"author,omitempty"`
	SkillWanted  *Skill        `gorm:"foreignKey:SkillID" json:"skill_wanted,omitempty"`
	Propositions []Proposition `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"propositions,omitempty"`
}
