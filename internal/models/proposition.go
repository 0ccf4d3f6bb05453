package models

// Proposition is one candidate's offer against a post.
//
// ReceiverID duplicates the post owner for query convenience. It is captured
// at creation time and cross-checked against the live post owner on every
// authorization decision, never trusted alone.
type Proposition struct {
	BaseModel
	PostID               string           `gorm:"type:uuid;not null;index" json:"post_id"`
	SenderID             string           `gorm:"type:uuid;not null;index" json:"sender_id"`
	ReceiverID           string           `gorm:"type:uuid;not null;index" json:"receiver_id"`
	Content              string           `gorm:"type:text" json:"content"`
	State                PropositionState `gorm:"default:'pending';index" json:"state"`
	IsFinishedBySender   bool             `gorm:"default:false" json:"is_finished_by_sender"`
	IsFinishedByReceiver bool             `gorm:"default:false" json:"is_finished_by_receiver"`

	Post     *Post `gorm:"foreignKey:PostID" json:"post,omitempty"`
	Sender   *User `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	Receiver *User `gorm:"foreignKey:ReceiverID" json:"receiver,omitempty"`
}
