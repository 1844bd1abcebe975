package models

// EventReaction: mỗi cặp (person, event) tối đa một dòng.
// Liked và Disliked không bao giờ cùng true.
type EventReaction struct {
	ID       uint `gorm:"primaryKey;autoIncrement" json:"id"`
	EventID  uint `gorm:"not null;uniqueIndex:idx_reaction_event_person" json:"event_id"`
	PersonID uint `gorm:"not null;uniqueIndex:idx_reaction_event_person" json:"person_id"`
	Liked    bool `gorm:"default:false" json:"liked"`
	Disliked bool `gorm:"default:false" json:"disliked"`
}

func (EventReaction) TableName() string {
	return "event_reactions"
}
