package model

import "time"

// Poll 投票：固定两到三个选项，计数冗余在行上
type Poll struct {
	ID           uint64     `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID"`
	Question     string     `gorm:"column:question;type:varchar(200);not null;comment:问题"`
	Option1      string     `gorm:"column:option1;type:varchar(100);not null;comment:选项1"`
	Option2      string     `gorm:"column:option2;type:varchar(100);not null;comment:选项2"`
	Option3      string     `gorm:"column:option3;type:varchar(100);comment:选项3（可空）"`
	VotesOption1 int        `gorm:"column:votes_option1;type:int;default:0;comment:选项1票数"`
	VotesOption2 int        `gorm:"column:votes_option2;type:int;default:0;comment:选项2票数"`
	VotesOption3 int        `gorm:"column:votes_option3;type:int;default:0;comment:选项3票数"`
	EndDate      *time.Time `gorm:"column:end_date;type:timestamp;comment:截止时间"`
	CreatedAt    time.Time  `gorm:"column:created_at;type:timestamp;default:now();comment:创建时间"`
}

// Vote 投票记录，(profile, poll) 唯一
type Vote struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID"`
	ProfileID uint64    `gorm:"column:profile_id;type:bigint;not null;uniqueIndex:uk_profile_poll;comment:关联档案ID"`
	PollID    uint64    `gorm:"column:poll_id;type:bigint;not null;uniqueIndex:uk_profile_poll;comment:关联投票ID"`
	Option    string    `gorm:"column:option;type:varchar(100);not null;comment:所投选项"`
	VotedAt   time.Time `gorm:"column:voted_at;type:timestamp;default:now();comment:投票时间"`
}

func (Poll) TableName() string { return "polls" }
func (Vote) TableName() string { return "votes" }
