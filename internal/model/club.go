package model

// Club 俱乐部：仅管理员可改
type Club struct {
	ID           uint64 `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID"`
	Name         string `gorm:"column:name;type:varchar(100);uniqueIndex;not null;comment:俱乐部名称"`
	PrimaryColor string `gorm:"column:primary_color;type:varchar(7);default:'#000000';comment:品牌主色"`
}

// Topic 俱乐部下的讨论话题
type Topic struct {
	ID     uint64 `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID"`
	ClubID uint64 `gorm:"column:club_id;type:bigint;index;not null;comment:关联俱乐部ID"`
	Name   string `gorm:"column:name;type:varchar(100);not null;comment:话题名称"`
}

func (Club) TableName() string  { return "clubs" }
func (Topic) TableName() string { return "topics" }
