package model

import (
	"time"

	"gorm.io/datatypes"
)

// UserAccount 账号表：仅存凭据，会话/登录机制由外层承担
type UserAccount struct {
	ID           uint64    `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID"`
	Username     string    `gorm:"column:username;type:varchar(64);uniqueIndex;not null;comment:用户名"`
	PasswordHash string    `gorm:"column:password_hash;type:varchar(128);not null;comment:bcrypt密码哈希"`
	CreatedAt    time.Time `gorm:"column:created_at;type:timestamp;default:now();comment:创建时间"`
}

// FanProfile 球迷档案：全局积分/徽章/预测统计，与账号一对一
// AwardedChallenges 记录已发放的挑战ID集合，保证同一挑战对同一档案只发一次
type FanProfile struct {
	ID                 uint64         `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID"`
	ProfileUUID        string         `gorm:"column:profile_uuid;type:varchar(64);uniqueIndex;not null;comment:对外唯一ID"`
	UserID             uint64         `gorm:"column:user_id;type:bigint;uniqueIndex;not null;comment:关联账号ID"`
	ActiveClubID       *uint64        `gorm:"column:active_club_id;type:bigint;comment:当前主队ID"`
	ActiveClub         *Club          `gorm:"foreignKey:ActiveClubID"`
	SupportedClubs     []Club         `gorm:"many2many:profile_supported_clubs;"`
	Points             int            `gorm:"column:points;type:int;default:0;comment:全局积分"`
	Badges             datatypes.JSON `gorm:"column:badges;type:jsonb;comment:全局徽章集合（JSON数组，无重复）"`
	AwardedChallenges  datatypes.JSON `gorm:"column:awarded_challenges;type:jsonb;comment:已发放挑战ID集合"`
	Predictions        int            `gorm:"column:predictions;type:int;default:0;comment:累计预测次数"`
	CorrectPredictions int            `gorm:"column:correct_predictions;type:int;default:0;comment:已核验正确预测数"`
	CreatedAt          time.Time      `gorm:"column:created_at;type:timestamp;default:now();comment:创建时间"`
	UpdatedAt          time.Time      `gorm:"column:updated_at;type:timestamp;default:now();comment:更新时间"`
}

// ClubStats 档案在单个俱乐部维度的积分/徽章，(profile, club) 唯一
type ClubStats struct {
	ID        uint64         `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID"`
	ProfileID uint64         `gorm:"column:profile_id;type:bigint;not null;uniqueIndex:uk_profile_club;comment:关联档案ID"`
	ClubID    uint64         `gorm:"column:club_id;type:bigint;not null;uniqueIndex:uk_profile_club;comment:关联俱乐部ID"`
	Points    int            `gorm:"column:points;type:int;default:0;comment:俱乐部维度积分"`
	Badges    datatypes.JSON `gorm:"column:badges;type:jsonb;comment:俱乐部维度徽章集合（JSON数组）"`
	UpdatedAt time.Time      `gorm:"column:updated_at;type:timestamp;default:now();comment:更新时间"`
}

func (UserAccount) TableName() string { return "user_accounts" }
func (FanProfile) TableName() string  { return "fan_profiles" }
func (ClubStats) TableName() string   { return "club_stats" }
