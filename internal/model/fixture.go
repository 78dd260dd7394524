package model

import "time"

// Fixture 赛程：主队俱乐部对阵对手名。IsLive 仅用于直播模拟与预测锁定，
// FinalResult 只能在非直播状态写入（"2-1" 这类 主-客 比分串，空串表示未出结果）
type Fixture struct {
	ID          uint64    `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID"`
	ClubID      uint64    `gorm:"column:club_id;type:bigint;index;not null;comment:主队俱乐部ID"`
	Opponent    string    `gorm:"column:opponent;type:varchar(100);not null;comment:对手名称"`
	KickoffAt   time.Time `gorm:"column:kickoff_at;type:timestamp;not null;comment:开球时间"`
	IsLive      bool      `gorm:"column:is_live;type:boolean;default:false;comment:是否直播模拟中"`
	FinalResult string    `gorm:"column:final_result;type:varchar(10);default:'';comment:最终比分（主-客）"`
	HomeScore   int       `gorm:"column:home_score;type:int;default:0;comment:模拟主队比分"`
	AwayScore   int       `gorm:"column:away_score;type:int;default:0;comment:模拟客队比分"`
	Minute      int       `gorm:"column:minute;type:int;default:0;comment:模拟比赛进行分钟"`
	CreatedAt   time.Time `gorm:"column:created_at;type:timestamp;default:now();comment:创建时间"`
	UpdatedAt   time.Time `gorm:"column:updated_at;type:timestamp;default:now();comment:更新时间"`
}

// Prediction 比分预测，(profile, fixture) 唯一。
// IsCorrect 一旦置true不再回退；VerifiedAt 首次核验正确时写入且只写一次；
// VerifyError 记录核验时发现的比分格式问题（不向调用方抛错）
type Prediction struct {
	ID              uint64     `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID"`
	ProfileID       uint64     `gorm:"column:profile_id;type:bigint;not null;uniqueIndex:uk_profile_fixture;comment:关联档案ID"`
	FixtureID       uint64     `gorm:"column:fixture_id;type:bigint;not null;uniqueIndex:uk_profile_fixture;comment:关联赛程ID"`
	ClubID          uint64     `gorm:"column:club_id;type:bigint;comment:预测时的主队俱乐部ID"`
	Text            string     `gorm:"column:text;type:varchar(10);comment:预测比分（主-客）"`
	SubmissionCount int        `gorm:"column:submission_count;type:int;default:0;comment:提交次数（上限2）"`
	IsCorrect       bool       `gorm:"column:is_correct;type:boolean;default:false;comment:是否预测正确"`
	VerifiedAt      *time.Time `gorm:"column:verified_at;type:timestamp;comment:首次核验正确时间"`
	VerifyError     string     `gorm:"column:verify_error;type:varchar(128);default:'';comment:核验时记录的格式错误"`
	CreatedAt       time.Time  `gorm:"column:created_at;type:timestamp;default:now();comment:创建/最近提交时间"`
}

func (Fixture) TableName() string    { return "fixtures" }
func (Prediction) TableName() string { return "predictions" }
