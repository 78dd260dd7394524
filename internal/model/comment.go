package model

import "time"

// Sentiment 评论情绪标签
type Sentiment string

const (
	SentimentPositive Sentiment = "Positive"
	SentimentNeutral  Sentiment = "Neutral"
	SentimentNegative Sentiment = "Negative"
)

// Comment 话题评论（俱乐部维度）
type Comment struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID"`
	ProfileID uint64    `gorm:"column:profile_id;type:bigint;index;not null;comment:作者档案ID"`
	ClubID    uint64    `gorm:"column:club_id;type:bigint;index;not null;comment:关联俱乐部ID"`
	TopicID   *uint64   `gorm:"column:topic_id;type:bigint;index;comment:关联话题ID（可空）"`
	Text      string    `gorm:"column:text;type:text;not null;comment:评论正文"`
	Sentiment Sentiment `gorm:"column:sentiment;type:varchar(10);not null;comment:情绪标签"`
	CreatedAt time.Time `gorm:"column:created_at;type:timestamp;default:now();comment:创建时间"`
}

// NewsArticle 俱乐部新闻
type NewsArticle struct {
	ID          uint64    `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID"`
	ClubID      uint64    `gorm:"column:club_id;type:bigint;index;not null;comment:关联俱乐部ID"`
	Title       string    `gorm:"column:title;type:varchar(200);not null;comment:标题"`
	Summary     string    `gorm:"column:summary;type:text;comment:摘要"`
	Content     string    `gorm:"column:content;type:text;comment:正文"`
	PublishedAt time.Time `gorm:"column:published_at;type:timestamp;default:now();comment:发布时间"`
}

// NewsComment 新闻评论，带点赞/点踩计数（非负）
type NewsComment struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID"`
	ProfileID uint64    `gorm:"column:profile_id;type:bigint;index;not null;comment:作者档案ID"`
	ArticleID uint64    `gorm:"column:article_id;type:bigint;index;not null;comment:关联新闻ID"`
	Text      string    `gorm:"column:text;type:text;not null;comment:评论正文"`
	Sentiment Sentiment `gorm:"column:sentiment;type:varchar(10);not null;comment:情绪标签"`
	Likes     int       `gorm:"column:likes;type:int;default:0;comment:点赞数"`
	Dislikes  int       `gorm:"column:dislikes;type:int;default:0;comment:点踩数"`
	CreatedAt time.Time `gorm:"column:created_at;type:timestamp;default:now();comment:创建时间"`
}

// NewsReaction 点赞/点踩流水：按操作者统计 Engagement Booster 进度
type NewsReaction struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID"`
	ProfileID uint64    `gorm:"column:profile_id;type:bigint;index;not null;comment:操作者档案ID"`
	CommentID uint64    `gorm:"column:comment_id;type:bigint;index;not null;comment:目标新闻评论ID"`
	Action    string    `gorm:"column:action;type:varchar(10);not null;comment:like/dislike"`
	CreatedAt time.Time `gorm:"column:created_at;type:timestamp;default:now();comment:操作时间"`
}

// MatchComment 直播比赛评论，模拟结束时整场清空
type MatchComment struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID"`
	ProfileID uint64    `gorm:"column:profile_id;type:bigint;index;not null;comment:作者档案ID"`
	FixtureID uint64    `gorm:"column:fixture_id;type:bigint;index;not null;comment:关联赛程ID"`
	Text      string    `gorm:"column:text;type:text;not null;comment:评论正文"`
	Sentiment Sentiment `gorm:"column:sentiment;type:varchar(10);default:'Neutral';comment:情绪标签"`
	CreatedAt time.Time `gorm:"column:created_at;type:timestamp;default:now();comment:创建时间"`
}

func (Comment) TableName() string      { return "comments" }
func (NewsArticle) TableName() string  { return "news_articles" }
func (NewsComment) TableName() string  { return "news_comments" }
func (NewsReaction) TableName() string { return "news_reactions" }
func (MatchComment) TableName() string { return "match_comments" }
