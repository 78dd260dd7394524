package sentiment

import (
	"FanPulse/internal/model"

	"github.com/jonreiter/govader"
)

// 复合分阈值：>=0.05 判正面，<=-0.05 判负面，其余中性
const (
	positiveThreshold = 0.05
	negativeThreshold = -0.05
)

// Scorer 情绪打分器：输入文本，输出VADER复合分（-1~1）
type Scorer interface {
	Score(text string) float64
}

type vaderScorer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

// NewVaderScorer 创建基于VADER词典的打分器
func NewVaderScorer() Scorer {
	return &vaderScorer{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

func (s *vaderScorer) Score(text string) float64 {
	return s.analyzer.PolarityScores(text).Compound
}

// Classify 把复合分映射为情绪标签
func Classify(compound float64) model.Sentiment {
	switch {
	case compound >= positiveThreshold:
		return model.SentimentPositive
	case compound <= negativeThreshold:
		return model.SentimentNegative
	default:
		return model.SentimentNeutral
	}
}
