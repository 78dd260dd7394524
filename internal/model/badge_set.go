package model

import (
	"encoding/json"

	"gorm.io/datatypes"
)

// 徽章/挑战ID集合统一存为JSON字符串数组，空集合就是空数组，不用字符串哨兵。

// DecodeSet 解析JSON集合列；空列或解析失败按空集合处理
func DecodeSet(raw datatypes.JSON) []string {
	if len(raw) == 0 {
		return nil
	}
	var items []string
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}
	return items
}

// EncodeSet 集合编码回JSON列
func EncodeSet(items []string) datatypes.JSON {
	if items == nil {
		items = []string{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return datatypes.JSON("[]")
	}
	return b
}

// SetContains 判断集合是否包含item
func SetContains(raw datatypes.JSON, item string) bool {
	for _, v := range DecodeSet(raw) {
		if v == item {
			return true
		}
	}
	return false
}

// SetAdd 向集合追加item，已存在则原样返回（保证无重复）
func SetAdd(raw datatypes.JSON, item string) datatypes.JSON {
	items := DecodeSet(raw)
	for _, v := range items {
		if v == item {
			return EncodeSet(items)
		}
	}
	return EncodeSet(append(items, item))
}
