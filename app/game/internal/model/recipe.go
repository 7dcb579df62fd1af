package model

import "encoding/json"

// NoID 表示ID字段未设置（匹配时不参与比较）
const NoID int32 = -1

// Recipe 合成配方：输入匹配条件 → 输出
// 匹配字段按 MatchIcon → MatchName → MatchID 的优先级只取第一个已设置的字段
type Recipe struct {
	Name string `json:"name"`

	MatchIcon AssetRef `json:"matchIcon"`
	MatchName string   `json:"matchName"`
	MatchID   int32    `json:"matchId"`

	OutputID     int32    `json:"outputId"`
	OutputName   string   `json:"outputName"`
	OutputIcon   AssetRef `json:"outputIcon"`
	OutputPrefab AssetRef `json:"outputPrefab"`
}

// HasOutput 配方是否声明了输出：图标、预制体或配置表物品
func (r *Recipe) HasOutput() bool {
	return r.OutputIcon != "" || r.OutputPrefab != "" || r.OutputID >= 0
}

// UnmarshalJSON 缺省的 matchId/outputId 视为 -1 而不是 0
func (r *Recipe) UnmarshalJSON(data []byte) error {
	type plain Recipe
	p := plain{MatchID: NoID, OutputID: NoID}
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*r = Recipe(p)
	return nil
}
