package layout

import "strings"

// VerdictCategory 是结论列的渲染分类。注意：这里按子串宽松匹配而不是复用
// 会话层的枚举，历史数据或外部导入的结论可能不是标准字面量。
type VerdictCategory int

const (
	VerdictCategoryBuy VerdictCategory = iota
	VerdictCategorySell
	VerdictCategoryStandBy
)

// ClassifyVerdict 对结论文本做大小写不敏感的子串分类：
// 含 "buy" 归为 Buy，含 "sell" 归为 Sell，其余一律 StandBy。
func ClassifyVerdict(answer string) VerdictCategory {
	v := strings.ToLower(answer)
	switch {
	case strings.Contains(v, "buy"):
		return VerdictCategoryBuy
	case strings.Contains(v, "sell"):
		return VerdictCategorySell
	default:
		return VerdictCategoryStandBy
	}
}

// Symbol 返回分类对应的表格符号。
func (c VerdictCategory) Symbol() string {
	switch c {
	case VerdictCategoryBuy:
		return "▲"
	case VerdictCategorySell:
		return "▼"
	default:
		return "■"
	}
}

// Color 返回分类在给定样式下的强调色。
func (c VerdictCategory) Color(style Style) Color {
	switch c {
	case VerdictCategoryBuy:
		return style.VerdictBuy
	case VerdictCategorySell:
		return style.VerdictSell
	default:
		return style.VerdictStandBy
	}
}
