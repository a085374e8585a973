package layout

// Style 描述快照表格的配色与几何常量。颜色取值是对外约定的一部分：
// 重新实现时必须逐字节复用相同的 RGB 值以保持视觉一致。
type Style struct {
	Width        float64
	Padding      float64
	HeaderHeight float64
	RowHeight    float64
	FooterHeight float64
	PairColWidth float64

	Background      Color
	Header          Color
	Accent          Color
	AccentSecondary Color
	TextPrimary     Color
	TextSecondary   Color
	Border          Color
	RowAlt          Color
	VerdictBuy      Color
	VerdictSell     Color
	VerdictStandBy  Color
}

// DefaultStyle 返回深色主题的默认样式。
func DefaultStyle() Style {
	return Style{
		Width:        1200,
		Padding:      60,
		HeaderHeight: 180,
		RowHeight:    70,
		FooterHeight: 50,
		PairColWidth: 180,

		Background:      mustHex("#0A0E27"),
		Header:          mustHex("#1A1F3A"),
		Accent:          mustHex("#00D9FF"),
		AccentSecondary: mustHex("#7B61FF"),
		TextPrimary:     mustHex("#FFFFFF"),
		TextSecondary:   mustHex("#B8C5D6"),
		Border:          mustHex("#2D3548"),
		RowAlt:          mustHex("#111628"),
		VerdictBuy:      mustHex("#00FF94"),
		VerdictSell:     mustHex("#FF4757"),
		VerdictStandBy:  mustHex("#FFB800"),
	}
}
