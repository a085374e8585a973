package layout

import (
	"fmt"
	"math"
	"strings"

	"github.com/linchx/tradesnap/session"
)

const (
	snapshotTitle  = "TRADING PLAN SNAPSHOT"
	footerCaption  = "Trade with discipline. Protect your capital. Trust your process."
	timestampLabel = "02 Jan 2006 | 15:04"

	cellInset      = 20 // 文本距列左缘的内边距
	cellTextMargin = 20 // 折行可用宽度 = 列宽 - cellTextMargin
	headerLineStep = 18 // 表头多行文本的行距
	cellLineStep   = 16 // 单元格多行文本的行距
	separatorInset = 15 // 竖分隔线距行上下缘的内缩
)

// 各区域使用的字体。字号以 px 计，加载与回退由渲染器负责。
var (
	fontTitle    = Font{Size: 36, Bold: true}
	fontSubtitle = Font{Size: 18}
	fontHeader   = Font{Size: 16, Bold: true}
	fontCell     = Font{Size: 15}
	fontFooter   = Font{Size: 14}
)

// Build 根据已完成的答案矩阵计算快照表格的绘制计划。本函数是纯函数：
// 给定相同的矩阵、样式与测量后端，输出结构完全一致。
func Build(m *session.Matrix, opts BuildOptions) (*Plan, error) {
	if m == nil {
		return nil, fmt.Errorf("layout: 答案矩阵为空")
	}
	if len(m.Pairs) == 0 {
		return nil, fmt.Errorf("layout: 矩阵不含任何交易对")
	}
	if len(m.Questions) == 0 {
		return nil, fmt.Errorf("layout: 矩阵不含任何问题")
	}
	if opts.Typesetter == nil {
		return nil, fmt.Errorf("layout: 缺少测量后端 Typesetter")
	}

	style := DefaultStyle()
	if opts.Style != nil {
		style = *opts.Style
	}

	b := &planBuilder{
		style:   style,
		measure: opts.Typesetter,
		plan: &Plan{
			Width:  style.Width,
			Height: style.HeaderHeight + float64(len(m.Pairs))*style.RowHeight + style.FooterHeight + 2*style.Padding,
		},
	}

	y := style.Padding
	y = b.header(y, m.CreatedAt.Format(timestampLabel))
	y = b.tableHeader(y, m.Questions)
	for i, pair := range m.Pairs {
		y = b.bodyRow(y, i, pair, m.Answers[pair], len(m.Questions))
	}
	b.footer(y)

	return b.plan, nil
}

type planBuilder struct {
	style   Style
	measure Typesetter
	plan    *Plan
}

func (b *planBuilder) rect(x, y, w, h float64, fill Color) {
	b.plan.Rects = append(b.plan.Rects, Rect{X: x, Y: y, Width: w, Height: h, Fill: fill})
}

func (b *planBuilder) text(content string, x, y float64, align string, font Font, col Color) {
	b.plan.Texts = append(b.plan.Texts, TextBox{
		Content: content, X: x, Y: y, Align: align, Font: font, Color: col,
	})
}

// header 绘制标题区：背景带、顶部强调线、标题、时间戳副标题与装饰条。
func (b *planBuilder) header(y float64, timestamp string) float64 {
	s := b.style
	innerWidth := s.Width - 2*s.Padding

	b.rect(0, 0, s.Width, b.plan.Height, s.Background)
	b.rect(s.Padding, y, innerWidth, s.HeaderHeight, s.Header)
	b.rect(s.Padding, y, innerWidth, 4, s.Accent)

	titleY := y + 30
	b.text(snapshotTitle, s.Width/2, titleY, "center", fontTitle, s.TextPrimary)

	subtitleY := titleY + 50
	b.text(timestamp, s.Width/2, subtitleY, "center", fontSubtitle, s.Accent)

	// 副标题下方的装饰条
	const accentWidth = 100
	b.rect(s.Width/2-accentWidth/2, subtitleY+25, accentWidth, 2, s.AccentSecondary)

	return y + s.HeaderHeight
}

// questionColWidth 计算问题列宽：总宽去掉内边距与交易对列后均分，向下取整。
func (b *planBuilder) questionColWidth(questionCount int) float64 {
	s := b.style
	return math.Floor((s.Width - 2*s.Padding - s.PairColWidth) / float64(questionCount))
}

// tableHeader 绘制表头行：PAIR 列加每个问题列的大写标签，超宽标签折行后垂直居中。
func (b *planBuilder) tableHeader(y float64, questions []string) float64 {
	s := b.style
	b.rect(s.Padding, y, s.Width-2*s.Padding, s.RowHeight, s.Header)

	colX := s.Padding + cellInset
	b.text("PAIR", colX, y+s.RowHeight/2, "left", fontHeader, s.Accent)
	colX += s.PairColWidth

	colWidth := b.questionColWidth(len(questions))
	for _, question := range questions {
		label := strings.ToUpper(question)
		lines := Wrap(label, colWidth-cellTextMargin, func(t string) float64 {
			return b.measure.TextWidth(t, fontHeader)
		})
		if len(lines) == 1 {
			b.text(lines[0], colX, y+s.RowHeight/2, "left", fontHeader, s.Accent)
		} else {
			startY := y + (s.RowHeight-float64(len(lines))*headerLineStep)/2
			for i, line := range lines {
				b.text(line, colX, startY+float64(i)*headerLineStep, "left", fontHeader, s.Accent)
			}
		}
		b.separator(colX, y)
		colX += colWidth
	}
	return y + s.RowHeight
}

// bodyRow 绘制一行交易对：偶数行铺交替底色，行顶画边框线，末列按结论分类着色。
func (b *planBuilder) bodyRow(y float64, rowIdx int, pair string, answers []string, questionCount int) float64 {
	s := b.style
	innerWidth := s.Width - 2*s.Padding

	if rowIdx%2 == 0 {
		b.rect(s.Padding, y, innerWidth, s.RowHeight, s.RowAlt)
	}
	b.rect(s.Padding, y, innerWidth, 1, s.Border)

	colX := s.Padding + cellInset
	b.text(pair, colX, y+s.RowHeight/2, "left", fontCell, s.TextPrimary)
	colX += s.PairColWidth

	colWidth := b.questionColWidth(questionCount)
	for qIdx, answer := range answers {
		if qIdx == questionCount-1 {
			b.verdictCell(answer, colX, y)
		} else {
			b.answerCell(answer, colX, y, colWidth)
		}
		// 原始行为：正文行不画结论列之前的那条分隔线
		if qIdx < questionCount-1 {
			b.separator(colX, y)
		}
		colX += colWidth
	}
	return y + s.RowHeight
}

// answerCell 绘制普通答案单元格：最多显示两行，需要第三行时截断并追加省略号。
func (b *planBuilder) answerCell(answer string, colX, y, colWidth float64) {
	s := b.style
	lines := Wrap(answer, colWidth-cellTextMargin, func(t string) float64 {
		return b.measure.TextWidth(t, fontCell)
	})
	if len(lines) == 1 {
		b.text(lines[0], colX, y+s.RowHeight/2, "left", fontCell, s.TextSecondary)
		return
	}
	shown := lines[:2]
	if len(lines) > 2 {
		shown = []string{lines[0], lines[1] + "..."}
	}
	startY := y + (s.RowHeight-float64(len(shown))*cellLineStep)/2
	for i, line := range shown {
		b.text(line, colX, startY+float64(i)*cellLineStep, "left", fontCell, s.TextSecondary)
	}
}

// verdictCell 绘制结论单元格："{符号} {原文}"，按宽松分类着色，永不折行。
func (b *planBuilder) verdictCell(answer string, colX, y float64) {
	s := b.style
	cat := ClassifyVerdict(answer)
	b.text(cat.Symbol()+" "+answer, colX, y+s.RowHeight/2, "left", fontCell, cat.Color(s))
}

// separator 在列左侧画一条内缩的竖分隔线。
func (b *planBuilder) separator(colX, y float64) {
	s := b.style
	b.rect(colX-10, y+separatorInset, 2, s.RowHeight-2*separatorInset, s.Border)
}

// footer 绘制底部强调线与收尾文案。
func (b *planBuilder) footer(y float64) {
	s := b.style
	b.rect(s.Padding, y, s.Width-2*s.Padding, 2, s.Accent)
	b.text(footerCaption, s.Width/2, y+30, "center", fontFooter, s.TextSecondary)
}
