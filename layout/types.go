package layout

import (
	"fmt"
	"strconv"
)

// 该文件定义布局结果（绘制计划）的数据结构，供布局计算、渲染与调试 JSON 共用。

// Plan 是布局阶段的最终产物：一组已经解析好绝对坐标与颜色的矩形与文本。
// 渲染器按序先绘制 Rects 再绘制 Texts，不做任何布局决策。
// Plan 一经生成即视为不可变。
type Plan struct {
	Width  float64   `json:"width"`
	Height float64   `json:"height"`
	Rects  []Rect    `json:"rects"`
	Texts  []TextBox `json:"texts"`
}

// Rect 表示一个填充矩形（单位：px，原点在左上角）。
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Fill   Color   `json:"fill"`
}

// TextBox 表示一行已定位的文本。Y 为该行的垂直中心（对应锚点 middle）。
// Align 为 left 时 X 是行左缘，为 center 时 X 是行的水平中心。
type TextBox struct {
	Content string  `json:"content"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Align   string  `json:"align"`
	Font    Font    `json:"font"`
	Color   Color   `json:"color"`
}

// Font 描述字号（px）与粗细。具体字体文件由渲染器负责发现与加载。
type Font struct {
	Size float64 `json:"size"`
	Bold bool    `json:"bold,omitempty"`
}

// Color 采用 0-255 的 RGB 数值。
type Color struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

// Hex 返回 #RRGGBB 形式的颜色字符串。
func (c Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// ParseHex 解析 #RRGGBB 形式的颜色字符串。
func ParseHex(s string) (Color, error) {
	if len(s) != 7 || s[0] != '#' {
		return Color{}, fmt.Errorf("layout: 非法颜色 %q", s)
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("layout: 非法颜色 %q: %w", s, err)
	}
	return Color{R: int(v >> 16 & 0xFF), G: int(v >> 8 & 0xFF), B: int(v & 0xFF)}, nil
}

func mustHex(s string) Color {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}
