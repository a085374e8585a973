package layout

// BuildOptions 配置布局阶段所需的依赖，例如文本测量后端。
type BuildOptions struct {
	Typesetter Typesetter
	// Style 为空时使用 DefaultStyle()。
	Style *Style
}

// Typesetter 负责测量文本在指定字体下的像素宽度。
// 渲染器实现该接口；测试可注入确定性的测量函数。
type Typesetter interface {
	TextWidth(content string, font Font) float64
}
