package renderer

import "github.com/linchx/tradesnap/layout"

// Renderer 将绘制计划输出为最终图片字节（例如 PNG）。
// 渲染器不做任何布局决策：坐标、颜色与文本均由布局阶段预先解析。
type Renderer interface {
	Render(plan *layout.Plan) ([]byte, error)
}
