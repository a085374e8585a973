package canvasrenderer

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"image/png"
	"sync"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/rasterizer"

	"github.com/linchx/tradesnap/layout"
	"github.com/linchx/tradesnap/renderer"
)

// 布局阶段以 px 为单位，渲染时按 1 unit = 1 px 栅格化；
// canvas 的字体面以 pt 计字号，这里在边界做一次换算。
const pxToPt = 72.0 / 25.4

// ErrEncode 标记 PNG 编码失败。该错误只影响当前请求。
var ErrEncode = errors.New("渲染器: PNG 编码失败")

// Renderer 通过 github.com/tdewolff/canvas 执行绘制计划并栅格化为 PNG。
// 同时实现 layout.Typesetter，为布局阶段提供像素宽度测量。
type Renderer struct {
	family *canvas.FontFamily

	faceMu sync.Mutex
	faces  map[faceKey]*canvas.FontFace
}

var (
	_ renderer.Renderer = (*Renderer)(nil)
	_ layout.Typesetter = (*Renderer)(nil)
)

type faceKey struct {
	size float64
	bold bool
	col  layout.Color
}

// Options 允许注入字体字节（主要供测试使用）；为空时走系统字体发现。
type Options struct {
	Regular []byte
	Bold    []byte
}

// NewRenderer 创建渲染器并完成字体加载，加载失败立即返回错误。
func NewRenderer() (*Renderer, error) { return NewRendererWithOptions(Options{}) }

// NewRendererWithOptions 创建渲染器；Options 中未提供的字体按系统路径发现。
// 找不到粗体时回退为常规字重。
func NewRendererWithOptions(opts Options) (*Renderer, error) {
	regular := opts.Regular
	if len(regular) == 0 {
		data, err := discoverFont(envFontRegular, regularFontPaths)
		if err != nil {
			return nil, fmt.Errorf("渲染器: %w", err)
		}
		regular = data
	}
	bold := opts.Bold
	if len(bold) == 0 {
		if data, err := discoverFont(envFontBold, boldFontPaths); err == nil {
			bold = data
		} else {
			bold = regular
		}
	}

	family := canvas.NewFontFamily("tradesnap")
	if err := family.LoadFont(regular, 0, canvas.FontRegular); err != nil {
		return nil, fmt.Errorf("渲染器: 加载常规字体失败: %w", err)
	}
	if err := family.LoadFont(bold, 0, canvas.FontBold); err != nil {
		return nil, fmt.Errorf("渲染器: 加载粗体字体失败: %w", err)
	}

	return &Renderer{
		family: family,
		faces:  make(map[faceKey]*canvas.FontFace),
	}, nil
}

// TextWidth 实现 layout.Typesetter，返回文本的像素宽度。
func (r *Renderer) TextWidth(content string, font layout.Font) float64 {
	return r.face(font, layout.Color{}).TextWidth(content)
}

// Render 按固定顺序执行绘制计划：先全部矩形，再全部文本，最后编码为 PNG。
func (r *Renderer) Render(plan *layout.Plan) ([]byte, error) {
	if plan == nil {
		return nil, fmt.Errorf("渲染器: 绘制计划为空")
	}

	c := canvas.New(plan.Width, plan.Height)
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV) // 使坐标与布局保持左上角为原点

	for _, rect := range plan.Rects {
		ctx.SetFillColor(rgba(rect.Fill))
		ctx.SetStrokeColor(canvas.Transparent)
		ctx.DrawPath(rect.X, rect.Y, canvas.Rectangle(rect.Width, rect.Height))
	}

	for _, tb := range plan.Texts {
		face := r.face(tb.Font, tb.Color)
		align := canvas.Left
		if tb.Align == "center" {
			align = canvas.Center
		}
		// TextBox.Y 是行的垂直中心，换算为基线位置
		metrics := face.Metrics()
		baseline := tb.Y + (metrics.Ascent-metrics.Descent)/2
		ctx.DrawText(tb.X, baseline, canvas.NewTextLine(face, tb.Content, align))
	}

	img := rasterizer.Draw(c, canvas.DPMM(1.0), canvas.DefaultColorSpace)
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) face(font layout.Font, col layout.Color) *canvas.FontFace {
	key := faceKey{size: font.Size, bold: font.Bold, col: col}
	r.faceMu.Lock()
	defer r.faceMu.Unlock()

	if face, ok := r.faces[key]; ok {
		return face
	}
	style := canvas.FontRegular
	if font.Bold {
		style = canvas.FontBold
	}
	face := r.family.Face(font.Size*pxToPt, rgba(col), style, canvas.FontNormal)
	r.faces[key] = face
	return face
}

func rgba(c layout.Color) color.Color {
	return canvas.RGBA(float64(c.R)/255.0, float64(c.G)/255.0, float64(c.B)/255.0, 1.0)
}
