package renderer

import (
	"image"

	"github.com/ByLCY/visistat/layout"
)

// Renderer 将布局结果绘制到背景位图上，返回与画布等大的新图像。
// background 为空时使用布局调色板中的背景色填充。
type Renderer interface {
	Render(result *layout.Result, background image.Image) (image.Image, error)
}

// Engine 同时提供文本测量与绘制，合成器需要二者使用同一套字体。
type Engine interface {
	layout.Typesetter
	Renderer
}
