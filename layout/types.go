package layout

import "image"

// 该文件定义布局结果与内容描述，供测量、摆放、渲染与调试 JSON 共用。
// 所有坐标与尺寸均为像素，原点在画布左上角。

// Orientation 表示卡片采用的布局方向。
type Orientation int

const (
	Vertical Orientation = iota
	Horizontal
)

func (o Orientation) String() string {
	if o == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// MarshalText 让调试 JSON 输出可读的方向名称。
func (o Orientation) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

// Result 是摆放阶段的输出，可直接交给渲染器。
type Result struct {
	Width       int         `json:"width"`
	Height      int         `json:"height"`
	Orientation Orientation `json:"orientation"`
	Texts       []TextBox   `json:"texts"`
	Images      []ImageBox  `json:"images"`
	Lines       []Line      `json:"lines,omitempty"`
	Manifest    *Manifest   `json:"manifest,omitempty"`
}

// TextBox 表示一行已经定位的文本，Y 为行顶部。
type TextBox struct {
	Content string   `json:"content"`
	X       int      `json:"x"`
	Y       int      `json:"y"`
	Width   int      `json:"width"`
	Font    FontSpec `json:"font"`
	Color   Color    `json:"color"`
}

// ImageKind 标记图片在卡片中的角色。
type ImageKind string

const (
	ImageAvatar ImageKind = "avatar"
	ImageChart  ImageKind = "chart"
)

// ImageBox 描述一张位图的位置与尺寸；Image 为空时渲染器跳过该框。
type ImageBox struct {
	Kind   ImageKind   `json:"kind"`
	Label  string      `json:"label,omitempty"`
	X      int         `json:"x"`
	Y      int         `json:"y"`
	Width  int         `json:"width"`
	Height int         `json:"height"`
	Image  image.Image `json:"-"`
}

// Bounds 返回图片框占据的矩形。
func (b ImageBox) Bounds() image.Rectangle {
	return image.Rect(b.X, b.Y, b.X+b.Width, b.Y+b.Height)
}

// Line 是一条直线（分隔线）。
type Line struct {
	X1    int   `json:"x1"`
	Y1    int   `json:"y1"`
	X2    int   `json:"x2"`
	Y2    int   `json:"y2"`
	Width int   `json:"width"`
	Color Color `json:"color"`
}

// FontSpec 由字体来源与像素字号组成。
type FontSpec struct {
	Src  string  `json:"src"`
	Size float64 `json:"size"`
}

// Size 是测量得到的文本外框。
type Size struct {
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Reading 是一条带前缀的传感器读数，例如 ("CPU: ", "45.0°C")。
type Reading struct {
	Prefix string `json:"prefix"`
	Value  string `json:"value"`
}

// ChartSpec 描述一个饼图指标，Value 取值 0-100。
type ChartSpec struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Content 是已经格式化好的卡片内容。空字符串表示该可选行不存在。
type Content struct {
	UserName     string       `json:"userName"`
	Title        string       `json:"title"`
	SystemInfo   string       `json:"systemInfo"`
	Temperatures []Reading    `json:"temperatures"`
	Power        string       `json:"power,omitempty"`
	Battery      string       `json:"battery,omitempty"`
	Uptime       string       `json:"uptime"`
	CurrentTime  string       `json:"currentTime"`
	Traffic      string       `json:"traffic"`
	Charts       [3]ChartSpec `json:"charts"`
}

// Assets 是摆放阶段需要的位图，尺寸应与 Manifest 给出的一致。
type Assets struct {
	Avatar image.Image
	Charts [3]image.Image
}
