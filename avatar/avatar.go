// Package avatar 负责加载头像、生成字母占位头像并裁剪为圆形。
package avatar

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/ByLCY/visistat/asset"
)

// 占位头像的底色与字母比例。
var (
	PlaceholderBackground = color.NRGBA{R: 100, G: 100, B: 100, A: 255}
	PlaceholderText       = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
)

const placeholderTextRatio = 0.4

var (
	fontOnce sync.Once
	fontData *opentype.Font
	fontErr  error
)

// Load 打开 path 指向的头像；路径为空或读取失败时回退为字母占位头像，
// 回退结果的 Err 记录读取失败的原因。
func Load(path string, size int, letter string) asset.Result[image.Image] {
	if strings.TrimSpace(path) == "" {
		return fallback(size, letter, nil)
	}
	img, err := imaging.Open(path)
	if err != nil {
		return fallback(size, letter, fmt.Errorf("读取头像 %s 失败: %w", path, err))
	}
	return asset.Ok(img)
}

func fallback(size int, letter string, cause error) asset.Result[image.Image] {
	ph, err := Placeholder(size, letter)
	if err != nil {
		// 字体解析失败时退化为纯色方块
		return asset.Fallback[image.Image](imaging.New(max(size, 1), max(size, 1), PlaceholderBackground), cause)
	}
	return asset.Fallback[image.Image](ph, cause)
}

// Placeholder 生成灰底白字的方形头像，字母取 letter 的首个字符（默认 "A"）。
func Placeholder(size int, letter string) (*image.NRGBA, error) {
	if size <= 0 {
		return nil, fmt.Errorf("头像尺寸无效: %d", size)
	}
	r, _ := utf8.DecodeRuneInString(strings.TrimSpace(letter))
	if r == utf8.RuneError {
		r = 'A'
	}
	text := strings.ToUpper(string(r))

	dst := imaging.New(size, size, PlaceholderBackground)
	face, err := placeholderFace(float64(size) * placeholderTextRatio)
	if err != nil {
		return nil, err
	}
	defer face.Close()

	bounds, advance := font.BoundString(face, text)
	w := advance.Ceil()
	h := (bounds.Max.Y - bounds.Min.Y).Ceil()
	x := (size - w) / 2
	// BoundString 的 Min.Y 为负的上升高度
	y := (size-h)/2 - bounds.Min.Y.Floor()

	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(PlaceholderText),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
	return dst, nil
}

func placeholderFace(size float64) (font.Face, error) {
	fontOnce.Do(func() {
		fontData, fontErr = opentype.Parse(goregular.TTF)
	})
	if fontErr != nil {
		return nil, fmt.Errorf("解析内置字体失败: %w", fontErr)
	}
	return opentype.NewFace(fontData, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// Circular 将 img 缩放到 size×size 并裁剪为抗锯齿圆形，圆外透明。
func Circular(img image.Image, size int) (*image.NRGBA, error) {
	if img == nil {
		return nil, fmt.Errorf("头像为空")
	}
	if size <= 0 {
		return nil, fmt.Errorf("头像尺寸无效: %d", size)
	}
	src := imaging.Fill(img, size, size, imaging.Center, imaging.Lanczos)
	dst := image.NewNRGBA(image.Rect(0, 0, size, size))
	draw.DrawMask(dst, dst.Bounds(), src, image.Point{}, circleMask(size), image.Point{}, draw.Over)
	return dst, nil
}

// Prepare 组合 Circular 与占位回退：img 为空时使用占位头像。
func Prepare(img image.Image, size int, letter string) (*image.NRGBA, error) {
	if img == nil {
		ph, err := Placeholder(size, letter)
		if err != nil {
			return nil, err
		}
		img = ph
	}
	return Circular(img, size)
}

// kappa 为用四段三次贝塞尔曲线逼近圆时的控制点系数。
const kappa = 0.5522847498

func circleMask(size int) *image.Alpha {
	s := float32(size)
	r := s / 2
	k := r * kappa

	z := vector.NewRasterizer(size, size)
	z.MoveTo(s, r)
	z.CubeTo(s, r+k, r+k, s, r, s)
	z.CubeTo(r-k, s, 0, r+k, 0, r)
	z.CubeTo(0, r-k, r-k, 0, r, 0)
	z.CubeTo(r+k, 0, s, r-k, s, r)
	z.ClosePath()

	mask := image.NewAlpha(image.Rect(0, 0, size, size))
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	return mask
}
