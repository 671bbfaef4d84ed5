package avatar

import (
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"

	"github.com/ByLCY/visistat/asset"
)

func nrgbaAt(img image.Image, x, y int) color.NRGBA {
	return color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
}

func TestPlaceholderDrawsLetterOnGray(t *testing.T) {
	img, err := Placeholder(100, "bot")
	if err != nil {
		t.Fatalf("生成占位头像失败: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 100 || b.Dy() != 100 {
		t.Fatalf("占位头像尺寸应为 100x100，实际 %v", b)
	}
	if c := nrgbaAt(img, 2, 2); c != PlaceholderBackground {
		t.Fatalf("角落应为灰色底色，实际 %+v", c)
	}
	white := 0
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			if c := nrgbaAt(img, x, y); c.R > 200 && c.G > 200 && c.B > 200 {
				white++
			}
		}
	}
	if white == 0 {
		t.Fatalf("占位头像上应绘制白色字母")
	}
}

func TestPlaceholderRejectsZeroSize(t *testing.T) {
	if _, err := Placeholder(0, "A"); err == nil {
		t.Fatalf("零尺寸应返回错误")
	}
}

func TestCircularMasksCorners(t *testing.T) {
	red := imaging.New(40, 30, color.NRGBA{R: 255, A: 255})
	img, err := Circular(red, 64)
	if err != nil {
		t.Fatalf("裁剪失败: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 64 || b.Dy() != 64 {
		t.Fatalf("圆形头像尺寸应为 64x64，实际 %v", b)
	}
	if c := nrgbaAt(img, 0, 0); c.A != 0 {
		t.Fatalf("圆外应透明，实际 %+v", c)
	}
	if c := nrgbaAt(img, 32, 32); c.R != 255 || c.A != 255 {
		t.Fatalf("圆心应保留原图颜色，实际 %+v", c)
	}
}

func TestLoadFallsBackToPlaceholder(t *testing.T) {
	res := Load(filepath.Join(t.TempDir(), "missing.png"), 50, "Z")
	if res.Status != asset.FellBack || res.Err == nil {
		t.Fatalf("缺失文件应回退并记录原因: %+v", res)
	}
	if b := res.Value.Bounds(); b.Dx() != 50 {
		t.Fatalf("占位头像尺寸不符: %v", b)
	}

	res = Load("", 50, "")
	if res.Status != asset.FellBack || res.Err != nil {
		t.Fatalf("未配置头像时应静默回退: %+v", res)
	}
}

func TestLoadReadsImageFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "me.png")
	if err := imaging.Save(imaging.New(8, 8, color.NRGBA{B: 255, A: 255}), path); err != nil {
		t.Fatalf("写入测试图片失败: %v", err)
	}
	res := Load(path, 50, "A")
	if res.Status != asset.Loaded || res.Err != nil {
		t.Fatalf("应正常加载头像: %+v", res)
	}
	out, err := Prepare(res.Value, 20, "A")
	if err != nil {
		t.Fatalf("处理头像失败: %v", err)
	}
	if c := nrgbaAt(out, 10, 10); c.B != 255 {
		t.Fatalf("头像中心应为蓝色，实际 %+v", c)
	}
}
