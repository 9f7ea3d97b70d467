package ascii

import (
	"image"
	"image/color"
	"strings"
)

// DefaultChars 从深到浅；透明像素一律是空格
const DefaultChars = "@%#*+=-:. "

// Convert 把一帧图片转成字符画，每个元素是一行。
// targetWidth 是每行的字符数，字符高大约是宽的两倍，所以 Y 方向步长翻倍。
func Convert(img image.Image, targetWidth int) []string {
	return ConvertWith(img, targetWidth, DefaultChars)
}

// ConvertWith 用自定义字符集
func ConvertWith(img image.Image, targetWidth int, chars string) []string {
	if img == nil || targetWidth <= 0 {
		return nil
	}
	if chars == "" {
		chars = DefaultChars
	}
	bounds := img.Bounds()

	stepX := bounds.Dx() / targetWidth
	if stepX < 1 {
		stepX = 1
	}
	stepY := stepX * 2

	var result []string
	for y := bounds.Min.Y; y < bounds.Max.Y; y += stepY {
		var line strings.Builder
		for x := bounds.Min.X; x < bounds.Max.X; x += stepX {
			line.WriteByte(pixelToASCII(img.At(x, y), chars))
		}
		result = append(result, strings.TrimRight(line.String(), " "))
	}
	return result
}

// Size 字符画的行列数
func Size(lines []string) (cols, rows int) {
	for _, l := range lines {
		if len(l) > cols {
			cols = len(l)
		}
	}
	return cols, len(lines)
}

func pixelToASCII(c color.Color, chars string) byte {
	r, g, b, a := c.RGBA()
	if a < 0x8000 {
		return ' '
	}
	// RGBA 是预乘过的 16bit，先还原再转灰度
	r, g, b = r*0xffff/a, g*0xffff/a, b*0xffff/a
	gray := 0.299*float64(r>>8) + 0.587*float64(g>>8) + 0.114*float64(b>>8)

	idx := int(gray / 255 * float64(len(chars)-1))
	if idx >= len(chars) {
		idx = len(chars) - 1
	}
	return chars[idx]
}

// Frames 把每一帧都转好，nil 帧对应 nil
func Frames(imgs []image.Image, targetWidth int, chars string) [][]string {
	out := make([][]string, len(imgs))
	for i, img := range imgs {
		out[i] = ConvertWith(img, targetWidth, chars)
	}
	return out
}

// PixelSize 所有帧里最大的那张，按每个字符 charW x charH 像素算
func PixelSize(frames [][]string, charW, charH int) (w, h int) {
	for _, lines := range frames {
		cols, rows := Size(lines)
		w = max(w, cols*charW)
		h = max(h, rows*charH)
	}
	return w, h
}
