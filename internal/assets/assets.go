// Package assets 找到并读取宠物的帧图片。
//
// 读不到的帧返回 nil，不算错：窗口会画空白，尺寸退回到保底值。
package assets

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strconv"

	_ "image/png" // 必加，否则 image: unknown format

	"github.com/hashicorp/go-hclog"
	"github.com/nfnt/resize"
)

// BundleRootEnv 打包工具注入的资源根目录
const BundleRootEnv = "WANWAN_BUNDLE_ROOT"

// Resolver 决定资源目录相对于谁
type Resolver struct {
	Getenv     func(string) string
	Executable func() (string, error)
	Stat       func(string) (os.FileInfo, error)
}

// DefaultResolver 用真实的环境变量和可执行文件路径
func DefaultResolver() Resolver {
	return Resolver{
		Getenv:     os.Getenv,
		Executable: os.Executable,
		Stat:       os.Stat,
	}
}

// Resolve 优先级：环境变量 > 可执行文件所在目录（里面确实有资源时）> 当前工作目录
func (r Resolver) Resolve(dir string) string {
	if filepath.IsAbs(dir) {
		return dir
	}
	if root := r.Getenv(BundleRootEnv); root != "" {
		return filepath.Join(root, dir)
	}
	if exe, err := r.Executable(); err == nil {
		candidate := filepath.Join(filepath.Dir(exe), dir)
		if info, err := r.Stat(candidate); err == nil && info.IsDir() {
			return candidate
		}
	}
	return dir
}

// FramePath 第 i 帧（从 0 开始）对应 dir/<i+1>.png
func FramePath(dir string, i int) string {
	return filepath.Join(dir, strconv.Itoa(i+1)+".png")
}

// Load 读 count 帧。scale != 1 时缩放。
// 返回的切片长度总是 count，读不出来的位置是 nil；loaded 是成功读到的帧数。
func Load(dir string, count int, scale float64, logger hclog.Logger) (frames []image.Image, loaded int) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	frames = make([]image.Image, count)
	for i := range frames {
		path := FramePath(dir, i)
		img, err := decode(path)
		if err != nil {
			logger.Warn("frame unavailable, drawing blank", "path", path, "error", err)
			continue
		}
		frames[i] = Scale(img, scale)
		loaded++
	}
	logger.Debug("frames loaded", "dir", dir, "loaded", loaded, "count", count)
	return frames, loaded
}

func decode(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// Scale 按比例缩放，宽高至少 1 像素
func Scale(img image.Image, scale float64) image.Image {
	if img == nil || scale == 1 || scale <= 0 {
		return img
	}
	w := uint(float64(img.Bounds().Dx()) * scale)
	if w < 1 {
		w = 1
	}
	// 高度传 0 保持纵横比
	return resize.Resize(w, 0, img, resize.Lanczos3)
}

// Size 第一张能用的帧的尺寸，一张都没有时用保底尺寸
func Size(frames []image.Image, fallbackW, fallbackH int) (w, h int) {
	for _, f := range frames {
		if f != nil {
			b := f.Bounds()
			return b.Dx(), b.Dy()
		}
	}
	return fallbackW, fallbackH
}
