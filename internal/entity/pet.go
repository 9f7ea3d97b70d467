package entity

import "image"

// Pet 窗口这边的宠物状态。
// Base 是逻辑锚点（拖拽只改它），Offset 是当前帧附带的上下浮动，只影响显示位置。
type Pet struct {
	Base   image.Point // 窗口逻辑位置 (屏幕坐标)
	Offset int         // 垂直浮动 (像素)，正数往下
	Frame  int         // 当前显示的帧
	Width  int         // 窗口宽度 (像素)
	Height int         // 窗口高度 (像素)

	CPUUsage float64 // CPU 使用率 (0-100)
	MemUsage float64 // 内存 使用率 (0-100)

	dirty bool // 位置或帧变了，窗口还没同步
}

// Render 实现 director.Sink：只记下来，真正画在 Draw 里
func (p *Pet) Render(frame, offset int) {
	if p.Frame != frame || p.Offset != offset {
		p.dirty = true
	}
	p.Frame = frame
	p.Offset = offset
}

// TopLeft 窗口实际左上角 = 锚点 + 浮动
func (p *Pet) TopLeft() image.Point {
	return p.Base.Add(image.Pt(0, p.Offset))
}

// MoveTo 拖拽改锚点
func (p *Pet) MoveTo(base image.Point) {
	if p.Base != base {
		p.dirty = true
	}
	p.Base = base
}

// DragTo 拖拽时窗口左上角跟着鼠标走，锚点要扣掉当前的浮动。
// 偏移为 0 时锚点就是左上角；偏移 -1 时拖到 (580,620)，锚点是 (580,621)。
func (p *Pet) DragTo(topLeft image.Point) {
	p.MoveTo(topLeft.Sub(image.Pt(0, p.Offset)))
}

// Center 放到屏幕正中间
func (p *Pet) Center(screenW, screenH int) {
	p.MoveTo(image.Pt((screenW-p.Width)/2, (screenH-p.Height)/2))
}

// Contains 窗口内坐标是否落在宠物身上
func (p *Pet) Contains(x, y int) bool {
	return x >= 0 && x < p.Width && y >= 0 && y < p.Height
}

// TakeDirty 返回并清掉脏标记
func (p *Pet) TakeDirty() bool {
	d := p.dirty
	p.dirty = false
	return d
}
