// Package drag 拖拽的坐标换算，不依赖 ebiten，方便测试
package drag

import "image"

// State 拖拽状态
type State struct {
	dragging bool
	offset   image.Point // 按下时鼠标相对于窗口左上角的偏移
}

// Press 左键按下。global 是鼠标在屏幕上的绝对位置，topLeft 是窗口左上角。
func (s *State) Press(global, topLeft image.Point) {
	s.dragging = true
	s.offset = global.Sub(topLeft)
}

// Move 拖拽中鼠标移动，返回窗口新的左上角。没在拖时 ok 为 false。
// 保持 (新左上角 + offset) == 鼠标绝对位置
func (s *State) Move(global image.Point) (topLeft image.Point, ok bool) {
	if !s.dragging {
		return image.Point{}, false
	}
	return global.Sub(s.offset), true
}

// Release 松开
func (s *State) Release() {
	s.dragging = false
}

func (s *State) Dragging() bool { return s.dragging }

func (s *State) Offset() image.Point { return s.offset }
