// Package menu 右键菜单。只管布局和点中了哪一项，画在 game 里。
package menu

import "image"

// Action 菜单项对应的动作
type Action int

const (
	ActionNone Action = iota
	ActionSettings
	ActionExit
)

func (a Action) String() string {
	switch a {
	case ActionSettings:
		return "settings"
	case ActionExit:
		return "exit"
	}
	return "none"
}

// Item 一个菜单项
type Item struct {
	Label  string
	Action Action
}

// basicfont.Face7x13 每个字宽 7 像素
const (
	charWidth  = 7
	itemHeight = 16
	padding    = 6
)

// Menu 弹出菜单。窗口就是宠物那么大，所以菜单必须塞在窗口里面。
type Menu struct {
	Items []Item

	open   bool
	at     image.Point
	bounds image.Rectangle
}

// New 默认两项：设置、退出
func New(winW, winH int) *Menu {
	return &Menu{
		Items: []Item{
			{Label: "Settings", Action: ActionSettings},
			{Label: "Exit", Action: ActionExit},
		},
		bounds: image.Rect(0, 0, winW, winH),
	}
}

// Open 在窗口坐标 at 处弹出，超出窗口时往回挪
func (m *Menu) Open(at image.Point) {
	size := m.size()
	if at.X+size.X > m.bounds.Max.X {
		at.X = m.bounds.Max.X - size.X
	}
	if at.Y+size.Y > m.bounds.Max.Y {
		at.Y = m.bounds.Max.Y - size.Y
	}
	if at.X < m.bounds.Min.X {
		at.X = m.bounds.Min.X
	}
	if at.Y < m.bounds.Min.Y {
		at.Y = m.bounds.Min.Y
	}
	m.at = at
	m.open = true
}

func (m *Menu) Close() { m.open = false }

func (m *Menu) IsOpen() bool { return m.open }

// Rect 整个菜单的矩形
func (m *Menu) Rect() image.Rectangle {
	return image.Rectangle{Min: m.at, Max: m.at.Add(m.size())}
}

// ItemRect 第 i 项的矩形
func (m *Menu) ItemRect(i int) image.Rectangle {
	w := m.size().X
	top := m.at.Add(image.Pt(0, i*itemHeight))
	return image.Rectangle{Min: top, Max: top.Add(image.Pt(w, itemHeight))}
}

// LabelPos 第 i 项文字的基线起点
func (m *Menu) LabelPos(i int) image.Point {
	r := m.ItemRect(i)
	return image.Pt(r.Min.X+padding, r.Min.Y+itemHeight-4)
}

// HitTest 点在哪一项上。菜单没开或者点在外面时 ok 为 false。
func (m *Menu) HitTest(p image.Point) (Action, bool) {
	if !m.open || !p.In(m.Rect()) {
		return ActionNone, false
	}
	i := (p.Y - m.at.Y) / itemHeight
	if i < 0 || i >= len(m.Items) {
		return ActionNone, false
	}
	return m.Items[i].Action, true
}

func (m *Menu) size() image.Point {
	longest := 0
	for _, it := range m.Items {
		if len(it.Label) > longest {
			longest = len(it.Label)
		}
	}
	return image.Pt(longest*charWidth+2*padding, len(m.Items)*itemHeight)
}
