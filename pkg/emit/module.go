package emit

import "github.com/matzehuels/cannon/pkg/order"

const (
	// BoxSize is the number of slots in one shulker box.
	BoxSize = 27

	// MaxStack is the largest stack of one item kind.
	MaxStack = 64
)

// Item is a stack of fire or blank markers.
type Item struct {
	Fire  bool
	Count int
}

// ID is the block id of the item.
func (it Item) ID() string {
	if it.Fire {
		return "tnt"
	}
	return "ice"
}

// Box is one shulker box of items.
type Box struct {
	Items []Item
}

// Module holds the boxes feeding one activation slot.
type Module struct {
	Name  string
	Slot  int
	Boxes []*Box

	lastFire int // index of the last box holding a fire item, -1 if none
}

func newModule(slot int) *Module {
	return &Module{Name: order.SlotName(slot), Slot: slot, lastFire: -1}
}

// Put appends one shot's marker. Consecutive markers of one kind share a
// stack until it reaches MaxStack.
func (m *Module) Put(fire bool) {
	if len(m.Boxes) == 0 {
		m.Boxes = append(m.Boxes, &Box{})
	}
	box := m.Boxes[len(m.Boxes)-1]
	switch n := len(box.Items); {
	case n > 0 && box.Items[n-1].Fire == fire && box.Items[n-1].Count < MaxStack:
		box.Items[n-1].Count++
	case n == BoxSize:
		box = &Box{}
		m.Boxes = append(m.Boxes, box)
		fallthrough
	default:
		box.Items = append(box.Items, Item{Fire: fire, Count: 1})
	}
	if fire {
		m.lastFire = len(m.Boxes) - 1
	}
}

// Fires reports whether any shot fires this module.
func (m *Module) Fires() bool { return m.lastFire >= 0 }

// strip drops every box after the last firing one and the trailing blanks
// of that box.
func (m *Module) strip() {
	if !m.Fires() {
		m.Boxes = nil
		return
	}
	m.Boxes = m.Boxes[:m.lastFire+1]
	last := m.Boxes[m.lastFire]
	n := len(last.Items)
	for n > 0 && !last.Items[n-1].Fire {
		n--
	}
	last.Items = last.Items[:n]
}

// Markers returns the number of markers held by the module.
func (m *Module) Markers() int {
	n := 0
	for _, b := range m.Boxes {
		for _, it := range b.Items {
			n += it.Count
		}
	}
	return n
}

// Pack builds one module per slot from vectors in firing order. Modules
// that never fire are omitted.
func Pack(vectors []order.Vector) []*Module {
	mods := make([]*Module, order.Slots())
	for i := range mods {
		mods[i] = newModule(i)
	}
	for _, v := range vectors {
		for i, m := range mods {
			m.Put(v[i])
		}
	}

	out := mods[:0]
	for _, m := range mods {
		m.strip()
		if m.Fires() {
			out = append(out, m)
		}
	}
	return out
}
