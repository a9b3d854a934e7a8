package controller

import "productdisplay-go/errcode"

// Nav holds the current position in the ordered product list.
// The list is immutable after construction and never empty, so the index
// stays in [0, len-1] by modulo arithmetic alone.
type Nav struct {
	products []string
	index    int
}

func NewNav(products []string) (*Nav, error) {
	if len(products) == 0 {
		return nil, &errcode.E{C: errcode.InvalidParams, Op: "controller.NewNav", Msg: "empty product list"}
	}
	return &Nav{products: products}, nil
}

func (n *Nav) Next() {
	n.index = (n.index + 1) % len(n.products)
}

func (n *Nav) Prev() {
	n.index = (n.index - 1 + len(n.products)) % len(n.products)
}

func (n *Nav) Current() string { return n.products[n.index] }
func (n *Nav) Index() int      { return n.index }
func (n *Nav) Len() int        { return len(n.products) }
