package ordmap

import "cmp"

// insert links n, whose key is not yet present, below h and restores the
// left-leaning red-black shape on the way up.
func insert[K cmp.Ordered, V any](h, n *node[K, V]) *node[K, V] {
	if h == nil {
		return n
	}
	if cmp.Less(n.pair.Key, h.pair.Key) {
		h.left = insert(h.left, n)
	} else {
		h.right = insert(h.right, n)
	}

	if isRed(h.right) && !isRed(h.left) {
		h = rotateLeft(h)
	}
	if isRed(h.left) && isRed(h.left.left) {
		h = rotateRight(h)
	}
	if isRed(h.left) && isRed(h.right) {
		flipColors(h)
	}
	return h
}

func isRed[K cmp.Ordered, V any](n *node[K, V]) bool {
	return n != nil && n.red
}

func rotateLeft[K cmp.Ordered, V any](h *node[K, V]) *node[K, V] {
	x := h.right
	h.right = x.left
	x.left = h
	x.red = h.red
	h.red = true
	return x
}

func rotateRight[K cmp.Ordered, V any](h *node[K, V]) *node[K, V] {
	x := h.left
	h.left = x.right
	x.right = h
	x.red = h.red
	h.red = true
	return x
}

func flipColors[K cmp.Ordered, V any](h *node[K, V]) {
	h.red = true
	h.left.red = false
	h.right.red = false
}
