package probe

// ElementSize is the size in bytes of one buffer element.
const ElementSize = 4

// NewBuffer allocates a buffer of the given size in bytes and writes every
// element, so each page is backed by its own memory. Untouched pages would all
// map to the kernel's shared zero page and never miss in the cache.
func NewBuffer(bytes uint64) []int32 {
	data := make([]int32, bytes/ElementSize)
	for i := range data {
		data[i] = int32(i)
	}
	return data
}
