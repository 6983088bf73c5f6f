package Go_Containers

import (
	"math/bits"
)

// NewBitArray returns a BitArray holding at least size bits, all down.
func NewBitArray(size int) BitArray {
	return BitArray{bits: make([]uint, (size+bits.UintSize-1)/bits.UintSize)}
}

// BitArray is a growable bitmap. The zero value is an empty array.
type BitArray struct {
	bits []uint
}

func (u BitArray) Len() int {
	return len(u.bits) * bits.UintSize
}

func (u BitArray) Get(i int) bool {
	return (u.bits[i/bits.UintSize]>>(i%bits.UintSize))&1 == 1
}

func (u BitArray) Up(i int) {
	u.bits[i/bits.UintSize] |= 1 << (i % bits.UintSize)
}

func (u BitArray) Down(i int) {
	u.bits[i/bits.UintSize] &^= 1 << (i % bits.UintSize)
}

// Grow makes room for at least size bits. Existing bits are kept, new ones are down.
func (u *BitArray) Grow(size int) {
	if n := (size + bits.UintSize - 1) / bits.UintSize; n > len(u.bits) {
		u.bits = append(u.bits, make([]uint, n-len(u.bits))...)
	}
}

// Count returns the number of bits that are up.
func (u BitArray) Count() (n int) {
	for _, w := range u.bits {
		n += bits.OnesCount(w)
	}
	return
}
