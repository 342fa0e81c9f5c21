package physics

import "strconv"

// BodyID is a stable handle into an Arena: a 1-based slot index in the low
// 32 bits and the slot generation in the high 32 bits. The zero value is
// never a live body.
type BodyID uint64

func makeBodyID(index, gen uint32) BodyID {
	return BodyID(uint64(gen)<<32 | uint64(index))
}

func (id BodyID) Index() uint32 {
	return uint32(id)
}

func (id BodyID) Generation() uint32 {
	return uint32(uint64(id) >> 32)
}

func (id BodyID) Valid() bool {
	return id.Index() > 0
}

func (id BodyID) String() string {
	return "body#" + strconv.FormatUint(uint64(id.Index()), 10) + "v" + strconv.FormatUint(uint64(id.Generation()), 10)
}
