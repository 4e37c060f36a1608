package format

// AlignQuantum returns n rounded up to the next multiple of Quantum.
//
// Example:
//
//	AlignQuantum(1)  = 16
//	AlignQuantum(16) = 16
//	AlignQuantum(17) = 32
func AlignQuantum(n int) int {
	return (n + QuantumMask) & ^QuantumMask
}

// BlockBytes returns the block length needed to hold a payload of size bytes:
// one header byte plus the payload, rounded up to the quantum.
//
// Example:
//
//	BlockBytes(0)  = 16
//	BlockBytes(15) = 16
//	BlockBytes(16) = 32
func BlockBytes(size int) int {
	return AlignQuantum(size + AllocHeaderSize)
}

// ChunksFor converts a quantum-aligned byte length to a chunk count.
// ok is false when n is not aligned or does not fit the 8-bit header.
func ChunksFor(n int) (uint8, bool) {
	if n <= 0 || n&QuantumMask != 0 || n > MaxBlockBytes {
		return 0, false
	}
	return uint8(n / Quantum), true
}
