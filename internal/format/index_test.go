package format

import "testing"

func TestBlockIndexOffsets(t *testing.T) {
	i := BlockIndex(3)
	if i.Offset() != 48 {
		t.Fatalf("Offset=%d want 48", i.Offset())
	}
	if i.PayloadAddr() != 49 {
		t.Fatalf("PayloadAddr=%d want 49", i.PayloadAddr())
	}
	if NoBlock.Valid() || !FirstBlock.Valid() || !BlockIndex(255).Valid() {
		t.Fatalf("unexpected Valid results")
	}
	if NoBlock.String() != "nil" || BlockIndex(7).String() != "#7" {
		t.Fatalf("unexpected String: %s %s", NoBlock, BlockIndex(7))
	}
}

func TestIndexAt(t *testing.T) {
	if _, ok := IndexAt(0); ok {
		t.Fatalf("slot 0 must be rejected")
	}
	if _, ok := IndexAt(15); ok {
		t.Fatalf("offsets inside slot 0 must be rejected")
	}
	if i, ok := IndexAt(16); !ok || i != 1 {
		t.Fatalf("IndexAt(16)=%v,%v", i, ok)
	}
	if i, ok := IndexAt(HeapSize - 1); !ok || i != 255 {
		t.Fatalf("IndexAt(last)=%v,%v", i, ok)
	}
	if _, ok := IndexAt(HeapSize); ok {
		t.Fatalf("HeapSize must be rejected")
	}
	if _, ok := IndexAt(-1); ok {
		t.Fatalf("negative offsets must be rejected")
	}
}

func TestIndexForPayload(t *testing.T) {
	if i, ok := IndexForPayload(17); !ok || i != 1 {
		t.Fatalf("IndexForPayload(17)=%v,%v", i, ok)
	}
	for _, addr := range []int{0, 1, 16, 18, 33 + 1, HeapSize + 1} {
		if _, ok := IndexForPayload(addr); ok {
			t.Fatalf("IndexForPayload(%d) should fail", addr)
		}
	}
}

func TestFits(t *testing.T) {
	if !Fits(1, 255) {
		t.Fatalf("block 1 with 255 chunks spans exactly to the end")
	}
	if Fits(2, 255) {
		t.Fatalf("block 2 with 255 chunks overruns the arena")
	}
	if Fits(5, 0) {
		t.Fatalf("zero-length blocks never fit")
	}
}
