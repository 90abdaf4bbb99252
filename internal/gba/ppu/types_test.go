package ppu

import "testing"

func TestBackgroundAffineReferencePointSignExtension(t *testing.T) {
	bg := &background{}

	// 0x0FFFFFFF, written low-then-high, is a 28-bit value whose top bit
	// (bit 27) is set and must sign-extend to a negative int32.
	bg.writeBGX_LO(0xFFFF)
	bg.writeBGX_HI(0x0FFF)

	if bg.refx >= 0 {
		t.Fatalf("expected refx to sign-extend negative, got %d", bg.refx)
	}
	if bg.refx != -1 {
		t.Fatalf("expected refx == -1 for all-ones 28-bit pattern, got %d", bg.refx)
	}
	if bg.sx != bg.refx {
		t.Fatalf("sx should track refx immediately after a high-word write")
	}
}

func TestBackgroundAffineReferencePointPositive(t *testing.T) {
	bg := &background{}
	bg.writeBGY_LO(0x0000)
	bg.writeBGY_HI(0x0001)

	if bg.refy != 0x10000 {
		t.Fatalf("expected refy == 0x10000, got 0x%X", bg.refy)
	}
}

func TestDispcntDecode(t *testing.T) {
	d := decodeDispcnt(0x1140)
	if d.mode != 0 {
		t.Fatalf("expected mode 0, got %d", d.mode)
	}
	if !d.objCharacterMapping {
		t.Fatalf("expected 1D object mapping bit set")
	}
	if !d.bg0Enable {
		t.Fatalf("expected bg0 enabled")
	}
	if !d.objEnable {
		t.Fatalf("expected obj enabled")
	}
}

func TestBgcntDecode(t *testing.T) {
	bg := &background{}
	// priority=0, charBase nibble=2 (-> 0x8000), multipalette set, size=1.
	bg.writeBGCNT(0x4088)
	if bg.priority != 0 {
		t.Fatalf("expected priority 0, got %d", bg.priority)
	}
	if bg.charBase != 0x8000 {
		t.Fatalf("expected charBase 0x8000, got 0x%X", bg.charBase)
	}
	if !bg.multipalette {
		t.Fatalf("expected 256-color mode set")
	}
	if bg.size != 1 {
		t.Fatalf("expected size 1, got %d", bg.size)
	}
}
