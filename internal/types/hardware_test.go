package types

import "testing"

func TestHardwareRegisters(t *testing.T) {
	var h HardwareRegisters
	var written uint8
	h.Register(TIMA, func(v uint8) { written = v }, func() uint8 { return 0x42 })
	h.Register(IE, func(v uint8) { written = v }, func() uint8 { return 0x1F }, Unbacked())
	h.Register(KEY1, NoWrite, func() uint8 { return 0xFF })
	h.Register(LCDC, func(v uint8) { written = v }, NoRead)

	t.Run("read", func(t *testing.T) {
		tests := []struct {
			address uint16
			want    uint8
			ok      bool
		}{
			{TIMA, 0x42, true},
			{IE, 0x1F, true},
			{KEY1, 0xFF, true},
			{LCDC, 0, false},
			{0xFF80, 0, false},
			{0x8000, 0, false},
		}
		for _, tt := range tests {
			got, ok := h.Read(tt.address)
			if got != tt.want || ok != tt.ok {
				t.Errorf("Read(0x%04X) = 0x%02X, %v; want 0x%02X, %v", tt.address, got, ok, tt.want, tt.ok)
			}
		}
	})
	t.Run("write", func(t *testing.T) {
		if store := h.Write(TIMA, 0x10); !store || written != 0x10 {
			t.Errorf("expected TIMA write to reach setter and store, got store=%v written=0x%02X", store, written)
		}
		if store := h.Write(IE, 0x11); store || written != 0x11 {
			t.Errorf("expected IE write to reach setter only, got store=%v written=0x%02X", store, written)
		}
		if store := h.Write(0xFF01, 0x12); !store || written != 0x11 {
			t.Errorf("expected unregistered write to fall through to store, got store=%v", store)
		}
		if !h.Write(KEY1, 0x00) {
			t.Error("expected write without setter to land in the store")
		}
	})
	t.Run("duplicate", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Error("expected duplicate registration to panic")
			}
		}()
		h.Register(TIMA, NoWrite, NoRead)
	})
}

func BenchmarkHardwareRegisters_Read(b *testing.B) {
	var h HardwareRegisters
	h.Register(TIMA, NoWrite, func() uint8 { return 1 })
	for i := 0; i < b.N; i++ {
		if v, _ := h.Read(TIMA); v != 1 {
			b.Fatal("unexpected value")
		}
	}
}
