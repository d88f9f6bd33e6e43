package tev

import (
	"bytes"
	"encoding/binary"
	"net"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/dlaurent/photonforge/pkg/pfmath"
	"github.com/dlaurent/photonforge/pkg/render"
)

func TestFrame_PrependsTotalLengthIncludingItself(t *testing.T) {
	body := []byte{1, 2, 3}
	framed := frame(body)
	if len(framed) != 7 {
		t.Fatalf("got %d bytes, want 7", len(framed))
	}
	got := binary.LittleEndian.Uint32(framed[:4])
	if got != 7 {
		t.Errorf("length prefix = %d, want 7", got)
	}
	if !bytes.Equal(framed[4:], body) {
		t.Errorf("body mismatch: %v", framed[4:])
	}
}

func TestCloseImagePacket_EncodesTypeAndNullTerminatedID(t *testing.T) {
	pkt := closeImagePacket("myimage")
	body := pkt[4:]
	if body[0] != packetClose {
		t.Fatalf("type = %d, want %d", body[0], packetClose)
	}
	if string(body[1:len(body)-1]) != "myimage" || body[len(body)-1] != 0 {
		t.Errorf("id not null-terminated correctly: %v", body[1:])
	}
}

func TestCreateImagePacket_EncodesResolutionAndChannels(t *testing.T) {
	pkt := createImagePacket("img", 4, 3, []string{"R", "G", "B"})
	body := pkt[4:]
	if body[0] != packetCreate {
		t.Fatalf("type = %d, want %d", body[0], packetCreate)
	}
	if body[1] != 1 {
		t.Errorf("grab-focus flag = %d, want 1", body[1])
	}
	// "img\0" follows the type+flag bytes.
	rest := body[2+len("img")+1:]
	width := int32(binary.LittleEndian.Uint32(rest[0:4]))
	height := int32(binary.LittleEndian.Uint32(rest[4:8]))
	numChannels := int32(binary.LittleEndian.Uint32(rest[8:12]))
	if width != 4 || height != 3 || numChannels != 3 {
		t.Errorf("got w=%d h=%d n=%d, want 4 3 3", width, height, numChannels)
	}
}

func TestUpdateImagePacket_EncodesTileGeometryAndPixelData(t *testing.T) {
	data := []float32{0.5, 1.5}
	pkt := updateImagePacket("img", "R", 8, 16, 2, 1, data)
	body := pkt[4:]
	if body[0] != packetUpdate {
		t.Fatalf("type = %d, want %d", body[0], packetUpdate)
	}
	// Trailing 8 bytes are the two float32 samples.
	tail := body[len(body)-8:]
	v0 := float32FromBits(tail[0:4])
	v1 := float32FromBits(tail[4:8])
	if v0 != 0.5 || v1 != 1.5 {
		t.Errorf("got pixel data %v %v, want 0.5 1.5", v0, v1)
	}
}

func float32FromBits(b []byte) float32 {
	var v float32
	buf := bytes.NewReader(b)
	binary.Read(buf, binary.LittleEndian, &v)
	return v
}

func TestDial_UnreachableAddressDegradesToNoopClient(t *testing.T) {
	// Port 9 is "discard" and nothing listens for our handshake; pick a
	// closed local port instead so the dial fails fast.
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := l.Addr().String()
	l.Close() // immediately close so nothing answers

	c := Dial(addr, "scene", 16, 16, zap.NewNop())
	img := render.NewImage(16, 16)
	for i := range img.Pixels {
		img.Pixels[i] = pfmath.NewRGB(1, 1, 1)
	}

	// Must not panic or block; the client degrades to a silent no-op.
	done := make(chan struct{})
	go func() {
		c.UpdateTile(img, render.Tile{X0: 0, Y0: 0, X1: 16, Y1: 16})
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("UpdateTile blocked on a dead client")
	}
}
