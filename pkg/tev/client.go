// Package tev implements a client for the "tev" image viewer's live-preview
// protocol, so a render in progress can be watched tile by tile instead of
// only once it completes (spec §6). Grounded on original_source's
// src/core/streaming.cpp / include/lightwave/streaming.hpp, which hold the
// only copy of this wire format anywhere in the retrieval pack: a
// length-prefixed little-endian stream of CloseImage/CreateImage/UpdateImage
// packets sent to 127.0.0.1:14158. Connection failures are logged at Warn
// via zap and rendering proceeds without a live preview exactly as the
// original degrades.
package tev

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"net"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/dlaurent/photonforge/pkg/render"
)

const (
	packetClose   byte = 2
	packetUpdate  byte = 3
	packetCreate  byte = 4
	defaultAddr        = "127.0.0.1:14158"
	dialTimeout        = 2 * time.Second
)

var channels = []string{"R", "G", "B"}

// Client streams render.Image tiles to a running tev instance. It satisfies
// render.Previewer structurally; render never imports this package.
type Client struct {
	mu      sync.Mutex
	conn    net.Conn
	imageID string
	logger  *zap.Logger
}

// Dial connects to tev at addr (empty defaults to 127.0.0.1:14158), opens
// imageID as a fresh width x height image with R/G/B channels, and returns a
// Client ready for UpdateTile calls. A connection or protocol failure is
// logged at Warn and yields a Client whose calls are no-ops, matching the
// original's "connection to tev failed" degrade-and-continue behavior.
func Dial(addr, imageID string, width, height int, logger *zap.Logger) *Client {
	if addr == "" {
		addr = defaultAddr
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	c := &Client{imageID: imageID, logger: logger}

	conn, err := net.DialTimeout("tcp", addr, dialTimeout)
	if err != nil {
		logger.Warn("connection to tev failed", zap.Error(err))
		return c
	}
	c.conn = conn

	if err := c.send(closeImagePacket(imageID)); err != nil {
		c.warnAndDrop("connection to tev failed", err)
		return c
	}
	if err := c.send(createImagePacket(imageID, width, height, channels)); err != nil {
		c.warnAndDrop("connection to tev failed", err)
		return c
	}
	return c
}

// UpdateTile sends one finished tile's R/G/B channels to tev, satisfying
// render.Previewer. A closed or never-connected Client is a silent no-op.
func (c *Client) UpdateTile(img *render.Image, tile render.Tile) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return
	}

	w, h := tile.Width(), tile.Height()
	for ch := 0; ch < len(channels); ch++ {
		data := make([]float32, w*h)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				px := img.At(tile.X0+x, tile.Y0+y)
				var v float64
				switch ch {
				case 0:
					v = px.R
				case 1:
					v = px.G
				default:
					v = px.B
				}
				data[y*w+x] = float32(v)
			}
		}
		pkt := updateImagePacket(c.imageID, channels[ch], tile.X0, tile.Y0, w, h, data)
		if err := c.sendLocked(pkt); err != nil {
			c.logger.Warn("connection to tev lost", zap.Error(err))
			c.conn.Close()
			c.conn = nil
			return
		}
	}
}

// Close releases the underlying connection, if any.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	return err
}

func (c *Client) warnAndDrop(msg string, err error) {
	c.logger.Warn(msg, zap.Error(err))
	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}
}

func (c *Client) send(pkt []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sendLocked(pkt)
}

func (c *Client) sendLocked(pkt []byte) error {
	if c.conn == nil {
		return fmt.Errorf("tev: not connected")
	}
	_, err := c.conn.Write(pkt)
	return err
}

// closeImagePacket builds a CloseImage packet (type 2): just the image id.
func closeImagePacket(imageID string) []byte {
	var body bytes.Buffer
	body.WriteByte(packetClose)
	writeCString(&body, imageID)
	return frame(body.Bytes())
}

// createImagePacket builds a CreateImage packet (type 4): grab-focus flag,
// image id, resolution, and the channel name list.
func createImagePacket(imageID string, width, height int, channelNames []string) []byte {
	var body bytes.Buffer
	body.WriteByte(packetCreate)
	body.WriteByte(1) // grab focus
	writeCString(&body, imageID)
	writeInt32(&body, int32(width))
	writeInt32(&body, int32(height))
	writeInt32(&body, int32(len(channelNames)))
	for _, name := range channelNames {
		writeCString(&body, name)
	}
	return frame(body.Bytes())
}

// updateImagePacket builds an UpdateImage packet (type 3): the image id, a
// single channel name, the tile's origin and size, and its raw float32
// pixel data in row-major order.
func updateImagePacket(imageID, channel string, x, y, width, height int, data []float32) []byte {
	var body bytes.Buffer
	body.WriteByte(packetUpdate)
	body.WriteByte(0) // grab focus
	writeCString(&body, imageID)
	writeCString(&body, channel)
	writeInt32(&body, int32(x))
	writeInt32(&body, int32(y))
	writeInt32(&body, int32(width))
	writeInt32(&body, int32(height))
	for _, v := range data {
		binary.Write(&body, binary.LittleEndian, v)
	}
	return frame(body.Bytes())
}

// frame prepends the 4-byte little-endian total length the protocol expects
// (the length field itself counts toward the total).
func frame(body []byte) []byte {
	out := make([]byte, 4+len(body))
	binary.LittleEndian.PutUint32(out, uint32(len(out)))
	copy(out[4:], body)
	return out
}

func writeCString(buf *bytes.Buffer, s string) {
	buf.WriteString(s)
	buf.WriteByte(0)
}

func writeInt32(buf *bytes.Buffer, v int32) {
	binary.Write(buf, binary.LittleEndian, v)
}
