// Copyright 2024 The Nyx Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package nyxterm implements an io.Writer over a linear framebuffer, for
// use as a nyxlog sink when running on real hardware with no serial console
// attached.
package nyxterm

import (
	"sync"
)

const (
	lineSpacing    = 2
	letterSpacing  = 0
	borderPadding  = 1
	charRasterW    = 8
	charRasterH    = 16
)

// PixelFormat selects how an intensity value is packed into bytesPerPixel
// bytes.
type PixelFormat int

const (
	PixelFormatRGB PixelFormat = iota
	PixelFormatBGR
	PixelFormatGray8
)

// Info describes the geometry of a linear framebuffer, as handed off by
// whatever boot protocol mapped it.
type Info struct {
	Width, Height   int
	Stride          int // pixels per scanline, >= Width
	BytesPerPixel   int
	Format          PixelFormat
}

// Framebuffer is an io.Writer-compatible text console drawn directly into a
// pixel buffer, with newline wraparound and clear-on-overflow.
//
// All state mutation is protected by mu so that concurrent log calls (one
// of which may come from an interrupt handler logging via nyxlog) cannot
// interleave a partial glyph write.
type Framebuffer struct {
	mu   sync.Mutex
	buf  []byte
	info Info
	x, y int
}

// New constructs a Framebuffer over buf, which must be at least
// info.Stride*info.Height*info.BytesPerPixel bytes.
func New(buf []byte, info Info) *Framebuffer {
	f := &Framebuffer{buf: buf, info: info}
	f.clearLocked()
	return f
}

// Write implements io.Writer, rendering each byte of p as a character.
func (f *Framebuffer) Write(p []byte) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range p {
		f.writeByteLocked(b)
	}
	return len(p), nil
}

// ForceUnlock is the panic-path escape hatch: it unconditionally clears the
// internal mutex so a panic handler can still write a final diagnostic even
// if this Framebuffer was mid-write when the panic occurred.
func (f *Framebuffer) ForceUnlock() {
	f.mu = sync.Mutex{}
}

func (f *Framebuffer) writeByteLocked(c byte) {
	switch c {
	case '\n':
		f.newlineLocked()
	case '\r':
		f.x = borderPadding
	default:
		if f.x+charRasterW >= f.info.Width {
			f.newlineLocked()
		}
		if f.y+charRasterH+borderPadding >= f.info.Height {
			f.clearLocked()
		}
		f.writeGlyphLocked(c)
		f.x += charRasterW + letterSpacing
	}
}

func (f *Framebuffer) newlineLocked() {
	f.y += charRasterH + lineSpacing
	f.x = borderPadding
}

func (f *Framebuffer) clearLocked() {
	f.x, f.y = borderPadding, borderPadding
	for i := range f.buf {
		f.buf[i] = 0
	}
}

// writeGlyphLocked draws a solid borderPadding-aligned block for byte c,
// standing in for a real bitmap font raster (font data is an external
// boot-time asset, out of scope for this package).
func (f *Framebuffer) writeGlyphLocked(c byte) {
	intensity := c
	for dy := 0; dy < charRasterH; dy++ {
		for dx := 0; dx < charRasterW; dx++ {
			f.writePixel(f.x+dx, f.y+dy, intensity)
		}
	}
}

// writePixel writes one pixel at (x, y). The byte offset is
// (y*stride+x)*bytesPerPixel: spec.md's Open Question flags a probable
// off-by-one in the external collaborator this is modeled on (adding
// bytesPerPixel to the pixel offset before multiplying); it is not
// reproduced here.
func (f *Framebuffer) writePixel(x, y int, intensity byte) {
	if x < 0 || y < 0 || x >= f.info.Width || y >= f.info.Height {
		return
	}
	pixelOffset := y*f.info.Stride + x
	byteOffset := pixelOffset * f.info.BytesPerPixel
	if byteOffset+f.info.BytesPerPixel > len(f.buf) {
		return
	}
	colour := f.colourFor(intensity)
	copy(f.buf[byteOffset:byteOffset+f.info.BytesPerPixel], colour[:f.info.BytesPerPixel])
}

func (f *Framebuffer) colourFor(intensity byte) [4]byte {
	switch f.info.Format {
	case PixelFormatRGB:
		return [4]byte{intensity, intensity, intensity / 2, 0}
	case PixelFormatBGR:
		return [4]byte{intensity / 2, intensity, intensity, 0}
	default: // PixelFormatGray8
		if intensity > 200 {
			return [4]byte{0xf, 0, 0, 0}
		}
		return [4]byte{0, 0, 0, 0}
	}
}
