package surface

// Memory is an in-memory Surface. It backs the desktop window host and is
// the surface of choice for tests and headless runs.
type Memory struct {
	width  int
	height int
	stride int
	buf    []byte
}

// NewMemory returns an RGB565 in-memory surface of the given size.
func NewMemory(width, height int) *Memory {
	m := &Memory{}
	m.Resize(width, height)
	return m
}

func (m *Memory) Width() int          { return m.width }
func (m *Memory) Height() int         { return m.height }
func (m *Memory) Format() PixelFormat { return PixelFormatRGB565 }
func (m *Memory) StrideBytes() int    { return m.stride }
func (m *Memory) Buffer() []byte      { return m.buf }

// Resize reallocates the buffer. Previous contents are discarded; the
// caller is expected to redraw immediately after.
func (m *Memory) Resize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	m.width = width
	m.height = height
	m.stride = width * 2
	m.buf = make([]byte, m.stride*height)
}
