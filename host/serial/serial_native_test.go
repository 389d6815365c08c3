package serial

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type readResult struct {
	data string
	err  error
}

// scriptedDevice replays read results, then reports io.EOF forever
type scriptedDevice struct {
	reads   []readResult
	flushed int
	closed  bool
}

func (d *scriptedDevice) Read(b []byte) (int, error) {
	if len(d.reads) == 0 {
		return 0, io.EOF
	}
	r := d.reads[0]
	d.reads = d.reads[1:]
	return copy(b, r.data), r.err
}

func (d *scriptedDevice) Write(b []byte) (int, error) { return len(b), nil }

func (d *scriptedDevice) Close() error {
	d.closed = true
	return nil
}

func (d *scriptedDevice) Flush() error {
	d.flushed++
	return nil
}

func TestReadTimeoutIsNotEndOfStream(t *testing.T) {
	dev := &scriptedDevice{reads: []readResult{
		{"", io.EOF},
		{"", nil},
		{"[EVT]", nil},
	}}
	p := &NativePort{port: dev, cfg: DefaultConfig("/dev/null")}
	buf := make([]byte, 16)

	n, err := p.Read(buf)
	assert.Zero(t, n)
	assert.NoError(t, err, "timed out read")

	n, err = p.Read(buf)
	assert.Zero(t, n)
	assert.NoError(t, err)

	n, err = p.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "[EVT]", string(buf[:n]))
}

func TestBlockingReadKeepsEOF(t *testing.T) {
	cfg := DefaultConfig("/dev/null")
	cfg.ReadTimeout = 0
	p := &NativePort{port: &scriptedDevice{}, cfg: cfg}

	_, err := p.Read(make([]byte, 4))
	assert.ErrorIs(t, err, io.EOF)
}

func TestFlushAndClose(t *testing.T) {
	dev := &scriptedDevice{}
	p := &NativePort{port: dev, cfg: DefaultConfig("/dev/null")}

	require.NoError(t, p.Flush())
	require.NoError(t, p.Close())
	assert.Equal(t, 1, dev.flushed)
	assert.True(t, dev.closed)
}

func TestOpenRequiresConfig(t *testing.T) {
	_, err := Open(nil)
	assert.Error(t, err)
}
