package metrics

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type recordSink struct {
	count int
}

func (r *recordSink) RecordNetworkStats(NetworkStats) error {
	r.count++
	return nil
}

func (r *recordSink) RecordSnapshots([]SnapshotPoint) error {
	r.count++
	return nil
}

type statsOnly struct{ err error }

func (s statsOnly) RecordNetworkStats(NetworkStats) error { return s.err }

// TestMultiSink ensures records are forwarded to all sinks.
func TestMultiSink(t *testing.T) {
	s1 := &recordSink{}
	s2 := &recordSink{}
	m := NewMultiSink(s1, s2, statsOnly{})
	assert.NoError(t, m.RecordNetworkStats(NetworkStats{}))
	assert.NoError(t, m.RecordSnapshots(nil))
	assert.NoError(t, m.RecordBusBounds(nil))
	assert.Equal(t, 2, s1.count)
	assert.Equal(t, 2, s2.count)
}

func TestMultiSinkFirstError(t *testing.T) {
	boom := errors.New("boom")
	s := &recordSink{}
	m := NewMultiSink(statsOnly{err: boom}, s)
	assert.ErrorIs(t, m.RecordNetworkStats(NetworkStats{}), boom)
	assert.Zero(t, s.count)
}

type closingSink struct {
	statsOnly
	closed bool
}

func (c *closingSink) Close() { c.closed = true }

func TestMultiSinkClose(t *testing.T) {
	c := &closingSink{}
	m := NewMultiSink(statsOnly{}, c)
	m.Close()
	assert.True(t, c.closed)
}
