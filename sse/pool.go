package sse

import (
	"bytes"
	"sync"
)

var bufferPool = sync.Pool{
	New: func() any {
		return new(bytes.Buffer)
	},
}

// GetBuffer returns a reset *bytes.Buffer from the shared pool, sized
// for one encoded event. Encoding on the hot path (one per
// sse.send/sse.comment event, potentially thousands per connection)
// would otherwise allocate a fresh buffer every call.
func GetBuffer() *bytes.Buffer {
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

// ReleaseBuffer returns buf to the shared pool. Callers must not use
// buf after calling ReleaseBuffer.
func ReleaseBuffer(buf *bytes.Buffer) {
	if buf.Cap() > 64*1024 {
		return
	}
	bufferPool.Put(buf)
}

var messagePool = sync.Pool{
	New: func() any {
		return new(Message)
	},
}

// GetMessage returns a zeroed *Message from the shared pool.
func GetMessage() *Message {
	msg := messagePool.Get().(*Message)
	msg.ID = ""
	msg.Event = ""
	msg.Data = nil
	msg.Retry = 0
	return msg
}

// ReleaseMessage returns msg to the shared pool. Callers must not use
// msg after calling ReleaseMessage.
func ReleaseMessage(msg *Message) {
	messagePool.Put(msg)
}
