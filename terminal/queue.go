package terminal

// byteQueue is a fixed-capacity window [pos, end) over buf
// Consumed bytes stay in place until compact slides the window to offset 0
type byteQueue struct {
	buf []byte
	pos int
	end int
}

func newByteQueue(capacity int) *byteQueue {
	return &byteQueue{buf: make([]byte, capacity)}
}

// compact moves unconsumed bytes to the front of buf
func (q *byteQueue) compact() {
	if q.pos == 0 {
		return
	}
	n := copy(q.buf, q.buf[q.pos:q.end])
	q.pos = 0
	q.end = n
}

// fill reads once from src into the free tail
func (q *byteQueue) fill(src ByteSource) (int, error) {
	if q.end == len(q.buf) {
		return 0, nil
	}
	n, err := src.Read(q.buf[q.end:])
	if n > 0 {
		q.end += n
	}
	return n, err
}

// bytes returns the unconsumed window; valid until the next mutation
func (q *byteQueue) bytes() []byte { return q.buf[q.pos:q.end] }

func (q *byteQueue) len() int { return q.end - q.pos }

// consume advances pos by n, clamped to end
func (q *byteQueue) consume(n int) {
	q.pos += n
	if q.pos > q.end {
		q.pos = q.end
	}
}

// full reports whether no more bytes can be read without consuming
func (q *byteQueue) full() bool {
	return q.pos == 0 && q.end == len(q.buf)
}
