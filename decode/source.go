package decode

import (
	"bufio"
	"bytes"
	"io"
)

// source supplies the decoder's input bytes.
//
// next returns n bytes valid only until the following call and is meant for
// fixed-size payloads. bytes returns n bytes that stay valid for the life of
// the decoded document. cstring consumes a NUL-terminated string, dropping
// the NUL. line consumes up to and including the next '\n', scanning at most
// max bytes. offset is the count of bytes consumed so far. remaining is the
// count of bytes left, or -1 when the source cannot know.
type source interface {
	next(n int) ([]byte, error)
	bytes(n int) ([]byte, error)
	cstring() (string, error)
	line(max int) (string, error)
	offset() int64
	remaining() int64
}

// byteSource decodes from an in-memory buffer. bytes returns subslices of
// the buffer, so documents decoded through it borrow from the caller.
type byteSource struct {
	data []byte
	pos  int
}

func (s *byteSource) next(n int) ([]byte, error) {
	if n > len(s.data)-s.pos {
		return nil, io.ErrUnexpectedEOF
	}
	b := s.data[s.pos : s.pos+n]
	s.pos += n
	return b, nil
}

func (s *byteSource) bytes(n int) ([]byte, error) {
	return s.next(n)
}

func (s *byteSource) cstring() (string, error) {
	i := bytes.IndexByte(s.data[s.pos:], 0)
	if i < 0 {
		return "", io.ErrUnexpectedEOF
	}
	str := string(s.data[s.pos : s.pos+i])
	s.pos += i + 1
	return str, nil
}

func (s *byteSource) line(max int) (string, error) {
	window := s.data[s.pos:]
	if len(window) > max {
		window = window[:max]
	}
	i := bytes.IndexByte(window, '\n')
	if i >= 0 {
		window = window[:i+1]
	}
	s.pos += len(window)
	return string(window), nil
}

func (s *byteSource) offset() int64 {
	return int64(s.pos)
}

func (s *byteSource) remaining() int64 {
	return int64(len(s.data) - s.pos)
}

// readerSource decodes from an io.Reader. Everything handed out is either
// scratch (next) or freshly allocated (bytes, cstring), so documents decoded
// through it own their memory.
type readerSource struct {
	r       *bufio.Reader
	pos     int64
	scratch []byte
}

func newReaderSource(r io.Reader) *readerSource {
	return &readerSource{r: bufio.NewReader(r)}
}

func (s *readerSource) next(n int) ([]byte, error) {
	if cap(s.scratch) < n {
		s.scratch = make([]byte, n)
	}
	b := s.scratch[:n]
	if _, err := io.ReadFull(s.r, b); err != nil {
		return nil, err
	}
	s.pos += int64(n)
	return b, nil
}

// readChunk bounds single allocations so that a corrupt length field cannot
// demand gigabytes up front.
const readChunk = 1 << 16

func (s *readerSource) bytes(n int) ([]byte, error) {
	out := make([]byte, 0, min(n, readChunk))
	for len(out) < n {
		c := min(n-len(out), readChunk)
		buf := make([]byte, c)
		if _, err := io.ReadFull(s.r, buf); err != nil {
			return nil, err
		}
		out = append(out, buf...)
		s.pos += int64(c)
	}
	return out, nil
}

func (s *readerSource) cstring() (string, error) {
	str, err := s.r.ReadString(0)
	if err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return "", err
	}
	s.pos += int64(len(str))
	return str[:len(str)-1], nil
}

func (s *readerSource) line(max int) (string, error) {
	var buf []byte
	for len(buf) < max {
		b, err := s.r.ReadByte()
		if err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return "", err
		}
		buf = append(buf, b)
		if b == '\n' {
			break
		}
	}
	s.pos += int64(len(buf))
	return string(buf), nil
}

func (s *readerSource) offset() int64 {
	return s.pos
}

func (s *readerSource) remaining() int64 {
	return -1
}
