// Package codec is the binary persistence format for checklist trees.
//
// Layout, little-endian, no padding:
//
//	bool     [1]       0 or 1
//	string   [2]len    len bytes of UTF-8
//	seq<T>   [1]count  count encoded T
//	Item     [1]tag    0 = task: bool, string
//	                   1 = group: string, seq<Item>
//
// There is no header or version byte; a file is exactly one encoded Item.
package codec

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"slices"
	"unicode/utf8"

	"github.com/lixenwraith/vi-todo/todo"
)

// Discriminant bytes
const (
	TagTask  byte = 0
	TagGroup byte = 1
)

// Format limits
const (
	MaxLabelBytes = math.MaxUint16
	MaxChildren   = math.MaxUint8
)

// Marshal encodes root into a new buffer
func Marshal(root *todo.Item) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, root); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes exactly one Item from data
func Unmarshal(data []byte) (*todo.Item, error) {
	r := bytes.NewReader(data)
	root, err := Decode(r)
	if err != nil {
		return nil, err
	}
	if r.Len() != 0 {
		return nil, fmt.Errorf("%w: %d bytes after root item", ErrTrailingData, r.Len())
	}
	return root, nil
}

// Encode writes root to w. On a limit error w may already hold a partial item.
func Encode(w io.Writer, root *todo.Item) error {
	bw := bufio.NewWriter(w)
	e := encoder{w: bw}
	if err := e.item(root, nil); err != nil {
		return err
	}
	return bw.Flush()
}

// Decode reads one Item from r.
// An invalid label is an *EncodingError; an unknown tag is a *CorruptError.
func Decode(r io.Reader) (*todo.Item, error) {
	d := decoder{r: r}
	return d.item(nil)
}

type encoder struct {
	w       *bufio.Writer
	scratch [2]byte
}

// path tracks the child indices to the node being written, for error reports
func (e *encoder) item(it *todo.Item, path []int) error {
	switch it.Kind {
	case todo.KindTask:
		e.w.WriteByte(TagTask)
		e.bool(it.Done)
		return e.string(it.Label, path)

	case todo.KindGroup:
		e.w.WriteByte(TagGroup)
		if err := e.string(it.Label, path); err != nil {
			return err
		}
		if len(it.Children) > MaxChildren {
			return &LimitError{Path: slices.Clone(path), Err: ErrTooManyChildren, Size: len(it.Children)}
		}
		e.w.WriteByte(byte(len(it.Children)))
		for i, c := range it.Children {
			if err := e.item(c, append(path, i)); err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("codec: unknown item kind %d", it.Kind)
}

func (e *encoder) bool(v bool) {
	if v {
		e.w.WriteByte(1)
	} else {
		e.w.WriteByte(0)
	}
}

func (e *encoder) string(s string, path []int) error {
	if len(s) > MaxLabelBytes {
		return &LimitError{Path: slices.Clone(path), Err: ErrLabelTooLong, Size: len(s)}
	}
	binary.LittleEndian.PutUint16(e.scratch[:], uint16(len(s)))
	e.w.Write(e.scratch[:])
	_, err := e.w.WriteString(s)
	return err
}

type decoder struct {
	r       io.Reader
	scratch [2]byte
}

func (d *decoder) item(path []int) (*todo.Item, error) {
	tag, err := d.byte()
	if err != nil {
		return nil, err
	}

	switch tag {
	case TagTask:
		done, err := d.byte()
		if err != nil {
			return nil, err
		}
		label, err := d.string(path)
		if err != nil {
			return nil, err
		}
		return todo.NewTask(done != 0, label), nil

	case TagGroup:
		label, err := d.string(path)
		if err != nil {
			return nil, err
		}
		n, err := d.byte()
		if err != nil {
			return nil, err
		}
		children := make([]*todo.Item, 0, n)
		for i := range int(n) {
			c, err := d.item(append(path, i))
			if err != nil {
				return nil, err
			}
			children = append(children, c)
		}
		return todo.NewGroup(label, children...), nil
	}

	return nil, &CorruptError{Path: slices.Clone(path), Tag: tag}
}

func (d *decoder) byte() (byte, error) {
	if _, err := io.ReadFull(d.r, d.scratch[:1]); err != nil {
		return 0, truncated(err)
	}
	return d.scratch[0], nil
}

func (d *decoder) string(path []int) (string, error) {
	if _, err := io.ReadFull(d.r, d.scratch[:2]); err != nil {
		return "", truncated(err)
	}
	n := binary.LittleEndian.Uint16(d.scratch[:2])
	buf := make([]byte, n)
	if _, err := io.ReadFull(d.r, buf); err != nil {
		return "", truncated(err)
	}
	if !utf8.Valid(buf) {
		return "", &EncodingError{Path: slices.Clone(path), Bytes: buf}
	}
	return string(buf), nil
}

// truncated maps a clean EOF mid-item to ErrUnexpectedEOF; input never ends between fields
func truncated(err error) error {
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return fmt.Errorf("codec: %w", err)
}
