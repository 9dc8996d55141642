package various

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

var byteorder = binary.LittleEndian

// MaxSliceLen is the largest slice length accepted when reading.
const MaxSliceLen = 1 << 24

// ErrInvalidLength is returned if a stored slice length is negative or
// larger than MaxSliceLen.
var ErrInvalidLength = errors.New("invalid slice length")

// ReadLength reads a slice length written as int64 and checks its range.
func ReadLength(r io.Reader) (int, error) {
	var num int64
	if err := binary.Read(r, byteorder, &num); err != nil {
		return 0, err
	}
	if num < 0 || num > MaxSliceLen {
		return 0, fmt.Errorf("%w: %d", ErrInvalidLength, num)
	}
	return int(num), nil
}

// WriteInt writes a single int as int64.
func WriteInt(w io.Writer, v int) error {
	return binary.Write(w, byteorder, int64(v))
}

// ReadInt reads a single int64 written by WriteInt.
func ReadInt(r io.Reader) (int, error) {
	var v int64
	if err := binary.Read(r, byteorder, &v); err != nil {
		return 0, err
	}
	return int(v), nil
}

// WriteFloat writes a single float64.
func WriteFloat(w io.Writer, v float64) error {
	return binary.Write(w, byteorder, v)
}

// ReadFloat reads a single float64.
func ReadFloat(r io.Reader) (float64, error) {
	var v float64
	err := binary.Read(r, byteorder, &v)
	return v, err
}

func WriteFloatSlice(w io.Writer, s []float64) error {
	if err := binary.Write(w, byteorder, int64(len(s))); err != nil {
		return err
	}
	return binary.Write(w, byteorder, s)
}

func ReadFloatSlice(r io.Reader) ([]float64, error) {
	num, err := ReadLength(r)
	if err != nil {
		return nil, err
	}
	s := make([]float64, num)
	if err := binary.Read(r, byteorder, s); err != nil {
		return nil, err
	}
	return s, nil
}

func Write2FloatSlice(w io.Writer, s [][2]float64) error {
	if err := binary.Write(w, byteorder, int64(len(s))); err != nil {
		return err
	}
	for _, v := range s {
		if err := binary.Write(w, byteorder, v); err != nil {
			return err
		}
	}
	return nil
}

func Read2FloatSlice(r io.Reader) ([][2]float64, error) {
	num, err := ReadLength(r)
	if err != nil {
		return nil, err
	}
	s := make([][2]float64, num)
	for i := range s {
		if err := binary.Read(r, byteorder, &s[i]); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func WriteIntSlice(w io.Writer, s []int) error {
	if err := binary.Write(w, byteorder, int64(len(s))); err != nil {
		return err
	}
	for _, v := range s {
		if err := binary.Write(w, byteorder, int64(v)); err != nil {
			return err
		}
	}
	return nil
}

func ReadIntSlice(r io.Reader) ([]int, error) {
	num, err := ReadLength(r)
	if err != nil {
		return nil, err
	}
	s := make([]int, num)
	for i := range s {
		var v int64
		if err := binary.Read(r, byteorder, &v); err != nil {
			return nil, err
		}
		s[i] = int(v)
	}
	return s, nil
}

func WriteBoolSlice(w io.Writer, s []bool) error {
	if err := binary.Write(w, byteorder, int64(len(s))); err != nil {
		return err
	}
	return binary.Write(w, byteorder, s)
}

func ReadBoolSlice(r io.Reader) ([]bool, error) {
	num, err := ReadLength(r)
	if err != nil {
		return nil, err
	}
	s := make([]bool, num)
	if err := binary.Read(r, byteorder, s); err != nil {
		return nil, err
	}
	return s, nil
}
