package repository

import (
	"encoding/binary"
	"fmt"
	"math"
)

// encodeBand packs a band as little-endian float64 values
func encodeBand(band []float64) []byte {
	buf := make([]byte, 8*len(band))
	for i, v := range band {
		binary.LittleEndian.PutUint64(buf[8*i:], math.Float64bits(v))
	}
	return buf
}

// decodeBand unpacks a band written by encodeBand, checking it holds want values
func decodeBand(data []byte, want int) ([]float64, error) {
	if len(data) != 8*want {
		return nil, fmt.Errorf("band blob has %d bytes, want %d", len(data), 8*want)
	}
	band := make([]float64, want)
	for i := range band {
		band[i] = math.Float64frombits(binary.LittleEndian.Uint64(data[8*i:]))
	}
	return band, nil
}
