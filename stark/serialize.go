package stark

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/proteus-stark/proteus/field"
	"github.com/proteus-stark/proteus/fri"
	"github.com/proteus-stark/proteus/merkle"
)

// MarshalCanonical produces a flat, deterministic, length-prefixed
// big-endian encoding of the proof, embedding the combination proof's own
// canonical encoding.
func (p *Proof) MarshalCanonical() []byte {
	var buf bytes.Buffer
	combinationBytes := p.Combination.MarshalCanonical()
	writeUint32(&buf, uint32(len(combinationBytes)))
	buf.Write(combinationBytes)

	writeOpenings(&buf, p.BQCurrent)
	writeOpenings(&buf, p.BQNext)

	return buf.Bytes()
}

// UnmarshalCanonical decodes a proof produced by MarshalCanonical. f must
// be the same field the proof was produced over.
func UnmarshalCanonical(f *field.Field, data []byte) (*Proof, error) {
	r := bytes.NewReader(data)

	n, err := readUint32(r)
	if err != nil {
		return nil, fmt.Errorf("stark: failed to read combination proof length: %w", err)
	}
	combinationBytes := make([]byte, n)
	if n > 0 {
		if _, err := r.Read(combinationBytes); err != nil {
			return nil, fmt.Errorf("stark: failed to read combination proof: %w", err)
		}
	}
	combination, err := fri.UnmarshalCanonical(f, combinationBytes)
	if err != nil {
		return nil, fmt.Errorf("stark: failed to decode combination proof: %w", err)
	}

	bqCurrent, err := readOpenings(r, f)
	if err != nil {
		return nil, fmt.Errorf("stark: failed to read current boundary quotient openings: %w", err)
	}
	bqNext, err := readOpenings(r, f)
	if err != nil {
		return nil, fmt.Errorf("stark: failed to read next boundary quotient openings: %w", err)
	}

	return &Proof{Combination: combination, BQCurrent: bqCurrent, BQNext: bqNext}, nil
}

func writeOpenings(buf *bytes.Buffer, o BoundaryQuotientOpenings) {
	writeUint32(buf, uint32(len(o.Roots)))
	for j := range o.Roots {
		writeBytes(buf, o.Roots[j])

		writeUint32(buf, uint32(len(o.StackedRows[j])))
		for _, row := range o.StackedRows[j] {
			writeUint32(buf, uint32(len(row)))
			for _, e := range row {
				writeBytes(buf, e.Bytes())
			}
		}

		writeUint32(buf, uint32(len(o.Paths[j])))
		for _, path := range o.Paths[j] {
			writeUint32(buf, uint32(len(path.Siblings)))
			for _, sib := range path.Siblings {
				writeBytes(buf, sib.Hash)
				if sib.IsRight {
					buf.WriteByte(1)
				} else {
					buf.WriteByte(0)
				}
			}
		}
	}
}

func readOpenings(r *bytes.Reader, f *field.Field) (BoundaryQuotientOpenings, error) {
	regCount, err := readUint32(r)
	if err != nil {
		return BoundaryQuotientOpenings{}, err
	}
	o := BoundaryQuotientOpenings{
		Roots:       make([][]byte, regCount),
		StackedRows: make([][][]field.Element, regCount),
		Paths:       make([][]merkle.Path, regCount),
	}
	for j := range o.Roots {
		o.Roots[j], err = readBytes(r)
		if err != nil {
			return BoundaryQuotientOpenings{}, err
		}

		rowCount, err := readUint32(r)
		if err != nil {
			return BoundaryQuotientOpenings{}, err
		}
		rows := make([][]field.Element, rowCount)
		for i := range rows {
			colCount, err := readUint32(r)
			if err != nil {
				return BoundaryQuotientOpenings{}, err
			}
			row := make([]field.Element, colCount)
			for c := range row {
				b, err := readBytes(r)
				if err != nil {
					return BoundaryQuotientOpenings{}, err
				}
				row[c] = f.NewElementFromBytes(b)
			}
			rows[i] = row
		}
		o.StackedRows[j] = rows

		pathCount, err := readUint32(r)
		if err != nil {
			return BoundaryQuotientOpenings{}, err
		}
		paths := make([]merkle.Path, pathCount)
		for i := range paths {
			sibCount, err := readUint32(r)
			if err != nil {
				return BoundaryQuotientOpenings{}, err
			}
			siblings := make([]merkle.Sibling, sibCount)
			for s := range siblings {
				hash, err := readBytes(r)
				if err != nil {
					return BoundaryQuotientOpenings{}, err
				}
				flag, err := r.ReadByte()
				if err != nil {
					return BoundaryQuotientOpenings{}, err
				}
				siblings[s] = merkle.Sibling{Hash: hash, IsRight: flag == 1}
			}
			paths[i] = merkle.Path{Siblings: siblings}
		}
		o.Paths[j] = paths
	}
	return o, nil
}

func writeUint32(buf *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	buf.Write(b[:])
}

func writeBytes(buf *bytes.Buffer, b []byte) {
	writeUint32(buf, uint32(len(b)))
	buf.Write(b)
}

func readUint32(r *bytes.Reader) (uint32, error) {
	var b [4]byte
	if _, err := r.Read(b[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b[:]), nil
}

func readBytes(r *bytes.Reader) ([]byte, error) {
	n, err := readUint32(r)
	if err != nil {
		return nil, err
	}
	b := make([]byte, n)
	if n > 0 {
		if _, err := r.Read(b); err != nil {
			return nil, err
		}
	}
	return b, nil
}
