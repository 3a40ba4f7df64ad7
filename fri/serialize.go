package fri

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/proteus-stark/proteus/field"
	"github.com/proteus-stark/proteus/merkle"
	"github.com/proteus-stark/proteus/polynomial"
)

// MarshalCanonical produces a flat, deterministic, length-prefixed
// big-endian encoding of the proof. Wire-format compatibility with any
// other implementation is explicitly out of scope; this only needs to be
// deterministic for a given proof value.
func (p *Proof) MarshalCanonical() []byte {
	var buf bytes.Buffer
	writeUint32(&buf, uint32(len(p.Roots)))
	for _, root := range p.Roots {
		writeBytes(&buf, root)
	}

	writeUint32(&buf, uint32(len(p.Rounds)))
	for _, round := range p.Rounds {
		writeUint32(&buf, uint32(len(round.Indices)))
		for _, idx := range round.Indices {
			writeUint32(&buf, uint32(idx))
		}
		writeUint32(&buf, uint32(len(round.StackedRows)))
		for _, row := range round.StackedRows {
			writeUint32(&buf, uint32(len(row)))
			for _, e := range row {
				writeBytes(&buf, e.Bytes())
			}
		}
		writeUint32(&buf, uint32(len(round.Paths)))
		for _, path := range round.Paths {
			writeUint32(&buf, uint32(len(path.Siblings)))
			for _, sib := range path.Siblings {
				writeBytes(&buf, sib.Hash)
				if sib.IsRight {
					buf.WriteByte(1)
				} else {
					buf.WriteByte(0)
				}
			}
		}
	}

	writePolynomial(&buf, p.FinalPolynomial)
	writePolynomial(&buf, p.DegreeCorrection)

	return buf.Bytes()
}

// UnmarshalCanonical decodes a proof produced by MarshalCanonical. f must be
// the same field the proof was produced over.
func UnmarshalCanonical(f *field.Field, data []byte) (*Proof, error) {
	r := bytes.NewReader(data)

	rootCount, err := readUint32(r)
	if err != nil {
		return nil, fmt.Errorf("fri: failed to read root count: %w", err)
	}
	roots := make([][]byte, rootCount)
	for i := range roots {
		roots[i], err = readBytes(r)
		if err != nil {
			return nil, fmt.Errorf("fri: failed to read root %d: %w", i, err)
		}
	}

	roundCount, err := readUint32(r)
	if err != nil {
		return nil, fmt.Errorf("fri: failed to read round count: %w", err)
	}
	rounds := make([]RoundProof, roundCount)
	for i := range rounds {
		idxCount, err := readUint32(r)
		if err != nil {
			return nil, fmt.Errorf("fri: failed to read index count: %w", err)
		}
		indices := make([]int, idxCount)
		for j := range indices {
			v, err := readUint32(r)
			if err != nil {
				return nil, fmt.Errorf("fri: failed to read index: %w", err)
			}
			indices[j] = int(v)
		}

		rowCount, err := readUint32(r)
		if err != nil {
			return nil, fmt.Errorf("fri: failed to read row count: %w", err)
		}
		rows := make([][]field.Element, rowCount)
		for j := range rows {
			colCount, err := readUint32(r)
			if err != nil {
				return nil, fmt.Errorf("fri: failed to read column count: %w", err)
			}
			row := make([]field.Element, colCount)
			for c := range row {
				b, err := readBytes(r)
				if err != nil {
					return nil, fmt.Errorf("fri: failed to read element: %w", err)
				}
				row[c] = f.NewElementFromBytes(b)
			}
			rows[j] = row
		}

		pathCount, err := readUint32(r)
		if err != nil {
			return nil, fmt.Errorf("fri: failed to read path count: %w", err)
		}
		paths := make([]merkle.Path, pathCount)
		for j := range paths {
			sibCount, err := readUint32(r)
			if err != nil {
				return nil, fmt.Errorf("fri: failed to read sibling count: %w", err)
			}
			siblings := make([]merkle.Sibling, sibCount)
			for s := range siblings {
				hash, err := readBytes(r)
				if err != nil {
					return nil, fmt.Errorf("fri: failed to read sibling hash: %w", err)
				}
				flag, err := r.ReadByte()
				if err != nil {
					return nil, fmt.Errorf("fri: failed to read sibling side: %w", err)
				}
				siblings[s] = merkle.Sibling{Hash: hash, IsRight: flag == 1}
			}
			paths[j] = merkle.Path{Siblings: siblings}
		}

		rounds[i] = RoundProof{Indices: indices, StackedRows: rows, Paths: paths}
	}

	finalPoly, err := readPolynomial(r, f)
	if err != nil {
		return nil, fmt.Errorf("fri: failed to read final polynomial: %w", err)
	}
	degreeCorrection, err := readPolynomial(r, f)
	if err != nil {
		return nil, fmt.Errorf("fri: failed to read degree-correction polynomial: %w", err)
	}

	return &Proof{
		Roots:            roots,
		Rounds:           rounds,
		FinalPolynomial:  finalPoly,
		DegreeCorrection: degreeCorrection,
	}, nil
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

func writePolynomial(buf *bytes.Buffer, p *polynomial.Polynomial) {
	coeffs := p.Coefficients()
	writeUint32(buf, uint32(len(coeffs)))
	for _, c := range coeffs {
		writeBytes(buf, c.Bytes())
	}
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

func readPolynomial(r *bytes.Reader, f *field.Field) (*polynomial.Polynomial, error) {
	n, err := readUint32(r)
	if err != nil {
		return nil, err
	}
	coeffs := make([]field.Element, n)
	for i := range coeffs {
		b, err := readBytes(r)
		if err != nil {
			return nil, err
		}
		coeffs[i] = f.NewElementFromBytes(b)
	}
	return polynomial.New(f, coeffs), nil
}
