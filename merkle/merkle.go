// Package merkle implements a binary Merkle tree over serialized leaves,
// hashed with SHA3-256 as spec.md §3/§4.2/§6 fixes.
package merkle

import (
	"bytes"
	"fmt"
	"runtime"
	"sync"

	"golang.org/x/crypto/sha3"
)

// Tree is a binary Merkle tree. Leaves are stored and hashed in insertion
// order; there is no deletion. All external indices are zero-based.
type Tree struct {
	leafHashes [][]byte
	levels     [][][]byte // levels[0] = leaf hashes, levels[last] = [root]
}

// Path is an inclusion path: the sibling hash at each level from the leaf
// up to the root, plus whether that sibling sits on the right.
type Path struct {
	Siblings []Sibling
}

// Sibling is one step of a Merkle path.
type Sibling struct {
	Hash    []byte
	IsRight bool
}

func hashLeaf(data []byte) []byte {
	h := sha3.Sum256(data)
	return h[:]
}

func hashNode(left, right []byte) []byte {
	combined := make([]byte, 0, len(left)+len(right))
	combined = append(combined, left...)
	combined = append(combined, right...)
	h := sha3.Sum256(combined)
	return h[:]
}

// New builds a tree from zero or more leaves via AppendBulk.
func New(leaves [][]byte) (*Tree, error) {
	t := &Tree{}
	if err := t.AppendBulk(leaves); err != nil {
		return nil, err
	}
	return t, nil
}

// AppendBulk hashes and appends leaves, then rebuilds the tree. Leaf
// hashing is parallelized across a bounded worker pool since it is
// observable-free (spec.md §5 permits this class of parallelism).
func (t *Tree) AppendBulk(leaves [][]byte) error {
	if len(leaves) == 0 {
		return fmt.Errorf("merkle: cannot append zero leaves")
	}

	newHashes := make([][]byte, len(leaves))
	workers := runtime.GOMAXPROCS(0)
	if workers > len(leaves) {
		workers = len(leaves)
	}
	var wg sync.WaitGroup
	chunk := (len(leaves) + workers - 1) / workers
	for w := 0; w < workers; w++ {
		start := w * chunk
		end := start + chunk
		if start >= len(leaves) {
			break
		}
		if end > len(leaves) {
			end = len(leaves)
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				newHashes[i] = hashLeaf(leaves[i])
			}
		}(start, end)
	}
	wg.Wait()

	t.leafHashes = append(t.leafHashes, newHashes...)
	t.rebuild()
	return nil
}

func (t *Tree) rebuild() {
	level := make([][]byte, len(t.leafHashes))
	copy(level, t.leafHashes)
	levels := [][][]byte{level}

	for len(level) > 1 {
		next := make([][]byte, 0, (len(level)+1)/2)
		for i := 0; i < len(level); i += 2 {
			if i+1 < len(level) {
				next = append(next, hashNode(level[i], level[i+1]))
			} else {
				next = append(next, hashNode(level[i], level[i]))
			}
		}
		levels = append(levels, next)
		level = next
	}
	t.levels = levels
}

// Root returns the current Merkle root.
func (t *Tree) Root() []byte {
	if len(t.levels) == 0 {
		return nil
	}
	top := t.levels[len(t.levels)-1]
	return append([]byte(nil), top[0]...)
}

// Len returns the number of leaves committed.
func (t *Tree) Len() int { return len(t.leafHashes) }

// ProveBulk returns inclusion paths for the given zero-based indices, in
// the order given. Indices may repeat.
func (t *Tree) ProveBulk(indices []int) ([]Path, error) {
	out := make([]Path, len(indices))
	for i, idx := range indices {
		p, err := t.prove(idx)
		if err != nil {
			return nil, err
		}
		out[i] = p
	}
	return out, nil
}

func (t *Tree) prove(index int) (Path, error) {
	if index < 0 || index >= len(t.leafHashes) {
		return Path{}, fmt.Errorf("merkle: index %d out of range [0, %d)", index, len(t.leafHashes))
	}
	var siblings []Sibling
	current := index
	for level := 0; level < len(t.levels)-1; level++ {
		nodes := t.levels[level]
		var siblingIdx int
		var isRight bool
		if current%2 == 0 {
			siblingIdx = current + 1
			isRight = true
		} else {
			siblingIdx = current - 1
			isRight = false
		}
		if siblingIdx >= len(nodes) {
			siblingIdx = current
		}
		siblings = append(siblings, Sibling{Hash: nodes[siblingIdx], IsRight: isRight})
		current /= 2
	}
	return Path{Siblings: siblings}, nil
}

// VerifyBulk checks inclusion of each (leaf, path) pair at its given
// zero-based index against root, independently and in parallel (spec.md
// §5 explicitly allows parallel, independent Merkle openings).
func VerifyBulk(leaves [][]byte, root []byte, paths []Path, indices []int) bool {
	if len(leaves) != len(paths) || len(leaves) != len(indices) {
		return false
	}
	results := make([]bool, len(leaves))
	var wg sync.WaitGroup
	for i := range leaves {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = verifyOne(leaves[i], root, paths[i], indices[i])
		}(i)
	}
	wg.Wait()
	for _, ok := range results {
		if !ok {
			return false
		}
	}
	return true
}

func verifyOne(leaf []byte, root []byte, path Path, index int) bool {
	hash := hashLeaf(leaf)
	for _, sib := range path.Siblings {
		if sib.IsRight != (index%2 == 0) {
			return false
		}
		if sib.IsRight {
			hash = hashNode(hash, sib.Hash)
		} else {
			hash = hashNode(sib.Hash, hash)
		}
		index /= 2
	}
	return index == 0 && bytes.Equal(hash, root)
}
