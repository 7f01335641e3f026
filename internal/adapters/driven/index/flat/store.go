package flat

import (
	"bufio"
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/docchat-labs/docchat-cli/internal/core/domain"
	"github.com/docchat-labs/docchat-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.VectorIndexStore = (*Store)(nil)

// Artifact file magics. The embeddings file holds the normalized
// matrix; the index file holds the serialized search structure. Both
// carry dimension and count so a load can cross-check them.
var (
	embeddingsMagic = [4]byte{'D', 'C', 'E', 'M'}
	indexMagic      = [4]byte{'D', 'C', 'I', 'X'}
)

// formatVersion is bumped on any change to the artifact layout.
const formatVersion uint32 = 1

// Store persists the artifact pair for each document name under a
// fixed vector-storage root directory, using the name as the filename
// stem. Writes go to temp files and are committed by rename, so a
// failed write never corrupts a previously valid pair.
type Store struct {
	root string
}

// NewStore creates a store rooted at dir. If dir is empty, defaults
// to ~/.docchat/vector_store.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home directory: %w", err)
		}
		dir = filepath.Join(home, ".docchat", "vector_store")
	}
	return &Store{root: dir}, nil
}

// Root returns the vector-storage root directory.
func (s *Store) Root() string {
	return s.root
}

// New creates an empty index with the given dimension.
func (s *Store) New(dimension int) driven.VectorIndex {
	return New(dimension)
}

// embeddingsPath returns the matrix file path for a document name.
func (s *Store) embeddingsPath(docName string) string {
	return filepath.Join(s.root, docName+"_embeddings.vec")
}

// indexPath returns the index file path for a document name.
func (s *Store) indexPath(docName string) string {
	return filepath.Join(s.root, docName+"_index.idx")
}

// Exists reports whether both artifacts are present for the name.
func (s *Store) Exists(docName string) bool {
	if _, err := os.Stat(s.embeddingsPath(docName)); err != nil {
		return false
	}
	if _, err := os.Stat(s.indexPath(docName)); err != nil {
		return false
	}
	return true
}

// Load reads and validates the artifact pair. Any failure returns an
// error wrapping domain.ErrCorruptArtifact; callers treat it as a
// rebuild trigger, never as fatal.
func (s *Store) Load(_ context.Context, docName string) (driven.VectorIndex, error) {
	embDim, embCount, vectors, err := readMatrixFile(s.embeddingsPath(docName), embeddingsMagic)
	if err != nil {
		return nil, fmt.Errorf("embeddings artifact: %w", err)
	}
	idxDim, idxCount, idxVectors, err := readMatrixFile(s.indexPath(docName), indexMagic)
	if err != nil {
		return nil, fmt.Errorf("index artifact: %w", err)
	}

	if embDim != idxDim || embCount != idxCount {
		return nil, fmt.Errorf("artifact pair disagrees (emb %dx%d, idx %dx%d): %w",
			embCount, embDim, idxCount, idxDim, domain.ErrCorruptArtifact)
	}
	_ = vectors // the index structure is authoritative at query time

	idx := New(idxDim)
	idx.vectors = idxVectors
	return idx, nil
}

// Save persists the artifact pair. Both files are written to temp
// paths first and committed by rename.
func (s *Store) Save(_ context.Context, docName string, index driven.VectorIndex) error {
	fidx, ok := index.(*Index)
	if !ok {
		return fmt.Errorf("flat: cannot persist foreign index type %T", index)
	}

	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return fmt.Errorf("create vector store dir: %w", err)
	}

	vectors := fidx.snapshot()
	dim := fidx.Dimension()

	if err := writeMatrixFile(s.embeddingsPath(docName), embeddingsMagic, dim, vectors); err != nil {
		return fmt.Errorf("write embeddings artifact: %w", err)
	}
	if err := writeMatrixFile(s.indexPath(docName), indexMagic, dim, vectors); err != nil {
		return fmt.Errorf("write index artifact: %w", err)
	}
	return nil
}

// Remove deletes the artifact pair for the name, ignoring files that
// are already gone.
func (s *Store) Remove(docName string) error {
	for _, p := range []string{s.embeddingsPath(docName), s.indexPath(docName)} {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}

// writeMatrixFile serializes header + row-major float32 matrix to a
// temp file, then renames it into place.
func writeMatrixFile(path string, magic [4]byte, dim int, vectors [][]float32) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	w := bufio.NewWriter(tmp)
	if _, err := w.Write(magic[:]); err != nil {
		tmp.Close()
		return err
	}
	header := []uint32{formatVersion, uint32(dim), uint32(len(vectors))}
	for _, h := range header {
		if err := binary.Write(w, binary.LittleEndian, h); err != nil {
			tmp.Close()
			return err
		}
	}
	buf := make([]byte, 4)
	for _, vec := range vectors {
		for _, f := range vec {
			binary.LittleEndian.PutUint32(buf, math.Float32bits(f))
			if _, err := w.Write(buf); err != nil {
				tmp.Close()
				return err
			}
		}
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// readMatrixFile reads and validates a matrix artifact. All parse
// failures wrap domain.ErrCorruptArtifact.
func readMatrixFile(path string, magic [4]byte) (dim, count int, vectors [][]float32, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, 0, nil, fmt.Errorf("%w: %w", domain.ErrCorruptArtifact, err)
	}

	r := bytes.NewReader(data)
	var gotMagic [4]byte
	if _, err := io.ReadFull(r, gotMagic[:]); err != nil || gotMagic != magic {
		return 0, 0, nil, fmt.Errorf("bad magic in %s: %w", filepath.Base(path), domain.ErrCorruptArtifact)
	}
	var version, udim, ucount uint32
	for _, dst := range []*uint32{&version, &udim, &ucount} {
		if err := binary.Read(r, binary.LittleEndian, dst); err != nil {
			return 0, 0, nil, fmt.Errorf("truncated header in %s: %w", filepath.Base(path), domain.ErrCorruptArtifact)
		}
	}
	if version != formatVersion {
		return 0, 0, nil, fmt.Errorf("unknown artifact version %d: %w", version, domain.ErrCorruptArtifact)
	}

	dim, count = int(udim), int(ucount)
	if dim <= 0 || count < 0 {
		return 0, 0, nil, fmt.Errorf("invalid shape %dx%d: %w", count, dim, domain.ErrCorruptArtifact)
	}
	want := count * dim * 4
	if r.Len() != want {
		return 0, 0, nil, fmt.Errorf("payload size %d, want %d: %w", r.Len(), want, domain.ErrCorruptArtifact)
	}

	vectors = make([][]float32, count)
	buf := make([]byte, 4)
	for i := range vectors {
		vec := make([]float32, dim)
		for j := range vec {
			if _, err := io.ReadFull(r, buf); err != nil {
				return 0, 0, nil, fmt.Errorf("truncated payload: %w", domain.ErrCorruptArtifact)
			}
			vec[j] = math.Float32frombits(binary.LittleEndian.Uint32(buf))
		}
		vectors[i] = vec
	}
	return dim, count, vectors, nil
}
