// Package meshfile reads the plain-text model format used for the demo's models:
//
//	VertexCount: 1860
//	TriangleCount: 1850
//	VertexList (pos, normal)
//	{
//		x y z nx ny nz
//		...
//	}
//	TriangleList
//	{
//		i j k
//		...
//	}
//
// A vertex list declared as (pos, normal, texC) carries two extra texture columns.
package meshfile

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"mesh-picker/internal/mathutil"
	"mesh-picker/internal/mesh"
)

// Load reads and parses a model file.
func Load(path string) (*mesh.Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("meshfile: open %s: %w", path, err)
	}
	defer f.Close()

	m, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("meshfile: parse %s: %w", path, err)
	}
	return m, nil
}

// Parse decodes a model from r.
func Parse(r io.Reader) (*mesh.Mesh, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	sc.Split(bufio.ScanWords)
	t := &tokens{sc: sc}

	vcount, err := t.header("VertexCount:")
	if err != nil {
		return nil, err
	}
	tcount, err := t.header("TriangleCount:")
	if err != nil {
		return nil, err
	}

	if err := t.expect("VertexList"); err != nil {
		return nil, err
	}
	// Field list runs up to the opening brace, e.g. "(pos, normal, texC)".
	var fields []string
	for {
		tok, err := t.next()
		if err != nil {
			return nil, err
		}
		if tok == "{" {
			break
		}
		fields = append(fields, strings.ToLower(strings.Trim(tok, "(),")))
	}
	hasUV := false
	for _, f := range fields {
		if f == "texc" || f == "uv" {
			hasUV = true
		}
	}

	verts := make([]mesh.Vertex, 0, min(vcount, preallocLimit))
	for i := 0; i < vcount; i++ {
		var pos, nrm mathutil.Vec3
		for k := 0; k < 3; k++ {
			if pos[k], err = t.float(); err != nil {
				return nil, fmt.Errorf("vertex %d: %w", i, err)
			}
		}
		for k := 0; k < 3; k++ {
			if nrm[k], err = t.float(); err != nil {
				return nil, fmt.Errorf("vertex %d: %w", i, err)
			}
		}
		v := mesh.Vertex{Pos: pos, Normal: nrm}
		if hasUV {
			for k := 0; k < 2; k++ {
				if v.UV[k], err = t.float(); err != nil {
					return nil, fmt.Errorf("vertex %d: %w", i, err)
				}
			}
		}
		verts = append(verts, v)
	}
	if err := t.expect("}"); err != nil {
		return nil, fmt.Errorf("vertex list: %w", err)
	}

	if err := t.expect("TriangleList"); err != nil {
		return nil, err
	}
	if err := t.expect("{"); err != nil {
		return nil, err
	}
	idx := make([]uint32, 0, min(3*tcount, preallocLimit))
	for i := 0; i < 3*tcount; i++ {
		tok, err := t.next()
		if err != nil {
			return nil, fmt.Errorf("triangle %d: %w", i/3, err)
		}
		v, err := strconv.ParseUint(tok, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("triangle %d: bad index %q", i/3, tok)
		}
		idx = append(idx, uint32(v))
	}
	if err := t.expect("}"); err != nil {
		return nil, fmt.Errorf("triangle list: %w", err)
	}

	m := mesh.New(verts, idx, hasUV)
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// MaxCount bounds the vertex and triangle counts a header may declare, so that
// three indices per triangle still fit in an int32.
const MaxCount = math.MaxInt32 / 3

// Slices grow past this size only as data is actually read.
const preallocLimit = 1 << 16

type tokens struct {
	sc *bufio.Scanner
}

func (t *tokens) next() (string, error) {
	if !t.sc.Scan() {
		if err := t.sc.Err(); err != nil {
			return "", err
		}
		return "", io.ErrUnexpectedEOF
	}
	return t.sc.Text(), nil
}

func (t *tokens) expect(want string) error {
	tok, err := t.next()
	if err != nil {
		return fmt.Errorf("expected %q: %w", want, err)
	}
	if tok != want {
		return fmt.Errorf("expected %q, got %q", want, tok)
	}
	return nil
}

func (t *tokens) header(key string) (int, error) {
	if err := t.expect(key); err != nil {
		return 0, err
	}
	tok, err := t.next()
	if err != nil {
		return 0, fmt.Errorf("%s %w", key, err)
	}
	n, err := strconv.Atoi(tok)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%s bad count %q", key, tok)
	}
	if n > MaxCount {
		return 0, fmt.Errorf("%s count %d exceeds %d", key, n, MaxCount)
	}
	return n, nil
}

func (t *tokens) float() (float64, error) {
	tok, err := t.next()
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, fmt.Errorf("bad number %q", tok)
	}
	return v, nil
}
