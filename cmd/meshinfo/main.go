package main

import (
	"fmt"
	"math"
	"os"

	"mesh-picker/internal/meshfile"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: meshinfo <mesh.txt>")
		os.Exit(1)
	}
	path := os.Args[1]
	m, err := meshfile.Load(path)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Vertices: %d, Triangles: %d, UVs: %v\n", len(m.Vertices), m.TriangleCount(), m.HasUV)
	b := m.Bounds
	fmt.Printf("BBox: X[%.3f, %.3f] Y[%.3f, %.3f] Z[%.3f, %.3f]\n", b.Min[0], b.Max[0], b.Min[1], b.Max[1], b.Min[2], b.Max[2])
	ext := b.Max.Sub(b.Min)
	fmt.Printf("Size: %.3f x %.3f x %.3f\n", ext[0], ext[1], ext[2])

	// Surface area by dominant normal direction
	areaByDir := map[string]float64{}
	degenerate := 0
	total := 0.0
	for i := 0; i < m.TriangleCount(); i++ {
		v0, v1, v2 := m.Triangle(i)
		c := v1.Sub(v0).Cross(v2.Sub(v0))
		area := 0.5 * c.Len()
		if area < 1e-12 {
			degenerate++
			continue
		}
		total += area
		ax, ay, az := math.Abs(c[0]), math.Abs(c[1]), math.Abs(c[2])
		var dir string
		switch {
		case ax >= ay && ax >= az:
			dir = signed("X", c[0])
		case ay >= az:
			dir = signed("Y", c[1])
		default:
			dir = signed("Z", c[2])
		}
		areaByDir[dir] += area
	}
	fmt.Printf("Surface area: %.3f\n", total)
	fmt.Println("--- Surface area by direction ---")
	for _, d := range []string{"+X", "-X", "+Y", "-Y", "+Z", "-Z"} {
		fmt.Printf("  %s: %.3f\n", d, areaByDir[d])
	}
	if degenerate > 0 {
		fmt.Printf("Degenerate triangles: %d\n", degenerate)
	}
}

func signed(axis string, v float64) string {
	if v > 0 {
		return "+" + axis
	}
	return "-" + axis
}
