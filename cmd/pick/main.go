package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"mesh-picker/internal/camera"
	"mesh-picker/internal/input"
	"mesh-picker/internal/mathutil"
	"mesh-picker/internal/scene"
)

func main() {
	sceneFile := flag.String("scene", "", "Scene description (default: built-in scene)")
	eyeStr := flag.String("eye", "0,4,-10", "Camera position x,y,z")
	targetStr := flag.String("target", "0,1,0", "Point the camera looks at x,y,z")
	fovDeg := flag.Float64("fov", 45, "Vertical field of view in degrees")
	width := flag.Int("width", 800, "Viewport width in pixels")
	height := flag.Int("height", 600, "Viewport height in pixels")
	x := flag.Float64("x", -1, "Click x in pixels (default: viewport center)")
	y := flag.Float64("y", -1, "Click y in pixels (default: viewport center)")

	flag.Parse()

	eye, err := parseVec3(*eyeStr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: -eye: %v\n", err)
		os.Exit(1)
	}
	target, err := parseVec3(*targetStr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: -target: %v\n", err)
		os.Exit(1)
	}
	if *width <= 0 || *height <= 0 {
		fmt.Fprintln(os.Stderr, "Error: viewport must be positive")
		os.Exit(1)
	}

	sc := scene.Default()
	if *sceneFile != "" {
		sc, err = scene.Load(*sceneFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading scene: %v\n", err)
			os.Exit(1)
		}
	}

	cam := camera.New()
	cam.SetLens(mathutil.Deg2Rad(*fovDeg), camera.DefaultAspect, camera.DefaultNearZ, camera.DefaultFarZ)
	cam.LookAt(eye, target, mathutil.AxisY)

	var hl scene.Highlight
	ctl := input.NewController(cam, sc, &hl, *width, *height)

	cx, cy := *x, *y
	if cx < 0 {
		cx = float64(*width) / 2
	}
	if cy < 0 {
		cy = float64(*height) / 2
	}

	res := ctl.RightClick(cx, cy)
	fmt.Printf("Click (%.1f, %.1f) in %dx%d, fov %.1f° x %.1f°\n", cx, cy, *width, *height,
		mathutil.Rad2Deg(cam.FovX()), mathutil.Rad2Deg(cam.FovY()))
	if !res.Hit {
		fmt.Println("Miss")
		return
	}

	obj, _ := sc.Get(res.ObjectID)
	fmt.Printf("Hit: object %d %q\n", res.ObjectID, obj.Name)
	fmt.Printf("  Triangle: %d (indices %d..%d)\n", res.TriangleIndex, res.StartIndex(), res.StartIndex()+hl.IndexCount-1)
	fmt.Printf("  Distance: %.4f (local units)\n", res.Distance)

	v0, v1, v2 := obj.Mesh.Triangle(res.TriangleIndex)
	fmt.Printf("  Vertices: %v %v %v\n", fmtVec(v0), fmtVec(v1), fmtVec(v2))
}

func parseVec3(s string) (mathutil.Vec3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return mathutil.Vec3{}, fmt.Errorf("want x,y,z, got %q", s)
	}
	var v mathutil.Vec3
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return mathutil.Vec3{}, err
		}
		v[i] = f
	}
	return v, nil
}

func fmtVec(v mathutil.Vec3) string {
	return fmt.Sprintf("(%.2f, %.2f, %.2f)", v[0], v[1], v[2])
}
