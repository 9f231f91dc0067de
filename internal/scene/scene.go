// Package scene keeps the ordered list of renderable, pickable objects.
package scene

import (
	"mesh-picker/internal/mathutil"
	"mesh-picker/internal/mesh"
)

// ID identifies an object for the lifetime of its Scene. IDs are never reused.
type ID int

// Object is one render item: a mesh placed in the world.
type Object struct {
	ID       ID
	Name     string
	Mesh     *mesh.Mesh
	World    mathutil.Mat4 // object-to-world
	Color    [3]uint8
	Texture  string
	Visible  bool
	Pickable bool
}

// Scene is an ordered collection of objects. Not safe for concurrent mutation;
// concurrent readers are fine once building is done.
type Scene struct {
	objects []*Object
	nextID  ID
}

func New() *Scene {
	return &Scene{nextID: 1}
}

// Add appends o, assigns it a fresh ID, and returns that ID.
func (s *Scene) Add(o *Object) ID {
	o.ID = s.nextID
	s.nextID++
	s.objects = append(s.objects, o)
	return o.ID
}

// Get returns the object with the given ID.
func (s *Scene) Get(id ID) (*Object, bool) {
	for _, o := range s.objects {
		if o.ID == id {
			return o, true
		}
	}
	return nil, false
}

// Remove deletes the object with the given ID, keeping the order of the rest.
func (s *Scene) Remove(id ID) bool {
	for i, o := range s.objects {
		if o.ID == id {
			s.objects = append(s.objects[:i], s.objects[i+1:]...)
			return true
		}
	}
	return false
}

// Len returns the number of objects.
func (s *Scene) Len() int { return len(s.objects) }

// Objects returns the objects in insertion order.
func (s *Scene) Objects() []*Object {
	out := make([]*Object, len(s.objects))
	copy(out, s.objects)
	return out
}

// Pickables returns the objects flagged Pickable, in insertion order.
func (s *Scene) Pickables() []*Object {
	var out []*Object
	for _, o := range s.objects {
		if o.Pickable {
			out = append(out, o)
		}
	}
	return out
}

// WorldMatrix composes scale, then rotation (Euler XYZ, radians), then translation.
func WorldMatrix(scale, rotation, position mathutil.Vec3) mathutil.Mat4 {
	rot := mathutil.FromRotation(mathutil.QuatToMat3(mathutil.EulerToQuat(rotation[0], rotation[1], rotation[2])))
	return mathutil.Mat4Mul(mathutil.Mat4Mul(mathutil.Scaling(scale), rot), mathutil.Translation(position))
}

// Highlight is the single render entry that draws the picked triangle.
// It draws IndexCount indices of object ObjectID starting at StartIndex.
type Highlight struct {
	Visible    bool
	ObjectID   ID
	IndexCount int
	StartIndex int
}

// Show points the highlight at triangle tri of object id.
func (h *Highlight) Show(id ID, tri int) {
	h.Visible = true
	h.ObjectID = id
	h.IndexCount = 3
	h.StartIndex = 3 * tri
}

// Hide clears the highlight.
func (h *Highlight) Hide() {
	*h = Highlight{}
}
