package scene

import (
	"fmt"

	"starmesh/internal/preset"
	"starmesh/pkg/stargeom"
)

// DefaultCollection is where new stars land unless the creation form picks
// another one.
const DefaultCollection = "Collection"

// Object is one star in the scene. Params is the committed parameter set
// the mesh was built from; Mesh is derived state and never persisted.
type Object struct {
	Name       string          `json:"name"`
	Collection string          `json:"collection"`
	Params     stargeom.Params `json:"params"`

	Mesh    stargeom.MeshBuffers `json:"-"`
	version uint64
}

// ReplaceMesh swaps the object's geometry in one step and bumps the mesh
// version, which renderers use as a cache key.
func (o *Object) ReplaceMesh(m stargeom.MeshBuffers) {
	o.Mesh = m
	o.version++
}

// MeshVersion returns the replace counter for cache invalidation.
func (o *Object) MeshVersion() uint64 { return o.version }

// Scene holds the document: objects, their collections, and a string
// property table for host-persisted values like the preset store.
type Scene struct {
	Collections []string          `json:"collections"`
	Objects     []*Object         `json:"objects"`
	Props       map[string]string `json:"props"`

	active int
}

// New returns an empty scene with the default collection and no selection.
func New() *Scene {
	return &Scene{
		Collections: []string{DefaultCollection},
		Props:       map[string]string{},
		active:      -1,
	}
}

// AddObject creates a star object, builds its mesh, files it under the
// collection, and selects it. Taken names get a numeric suffix.
func (s *Scene) AddObject(name, collection string, p stargeom.Params) *Object {
	p = p.Normalized()
	if collection == "" {
		collection = DefaultCollection
	}
	s.EnsureCollection(collection)
	obj := &Object{
		Name:       s.uniqueName(name),
		Collection: collection,
		Params:     p,
	}
	obj.ReplaceMesh(stargeom.Build(p))
	s.Objects = append(s.Objects, obj)
	s.active = len(s.Objects) - 1
	return obj
}

// EnsureCollection adds the collection if it is not already listed.
func (s *Scene) EnsureCollection(name string) {
	for _, c := range s.Collections {
		if c == name {
			return
		}
	}
	s.Collections = append(s.Collections, name)
}

// Select makes the object at index i the active one. Out-of-range indices
// clear the selection.
func (s *Scene) Select(i int) {
	if i < 0 || i >= len(s.Objects) {
		s.active = -1
		return
	}
	s.active = i
}

// Deselect clears the selection.
func (s *Scene) Deselect() { s.active = -1 }

// Selected returns the active object, or nil.
func (s *Scene) Selected() *Object {
	if s.active < 0 || s.active >= len(s.Objects) {
		return nil
	}
	return s.Objects[s.active]
}

// SelectedIndex returns the active object's index, or -1.
func (s *Scene) SelectedIndex() int {
	if s.active >= len(s.Objects) {
		return -1
	}
	return s.active
}

// RemoveSelected deletes the active object and clears the selection.
func (s *Scene) RemoveSelected() bool {
	i := s.SelectedIndex()
	if i < 0 {
		return false
	}
	s.Objects = append(s.Objects[:i], s.Objects[i+1:]...)
	s.active = -1
	return true
}

func (s *Scene) uniqueName(base string) string {
	if base == "" {
		base = "Star"
	}
	if !s.nameTaken(base) {
		return base
	}
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s.%03d", base, i)
		if !s.nameTaken(candidate) {
			return candidate
		}
	}
}

func (s *Scene) nameTaken(name string) bool {
	for _, o := range s.Objects {
		if o.Name == name {
			return true
		}
	}
	return false
}

type propSlot struct {
	scene *Scene
	key   string
}

func (p propSlot) Get() (string, bool) {
	v, ok := p.scene.Props[p.key]
	return v, ok
}

func (p propSlot) Set(v string) { p.scene.Props[p.key] = v }

// PropSlot exposes one property-table entry as a persistence slot. The
// preset store lives in the slot keyed preset.SlotKey and rides along with
// scene save and load.
func (s *Scene) PropSlot(key string) preset.Slot {
	return propSlot{scene: s, key: key}
}
