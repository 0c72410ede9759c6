package preset

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"
	"goki.dev/ordmap"

	"starmesh/pkg/stargeom"
)

// SlotKey is the fixed key the preset document lives under in the scene's
// property table.
const SlotKey = "STAR_MESH_PRESETS_JSON"

// Preset is one named parameter set.
type Preset struct {
	Name   string
	Params stargeom.Params
}

// Slot is the host-provided persistent value the store serializes into.
// The host saves it as part of its normal document save; the store never
// does file I/O of its own.
type Slot interface {
	Get() (string, bool)
	Set(value string)
}

// Store is an ordered name-to-parameters mapping persisted as one JSON
// document in a host slot. Saving an existing name overwrites it in place
// (last write wins); iteration order is insertion order.
type Store struct {
	presets ordmap.Map[string, stargeom.Params]
	slot    Slot
	log     *logrus.Logger
}

// NewStore loads the store from the slot. A missing value yields an empty
// store. A corrupt document also yields an empty store, plus one warning:
// bad persisted data must never block panel startup.
func NewStore(slot Slot, log *logrus.Logger) *Store {
	s := &Store{slot: slot, log: log}
	raw, ok := slot.Get()
	if !ok || raw == "" {
		return s
	}
	if err := s.decode([]byte(raw)); err != nil {
		s.presets.Reset()
		log.WithError(err).Warn("preset store is corrupt, starting empty")
	}
	return s
}

// Save upserts the named preset and rewrites the slot. A name that already
// exists keeps its position and takes the new parameters.
func (s *Store) Save(name string, p stargeom.Params) {
	s.presets.Add(name, p)
	s.slot.Set(string(s.encode()))
	s.log.WithField("preset", name).Debug("preset saved")
}

// Load returns the stored parameters for name. Values come back exactly as
// stored; normalization is the parameter model's job.
func (s *Store) Load(name string) (stargeom.Params, bool) {
	return s.presets.ValByKeyTry(name)
}

// Names returns the preset names in insertion order.
func (s *Store) Names() []string { return s.presets.Keys() }

// Len returns the number of stored presets.
func (s *Store) Len() int { return s.presets.Len() }

// encode writes the whole mapping as one flat JSON object in store order.
func (s *Store) encode() []byte {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, kv := range s.presets.Order {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, _ := json.Marshal(kv.Key)
		buf.Write(name)
		buf.WriteByte(':')
		body, _ := json.Marshal(kv.Val)
		buf.Write(body)
	}
	buf.WriteByte('}')
	return buf.Bytes()
}

// decode reads a preset document, preserving entry order. Each entry is
// seeded from the current defaults so documents written by older schema
// versions still load: missing fields fall back, unknown fields are
// ignored.
func (s *Store) decode(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("preset document: expected object, got %v", tok)
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("preset document: expected name, got %v", tok)
		}
		p := stargeom.Default()
		if err := dec.Decode(&p); err != nil {
			return err
		}
		s.presets.Add(name, p)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}
