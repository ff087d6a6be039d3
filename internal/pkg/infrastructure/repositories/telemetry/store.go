package telemetry

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

type Store interface {
	AppendReading(ctx context.Context, boxID string, reading SensorLog) (SensorLog, error)
	RecentReadings(ctx context.Context, boxID string, limit int) ([]SensorLog, error)
	ListBoxes(ctx context.Context) ([]Box, error)
	GetBox(ctx context.Context, boxID string) (Box, error)
	RegisterBox(ctx context.Context, boxID, location string) (Box, error)
	UpdateBox(ctx context.Context, boxID string, location, status *string) (Box, error)
	Capacity() int
}

var ErrValidation = errors.New("validation failed")
var ErrBoxNotFound = errors.New("box not found")
var ErrBoxAlreadyExists = errors.New("box already exists")

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

const DefaultCapacity int = 100
const DefaultClockSkew time.Duration = 5 * time.Second

// SensorLog is a stored reading. Values are never modified once appended.
type SensorLog struct {
	ID          uint64
	BoxID       string
	Seq         uint64
	Temperature *float64
	Humidity    *float64
	Latitude    *float64
	Longitude   *float64
	Timestamp   time.Time
	ReceivedAt  time.Time
	OutOfOrder  bool
}

type Box struct {
	ID        string
	Location  string
	Status    string
	CreatedAt time.Time
	Readings  uint64
	Last      *SensorLog
}

type Config struct {
	Capacity  int
	ClockSkew time.Duration
}

type store struct {
	mu    sync.RWMutex
	boxes map[string]*boxEntry

	nextID    atomic.Uint64
	capacity  int
	clockSkew time.Duration
	now       func() time.Time
}

type boxEntry struct {
	mu      sync.RWMutex
	box     Box
	nextSeq uint64
	history ring
}

func New(cfg Config) Store {
	return newStore(cfg, func() time.Time { return time.Now().UTC() })
}

func newStore(cfg Config, now func() time.Time) *store {
	if cfg.Capacity <= 0 {
		cfg.Capacity = DefaultCapacity
	}
	if cfg.ClockSkew <= 0 {
		cfg.ClockSkew = DefaultClockSkew
	}

	return &store{
		boxes:     map[string]*boxEntry{},
		capacity:  cfg.Capacity,
		clockSkew: cfg.ClockSkew,
		now:       now,
	}
}

func (s *store) Capacity() int {
	return s.capacity
}

func (s *store) AppendReading(ctx context.Context, boxID string, r SensorLog) (SensorLog, error) {
	boxID = strings.TrimSpace(boxID)
	if boxID == "" {
		return SensorLog{}, fmt.Errorf("%w: box id is required", ErrValidation)
	}
	if err := validate(r); err != nil {
		return SensorLog{}, err
	}

	e := s.getOrCreate(boxID)

	e.mu.Lock()
	defer e.mu.Unlock()

	stored := SensorLog{
		ID:          s.nextID.Add(1),
		BoxID:       boxID,
		Seq:         e.nextSeq + 1,
		Temperature: clone(r.Temperature),
		Humidity:    clone(r.Humidity),
		Latitude:    clone(r.Latitude),
		Longitude:   clone(r.Longitude),
		Timestamp:   r.Timestamp.UTC(),
		ReceivedAt:  r.ReceivedAt.UTC(),
	}

	if r.ReceivedAt.IsZero() {
		stored.ReceivedAt = s.now()
	}
	if r.Timestamp.IsZero() {
		stored.Timestamp = stored.ReceivedAt
	}

	if prev, ok := e.history.newest(); ok {
		if stored.Timestamp.Before(prev.Timestamp.Add(-s.clockSkew)) {
			stored.OutOfOrder = true
		}
	}

	e.nextSeq = stored.Seq
	e.history.push(stored)
	e.box.Readings++
	last := stored
	e.box.Last = &last

	return stored, nil
}

func (s *store) RecentReadings(ctx context.Context, boxID string, limit int) ([]SensorLog, error) {
	e, ok := s.get(boxID)
	if !ok {
		return nil, ErrBoxNotFound
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.history.recent(limit), nil
}

func (s *store) ListBoxes(ctx context.Context) ([]Box, error) {
	s.mu.RLock()
	entries := make([]*boxEntry, 0, len(s.boxes))
	for _, e := range s.boxes {
		entries = append(entries, e)
	}
	s.mu.RUnlock()

	boxes := make([]Box, 0, len(entries))
	for _, e := range entries {
		e.mu.RLock()
		boxes = append(boxes, e.box)
		e.mu.RUnlock()
	}

	sort.Slice(boxes, func(i, j int) bool { return boxes[i].ID < boxes[j].ID })

	return boxes, nil
}

func (s *store) GetBox(ctx context.Context, boxID string) (Box, error) {
	e, ok := s.get(boxID)
	if !ok {
		return Box{}, ErrBoxNotFound
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.box, nil
}

func (s *store) RegisterBox(ctx context.Context, boxID, location string) (Box, error) {
	boxID = strings.TrimSpace(boxID)
	if boxID == "" {
		return Box{}, fmt.Errorf("%w: box id is required", ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.boxes[boxID]; ok {
		return Box{}, fmt.Errorf("%w: %s", ErrBoxAlreadyExists, boxID)
	}

	e := s.newEntry(boxID)
	e.box.Location = location
	s.boxes[boxID] = e

	return e.box, nil
}

func (s *store) UpdateBox(ctx context.Context, boxID string, location, status *string) (Box, error) {
	if status != nil && *status != StatusActive && *status != StatusInactive {
		return Box{}, fmt.Errorf("%w: status must be %q or %q", ErrValidation, StatusActive, StatusInactive)
	}

	e, ok := s.get(boxID)
	if !ok {
		return Box{}, ErrBoxNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if location != nil {
		e.box.Location = *location
	}
	if status != nil {
		e.box.Status = *status
	}

	return e.box, nil
}

func (s *store) get(boxID string) (*boxEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.boxes[boxID]
	return e, ok
}

func (s *store) getOrCreate(boxID string) *boxEntry {
	if e, ok := s.get(boxID); ok {
		return e
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.boxes[boxID]; ok {
		return e
	}

	e := s.newEntry(boxID)
	s.boxes[boxID] = e

	return e
}

func (s *store) newEntry(boxID string) *boxEntry {
	return &boxEntry{
		box: Box{
			ID:        boxID,
			Status:    StatusActive,
			CreatedAt: s.now(),
		},
		history: newRing(s.capacity),
	}
}

func validate(r SensorLog) error {
	for name, v := range map[string]*float64{"temperature": r.Temperature, "humidity": r.Humidity, "latitude": r.Latitude, "longitude": r.Longitude} {
		if v != nil && (math.IsNaN(*v) || math.IsInf(*v, 0)) {
			return fmt.Errorf("%w: %s must be a finite number", ErrValidation, name)
		}
	}

	if (r.Latitude == nil) != (r.Longitude == nil) {
		return fmt.Errorf("%w: latitude and longitude must be given together", ErrValidation)
	}
	if r.Latitude != nil && (*r.Latitude < -90 || *r.Latitude > 90) {
		return fmt.Errorf("%w: latitude out of range", ErrValidation)
	}
	if r.Longitude != nil && (*r.Longitude < -180 || *r.Longitude > 180) {
		return fmt.Errorf("%w: longitude out of range", ErrValidation)
	}

	return nil
}

func clone(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
