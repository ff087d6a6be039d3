package telemetry

// ring keeps the most recent readings of a box. Once full, every push evicts
// the oldest reading.
type ring struct {
	buf   []SensorLog
	start int
	count int
}

func newRing(capacity int) ring {
	return ring{buf: make([]SensorLog, capacity)}
}

func (r *ring) push(l SensorLog) {
	if r.count < len(r.buf) {
		r.buf[(r.start+r.count)%len(r.buf)] = l
		r.count++
		return
	}

	r.buf[r.start] = l
	r.start = (r.start + 1) % len(r.buf)
}

func (r *ring) newest() (SensorLog, bool) {
	if r.count == 0 {
		return SensorLog{}, false
	}
	return r.buf[(r.start+r.count-1)%len(r.buf)], true
}

// recent returns up to limit readings, newest first. A limit <= 0 returns all.
func (r *ring) recent(limit int) []SensorLog {
	if limit <= 0 || limit > r.count {
		limit = r.count
	}

	result := make([]SensorLog, 0, limit)
	for i := 0; i < limit; i++ {
		idx := (r.start + r.count - 1 - i) % len(r.buf)
		result = append(result, r.buf[idx])
	}

	return result
}
