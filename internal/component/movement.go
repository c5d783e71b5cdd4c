// internal/component/movement.go
package component

// Point — точка в логических метрах (земля — y = 0, бросок из x = 0).
type Point struct {
	X, Y float64
}

// Trail — ограниченная очередь последних позиций, старые вытесняются.
type Trail struct {
	points []Point
}

// Push appends p and evicts the oldest points beyond limit.
func (t *Trail) Push(p Point, limit int) {
	t.points = append(t.points, p)
	if over := len(t.points) - limit; over > 0 {
		t.points = append(t.points[:0], t.points[over:]...)
	}
}

func (t *Trail) Clear() {
	t.points = t.points[:0]
}

func (t *Trail) Len() int {
	return len(t.points)
}

// Points returns a copy, oldest first.
func (t *Trail) Points() []Point {
	out := make([]Point, len(t.points))
	copy(out, t.points)
	return out
}

// Airplane — состояние самолётика. Существует только между броском и сбросом.
type Airplane struct {
	X, Y            float64
	VX, VY          float64
	Rotation        float64 // радианы
	Trail           Trail
	Stability       float64
	LiftCoefficient float64
}

func (a *Airplane) Position() Point {
	return Point{X: a.X, Y: a.Y}
}
