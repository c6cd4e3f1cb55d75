package tui

// sparklineChars maps values 0..7 to Unicode block elements.
var sparklineChars = [8]rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// history keeps the last samples of a percentage, oldest first.
type history struct {
	values []float64
	limit  int
}

func newHistory(limit int) *history {
	return &history{limit: max(1, limit)}
}

func (h *history) Push(v float64) {
	h.values = append(h.values, v)
	if over := len(h.values) - h.limit; over > 0 {
		h.values = append(h.values[:0], h.values[over:]...)
	}
}

func (h *history) Last() float64 {
	if len(h.values) == 0 {
		return 0
	}
	return h.values[len(h.values)-1]
}

func (h *history) Values() []float64 { return h.values }

// renderSparkline converts percentages into block characters.
func renderSparkline(values []float64) string {
	runes := make([]rune, len(values))
	for i, v := range values {
		v = min(max(v, 0), 100)
		runes[i] = sparklineChars[min(int(v/100*7), 7)]
	}
	return string(runes)
}
