package pattern

import "github.com/blaisecz/sleep-dashboard/internal/domain"

// Hover tracks the single tooltip of a heatmap. The zero value shows nothing.
// Hover is not safe for concurrent use.
type Hover struct {
	current *domain.Tooltip
}

// Enter focuses the cell at index and returns its tooltip. Any previous tooltip is
// replaced. An index outside cells clears the tooltip.
func (h *Hover) Enter(cells []domain.HeatCell, index int) (domain.Tooltip, bool) {
	if index < 0 || index >= len(cells) {
		h.current = nil
		return domain.Tooltip{}, false
	}
	cell := cells[index]
	h.current = &domain.Tooltip{
		Index: index,
		Date:  cell.Label,
		Score: cell.Score,
	}
	return *h.current, true
}

// Leave clears the tooltip.
func (h *Hover) Leave() {
	h.current = nil
}

// Current returns the tooltip being shown, if any.
func (h *Hover) Current() (domain.Tooltip, bool) {
	if h.current == nil {
		return domain.Tooltip{}, false
	}
	return *h.current, true
}
